package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	queryuc "github.com/kailas-cloud/catalogqa/internal/usecase/query"
)

// Ask modes.
const (
	modeAuto    = "auto"
	modeProduct = "product"
	modeFAQ     = "faq"
)

type askOptions struct {
	mode    string
	timeout time.Duration
	verbose bool
}

func newAskCmd(root *rootOptions) *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question and print the result",
		Example: `  catalogqa ask "Show me top-rated electronics under $500 in stock"
  catalogqa ask --mode faq "How can I track my order?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.mode {
			case modeAuto, modeProduct, modeFAQ:
			default:
				return fmt.Errorf("--mode must be %s, %s or %s, got %q", modeAuto, modeProduct, modeFAQ, opts.mode)
			}
			return runAsk(cmd.Context(), root, opts, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", modeAuto, "routing: auto (classify), product or faq")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "overall timeout including FAQ indexing")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print intent and match details")
	return cmd
}

func runAsk(parent context.Context, root *rootOptions, opts *askOptions, question string, out io.Writer) error {
	cfg, logger, err := root.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(parent, opts.timeout)
	defer cancel()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	var resp queryuc.Response
	switch opts.mode {
	case modeProduct:
		resp, err = a.queries.SearchProducts(ctx, question, 0)
	case modeFAQ:
		resp, err = a.queries.LookupFAQ(ctx, question)
	default:
		resp, err = a.queries.Answer(ctx, question)
	}
	if err != nil {
		return fmt.Errorf("error processing query: %w", err)
	}

	printAnswer(out, resp, opts.verbose)
	return nil
}

func printAnswer(out io.Writer, resp queryuc.Response, verbose bool) {
	if verbose {
		_, _ = fmt.Fprintf(out, "Intent: %s\n", resp.Intent)
		if resp.FAQIndex >= 0 {
			_, _ = fmt.Fprintf(out, "Matched: %s\n", resp.MatchedQuestion)
		} else {
			_, _ = fmt.Fprintf(out, "Filter: %s (%d matches)\n", resp.Spec, resp.Total)
		}
		_, _ = fmt.Fprintln(out)
	}
	_, _ = fmt.Fprintln(out, strings.TrimRight(resp.Text, "\n"))
}
