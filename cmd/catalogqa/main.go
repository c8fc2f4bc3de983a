package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogqa/internal/config"
	logpkg "github.com/kailas-cloud/catalogqa/internal/logger"
)

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	env        string
	configPath string
	envFile    string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "catalogqa",
		Short: "Answer product catalog and FAQ questions",
		Long: `catalogqa routes a natural-language question either to structured
filtering over a product catalog or to nearest-neighbor lookup over an FAQ.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// .env is optional; values already in the environment win.
			if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", opts.envFile, err)
			}
			if opts.env == "" {
				opts.env = config.GetEnv()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.env, "env", "e", "", "environment name, selects config/<env>.yaml (default $ENV or local)")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "explicit config file path")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")

	cmd.AddCommand(
		newServeCmd(opts),
		newAskCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load reads the config and builds the logger for opts.
func (o *rootOptions) load() (config.Config, *zap.Logger, error) {
	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load(o.env)
	}
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(o.env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
