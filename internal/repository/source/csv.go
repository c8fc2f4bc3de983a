package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/faq"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// ReadCatalogCSV parses a catalog with a header row.
func ReadCatalogCSV(r io.Reader) (*product.Catalog, error) {
	var products []product.Product

	err := readCSV(r, productColumns, func(row int, get func(string) string) error {
		p, err := productRecord{
			name:     get(colName.field),
			category: get(colCategory.field),
			price:    get(colPrice.field),
			rating:   get(colRating.field),
			stock:    get(colStock.field),
		}.build(row)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product.NewCatalog(products), nil
}

// ReadFAQCSV parses an FAQ table with a header row.
func ReadFAQCSV(r io.Reader) (*faq.Corpus, error) {
	var entries []faq.Entry

	err := readCSV(r, faqColumns, func(row int, get func(string) string) error {
		e := faq.Entry{Question: get(colQuestion.field), Answer: get(colAnswer.field)}
		if e.Question == "" {
			return fmt.Errorf("row %d: empty question: %w", row, domain.ErrIngestion)
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return faq.FromEntries(entries), nil
}

// readCSV resolves the header and calls fn for every data row. Rows are
// numbered from 2 so messages match spreadsheet line numbers.
func readCSV(r io.Reader, cols []column, fn func(row int, get func(string) string) error) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("missing header: %w", domain.ErrIngestion)
		}
		return fmt.Errorf("read header: %v: %w", err, domain.ErrIngestion)
	}

	idx, err := resolveColumns(header, cols)
	if err != nil {
		return err
	}

	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("row %d: %v: %w", row, err, domain.ErrIngestion)
		}
		if isBlank(rec) {
			continue
		}

		get := func(field string) string { return trimCell(rec[idx[field]]) }
		if err := fn(row, get); err != nil {
			return err
		}
	}
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if trimCell(c) != "" {
			return false
		}
	}
	return true
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, domain.ErrIngestion)
	}
	return f, nil
}
