// Package source loads the product catalog and the FAQ corpus from tabular files.
package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// column is a logical field with the header names it may appear under.
type column struct {
	field   string
	aliases []string
}

var (
	colName     = column{"name", []string{"product_name", "name", "product"}}
	colCategory = column{"category", []string{"category"}}
	colPrice    = column{"price", []string{"price"}}
	colRating   = column{"rating", []string{"rating"}}
	colStock    = column{"stock", []string{"stock_level", "stock", "quantity"}}

	colQuestion = column{"question", []string{"question"}}
	colAnswer   = column{"answer", []string{"answer"}}

	productColumns = []column{colName, colCategory, colPrice, colRating, colStock}
	faqColumns     = []column{colQuestion, colAnswer}
)

// normalizeHeader lowercases and maps spaces and dashes to underscores.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// resolveColumns maps each wanted column to its position in header.
// The first alias found wins. A missing column is an ingestion error.
func resolveColumns(header []string, want []column) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		n := normalizeHeader(h)
		if _, dup := pos[n]; !dup {
			pos[n] = i
		}
	}

	out := make(map[string]int, len(want))
	for _, c := range want {
		found := false
		for _, a := range c.aliases {
			if i, ok := pos[a]; ok {
				out[c.field] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("missing column %q (accepted: %s): %w",
				c.field, strings.Join(c.aliases, ", "), domain.ErrIngestion)
		}
	}
	return out, nil
}

// productRecord holds the raw text of one catalog row.
type productRecord struct {
	name, category, price, rating, stock string
}

func (r productRecord) build(row int) (product.Product, error) {
	price, err := parseNumber(r.price)
	if err != nil {
		return product.Product{}, rowError(row, colPrice.field, r.price, err)
	}
	rating, err := parseNumber(r.rating)
	if err != nil {
		return product.Product{}, rowError(row, colRating.field, r.rating, err)
	}
	stock, err := parseCount(r.stock)
	if err != nil {
		return product.Product{}, rowError(row, colStock.field, r.stock, err)
	}

	p, err := product.New(r.name, product.Category(strings.TrimSpace(r.category)), price, rating, stock)
	if err != nil {
		return product.Product{}, fmt.Errorf("row %d: %v: %w", row, err, domain.ErrIngestion)
	}
	return p, nil
}

func rowError(row int, field, raw string, err error) error {
	return fmt.Errorf("row %d: bad %s %q: %v: %w", row, field, raw, err, domain.ErrIngestion)
}

// parseNumber accepts plain decimals with an optional leading "$" and thousands separators.
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse float: %w", err)
	}
	return f, nil
}

// parseCount accepts integers and integral floats ("50", "50.0").
func parseCount(raw string) (int, error) {
	f, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("not a whole number")
	}
	return int(f), nil
}

func trimCell(s string) string { return strings.TrimSpace(s) }
