package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/faq"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// LoadCatalogXLSX reads a catalog from the first sheet of a workbook.
func LoadCatalogXLSX(path string) (*product.Catalog, error) {
	var products []product.Product

	err := readXLSX(path, productColumns, func(row int, get func(string) string) error {
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

// LoadFAQXLSX reads an FAQ corpus from the first sheet of a workbook.
func LoadFAQXLSX(path string) (*faq.Corpus, error) {
	var entries []faq.Entry

	err := readXLSX(path, faqColumns, func(row int, get func(string) string) error {
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

// readXLSX treats the first row of the first sheet as the header.
// Rows are numbered as in the spreadsheet.
func readXLSX(path string, cols []column, fn func(row int, get func(string) string) error) error {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %v: %w", path, err, domain.ErrIngestion)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("workbook has no sheets: %w", domain.ErrIngestion)
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("read sheet %q: %v: %w", sheets[0], err, domain.ErrIngestion)
	}
	if len(rows) == 0 {
		return fmt.Errorf("missing header: %w", domain.ErrIngestion)
	}

	idx, err := resolveColumns(rows[0], cols)
	if err != nil {
		return err
	}

	for i, rec := range rows[1:] {
		if isBlank(rec) {
			continue
		}
		// Trailing empty cells are not returned by GetRows.
		get := func(field string) string {
			if j := idx[field]; j < len(rec) {
				return trimCell(rec[j])
			}
			return ""
		}
		if err := fn(i+2, get); err != nil {
			return err
		}
	}
	return nil
}
