package source

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/faq"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

const parquetBatchSize = 512

// LoadCatalogParquet reads a catalog from a Parquet file. Columns are found
// by name so numeric columns may be stored as int, float or string.
func LoadCatalogParquet(path string) (*product.Catalog, error) {
	var products []product.Product

	err := readParquet(path, productColumns, func(row int, get func(string) string) error {
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

// LoadFAQParquet reads an FAQ corpus from a Parquet file with question and answer columns.
func LoadFAQParquet(path string) (*faq.Corpus, error) {
	var entries []faq.Entry

	err := readParquet(path, faqColumns, func(row int, get func(string) string) error {
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

// readParquet streams every row group through the generic row reader.
// Rows are numbered from 1.
func readParquet(path string, cols []column, fn func(row int, get func(string) string) error) error {
	f, err := openFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %v: %w", path, err, domain.ErrIngestion)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return fmt.Errorf("open parquet %s: %v: %w", path, err, domain.ErrIngestion)
	}

	idx, err := resolveColumns(leafNames(pf), cols)
	if err != nil {
		return err
	}
	byColumn := make(map[int]string, len(idx))
	for field, i := range idx {
		byColumn[i] = field
	}

	row := 1
	buf := make([]parquet.Row, parquetBatchSize)
	for _, rg := range pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)
		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				cells := rowCells(buf[i], byColumn)
				if err := fn(row, func(field string) string { return cells[field] }); err != nil {
					return err
				}
				row++
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return fmt.Errorf("read rows: %v: %w", readErr, domain.ErrIngestion)
			}
		}
	}
	return nil
}

// leafNames returns the top-level name of every leaf column, by leaf index.
func leafNames(pf *parquet.File) []string {
	paths := pf.Schema().Columns()
	names := make([]string, len(paths))
	for i, p := range paths {
		if len(p) > 0 {
			names[i] = p[0]
		}
	}
	return names
}

func rowCells(row parquet.Row, byColumn map[int]string) map[string]string {
	cells := make(map[string]string, len(byColumn))
	for _, v := range row {
		field, ok := byColumn[v.Column()]
		if !ok {
			continue
		}
		cells[field] = trimCell(valueText(v))
	}
	return cells
}

func valueText(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	default:
		return string(v.ByteArray())
	}
}
