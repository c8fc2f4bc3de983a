package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/faq"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// LoadCatalog reads a catalog file, choosing the format by extension (.csv, .parquet or .xlsx).
func LoadCatalog(path string) (*product.Catalog, error) {
	switch ext(path) {
	case ".csv":
		f, err := openFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		c, err := ReadCatalogCSV(f)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path, err)
		}
		return c, nil
	case ".parquet":
		c, err := LoadCatalogParquet(path)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path, err)
		}
		return c, nil
	case ".xlsx":
		c, err := LoadCatalogXLSX(path)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("catalog %s: unsupported format %q: %w", path, ext(path), domain.ErrIngestion)
	}
}

// LoadFAQ reads an FAQ file, choosing the format by extension (.csv, .parquet or .xlsx).
func LoadFAQ(path string) (*faq.Corpus, error) {
	switch ext(path) {
	case ".csv":
		f, err := openFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		c, err := ReadFAQCSV(f)
		if err != nil {
			return nil, fmt.Errorf("load faq %s: %w", path, err)
		}
		return c, nil
	case ".parquet":
		c, err := LoadFAQParquet(path)
		if err != nil {
			return nil, fmt.Errorf("load faq %s: %w", path, err)
		}
		return c, nil
	case ".xlsx":
		c, err := LoadFAQXLSX(path)
		if err != nil {
			return nil, fmt.Errorf("load faq %s: %w", path, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("faq %s: unsupported format %q: %w", path, ext(path), domain.ErrIngestion)
	}
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
