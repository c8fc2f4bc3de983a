package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

const catalogCSV = `Product_Name,Category,Price,Rating,Stock_Level
Smartphone X,Electronics,699.99,4.5,50
Gaming Laptop,Computers,1499.00,4.7,0
Wireless Earbuds,Accessories,129.99,4.4,200
`

const faqCSV = `Question,Answer
What is your return policy?,"You can return items within 30 days, no questions asked."
How can I track my order?,Use the tracking link in your confirmation email.
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// --- CSV catalog ---

func TestReadCatalogCSV(t *testing.T) {
	c, err := ReadCatalogCSV(strings.NewReader(catalogCSV))
	if err != nil {
		t.Fatalf("ReadCatalogCSV: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 products, got %d", c.Len())
	}

	p := c.Products()[0]
	if p.Name() != "Smartphone X" || p.Category() != product.Electronics ||
		p.Price() != 699.99 || p.Rating() != 4.5 || p.Stock() != 50 {
		t.Errorf("unexpected first product: %+v", p)
	}
	if c.Products()[1].InStock() {
		t.Error("Gaming Laptop should be out of stock")
	}
}

func TestReadCatalogCSV_HeaderAliases(t *testing.T) {
	in := "name, CATEGORY ,price,Rating,stock\nCable,Accessories,\"$1,299.00\",4.0,7.0\n"

	c, err := ReadCatalogCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCatalogCSV: %v", err)
	}
	p := c.Products()[0]
	if p.Price() != 1299 || p.Stock() != 7 {
		t.Errorf("unexpected product: price=%v stock=%v", p.Price(), p.Stock())
	}
}

func TestReadCatalogCSV_SkipsBlankRows(t *testing.T) {
	in := "Product_Name,Category,Price,Rating,Stock_Level\n,,,,\nTV,Electronics,499,4.8,5\n"
	c, err := ReadCatalogCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCatalogCSV: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 product, got %d", c.Len())
	}
}

func TestReadCatalogCSV_Errors(t *testing.T) {
	tests := map[string]string{
		"empty input":      "",
		"missing column":   "Product_Name,Category,Price,Rating\nTV,Electronics,499,4.8\n",
		"bad price":        "Product_Name,Category,Price,Rating,Stock_Level\nTV,Electronics,cheap,4.8,5\n",
		"bad rating":       "Product_Name,Category,Price,Rating,Stock_Level\nTV,Electronics,499,great,5\n",
		"fractional stock": "Product_Name,Category,Price,Rating,Stock_Level\nTV,Electronics,499,4.8,2.5\n",
		"negative price":   "Product_Name,Category,Price,Rating,Stock_Level\nTV,Electronics,-1,4.8,5\n",
		"rating too high":  "Product_Name,Category,Price,Rating,Stock_Level\nTV,Electronics,499,7,5\n",
		"empty name":       "Product_Name,Category,Price,Rating,Stock_Level\n ,Electronics,499,4.8,5\n",
		"ragged row":       "Product_Name,Category,Price,Rating,Stock_Level\nTV,Electronics,499\n",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCatalogCSV(strings.NewReader(in))
			if !errors.Is(err, domain.ErrIngestion) {
				t.Errorf("expected ErrIngestion, got %v", err)
			}
		})
	}
}

func TestReadCatalogCSV_ErrorNamesRow(t *testing.T) {
	in := "Product_Name,Category,Price,Rating,Stock_Level\nTV,Electronics,499,4.8,5\nPhone,Electronics,x,4.1,1\n"
	_, err := ReadCatalogCSV(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "row 3") {
		t.Errorf("expected error naming row 3, got %v", err)
	}
}

// --- CSV FAQ ---

func TestReadFAQCSV(t *testing.T) {
	c, err := ReadFAQCSV(strings.NewReader(faqCSV))
	if err != nil {
		t.Fatalf("ReadFAQCSV: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	a, _ := c.Answer(0)
	if a != "You can return items within 30 days, no questions asked." {
		t.Errorf("unexpected answer: %q", a)
	}
}

func TestReadFAQCSV_Errors(t *testing.T) {
	tests := map[string]string{
		"missing answer column": "Question\nWhat?\n",
		"empty question":        "Question,Answer\n,Some answer\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadFAQCSV(strings.NewReader(in))
			if !errors.Is(err, domain.ErrIngestion) {
				t.Errorf("expected ErrIngestion, got %v", err)
			}
		})
	}
}

// --- Loader dispatch ---

func TestLoadCatalog_CSVFile(t *testing.T) {
	c, err := LoadCatalog(writeFile(t, "products.csv", catalogCSV))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 products, got %d", c.Len())
	}
}

func TestLoadFAQ_CSVFile(t *testing.T) {
	c, err := LoadFAQ(writeFile(t, "faq.CSV", faqCSV))
	if err != nil {
		t.Fatalf("LoadFAQ: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")
	if _, err := LoadCatalog(missing); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("catalog: expected ErrIngestion, got %v", err)
	}
	if _, err := LoadFAQ(missing); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("faq: expected ErrIngestion, got %v", err)
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "faq.json", "[]")
	if _, err := LoadFAQ(path); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
	if _, err := LoadCatalog(path); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
}

// --- XLSX ---

func writeXLSX(t *testing.T, name string, rows [][]any) string {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := wb.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return path
}

func TestLoadFAQ_XLSX(t *testing.T) {
	path := writeXLSX(t, "FAQ.xlsx", [][]any{
		{"Question", "Answer"},
		{"What is your return policy?", "Returns are accepted within 30 days."},
		{},
		{"How can I track my order?", "Use the tracking link."},
	})

	c, err := LoadFAQ(path)
	if err != nil {
		t.Fatalf("LoadFAQ: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	e, _ := c.Entry(1)
	if e.Question != "How can I track my order?" || e.Answer != "Use the tracking link." {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestLoadFAQ_XLSXMissingAnswerCell(t *testing.T) {
	path := writeXLSX(t, "faq.xlsx", [][]any{
		{"Question", "Answer"},
		{"Do you ship abroad?"},
	})

	c, err := LoadFAQ(path)
	if err != nil {
		t.Fatalf("LoadFAQ: %v", err)
	}
	if a, _ := c.Answer(0); a != "" {
		t.Errorf("expected empty answer, got %q", a)
	}
}

func TestLoadCatalog_XLSX(t *testing.T) {
	path := writeXLSX(t, "products.xlsx", [][]any{
		{"Product_Name", "Category", "Price", "Rating", "Stock_Level"},
		{"Smartphone X", "Electronics", 699.99, 4.5, 50},
		{"Gaming Laptop", "Computers", 1499, 4.7, 0},
	})

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", c.Len())
	}
	if p := c.Products()[0]; p.Price() != 699.99 || p.Stock() != 50 {
		t.Errorf("unexpected product %s: price=%v stock=%d", p.Name(), p.Price(), p.Stock())
	}
}

func TestLoad_XLSXErrors(t *testing.T) {
	missingCol := writeXLSX(t, "faq.xlsx", [][]any{{"Question"}, {"q"}})
	if _, err := LoadFAQ(missingCol); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("missing column: expected ErrIngestion, got %v", err)
	}

	notXLSX := writeFile(t, "products.xlsx", "not a zip")
	if _, err := LoadCatalog(notXLSX); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("corrupt workbook: expected ErrIngestion, got %v", err)
	}

	empty := writeXLSX(t, "empty.xlsx", nil)
	if _, err := LoadFAQ(empty); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("empty sheet: expected ErrIngestion, got %v", err)
	}
}

// --- Parquet ---

type parquetProduct struct {
	Name     string  `parquet:"Product_Name"`
	Category string  `parquet:"Category"`
	Price    float64 `parquet:"Price"`
	Rating   float32 `parquet:"Rating"`
	Stock    int64   `parquet:"Stock_Level"`
	Extra    string  `parquet:"Supplier"`
}

type parquetFAQ struct {
	Question string `parquet:"question"`
	Answer   string `parquet:"answer"`
}

func TestLoadCatalog_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.parquet")
	rows := []parquetProduct{
		{Name: "4K TV", Category: "Electronics", Price: 499, Rating: 4.75, Stock: 5, Extra: "acme"},
		{Name: "Ultrabook", Category: "Computers", Price: 999.5, Rating: 4.5, Stock: 0},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", c.Len())
	}
	ps := c.Products()
	if ps[0].Name() != "4K TV" || ps[0].Price() != 499 || ps[0].Rating() != 4.75 || ps[0].Stock() != 5 {
		t.Errorf("unexpected first product: %+v", ps[0])
	}
	if ps[1].Category() != product.Computers || ps[1].Price() != 999.5 || ps[1].InStock() {
		t.Errorf("unexpected second product: %+v", ps[1])
	}
}

func TestLoadCatalog_ParquetMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.parquet")
	if err := parquet.WriteFile(path, []parquetFAQ{{Question: "q", Answer: "a"}}); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	if _, err := LoadCatalog(path); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
}

func TestLoadFAQ_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.parquet")
	rows := []parquetFAQ{
		{Question: "Do you ship internationally?", Answer: "Yes, to 40 countries."},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	c, err := LoadFAQ(path)
	if err != nil {
		t.Fatalf("LoadFAQ: %v", err)
	}
	if qs := c.Questions(); len(qs) != 1 || qs[0] != "Do you ship internationally?" {
		t.Errorf("unexpected questions: %v", qs)
	}
}

func TestLoadCatalog_NotParquet(t *testing.T) {
	path := writeFile(t, "broken.parquet", "definitely not parquet")
	if _, err := LoadCatalog(path); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
}

// --- helpers ---

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Product_Name":   "product_name",
		" Stock Level ":  "stock_level",
		"\ufeffQuestion": "question",
		"stock-level":    "stock_level",
	}
	for in, want := range tests {
		if got := normalizeHeader(in); got != want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"50", 50, true},
		{"50.0", 50, true},
		{" 1,200 ", 1200, true},
		{"2.5", 0, false},
		{"", 0, false},
		{"many", 0, false},
	}
	for _, tt := range tests {
		got, err := parseCount(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("parseCount(%q) = %d, %v", tt.in, got, err)
		}
	}
}
