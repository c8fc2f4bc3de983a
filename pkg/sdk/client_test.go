package catalogqa

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/filter"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
	healthuc "github.com/kailas-cloud/catalogqa/internal/usecase/health"
	queryuc "github.com/kailas-cloud/catalogqa/internal/usecase/query"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithProducts(testProducts()),
		WithFAQ(testFAQ()),
		WithEmbedder(&keywordEmbedder{}),
		WithClassifier(&dollarClassifier{}),
	}
	c, err := New(context.Background(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{
			name: "no embedder",
			opts: []Option{WithProducts(testProducts()), WithFAQ(testFAQ()), WithClassifier(&dollarClassifier{})},
			want: ErrConfiguration,
		},
		{
			name: "no classifier",
			opts: []Option{WithProducts(testProducts()), WithFAQ(testFAQ()), WithEmbedder(&keywordEmbedder{})},
			want: ErrConfiguration,
		},
		{
			name: "openai without key",
			opts: []Option{WithProducts(testProducts()), WithFAQ(testFAQ()), WithOpenAI("", "m", "c")},
			want: ErrConfiguration,
		},
		{
			name: "empty faq",
			opts: []Option{
				WithProducts(testProducts()), WithEmbedder(&keywordEmbedder{}), WithClassifier(&dollarClassifier{}),
			},
			want: ErrEmptyCorpus,
		},
		{
			name: "invalid product",
			opts: []Option{
				WithProducts([]Product{{Name: "", Category: "Electronics", Price: 1}}),
				WithFAQ(testFAQ()), WithEmbedder(&keywordEmbedder{}), WithClassifier(&dollarClassifier{}),
			},
			want: ErrIngestion,
		},
		{
			name: "blank faq question",
			opts: []Option{
				WithProducts(testProducts()), WithFAQ([]FAQEntry{{Question: " ", Answer: "a"}}),
				WithEmbedder(&keywordEmbedder{}), WithClassifier(&dollarClassifier{}),
			},
			want: ErrIngestion,
		},
		{
			name: "embedding provider down",
			opts: []Option{
				WithProducts(testProducts()), WithFAQ(testFAQ()),
				WithEmbedder(&keywordEmbedder{err: errors.New("connection refused")}),
				WithClassifier(&dollarClassifier{}),
			},
			want: ErrEmbeddingProviderError,
		},
		{
			name: "missing catalog file",
			opts: []Option{
				WithCatalogFile(filepath.Join(os.TempDir(), "does-not-exist.csv")), WithFAQ(testFAQ()),
				WithEmbedder(&keywordEmbedder{}), WithClassifier(&dollarClassifier{}),
			},
			want: ErrIngestion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNew_BatchEmbedderUsedForIndexing(t *testing.T) {
	emb := &batchKeywordEmbedder{}
	_, err := New(context.Background(),
		WithProducts(testProducts()), WithFAQ(testFAQ()),
		WithEmbedder(emb), WithClassifier(&dollarClassifier{}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if emb.batches != 1 {
		t.Errorf("expected 1 batch call, got %d", emb.batches)
	}
	if emb.calls != len(testFAQ()) {
		t.Errorf("expected %d embeddings, got %d", len(testFAQ()), emb.calls)
	}
}

func TestNew_FromFiles(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "products.csv")
	faqFile := filepath.Join(dir, "faq.csv")
	writeFile(t, catalog, "Product_Name,Category,Price,Rating,Stock_Level\n"+
		"4K TV,Electronics,450,4.8,3\nGaming Laptop,Computers,1500,4.7,2\n")
	writeFile(t, faqFile, "question,answer\n"+
		"How do I track my order?,Use the tracking link.\n")

	c, err := New(context.Background(),
		WithCatalogFile(catalog), WithFAQFile(faqFile),
		WithEmbedder(&keywordEmbedder{}), WithClassifier(&dollarClassifier{}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ans, err := c.Ask(context.Background(), "Where can I track my package?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Text != "Use the tracking link." {
		t.Errorf("unexpected answer %q", ans.Text)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestClient_Ask_Product(t *testing.T) {
	c := newTestClient(t)

	ans, err := c.Ask(context.Background(), "Show me electronics under $100 in stock")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Intent != IntentProduct {
		t.Fatalf("expected PRODUCT, got %s", ans.Intent)
	}
	if ans.Total != 1 || len(ans.Products) != 1 {
		t.Fatalf("expected exactly one product, got %+v", ans.Products)
	}
	if ans.Products[0].Name != "Bluetooth Speaker" {
		t.Errorf("unexpected product %q", ans.Products[0].Name)
	}
	if ans.FAQIndex != -1 {
		t.Errorf("FAQIndex = %d, want -1", ans.FAQIndex)
	}
	if !strings.Contains(ans.Text, "Bluetooth Speaker") || !strings.Contains(ans.Text, "Price: $80.00") {
		t.Errorf("unexpected text %q", ans.Text)
	}
	if ans.Filter == "" {
		t.Error("expected filter description")
	}
	if _, err := uuid.Parse(ans.ID); err != nil {
		t.Errorf("ID is not a uuid: %q", ans.ID)
	}
}

func TestClient_Ask_FAQ(t *testing.T) {
	tests := []struct {
		question  string
		wantIndex int
	}{
		{"Can I return an item I bought?", 0},
		{"Where do I track a package?", 1},
		{"Will you ship to Canada?", 2},
	}

	c := newTestClient(t)
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			ans, err := c.Ask(context.Background(), tt.question)
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if ans.Intent != IntentFAQ {
				t.Fatalf("expected FAQ, got %s", ans.Intent)
			}
			if ans.FAQIndex != tt.wantIndex {
				t.Errorf("FAQIndex = %d, want %d", ans.FAQIndex, tt.wantIndex)
			}
			if ans.Text != testFAQ()[tt.wantIndex].Answer {
				t.Errorf("unexpected answer %q", ans.Text)
			}
			if ans.Products != nil {
				t.Errorf("expected no products, got %v", ans.Products)
			}
		})
	}
}

func TestClient_Ask_ClassifierDown(t *testing.T) {
	c := newTestClient(t, WithClassifier(&dollarClassifier{err: errors.New("timeout")}))

	_, err := c.Ask(context.Background(), "What is your return policy?")
	if !errors.Is(err, ErrClassificationFailed) {
		t.Fatalf("expected ErrClassificationFailed, got %v", err)
	}
}

func TestClient_Ask_Blank(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Ask(context.Background(), "   ")
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestClient_SearchProducts_Limit(t *testing.T) {
	c := newTestClient(t, WithDisplayLimit(1))

	ans, err := c.SearchProducts(context.Background(), "electronics", 0)
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if ans.Total != 3 || len(ans.Products) != 1 {
		t.Errorf("expected 1 of 3 products, got %d of %d", len(ans.Products), ans.Total)
	}

	ans, err = c.SearchProducts(context.Background(), "electronics", 2)
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(ans.Products) != 2 {
		t.Errorf("expected 2 products with explicit limit, got %d", len(ans.Products))
	}
}

func TestClient_SearchProducts_Synonyms(t *testing.T) {
	c := newTestClient(t, WithSynonyms(map[string]string{"notebook": "Computers"}))

	ans, err := c.SearchProducts(context.Background(), "any notebook?", 0)
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if ans.Total != 1 || ans.Products[0].Name != "Gaming Laptop" {
		t.Errorf("unexpected products %+v", ans.Products)
	}
}

func TestClient_LookupFAQ_SkipsClassifier(t *testing.T) {
	c := newTestClient(t, WithClassifier(&dollarClassifier{err: errors.New("must not be called")}))

	ans, err := c.LookupFAQ(context.Background(), "return for $5?")
	if err != nil {
		t.Fatalf("LookupFAQ: %v", err)
	}
	if ans.FAQIndex != 0 {
		t.Errorf("FAQIndex = %d, want 0", ans.FAQIndex)
	}
}

func TestClient_WrapsUseCaseErrors(t *testing.T) {
	fail := errors.New("boom")
	c := &Client{queries: &mockQueryUC{
		answerFn: func(context.Context, string) (queryuc.Response, error) { return queryuc.Response{}, fail },
		searchFn: func(context.Context, string, int) (queryuc.Response, error) { return queryuc.Response{}, fail },
		faqFn:    func(context.Context, string) (queryuc.Response, error) { return queryuc.Response{}, fail },
	}}

	if _, err := c.Ask(context.Background(), "q"); !errors.Is(err, fail) {
		t.Errorf("Ask: expected wrapped error, got %v", err)
	}
	if _, err := c.SearchProducts(context.Background(), "q", 0); !errors.Is(err, fail) {
		t.Errorf("SearchProducts: expected wrapped error, got %v", err)
	}
	if _, err := c.LookupFAQ(context.Background(), "q"); !errors.Is(err, fail) {
		t.Errorf("LookupFAQ: expected wrapped error, got %v", err)
	}
}

func TestClient_Health(t *testing.T) {
	c := &Client{health: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Unhealthy,
		Checks: map[string]healthuc.CheckResult{
			healthuc.ComponentEmbedding:  healthuc.CheckError,
			healthuc.ComponentClassifier: healthuc.CheckOK,
		},
	}}}

	h := c.Health(context.Background())
	if h.Status != "error" {
		t.Errorf("Status = %q, want error", h.Status)
	}
	if h.Checks["embedding"] != "error" || h.Checks["classifier"] != "ok" {
		t.Errorf("unexpected checks %v", h.Checks)
	}
}

func TestClient_Health_CustomProviders(t *testing.T) {
	c := newTestClient(t)

	h := c.Health(context.Background())
	if h.Status != "ok" {
		t.Errorf("Status = %q, want ok", h.Status)
	}
	if _, ok := h.Checks["classifier"]; ok {
		t.Error("classifier without HealthCheck must not be checked")
	}
}

func TestAnswerFromResponse_Product(t *testing.T) {
	p, err := product.New("Smart Watch", product.Wearables, 199, 4.2, 4)
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.New()
	resp := queryuc.Response{
		ID:       id,
		Intent:   domain.IntentProduct,
		Text:     "text",
		Spec:     filter.Spec{}.WithCategory(product.Wearables),
		Products: []product.Product{p},
		Total:    3,
		FAQIndex: -1,
	}

	ans := answerFromResponse(resp)
	if ans.ID != id.String() || ans.Intent != IntentProduct || ans.Total != 3 {
		t.Errorf("unexpected answer %+v", ans)
	}
	want := Product{Name: "Smart Watch", Category: "Wearables", Price: 199, Rating: 4.2, Stock: 4}
	if len(ans.Products) != 1 || ans.Products[0] != want {
		t.Errorf("unexpected products %+v", ans.Products)
	}
	if !strings.Contains(strings.ToLower(ans.Filter), "wearables") {
		t.Errorf("unexpected filter %q", ans.Filter)
	}
}

func TestEmbedderAdapter_WrapsProviderErrors(t *testing.T) {
	a := &embedderAdapter{inner: &keywordEmbedder{err: errors.New("503")}}

	_, err := a.Embed(context.Background(), "x")
	if !errors.Is(err, ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}

	_, err = a.BatchEmbed(context.Background(), []string{"x"})
	if !errors.Is(err, ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError from fallback, got %v", err)
	}
}

func TestOptions_OpenAIBaseURLOrder(t *testing.T) {
	cfg := &clientConfig{}
	for _, o := range []Option{WithOpenAIBaseURL("http://local"), WithOpenAI("k", "e", "c")} {
		o.apply(cfg)
	}
	if cfg.openai.baseURL != "http://local" || cfg.openai.apiKey != "k" {
		t.Errorf("unexpected openai config %+v", cfg.openai)
	}
}

func TestObserver_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newTestClient(t, WithPrometheus(reg))

	if _, err := c.Ask(context.Background(), "How do I return this?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if _, err := c.Ask(context.Background(), ""); err == nil {
		t.Fatal("expected error for blank question")
	}

	if got := testutil.ToFloat64(c.obs.metrics.questions.WithLabelValues("ask", "ok")); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.obs.metrics.questions.WithLabelValues("ask", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}

	// A second client on the same registry reuses the collectors.
	c2 := newTestClient(t, WithPrometheus(reg))
	if c2.obs.metrics.questions != c.obs.metrics.questions {
		t.Error("expected collectors to be shared")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var o *observer
	o.observe("ask", time.Now(), errors.New("x"))

	o, err := newObserver(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	o.observe("ask", time.Now(), nil)
}
