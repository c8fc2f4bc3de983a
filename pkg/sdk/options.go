package catalogqa

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogPath string
	products    []Product
	faqPath     string
	faq         []FAQEntry

	embedder   Embedder
	classifier Classifier
	openai     *openAIConfig

	displayLimit int
	synonyms     map[string]string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

type openAIConfig struct {
	apiKey         string
	baseURL        string
	embeddingModel string
	chatModel      string
}

// WithCatalogFile loads products from a .csv, .parquet or .xlsx file.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = path
	})
}

// WithProducts uses an in-memory product list. Ignored when WithCatalogFile is set.
func WithProducts(products []Product) Option {
	return optionFunc(func(c *clientConfig) {
		c.products = products
	})
}

// WithFAQFile loads FAQ entries from a .csv, .parquet or .xlsx file.
func WithFAQFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.faqPath = path
	})
}

// WithFAQ uses in-memory FAQ entries. Ignored when WithFAQFile is set.
func WithFAQ(entries []FAQEntry) Option {
	return optionFunc(func(c *clientConfig) {
		c.faq = entries
	})
}

// WithEmbedder sets a custom embedding provider.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithClassifier sets a custom intent classification provider.
func WithClassifier(cl Classifier) Option {
	return optionFunc(func(c *clientConfig) {
		c.classifier = cl
	})
}

// WithOpenAI uses an OpenAI-compatible API for both embeddings and classification.
// WithEmbedder and WithClassifier take precedence for their concern.
func WithOpenAI(apiKey, embeddingModel, chatModel string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.openai == nil {
			c.openai = &openAIConfig{}
		}
		c.openai.apiKey = apiKey
		c.openai.embeddingModel = embeddingModel
		c.openai.chatModel = chatModel
	})
}

// WithOpenAIBaseURL points WithOpenAI at a compatible endpoint.
func WithOpenAIBaseURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.openai == nil {
			c.openai = &openAIConfig{}
		}
		c.openai.baseURL = url
	})
}

// WithDisplayLimit caps the products rendered in an answer. Default: 5.
func WithDisplayLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.displayLimit = n
	})
}

// WithSynonyms adds query words that map to a category, e.g. "tablet" -> "Electronics".
func WithSynonyms(synonyms map[string]string) Option {
	return optionFunc(func(c *clientConfig) {
		c.synonyms = synonyms
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
