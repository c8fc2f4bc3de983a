package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/catalogqa/internal/domain"
)

// Classifier providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds the catalogqa configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Data       DataConfig       `yaml:"data"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Cache      CacheConfig      `yaml:"cache"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. Empty APIKeys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int             `yaml:"port"`
	ReadTimeoutSec  int             `yaml:"read_timeout_sec"`
	WriteTimeoutSec int             `yaml:"write_timeout_sec"`
	ShutdownSec     int             `yaml:"shutdown_timeout_sec"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig holds the process-wide token bucket. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// DataConfig holds the startup data sources (.csv or .parquet).
type DataConfig struct {
	CatalogPath string `yaml:"catalog_path"`
	FAQPath     string `yaml:"faq_path"`
}

// CatalogConfig holds product query settings.
type CatalogConfig struct {
	Synonyms          map[string]string `yaml:"synonyms"` // query word -> category
	MaxDisplayResults int               `yaml:"max_display_results"`
}

// EmbeddingConfig holds the embedding provider used for the FAQ index and queries.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"` // label for metrics (default: openai)
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"`
	Instruction string `yaml:"instruction"` // prefix for both FAQ questions and queries
	BatchSize   int    `yaml:"batch_size"`
}

// ClassifierConfig holds the intent classification provider.
type ClassifierConfig struct {
	Provider string `yaml:"provider"` // openai, gemini (default: openai)
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // openai only
	Model    string `yaml:"model"`
}

// CacheConfig holds the optional Redis/Valkey embedding cache.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	TTLSec           int      `yaml:"ttl_sec"` // 0 = no expiry
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.RateLimit.RPS > 0 && c.HTTP.RateLimit.Burst <= 0 {
		c.HTTP.RateLimit.Burst = max(1, int(c.HTTP.RateLimit.RPS))
	}
	if c.Catalog.MaxDisplayResults <= 0 {
		c.Catalog.MaxDisplayResults = 5
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = ProviderOpenAI
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.BatchSize <= 0 {
		c.Embedding.BatchSize = 256
	}
	if c.Classifier.Provider == "" {
		c.Classifier.Provider = ProviderOpenAI
	}
	if c.Classifier.Model == "" {
		switch c.Classifier.Provider {
		case ProviderGemini:
			c.Classifier.Model = "gemini-1.5-flash"
		default:
			c.Classifier.Model = "gpt-4o-mini"
		}
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "catalogqa:emb:"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
// Missing credentials and data paths wrap domain.ErrConfiguration.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimit.RPS < 0 {
		return fmt.Errorf("http.rate_limit.rps must be non-negative, got %v", c.HTTP.RateLimit.RPS)
	}
	if c.Data.CatalogPath == "" {
		return fmt.Errorf("data.catalog_path is required: %w", domain.ErrConfiguration)
	}
	if c.Data.FAQPath == "" {
		return fmt.Errorf("data.faq_path is required: %w", domain.ErrConfiguration)
	}
	if c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.api_key is required: %w", domain.ErrConfiguration)
	}
	if c.Embedding.Dimensions < 0 {
		return fmt.Errorf("embedding.dimensions must be non-negative, got %d", c.Embedding.Dimensions)
	}
	switch c.Classifier.Provider {
	case ProviderOpenAI, ProviderGemini:
		// ok
	default:
		return fmt.Errorf("classifier.provider must be %q or %q, got %q",
			ProviderOpenAI, ProviderGemini, c.Classifier.Provider)
	}
	if c.Classifier.APIKey == "" {
		return fmt.Errorf("classifier.api_key is required: %w", domain.ErrConfiguration)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled: %w", domain.ErrConfiguration)
	}
	if c.Cache.TTLSec < 0 {
		return fmt.Errorf("cache.ttl_sec must be non-negative, got %d", c.Cache.TTLSec)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
