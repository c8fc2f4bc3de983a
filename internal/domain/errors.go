package domain

import "errors"

var (
	// ErrConfiguration signals a missing credential or resource at startup.
	ErrConfiguration = errors.New("configuration error")
	// ErrIngestion signals a malformed or unreadable catalog/FAQ source.
	ErrIngestion = errors.New("ingestion error")
	// ErrClassificationFailed signals an unreachable or empty classification provider.
	ErrClassificationFailed = errors.New("classification failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmptyCorpus signals an attempt to index an empty FAQ corpus.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrInvalidQuery signals a blank or unusable query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
