package catalogqa

import "github.com/kailas-cloud/catalogqa/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrConfiguration          = domain.ErrConfiguration
	ErrIngestion              = domain.ErrIngestion
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrClassificationFailed   = domain.ErrClassificationFailed
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrEmptyCorpus            = domain.ErrEmptyCorpus
	ErrVectorDimMismatch      = domain.ErrVectorDimMismatch
)
