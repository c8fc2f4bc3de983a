package chi

// ErrorCode is a machine-readable error code returned to API clients.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest           ErrorCode = "bad_request"
	ErrorCodeValidationFailed     ErrorCode = "validation_failed"
	ErrorCodeUnauthorized         ErrorCode = "unauthorized"
	ErrorCodeRateLimited          ErrorCode = "rate_limited"
	ErrorCodeClassificationFailed ErrorCode = "classification_failed"
	ErrorCodeEmbeddingProvider    ErrorCode = "embedding_provider_error"
	ErrorCodeVectorDimMismatch    ErrorCode = "vector_dim_mismatch"
	ErrorCodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// QueryRequest is the body of POST /v1/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// ProductItem is a product in an answer.
type ProductItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Stock    int     `json:"stock"`
}

// AnswerResponse is returned by the query, products and FAQ endpoints.
type AnswerResponse struct {
	ID     string `json:"id"`
	Intent string `json:"intent"`
	Answer string `json:"answer"`

	Filter   string        `json:"filter,omitempty"`
	Products []ProductItem `json:"products,omitempty"`
	Total    int           `json:"total"`

	FAQIndex        *int   `json:"faq_index,omitempty"`
	MatchedQuestion string `json:"matched_question,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}
