package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	healthuc "github.com/kailas-cloud/catalogqa/internal/usecase/health"
	queryuc "github.com/kailas-cloud/catalogqa/internal/usecase/query"
	"github.com/kailas-cloud/catalogqa/internal/version"
)

// MaxProductsLimit caps the limit parameter of GET /v1/products.
const MaxProductsLimit = 100

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// QueryAnswerer is the query use case consumed by the HTTP layer.
type QueryAnswerer interface {
	Answer(ctx context.Context, text string) (queryuc.Response, error)
	SearchProducts(ctx context.Context, text string, limit int) (queryuc.Response, error)
	LookupFAQ(ctx context.Context, text string) (queryuc.Response, error)
}

// HealthReporter is the health use case consumed by the HTTP layer.
type HealthReporter interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the catalogqa HTTP API.
type Server struct {
	queries       QueryAnswerer
	health        HealthReporter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(queries QueryAnswerer, health HealthReporter, logger *zap.Logger) *Server {
	s := &Server{
		queries: queries,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrClassificationFailed, http.StatusBadGateway, ErrorCodeClassificationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, ErrorCodeEmbeddingProvider),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadGateway, ErrorCodeVectorDimMismatch),
	}
	return s
}

// Query handles POST /v1/query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.queries.Answer(ctx, req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, answerToAPI(resp))
}

// SearchProducts handles GET /v1/products?q=&limit=.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter q: "+err.Error())
		return
	}

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter limit: "+err.Error())
		return
	}
	n := 0
	if limit != nil {
		if *limit <= 0 || *limit > MaxProductsLimit {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
				"limit must be between 1 and "+strconv.Itoa(MaxProductsLimit))
			return
		}
		n = *limit
	}

	resp, err := s.queries.SearchProducts(r.Context(), q, n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, answerToAPI(resp))
}

// LookupFAQ handles GET /v1/faq?q=.
func (s *Server) LookupFAQ(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter q: "+err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.queries.LookupFAQ(ctx, q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, answerToAPI(resp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func answerToAPI(r queryuc.Response) AnswerResponse {
	out := AnswerResponse{
		ID:     r.ID.String(),
		Intent: r.Intent.String(),
		Answer: r.Text,
		Total:  r.Total,
	}

	if r.Intent == domain.IntentProduct {
		out.Filter = r.Spec.String()
		out.Products = make([]ProductItem, len(r.Products))
		for i, p := range r.Products {
			out.Products[i] = ProductItem{
				Name:     p.Name(),
				Category: p.Category().String(),
				Price:    p.Price(),
				Rating:   p.Rating(),
				Stock:    p.Stock(),
			}
		}
	}

	if r.FAQIndex >= 0 {
		idx := r.FAQIndex
		out.FAQIndex = &idx
		out.MatchedQuestion = r.MatchedQuestion
	}
	return out
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrClassificationFailed,
		domain.ErrEmbeddingProviderError,
		domain.ErrVectorDimMismatch,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := zap.String("request_id", middleware.GetReqID(r.Context()))
	s.logger.Warn("domain error", reqID, zap.Error(err))

	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", reqID, zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
