package chi

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/metrics"
)

// RateLimitMiddleware enforces a process-wide token bucket of rps requests
// per second with the given burst. rps <= 0 disables limiting.
// Health and metrics endpoints are never limited.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		limiter := rate.NewLimiter(rate.Limit(rps), max(burst, 1))
		retryAfter := strconv.Itoa(max(1, int(math.Round(1/rps))))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExempt(r) || limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			metrics.RateLimitedTotal.Inc()
			w.Header().Set("Retry-After", retryAfter)
			writeError(w, http.StatusTooManyRequests, ErrorCodeRateLimited, domain.ErrRateLimited.Error())
		})
	}
}
