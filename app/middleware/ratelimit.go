package appMiddleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api"
)

// Per-IP limiters. Counters live in process memory, so enforcement is
// per-instance; httprate's LimitCounter option is the seam for swapping in a
// shared store when the service runs on more than one node.

// RateLimit builds a per-IP limiter that answers over-quota requests with the
// standard RATE_LIMIT_EXCEEDED JSON body.
func RateLimit(rule config.LimitRule, message string) func(next http.Handler) http.Handler {
	return httprate.Limit(
		rule.Max,
		rule.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			api.ErrorResponse(w, r, http.StatusTooManyRequests, api.CodeRateLimitExceeded, message)
		}),
	)
}

// GeneralLimiter covers the whole API: 100 requests per 15 minutes per IP.
func GeneralLimiter(rule config.LimitRule) func(next http.Handler) http.Handler {
	if rule.Max == 0 {
		rule = config.LimitRule{Max: 100, Window: 15 * time.Minute}
	}
	return RateLimit(rule, "Too many requests, please try again later")
}

// AILimiter is deliberately strict: every request behind it invokes a metered
// external model API. 10 requests per 15 minutes per IP.
func AILimiter(rule config.LimitRule) func(next http.Handler) http.Handler {
	if rule.Max == 0 {
		rule = config.LimitRule{Max: 10, Window: 15 * time.Minute}
	}
	return RateLimit(rule, "Too many AI generation requests, please try again later")
}

// AuthLimiter slows brute-force attempts: 5 requests per minute per IP.
func AuthLimiter(rule config.LimitRule) func(next http.Handler) http.Handler {
	if rule.Max == 0 {
		rule = config.LimitRule{Max: 5, Window: time.Minute}
	}
	return RateLimit(rule, "Too many authentication attempts, please try again later")
}
