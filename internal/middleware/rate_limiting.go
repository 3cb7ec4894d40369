package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/healthstats/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=rate_limiting_mocks_test.go -package=middleware_test

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit limits requests per route and user, so one user cannot
// exhaust the Gemini quota for everyone.
func RateLimit(
	rateLimiter RequestRateLimiter,
	routeName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := routeName
			if userID := mux.Vars(r)["user_id"]; userID != "" {
				key += "::" + userID
			}

			res, err := rateLimiter.Allow(
				r.Context(),
				key,
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Errorf("rate limit [%s]: %s", key, err)
				http.Error(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			http.Error(
				w,
				fmt.Sprintf("retry after %f seconds", res.RetryAfter.Seconds()),
				http.StatusTooManyRequests,
			)
		})
	}
}
