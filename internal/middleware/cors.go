package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5000",
	"test",
}

func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	origins := map[string]bool{}
	for _, o := range defaultAllowedOrigins {
		origins[o] = true
	}
	for _, o := range allowedOrigins {
		origins[strings.TrimSuffix(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			userAgent := r.Header.Get("User-Agent")

			// browser navigations during the google consent flow
			if origin == "" && (r.URL.Path == "/oauth2callback" ||
				r.URL.Path == "/auth_status" ||
				strings.HasPrefix(r.URL.Path, "/authorize-google-calendar/")) {
				next.ServeHTTP(w, r)
				return
			}

			switch {
			case
				origins[origin],
				strings.HasPrefix(userAgent, "curl/"),
				strings.HasPrefix(userAgent, "test-agent"):
				{
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Headers",
						"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, "+AuthTokenHeader,
					)
					w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
				}
			default:
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
