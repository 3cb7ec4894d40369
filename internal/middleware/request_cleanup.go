package middleware

import (
	"io"
	"net/http"
)

// DrainAndCloseRequest drains whatever the handler left unread (e.g. a rejected photo upload) so the connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
