package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/2beens/healthstats/internal/telemetry/tracing"
	"github.com/2beens/healthstats/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const AuthTokenHeader = "X-HEALTHSTATS-TOKEN"

type AuthMiddlewareHandler struct {
	clientSecretHash     string
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string

	// bcrypt is slow, so the last accepted token is remembered
	mu            sync.RWMutex
	verifiedToken string
}

func NewAuthMiddlewareHandler(clientSecretHash string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		clientSecretHash: clientSecretHash,
		allowedPaths: map[string]bool{
			// google redirects the browser here, no custom headers possible
			"/oauth2callback": true,
			"/auth_status":    true,
		},
		allowedPathsPrefixes: []string{
			"/authorize-google-calendar/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) tokenValid(token string) bool {
	h.mu.RLock()
	known := h.verifiedToken != "" && h.verifiedToken == token
	h.mu.RUnlock()
	if known {
		return true
	}

	if !pkg.CheckSecretHash(token, h.clientSecretHash) {
		return false
	}

	h.mu.Lock()
	h.verifiedToken = token
	h.mu.Unlock()
	return true
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	if h.clientSecretHash == "" {
		log.Warnln("client secret hash not set, API auth check disabled")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.clientSecretHash == "" || h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(AuthTokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if !h.tokenValid(authToken) {
				log.Warnf("[invalid token] [auth middleware] unauthorized => %s from %s", r.URL.Path, r.RemoteAddr)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
