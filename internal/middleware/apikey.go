package middleware

import (
	"net/http"

	"github.com/haguru/sakura/internal/auth"
	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/pkg/response"
)

// APIKey rejects requests whose X-API-Key header the gate does not accept.
// The body is not read on rejection.
func APIKey(gate interfaces.AccessGate, logger interfaces.Logger) interfaces.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.CheckAccess(r.Header.Get(auth.APIKeyHeader)) {
				logger.Warn("rejected request with invalid api key", "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()))
				response.WriteError(w, http.StatusUnauthorized, MsgInvalidAPIKey)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
