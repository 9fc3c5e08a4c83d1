package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/haguru/sakura/internal/apperrors"
	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/pkg/response"
)

// Recovery turns a panic into a generic 500 and logs the stack.
func Recovery(logger interfaces.Logger) interfaces.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						"panic", rec,
						"path", r.URL.Path,
						"request_id", RequestIDFromContext(r.Context()),
						"stack", string(debug.Stack()),
					)
					response.WriteError(w, http.StatusInternalServerError, apperrors.GenericMessage)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
