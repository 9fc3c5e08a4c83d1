package middleware

import (
	"net/http"

	"github.com/haguru/sakura/internal/interfaces"
)

// BodyLimit caps the request body; reads past maxBytes fail with *http.MaxBytesError.
func BodyLimit(maxBytes int64) interfaces.Middleware {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
