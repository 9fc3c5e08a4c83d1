// Package response writes JSON bodies for HTTP handlers and middleware.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/haguru/sakura/internal/models/dto"
)

const (
	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentTypeHeader, ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": message}.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, dto.ErrorResponseDTO{Error: message})
}
