package interfaces

import (
	"context"
	"net/http"
)

// Middleware wraps an http.Handler with extra behaviour.
type Middleware func(http.Handler) http.Handler

// Server interface defines the methods for a server implementation.
type Server interface {
	AddRoute(route string, handler func(w http.ResponseWriter, r *http.Request)) error
	// SetNotFound installs the handler used when no route matches.
	SetNotFound(handler func(w http.ResponseWriter, r *http.Request))
	// Use appends middleware; the first one added is the outermost.
	Use(middleware ...Middleware)
	Handler() http.Handler
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}
