package auth

import (
	"crypto/subtle"

	"github.com/haguru/sakura/internal/interfaces"
)

const (
	// APIKeyHeader carries the shared secret on protected requests.
	APIKeyHeader = "X-API-Key"
)

// APIKeyGate compares a supplied key with the single configured secret.
// The secret is fixed at construction.
type APIKeyGate struct {
	secret []byte
}

func NewAPIKeyGate(secret string) interfaces.AccessGate {
	return &APIKeyGate{secret: []byte(secret)}
}

// CheckAccess allows only an exact, non-empty match. A gate built with an
// empty secret denies everything.
func (g *APIKeyGate) CheckAccess(suppliedKey string) bool {
	if suppliedKey == "" || len(g.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(suppliedKey), g.secret) == 1
}
