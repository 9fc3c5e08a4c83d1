package interfaces

// PasswordHasher produces and checks one-way salted password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. Malformed hashes never match.
	Verify(password, hash string) bool
}

// AccessGate decides whether a supplied API key grants access to protected operations.
type AccessGate interface {
	CheckAccess(suppliedKey string) bool
}
