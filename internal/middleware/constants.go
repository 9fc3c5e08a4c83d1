package middleware

const (
	RequestIDHeader = "X-Request-ID"

	// DefaultMaxBodyBytes caps request bodies at 1 MiB.
	DefaultMaxBodyBytes = 1 << 20

	MsgTooManyRequests = "Too many requests. Please try again later."
	MsgInvalidAPIKey   = "Invalid API key"
)
