package interfaces

// Logger defines a generic logging interface.
// Key/value pairs are passed as alternating arguments, e.g. "user", email.
type Logger interface {
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	Debug(msg string, keyvals ...interface{})
	SetLevel(level string)
	WithContext(ctx map[string]interface{}) Logger
	With(keyvals ...interface{}) Logger
}
