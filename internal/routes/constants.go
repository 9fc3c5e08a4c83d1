package routes

var (
	RequestDurationSecondsBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
)

const (
	// API route constants
	RegisterRouteAPI = "/register"
	LoginRouteAPI    = "/login"
	ProfileRouteAPI  = "/profile"
	MetricsRouteAPI  = "/metrics"
	HealthRouteAPI   = "/health"

	// operation labels
	OperationRegister       = "register"
	OperationLogin          = "login"
	OperationListProfiles   = "list_profiles"
	OperationUpdateUsername = "update_username"

	// message constants
	MsgUserRegistered  = "User registered successfully"
	MsgLoginSuccessful = "Login successful"
	MsgUsernameUpdated = "Username updated successfully"
	MsgRouteNotFound   = "Route not found"
	StatusOK           = "ok"
	StatusUnavailable  = "unavailable"

	// Error messages
	ErrInvalidContentType  = "Content-Type must be application/json"
	ErrInvalidRequestBody  = "Invalid request body"
	ErrRequestBodyTooLarge = "Request body too large"
	ErrAllFieldsRequired   = "All fields are required"
	ErrCredentialsRequired = "Email and password are required"
	ErrUserIDRequired      = "User ID is required"

	// metrics constants
	UsersRegisteredTotal       = "users_registered_total"
	UsersRegisteredTotalHelp   = "Total number of accounts created"
	RequestsTotal              = "requests_total"
	RequestsTotalHelp          = "Total number of account requests by operation and outcome"
	RequestDurationSeconds     = "request_duration_seconds"
	RequestDurationSecondsHelp = "Duration of account requests in seconds"
	OutcomeSuccess             = "success"
)
