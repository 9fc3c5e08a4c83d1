package dto

// ErrorResponseDTO is the body of every failed request.
type ErrorResponseDTO struct {
	Error string `json:"error"`
}

type HealthResponseDTO struct {
	Status string `json:"status"`
}
