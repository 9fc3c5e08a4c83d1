package dto

import "github.com/haguru/sakura/internal/models"

type RegisterRequestDTO struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponseDTO is shared by register, login and username update.
type UserResponseDTO struct {
	Message string             `json:"message"`
	User    *models.PublicUser `json:"user"`
}
