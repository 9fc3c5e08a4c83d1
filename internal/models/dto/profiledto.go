package dto

import "github.com/haguru/sakura/internal/models"

type ProfileListResponseDTO struct {
	Users []models.PublicUser `json:"users"`
}

type UpdateUsernameRequestDTO struct {
	UserID   string `json:"userId" validate:"required"`
	Username string `json:"username"`
}
