package interfaces

import (
	"context"

	"github.com/haguru/sakura/internal/models"
)

// AccountService holds the account rules: registration, credential checks,
// profile listing and username changes.
type AccountService interface {
	Register(ctx context.Context, username, email, password string) (*models.PublicUser, error)
	Authenticate(ctx context.Context, email, password string) (*models.PublicUser, error)
	ListProfiles(ctx context.Context) ([]models.PublicUser, error)
	UpdateUsername(ctx context.Context, userID, newUsername string) (*models.PublicUser, error)
}
