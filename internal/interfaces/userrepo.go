package interfaces

import (
	"context"

	"github.com/haguru/sakura/internal/models"
)

// UserRepository stores the whole user collection as a single unit.
// Every operation reads the full collection and, when mutating, writes the
// full collection back. There is no per-record access.
type UserRepository interface {
	// Load returns every persisted record in insertion order. When nothing has
	// been persisted yet it stores an empty collection and returns it.
	Load(ctx context.Context) ([]models.User, error)
	// Save replaces the persisted collection. A reader never observes a
	// partially written collection.
	Save(ctx context.Context, users []models.User) error
	// Init prepares the backend (files, tables, indices).
	Init(ctx context.Context) error
	Close(ctx context.Context) error
}
