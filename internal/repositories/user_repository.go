package repositories

import (
	"context"

	"journal/internal/models"
)

// UserRepository defines the interface for user data access.
// Lookups of a missing id return a nil user and a nil error.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, draft models.UserCreate) (*models.User, error)
	Update(ctx context.Context, id uint, patch models.UserPatch, partial bool) (*models.User, error)
	Delete(ctx context.Context, id uint) (*models.User, error)
}

// NoteRepository defines the interface for note data access.
type NoteRepository interface {
	List(ctx context.Context) ([]models.Note, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Note, error)
	GetByID(ctx context.Context, id uint) (*models.Note, error)
	Create(ctx context.Context, draft models.NoteCreate) (*models.Note, error)
	Update(ctx context.Context, id uint, patch models.NotePatch, partial bool) (*models.Note, error)
	Delete(ctx context.Context, id uint) (*models.Note, error)
}
