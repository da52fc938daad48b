package repositories

import (
	"context"
	"errors"
	"fmt"

	"journal/internal/database"
	"journal/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository. Every
// method runs as a single transaction.
type GORMUserRepository struct {
	store *database.Store
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(store *database.Store) *GORMUserRepository {
	return &GORMUserRepository{
		store: store,
	}
}

// List retrieves all users from the database.
func (r *GORMUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.DB().WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by their ID, or nil if there is none.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.store.DB().WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// Create persists a new user built from draft.
func (r *GORMUserRepository) Create(ctx context.Context, draft models.UserCreate) (*models.User, error) {
	user := draft.NewUser()
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, r.translate(err, user.Username, "failed to create user")
	}
	return &user, nil
}

// Update loads the user and applies patch to it. A nil user means there was
// nothing to update.
func (r *GORMUserRepository) Update(ctx context.Context, id uint, patch models.UserPatch, partial bool) (*models.User, error) {
	var (
		updated   *models.User
		attempted string
	)
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		cols := patch.Apply(&user, partial)
		attempted = user.Username
		if len(cols) > 0 {
			if err := tx.Model(&user).Select(cols).Updates(&user).Error; err != nil {
				return err
			}
		}
		updated = &user
		return nil
	})
	if err != nil {
		return nil, r.translate(err, attempted, fmt.Sprintf("failed to update user %d", id))
	}
	return updated, nil
}

// Delete removes the user and returns it as it was before removal. Notes
// are removed by the database. No statement is issued for a missing user.
func (r *GORMUserRepository) Delete(ctx context.Context, id uint) (*models.User, error) {
	var deleted *models.User
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&user).Error; err != nil {
			return err
		}
		deleted = &user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete user %d: %w", id, r.store.Classify(err))
	}
	return deleted, nil
}

// translate turns a violation of the username index into a ConflictError.
// Every other failure is returned wrapped but otherwise untouched.
func (r *GORMUserRepository) translate(err error, username, op string) error {
	err = r.store.Classify(err)
	var cerr *database.ConstraintError
	if errors.As(err, &cerr) && cerr.Kind == database.UniqueViolation && cerr.Constraint == models.UsernameUniqueIndex {
		return &ConflictError{Username: username}
	}
	return fmt.Errorf("%s: %w", op, err)
}
