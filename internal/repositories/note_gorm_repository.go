package repositories

import (
	"context"
	"errors"
	"fmt"

	"journal/internal/database"
	"journal/internal/models"

	"gorm.io/gorm"
)

// GORMNoteRepository is a GORM implementation of NoteRepository. Notes are
// always returned with their owner preloaded.
type GORMNoteRepository struct {
	store *database.Store
}

// NewGORMNoteRepository creates a new instance of GORMNoteRepository.
func NewGORMNoteRepository(store *database.Store) *GORMNoteRepository {
	return &GORMNoteRepository{
		store: store,
	}
}

func (r *GORMNoteRepository) List(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := r.store.DB().WithContext(ctx).Preload("User").Order("id").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all notes: %w", err)
	}
	return notes, nil
}

// ListByUser returns the notes of one user, or ErrUnknownUser.
func (r *GORMNoteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Note, error) {
	var notes []models.Note
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Select("id").First(&owner, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownUser
			}
			return err
		}
		return tx.Preload("User").Where("user_id = ?", userID).Order("id").Find(&notes).Error
	})
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get notes of user %d: %w", userID, err)
	}
	return notes, nil
}

func (r *GORMNoteRepository) GetByID(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	if err := r.store.DB().WithContext(ctx).Preload("User").First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note by ID %d: %w", id, err)
	}
	return &note, nil
}

// Create persists a note for an existing user.
func (r *GORMNoteRepository) Create(ctx context.Context, draft models.NoteCreate) (*models.Note, error) {
	note := draft.NewNote()
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return tx.Preload("User").First(&note, note.ID).Error
	})
	if err != nil {
		return nil, r.translate(err, "failed to create note")
	}
	return &note, nil
}

func (r *GORMNoteRepository) Update(ctx context.Context, id uint, patch models.NotePatch, partial bool) (*models.Note, error) {
	var updated *models.Note
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note models.Note
		if err := tx.Preload("User").First(&note, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if cols := patch.Apply(&note, partial); len(cols) > 0 {
			if err := tx.Model(&note).Select(cols).Updates(&note).Error; err != nil {
				return err
			}
		}
		updated = &note
		return nil
	})
	if err != nil {
		return nil, r.translate(err, fmt.Sprintf("failed to update note %d", id))
	}
	return updated, nil
}

func (r *GORMNoteRepository) Delete(ctx context.Context, id uint) (*models.Note, error) {
	var deleted *models.Note
	err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note models.Note
		if err := tx.Preload("User").First(&note, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&models.Note{}, note.ID).Error; err != nil {
			return err
		}
		deleted = &note
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete note %d: %w", id, r.store.Classify(err))
	}
	return deleted, nil
}

func (r *GORMNoteRepository) translate(err error, op string) error {
	err = r.store.Classify(err)
	var cerr *database.ConstraintError
	if errors.As(err, &cerr) && cerr.Kind == database.ForeignKeyViolation {
		return ErrUnknownUser
	}
	return fmt.Errorf("%s: %w", op, err)
}
