package services

import (
	"context"

	"journal/internal/models"
	"journal/internal/repositories"
)

// NoteService handles business logic related to notes.
type NoteService struct {
	repo repositories.NoteRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(repo repositories.NoteRepository) *NoteService {
	return &NoteService{
		repo: repo,
	}
}

func (s *NoteService) ListNotes(ctx context.Context) ([]models.Note, error) {
	return s.repo.List(ctx)
}

// ListUserNotes returns repositories.ErrUnknownUser for a missing user.
func (s *NoteService) ListUserNotes(ctx context.Context, userID uint) ([]models.Note, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *NoteService) GetNote(ctx context.Context, id uint) (*models.Note, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *NoteService) CreateNote(ctx context.Context, draft models.NoteCreate) (*models.Note, error) {
	return s.repo.Create(ctx, draft)
}

func (s *NoteService) UpdateNote(ctx context.Context, id uint, patch models.NotePatch, partial bool) (*models.Note, error) {
	return s.repo.Update(ctx, id, patch, partial)
}

func (s *NoteService) DeleteNote(ctx context.Context, id uint) (*models.Note, error) {
	return s.repo.Delete(ctx, id)
}
