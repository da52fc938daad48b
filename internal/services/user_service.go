package services

import (
	"context"
	"fmt"

	"journal/internal/models"
	"journal/internal/repositories"
	"journal/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// EventPublisher receives user lifecycle events. *rabbitmq.Client
// implements it.
type EventPublisher interface {
	PublishUserEvent(event rabbitmq.UserEvent) error
}

// UserService handles business logic related to users.
type UserService struct {
	repo     repositories.UserRepository
	events   EventPublisher // nil disables publishing
	hashCost int
}

// UserServiceOption configures a UserService.
type UserServiceOption func(*UserService)

// WithPasswordCost sets the bcrypt cost used for new passwords.
func WithPasswordCost(cost int) UserServiceOption {
	return func(s *UserService) {
		s.hashCost = cost
	}
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(repo repositories.UserRepository, events EventPublisher, opts ...UserServiceOption) *UserService {
	s := &UserService{
		repo:     repo,
		events:   events,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// GetUser retrieves a user by ID. A nil user means it does not exist.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateUser stores a new user with a bcrypt hash in place of the password.
// A taken username surfaces as *repositories.ConflictError.
func (s *UserService) CreateUser(ctx context.Context, draft models.UserCreate) (*models.User, error) {
	hashed, err := s.hash(draft.Password)
	if err != nil {
		return nil, err
	}
	draft.Password = hashed

	user, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, rabbitmq.UserCreated, user)
	return user, nil
}

// UpdateUser applies patch to the user. With partial set only the supplied
// fields change. A supplied password is hashed before it is written.
func (s *UserService) UpdateUser(ctx context.Context, id uint, patch models.UserPatch, partial bool) (*models.User, error) {
	if patch.Password.Set {
		hashed, err := s.hash(patch.Password.Value)
		if err != nil {
			return nil, err
		}
		patch.Password.Value = hashed
	}

	user, err := s.repo.Update(ctx, id, patch, partial)
	if err != nil || user == nil {
		return user, err
	}
	s.publish(ctx, rabbitmq.UserUpdated, user)
	return user, nil
}

// DeleteUser removes the user and returns its last state.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	s.publish(ctx, rabbitmq.UserDeleted, user)
	return user, nil
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// publish never fails the request; a lost event is only logged.
func (s *UserService) publish(ctx context.Context, event string, user *models.User) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishUserEvent(rabbitmq.NewUserEvent(event, user.ID, user.Username)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("event", event).Uint("user_id", user.ID).Msg("failed to publish user event")
		return
	}
	zerolog.Ctx(ctx).Debug().Str("event", event).Uint("user_id", user.ID).Msg("published user event")
}
