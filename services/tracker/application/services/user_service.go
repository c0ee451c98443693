package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghuser/worktrack/pkg/auth"
	"github.com/ghuser/worktrack/pkg/result"
	"github.com/ghuser/worktrack/services/tracker/domain"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// RegisterUserInput is the data needed to register a user.
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UserService registers and looks up users.
type UserService struct {
	repo    repositories.UserRepository
	metrics *metrics
}

// Register validates and persists a new user with a bcrypt hash of the
// password. A second registration with the same email fails with
// ErrUserAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	built := models.NewUserBuilder().
		WithFirstName(in.FirstName).
		WithLastName(in.LastName).
		WithEmail(in.Email).
		Build()
	checked := result.Combine(built.Result(), models.ValidatePassword(in.Password))
	if err := s.metrics.check(ctx, "user", checked); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := built.Value()
	user.SetPasswordHash(hash)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id models.ID[models.User]) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// SignIn returns the user owning email when password matches the stored
// hash. An unknown email and a wrong password both fail with
// auth.ErrInvalidCredentials.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil, auth.CheckPassword(nil, password)
	case err != nil:
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if err := auth.CheckPassword(user.PasswordHash(), password); err != nil {
		return nil, err
	}
	return user, nil
}
