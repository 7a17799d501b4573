package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/password"
	"github.com/sakif/starwars-api/internal/repository"
)

// PasswordHasher turns a plaintext password into the value stored in the
// users table. *password.Hasher implements it.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// UserService registers and lists users.
type UserService struct {
	store  repository.Store
	hasher PasswordHasher
	logger *slog.Logger
}

func NewUserService(store repository.Store, hasher PasswordHasher, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates an active user. Both fields are required; a duplicate
// email fails with an apperror.ErrConflict error and leaves the table as is.
func (s *UserService) Register(ctx context.Context, email, plaintext string) (*model.User, error) {
	email, err := requireField("email", email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(plaintext) == "" {
		return nil, apperror.Required("password")
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, apperror.ValidationFailed("password",
				fmt.Sprintf("password must be %d bytes or fewer", password.MaxLength))
		}
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}

	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			s.logger.Info("registration rejected: email taken", slog.String("email", email))
			return nil, err
		}
		s.logger.Error("failed to register user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("id", user.ID),
		slog.String("email", user.Email),
	)
	return user, nil
}

// List returns all users ordered by id.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		users, err = tx.Users().List(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
