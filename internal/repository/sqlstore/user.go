package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct {
	q *querier
}

// Create inserts a user. The UNIQUE constraint on email decides duplicates:
// ON CONFLICT DO NOTHING makes the insert return no row, which surfaces as
// sql.ErrNoRows from Scan and is reported as a conflict.
func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	err := r.q.queryRow(ctx,
		`INSERT INTO users (email, password, is_active)
		 VALUES (?, ?, ?)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id`,
		user.Email,
		user.PasswordHash,
		user.IsActive,
	).Scan(&user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.Conflict("user", user.Email)
		}
		return fmt.Errorf("sqlstore: inserting user %s: %w", user.Email, err)
	}
	return nil
}

// GetByEmail returns apperror.ErrNotFound if no user has that email.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.q.queryRow(ctx,
		`SELECT id, email, password, is_active FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlstore: getting user %s: %w", email, err)
	}

	return &u, nil
}

// List returns every user ordered by id.
func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.q.query(ctx,
		`SELECT id, email, password, is_active FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating users: %w", err)
	}

	return users, nil
}
