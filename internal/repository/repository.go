// Package repository declares the storage contracts the service layer
// depends on. Implementations live in subpackages (see sqlstore).
//
// Every repository is reached through a Tx: a service opens one transaction
// per operation with Store.WithTx and passes the handle explicitly, so there
// is no process-wide session.
package repository

import (
	"context"

	"github.com/sakif/starwars-api/internal/model"
)

// Store owns the connection pool and hands out transactions.
type Store interface {
	// WithTx runs fn inside a single transaction. The transaction commits when
	// fn returns nil and rolls back otherwise; fn's error is returned as is.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
}

// Tx groups the repositories bound to one open transaction.
type Tx interface {
	Users() UserRepository
	People() PersonRepository
	Planets() PlanetRepository
	Favorites() FavoriteRepository
}

type UserRepository interface {
	// Create inserts the user and sets user.ID. Returns an apperror.ErrConflict
	// error if the email is already registered.
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	GetByID(ctx context.Context, id int64) (*model.Person, error)
	List(ctx context.Context) ([]model.Person, error)
}

type PlanetRepository interface {
	Create(ctx context.Context, planet *model.Planet) error
	GetByID(ctx context.Context, id int64) (*model.Planet, error)
	List(ctx context.Context) ([]model.Planet, error)
}

// FavoriteRepository manages both join tables. Add returns an
// apperror.ErrConflict error when the link already exists and Remove returns
// apperror.ErrNotFound when it does not; the insert and the delete are the
// only guards.
type FavoriteRepository interface {
	Add(ctx context.Context, kind model.FavoriteKind, userID, entityID int64) error
	Remove(ctx context.Context, kind model.FavoriteKind, userID, entityID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error)
}
