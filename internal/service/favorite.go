package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// FavoriteService manages the user ↔ person and user ↔ planet links.
// Users are always identified by email.
//
// Guard order for Add: email present → user exists → entity exists → link
// absent. The last check is the insert itself (see
// repository.FavoriteRepository), so two concurrent adds of the same pair
// produce one row and one conflict.
type FavoriteService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewFavoriteService(store repository.Store, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{store: store, logger: logger}
}

func (s *FavoriteService) AddPerson(ctx context.Context, email string, personID int64) (*model.Favorite, error) {
	return s.add(ctx, model.FavoritePerson, email, personID)
}

func (s *FavoriteService) AddPlanet(ctx context.Context, email string, planetID int64) (*model.Favorite, error) {
	return s.add(ctx, model.FavoritePlanet, email, planetID)
}

func (s *FavoriteService) RemovePerson(ctx context.Context, email string, personID int64) error {
	return s.remove(ctx, model.FavoritePerson, email, personID)
}

func (s *FavoriteService) RemovePlanet(ctx context.Context, email string, planetID int64) error {
	return s.remove(ctx, model.FavoritePlanet, email, planetID)
}

// List returns every favorite of the user, people first. A user with no
// favorites gets an empty slice, not an error.
func (s *FavoriteService) List(ctx context.Context, email string) ([]model.Favorite, error) {
	email, err := requireField("email", email)
	if err != nil {
		return nil, err
	}

	var favorites []model.Favorite
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		user, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		favorites, err = tx.Favorites().ListByUser(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, s.fail("listing favorites", email, err)
	}

	return favorites, nil
}

func (s *FavoriteService) add(ctx context.Context, kind model.FavoriteKind, email string, entityID int64) (*model.Favorite, error) {
	email, err := requireField("email", email)
	if err != nil {
		return nil, err
	}

	var fav *model.Favorite
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		user, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		name, err := entityName(ctx, tx, kind, entityID)
		if err != nil {
			return err
		}

		if err := tx.Favorites().Add(ctx, kind, user.ID, entityID); err != nil {
			return err
		}

		fav = &model.Favorite{
			Kind:       kind,
			UserID:     user.ID,
			EntityID:   entityID,
			EntityName: name,
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("adding favorite "+string(kind), email, err)
	}

	s.logger.Info("favorite added",
		slog.String("kind", string(kind)),
		slog.String("email", email),
		slog.Int64("entityID", entityID),
	)
	return fav, nil
}

func (s *FavoriteService) remove(ctx context.Context, kind model.FavoriteKind, email string, entityID int64) error {
	email, err := requireField("email", email)
	if err != nil {
		return err
	}

	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		user, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		return tx.Favorites().Remove(ctx, kind, user.ID, entityID)
	})
	if err != nil {
		return s.fail("removing favorite "+string(kind), email, err)
	}

	s.logger.Info("favorite removed",
		slog.String("kind", string(kind)),
		slog.String("email", email),
		slog.Int64("entityID", entityID),
	)
	return nil
}

// entityName resolves the favorited entity, failing with ErrNotFound if it
// does not exist.
func entityName(ctx context.Context, tx repository.Tx, kind model.FavoriteKind, id int64) (string, error) {
	switch kind {
	case model.FavoritePerson:
		p, err := tx.People().GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return p.Name, nil
	case model.FavoritePlanet:
		p, err := tx.Planets().GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return p.Name, nil
	default:
		return "", fmt.Errorf("unknown favorite kind %q", kind)
	}
}

// fail passes domain errors through untouched and logs and wraps anything
// else.
func (s *FavoriteService) fail(op, email string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	s.logger.Error("favorite operation failed",
		slog.String("op", op),
		slog.String("email", email),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("%s: %w", op, err)
}
