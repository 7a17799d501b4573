package sqlstore

import (
	"context"
	"fmt"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

var _ repository.FavoriteRepository = (*favoriteRepo)(nil)

type favoriteRepo struct {
	q *querier
}

// favoriteTable maps a kind to its join table and entity column. Only these
// fixed identifiers are ever interpolated into SQL.
type favoriteTable struct {
	table  string
	column string
}

var favoriteTables = map[model.FavoriteKind]favoriteTable{
	model.FavoritePerson: {table: "user_person_favorites", column: "person_id"},
	model.FavoritePlanet: {table: "user_planet_favorites", column: "planet_id"},
}

func tableFor(kind model.FavoriteKind) (favoriteTable, error) {
	t, ok := favoriteTables[kind]
	if !ok {
		return favoriteTable{}, fmt.Errorf("sqlstore: unknown favorite kind %q", kind)
	}
	return t, nil
}

func linkKey(kind model.FavoriteKind, userID, entityID int64) (string, string) {
	return fmt.Sprintf("favorite %s", kind), fmt.Sprintf("%d/%d", userID, entityID)
}

// Add inserts the link. The composite primary key is the duplicate guard: a
// second insert of the same pair affects zero rows and becomes a conflict.
func (r *favoriteRepo) Add(ctx context.Context, kind model.FavoriteKind, userID, entityID int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	result, err := r.q.exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (user_id, %s) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			t.table, t.column),
		userID, entityID,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: adding %s favorite %d/%d: %w", kind, userID, entityID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.Conflict(linkKey(kind, userID, entityID))
	}
	return nil
}

// Remove deletes the link, reporting apperror.ErrNotFound if it was absent.
func (r *favoriteRepo) Remove(ctx context.Context, kind model.FavoriteKind, userID, entityID int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	result, err := r.q.exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE user_id = ? AND %s = ?`, t.table, t.column),
		userID, entityID,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: removing %s favorite %d/%d: %w", kind, userID, entityID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(linkKey(kind, userID, entityID))
	}
	return nil
}

// ListByUser returns the user's person links followed by planet links, each
// group ordered by entity id, with the entity name joined in.
func (r *favoriteRepo) ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error) {
	rows, err := r.q.query(ctx,
		`SELECT 'person' AS kind, f.user_id, p.id, p.name
		   FROM user_person_favorites f
		   JOIN people p ON p.id = f.person_id
		  WHERE f.user_id = ?
		 UNION ALL
		 SELECT 'planet' AS kind, f.user_id, pl.id, pl.name
		   FROM user_planet_favorites f
		   JOIN planets pl ON pl.id = f.planet_id
		  WHERE f.user_id = ?
		 ORDER BY 1, 3`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing favorites of user %d: %w", userID, err)
	}
	defer rows.Close()

	favorites := []model.Favorite{}
	for rows.Next() {
		var (
			f    model.Favorite
			kind string
		)
		if err := rows.Scan(&kind, &f.UserID, &f.EntityID, &f.EntityName); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning favorite row: %w", err)
		}
		f.Kind = model.FavoriteKind(kind)
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating favorites: %w", err)
	}

	return favorites, nil
}
