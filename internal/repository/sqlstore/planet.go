package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

var _ repository.PlanetRepository = (*planetRepo)(nil)

type planetRepo struct {
	q *querier
}

func (r *planetRepo) Create(ctx context.Context, planet *model.Planet) error {
	err := r.q.queryRow(ctx,
		`INSERT INTO planets (name, climate, terrain, resources)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		planet.Name,
		planet.Climate,
		planet.Terrain,
		planet.Resources,
	).Scan(&planet.ID)
	if err != nil {
		return fmt.Errorf("sqlstore: inserting planet %q: %w", planet.Name, err)
	}
	return nil
}

func (r *planetRepo) GetByID(ctx context.Context, id int64) (*model.Planet, error) {
	var p model.Planet

	err := r.q.queryRow(ctx,
		`SELECT id, name, climate, terrain, resources FROM planets WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Climate, &p.Terrain, &p.Resources)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("planet", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlstore: getting planet %d: %w", id, err)
	}

	return &p, nil
}

func (r *planetRepo) List(ctx context.Context) ([]model.Planet, error) {
	rows, err := r.q.query(ctx,
		`SELECT id, name, climate, terrain, resources FROM planets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing planets: %w", err)
	}
	defer rows.Close()

	planets := []model.Planet{}
	for rows.Next() {
		var p model.Planet
		if err := rows.Scan(&p.ID, &p.Name, &p.Climate, &p.Terrain, &p.Resources); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning planet row: %w", err)
		}
		planets = append(planets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating planets: %w", err)
	}

	return planets, nil
}
