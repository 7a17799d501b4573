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

var _ repository.PersonRepository = (*personRepo)(nil)

type personRepo struct {
	q *querier
}

// Create inserts the person unconditionally and sets person.ID.
func (r *personRepo) Create(ctx context.Context, person *model.Person) error {
	err := r.q.queryRow(ctx,
		`INSERT INTO people (name, height, weight, gender)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		person.Name,
		person.Height,
		person.Weight,
		person.Gender,
	).Scan(&person.ID)
	if err != nil {
		return fmt.Errorf("sqlstore: inserting person %q: %w", person.Name, err)
	}
	return nil
}

func (r *personRepo) GetByID(ctx context.Context, id int64) (*model.Person, error) {
	var p model.Person

	err := r.q.queryRow(ctx,
		`SELECT id, name, height, weight, gender FROM people WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Height, &p.Weight, &p.Gender)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("person", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlstore: getting person %d: %w", id, err)
	}

	return &p, nil
}

func (r *personRepo) List(ctx context.Context) ([]model.Person, error) {
	rows, err := r.q.query(ctx,
		`SELECT id, name, height, weight, gender FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing people: %w", err)
	}
	defer rows.Close()

	people := []model.Person{}
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Height, &p.Weight, &p.Gender); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning person row: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating people: %w", err)
	}

	return people, nil
}
