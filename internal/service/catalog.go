package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// PersonService creates and reads people. There is no duplicate check:
// posting the same character twice stores two rows.
type PersonService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewPersonService(store repository.Store, logger *slog.Logger) *PersonService {
	return &PersonService{store: store, logger: logger}
}

// Create requires Name and Gender; Height and Weight may be empty.
func (s *PersonService) Create(ctx context.Context, in model.Person) (*model.Person, error) {
	name, err := requireField("name", in.Name)
	if err != nil {
		return nil, err
	}
	gender, err := requireField("gender", in.Gender)
	if err != nil {
		return nil, err
	}

	person := &model.Person{
		Name:   name,
		Height: strings.TrimSpace(in.Height),
		Weight: strings.TrimSpace(in.Weight),
		Gender: gender,
	}

	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.People().Create(ctx, person)
	})
	if err != nil {
		s.logger.Error("failed to create person",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating person: %w", err)
	}

	s.logger.Info("person created", slog.Int64("id", person.ID), slog.String("name", person.Name))
	return person, nil
}

// Get returns an apperror.ErrNotFound error if id is unknown.
func (s *PersonService) Get(ctx context.Context, id int64) (*model.Person, error) {
	var person *model.Person
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		person, err = tx.People().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return person, nil
}

func (s *PersonService) List(ctx context.Context) ([]model.Person, error) {
	var people []model.Person
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		people, err = tx.People().List(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("failed to list people", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing people: %w", err)
	}
	return people, nil
}

// PlanetService is the planets counterpart of PersonService.
type PlanetService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewPlanetService(store repository.Store, logger *slog.Logger) *PlanetService {
	return &PlanetService{store: store, logger: logger}
}

// Create requires Name; the other fields may be empty.
func (s *PlanetService) Create(ctx context.Context, in model.Planet) (*model.Planet, error) {
	name, err := requireField("name", in.Name)
	if err != nil {
		return nil, err
	}

	planet := &model.Planet{
		Name:      name,
		Climate:   strings.TrimSpace(in.Climate),
		Terrain:   strings.TrimSpace(in.Terrain),
		Resources: strings.TrimSpace(in.Resources),
	}

	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Planets().Create(ctx, planet)
	})
	if err != nil {
		s.logger.Error("failed to create planet",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating planet: %w", err)
	}

	s.logger.Info("planet created", slog.Int64("id", planet.ID), slog.String("name", planet.Name))
	return planet, nil
}

func (s *PlanetService) Get(ctx context.Context, id int64) (*model.Planet, error) {
	var planet *model.Planet
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		planet, err = tx.Planets().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return planet, nil
}

func (s *PlanetService) List(ctx context.Context) ([]model.Planet, error) {
	var planets []model.Planet
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		planets, err = tx.Planets().List(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("failed to list planets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing planets: %w", err)
	}
	return planets, nil
}
