package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// =========================================================================
// MOCK STORE
// =========================================================================
//
// memStore implements repository.Store with maps. It mirrors the sqlstore
// contracts (conflict on duplicate email/link, not found on missing rows) but
// has no rollback: tests that need rollback behaviour live in sqlstore.
//
// Setting txErr makes every WithTx call fail before fn runs, which simulates
// the database being unavailable.

type favKey struct {
	kind     model.FavoriteKind
	userID   int64
	entityID int64
}

type memStore struct {
	mu        sync.Mutex
	users     []model.User
	people    map[int64]model.Person
	planets   map[int64]model.Planet
	favorites map[favKey]bool
	nextID    int64
	txErr     error
	txCount   int
}

var _ repository.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		people:    make(map[int64]model.Person),
		planets:   make(map[int64]model.Planet),
		favorites: make(map[favKey]bool),
	}
}

func (m *memStore) WithTx(_ context.Context, fn func(tx repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txCount++
	if m.txErr != nil {
		return m.txErr
	}
	return fn(memTx{m})
}

func (m *memStore) Ping(context.Context) error { return m.txErr }

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

type memTx struct{ m *memStore }

func (t memTx) Users() repository.UserRepository         { return memUsers(t) }
func (t memTx) People() repository.PersonRepository      { return memPeople(t) }
func (t memTx) Planets() repository.PlanetRepository     { return memPlanets(t) }
func (t memTx) Favorites() repository.FavoriteRepository { return memFavorites(t) }

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.m.users {
		if existing.Email == u.Email {
			return apperror.Conflict("user", u.Email)
		}
	}
	u.ID = r.m.id()
	r.m.users = append(r.m.users, *u)
	return nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.m.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (r memUsers) List(context.Context) ([]model.User, error) {
	return append([]model.User{}, r.m.users...), nil
}

type memPeople struct{ m *memStore }

func (r memPeople) Create(_ context.Context, p *model.Person) error {
	p.ID = r.m.id()
	r.m.people[p.ID] = *p
	return nil
}

func (r memPeople) GetByID(_ context.Context, id int64) (*model.Person, error) {
	p, ok := r.m.people[id]
	if !ok {
		return nil, apperror.NotFound("person", strconv.FormatInt(id, 10))
	}
	return &p, nil
}

func (r memPeople) List(context.Context) ([]model.Person, error) {
	out := []model.Person{}
	for _, p := range r.m.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memPlanets struct{ m *memStore }

func (r memPlanets) Create(_ context.Context, p *model.Planet) error {
	p.ID = r.m.id()
	r.m.planets[p.ID] = *p
	return nil
}

func (r memPlanets) GetByID(_ context.Context, id int64) (*model.Planet, error) {
	p, ok := r.m.planets[id]
	if !ok {
		return nil, apperror.NotFound("planet", strconv.FormatInt(id, 10))
	}
	return &p, nil
}

func (r memPlanets) List(context.Context) ([]model.Planet, error) {
	out := []model.Planet{}
	for _, p := range r.m.planets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memFavorites struct{ m *memStore }

func (r memFavorites) Add(_ context.Context, kind model.FavoriteKind, userID, entityID int64) error {
	k := favKey{kind, userID, entityID}
	if r.m.favorites[k] {
		return apperror.Conflict("favorite "+string(kind), fmt.Sprintf("%d/%d", userID, entityID))
	}
	r.m.favorites[k] = true
	return nil
}

func (r memFavorites) Remove(_ context.Context, kind model.FavoriteKind, userID, entityID int64) error {
	k := favKey{kind, userID, entityID}
	if !r.m.favorites[k] {
		return apperror.NotFound("favorite "+string(kind), fmt.Sprintf("%d/%d", userID, entityID))
	}
	delete(r.m.favorites, k)
	return nil
}

func (r memFavorites) ListByUser(_ context.Context, userID int64) ([]model.Favorite, error) {
	out := []model.Favorite{}
	for k := range r.m.favorites {
		if k.userID != userID {
			continue
		}
		f := model.Favorite{Kind: k.kind, UserID: userID, EntityID: k.entityID}
		if k.kind == model.FavoritePerson {
			f.EntityName = r.m.people[k.entityID].Name
		} else {
			f.EntityName = r.m.planets[k.entityID].Name
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].EntityID < out[j].EntityID
	})
	return out, nil
}

// =========================================================================
// HELPERS
// =========================================================================

// plainHasher stands in for bcrypt so tests stay fast and deterministic.
type plainHasher struct{ err error }

func (h plainHasher) Hash(p string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + p, nil
}

var errDatabaseDown = errors.New("database is down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
