package sqlstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

func listFavorites(t *testing.T, db *DB, userID int64) []model.Favorite {
	t.Helper()
	var favs []model.Favorite
	inTx(t, db, func(tx repository.Tx) error {
		var err error
		favs, err = tx.Favorites().ListByUser(context.Background(), userID)
		return err
	})
	return favs
}

func addFavorite(db *DB, kind model.FavoriteKind, userID, entityID int64) error {
	return db.WithTx(context.Background(), func(tx repository.Tx) error {
		return tx.Favorites().Add(context.Background(), kind, userID, entityID)
	})
}

func removeFavorite(db *DB, kind model.FavoriteKind, userID, entityID int64) error {
	return db.WithTx(context.Background(), func(tx repository.Tx) error {
		return tx.Favorites().Remove(context.Background(), kind, userID, entityID)
	})
}

func TestFavoriteAdd_DuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db)
	p := createTestPerson(t, db, "Leia Organa")

	if err := addFavorite(db, model.FavoritePerson, u.ID, p.ID); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}

	err := addFavorite(db, model.FavoritePerson, u.ID, p.ID)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Add() error = %v, want ErrConflict", err)
	}

	if favs := listFavorites(t, db, u.ID); len(favs) != 1 {
		t.Errorf("ListByUser() returned %d links, want 1", len(favs))
	}
}

func TestFavoriteAdd_SameIDDifferentKind(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db)
	person := createTestPerson(t, db, "Yoda")
	planet := createTestPlanet(t, db, "Dagobah")

	// Both got id 1 in their own tables; the links are independent.
	if err := addFavorite(db, model.FavoritePerson, u.ID, person.ID); err != nil {
		t.Fatalf("Add(person) error = %v", err)
	}
	if err := addFavorite(db, model.FavoritePlanet, u.ID, planet.ID); err != nil {
		t.Fatalf("Add(planet) error = %v", err)
	}

	favs := listFavorites(t, db, u.ID)
	if len(favs) != 2 {
		t.Fatalf("ListByUser() returned %d links, want 2", len(favs))
	}
	if favs[0].Kind != model.FavoritePerson || favs[0].EntityName != "Yoda" {
		t.Errorf("favs[0] = %+v, want person Yoda", favs[0])
	}
	if favs[1].Kind != model.FavoritePlanet || favs[1].EntityName != "Dagobah" {
		t.Errorf("favs[1] = %+v, want planet Dagobah", favs[1])
	}
}

func TestFavoriteAdd_MissingEntityFailsForeignKey(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db)

	if err := addFavorite(db, model.FavoritePlanet, u.ID, 404); err == nil {
		t.Fatal("Add() for a missing planet should violate the foreign key")
	}
}

func TestFavoriteAdd_ConcurrentDuplicatesInsertOnce(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db)
	p := createTestPlanet(t, db, "Hoth")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := addFavorite(db, model.FavoritePlanet, u.ID, p.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperror.ErrConflict):
				conflicts++
			default:
				t.Errorf("Add() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || conflicts != workers-1 {
		t.Errorf("ok = %d, conflicts = %d; want 1 and %d", ok, conflicts, workers-1)
	}
	if favs := listFavorites(t, db, u.ID); len(favs) != 1 {
		t.Errorf("ListByUser() returned %d links, want 1", len(favs))
	}
}

func TestFavoriteRemove(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db)
	p := createTestPerson(t, db, "Obi-Wan Kenobi")

	if err := addFavorite(db, model.FavoritePerson, u.ID, p.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := removeFavorite(db, model.FavoritePerson, u.ID, p.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if favs := listFavorites(t, db, u.ID); len(favs) != 0 {
		t.Errorf("ListByUser() returned %d links after Remove, want 0", len(favs))
	}

	// Absent again, so a second removal reports not found.
	err := removeFavorite(db, model.FavoritePerson, u.ID, p.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}
}

func TestFavoriteRemove_NotFoundLeavesOthers(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db)
	kept := createTestPlanet(t, db, "Naboo")
	other := createTestPlanet(t, db, "Mustafar")

	if err := addFavorite(db, model.FavoritePlanet, u.ID, kept.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	err := removeFavorite(db, model.FavoritePlanet, u.ID, other.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Remove() error = %v, want ErrNotFound", err)
	}

	favs := listFavorites(t, db, u.ID)
	if len(favs) != 1 || favs[0].EntityID != kept.ID {
		t.Errorf("ListByUser() = %+v, want only planet %d", favs, kept.ID)
	}
}

func TestFavoriteUnknownKind(t *testing.T) {
	db := newTestDB(t)

	if err := addFavorite(db, model.FavoriteKind("starship"), 1, 1); err == nil {
		t.Fatal("Add() with an unknown kind should fail")
	}
}

func TestFavoriteListByUser_Empty(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db)

	favs := listFavorites(t, db, u.ID)
	if favs == nil || len(favs) != 0 {
		t.Errorf("ListByUser() = %#v, want empty non-nil slice", favs)
	}
}
