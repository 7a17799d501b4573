package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

func TestPersonCreate_RoundTrip(t *testing.T) {
	svc := NewPersonService(newMemStore(), discardLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Person{Name: " Luke Skywalker ", Height: "172", Weight: "77", Gender: "male"})
	require.NoError(t, err)
	assert.Equal(t, "Luke Skywalker", created.Name)

	found, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *found)
}

func TestPersonCreate_RequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		in        model.Person
		wantField string
	}{
		{"missing name", model.Person{Gender: "female"}, "name"},
		{"missing gender", model.Person{Name: "Rey"}, "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			svc := NewPersonService(store, discardLogger())

			_, err := svc.Create(context.Background(), tt.in)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Empty(t, store.people)
		})
	}
}

func TestPersonCreate_OptionalFieldsMayBeEmpty(t *testing.T) {
	svc := NewPersonService(newMemStore(), discardLogger())

	p, err := svc.Create(context.Background(), model.Person{Name: "Maz Kanata", Gender: "female"})
	require.NoError(t, err)
	assert.Empty(t, p.Height)
	assert.Empty(t, p.Weight)
}

func TestPersonGet_NotFound(t *testing.T) {
	svc := NewPersonService(newMemStore(), discardLogger())

	_, err := svc.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestPersonList(t *testing.T) {
	svc := NewPersonService(newMemStore(), discardLogger())
	ctx := context.Background()

	for _, name := range []string{"Finn", "Poe Dameron"} {
		_, err := svc.Create(ctx, model.Person{Name: name, Gender: "male"})
		require.NoError(t, err)
	}

	people, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Finn", people[0].Name)
}

func TestPlanetCreate_RoundTrip(t *testing.T) {
	svc := NewPlanetService(newMemStore(), discardLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Planet{Name: "Tatooine", Climate: "arid", Terrain: "desert", Resources: "none"})
	require.NoError(t, err)

	found, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Planet{ID: created.ID, Name: "Tatooine", Climate: "arid", Terrain: "desert", Resources: "none"}, *found)
}

func TestPlanetCreate_MissingName(t *testing.T) {
	store := newMemStore()
	svc := NewPlanetService(store, discardLogger())

	_, err := svc.Create(context.Background(), model.Planet{Climate: "frozen"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Empty(t, store.planets)
}

func TestPlanetGet_NotFound(t *testing.T) {
	svc := NewPlanetService(newMemStore(), discardLogger())

	_, err := svc.Get(context.Background(), 7)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestPlanetList_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.txErr = errDatabaseDown
	svc := NewPlanetService(store, discardLogger())

	_, err := svc.List(context.Background())
	assert.True(t, errors.Is(err, errDatabaseDown))
}
