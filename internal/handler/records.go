package handler

import "github.com/sakif/starwars-api/internal/model"

// Wire records. Each entity has one fixed JSON shape and one mapping
// function; model types never reach the encoder directly.

type UserRecord struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type PersonRecord struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Height string `json:"height"`
	Weight string `json:"weight"`
	Gender string `json:"gender"`
}

type PlanetRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Climate   string `json:"climate"`
	Terrain   string `json:"terrain"`
	Resources string `json:"resources"`
}

// FavoriteRecord is one link in the combined favorites list. Type is
// "person" or "planet"; EntityID and Name refer to that entity.
type FavoriteRecord struct {
	Type     string `json:"type"`
	UserID   int64  `json:"user_id"`
	EntityID int64  `json:"entity_id"`
	Name     string `json:"name"`
}

// FavoritesResponse is the body of GET /users/favorites.
type FavoritesResponse struct {
	Message string           `json:"message"`
	Results []FavoriteRecord `json:"results"`
}

func newUserRecord(u model.User) UserRecord {
	return UserRecord{ID: u.ID, Email: u.Email}
}

func newPersonRecord(p model.Person) PersonRecord {
	return PersonRecord{
		ID:     p.ID,
		Name:   p.Name,
		Height: p.Height,
		Weight: p.Weight,
		Gender: p.Gender,
	}
}

func newPlanetRecord(p model.Planet) PlanetRecord {
	return PlanetRecord{
		ID:        p.ID,
		Name:      p.Name,
		Climate:   p.Climate,
		Terrain:   p.Terrain,
		Resources: p.Resources,
	}
}

func newFavoriteRecord(f model.Favorite) FavoriteRecord {
	return FavoriteRecord{
		Type:     string(f.Kind),
		UserID:   f.UserID,
		EntityID: f.EntityID,
		Name:     f.EntityName,
	}
}

// mapRecords applies fn to every element. The result is never nil, so empty
// lists encode as [] rather than null.
func mapRecords[M, R any](in []M, fn func(M) R) []R {
	out := make([]R, 0, len(in))
	for _, m := range in {
		out = append(out, fn(m))
	}
	return out
}
