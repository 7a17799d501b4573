package model

// FavoriteKind tells which join table a favorite link lives in.
type FavoriteKind string

const (
	FavoritePerson FavoriteKind = "person"
	FavoritePlanet FavoriteKind = "planet"
)

// Favorite is one (user, entity) link. The pair (Kind, UserID, EntityID) is
// unique; EntityName is joined in from the people or planets table when the
// link is read back.
type Favorite struct {
	Kind       FavoriteKind
	UserID     int64
	EntityID   int64
	EntityName string
}
