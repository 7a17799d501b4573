package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/service"
)

// FavoriteHandler serves /users/favorites and /favorite/{people,planet}/{id}.
//
// The user is always identified by email, sent in the JSON body:
//
//	{"email": "luke@tatooine.org"}
//
// GET /users/favorites also accepts ?email=..., since many clients cannot
// send a body with GET. The query parameter wins when both are present.
type FavoriteHandler struct {
	favorites *service.FavoriteService
	logger    *slog.Logger
}

func NewFavoriteHandler(favorites *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

type favoriteRequest struct {
	Email string `json:"email"`
}

func requestEmail(r *http.Request) (string, error) {
	if email := r.URL.Query().Get("email"); email != "" {
		return email, nil
	}
	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		return "", err
	}
	return req.Email, nil
}

// HandleList returns the user's combined favorites.
//
// HTTP: GET /users/favorites
// RESPONSE: 200 {"message": "ok", "results": [{"type": "person", "user_id": 1, "entity_id": 3, "name": "Yoda"}, ...]}
//
// A user without favorites gets 200 with "results": [].
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	email, err := requestEmail(r)
	if err != nil {
		writeError(w, err)
		return
	}

	favorites, err := h.favorites.List(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FavoritesResponse{
		Message: "ok",
		Results: mapRecords(favorites, newFavoriteRecord),
	})
}

// HandleAddPerson: POST /favorite/people/{id}
func (h *FavoriteHandler) HandleAddPerson(w http.ResponseWriter, r *http.Request) {
	h.handleAdd(w, r, "person", h.favorites.AddPerson)
}

// HandleAddPlanet: POST /favorite/planet/{id}
func (h *FavoriteHandler) HandleAddPlanet(w http.ResponseWriter, r *http.Request) {
	h.handleAdd(w, r, "planet", h.favorites.AddPlanet)
}

// HandleRemovePerson: DELETE /favorite/people/{id}
func (h *FavoriteHandler) HandleRemovePerson(w http.ResponseWriter, r *http.Request) {
	h.handleRemove(w, r, "person", h.favorites.RemovePerson)
}

// HandleRemovePlanet: DELETE /favorite/planet/{id}
func (h *FavoriteHandler) HandleRemovePlanet(w http.ResponseWriter, r *http.Request) {
	h.handleRemove(w, r, "planet", h.favorites.RemovePlanet)
}

type addFunc func(ctx context.Context, email string, id int64) (*model.Favorite, error)

type removeFunc func(ctx context.Context, email string, id int64) error

func (h *FavoriteHandler) handleAdd(w http.ResponseWriter, r *http.Request, resource string, add addFunc) {
	id, err := pathID(r, resource)
	if err != nil {
		writeError(w, err)
		return
	}
	email, err := requestEmail(r)
	if err != nil {
		writeError(w, err)
		return
	}

	fav, err := add(r.Context(), email, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("%s %s added to the favorites of %s", resource, fav.EntityName, email),
	})
}

func (h *FavoriteHandler) handleRemove(w http.ResponseWriter, r *http.Request, resource string, remove removeFunc) {
	id, err := pathID(r, resource)
	if err != nil {
		writeError(w, err)
		return
	}
	email, err := requestEmail(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := remove(r.Context(), email, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("%s %d removed from the favorites of %s", resource, id, email),
	})
}
