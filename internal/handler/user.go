// Package handler contains the HTTP handlers of the API.
//
// Handlers parse the request, call one service method and write the
// response. They hold no business rules: presence checks, existence checks
// and duplicate detection all happen in the service layer, and errors come
// back as apperror values that writeError maps to status codes.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/starwars-api/internal/service"
)

// UserHandler serves registration and the user list.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a user.
//
// HTTP: POST /users
// REQUEST BODY: {"email": "luke@tatooine.org", "password": "..."}
// RESPONSE: 201 {"message": "user registered", "id": 1}
//
// A duplicate email is a 400 with error type "conflict".
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreatedResponse{
		Message: "user registered",
		ID:      user.ID,
	})
}

// HandleList returns every user as {id, email}.
//
// HTTP: GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapRecords(users, newUserRecord))
}
