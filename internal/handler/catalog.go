package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/service"
)

// PersonHandler serves /people.
type PersonHandler struct {
	people *service.PersonService
	logger *slog.Logger
}

func NewPersonHandler(people *service.PersonService, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{people: people, logger: logger}
}

type personRequest struct {
	Name   string `json:"name"`
	Height string `json:"height"`
	Weight string `json:"weight"`
	Gender string `json:"gender"`
}

// HandleList: GET /people
func (h *PersonHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	people, err := h.people.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapRecords(people, newPersonRecord))
}

// HandleGet: GET /people/{id}
func (h *PersonHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		writeError(w, err)
		return
	}

	person, err := h.people.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPersonRecord(*person))
}

// HandleCreate: POST /people
// REQUEST BODY: {"name": "Luke Skywalker", "height": "172", "weight": "77", "gender": "male"}
func (h *PersonHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	person, err := h.people.Create(r.Context(), model.Person{
		Name:   req.Name,
		Height: req.Height,
		Weight: req.Weight,
		Gender: req.Gender,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreatedResponse{
		Message: fmt.Sprintf("The person %s was added to the database", person.Name),
		ID:      person.ID,
	})
}

// PlanetHandler serves /planets.
type PlanetHandler struct {
	planets *service.PlanetService
	logger  *slog.Logger
}

func NewPlanetHandler(planets *service.PlanetService, logger *slog.Logger) *PlanetHandler {
	return &PlanetHandler{planets: planets, logger: logger}
}

type planetRequest struct {
	Name      string `json:"name"`
	Climate   string `json:"climate"`
	Terrain   string `json:"terrain"`
	Resources string `json:"resources"`
}

// HandleList: GET /planets
func (h *PlanetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	planets, err := h.planets.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapRecords(planets, newPlanetRecord))
}

// HandleGet: GET /planets/{id}
func (h *PlanetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planet")
	if err != nil {
		writeError(w, err)
		return
	}

	planet, err := h.planets.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlanetRecord(*planet))
}

// HandleCreate: POST /planets
// REQUEST BODY: {"name": "Tatooine", "climate": "arid", "terrain": "desert", "resources": "none"}
func (h *PlanetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req planetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	planet, err := h.planets.Create(r.Context(), model.Planet{
		Name:      req.Name,
		Climate:   req.Climate,
		Terrain:   req.Terrain,
		Resources: req.Resources,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreatedResponse{
		Message: fmt.Sprintf("The planet %s was added to the database", planet.Name),
		ID:      planet.ID,
	})
}
