package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /healthz.
type HealthHandler struct {
	store  Pinger
	logger *slog.Logger
}

func NewHealthHandler(store Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

type healthResponse struct {
	Status string `json:"status"`
}

// HandleHealth answers 200 {"status":"ok"} when the database responds and
// 503 {"status":"unavailable"} when it does not.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// RouteRecord is one entry of the sitemap.
type RouteRecord struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type sitemapResponse struct {
	Routes []RouteRecord `json:"routes"`
}

// SitemapHandler serves GET /, a JSON listing of every registered route.
type SitemapHandler struct {
	routes chi.Routes
	logger *slog.Logger
}

// NewSitemapHandler takes the router itself; the listing is built per
// request with chi.Walk, so routes added after construction still show up.
func NewSitemapHandler(routes chi.Routes, logger *slog.Logger) *SitemapHandler {
	return &SitemapHandler{routes: routes, logger: logger}
}

// HandleSitemap: GET /
func (h *SitemapHandler) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	routes := make([]RouteRecord, 0)
	err := chi.Walk(h.routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		// Strip the digit constraint so clients see /people/{id}.
		route = strings.ReplaceAll(route, "{id:[0-9]+}", "{id}")
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		routes = append(routes, RouteRecord{Method: method, Path: route})
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	writeJSON(w, http.StatusOK, sitemapResponse{Routes: routes})
}
