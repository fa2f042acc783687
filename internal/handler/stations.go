package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cocoa-pos/api/internal/service"
)

// StationFloor defines the floor methods needed by station endpoints.
// Satisfied by *service.Floor; narrow interface for testability.
type StationFloor interface {
	VisibleItemsForStation(station string) ([]service.StationEntry, error)
}

// StationHandler serves the kitchen and service screen views over plain
// HTTP. The same payloads are pushed over websocket on every change; this
// endpoint exists for initial loads and polling fallbacks.
type StationHandler struct {
	floor StationFloor
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(floor StationFloor) *StationHandler {
	return &StationHandler{floor: floor}
}

// RegisterRoutes registers station endpoints on the given Chi router.
// Expected to be mounted at /stations
func (h *StationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{station}/items", h.Items)
}

// Items handles GET /stations/{station}/items.
func (h *StationHandler) Items(w http.ResponseWriter, r *http.Request) {
	station := chi.URLParam(r, "station")
	entries, err := h.floor.VisibleItemsForStation(station)
	if err != nil {
		if errors.Is(err, service.ErrUnknownStation) {
			errorJSON(w, http.StatusNotFound, "unknown station")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if entries == nil {
		entries = []service.StationEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
