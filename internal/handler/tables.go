package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cocoa-pos/api/internal/service"
)

// TableFloor defines the floor methods needed by table endpoints.
// Satisfied by *service.Floor; narrow interface for testability.
type TableFloor interface {
	Overview() []service.TableSummary
	OccupiedTables() []service.Table
	Table(tableID int) (service.Table, bool)
	SetNotes(tableID int, notes string) (service.Table, error)
	SetPickupTime(tableID int, hhmm string) (service.Table, error)
	TogglePedirSegundos(tableID int) (service.Table, error)
}

// TableHandler handles table endpoints.
type TableHandler struct {
	floor TableFloor
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(floor TableFloor) *TableHandler {
	return &TableHandler{floor: floor}
}

// RegisterRoutes registers table endpoints on the given Chi router.
// Expected to be mounted at /tables
func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}/notes", h.SetNotes)
	r.Put("/{id}/pickup-time", h.SetPickupTime)
	r.Post("/{id}/seconds", h.ToggleSeconds)
}

// --- Request / Response types ---

type setNotesRequest struct {
	Notes string `json:"notes"`
}

type setPickupTimeRequest struct {
	PickupTime string `json:"pickup_time"`
}

type tableResponse struct {
	service.Table
	Total string `json:"total"`
}

func toTableResponse(t service.Table) tableResponse {
	return tableResponse{Table: t, Total: t.Total().StringFixed(2)}
}

// --- Handlers ---

// List handles GET /tables: the overview of every roster seat.
// ?occupied=true narrows to tables with orders, with full detail.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("occupied") == "true" {
		tables := h.floor.OccupiedTables()
		out := make([]tableResponse, len(tables))
		for i, t := range tables {
			out[i] = toTableResponse(t)
		}
		writeJSON(w, http.StatusOK, out)
		return
	}
	writeJSON(w, http.StatusOK, h.floor.Overview())
}

// Get handles GET /tables/{id}: full table detail with orders and total.
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := tableIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid table ID")
		return
	}
	table, ok := h.floor.Table(id)
	if !ok {
		errorJSON(w, http.StatusNotFound, "table not found")
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// SetNotes handles PUT /tables/{id}/notes.
func (h *TableHandler) SetNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := tableIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid table ID")
		return
	}
	var req setNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	table, err := h.floor.SetNotes(id, req.Notes)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// SetPickupTime handles PUT /tables/{id}/pickup-time.
func (h *TableHandler) SetPickupTime(w http.ResponseWriter, r *http.Request) {
	id, ok := tableIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid table ID")
		return
	}
	var req setPickupTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	table, err := h.floor.SetPickupTime(id, req.PickupTime)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// ToggleSeconds handles POST /tables/{id}/seconds: flips the gate releasing
// withheld second courses to the kitchen.
func (h *TableHandler) ToggleSeconds(w http.ResponseWriter, r *http.Request) {
	id, ok := tableIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid table ID")
		return
	}
	table, err := h.floor.TogglePedirSegundos(id)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

func (h *TableHandler) writeFloorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownTable):
		errorJSON(w, http.StatusNotFound, "table not found")
	case errors.Is(err, service.ErrInvalidTime):
		errorJSON(w, http.StatusBadRequest, "pickup time must be HH:MM")
	default:
		errorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
