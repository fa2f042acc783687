package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cocoa-pos/api/internal/service"
)

// OrderFloor defines the floor methods needed by line-item endpoints.
// Satisfied by *service.Floor; narrow interface for testability.
type OrderFloor interface {
	AddLineItem(tableID int, productName string) (service.Table, error)
	RemoveLineItem(tableID int, itemID uuid.UUID) (service.Table, error)
	ModifyLineItem(tableID int, itemID uuid.UUID, productName string) (service.Table, error)
	ToggleDone(tableID int, itemID uuid.UUID) (service.Table, error)
	ToggleMarchado(tableID int, itemID uuid.UUID) (service.Table, error)
	ToggleSecond(tableID int, itemID uuid.UUID) (service.Table, error)
	MarkServed(tableID int, itemID uuid.UUID) (service.Table, error)
	ApplyModifier(tableID int, itemID uuid.UUID, name string, surcharge decimal.Decimal, kind string) (service.Table, error)
	AddComment(tableID int, itemID uuid.UUID, text string) (service.Table, error)
}

// OrderHandler handles line-item endpoints.
type OrderHandler struct {
	floor OrderFloor
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(floor OrderFloor) *OrderHandler {
	return &OrderHandler{floor: floor}
}

// RegisterRoutes registers line-item endpoints on the given Chi router.
// Expected to be mounted at /tables/{id}/orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Add)
	r.Route("/{itemID}", func(r chi.Router) {
		r.Put("/", h.Modify)
		r.Delete("/", h.Remove)
		r.Post("/done", h.ToggleDone)
		r.Post("/marchar", h.ToggleMarchado)
		r.Post("/second", h.ToggleSecond)
		r.Post("/served", h.MarkServed)
		r.Post("/modifiers", h.ApplyModifier)
		r.Post("/comments", h.AddComment)
	})
}

// --- Request types ---

type addItemRequest struct {
	Product string `json:"product"`
}

type applyModifierRequest struct {
	Name string `json:"name"`
	// Kind is "add" or "remove".
	Kind string `json:"kind"`
	// Surcharge is a decimal string; empty means zero. Removal surcharges
	// are recorded for display but never change the price.
	Surcharge string `json:"surcharge"`
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// --- Handlers ---

// Add handles POST /tables/{id}/orders.
func (h *OrderHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := tableIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid table ID")
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Product == "" {
		errorJSON(w, http.StatusBadRequest, "product is required")
		return
	}
	table, err := h.floor.AddLineItem(id, req.Product)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTableResponse(table))
}

// Modify handles PUT /tables/{id}/orders/{itemID}: re-selects the product
// for an existing line, keeping its position.
func (h *OrderHandler) Modify(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.itemParams(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Product == "" {
		errorJSON(w, http.StatusBadRequest, "product is required")
		return
	}
	table, err := h.floor.ModifyLineItem(id, itemID, req.Product)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// Remove handles DELETE /tables/{id}/orders/{itemID}.
func (h *OrderHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.floor.RemoveLineItem)
}

// ToggleDone handles POST /tables/{id}/orders/{itemID}/done.
func (h *OrderHandler) ToggleDone(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.floor.ToggleDone)
}

// ToggleMarchado handles POST /tables/{id}/orders/{itemID}/marchar.
func (h *OrderHandler) ToggleMarchado(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.floor.ToggleMarchado)
}

// ToggleSecond handles POST /tables/{id}/orders/{itemID}/second.
func (h *OrderHandler) ToggleSecond(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.floor.ToggleSecond)
}

// MarkServed handles POST /tables/{id}/orders/{itemID}/served.
func (h *OrderHandler) MarkServed(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.floor.MarkServed)
}

// ApplyModifier handles POST /tables/{id}/orders/{itemID}/modifiers.
func (h *OrderHandler) ApplyModifier(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.itemParams(w, r)
	if !ok {
		return
	}
	var req applyModifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		errorJSON(w, http.StatusBadRequest, "modifier name is required")
		return
	}
	surcharge := decimal.Zero
	if req.Surcharge != "" {
		var err error
		surcharge, err = decimal.NewFromString(req.Surcharge)
		if err != nil || surcharge.IsNegative() {
			errorJSON(w, http.StatusBadRequest, "invalid surcharge")
			return
		}
	}
	table, err := h.floor.ApplyModifier(id, itemID, req.Name, surcharge, req.Kind)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// AddComment handles POST /tables/{id}/orders/{itemID}/comments.
func (h *OrderHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.itemParams(w, r)
	if !ok {
		return
	}
	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		errorJSON(w, http.StatusBadRequest, "text is required")
		return
	}
	table, err := h.floor.AddComment(id, itemID, req.Text)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// --- Helpers ---

// mutate runs a (tableID, itemID) action. A stale item id is applied as a
// no-op by the floor, so the response is simply the current table state.
func (h *OrderHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(int, uuid.UUID) (service.Table, error)) {
	id, itemID, ok := h.itemParams(w, r)
	if !ok {
		return
	}
	table, err := fn(id, itemID)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(table))
}

func (h *OrderHandler) itemParams(w http.ResponseWriter, r *http.Request) (int, uuid.UUID, bool) {
	id, ok := tableIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid table ID")
		return 0, uuid.Nil, false
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid item ID")
		return 0, uuid.Nil, false
	}
	return id, itemID, true
}

func (h *OrderHandler) writeFloorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownTable):
		errorJSON(w, http.StatusNotFound, "table not found")
	case errors.Is(err, service.ErrUnknownProduct):
		errorJSON(w, http.StatusBadRequest, "product not found in catalog")
	case errors.Is(err, service.ErrInvalidModifierKind):
		errorJSON(w, http.StatusBadRequest, "kind must be add or remove")
	default:
		errorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
