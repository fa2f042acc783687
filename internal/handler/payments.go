package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cocoa-pos/api/internal/service"
)

// PaymentFloor defines the floor methods needed by settlement endpoints.
// Satisfied by *service.Floor; narrow interface for testability.
type PaymentFloor interface {
	RecordPayment(tableID int, method, tendered string) (*service.PaymentResult, error)
	CloseTable(tableID int) (*service.Sale, error)
}

// PaymentHandler handles payment and settlement endpoints.
type PaymentHandler struct {
	floor PaymentFloor
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(floor PaymentFloor) *PaymentHandler {
	return &PaymentHandler{floor: floor}
}

// RegisterRoutes registers settlement endpoints on the given Chi router.
// Expected to be mounted at /tables/{id}
func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/payments", h.RecordPayment)
	r.Post("/close", h.CloseTable)
}

type recordPaymentRequest struct {
	// Method is "cash" or "card".
	Method string `json:"method"`
	// Tendered is the cash amount handed over, as a decimal string.
	// Ignored for card payments.
	Tendered string `json:"tendered"`
}

type saleResponse struct {
	service.Sale
	Total string `json:"total"`
}

// RecordPayment handles POST /tables/{id}/payments: computes change for the
// table's current total without mutating anything.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := tableIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid table ID")
		return
	}
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.floor.RecordPayment(id, req.Method, req.Tendered)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CloseTable handles POST /tables/{id}/close: settles the billable orders
// into the sales log and frees the table.
func (h *PaymentHandler) CloseTable(w http.ResponseWriter, r *http.Request) {
	id, ok := tableIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid table ID")
		return
	}
	sale, err := h.floor.CloseTable(id)
	if err != nil {
		h.writeFloorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saleResponse{Sale: *sale, Total: sale.Total.StringFixed(2)})
}

func (h *PaymentHandler) writeFloorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownTable):
		errorJSON(w, http.StatusNotFound, "table not found")
	case errors.Is(err, service.ErrEmptySettlement):
		errorJSON(w, http.StatusConflict, "no billable items to settle")
	case errors.Is(err, service.ErrInvalidMethod):
		errorJSON(w, http.StatusBadRequest, "method must be cash or card")
	case errors.Is(err, service.ErrInvalidAmount):
		errorJSON(w, http.StatusBadRequest, "invalid tendered amount")
	default:
		errorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
