package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/cocoa-pos/api/internal/service"
)

// SalesFloor defines the floor methods needed by the sales report endpoints.
// Satisfied by *service.Floor; narrow interface for testability.
type SalesFloor interface {
	SalesLog() []service.Sale
}

// SalesHandler handles sales report endpoints.
type SalesHandler struct {
	floor SalesFloor
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(floor SalesFloor) *SalesHandler {
	return &SalesHandler{floor: floor}
}

// RegisterRoutes registers sales endpoints on the given Chi router.
// Expected to be mounted at /sales
func (h *SalesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/summary", h.Summary)
}

type salesSummaryResponse struct {
	Count int    `json:"count"`
	Total string `json:"total"`
}

// List handles GET /sales: every settlement since startup, oldest first.
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	sales := h.floor.SalesLog()
	out := make([]saleResponse, len(sales))
	for i, s := range sales {
		out[i] = saleResponse{Sale: s, Total: s.Total.StringFixed(2)}
	}
	writeJSON(w, http.StatusOK, out)
}

// Summary handles GET /sales/summary: settlement count and grand total.
func (h *SalesHandler) Summary(w http.ResponseWriter, r *http.Request) {
	total := decimal.Zero
	sales := h.floor.SalesLog()
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	writeJSON(w, http.StatusOK, salesSummaryResponse{
		Count: len(sales),
		Total: total.StringFixed(2),
	})
}
