package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cocoa-pos/api/internal/menu"
)

// MenuHandler serves the product catalog to the ordering UI.
type MenuHandler struct {
	catalog *menu.Catalog
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(catalog *menu.Catalog) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
// Expected to be mounted at /menu
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Get("/categories", h.Categories)
	r.Get("/products/{name}", h.Product)
}

// Get handles GET /menu: the raw catalog JSON, verbatim as loaded. The UI
// renders the tree directly, so no re-encoding.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(h.catalog.Raw())
}

// Categories handles GET /menu/categories: the top-level category names.
func (h *MenuHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories())
}

// Product handles GET /menu/products/{name}: resolves one product by
// case-insensitive name, with price and modifier options.
func (h *MenuHandler) Product(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	product, ok := h.catalog.FindProduct(name)
	if !ok {
		errorJSON(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}
