package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spicetable/api/internal/enum"
	"github.com/spicetable/api/internal/menu"
)

// MenuHandler serves the static menu catalog.
type MenuHandler struct{}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler() *MenuHandler {
	return &MenuHandler{}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.List)
	r.Get("/menu/{itemID}", h.Get)
}

// --- Handlers ---

// List returns catalog items, optionally filtered by query parameters.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	f := menu.Filter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}
	if f.Category != "" && !enum.ValidCategory(f.Category) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category"})
		return
	}
	f.VegetarianOnly = boolParam(r, "vegetarian")
	f.SpicyOnly = boolParam(r, "spicy")
	f.PopularOnly = boolParam(r, "popular")

	items := menu.Select(f)
	if items == nil {
		items = []menu.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Get returns a single catalog item by ID.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	item, ok := menu.Find(itemID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
