package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/spicetable/api/internal/cart"
	"github.com/spicetable/api/internal/menu"
)

// CartStore defines the cart operations the handler needs.
// Satisfied by *cart.Store; narrow interface for testability.
type CartStore interface {
	Get(ctx context.Context, sessionID string) ([]cart.Item, error)
	Add(ctx context.Context, sessionID string, item menu.Item) ([]cart.Item, error)
	Remove(ctx context.Context, sessionID, itemID string) ([]cart.Item, error)
	SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) ([]cart.Item, error)
	Clear(ctx context.Context, sessionID string) error
}

// CartHandler handles session creation and per-session cart endpoints.
type CartHandler struct {
	carts CartStore
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts CartStore) *CartHandler {
	return &CartHandler{carts: carts}
}

// RegisterRoutes registers session and cart endpoints on the given Chi router.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{sessionID}/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/items", h.AddItem)
		r.Put("/items/{itemID}", h.SetQuantity)
		r.Delete("/items/{itemID}", h.RemoveItem)
		r.Delete("/", h.Clear)
	})
}

// --- Request / Response types ---

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items    []cart.Item `json:"items"`
	Subtotal string      `json:"subtotal"`
	Count    int         `json:"count"`
}

func toCartResponse(items []cart.Item) cartResponse {
	if items == nil {
		items = []cart.Item{}
	}
	return cartResponse{
		Items:    items,
		Subtotal: cart.Total(items).StringFixed(2),
		Count:    cart.Count(items),
	}
}

// --- Handlers ---

// CreateSession mints a fresh session ID. No server-side state is created
// until the first cart write.
func (h *CartHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: uuid.NewString()})
}

// Get returns the session's cart with its derived subtotal and count.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	items, err := h.carts.Get(r.Context(), sessionID)
	if err != nil {
		log.Printf("ERROR: get cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(items))
}

// AddItem adds one unit of a catalog item to the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, found := menu.Find(req.ItemID)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		return
	}

	items, err := h.carts.Add(r.Context(), sessionID, item)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidPrice) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: add cart item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(items))
}

// SetQuantity sets the absolute quantity for a cart line. Zero or negative
// quantities remove the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "itemID")

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	items, err := h.carts.SetQuantity(r.Context(), sessionID, itemID, req.Quantity)
	if err != nil {
		log.Printf("ERROR: set cart quantity: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(items))
}

// RemoveItem removes a cart line. Removing an absent line succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "itemID")

	items, err := h.carts.Remove(r.Context(), sessionID, itemID)
	if err != nil {
		log.Printf("ERROR: remove cart item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(items))
}

// Clear empties the session's cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.carts.Clear(r.Context(), sessionID); err != nil {
		log.Printf("ERROR: clear cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(nil))
}

// --- Helpers ---

func sessionIDFromURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "sessionID")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return "", false
	}
	return id.String(), true
}
