package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spicetable/api/internal/checkout"
	"github.com/spicetable/api/internal/order"
	"github.com/spicetable/api/internal/ws"
)

// CheckoutService defines the checkout operation the handler needs.
// Satisfied by *checkout.Service; narrow interface for testability.
type CheckoutService interface {
	Submit(ctx context.Context, req checkout.Request) (order.Order, error)
}

// Publisher pushes order events to connected admin dashboards.
// Satisfied by *ws.Hub.
type Publisher interface {
	BroadcastJSON(eventType string, payload interface{})
}

// CheckoutHandler converts a session's cart into an order.
type CheckoutHandler struct {
	checkout CheckoutService
	hub      Publisher
}

// NewCheckoutHandler creates a new CheckoutHandler. hub may be nil when no
// dashboard push is wanted.
func NewCheckoutHandler(svc CheckoutService, hub Publisher) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, hub: hub}
}

// RegisterRoutes registers the checkout endpoint on the given Chi router.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions/{sessionID}/checkout", h.Submit)
}

// --- Request types ---

type checkoutRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerEmail   string `json:"customerEmail"`
	DeliveryAddress string `json:"deliveryAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

// --- Handlers ---

// Submit places the order for the session's cart and clears the cart.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromURL(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	o, err := h.checkout.Submit(r.Context(), checkout.Request{
		SessionID:       sessionID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrMissingName),
			errors.Is(err, checkout.ErrMissingPhone),
			errors.Is(err, checkout.ErrInvalidPaymentMethod):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: checkout: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	resp := toOrderResponse(o)
	if h.hub != nil {
		h.hub.BroadcastJSON(ws.EventOrderCreated, resp)
	}
	writeJSON(w, http.StatusCreated, resp)
}
