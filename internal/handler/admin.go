package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/spicetable/api/internal/enum"
	"github.com/spicetable/api/internal/order"
	"github.com/spicetable/api/internal/ws"
)

// AdminOrderStore defines the order operations the admin handler needs.
// Satisfied by *order.Store; narrow interface for testability.
type AdminOrderStore interface {
	LoadAll(ctx context.Context) ([]order.Order, error)
	Get(ctx context.Context, id string) (order.Order, bool, error)
	SetStatus(ctx context.Context, id, status string) (order.Order, bool, error)
}

// AdminHandler serves the dashboard's order management endpoints. The store
// accepts any status write; this layer is where transition legality lives.
type AdminHandler struct {
	orders AdminOrderStore
	hub    Publisher
}

// NewAdminHandler creates a new AdminHandler. hub may be nil.
func NewAdminHandler(orders AdminOrderStore, hub Publisher) *AdminHandler {
	return &AdminHandler{orders: orders, hub: hub}
}

// RegisterRoutes registers admin endpoints on the given Chi router. The
// router group is expected to already carry authentication middleware.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/orders", h.List)
	r.Post("/admin/orders/{orderID}/prepare", h.advanceTo(enum.OrderStatusPreparing))
	r.Post("/admin/orders/{orderID}/ready", h.advanceTo(enum.OrderStatusReady))
	r.Post("/admin/orders/{orderID}/deliver", h.advanceTo(enum.OrderStatusDelivered))
	r.Delete("/admin/orders/{orderID}", h.Cancel)
	r.Get("/admin/stats", h.Stats)
}

// --- Response types ---

type statsResponse struct {
	TotalOrders   int    `json:"totalOrders"`
	PendingOrders int    `json:"pendingOrders"`
	OrdersToday   int    `json:"ordersToday"`
	Revenue       string `json:"revenue"`
}

// --- Handlers ---

// List returns orders filtered by an exact status and a free-text search.
// The search matches the order ID and customer name case-insensitively and
// the phone number by plain substring.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !enum.ValidOrderStatus(status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}
	query := r.URL.Query().Get("q")

	orders, err := h.orders.LoadAll(r.Context())
	if err != nil {
		log.Printf("ERROR: load orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	filtered := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if !matchesQuery(o, query) {
			continue
		}
		filtered = append(filtered, o)
	}
	writeJSON(w, http.StatusOK, toOrderResponses(filtered))
}

// advanceTo builds the handler moving an order forward to the target status.
func (h *AdminHandler) advanceTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")

		o, found, err := h.orders.Get(r.Context(), orderID)
		if err != nil {
			log.Printf("ERROR: get order: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}

		if err := order.ValidateTransition(o.Status, target); err != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}

		updated, found, err := h.orders.SetStatus(r.Context(), orderID, target)
		if err != nil {
			log.Printf("ERROR: update order status: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}

		resp := toOrderResponse(updated)
		if h.hub != nil {
			h.hub.BroadcastJSON(ws.EventOrderStatusChanged, resp)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// Cancel moves an order to cancelled from any non-terminal status.
func (h *AdminHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	o, found, err := h.orders.Get(r.Context(), orderID)
	if err != nil {
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}

	switch o.Status {
	case enum.OrderStatusDelivered:
		writeJSON(w, http.StatusConflict, map[string]string{"error": "cannot cancel a delivered order"})
		return
	case enum.OrderStatusCancelled:
		writeJSON(w, http.StatusConflict, map[string]string{"error": "order is already cancelled"})
		return
	}
	if err := order.ValidateTransition(o.Status, enum.OrderStatusCancelled); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	updated, found, err := h.orders.SetStatus(r.Context(), orderID, enum.OrderStatusCancelled)
	if err != nil {
		log.Printf("ERROR: cancel order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}

	resp := toOrderResponse(updated)
	if h.hub != nil {
		h.hub.BroadcastJSON(ws.EventOrderStatusChanged, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Stats summarizes the order book for the dashboard header cards. Revenue
// counts delivered orders only; "today" is the UTC calendar day.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.LoadAll(r.Context())
	if err != nil {
		log.Printf("ERROR: load orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	revenue := decimal.Zero
	pending := 0
	ordersToday := 0
	for _, o := range orders {
		if o.Status == enum.OrderStatusDelivered {
			revenue = revenue.Add(o.Total)
		}
		if o.Status == enum.OrderStatusPending {
			pending++
		}
		if !o.OrderDate.UTC().Before(today) {
			ordersToday++
		}
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalOrders:   len(orders),
		PendingOrders: pending,
		OrdersToday:   ordersToday,
		Revenue:       revenue.StringFixed(2),
	})
}

// --- Helpers ---

func matchesQuery(o order.Order, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(o.ID), q) ||
		strings.Contains(strings.ToLower(o.CustomerName), q) ||
		strings.Contains(o.CustomerPhone, query)
}
