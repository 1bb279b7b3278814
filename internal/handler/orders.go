package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spicetable/api/internal/cart"
	"github.com/spicetable/api/internal/order"
)

// OrderReader defines the read-only order operations the public handler needs.
// Satisfied by *order.Store; narrow interface for testability.
type OrderReader interface {
	LoadAll(ctx context.Context) ([]order.Order, error)
	Get(ctx context.Context, id string) (order.Order, bool, error)
}

// OrderHandler serves the customer-facing order history endpoints.
type OrderHandler struct {
	orders OrderReader
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders OrderReader) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Get("/orders/{orderID}", h.Get)
}

// --- Response types ---

// orderResponse is the wire shape of an order. Money fields are formatted to
// two decimal places; timestamps are RFC 3339.
type orderResponse struct {
	ID                string      `json:"id"`
	Items             []cart.Item `json:"items"`
	Subtotal          string      `json:"subtotal"`
	Tax               string      `json:"tax"`
	DeliveryFee       string      `json:"deliveryFee"`
	Total             string      `json:"total"`
	Status            string      `json:"status"`
	CustomerName      string      `json:"customerName"`
	CustomerEmail     string      `json:"customerEmail"`
	CustomerPhone     string      `json:"customerPhone"`
	DeliveryAddress   string      `json:"deliveryAddress"`
	PaymentMethod     string      `json:"paymentMethod"`
	OrderDate         time.Time   `json:"orderDate"`
	EstimatedDelivery time.Time   `json:"estimatedDelivery"`
}

func toOrderResponse(o order.Order) orderResponse {
	items := o.Items
	if items == nil {
		items = []cart.Item{}
	}
	return orderResponse{
		ID:                o.ID,
		Items:             items,
		Subtotal:          o.Subtotal.StringFixed(2),
		Tax:               o.Tax.StringFixed(2),
		DeliveryFee:       o.DeliveryFee.StringFixed(2),
		Total:             o.Total.StringFixed(2),
		Status:            o.Status,
		CustomerName:      o.CustomerName,
		CustomerEmail:     o.CustomerEmail,
		CustomerPhone:     o.CustomerPhone,
		DeliveryAddress:   o.DeliveryAddress,
		PaymentMethod:     o.PaymentMethod,
		OrderDate:         o.OrderDate,
		EstimatedDelivery: o.EstimatedDelivery,
	}
}

func toOrderResponses(orders []order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

// --- Handlers ---

// List returns every order, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.LoadAll(r.Context())
	if err != nil {
		log.Printf("ERROR: load orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// Get returns a single order by ID, for the post-checkout confirmation view.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}
