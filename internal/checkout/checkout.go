// Package checkout converts a session's cart plus a customer form into a
// persisted order, then resets the cart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spicetable/api/internal/cart"
	"github.com/spicetable/api/internal/enum"
	"github.com/spicetable/api/internal/order"
)

// Errors returned by the checkout service.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingName          = errors.New("customer name is required")
	ErrMissingPhone         = errors.New("customer phone is required")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// TaxRate is the flat tax applied to the cart subtotal.
var TaxRate = decimal.RequireFromString("0.10")

// DeliveryFee is the flat fee added to every non-empty order.
var DeliveryFee = decimal.RequireFromString("5.99")

// EstimatedDeliveryOffset is how far ahead of submission the order is
// promised to be ready.
const EstimatedDeliveryOffset = 30 * time.Minute

// CartStore defines the cart methods needed at checkout.
// Satisfied by *cart.Store; narrow interface for testability.
type CartStore interface {
	Get(ctx context.Context, sessionID string) ([]cart.Item, error)
	Clear(ctx context.Context, sessionID string) error
}

// OrderAppender defines the order store method needed at checkout.
// Satisfied by *order.Store.
type OrderAppender interface {
	Append(ctx context.Context, o order.Order) error
}

// Request is the validated customer form for a checkout submission.
type Request struct {
	SessionID       string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string // optional
	DeliveryAddress string // empty means pickup/dine-in
	PaymentMethod   string
}

// Service orchestrates the cart-to-order conversion.
type Service struct {
	carts  CartStore
	orders OrderAppender

	mu     sync.Mutex
	lastID int64 // last order-ID millisecond, bumped on collision
	now    func() time.Time
}

// New creates a checkout service.
func New(carts CartStore, orders OrderAppender) *Service {
	return &Service{carts: carts, orders: orders, now: time.Now}
}

// Submit validates the form, prices the cart, appends the resulting order and
// clears the cart. The returned order carries the identifier the caller
// redirects with. If the order cannot be persisted the cart is left intact
// and the error is returned; an order that persists but whose cart clear
// fails leaves both, which is accepted (no cross-key transactions).
func (s *Service) Submit(ctx context.Context, req Request) (order.Order, error) {
	if req.CustomerName == "" {
		return order.Order{}, ErrMissingName
	}
	if req.CustomerPhone == "" {
		return order.Order{}, ErrMissingPhone
	}
	if !enum.ValidPaymentMethod(req.PaymentMethod) {
		return order.Order{}, ErrInvalidPaymentMethod
	}

	items, err := s.carts.Get(ctx, req.SessionID)
	if err != nil {
		return order.Order{}, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	// --- Price the cart ---
	subtotal := cart.Total(items)
	tax := subtotal.Mul(TaxRate).Round(2)
	fee := decimal.Zero
	if subtotal.IsPositive() {
		fee = DeliveryFee
	}
	total := subtotal.Add(tax).Add(fee)

	address := req.DeliveryAddress
	if address == "" {
		address = enum.DeliveryPickupDineIn
	}

	// --- Snapshot the cart into an order ---
	snapshot := make([]cart.Item, len(items))
	copy(snapshot, items)

	submittedAt := s.now().UTC()
	o := order.Order{
		ID:                s.nextID(submittedAt),
		Items:             snapshot,
		Subtotal:          subtotal,
		Tax:               tax,
		DeliveryFee:       fee,
		Total:             total,
		Status:            enum.OrderStatusPending,
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     req.CustomerPhone,
		DeliveryAddress:   address,
		PaymentMethod:     req.PaymentMethod,
		OrderDate:         submittedAt,
		EstimatedDelivery: submittedAt.Add(EstimatedDeliveryOffset),
	}

	// Persist the order before touching the cart, so a failed write never
	// loses the submission silently.
	if err := s.orders.Append(ctx, o); err != nil {
		return order.Order{}, fmt.Errorf("append order: %w", err)
	}

	if err := s.carts.Clear(ctx, req.SessionID); err != nil {
		// The order is already durable; log and move on rather than failing
		// a submission the customer will see as placed.
		log.Printf("ERROR: clear cart after checkout %s: %v", o.ID, err)
	}

	return o, nil
}

// nextID derives an identifier from the submission time. Two submissions in
// the same millisecond get consecutive identifiers.
func (s *Service) nextID(at time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := at.UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return fmt.Sprintf("ORD-%d", ms)
}
