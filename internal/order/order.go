// Package order persists the list of submitted orders and their lifecycle
// status. The whole list lives under a single storage key, newest first, so
// appends prepend and status changes rewrite the list in place.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spicetable/api/internal/cart"
	"github.com/spicetable/api/internal/enum"
	"github.com/spicetable/api/internal/storage"
)

// Order is an immutable snapshot of a cart plus customer metadata. Only the
// status field mutates after creation; the totals are fixed at checkout and
// never recomputed from live item data.
type Order struct {
	ID                string          `json:"id"`
	Items             []cart.Item     `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	DeliveryFee       decimal.Decimal `json:"deliveryFee"`
	Total             decimal.Decimal `json:"total"`
	Status            string          `json:"status"`
	CustomerName      string          `json:"customerName"`
	CustomerEmail     string          `json:"customerEmail"`
	CustomerPhone     string          `json:"customerPhone"`
	DeliveryAddress   string          `json:"deliveryAddress"`
	PaymentMethod     string          `json:"paymentMethod"`
	OrderDate         time.Time       `json:"orderDate"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
}

// Store reads and writes the order list through a KV. A mutex serializes
// read-modify-write cycles so concurrent handlers in this process cannot
// lose updates; across processes the last write wins.
type Store struct {
	kv storage.KV
	mu sync.Mutex
}

// New creates an order store on top of the given KV.
func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// LoadAll returns every order, newest first by order date. A missing or
// unreadable store is an empty list, never an error.
func (s *Store) LoadAll(ctx context.Context) ([]Order, error) {
	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	// Stored newest-first already; re-sort defensively in case an external
	// writer appended out of order.
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

// Get returns the order with the given ID, or false if it does not exist.
func (s *Store) Get(ctx context.Context, id string) (Order, bool, error) {
	orders, err := s.load(ctx)
	if err != nil {
		return Order{}, false, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, true, nil
		}
	}
	return Order{}, false, nil
}

// Append prepends the order and persists, so newest-first ordering holds
// without re-sorting.
func (s *Store) Append(ctx context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return err
	}
	orders = append([]Order{o}, orders...)
	return s.save(ctx, orders)
}

// SetStatus replaces the status of the order with the given ID and persists
// the full list. The store accepts any status value; transition legality is
// the caller's contract. An unknown ID is a silent no-op (found=false), not
// an error, to tolerate stale identifiers from concurrent sessions.
func (s *Store) SetStatus(ctx context.Context, id, status string) (Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return Order{}, false, err
	}

	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			if err := s.save(ctx, orders); err != nil {
				return Order{}, false, err
			}
			return orders[i], true, nil
		}
	}
	return Order{}, false, nil
}

func (s *Store) load(ctx context.Context) ([]Order, error) {
	raw, err := s.kv.Get(ctx, storage.OrdersKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load orders: %w", err)
	}
	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, nil
	}
	return orders, nil
}

func (s *Store) save(ctx context.Context, orders []Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := s.kv.Put(ctx, storage.OrdersKey, raw); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}

// allowedTransitions is the lifecycle contract the admin layer must honor.
// Key is current status, value the set of statuses it may move to. Delivered
// and cancelled are terminal.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPending:   {enum.OrderStatusPreparing, enum.OrderStatusCancelled},
	enum.OrderStatusPreparing: {enum.OrderStatusReady, enum.OrderStatusCancelled},
	enum.OrderStatusReady:     {enum.OrderStatusDelivered, enum.OrderStatusCancelled},
}

// ValidateTransition checks whether moving from current to next is allowed.
func ValidateTransition(current, next string) error {
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("cannot transition from %s", current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("cannot transition from %s to %s", current, next)
}

// NextForward returns the forward (non-cancel) status following current,
// or false when current has no forward step.
func NextForward(current string) (string, bool) {
	switch current {
	case enum.OrderStatusPending:
		return enum.OrderStatusPreparing, true
	case enum.OrderStatusPreparing:
		return enum.OrderStatusReady, true
	case enum.OrderStatusReady:
		return enum.OrderStatusDelivered, true
	}
	return "", false
}
