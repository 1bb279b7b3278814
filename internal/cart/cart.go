// Package cart maintains the per-session working set of selected menu items.
// Every mutation persists before returning, so a subsequent read within the
// process always observes the latest state.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spicetable/api/internal/menu"
	"github.com/spicetable/api/internal/storage"
)

// Errors returned by the cart store.
var (
	ErrInvalidPrice = errors.New("item price must be > 0")
)

// Item is a menu item plus the selected quantity. Quantity is always >= 1;
// an item whose quantity drops to zero is removed rather than retained.
type Item struct {
	menu.Item
	Quantity int `json:"quantity"`
}

// Store reads and writes session carts through a KV. The zero value is not
// usable; construct with New.
type Store struct {
	kv storage.KV
}

// New creates a cart store on top of the given KV.
func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Get returns the cart for the session. A missing or unreadable cart is an
// empty cart, never an error.
func (s *Store) Get(ctx context.Context, sessionID string) ([]Item, error) {
	raw, err := s.kv.Get(ctx, storage.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		// Corrupt state defaults to empty rather than failing the session.
		return nil, nil
	}
	return items, nil
}

// Add inserts the menu item with quantity 1, or increments the existing
// entry's quantity when the item is already in the cart.
func (s *Store) Add(ctx context.Context, sessionID string, item menu.Item) ([]Item, error) {
	if !item.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{Item: item, Quantity: 1})
	}

	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove deletes the entry matching itemID. Removing an absent item is a no-op.
func (s *Store) Remove(ctx context.Context, sessionID, itemID string) ([]Item, error) {
	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}

	if err := s.save(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// SetQuantity replaces the item's quantity with the given absolute value.
// A quantity <= 0 behaves exactly as Remove. No upper bound is enforced.
func (s *Store) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) ([]Item, error) {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, itemID)
	}

	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			break
		}
	}

	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear empties the session's cart unconditionally.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Delete(ctx, storage.CartKey(sessionID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, sessionID string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Put(ctx, storage.CartKey(sessionID), raw); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Total is the sum over all items of price times quantity. Zero for an
// empty cart.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Count is the sum of quantities across all items, not the item variety count.
func Count(items []Item) int {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count
}
