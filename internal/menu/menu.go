// Package menu holds the static menu catalog. Items are defined at build time
// and never mutated; every accessor returns copies.
package menu

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item is a single menu entry.
type Item struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Image        string          `json:"image"`
	IsVegetarian bool            `json:"isVegetarian"`
	IsSpicy      bool            `json:"isSpicy"`
	Popular      bool            `json:"popular"`
	Rating       float64         `json:"rating"`
}

// Filter selects catalog items. Zero-value matches everything.
type Filter struct {
	Category       string
	Query          string // case-insensitive substring on name/description
	VegetarianOnly bool
	SpicyOnly      bool
	PopularOnly    bool
}

// Catalog returns a copy of the full menu.
func Catalog() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// Find returns the item with the given ID, or false if it does not exist.
func Find(id string) (Item, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Select returns the catalog items matching f, preserving catalog order.
func Select(f Filter) []Item {
	var out []Item
	q := strings.ToLower(f.Query)
	for _, item := range catalog {
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if f.VegetarianOnly && !item.IsVegetarian {
			continue
		}
		if f.SpicyOnly && !item.IsSpicy {
			continue
		}
		if f.PopularOnly && !item.Popular {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Description), q) {
			continue
		}
		out = append(out, item)
	}
	return out
}
