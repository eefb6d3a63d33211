// Package catalog holds the static menu and the pure filtering logic used
// by the menu view.  A Catalog is built once at startup and never mutated.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/blackmouth-booking/internal/model"
)

var (
	// ErrDuplicateName is returned when two items share a name.
	ErrDuplicateName = errors.New("duplicate catalog item name")
	// ErrInvalidItem is returned for items with an empty name or a negative price.
	ErrInvalidItem = errors.New("invalid catalog item")
	// ErrUnknownFilter is returned for a size or ingredient token the menu
	// does not offer.
	ErrUnknownFilter = errors.New("unknown filter token")
)

// Catalog is an ordered, read-only list of orderable items.
type Catalog struct {
	items       []model.CatalogItem
	byName      map[string]int
	ingredients []string
}

// New validates items and builds a Catalog preserving their order.
func New(items []model.CatalogItem) (*Catalog, error) {
	c := &Catalog{
		items:  make([]model.CatalogItem, 0, len(items)),
		byName: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" || it.Price.IsNegative() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidItem, it.Name)
		}
		if _, dup := c.byName[it.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, it.Name)
		}
		c.byName[it.Name] = len(c.items)
		c.items = append(c.items, it)
	}
	c.ingredients = IngredientTokens(c.items)
	return c, nil
}

// MustNew is like New but panics on invalid input.  Intended for
// compiled-in data such as Default.
func MustNew(items []model.CatalogItem) *Catalog {
	c, err := New(items)
	if err != nil {
		panic(err)
	}
	return c
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []model.CatalogItem {
	out := make([]model.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Lookup finds an item by its exact name.
func (c *Catalog) Lookup(name string) (model.CatalogItem, bool) {
	i, ok := c.byName[name]
	if !ok {
		return model.CatalogItem{}, false
	}
	return c.items[i], true
}

// Position returns the catalog index of name, or -1 when absent.
func (c *Catalog) Position(name string) int {
	if i, ok := c.byName[name]; ok {
		return i
	}
	return -1
}

// IngredientTokens returns the ingredient options derived when the
// catalog was built.
func (c *Catalog) IngredientTokens() []string {
	out := make([]string, len(c.ingredients))
	copy(out, c.ingredients)
	return out
}

// CheckFilter rejects size and ingredient tokens that are not among the
// menu's options.  f must already be normalized.
func (c *Catalog) CheckFilter(f FilterState) error {
	if !ValidSize(f.Size) {
		return fmt.Errorf("%w: size %q", ErrUnknownFilter, f.Size)
	}
	for _, tok := range c.ingredients {
		if tok == f.Ingredient {
			return nil
		}
	}
	return fmt.Errorf("%w: ingredient %q", ErrUnknownFilter, f.Ingredient)
}

// Filter applies f to the catalog.
func (c *Catalog) Filter(f FilterState) []model.CatalogItem {
	return Filter(c.items, f)
}

// Popular returns the items flagged as popular, in catalog order.
func (c *Catalog) Popular() []model.CatalogItem {
	out := make([]model.CatalogItem, 0)
	for _, it := range c.items {
		if it.Popular {
			out = append(out, it)
		}
	}
	return out
}
