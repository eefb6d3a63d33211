// Package cart implements the order held by an application session:
// quantities keyed by catalog item name, mutated only through Engine.
package cart

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// MaxQuantity caps the stored quantity of a single item.
const MaxQuantity = 10

// ErrUnknownItem is returned when a name has no catalog entry.
var ErrUnknownItem = errors.New("unknown catalog item")

// PriceBook resolves catalog items by name.
type PriceBook interface {
	Lookup(name string) (model.CatalogItem, bool)
}

// Totals summarizes an order for the header badge and checkout views.
type Totals struct {
	Items int             `json:"total_items"`
	Cost  decimal.Decimal `json:"total_cost"`
}

// Engine owns an order.  It is not safe for concurrent use; the owning
// session serializes access.
type Engine struct {
	book  PriceBook
	order map[string]int
}

// NewEngine returns an empty order priced against book.
func NewEngine(book PriceBook) *Engine {
	return &Engine{book: book, order: make(map[string]int)}
}

// Add inserts name with quantity 1 or increments it.  At MaxQuantity the
// call leaves the order unchanged and reports no error.
func (e *Engine) Add(name string) error {
	if _, ok := e.book.Lookup(name); !ok {
		return ErrUnknownItem
	}
	if q := e.order[name]; q < MaxQuantity {
		e.order[name] = q + 1
	}
	return nil
}

// AddAll adds one unit of every item, skipping items already at the cap.
// It returns how many quantities actually changed.
func (e *Engine) AddAll(items []model.CatalogItem) int {
	changed := 0
	for _, it := range items {
		before := e.order[it.Name]
		if err := e.Add(it.Name); err != nil {
			continue
		}
		if e.order[it.Name] != before {
			changed++
		}
	}
	return changed
}

// Remove decrements name, deleting the entry when it reaches zero.
// Absent names are ignored.
func (e *Engine) Remove(name string) {
	q, ok := e.order[name]
	if !ok {
		return
	}
	if q > 1 {
		e.order[name] = q - 1
		return
	}
	delete(e.order, name)
}

// Clear empties the order.
func (e *Engine) Clear() {
	e.order = make(map[string]int)
}

// Quantity returns the stored quantity of name, 0 when absent.
func (e *Engine) Quantity(name string) int {
	return e.order[name]
}

// AtLimit reports whether name reached MaxQuantity.
func (e *Engine) AtLimit(name string) bool {
	return e.order[name] >= MaxQuantity
}

// Totals sums quantities and cost.  Names without a catalog entry
// contribute their quantity but no cost.
func (e *Engine) Totals() Totals {
	t := Totals{Cost: decimal.Zero}
	for name, q := range e.order {
		t.Items += q
		if it, ok := e.book.Lookup(name); ok {
			t.Cost = t.Cost.Add(it.Price.Mul(decimal.NewFromInt(int64(q))))
		}
	}
	return t
}

// Lines prices every entry.  When less is nil lines are sorted by name.
func (e *Engine) Lines(less func(a, b string) bool) []model.OrderLine {
	out := make([]model.OrderLine, 0, len(e.order))
	for name, q := range e.order {
		line := model.OrderLine{Name: name, Quantity: q, UnitPrice: decimal.Zero, LineTotal: decimal.Zero}
		if it, ok := e.book.Lookup(name); ok {
			line.UnitPrice = it.Price
			line.LineTotal = it.Price.Mul(decimal.NewFromInt(int64(q)))
		}
		out = append(out, line)
	}
	if less == nil {
		less = func(a, b string) bool { return a < b }
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i].Name, out[j].Name) })
	return out
}
