// Package cart implements the shopping cart aggregate: an ordered list of
// line items keyed by product identity, with subtotal, shipping and total
// derivation. A Cart has a single writer (the owning visitor session); it is
// not safe for concurrent use.
package cart

import (
	"github.com/senalmaq/storefront/internal/catalog"
)

// Line pairs a product with a quantity. Qty is always >= 1 while the line
// exists; reaching zero removes the line from the cart.
type Line struct {
	Product catalog.Product `json:"product"`
	Qty     int             `json:"qty"`
}

// Total returns the line total in minor units.
func (l Line) Total() int64 {
	return l.Product.Price * int64(l.Qty)
}

// Pricing carries the shipping rule configuration. It replaces the mutable
// store-info global the storefront otherwise tends to grow.
type Pricing struct {
	FreeShippingThreshold int64
	ShippingCost          int64
}

// ShippingFor returns the shipping charge for a subtotal: zero for an empty
// cart, zero at or above the free-shipping threshold, the flat fee otherwise.
// Both zeroing conditions hold independently.
func (p Pricing) ShippingFor(subtotal int64) int64 {
	if subtotal <= 0 || subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.ShippingCost
}

// Quote is the priced view of a cart.
type Quote struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// Cart holds the line items in insertion order. New products are appended;
// quantity changes keep a line at its original position.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// FromLines rebuilds a cart from previously stored lines, dropping entries
// without a resolvable identity and clamping quantities to at least 1.
func FromLines(lines []Line) *Cart {
	c := New()
	for _, l := range lines {
		if l.Product.Identity() == "" {
			continue
		}
		if l.Qty < 1 {
			l.Qty = 1
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) indexOf(id string) int {
	for i, l := range c.lines {
		if l.Product.Identity() == id {
			return i
		}
	}
	return -1
}

// AddItem appends the product with quantity 1, or bumps the quantity of the
// existing line for the same identity. It always succeeds.
func (c *Cart) AddItem(p catalog.Product) {
	i := c.indexOf(p.Identity())
	if i < 0 {
		c.lines = append(c.lines, Line{Product: p, Qty: 1})
		return
	}
	c.lines[i] = Line{Product: c.lines[i].Product, Qty: c.lines[i].Qty + 1}
}

// BuyNow adds the product only when it is not already in the cart; an
// existing line keeps its quantity untouched. The asymmetry with AddItem
// avoids double-counting when a buyer hits "buy now" on something already in
// the cart. It reports whether a line was added.
func (c *Cart) BuyNow(p catalog.Product) bool {
	if c.indexOf(p.Identity()) >= 0 {
		return false
	}
	c.lines = append(c.lines, Line{Product: p, Qty: 1})
	return true
}

// IncreaseQty bumps the quantity of the line with the given identity.
// Unknown identities are a no-op.
func (c *Cart) IncreaseQty(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.lines[i] = Line{Product: c.lines[i].Product, Qty: c.lines[i].Qty + 1}
	}
}

// DecreaseQty lowers the quantity of the line with the given identity,
// removing the line entirely when the quantity would drop below 1. Unknown
// identities are a no-op.
func (c *Cart) DecreaseQty(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	if c.lines[i].Qty <= 1 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
	c.lines[i] = Line{Product: c.lines[i].Product, Qty: c.lines[i].Qty - 1}
}

// Remove drops the line with the given identity, if present.
func (c *Cart) Remove(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Subtotal sums price times quantity over all lines. Zero for an empty cart.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.Total()
	}
	return sum
}

// Quote prices the cart under the given shipping rules.
func (c *Cart) Quote(p Pricing) Quote {
	subtotal := c.Subtotal()
	shipping := p.ShippingFor(subtotal)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}
