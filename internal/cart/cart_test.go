package cart

import (
	"testing"

	"github.com/senalmaq/storefront/internal/catalog"
)

var testPricing = Pricing{FreeShippingThreshold: 300000, ShippingCost: 12000}

func product(docID, name string, price int64) catalog.Product {
	return catalog.Product{DocID: docID, Name: name, Price: price}
}

func TestAddItemDistinctProducts(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem(product("a", "Singer 4423", 1000))
	c.AddItem(product("b", "Brother CS7000", 2000))

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("len = %d, want 2", len(lines))
	}
	if lines[0].Product.DocID != "a" || lines[1].Product.DocID != "b" {
		t.Errorf("insertion order lost: %+v", lines)
	}
	for _, l := range lines {
		if l.Qty != 1 {
			t.Errorf("qty for %s = %d, want 1", l.Product.DocID, l.Qty)
		}
	}
}

func TestAddItemSameProductTwice(t *testing.T) {
	t.Parallel()

	c := New()
	p := product("a", "Singer 4423", 1000)
	c.AddItem(p)
	c.AddItem(p)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("len = %d, want 1", len(lines))
	}
	if lines[0].Qty != 2 {
		t.Errorf("qty = %d, want 2", lines[0].Qty)
	}
}

func TestAddItemKeepsPositionOnRepeat(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem(product("a", "First", 1000))
	c.AddItem(product("b", "Second", 2000))
	c.AddItem(product("a", "First", 1000))

	lines := c.Lines()
	if lines[0].Product.DocID != "a" || lines[0].Qty != 2 {
		t.Errorf("repeated product moved or wrong qty: %+v", lines)
	}
}

func TestIdentityFallsBackToLegacyID(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem(catalog.Product{ID: "legacy-1", Price: 500})
	c.AddItem(catalog.Product{ID: "legacy-1", Price: 500})

	if c.Len() != 1 {
		t.Errorf("len = %d, want 1 (legacy id should aggregate)", c.Len())
	}
}

func TestBuyNowDoesNotIncrementExisting(t *testing.T) {
	t.Parallel()

	c := New()
	p := product("a", "Singer 4423", 1000)
	c.AddItem(p)
	c.AddItem(p)

	if added := c.BuyNow(p); added {
		t.Error("BuyNow reported added for a product already in cart")
	}
	if lines := c.Lines(); lines[0].Qty != 2 {
		t.Errorf("qty = %d, want 2 (buy now must not increment)", lines[0].Qty)
	}
}

func TestBuyNowAddsWhenAbsent(t *testing.T) {
	t.Parallel()

	c := New()
	if added := c.BuyNow(product("a", "Singer 4423", 1000)); !added {
		t.Error("BuyNow did not add an absent product")
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestIncreaseDecrease(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem(product("a", "Singer 4423", 1000))

	c.IncreaseQty("a")
	if c.Lines()[0].Qty != 2 {
		t.Fatalf("qty after increase = %d, want 2", c.Lines()[0].Qty)
	}

	c.DecreaseQty("a")
	if c.Lines()[0].Qty != 1 {
		t.Fatalf("qty after decrease = %d, want 1", c.Lines()[0].Qty)
	}

	c.DecreaseQty("a")
	if !c.IsEmpty() {
		t.Error("decreasing qty 1 did not remove the line")
	}

	// unknown ids are no-ops
	c.IncreaseQty("missing")
	c.DecreaseQty("missing")
	if !c.IsEmpty() {
		t.Error("no-op mutation changed the cart")
	}
}

func TestRemoveAndClear(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem(product("a", "Singer", 1000))
	c.AddItem(product("b", "Brother", 2000))

	c.Remove("a")
	if c.Len() != 1 || c.Lines()[0].Product.DocID != "b" {
		t.Errorf("Remove left %+v", c.Lines())
	}

	c.Clear()
	if !c.IsEmpty() {
		t.Error("Clear left items behind")
	}
	if c.Subtotal() != 0 {
		t.Errorf("empty cart subtotal = %d, want 0", c.Subtotal())
	}
}

func TestSubtotal(t *testing.T) {
	t.Parallel()

	c := New()
	p1 := product("a", "Singer", 1000)
	c.AddItem(p1)
	c.AddItem(p1)
	c.AddItem(p1)
	c.AddItem(product("b", "Brother", 2000))

	if got := c.Subtotal(); got != 5000 {
		t.Errorf("Subtotal() = %d, want 5000", got)
	}
}

func TestShippingFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{name: "empty cart ships free", subtotal: 0, want: 0},
		{name: "below threshold pays flat fee", subtotal: 150000, want: 12000},
		{name: "exactly at threshold is free", subtotal: 300000, want: 0},
		{name: "above threshold is free", subtotal: 450000, want: 0},
		{name: "just under threshold", subtotal: 299999, want: 12000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testPricing.ShippingFor(tt.subtotal); got != tt.want {
				t.Errorf("ShippingFor(%d) = %d, want %d", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem(product("a", "Singer", 150000))
	c.AddItem(product("b", "Brother", 100000))

	q := c.Quote(testPricing)
	if q.Subtotal != 250000 || q.Shipping != 12000 || q.Total != 262000 {
		t.Errorf("Quote() = %+v, want 250000/12000/262000", q)
	}
}

func TestFromLines(t *testing.T) {
	t.Parallel()

	c := FromLines([]Line{
		{Product: product("a", "Singer", 1000), Qty: 3},
		{Product: catalog.Product{}, Qty: 2},
		{Product: product("b", "Brother", 2000), Qty: 0},
	})

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("len = %d, want 2 (identity-less line dropped)", len(lines))
	}
	if lines[0].Qty != 3 {
		t.Errorf("qty[0] = %d, want 3", lines[0].Qty)
	}
	if lines[1].Qty != 1 {
		t.Errorf("qty[1] = %d, want clamped to 1", lines[1].Qty)
	}
}
