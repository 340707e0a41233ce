package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/senalmaq/storefront/internal/cart"
	"github.com/senalmaq/storefront/internal/catalog"
	"github.com/senalmaq/storefront/internal/money"
)

var testBuilder = Builder{
	StoreName:    "Senalmaq",
	WhatsAppBase: "https://wa.me/573176693030",
	Pricing:      cart.Pricing{FreeShippingThreshold: 300000, ShippingCost: 12000},
}

func TestMessageEmptyCart(t *testing.T) {
	t.Parallel()

	if got := testBuilder.Message(cart.New()); got != EmptyCartMessage {
		t.Errorf("Message(empty) = %q, want %q", got, EmptyCartMessage)
	}
	if got := testBuilder.Message(nil); got != EmptyCartMessage {
		t.Errorf("Message(nil) = %q, want %q", got, EmptyCartMessage)
	}
}

func TestMessageContents(t *testing.T) {
	t.Parallel()

	c := cart.New()
	c.AddItem(catalog.Product{DocID: "a", Name: "Singer 4423", Price: 150000})
	c.AddItem(catalog.Product{DocID: "b", Name: "Plancha Industrial", Price: 100000})

	msg := testBuilder.Message(c)

	wantFragments := []string{
		"*Nuevo pedido* – Senalmaq",
		"Singer 4423 x1 – " + money.FormatCOP(150000),
		"Plancha Industrial x1 – " + money.FormatCOP(100000),
		"Subtotal: " + money.FormatCOP(250000),
		"Envio: " + money.FormatCOP(12000),
		"Total: " + money.FormatCOP(262000),
		"Direccion: (escribe tu direccion)",
		"Telefono: (tu telefono)",
		"Email: (tu email)",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(msg, fragment) {
			t.Errorf("message missing %q\nmessage:\n%s", fragment, msg)
		}
	}

	// item lines come before totals, in cart order
	if strings.Index(msg, "Singer 4423") > strings.Index(msg, "Plancha Industrial") {
		t.Error("item lines out of cart order")
	}
	if strings.Index(msg, "Plancha Industrial") > strings.Index(msg, "Subtotal:") {
		t.Error("totals precede item lines")
	}
}

func TestMessageFreeShipping(t *testing.T) {
	t.Parallel()

	c := cart.New()
	c.AddItem(catalog.Product{DocID: "a", Name: "Fileteadora", Price: 300000})

	msg := testBuilder.Message(c)
	if !strings.Contains(msg, "Envio: Gratis") {
		t.Errorf("message at threshold should ship free:\n%s", msg)
	}
	if !strings.Contains(msg, "Total: "+money.FormatCOP(300000)) {
		t.Errorf("total should equal subtotal with free shipping:\n%s", msg)
	}
}

func TestMessageQuantities(t *testing.T) {
	t.Parallel()

	c := cart.New()
	p := catalog.Product{DocID: "a", Name: "Singer 4423", Price: 1000}
	c.AddItem(p)
	c.AddItem(p)
	c.AddItem(p)

	msg := testBuilder.Message(c)
	if !strings.Contains(msg, "Singer 4423 x3 – "+money.FormatCOP(3000)) {
		t.Errorf("line with qty 3 missing:\n%s", msg)
	}
}

func TestLink(t *testing.T) {
	t.Parallel()

	c := cart.New()
	c.AddItem(catalog.Product{DocID: "a", Name: "Singer 4423", Price: 150000})

	link := testBuilder.Link(c)
	if !strings.HasPrefix(link, "https://wa.me/573176693030?text=") {
		t.Fatalf("link = %q, want wa.me base with text param", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	decoded := parsed.Query().Get("text")
	if decoded != testBuilder.Message(c) {
		t.Errorf("decoded text = %q, want the original message", decoded)
	}
}
