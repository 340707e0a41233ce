// Package checkout turns a cart into a WhatsApp deep link. This is the whole
// checkout: the buyer finishes the order in the messaging app and no order
// record is created here.
package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/senalmaq/storefront/internal/cart"
	"github.com/senalmaq/storefront/internal/money"
)

// EmptyCartMessage is sent when the buyer opens the handoff with nothing in
// the cart.
const EmptyCartMessage = "Quiero hacer un pedido (carrito vacío)."

// Builder renders order-summary messages and deep links for one store.
type Builder struct {
	StoreName string
	// WhatsAppBase is the wa.me link for the store's number, without query.
	WhatsAppBase string
	Pricing      cart.Pricing
}

// Message builds the deterministic multi-line order summary: header, one
// line per cart item in cart order, totals, then prompts for the buyer's
// address, phone and email.
func (b Builder) Message(c *cart.Cart) string {
	if c == nil || c.IsEmpty() {
		return EmptyCartMessage
	}

	quote := c.Quote(b.Pricing)

	shipping := "Gratis"
	if quote.Shipping != 0 {
		shipping = money.FormatCOP(quote.Shipping)
	}

	lines := []string{
		"*Nuevo pedido* – " + b.StoreName,
		"",
	}
	for _, l := range c.Lines() {
		lines = append(lines, l.Product.Name+" x"+strconv.Itoa(l.Qty)+" – "+money.FormatCOP(l.Total()))
	}
	lines = append(lines,
		"",
		"Subtotal: "+money.FormatCOP(quote.Subtotal),
		"Envio: "+shipping,
		"Total: "+money.FormatCOP(quote.Total),
		"",
		"Direccion: (escribe tu direccion)",
		"Telefono: (tu telefono)",
		"Email: (tu email)",
	)

	return strings.Join(lines, "\n")
}

// Link returns the wa.me deep link carrying the encoded order message.
func (b Builder) Link(c *cart.Cart) string {
	return b.WhatsAppBase + "?text=" + url.QueryEscape(b.Message(c))
}
