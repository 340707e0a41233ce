package handlers

import (
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
	"github.com/gorilla/mux"

	"github.com/senalmaq/storefront/internal/cart"
	"github.com/senalmaq/storefront/internal/catalog"
	"github.com/senalmaq/storefront/internal/money"
	"github.com/senalmaq/storefront/internal/observability"
)

type cartLineView struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	Price          int64  `json:"price"`
	Total          int64  `json:"total"`
	TotalFormatted string `json:"totalFormatted"`
	Image          string `json:"image"`
	Slug           string `json:"slug"`
}

type cartView struct {
	Lines             []cartLineView `json:"lines"`
	Subtotal          int64          `json:"subtotal"`
	Shipping          int64          `json:"shipping"`
	Total             int64          `json:"total"`
	SubtotalFormatted string         `json:"subtotalFormatted"`
	ShippingFormatted string         `json:"shippingFormatted"`
	TotalFormatted    string         `json:"totalFormatted"`
	FreeShipping      bool           `json:"freeShipping"`
}

func (h *Handlers) cartViewFor(c *cart.Cart) cartView {
	quote := c.Quote(h.checkoutService.Pricing())

	lines := make([]cartLineView, 0, c.Len())
	for _, l := range c.Lines() {
		lines = append(lines, cartLineView{
			ProductID:      l.Product.Identity(),
			Name:           l.Product.Name,
			Qty:            l.Qty,
			Price:          l.Product.Price,
			Total:          l.Total(),
			TotalFormatted: money.FormatCOP(l.Total()),
			Image:          l.Product.Image,
			Slug:           l.Product.Slug(),
		})
	}

	shippingFormatted := money.FormatCOP(quote.Shipping)
	if quote.Shipping == 0 && quote.Subtotal > 0 {
		shippingFormatted = "Gratis"
	}

	return cartView{
		Lines:             lines,
		Subtotal:          quote.Subtotal,
		Shipping:          quote.Shipping,
		Total:             quote.Total,
		SubtotalFormatted: money.FormatCOP(quote.Subtotal),
		ShippingFormatted: shippingFormatted,
		TotalFormatted:    money.FormatCOP(quote.Total),
		FreeShipping:      quote.Subtotal > 0 && quote.Shipping == 0,
	}
}

// Cart returns the current visitor's cart, creating the session on demand.
func (h *Handlers) Cart(w http.ResponseWriter, r *http.Request) {
	_, data, err := h.sessionManager.Ensure(r.Context(), w, r)
	if err != nil {
		h.loggerFromContext(r.Context()).Error("failed to load session", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "No pudimos cargar el carrito.")
		return
	}
	h.writeJSON(w, r, http.StatusOK, h.cartViewFor(data.Cart()))
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
}

// mutateCart loads the session cart, applies fn, and persists the result.
// Unknown line ids inside fn are silent no-ops, mirroring how the cart
// itself behaves.
func (h *Handlers) mutateCart(w http.ResponseWriter, r *http.Request, metric string, fn func(c *cart.Cart)) {
	ctx := r.Context()
	sessionID, data, err := h.sessionManager.Ensure(ctx, w, r)
	if err != nil {
		h.loggerFromContext(ctx).Error("failed to load session", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "No pudimos cargar el carrito.")
		return
	}

	c := data.Cart()
	fn(c)

	data.Lines = c.Lines()
	if err := h.sessionManager.Save(ctx, sessionID, data); err != nil {
		h.loggerFromContext(ctx).Error("failed to save session", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "No pudimos guardar el carrito.")
		return
	}

	meter := observability.MeterFromContext(ctx)
	meter.Count(metric, 1, sentry.WithAttributes(
		attribute.Int("cart.lines", c.Len()),
	))

	h.writeJSON(w, r, http.StatusOK, h.cartViewFor(c))
}

// cartProductFromBody decodes the request and resolves the product it names.
// It writes the error response itself and returns nil when the caller should
// stop.
func (h *Handlers) cartProductFromBody(w http.ResponseWriter, r *http.Request) *catalog.Product {
	var req cartItemRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Solicitud invalida.")
		return nil
	}
	id := strings.TrimSpace(req.ProductID)
	if id == "" {
		h.writeError(w, r, http.StatusBadRequest, "Falta el producto.")
		return nil
	}

	product, err := h.catalogService.ProductByID(r.Context(), id)
	if err != nil {
		h.loggerFromContext(r.Context()).Error("product lookup failed", "product_id", id, "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "No pudimos cargar el producto.")
		return nil
	}
	if product == nil {
		h.writeError(w, r, http.StatusNotFound, "Producto no encontrado.")
		return nil
	}
	return product
}

// CartAdd adds one unit of a product to the cart.
func (h *Handlers) CartAdd(w http.ResponseWriter, r *http.Request) {
	product := h.cartProductFromBody(w, r)
	if product == nil {
		return
	}
	h.mutateCart(w, r, "cart.item.added", func(c *cart.Cart) {
		c.AddItem(*product)
	})
}

// CartBuyNow ensures a product is in the cart without increasing the
// quantity of an already-present line.
func (h *Handlers) CartBuyNow(w http.ResponseWriter, r *http.Request) {
	product := h.cartProductFromBody(w, r)
	if product == nil {
		return
	}
	h.mutateCart(w, r, "cart.buy_now", func(c *cart.Cart) {
		c.BuyNow(*product)
	})
}

// CartIncrease bumps the quantity of a cart line.
func (h *Handlers) CartIncrease(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.mutateCart(w, r, "cart.item.increased", func(c *cart.Cart) {
		c.IncreaseQty(id)
	})
}

// CartDecrease lowers the quantity of a cart line, removing it at one.
func (h *Handlers) CartDecrease(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.mutateCart(w, r, "cart.item.decreased", func(c *cart.Cart) {
		c.DecreaseQty(id)
	})
}

// CartRemove drops a line from the cart regardless of quantity.
func (h *Handlers) CartRemove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.mutateCart(w, r, "cart.item.removed", func(c *cart.Cart) {
		c.Remove(id)
	})
}

// CartClear empties the cart.
func (h *Handlers) CartClear(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, "cart.cleared", func(c *cart.Cart) {
		c.Clear()
	})
}
