package services

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"

	"github.com/senalmaq/storefront/internal/cart"
	"github.com/senalmaq/storefront/internal/checkout"
	"github.com/senalmaq/storefront/internal/config"
	"github.com/senalmaq/storefront/internal/observability"
)

// CheckoutService renders the WhatsApp handoff for a visitor's cart. There
// is deliberately no order persistence behind it.
type CheckoutService struct {
	builder checkout.Builder
	logger  *slog.Logger
}

func NewCheckoutService(cfg *config.Config, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		builder: checkout.Builder{
			StoreName:    cfg.StoreName,
			WhatsAppBase: cfg.WhatsAppLink,
			Pricing: cart.Pricing{
				FreeShippingThreshold: cfg.ShippingThresholdCents,
				ShippingCost:          cfg.ShippingCostCents,
			},
		},
		logger: logger,
	}
}

// Pricing exposes the shipping rules so cart views can quote consistently.
func (s *CheckoutService) Pricing() cart.Pricing {
	return s.builder.Pricing
}

// Handoff builds the order message and deep link for the cart.
func (s *CheckoutService) Handoff(ctx context.Context, c *cart.Cart) (message, link string) {
	message = s.builder.Message(c)
	link = s.builder.Link(c)

	meter := observability.MeterFromContext(ctx)
	meter.Count("checkout.handoff", 1, sentry.WithAttributes(
		attribute.Int("cart.lines", c.Len()),
		attribute.Bool("cart.empty", c.IsEmpty()),
	))

	quote := c.Quote(s.builder.Pricing)
	s.logger.Info("checkout handoff built",
		"lines", c.Len(),
		"subtotal", quote.Subtotal,
		"shipping", quote.Shipping,
		"total", quote.Total,
	)

	return message, link
}
