package handlers

import (
	"net/http"
)

type checkoutResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

// CheckoutWhatsApp renders the WhatsApp order message and deep link for the
// visitor's current cart. An empty cart still produces a usable link.
func (h *Handlers) CheckoutWhatsApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, data, err := h.sessionManager.Ensure(ctx, w, r)
	if err != nil {
		h.loggerFromContext(ctx).Error("failed to load session", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "No pudimos cargar el carrito.")
		return
	}

	message, link := h.checkoutService.Handoff(ctx, data.Cart())
	h.writeJSON(w, r, http.StatusOK, checkoutResponse{Message: message, Link: link})
}
