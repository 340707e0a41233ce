package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/senalmaq/storefront/internal/config"
	"github.com/senalmaq/storefront/internal/logging"
	"github.com/senalmaq/storefront/internal/services"
	"github.com/senalmaq/storefront/internal/session"
)

const maxJSONBodyBytes = 1 << 20 // 1 MB

// Handlers provides the HTTP request handlers for the storefront API.
type Handlers struct {
	config          *config.Config
	catalogService  *services.CatalogService
	socialService   *services.SocialService
	checkoutService *services.CheckoutService
	authService     *services.AuthService
	adminService    *services.AdminService
	sessionManager  *session.Manager
	logger          *slog.Logger
}

type Dependencies struct {
	Config          *config.Config
	CatalogService  *services.CatalogService
	SocialService   *services.SocialService
	CheckoutService *services.CheckoutService
	AuthService     *services.AuthService
	AdminService    *services.AdminService
	SessionManager  *session.Manager
	Logger          *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.CatalogService == nil {
		return nil, fmt.Errorf("handlers dependencies: catalogService is required")
	}
	if deps.SocialService == nil {
		return nil, fmt.Errorf("handlers dependencies: socialService is required")
	}
	if deps.CheckoutService == nil {
		return nil, fmt.Errorf("handlers dependencies: checkoutService is required")
	}
	if deps.AuthService == nil {
		return nil, fmt.Errorf("handlers dependencies: authService is required")
	}
	if deps.AdminService == nil {
		return nil, fmt.Errorf("handlers dependencies: adminService is required")
	}
	if deps.SessionManager == nil {
		return nil, fmt.Errorf("handlers dependencies: sessionManager is required")
	}

	return &Handlers{
		config:          deps.Config,
		catalogService:  deps.CatalogService,
		socialService:   deps.SocialService,
		checkoutService: deps.CheckoutService,
		authService:     deps.AuthService,
		adminService:    deps.AdminService,
		sessionManager:  deps.SessionManager,
		logger:          logger.With("component", "handlers"),
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.loggerFromContext(r.Context()).Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, map[string]string{"error": message})
}

func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
