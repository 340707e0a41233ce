package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/senalmaq/storefront/internal/config"
	"github.com/senalmaq/storefront/internal/handlers"
)

type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	handlers   *handlers.Handlers
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if h == nil {
		return nil, fmt.Errorf("handlers are required")
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		handlers: h,
	}

	router := s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Server) Run() error {
	s.logger.Info("server starting", "port", s.cfg.Port)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return nil
	}

	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) buildRouter() *mux.Router {
	h := s.handlers

	r := mux.NewRouter()
	r.Use(h.RequestLogger)
	r.Use(h.SecurityHeaders)
	r.HandleFunc("/health", h.Health).Methods("GET").Name("health")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", h.Products).Methods("GET").Name("products.list")
	api.HandleFunc("/products/{slug}", h.ProductBySlug).Methods("GET").Name("products.get")
	api.HandleFunc("/categories", h.Categories).Methods("GET").Name("categories.list")
	api.HandleFunc("/categories/{slug}", h.CategoryBySlug).Methods("GET").Name("categories.get")
	api.HandleFunc("/social", h.Social).Methods("GET").Name("social.get")

	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(h.RequireSameOrigin)
	cart.HandleFunc("", h.Cart).Methods("GET").Name("cart.get")
	cart.HandleFunc("", h.CartClear).Methods("DELETE").Name("cart.clear")
	cart.HandleFunc("/items", h.CartAdd).Methods("POST").Name("cart.items.add")
	cart.HandleFunc("/buy-now", h.CartBuyNow).Methods("POST").Name("cart.buy_now")
	cart.HandleFunc("/items/{id}/increase", h.CartIncrease).Methods("POST").Name("cart.items.increase")
	cart.HandleFunc("/items/{id}/decrease", h.CartDecrease).Methods("POST").Name("cart.items.decrease")
	cart.HandleFunc("/items/{id}", h.CartRemove).Methods("DELETE").Name("cart.items.remove")

	api.HandleFunc("/checkout/whatsapp", h.CheckoutWhatsApp).Methods("GET").Name("checkout.whatsapp")

	api.HandleFunc("/admin/login", h.AdminLogin).Methods("POST").Name("admin.login")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.RequireSameOrigin)
	admin.Use(h.RequireAdmin)
	admin.HandleFunc("/social", h.AdminSaveSocial).Methods("PUT").Name("admin.social")
	admin.HandleFunc("/products", h.AdminCreateProduct).Methods("POST").Name("admin.products.create")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not Found"}`))
	})

	return r
}
