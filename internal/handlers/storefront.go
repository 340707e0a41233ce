package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/senalmaq/storefront/internal/catalog"
)

type productListResponse struct {
	Products []catalog.Product `json:"products"`
	Error    string            `json:"error,omitempty"`
}

type categoryListResponse struct {
	Categories []catalog.Category `json:"categories"`
	Error      string             `json:"error,omitempty"`
}

type categoryPageResponse struct {
	Name     string            `json:"name"`
	Slug     string            `json:"slug"`
	Products []catalog.Product `json:"products"`
	Error    string            `json:"error,omitempty"`
}

type socialResponse struct {
	Social catalog.Social `json:"social"`
	Error  string         `json:"error,omitempty"`
}

type productResponse struct {
	Product catalog.Product `json:"product"`
	Slug    string          `json:"slug"`
	Price   string          `json:"priceFormatted"`
}

// Products lists the catalog, optionally filtered by category slug or
// restricted to best sellers.
func (h *Handlers) Products(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		products []catalog.Product
		errMsg   string
	)
	switch {
	case query.Get("best_sellers") != "":
		products, errMsg = h.catalogService.BestSellers()
	case strings.TrimSpace(query.Get("category")) != "":
		_, products, errMsg = h.catalogService.CategoryPage(strings.TrimSpace(query.Get("category")))
	default:
		products, errMsg = h.catalogService.Products()
	}

	if products == nil {
		products = []catalog.Product{}
	}
	h.writeJSON(w, r, http.StatusOK, productListResponse{Products: products, Error: errMsg})
}

// ProductBySlug resolves a single product from its URL segment.
func (h *Handlers) ProductBySlug(w http.ResponseWriter, r *http.Request) {
	productSlug := mux.Vars(r)["slug"]

	product, err := h.catalogService.ProductBySlug(r.Context(), productSlug)
	if err != nil {
		h.loggerFromContext(r.Context()).Error("product lookup failed", "slug", productSlug, "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "No pudimos cargar el producto.")
		return
	}
	if product == nil {
		h.writeError(w, r, http.StatusNotFound, "Producto no encontrado.")
		return
	}

	h.writeJSON(w, r, http.StatusOK, productResponse{
		Product: *product,
		Slug:    product.Slug(),
		Price:   product.PriceFormatted(),
	})
}

// Categories lists the category projection, falling back to the built-in
// defaults when the store has none.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	categories, errMsg := h.catalogService.Categories()
	if categories == nil {
		categories = []catalog.Category{}
	}
	h.writeJSON(w, r, http.StatusOK, categoryListResponse{Categories: categories, Error: errMsg})
}

// CategoryBySlug returns the resolved category name plus its products.
func (h *Handlers) CategoryBySlug(w http.ResponseWriter, r *http.Request) {
	categorySlug := mux.Vars(r)["slug"]

	name, products, errMsg := h.catalogService.CategoryPage(categorySlug)
	if products == nil {
		products = []catalog.Product{}
	}
	h.writeJSON(w, r, http.StatusOK, categoryPageResponse{
		Name:     name,
		Slug:     categorySlug,
		Products: products,
		Error:    errMsg,
	})
}

// Social returns the store's social links merged with the defaults.
func (h *Handlers) Social(w http.ResponseWriter, r *http.Request) {
	social, errMsg := h.socialService.Social()
	h.writeJSON(w, r, http.StatusOK, socialResponse{Social: social, Error: errMsg})
}
