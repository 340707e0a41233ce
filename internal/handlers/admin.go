package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/senalmaq/storefront/internal/catalog"
	"github.com/senalmaq/storefront/internal/services"
)

const (
	adminTokenCookie    = "senalmaq_admin"
	maxProductFormBytes = 10 << 20 // 10 MB, image included
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin exchanges credentials for a signed token, set both as a cookie
// and returned in the body for non-browser clients.
func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Solicitud invalida.")
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrAdminDisabled):
		h.writeError(w, r, http.StatusNotFound, "Not Found")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		h.writeError(w, r, http.StatusUnauthorized, "Credenciales invalidas.")
		return
	case err != nil:
		h.loggerFromContext(r.Context()).Error("admin login failed", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminTokenCookie,
		Value:    token,
		Path:     "/api/admin",
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	h.writeJSON(w, r, http.StatusOK, map[string]string{"token": token})
}

// RequireAdmin verifies the admin token from the Authorization header or the
// admin cookie before letting the request through.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if cookie, err := r.Cookie(adminTokenCookie); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			h.writeError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		email, err := h.authService.Verify(token)
		if err != nil {
			h.writeError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		h.loggerFromContext(r.Context()).Debug("admin request authorized", "admin", email)
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// AdminSaveSocial replaces the store's social links.
func (h *Handlers) AdminSaveSocial(w http.ResponseWriter, r *http.Request) {
	var social catalog.Social
	if err := h.decodeJSON(w, r, &social); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Solicitud invalida.")
		return
	}

	saved, err := h.socialService.Save(r.Context(), social)
	if err != nil {
		h.loggerFromContext(r.Context()).Error("failed to save social links", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "No pudimos guardar la informacion social.")
		return
	}
	h.writeJSON(w, r, http.StatusOK, socialResponse{Social: saved})
}

// AdminCreateProduct creates a product from a multipart form. The image part
// is optional; without one the product is created imageless.
func (h *Handlers) AdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxProductFormBytes)
	if err := r.ParseMultipartForm(maxProductFormBytes); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Solicitud invalida.")
		return
	}

	price, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("price")), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Precio invalido.")
		return
	}

	input := services.ProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Price:       price,
		BestSeller:  parseFormBool(r.FormValue("best_seller")),
	}

	var (
		fileName string
		file     io.Reader
	)
	if f, header, err := r.FormFile("image"); err == nil {
		defer f.Close()
		fileName = header.Filename
		file = f
	}

	product, err := h.adminService.CreateProduct(r.Context(), input, fileName, file)
	if err != nil {
		if product != nil {
			// The document exists but the image step failed; report the
			// partial result so the admin does not re-create the product.
			h.loggerFromContext(r.Context()).Error("product image step failed", "doc_id", product.DocID, "error", err)
			h.writeJSON(w, r, http.StatusCreated, productResponse{
				Product: *product,
				Slug:    product.Slug(),
				Price:   product.PriceFormatted(),
			})
			return
		}
		h.loggerFromContext(r.Context()).Error("product creation failed", "error", err)
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, r, http.StatusCreated, productResponse{
		Product: *product,
		Slug:    product.Slug(),
		Price:   product.PriceFormatted(),
	})
}

func parseFormBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
