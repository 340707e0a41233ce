// Package catalog holds the normalized storefront entities and the
// projection rules that map raw backing-store documents onto them. Schema
// application never rejects a document; missing or malformed fields are
// defaulted so consumers always see complete records.
package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/senalmaq/storefront/internal/money"
	"github.com/senalmaq/storefront/internal/slug"
)

type Product struct {
	ID          string `json:"id"`
	DocID       string `json:"docId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	BestSeller  bool   `json:"bestSeller"`
	Image       string `json:"image"`
	ImageURL    string `json:"imageUrl"`
}

// Identity returns the aggregation key for the product: the backing-store
// document id, falling back to the legacy id for older records.
func (p Product) Identity() string {
	if id := strings.TrimSpace(p.DocID); id != "" {
		return id
	}
	return strings.TrimSpace(p.ID)
}

// Slug returns the URL segment for the product page.
func (p Product) Slug() string {
	return slug.ForProduct(p.Identity(), p.Name)
}

// PriceFormatted renders the price as Colombian pesos for display.
func (p Product) PriceFormatted() string {
	return money.FormatCOP(p.Price)
}

// ApplyProductSchema normalizes a raw product payload. docID is the
// backing-store document identifier and always wins over any docId field in
// the payload; the legacy id field falls back to docID when absent. The
// resolved display image is written to both image fields so consumers never
// need to special-case the two names.
func ApplyProductSchema(docID string, data map[string]any) Product {
	p := Product{
		DocID:       docID,
		ID:          asString(data["id"]),
		Name:        asString(data["name"]),
		Description: asString(data["description"]),
		Price:       asPrice(data["price"]),
		Category:    asString(data["category"]),
		BestSeller:  asBool(data["bestSeller"]),
	}
	if p.ID == "" {
		p.ID = docID
	}

	image := asString(data["imageUrl"])
	if image == "" {
		image = asString(data["image"])
	}
	p.Image = image
	p.ImageURL = image

	return p
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case float64:
		if s == math.Trunc(s) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// asPrice coerces a raw price field to a non-negative-friendly int64,
// defaulting to 0 when the value is absent or not numeric.
func asPrice(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int64(math.Round(n))
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return int64(math.Round(parsed))
	default:
		return 0
	}
}

// asBool mirrors loose truthiness: absent and zero values are false,
// everything else is true.
func asBool(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case int64:
		return b != 0
	case int:
		return b != 0
	case float64:
		return b != 0
	default:
		return true
	}
}
