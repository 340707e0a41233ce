package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/senalmaq/storefront/internal/slug"
)

// FallbackCategoryName is shown when a category URL segment is empty.
const FallbackCategoryName = "Categoría"

var (
	spanish      = language.Spanish
	titleCaser   = cases.Title(spanish)
	nameCollator = collate.New(spanish, collate.IgnoreCase)
)

// FilterByCategorySlug returns every product whose slugified category string
// equals s, preserving the relative order of the input. Products are matched
// to categories only through this derived slug relation; a category string
// may legitimately match no listed category.
func FilterByCategorySlug(products []Product, s string) []Product {
	filtered := make([]Product, 0)
	for _, p := range products {
		if slug.Slugify(p.Category) == s {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ResolveCategoryName returns the display name for a category URL segment:
// the first category whose slugified name matches, else the segment itself
// with hyphens turned into spaces and words title-cased, else the literal
// fallback when the segment is empty.
func ResolveCategoryName(categories []Category, s string) string {
	for _, c := range categories {
		if slug.Slugify(c.Name) == s {
			return c.Name
		}
	}

	humanized := strings.Join(strings.Fields(strings.ReplaceAll(s, "-", " ")), " ")
	if humanized == "" {
		return FallbackCategoryName
	}
	return titleCaser.String(humanized)
}

// SortByName orders products alphabetically with Spanish collation rules.
func SortByName(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return nameCollator.CompareString(products[i].Name, products[j].Name) < 0
	})
}

// BestSellers returns the products flagged as best sellers, in input order.
func BestSellers(products []Product) []Product {
	featured := make([]Product, 0)
	for _, p := range products {
		if p.BestSeller {
			featured = append(featured, p)
		}
	}
	return featured
}
