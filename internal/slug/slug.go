// Package slug derives URL-safe identifiers from catalog names and ids.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// idMarker separates the name portion of a product slug from the trailing
// document id. Backing-store ids are assumed to never contain this sequence;
// slugified names cannot produce it because Slugify never emits underscores.
const idMarker = "__"

// Slugify lowercases the input, strips diacritics and collapses every run of
// characters outside [a-z0-9] into a single hyphen. Empty input yields "".
func Slugify(text string) string {
	if text == "" {
		return ""
	}

	decomposed := norm.NFD.String(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingHyphen := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// ForProduct builds the URL segment for a product from its resolved identity
// and display name. When both are present the segment is
// "<name-slug>__<id>"; a missing side degrades to the other alone.
func ForProduct(id, name string) string {
	trimmedID := strings.TrimSpace(id)
	nameSlug := Slugify(name)

	switch {
	case trimmedID != "" && nameSlug != "":
		return nameSlug + idMarker + trimmedID
	case trimmedID != "":
		return trimmedID
	default:
		return nameSlug
	}
}

// ExtractProductID recovers the document id from a product URL segment. It
// splits on the last occurrence of the id marker so that underscores produced
// upstream inside the name portion cannot swallow the id. Segments without a
// marker are returned unchanged (legacy bare-id slugs).
func ExtractProductID(s string) string {
	if s == "" {
		return ""
	}
	if i := strings.LastIndex(s, idMarker); i >= 0 {
		return s[i+len(idMarker):]
	}
	return s
}
