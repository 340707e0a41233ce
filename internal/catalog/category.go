package catalog

import "strings"

// Icon keys the storefront UI knows how to render. Unrecognized values
// degrade to IconGear.
const (
	IconGear     = "gear"
	IconScissors = "scissors"
	IconShirt    = "shirt"
	IconNeedle   = "needle"
	IconPackage  = "package"
	IconWrench   = "wrench"
)

var knownIcons = map[string]struct{}{
	IconGear:     {},
	IconScissors: {},
	IconShirt:    {},
	IconNeedle:   {},
	IconPackage:  {},
	IconWrench:   {},
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// NormalizeIcon trims an icon key and falls back to the generic gear icon
// when the key is empty or not one of the known keys.
func NormalizeIcon(icon string) string {
	trimmed := strings.TrimSpace(icon)
	if _, ok := knownIcons[trimmed]; !ok {
		return IconGear
	}
	return trimmed
}

// ApplyCategorySchema normalizes a raw category payload. docID is the
// backing-store document identifier.
func ApplyCategorySchema(docID string, data map[string]any) Category {
	return Category{
		ID:   docID,
		Name: strings.TrimSpace(asString(data["name"])),
		Icon: NormalizeIcon(asString(data["icon"])),
	}
}
