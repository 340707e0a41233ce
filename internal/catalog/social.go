package catalog

import "strings"

// Social is the flat record of external link settings kept in the single
// settings/social document.
type Social struct {
	Instagram string   `json:"instagram"`
	YouTube   string   `json:"youtube"`
	TikTok    string   `json:"tiktok"`
	VideoID   string   `json:"videoId"`
	Shorts    []string `json:"shorts"`
}

// ApplySocialSchema normalizes a raw social payload. All string fields are
// trimmed; shorts keeps only non-empty trimmed string entries and any
// non-list value yields an empty list.
func ApplySocialSchema(data map[string]any) Social {
	s := Social{
		Instagram: strings.TrimSpace(asString(data["instagram"])),
		YouTube:   strings.TrimSpace(asString(data["youtube"])),
		TikTok:    strings.TrimSpace(asString(data["tiktok"])),
		VideoID:   strings.TrimSpace(asString(data["videoId"])),
		Shorts:    []string{},
	}

	if raw, ok := data["shorts"].([]any); ok {
		for _, entry := range raw {
			if str, ok := entry.(string); ok {
				if trimmed := strings.TrimSpace(str); trimmed != "" {
					s.Shorts = append(s.Shorts, trimmed)
				}
			}
		}
	}

	return s
}

// Normalized applies the schema rules to an already-typed record: trimmed
// strings and a shorts list holding only non-empty trimmed entries.
func (s Social) Normalized() Social {
	out := Social{
		Instagram: strings.TrimSpace(s.Instagram),
		YouTube:   strings.TrimSpace(s.YouTube),
		TikTok:    strings.TrimSpace(s.TikTok),
		VideoID:   strings.TrimSpace(s.VideoID),
		Shorts:    []string{},
	}
	for _, short := range s.Shorts {
		if trimmed := strings.TrimSpace(short); trimmed != "" {
			out.Shorts = append(out.Shorts, trimmed)
		}
	}
	return out
}

// MergeSocial fills every empty field of s from fallback. An empty shorts
// list is replaced wholesale by the fallback list.
func MergeSocial(s, fallback Social) Social {
	merged := s
	if merged.Instagram == "" {
		merged.Instagram = fallback.Instagram
	}
	if merged.YouTube == "" {
		merged.YouTube = fallback.YouTube
	}
	if merged.TikTok == "" {
		merged.TikTok = fallback.TikTok
	}
	if merged.VideoID == "" {
		merged.VideoID = fallback.VideoID
	}
	if len(merged.Shorts) == 0 {
		merged.Shorts = append([]string{}, fallback.Shorts...)
	}
	return merged
}
