package catalog

import (
	"reflect"
	"testing"
)

func TestApplyProductSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		docID string
		data  map[string]any
		want  Product
	}{
		{
			name:  "complete document",
			docID: "abc123",
			data: map[string]any{
				"id":          "legacy-9",
				"name":        "Máquina de Coser",
				"description": "<p>industrial</p>",
				"price":       int64(1250000),
				"category":    "Maquinas De Coser Singer",
				"bestSeller":  true,
				"imageUrl":    "https://cdn.example.com/a.png",
				"image":       "https://cdn.example.com/old.png",
			},
			want: Product{
				ID:          "legacy-9",
				DocID:       "abc123",
				Name:        "Máquina de Coser",
				Description: "<p>industrial</p>",
				Price:       1250000,
				Category:    "Maquinas De Coser Singer",
				BestSeller:  true,
				Image:       "https://cdn.example.com/a.png",
				ImageURL:    "https://cdn.example.com/a.png",
			},
		},
		{
			name:  "empty document gets defaults",
			docID: "empty1",
			data:  map[string]any{},
			want:  Product{ID: "empty1", DocID: "empty1"},
		},
		{
			name:  "missing price defaults to zero",
			docID: "p1",
			data:  map[string]any{"name": "Plancha"},
			want:  Product{ID: "p1", DocID: "p1", Name: "Plancha"},
		},
		{
			name:  "non-numeric price defaults to zero",
			docID: "p2",
			data:  map[string]any{"price": "not a number"},
			want:  Product{ID: "p2", DocID: "p2"},
		},
		{
			name:  "string price is parsed",
			docID: "p3",
			data:  map[string]any{"price": "15000"},
			want:  Product{ID: "p3", DocID: "p3", Price: 15000},
		},
		{
			name:  "float price is rounded",
			docID: "p4",
			data:  map[string]any{"price": 11999.6},
			want:  Product{ID: "p4", DocID: "p4", Price: 12000},
		},
		{
			name:  "payload docId never wins over snapshot id",
			docID: "real-id",
			data:  map[string]any{"docId": "spoofed"},
			want:  Product{ID: "real-id", DocID: "real-id"},
		},
		{
			name:  "legacy numeric id is stringified",
			docID: "doc7",
			data:  map[string]any{"id": int64(42)},
			want:  Product{ID: "42", DocID: "doc7"},
		},
		{
			name:  "image used when imageUrl empty",
			docID: "doc8",
			data:  map[string]any{"image": "https://cdn.example.com/b.png"},
			want: Product{
				ID: "doc8", DocID: "doc8",
				Image:    "https://cdn.example.com/b.png",
				ImageURL: "https://cdn.example.com/b.png",
			},
		},
		{
			name:  "bestSeller coerces from number",
			docID: "doc9",
			data:  map[string]any{"bestSeller": int64(1)},
			want:  Product{ID: "doc9", DocID: "doc9", BestSeller: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyProductSchema(tt.docID, tt.data)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyProductSchema() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{name: "docId wins", product: Product{DocID: "abc", ID: "legacy"}, want: "abc"},
		{name: "legacy id fallback", product: Product{ID: "legacy"}, want: "legacy"},
		{name: "whitespace docId falls through", product: Product{DocID: "   ", ID: "legacy"}, want: "legacy"},
		{name: "empty", product: Product{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.Identity(); got != tt.want {
				t.Errorf("Identity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyCategorySchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		docID string
		data  map[string]any
		want  Category
	}{
		{
			name:  "trimmed fields",
			docID: "c1",
			data:  map[string]any{"name": "  Bordadoras ", "icon": " shirt "},
			want:  Category{ID: "c1", Name: "Bordadoras", Icon: IconShirt},
		},
		{
			name:  "empty icon defaults",
			docID: "c2",
			data:  map[string]any{"name": "Planchas"},
			want:  Category{ID: "c2", Name: "Planchas", Icon: IconGear},
		},
		{
			name:  "unknown icon defaults",
			docID: "c3",
			data:  map[string]any{"name": "Lamparas", "icon": "sparkles"},
			want:  Category{ID: "c3", Name: "Lamparas", Icon: IconGear},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCategorySchema(tt.docID, tt.data)
			if got != tt.want {
				t.Errorf("ApplyCategorySchema() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApplySocialSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data map[string]any
		want Social
	}{
		{
			name: "trims and filters shorts",
			data: map[string]any{
				"instagram": "  https://instagram.com/x ",
				"videoId":   "abc",
				"shorts":    []any{" one ", "", "two", int64(3)},
			},
			want: Social{
				Instagram: "https://instagram.com/x",
				VideoID:   "abc",
				Shorts:    []string{"one", "two"},
			},
		},
		{
			name: "non-list shorts yields empty list",
			data: map[string]any{"shorts": "not-a-list"},
			want: Social{Shorts: []string{}},
		},
		{
			name: "empty payload",
			data: map[string]any{},
			want: Social{Shorts: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplySocialSchema(tt.data)
			if got.Instagram != tt.want.Instagram || got.YouTube != tt.want.YouTube ||
				got.TikTok != tt.want.TikTok || got.VideoID != tt.want.VideoID {
				t.Errorf("ApplySocialSchema() = %+v, want %+v", got, tt.want)
			}
			if len(tt.want.Shorts) == 0 && len(got.Shorts) != 0 {
				t.Errorf("shorts = %v, want empty", got.Shorts)
			}
			if len(tt.want.Shorts) > 0 && !reflect.DeepEqual(got.Shorts, tt.want.Shorts) {
				t.Errorf("shorts = %v, want %v", got.Shorts, tt.want.Shorts)
			}
		})
	}
}

func TestMergeSocial(t *testing.T) {
	t.Parallel()

	fallback := DefaultSocial()

	merged := MergeSocial(Social{Instagram: "https://instagram.com/custom"}, fallback)
	if merged.Instagram != "https://instagram.com/custom" {
		t.Errorf("merged.Instagram = %q, want custom value kept", merged.Instagram)
	}
	if merged.YouTube != fallback.YouTube {
		t.Errorf("merged.YouTube = %q, want fallback %q", merged.YouTube, fallback.YouTube)
	}
	if !reflect.DeepEqual(merged.Shorts, fallback.Shorts) {
		t.Errorf("merged.Shorts = %v, want fallback shorts", merged.Shorts)
	}
}

func TestDefaultCategories(t *testing.T) {
	t.Parallel()

	categories := DefaultCategories()
	if len(categories) == 0 {
		t.Fatal("DefaultCategories() is empty")
	}
	for _, c := range categories {
		if c.Name == "" {
			t.Error("default category with empty name")
		}
		if NormalizeIcon(c.Icon) != c.Icon {
			t.Errorf("default category %q has unknown icon %q", c.Name, c.Icon)
		}
	}
}
