package slug

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain word", in: "Bordadoras", want: "bordadoras"},
		{name: "diacritics stripped", in: "Máquina de Coser", want: "maquina-de-coser"},
		{name: "enye", in: "Años", want: "anos"},
		{name: "punctuation collapses", in: "Planas -- Mecatrónicas!!", want: "planas-mecatronicas"},
		{name: "leading and trailing separators trimmed", in: "  ¡Ofertas!  ", want: "ofertas"},
		{name: "digits kept", in: "Maquinas 20u", want: "maquinas-20u"},
		{name: "only symbols", in: "¡¿!?", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestForProduct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       string
		prodName string
		want     string
	}{
		{name: "id and name", id: "abc123", prodName: "Máquina de Coser", want: "maquina-de-coser__abc123"},
		{name: "id only", id: "abc123", prodName: "", want: "abc123"},
		{name: "name only", id: "", prodName: "Fileteadora", want: "fileteadora"},
		{name: "neither", id: "", prodName: "", want: ""},
		{name: "id is trimmed", id: "  abc123  ", prodName: "Plancha", want: "plancha__abc123"},
		{name: "name that slugs to empty falls back to id", id: "xyz", prodName: "¡!", want: "xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForProduct(tt.id, tt.prodName); got != tt.want {
				t.Errorf("ForProduct(%q, %q) = %q, want %q", tt.id, tt.prodName, got, tt.want)
			}
		})
	}
}

func TestExtractProductID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "name and id", in: "maquina-de-coser__abc123", want: "abc123"},
		{name: "no marker passes through", in: "plain-id-no-marker", want: "plain-id-no-marker"},
		{name: "last marker wins", in: "odd__name__abc123", want: "abc123"},
		{name: "empty", in: "", want: ""},
		{name: "trailing marker yields empty id", in: "maquina__", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractProductID(tt.in); got != tt.want {
				t.Errorf("ExtractProductID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	s := ForProduct("abc123", "Máquina de Coser")
	if got := ExtractProductID(s); got != "abc123" {
		t.Errorf("ExtractProductID(ForProduct(...)) = %q, want %q", got, "abc123")
	}
}
