package money

import (
	"math"
	"strings"
	"testing"
)

func TestFormatCOP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "zero", amount: 0, want: "$ 0"},
		{name: "thousands grouped", amount: 12000, want: "$ 12.000"},
		{name: "hundreds of thousands", amount: 300000, want: "$ 300.000"},
		{name: "millions", amount: 1234567, want: "$ 1.234.567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCOP(tt.amount); got != tt.want {
				t.Errorf("FormatCOP(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatCOPNoFraction(t *testing.T) {
	t.Parallel()

	if got := FormatCOP(262000); strings.ContainsAny(got, ",") {
		t.Errorf("FormatCOP(262000) = %q, want no fraction separator", got)
	}
}

func TestFormatCOPValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    float64
		want string
	}{
		{name: "nan", v: math.NaN(), want: FallbackZero},
		{name: "positive infinity", v: math.Inf(1), want: FallbackZero},
		{name: "negative infinity", v: math.Inf(-1), want: FallbackZero},
		{name: "finite", v: 12000, want: FormatCOP(12000)},
		{name: "rounded", v: 11999.6, want: FormatCOP(12000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCOPValue(tt.v); got != tt.want {
				t.Errorf("FormatCOPValue(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
