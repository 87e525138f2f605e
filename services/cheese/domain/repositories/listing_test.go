package repositories

import "testing"

func TestPriceRange_IsZero(t *testing.T) {
	v := int64(500)
	tests := []struct {
		name string
		r    PriceRange
		want bool
	}{
		{name: "empty", r: PriceRange{}, want: true},
		{name: "lower bound", r: PriceRange{GTE: &v}},
		{name: "upper bound", r: PriceRange{LT: &v}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}
