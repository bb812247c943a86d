package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(Params{})
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestNormalizeClampsLimit(t *testing.T) {
	p := Normalize(Params{Page: 2, Limit: 5000})
	if p.Limit != MaxLimit {
		t.Fatalf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
	if p.Page != 2 {
		t.Fatalf("page should be untouched, got %d", p.Page)
	}
}

func TestNormalizeNegativeValues(t *testing.T) {
	p := Normalize(Params{Page: -3, Limit: -1})
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Fatalf("negative values should fall back to defaults, got %+v", p)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 10, 20},
		{4, 25, 75},
	}
	for _, tt := range tests {
		p := Normalize(Params{Page: tt.page, Limit: tt.limit})
		if got := p.Offset(); got != tt.want {
			t.Fatalf("page=%d limit=%d expected offset %d, got %d", tt.page, tt.limit, tt.want, got)
		}
	}
}
