package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{10, 10},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tt := range tests {
		if got := NormalizeLimit(tt.in); got != tt.want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeParams(t *testing.T) {
	got := Params{Offset: -3, Limit: 500}.Normalize()
	if got.Offset != 0 {
		t.Fatalf("expected offset 0, got %d", got.Offset)
	}
	if got.Limit != MaxLimit {
		t.Fatalf("expected limit %d, got %d", MaxLimit, got.Limit)
	}
}
