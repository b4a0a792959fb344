package service

import "testing"

func TestPageCount(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"exact multiple", 100, 10, 10},
		{"remainder rounds up", 101, 10, 11},
		{"single partial page", 3, 10, 1},
		{"empty", 0, 10, 0},
		{"one item", 1, 10, 1},
		{"limit one", 7, 1, 7},
		{"zero limit", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageCount(tt.total, tt.limit); got != tt.want {
				t.Errorf("PageCount(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}
