package utils

import "testing"

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		name      string
		completed int64
		total     int64
		want      float64
	}{
		{"empty course", 0, 0, 0},
		{"nothing completed", 0, 3, 0},
		{"one third", 1, 3, 33.33},
		{"two thirds", 2, 3, 66.67},
		{"all done", 3, 3, 100},
		{"one sixth", 1, 6, 16.67},
		{"half", 1, 2, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProgressPercent(tc.completed, tc.total); got != tc.want {
				t.Errorf("ProgressPercent(%d, %d) = %v, want %v", tc.completed, tc.total, got, tc.want)
			}
		})
	}
}
