package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 72, 48)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"origin", 0, 0, true},
		{"inside", 10, 5, true},
		{"last cell", 71, 47, true},
		{"right edge (exclusive)", 72, 10, false},
		{"bottom edge (exclusive)", 10, 48, false},
		{"negative x", -1, 0, false},
		{"negative y", 0, -1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectCenter(t *testing.T) {
	tests := []struct {
		outer    Rect
		w, h     int
		expected Rect
	}{
		{NewRect(0, 0, 80, 24), 20, 5, NewRect(30, 9, 20, 5)},
		{NewRect(0, 0, 81, 25), 20, 5, NewRect(30, 10, 20, 5)},
		{NewRect(10, 2, 20, 10), 4, 2, NewRect(18, 6, 4, 2)},
		{NewRect(0, 0, 10, 4), 14, 5, NewRect(-2, 0, 14, 5)},
	}

	for _, tc := range tests {
		if got := tc.outer.Center(tc.w, tc.h); got != tc.expected {
			t.Errorf("%+v.Center(%d, %d) = %+v, expected %+v", tc.outer, tc.w, tc.h, got, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	for _, tc := range []struct{ in, expected int }{{-5, 5}, {0, 0}, {7, 7}} {
		if got := Abs(tc.in); got != tc.expected {
			t.Errorf("Abs(%d) = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}
