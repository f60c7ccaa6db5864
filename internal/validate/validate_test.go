package validate

import (
	"math"
	"strings"
	"testing"

	"whiteboard/internal/models"
)

func TestRoomKey(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"my-room_42", true},
		{"general", true},
		{"A", true},
		{strings.Repeat("x", 50), true},
		{strings.Repeat("x", 51), false},
		{"", false},
		{"My Room!", false},
		{"room/1", false},
		{"комната", false},
	}
	for _, tc := range cases {
		if got := RoomKey(tc.key); got != tc.want {
			t.Errorf("RoomKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestStrokeBounds(t *testing.T) {
	base := models.Stroke{X0: 0, Y0: 0, X1: 10, Y1: 10, Color: "#000000", Size: 2, Tool: models.ToolPen}
	if !Stroke(base) {
		t.Fatalf("expected valid stroke to pass")
	}

	cases := []struct {
		name   string
		mutate func(*models.Stroke)
	}{
		{"x0 negative", func(s *models.Stroke) { s.X0 = -1 }},
		{"x1 above max", func(s *models.Stroke) { s.X1 = 5001 }},
		{"y0 NaN", func(s *models.Stroke) { s.Y0 = math.NaN() }},
		{"y1 +Inf", func(s *models.Stroke) { s.Y1 = math.Inf(1) }},
	}
	for _, tc := range cases {
		s := base
		tc.mutate(&s)
		if Stroke(s) {
			t.Errorf("%s: expected rejection", tc.name)
		}
	}

	edge := base
	edge.X1, edge.Y1 = 5000, 5000
	if !Stroke(edge) {
		t.Fatalf("expected boundary coordinates to pass")
	}
}

func TestCursorBounds(t *testing.T) {
	if !Cursor(models.Cursor{X: 0, Y: 5000}) {
		t.Fatalf("expected boundary cursor to pass")
	}
	if Cursor(models.Cursor{X: -1, Y: 0}) {
		t.Fatalf("expected negative x rejection")
	}
	if Cursor(models.Cursor{X: 0, Y: 5000.5}) {
		t.Fatalf("expected out-of-range y rejection")
	}
	if Cursor(models.Cursor{X: math.NaN(), Y: 0}) {
		t.Fatalf("expected NaN rejection")
	}
}
