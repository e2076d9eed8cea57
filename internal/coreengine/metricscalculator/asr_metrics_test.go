package metricscalculator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateWER(t *testing.T) {
	cases := []struct {
		name       string
		expected   string
		transcript string
		want       float64
	}{
		{"identical", "basmati rice", "basmati rice", 0.0},
		{"case insensitive", "Basmati Rice", "basmati RICE", 0.0},
		{"one substitution of two", "basmati rice", "basmati corn", 0.5},
		{"all wrong", "wheat", "corn", 1.0},
		{"insertion", "wheat", "the wheat", 1.0},
		{"both empty", "", "", 0.0},
	}
	for _, c := range cases {
		got, err := CalculateWER(c.expected, c.transcript)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if !almostEqual(got, c.want) {
			t.Errorf("%s: CalculateWER(%q, %q) = %v, want %v", c.name, c.expected, c.transcript, got, c.want)
		}
	}
}

func TestCalculateWEREmptyReference(t *testing.T) {
	got, err := CalculateWER("", "some words here")
	if err == nil {
		t.Fatal("expected an error for empty reference with non-empty transcript")
	}
	if !almostEqual(got, 1.0) {
		t.Errorf("got %v, want 1.0", got)
	}
}

func TestCalculateCER(t *testing.T) {
	cases := []struct {
		name       string
		expected   string
		transcript string
		want       float64
	}{
		{"identical", "wheat", "wheat", 0.0},
		{"case insensitive", "Wheat", "wHEAT", 0.0},
		{"one of five chars", "wheat", "wheet", 0.2},
		{"both empty", "", "", 0.0},
	}
	for _, c := range cases {
		got, err := CalculateCER(c.expected, c.transcript)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if !almostEqual(got, c.want) {
			t.Errorf("%s: CalculateCER(%q, %q) = %v, want %v", c.name, c.expected, c.transcript, got, c.want)
		}
	}
}
