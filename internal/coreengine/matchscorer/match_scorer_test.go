package matchscorer

import "testing"

func TestMatchSubstring(t *testing.T) {
	cases := []struct {
		name       string
		label      string
		transcript string
		want       bool
	}{
		{"exact", "Wheat", "Wheat", true},
		{"exact case varied", "Wheat", "wHEAT", true},
		{"embedded in sentence", "Wheat", "I am saying wheat now", true},
		{"prefix and suffix", "Corn", "xxCORNyy", true},
		{"surrounding whitespace", "  Wheat  ", "\twheat\n", true},
		{"absent word", "Wheat", "I am saying corn now", false},
	}
	for _, c := range cases {
		if got := Match(c.label, c.transcript); got != c.want {
			t.Errorf("%s: Match(%q, %q) = %v, want %v", c.name, c.label, c.transcript, got, c.want)
		}
	}
}

func TestMatchEmptyTranscript(t *testing.T) {
	for _, transcript := range []string{"", "   ", "\t\n"} {
		if Match("Wheat", transcript) {
			t.Errorf("Match(%q, %q) = true, want false", "Wheat", transcript)
		}
	}
}

func TestMatchMultiWordLabel(t *testing.T) {
	cases := []struct {
		name       string
		label      string
		transcript string
		want       bool
	}{
		{"all words in order", "Basmati Rice", "this is basmati rice for sure", true},
		{"words reordered", "Red Wheat", "wheat seen growing red", true},
		{"one word missing", "Red Wheat", "red rice", false},
		{"one word missing 2", "Basmati Rice", "this is just rice", false},
		{"case varied", "Basmati Rice", "BASMATI and some RICE", true},
	}
	for _, c := range cases {
		if got := Match(c.label, c.transcript); got != c.want {
			t.Errorf("%s: Match(%q, %q) = %v, want %v", c.name, c.label, c.transcript, got, c.want)
		}
	}
}
