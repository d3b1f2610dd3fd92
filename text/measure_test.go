package text

import (
	"testing"

	"github.com/emberui/ember/geom"
)

func TestFixedMeasure(t *testing.T) {
	m := FixedMeasurer{}

	tests := []struct {
		name  string
		in    string
		size  float32
		wantW float32
		wantH float32
	}{
		{"empty", "", 16, 0, 0},
		{"single line", "abcd", 16, 4 * 8, 1.2 * 16},
		{"two lines", "ab\nc", 16, 2 * 8, 2 * 1.2 * 16},
		{"longest line wins", "a\nabc", 10, 3 * 5, 2 * 12},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := m.Measure(tc.in, tc.size)
			if w != tc.wantW || h != tc.wantH {
				t.Fatalf("Measure(%q) = %g, %g want %g, %g", tc.in, w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestFixedLayoutSkipsWhitespace(t *testing.T) {
	m := FixedMeasurer{}
	quads := m.Layout(nil, "a b", 16, geom.V(0, 0))
	if len(quads) != 2 {
		t.Fatalf("quads = %d, want 2", len(quads))
	}
	// second glyph sits two advances in
	if quads[1].Rect.X <= quads[0].Rect.X+8 {
		t.Fatalf("glyphs not advanced: %+v", quads)
	}
}

func TestFixedLayoutWraps(t *testing.T) {
	m := FixedMeasurer{}
	quads := m.Layout(nil, "a\nb", 16, geom.V(5, 5))
	if len(quads) != 2 {
		t.Fatalf("quads = %d", len(quads))
	}
	if quads[1].Rect.Y <= quads[0].Rect.Y {
		t.Fatal("newline did not move the baseline")
	}
	if quads[1].Rect.X != quads[0].Rect.X {
		t.Fatal("newline did not reset x")
	}
}

func TestCustomAdvance(t *testing.T) {
	m := FixedMeasurer{Advance: 1, Gap: 2}
	w, h := m.Measure("ab", 10)
	if w != 20 || h != 20 {
		t.Fatalf("custom metrics = %g, %g", w, h)
	}
}
