package css

import (
	"testing"
)

func TestParseLinearGradient(t *testing.T) {
	grad, ok := ParseLinearGradient("linear-gradient(#667eea, #764ba2)")
	if !ok {
		t.Fatal("expected gradient to parse")
	}
	if grad.Direction != "to bottom" {
		t.Errorf("expected default direction 'to bottom', got %q", grad.Direction)
	}
	if len(grad.ColorStops) != 2 {
		t.Fatalf("expected 2 color stops, got %d", len(grad.ColorStops))
	}
	if grad.ColorStops[0].Color != (Color{102, 126, 234, 255}) {
		t.Errorf("unexpected first stop color %v", grad.ColorStops[0].Color)
	}
	if grad.ColorStops[0].Unit != StopUnset {
		t.Errorf("expected unset first offset, got unit %v", grad.ColorStops[0].Unit)
	}
}

func TestParseLinearGradient_StopsWithPositions(t *testing.T) {
	grad, ok := ParseLinearGradient("linear-gradient(to top, rgba(0, 0, 0, 0.5) 0, blue 25%, red 300px)")
	if !ok {
		t.Fatal("expected gradient to parse")
	}
	if grad.Direction != "to top" {
		t.Errorf("expected 'to top', got %q", grad.Direction)
	}
	want := []ColorStop{
		{Color{0, 0, 0, 128}, 0, StopFraction},
		{Color{0, 0, 255, 255}, 0.25, StopFraction},
		{Color{255, 0, 0, 255}, 300, StopPixels},
	}
	if len(grad.ColorStops) != len(want) {
		t.Fatalf("expected %d stops, got %d", len(want), len(grad.ColorStops))
	}
	for i, w := range want {
		if grad.ColorStops[i] != w {
			t.Errorf("stop %d = %+v, want %+v", i, grad.ColorStops[i], w)
		}
	}
}

func TestParseLinearGradient_Invalid(t *testing.T) {
	tests := []string{
		"",
		"red",
		"linear-gradient(red)",
		"linear-gradient(to right, red, blue)",
		"linear-gradient(45deg, red, blue)",
		"linear-gradient(red, notacolor)",
		"linear-gradient(red 10em, blue)",
		"radial-gradient(red, blue)",
	}
	for _, value := range tests {
		if _, ok := ParseLinearGradient(value); ok {
			t.Errorf("expected %q to be rejected", value)
		}
	}
}

func TestGradientResolve(t *testing.T) {
	grad, _ := ParseLinearGradient("linear-gradient(red, green, blue 200px, white)")
	r := grad.Resolve(400)

	wantOffsets := []float64{0, 0.25, 0.5, 1}
	for i, w := range wantOffsets {
		if r.ColorStops[i].Offset != w || r.ColorStops[i].Unit != StopFraction {
			t.Errorf("stop %d: offset=%v unit=%v, want %v", i, r.ColorStops[i].Offset, r.ColorStops[i].Unit, w)
		}
	}
	// Resolve must not touch the parsed gradient.
	if grad.ColorStops[2].Unit != StopPixels {
		t.Error("expected original stop to keep its pixel unit")
	}
}

func TestGradientAt(t *testing.T) {
	grad, _ := ParseLinearGradient("linear-gradient(#667eea, #764ba2)")
	r := grad.Resolve(768)

	if got := r.At(0); got != (Color{102, 126, 234, 255}) {
		t.Errorf("At(0) = %v", got)
	}
	// 102 + 0.5*16 = 110, 126 + 0.5*(-51) = 100.5, 234 + 0.5*(-72) = 198
	if got := r.At(0.5); got != (Color{110, 100, 198, 255}) {
		t.Errorf("At(0.5) = %v", got)
	}
	if got := r.At(1); got != (Color{118, 75, 162, 255}) {
		t.Errorf("At(1) = %v", got)
	}
}

func TestGradientAt_ToTop(t *testing.T) {
	grad, _ := ParseLinearGradient("linear-gradient(to top, black, white)")
	r := grad.Resolve(100)
	if got := r.At(0); got != (Color{255, 255, 255, 255}) {
		t.Errorf("At(0) = %v, want white", got)
	}
	if got := r.At(1); got != (Color{0, 0, 0, 255}) {
		t.Errorf("At(1) = %v, want black", got)
	}
}
