package colormap

import (
	"image/color"
	"testing"
)

func TestJetEndpoints(t *testing.T) {
	jet, err := Get("jet")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		t    float64
		want color.RGBA
	}{
		{0, color.RGBA{0, 0, 128, 255}},
		{1, color.RGBA{128, 0, 0, 255}},
		{0.5, color.RGBA{R: 124, G: 255, B: 122, A: 255}},
	}
	for _, tt := range tests {
		got := jet.At(tt.t)
		if diff(got.R, tt.want.R) > 1 || diff(got.G, tt.want.G) > 1 || diff(got.B, tt.want.B) > 1 {
			t.Errorf("jet(%g) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	jet, _ := Get("jet")
	if jet.At(-3) != jet.At(0) {
		t.Error("values below 0 should clamp")
	}
	if jet.At(7) != jet.At(1) {
		t.Error("values above 1 should clamp")
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		cm, err := Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if cm.Name() != name {
			t.Errorf("expected %s, got %s", name, cm.Name())
		}
		if !Known(name) {
			t.Errorf("%s should be known", name)
		}
	}
	if _, err := Get("rainbow"); err == nil {
		t.Error("expected error for unknown colormap")
	}
	if Known("rainbow") {
		t.Error("rainbow should not be known")
	}
}

func TestScaled(t *testing.T) {
	gray, _ := Get("gray")
	s := Scaled{Map: gray, Norm: Normalizer{Min: 0, Max: 3.6}}

	if c := s.Color(0); c.R != 0 {
		t.Errorf("expected black at min, got %v", c)
	}
	if c := s.Color(3.6); c.R != 255 {
		t.Errorf("expected white at max, got %v", c)
	}
	if c := s.Color(1.8); diff(c.R, 128) > 1 {
		t.Errorf("expected mid gray, got %v", c)
	}
	if (Normalizer{Min: 1, Max: 1}).Normalize(5) != 0 {
		t.Error("degenerate range should normalize to 0")
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
