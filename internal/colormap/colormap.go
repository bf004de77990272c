// Package colormap maps normalized values to colors.
package colormap

import (
	"fmt"
	"image/color"
	"sort"
)

// Colormap maps t in [0, 1] to a color. Values outside are clamped.
type Colormap interface {
	Name() string
	At(t float64) color.RGBA
}

// stop is one breakpoint of a piecewise-linear channel.
type stop struct {
	x, y float64
}

type channel []stop

func (c channel) eval(t float64) float64 {
	if t <= c[0].x {
		return c[0].y
	}
	for i := 1; i < len(c); i++ {
		if t <= c[i].x {
			a, b := c[i-1], c[i]
			return a.y + (b.y-a.y)*(t-a.x)/(b.x-a.x)
		}
	}
	return c[len(c)-1].y
}

// segmented follows matplotlib's LinearSegmentedColormap data layout.
type segmented struct {
	name    string
	r, g, b channel
}

func (s *segmented) Name() string { return s.name }

func (s *segmented) At(t float64) color.RGBA {
	t = clamp(t)
	return color.RGBA{
		R: to8(s.r.eval(t)),
		G: to8(s.g.eval(t)),
		B: to8(s.b.eval(t)),
		A: 0xff,
	}
}

func to8(v float64) uint8 {
	return uint8(clamp(v)*255 + 0.5)
}

func clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

var registry = map[string]func() Colormap{
	"jet": func() Colormap {
		return &segmented{
			name: "jet",
			r:    channel{{0, 0}, {0.35, 0}, {0.66, 1}, {0.89, 1}, {1, 0.5}},
			g:    channel{{0, 0}, {0.125, 0}, {0.375, 1}, {0.64, 1}, {0.91, 0}, {1, 0}},
			b:    channel{{0, 0.5}, {0.11, 1}, {0.34, 1}, {0.65, 0}, {1, 0}},
		}
	},
	"hot": func() Colormap {
		return &segmented{
			name: "hot",
			r:    channel{{0, 0.0416}, {0.365079, 1}, {1, 1}},
			g:    channel{{0, 0}, {0.365079, 0}, {0.746032, 1}, {1, 1}},
			b:    channel{{0, 0}, {0.746032, 0}, {1, 1}},
		}
	},
	"coolwarm": func() Colormap {
		return &segmented{
			name: "coolwarm",
			r:    channel{{0, 0.2298}, {0.5, 0.8654}, {1, 0.7057}},
			g:    channel{{0, 0.2987}, {0.5, 0.8654}, {1, 0.0156}},
			b:    channel{{0, 0.7537}, {0.5, 0.8654}, {1, 0.1502}},
		}
	},
	"gray": func() Colormap {
		return &segmented{
			name: "gray",
			r:    channel{{0, 0}, {1, 1}},
			g:    channel{{0, 0}, {1, 1}},
			b:    channel{{0, 0}, {1, 1}},
		}
	},
}

// Get returns the named colormap.
func Get(name string) (Colormap, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown colormap: %s", name)
	}
	return fn(), nil
}

// Known reports whether name is registered.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalizer maps [Min, Max] linearly onto [0, 1].
type Normalizer struct {
	Min, Max float64
}

func (n Normalizer) Normalize(v float64) float64 {
	if n.Max == n.Min {
		return 0
	}
	return (v - n.Min) / (n.Max - n.Min)
}

// Scaled pairs a colormap with a normalizer.
type Scaled struct {
	Map  Colormap
	Norm Normalizer
}

func (s Scaled) Color(v float64) color.RGBA {
	return s.Map.At(s.Norm.Normalize(v))
}
