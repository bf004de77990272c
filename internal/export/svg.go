package export

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/san-kum/climaspiral/internal/colormap"
	"github.com/san-kum/climaspiral/internal/config"
	"github.com/san-kum/climaspiral/internal/spiral"
	"github.com/san-kum/climaspiral/internal/viz"
)

// Spiral holds everything needed to draw the spiral as vector graphics.
type Spiral struct {
	Width, Height int
	Extent        float64
	Radius        float64
	LineWidth     float64
	Background    string
	Disc          string
	Title         string
	StartYear     int
	Thresholds    []config.Threshold
	Mapping       spiral.Mapping
	Points        []spiral.Point
	Colors        colormap.Scaled
}

// NewSpiral takes sizes and colors from cfg.
func NewSpiral(cfg *config.Config, m spiral.Mapping, points []spiral.Point, startYear int) (*Spiral, error) {
	cm, err := colormap.Get(cfg.Render.Colormap)
	if err != nil {
		return nil, err
	}
	return &Spiral{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Extent:     cfg.Render.Extent,
		Radius:     cfg.Spiral.Radius,
		LineWidth:  cfg.Render.LineWidth,
		Background: cfg.Render.Background,
		Disc:       cfg.Render.Disc,
		Title:      cfg.Render.Title,
		StartYear:  startYear,
		Thresholds: cfg.Render.Thresholds,
		Mapping:    m,
		Points:     points,
		Colors:     colormap.Scaled{Map: cm, Norm: colormap.Normalizer{Min: 0, Max: cfg.Spiral.ScaleRange}},
	}, nil
}

func (s *Spiral) scale() float64 {
	return math.Min(float64(s.Width), float64(s.Height)) / (2 * s.Extent)
}

func (s *Spiral) toPixel(x, y float64) (float64, float64) {
	k := s.scale()
	return float64(s.Width)/2 + x*k, float64(s.Height)/2 - y*k
}

// pt scales a size given for a 1008pt-tall canvas.
func (s *Spiral) pt(size float64) float64 {
	return size * float64(s.Height) / 1008
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// SVG draws the spiral with the first n points revealed.
func (s *Spiral) SVG(n int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, html.EscapeString(s.Background)))

	cx, cy := s.toPixel(0, 0)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, s.Radius*s.scale(), html.EscapeString(s.Disc)))

	for _, th := range s.Thresholds {
		rad := s.Mapping.Radius(th.Anomaly)
		if rad <= 0 {
			continue
		}
		lx, ly := s.toPixel(0, rad)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#ff0000" stroke-width="%.1f"/>
<text x="%.1f" y="%.1f" fill="#ff0000" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>
`, cx, cy, rad*s.scale(), s.pt(3), lx, ly, s.pt(32), html.EscapeString(th.Label)))
	}

	if s.Title != "" {
		tx, ty := s.toPixel(0, s.Radius+1.4)
		title := s.Title
		if len(s.Points) > 0 {
			title = fmt.Sprintf("%s (%d-%d)", s.Title, s.StartYear, spiral.Year(s.StartYear, len(s.Points)))
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#ffffff" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>
`, tx, ty, s.pt(36), html.EscapeString(title)))
	}

	sb.WriteString(fmt.Sprintf(`<g fill="#ffffff" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">
`, s.pt(24)))
	for k, entry := range s.Mapping.Table {
		mx, my := s.toPixel(entry.At(s.Radius + 0.4))
		rot := -(entry.Degrees() - 90)
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" transform="rotate(%.1f %.1f %.1f)">%s</text>
`, mx, my, rot, mx, my, html.EscapeString(s.Mapping.Order.Label(k))))
	}
	sb.WriteString("</g>\n")

	if spiral.ShouldDraw(n) {
		sb.WriteString(fmt.Sprintf(`<g fill="none" stroke-width="%.1f" stroke-linecap="round">
`, s.pt(s.LineWidth)))
		for _, seg := range spiral.Segments(s.Points, n) {
			x0, y0 := s.toPixel(seg.X0, seg.Y0)
			x1, y1 := s.toPixel(seg.X1, seg.Y1)
			c := s.Colors.Color(seg.Value + s.Mapping.Offset)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, x0, y0, x1, y1, hexColor(c)))
		}
		sb.WriteString("</g>\n")
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#ffffff" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%d</text>
`, cx, cy, s.pt(36), spiral.Year(s.StartYear, n)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSVG writes the complete spiral.
func (s *Spiral) WriteSVG(w io.Writer) error {
	_, err := io.WriteString(w, s.SVG(len(s.Points)))
	return err
}

// CanvasToSVG converts a braille canvas to SVG, one dot per set sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64, background, foreground string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, html.EscapeString(background), html.EscapeString(foreground)))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := float64(col*2+dx)*scale + scale/2
					cy := float64(row*4+dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
