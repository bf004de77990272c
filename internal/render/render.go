package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/san-kum/climaspiral/internal/colormap"
	"github.com/san-kum/climaspiral/internal/config"
	"github.com/san-kum/climaspiral/internal/spiral"
)

// Text sizes in points for a 1008pt-tall canvas (14in at 72dpi). They
// scale with the image height.
const (
	referenceHeight = 1008.0
	monthPt         = 24.0
	yearPt          = 36.0
	thresholdPt     = 32.0
	titlePt         = 36.0
	ringWidthPt     = 3.0
	labelGap        = 0.4
	titleGap        = 1.4
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Renderer draws frames for one series.
type Renderer struct {
	width, height int
	extent        float64
	radius        float64
	lineWidth     float64
	title         string
	thresholds    []config.Threshold
	background    color.RGBA
	disc          color.RGBA

	mapping   spiral.Mapping
	points    []spiral.Point
	colors    []color.RGBA
	startYear int
	font      *truetype.Font
}

// New builds a renderer. points must come from spiral.Generate with the same
// mapping.
func New(cfg *config.Config, m spiral.Mapping, points []spiral.Point, startYear int) (*Renderer, error) {
	bg, err := parseHex(cfg.Render.Background)
	if err != nil {
		return nil, fmt.Errorf("render.background: %w", err)
	}
	disc, err := parseHex(cfg.Render.Disc)
	if err != nil {
		return nil, fmt.Errorf("render.disc: %w", err)
	}
	cm, err := colormap.Get(cfg.Render.Colormap)
	if err != nil {
		return nil, err
	}
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	// Colors follow the offset value over [0, scale_range].
	scaled := colormap.Scaled{Map: cm, Norm: colormap.Normalizer{Min: 0, Max: cfg.Spiral.ScaleRange}}
	colors := make([]color.RGBA, len(points))
	for i, p := range points {
		colors[i] = scaled.Color(p.Value + m.Offset)
	}

	return &Renderer{
		width:      cfg.Render.Width,
		height:     cfg.Render.Height,
		extent:     cfg.Render.Extent,
		radius:     cfg.Spiral.Radius,
		lineWidth:  cfg.Render.LineWidth,
		title:      cfg.Render.Title,
		thresholds: append([]config.Threshold(nil), cfg.Render.Thresholds...),
		background: bg,
		disc:       disc,
		mapping:    m,
		points:     points,
		colors:     colors,
		startYear:  startYear,
		font:       f,
	}, nil
}

func (r *Renderer) Width() int  { return r.width }
func (r *Renderer) Height() int { return r.height }

// FrameCount is the number of frames in the animation: one per revealed
// prefix, from empty to complete.
func (r *Renderer) FrameCount() int {
	return len(r.points) + 1
}

// Final returns the index of the frame showing the complete spiral.
func (r *Renderer) Final() int {
	return len(r.points)
}

// pt converts a size in reference points to pixels.
func (r *Renderer) pt(size float64) float64 {
	return size * float64(r.height) / referenceHeight
}

func (r *Renderer) scale() float64 {
	return math.Min(float64(r.width), float64(r.height)) / (2 * r.extent)
}

// toPixel maps world coordinates (y up) to image coordinates (y down).
func (r *Renderer) toPixel(x, y float64) (float64, float64) {
	s := r.scale()
	return float64(r.width)/2 + x*s, float64(r.height)/2 - y*s
}

// Frame draws frame n, revealing points [0, n).
func (r *Renderer) Frame(n int) image.Image {
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(r.background)
	dc.Clear()

	r.drawDisc(dc)
	r.drawThresholds(dc)
	r.drawTitle(dc)
	r.drawMonths(dc)

	if spiral.ShouldDraw(n) {
		r.drawPath(dc, n)
		r.drawYear(dc, n)
	}
	return dc.Image()
}

// WritePNG encodes frame n to w.
func (r *Renderer) WritePNG(w io.Writer, n int) error {
	return pngEncoder.Encode(w, r.Frame(n))
}

func (r *Renderer) drawDisc(dc *gg.Context) {
	cx, cy := r.toPixel(0, 0)
	dc.DrawCircle(cx, cy, r.radius*r.scale())
	dc.SetColor(r.disc)
	dc.Fill()
}

func (r *Renderer) drawThresholds(dc *gg.Context) {
	cx, cy := r.toPixel(0, 0)
	dc.SetLineWidth(r.pt(ringWidthPt))
	dc.SetFontFace(face(r.font, r.pt(thresholdPt)))
	for _, th := range r.thresholds {
		rad := r.mapping.Radius(th.Anomaly)
		if rad <= 0 {
			continue
		}
		dc.DrawCircle(cx, cy, rad*r.scale())
		dc.SetColor(ringColor)
		dc.Stroke()

		x, y := r.toPixel(0, rad)
		w, h := dc.MeasureString(th.Label)
		pad := r.pt(4)
		dc.DrawRectangle(x-w/2-pad, y-h/2-pad, w+2*pad, h+2*pad)
		dc.SetColor(labelBoxBg)
		dc.Fill()
		dc.SetColor(ringColor)
		dc.DrawStringAnchored(th.Label, x, y, 0.5, 0.35)
	}
}

func (r *Renderer) drawTitle(dc *gg.Context) {
	if r.title == "" {
		return
	}
	dc.SetFontFace(face(r.font, r.pt(titlePt)))
	dc.SetColor(textColor)
	x, y := r.toPixel(0, r.radius+titleGap)
	dc.DrawStringAnchored(r.titleText(), x, y, 0.5, 0.5)
}

func (r *Renderer) titleText() string {
	if len(r.points) == 0 {
		return r.title
	}
	last := spiral.Year(r.startYear, len(r.points))
	return fmt.Sprintf("%s (%d-%d)", r.title, r.startYear, last)
}

// drawMonths writes the rim labels, each rotated to read along the rim.
func (r *Renderer) drawMonths(dc *gg.Context) {
	dc.SetFontFace(face(r.font, r.pt(monthPt)))
	dc.SetColor(textColor)
	for k, entry := range r.mapping.Table {
		x, y := r.toPixel(entry.At(r.radius + labelGap))
		dc.Push()
		dc.RotateAbout(-(entry.Angle - math.Pi/2), x, y)
		dc.DrawStringAnchored(r.mapping.Order.Label(k), x, y, 0.5, 0.35)
		dc.Pop()
	}
}

func (r *Renderer) drawPath(dc *gg.Context, n int) {
	dc.SetLineWidth(r.pt(r.lineWidth))
	dc.SetLineCapRound()
	for i, seg := range spiral.Segments(r.points, n) {
		x0, y0 := r.toPixel(seg.X0, seg.Y0)
		x1, y1 := r.toPixel(seg.X1, seg.Y1)
		dc.DrawLine(x0, y0, x1, y1)
		dc.SetColor(r.colors[i])
		dc.Stroke()
	}
}

func (r *Renderer) drawYear(dc *gg.Context, n int) {
	dc.SetFontFace(face(r.font, r.pt(yearPt)))
	dc.SetColor(textColor)
	x, y := r.toPixel(0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("%d", spiral.Year(r.startYear, n)), x, y, 0.5, 0.35)
}
