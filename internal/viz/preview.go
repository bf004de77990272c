package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/climaspiral/internal/spiral"
)

const (
	width        = 60
	height       = 30
	chartHistory = 120
	maxSpeed     = 48
	tickRate     = time.Second / 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Source is the spiral shown by the preview.
type Source struct {
	Title     string
	Points    []spiral.Point
	Mapping   spiral.Mapping
	Radius    float64
	StartYear int
	// Rings are raw anomalies drawn as reference circles.
	Rings []float64
}

// Model is the preview state.
type Model struct {
	src       Source
	values    []float64
	canvas    *Canvas
	proj      Projection
	revealed  int
	speed     int
	running   bool
	theme     Theme
	showHelp  bool
	recording bool
	frames    []*image.Paletted
	gifPath   string
	status    string

	// Snapshot, when set, receives the canvas on S.
	Snapshot func(*Canvas) (string, error)
}

func NewModel(src Source) Model {
	values := make([]float64, len(src.Points))
	for i, p := range src.Points {
		values[i] = p.Value
	}
	c := NewCanvas(width, height)
	return Model{
		src:     src,
		values:  values,
		canvas:  c,
		proj:    Fit(c, src.Radius+0.5),
		speed:   1,
		running: true,
		theme:   Themes[0],
		gifPath: "climate_spiral.gif",
	}
}

// WithTheme returns m using the named theme.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

// WithGIFPath sets where recordings are written.
func (m Model) WithGIFPath(path string) Model {
	m.gifPath = path
	return m
}

func (m Model) Revealed() int { return m.revealed }
func (m Model) Running() bool { return m.running }
func (m Model) Speed() int    { return m.speed }
func (m Model) Theme() Theme  { return m.theme }

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the reveal.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.revealed = 0
			m.running = true
		case "[":
			m.scrub(-spiral.MonthsPerYear)
		case "]":
			m.scrub(spiral.MonthsPerYear)
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "t":
			m.theme = NextTheme(m.theme)
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = m.frames[:0]
				m.status = "recording"
			}
		case "s":
			m.snapshot()
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil
	case TickMsg:
		if m.running {
			m.advance(m.speed)
		}
		if m.recording {
			m.draw()
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance(n int) {
	m.revealed += n
	if m.revealed >= len(m.src.Points) {
		m.revealed = len(m.src.Points)
		m.running = false
	}
}

func (m *Model) scrub(delta int) {
	m.running = false
	m.revealed += delta
	if m.revealed < 0 {
		m.revealed = 0
	}
	if m.revealed > len(m.src.Points) {
		m.revealed = len(m.src.Points)
	}
}

// draw renders the revealed spiral onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	cx, cy := m.proj.Point(0, 0)
	m.canvas.DrawCircle(cx, cy, m.proj.Length(m.src.Radius))
	for _, ring := range m.src.Rings {
		if r := m.src.Mapping.Radius(ring); r > 0 {
			m.canvas.DrawCircle(cx, cy, m.proj.Length(r))
		}
	}
	for _, seg := range spiral.Segments(m.src.Points, m.revealed) {
		x0, y0 := m.proj.Point(seg.X0, seg.Y0)
		x1, y1 := m.proj.Point(seg.X1, seg.Y1)
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Foreground(m.theme.Spiral).Render(m.canvas.String())

	header := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).MarginBottom(1)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.src.Title)) + "\n")

	status := "RUNNING"
	switch {
	case m.revealed >= len(m.src.Points):
		status = "COMPLETE"
	case !m.running:
		status = "PAUSED"
	}
	if m.recording {
		status += " " + lipgloss.NewStyle().Foreground(m.theme.Recording).Bold(true).Render("● REC")
	}
	s.WriteString(status + "\n\n")

	shown := m.values[:m.revealed]
	if len(shown) > chartHistory {
		shown = shown[len(shown)-chartHistory:]
	}
	if len(shown) > 1 {
		chart := asciigraph.Plot(shown, asciigraph.Height(6), asciigraph.Width(36), asciigraph.Precision(2), asciigraph.Caption("Anomaly (°C)"))
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Spiral).Padding(1, 0).Render(chart) + "\n\n")
	}

	year := spiral.Year(m.src.StartYear, m.revealed)
	s.WriteString(labelStyle.Render("Year") + value.Render(fmt.Sprintf("%d", year)) + "\n")
	if m.revealed > 0 {
		latest := m.values[m.revealed-1]
		s.WriteString(labelStyle.Render("Anomaly") + value.Render(fmt.Sprintf("%+.2f °C", latest)) + "\n")
	}
	s.WriteString(labelStyle.Render("Speed") + value.Render(fmt.Sprintf("%d mo/tick", m.speed)) + "\n")
	s.WriteString(labelStyle.Render("Theme") + value.Render(m.theme.Name) + "\n")

	progress := 0.0
	if n := len(m.src.Points); n > 0 {
		progress = float64(m.revealed) / float64(n)
	}
	s.WriteString("\n" + ProgressBar(progress, 30) + fmt.Sprintf(" %3.0f%%\n", progress*100))
	s.WriteString(SparklineChart(m.values[:m.revealed], 30) + "\n")

	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\nT:Theme  G:Record S:Snapshot\n[ ]:Year ±:Speed ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart                  ║
║  Q        - Quit                     ║
║  [        - Back one year            ║
║  ]        - Forward one year         ║
║  + / -    - Faster / slower          ║
║  G        - Toggle GIF recording     ║
║  S        - Save SVG snapshot        ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m *Model) snapshot() {
	if m.Snapshot == nil {
		return
	}
	m.draw()
	path, err := m.Snapshot(m.canvas)
	if err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

// captureFrame rasterizes the canvas, one 4x4 block per sub-pixel.
func (m *Model) captureFrame() {
	const dot = 4
	sw, sh := m.canvas.SubSize()
	img := image.NewPaletted(image.Rect(0, 0, sw*dot, sh*dot), color.Palette{color.Black, color.White})
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			if !m.canvas.IsSet(x, y) {
				continue
			}
			for py := 0; py < dot; py++ {
				for px := 0; px < dot; px++ {
					img.SetColorIndex(x*dot+px, y*dot+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) stopRecording() {
	m.recording = false
	if err := m.saveGIF(); err != nil {
		m.status = "recording failed: " + err.Error()
		return
	}
	if len(m.frames) > 0 {
		m.status = fmt.Sprintf("saved %s (%d frames)", m.gifPath, len(m.frames))
	}
}

func (m *Model) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 3)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
