package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/climaspiral/internal/config"
	"github.com/san-kum/climaspiral/internal/encoder"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func writeSeries(t *testing.T, startYear, startMonth, months int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Time,Anomaly (deg C),Lower confidence limit (2.5%),Upper confidence limit (97.5%)\n")
	y, m := startYear, startMonth
	for i := 0; i < months; i++ {
		fmt.Fprintf(&b, "%04d-%02d,%.3f,-1,1\n", y, m, -0.4+float64(i)*0.05)
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	path := filepath.Join(t.TempDir(), "series.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T, dataPath string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Data.Path = dataPath
	cfg.Render.Width = 96
	cfg.Render.Height = 96
	cfg.Render.Workers = 4
	cfg.Encoder.Output = filepath.Join(t.TempDir(), "out.mp4")
	return cfg
}

// captureEncoder records the stream written to the encoder.
type captureEncoder struct {
	buf  bytes.Buffer
	opts encoder.Options
}

func (c *captureEncoder) run(ctx context.Context, opts encoder.Options, _ *zap.SugaredLogger, fn func(w io.Writer) error) error {
	c.opts = opts
	return fn(&c.buf)
}

func prepared(t *testing.T, cfg *config.Config) (*Pipeline, *captureEncoder) {
	t.Helper()
	p := New(cfg, nil)
	enc := &captureEncoder{}
	p.SetEncoder(enc.run)
	if err := p.Prepare(context.Background()); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	return p, enc
}

func TestPrepare(t *testing.T) {
	cfg := testConfig(t, writeSeries(t, 1850, 1, 30))
	p, _ := prepared(t, cfg)

	if got := len(p.Points()); got != 30 {
		t.Errorf("expected 30 points, got %d", got)
	}
	if p.StartYear() != 1850 {
		t.Errorf("expected start year from data, got %d", p.StartYear())
	}
	if p.Renderer().FrameCount() != 31 {
		t.Errorf("expected 31 frames, got %d", p.Renderer().FrameCount())
	}
}

func TestPrepareStartYearOverride(t *testing.T) {
	cfg := testConfig(t, writeSeries(t, 1850, 1, 12))
	cfg.Spiral.StartYear = 1900
	p, _ := prepared(t, cfg)
	if p.StartYear() != 1900 {
		t.Errorf("expected configured start year, got %d", p.StartYear())
	}
}

func TestPrepareWarnsWhenNotJanuary(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := testConfig(t, writeSeries(t, 1850, 3, 12))
	p := New(cfg, zap.New(core).Sugar())
	if err := p.Prepare(context.Background()); err != nil {
		t.Fatal(err)
	}
	if logs.FilterMessageSnippet("does not start in January").Len() != 1 {
		t.Errorf("expected a warning, got %v", logs.All())
	}
}

func TestPrepareInvalidConfig(t *testing.T) {
	cfg := testConfig(t, writeSeries(t, 1850, 1, 12))
	cfg.Spiral.Segments = 0
	err := New(cfg, nil).Prepare(context.Background())
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestPrepareMissingData(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.csv"))
	if err := New(cfg, nil).Prepare(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRenderBeforePrepare(t *testing.T) {
	cfg := testConfig(t, "unused.csv")
	if _, err := New(cfg, nil).Render(context.Background()); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("expected ErrNotPrepared, got %v", err)
	}
}

func TestRenderWritesFramesInOrder(t *testing.T) {
	cfg := testConfig(t, writeSeries(t, 1850, 1, 20))
	p, enc := prepared(t, cfg)

	res, err := p.Render(context.Background())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var want bytes.Buffer
	for i := 0; i < p.Renderer().FrameCount(); i++ {
		if err := p.Renderer().WritePNG(&want, i); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(enc.buf.Bytes(), want.Bytes()) {
		t.Error("parallel stream differs from sequential rendering")
	}
	if res.Frames != 21 {
		t.Errorf("expected 21 frames, got %d", res.Frames)
	}
	if res.Bytes != int64(want.Len()) {
		t.Errorf("expected %d bytes, got %d", want.Len(), res.Bytes)
	}
	if res.Output != cfg.Encoder.Output || enc.opts.Output != cfg.Encoder.Output {
		t.Errorf("unexpected output %q / %q", res.Output, enc.opts.Output)
	}
	if enc.opts.Width != 96 || enc.opts.Height != 96 {
		t.Errorf("unexpected encoder size %dx%d", enc.opts.Width, enc.opts.Height)
	}
}

func TestRenderHoldsFinalFrame(t *testing.T) {
	cfg := testConfig(t, writeSeries(t, 1850, 1, 6))
	cfg.Encoder.FrameRate = 2
	cfg.Encoder.HoldSeconds = 1.5
	p, enc := prepared(t, cfg)

	var (
		mu   sync.Mutex
		seen []int
	)
	p.AddObserver(ObserverFunc(func(i, total int) {
		mu.Lock()
		defer mu.Unlock()
		if total != 10 {
			t.Errorf("expected total 10, got %d", total)
		}
		seen = append(seen, i)
	}))

	res, err := p.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Frames != 10 {
		t.Errorf("expected 7 frames plus 3 held, got %d", res.Frames)
	}
	if got := bytes.Count(enc.buf.Bytes(), pngSignature); got != 10 {
		t.Errorf("expected 10 PNGs in stream, got %d", got)
	}
	for i, idx := range seen {
		if idx != i {
			t.Fatalf("observer saw %v, want ascending indices", seen)
		}
	}

	var final bytes.Buffer
	_ = p.Renderer().WritePNG(&final, p.Renderer().Final())
	if !bytes.HasSuffix(enc.buf.Bytes(), bytes.Repeat(final.Bytes(), 4)) {
		t.Error("expected the stream to end with the final frame repeated")
	}
}

type failingWriter struct{ after int }

func (f *failingWriter) Write(b []byte) (int, error) {
	if f.after <= 0 {
		return 0, io.ErrClosedPipe
	}
	f.after--
	return len(b), nil
}

func TestRenderStopsOnWriteError(t *testing.T) {
	cfg := testConfig(t, writeSeries(t, 1850, 1, 24))
	p, _ := prepared(t, cfg)
	p.SetEncoder(func(ctx context.Context, _ encoder.Options, _ *zap.SugaredLogger, fn func(io.Writer) error) error {
		return fn(&failingWriter{after: 3})
	})

	res, err := p.Render(context.Background())
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected write error, got %v", err)
	}
	if res.Frames != 3 {
		t.Errorf("expected 3 frames before failure, got %d", res.Frames)
	}
}

func TestRenderReportsEncoderError(t *testing.T) {
	cfg := testConfig(t, writeSeries(t, 1850, 1, 6))
	p, _ := prepared(t, cfg)
	p.SetEncoder(func(ctx context.Context, _ encoder.Options, _ *zap.SugaredLogger, fn func(io.Writer) error) error {
		if err := fn(io.Discard); err != nil {
			return err
		}
		return fmt.Errorf("%w: exit status 1", encoder.ErrEncoderFailed)
	})

	if _, err := p.Render(context.Background()); !errors.Is(err, encoder.ErrEncoderFailed) {
		t.Errorf("expected ErrEncoderFailed, got %v", err)
	}
}

func TestRenderCancelled(t *testing.T) {
	cfg := testConfig(t, writeSeries(t, 1850, 1, 24))
	p, _ := prepared(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Render(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRenderCancelledMidStream(t *testing.T) {
	cfg := testConfig(t, writeSeries(t, 1850, 1, 60))
	cfg.Render.Workers = 2
	p, _ := prepared(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.AddObserver(ObserverFunc(func(i, total int) {
		if i == 5 {
			cancel()
		}
	}))

	res, err := p.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Frames >= 61 {
		t.Errorf("expected render to stop early, wrote %d frames", res.Frames)
	}
}
