// Package pipeline turns an anomaly series into an encoded spiral video.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/climaspiral/internal/colormap"
	"github.com/san-kum/climaspiral/internal/config"
	"github.com/san-kum/climaspiral/internal/encoder"
	"github.com/san-kum/climaspiral/internal/log"
	"github.com/san-kum/climaspiral/internal/render"
	"github.com/san-kum/climaspiral/internal/series"
	"github.com/san-kum/climaspiral/internal/spiral"
)

type Pipeline struct {
	cfg       *config.Config
	logger    *zap.SugaredLogger
	encode    EncodeFunc
	observers []Observer

	series    *series.Series
	mapping   spiral.Mapping
	points    []spiral.Point
	startYear int
	renderer  *render.Renderer
}

func New(cfg *config.Config, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: log.OrNop(logger),
		encode: runEncoder,
	}
}

func runEncoder(ctx context.Context, opts encoder.Options, logger *zap.SugaredLogger, fn func(w io.Writer) error) error {
	if err := encoder.Available(opts.Binary); err != nil {
		return err
	}
	return encoder.Run(ctx, opts, logger, fn)
}

func (p *Pipeline) AddObserver(o Observer) { p.observers = append(p.observers, o) }

// SetEncoder replaces the encoder runner.
func (p *Pipeline) SetEncoder(fn EncodeFunc) { p.encode = fn }

// Prepare validates the config, loads the series and generates the spiral.
func (p *Pipeline) Prepare(ctx context.Context) error {
	if err := p.cfg.Validate(colormap.Known); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cols := series.Columns{Time: p.cfg.Data.TimeColumn, Anomaly: p.cfg.Data.AnomalyColumn}
	s, err := series.Load(p.cfg.Data.Path, cols)
	if err != nil {
		return err
	}
	p.logger.Infow("series loaded",
		"path", p.cfg.Data.Path,
		"samples", s.Len(),
		"from", s.First().Time.Format("2006-01"),
		"to", s.Last().Time.Format("2006-01"))

	return p.Use(s)
}

// Use prepares the pipeline from an already loaded series.
func (p *Pipeline) Use(s *series.Series) error {
	sc := p.cfg.Spiral
	m, err := spiral.MappingFor(sc.Segments, sc.Radius, sc.Offset, sc.ScaleRange)
	if err != nil {
		return err
	}

	if !s.StartsInJanuary() {
		p.logger.Warnw("series does not start in January; month positions follow sample index",
			"first", s.First().Time.Format("2006-01"))
	}

	startYear := sc.StartYear
	if startYear == 0 {
		startYear = s.First().Time.Year()
	}

	points := spiral.Generate(s.Values(), m)
	r, err := render.New(p.cfg, m, points, startYear)
	if err != nil {
		return err
	}

	p.series = s
	p.mapping = m
	p.points = points
	p.startYear = startYear
	p.renderer = r
	return nil
}

func (p *Pipeline) Series() *series.Series     { return p.series }
func (p *Pipeline) Mapping() spiral.Mapping    { return p.mapping }
func (p *Pipeline) Points() []spiral.Point     { return p.points }
func (p *Pipeline) StartYear() int             { return p.startYear }
func (p *Pipeline) Renderer() *render.Renderer { return p.renderer }

func (p *Pipeline) workers() int {
	if n := p.cfg.Render.Workers; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Render encodes every frame, then repeats the final frame for the
// configured hold.
func (p *Pipeline) Render(ctx context.Context) (*Result, error) {
	if p.renderer == nil {
		return nil, ErrNotPrepared
	}

	r := p.renderer
	opts := encoder.OptionsFrom(p.cfg.Encoder, r.Width(), r.Height())
	frames := r.FrameCount()
	holds := p.cfg.HoldFrames()
	total := frames + holds
	workers := p.workers()

	p.logger.Infow("rendering",
		"frames", frames,
		"hold", holds,
		"workers", workers,
		"output", opts.Output)

	start := time.Now()
	res := &Result{Output: opts.Output}

	err := p.encode(ctx, opts, p.logger, func(w io.Writer) error {
		cw := &countingWriter{w: w}
		defer func() { res.Bytes = cw.n }()

		written := 0
		last, err := p.stream(ctx, cw, frames, workers, func() {
			written++
			p.notify(written-1, total)
		})
		res.Frames = written
		if err != nil {
			return err
		}
		for i := 0; i < holds; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := cw.Write(last); err != nil {
				return err
			}
			res.Frames++
			p.notify(res.Frames-1, total)
		}
		return nil
	})
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("render %s: %w", opts.Output, err)
	}

	p.logger.Infow("render complete",
		"frames", res.Frames,
		"bytes", res.Bytes,
		"elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}

func (p *Pipeline) notify(i, total int) {
	for _, o := range p.observers {
		o.OnFrame(i, total)
	}
}

// stream renders frames [0, n) on a bounded pool and writes them to w in
// index order. It returns the encoded last frame.
func (p *Pipeline) stream(ctx context.Context, w io.Writer, n, workers int, written func()) ([]byte, error) {
	g, gctx := errgroup.WithContext(ctx)

	slots := make([]chan []byte, n)
	for i := range slots {
		slots[i] = make(chan []byte, 1)
	}
	// window bounds the number of encoded frames held in memory.
	window := make(chan struct{}, 2*workers)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case window <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for k := 0; k < workers; k++ {
		g.Go(func() error {
			for i := range jobs {
				var buf bytes.Buffer
				if err := p.renderer.WritePNG(&buf, i); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				slots[i] <- buf.Bytes()
			}
			return nil
		})
	}

	var last []byte
	g.Go(func() error {
		for i := 0; i < n; i++ {
			if err := gctx.Err(); err != nil {
				return err
			}
			var b []byte
			select {
			case b = <-slots[i]:
			case <-gctx.Done():
				return gctx.Err()
			}
			if _, err := w.Write(b); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			<-window
			last = b
			written()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return last, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
