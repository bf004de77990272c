package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/climaspiral/internal/config"
	"github.com/san-kum/climaspiral/internal/export"
	"github.com/san-kum/climaspiral/internal/log"
	"github.com/san-kum/climaspiral/internal/pipeline"
	"github.com/san-kum/climaspiral/internal/storage"
	"github.com/san-kum/climaspiral/internal/viz"
)

// prepare resolves the config and builds a ready pipeline.
func prepare(cmd *cobra.Command) (*config.Config, *pipeline.Pipeline, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	p := pipeline.New(cfg, log.Sugared())
	if err := p.Prepare(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

// progressPrinter redraws a one-line progress bar whenever the percentage
// changes.
type progressPrinter struct {
	w    io.Writer
	last int
}

func (p *progressPrinter) OnFrame(index, total int) {
	done := index + 1
	pct := done * 100 / total
	if pct == p.last && done != total {
		return
	}
	p.last = pct
	fmt.Fprintf(p.w, "\r%s %3d%% (%d/%d)", viz.ProgressBar(float64(done)/float64(total), 30), pct, done, total)
	if done == total {
		fmt.Fprintln(p.w)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	cfg, p, err := prepare(cmd)
	if err != nil {
		return err
	}
	p.AddObserver(&progressPrinter{w: os.Stderr, last: -1})

	res, err := p.Render(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s: %d frames, %.1f MB of PNG in %s\n",
		res.Output, res.Frames, float64(res.Bytes)/1e6, res.Elapsed.Round(time.Millisecond))

	if noRecord {
		return nil
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	rec := storage.NewRecord(cfg.Data.Path, p.Series())
	rec.Frames = res.Frames
	rec.Bytes = res.Bytes
	rec.Output = res.Output
	rec.ElapsedSeconds = res.Elapsed.Seconds()
	runID, err := st.Save(rec, cfg, p.Series(), p.Points())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runFrame(cmd *cobra.Command, args []string) error {
	final := args[0] == "final" || args[0] == "last"
	index := 0
	if !final {
		var err error
		index, err = strconv.Atoi(args[0])
		if err != nil || index < 0 {
			return fmt.Errorf("invalid frame index %q (want a number >= 0 or \"final\")", args[0])
		}
	}

	_, p, err := prepare(cmd)
	if err != nil {
		return err
	}
	r := p.Renderer()
	if final {
		index = r.Final()
	}
	if index >= r.FrameCount() {
		return fmt.Errorf("frame %d out of range [0, %d)", index, r.FrameCount())
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err := r.WritePNG(f, index); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote frame %d to %s\n", index, args[1])
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	cfg, p, err := prepare(cmd)
	if err != nil {
		return err
	}
	sp, err := export.NewSpiral(cfg, p.Mapping(), p.Points(), p.StartYear())
	if err != nil {
		return err
	}

	n := frameIndex
	if n < 0 || n > len(p.Points()) {
		n = len(p.Points())
	}
	if err := os.WriteFile(args[0], []byte(sp.SVG(n)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	cfg, p, err := prepare(cmd)
	if err != nil {
		return err
	}
	doc := export.NewDocument(cfg.Data.Path, p.Series(), p.Mapping(), p.Points(), p.StartYear())

	if jsonOut == "" {
		return export.WriteJSON(os.Stdout, doc)
	}
	f, err := os.Create(jsonOut)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteJSON(f, doc)
}
