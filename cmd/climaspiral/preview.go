package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/climaspiral/internal/export"
	"github.com/san-kum/climaspiral/internal/viz"
)

func vizThemes() []string { return viz.ThemeNames() }

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, p, err := prepare(cmd)
	if err != nil {
		return err
	}

	rings := make([]float64, len(cfg.Render.Thresholds))
	for i, th := range cfg.Render.Thresholds {
		rings[i] = th.Anomaly
	}

	m := viz.NewModel(viz.Source{
		Title:     cfg.Render.Title,
		Points:    p.Points(),
		Mapping:   p.Mapping(),
		Radius:    cfg.Spiral.Radius,
		StartYear: p.StartYear(),
		Rings:     rings,
	}).WithTheme(theme)

	snapshots := 0
	m.Snapshot = func(c *viz.Canvas) (string, error) {
		snapshots++
		path := fmt.Sprintf("climate_spiral_snapshot_%d.svg", snapshots)
		t := viz.GetTheme(theme)
		svg := export.CanvasToSVG(c, 4, "#0a0a0a", string(t.Spiral))
		return path, os.WriteFile(path, []byte(svg), 0644)
	}

	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}
