package main

import (
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/climaspiral/internal/config"
)

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.FirstMonth + " – " + run.LastMonth,
			strconv.Itoa(run.Frames),
			fmt.Sprintf("%.1fs", run.ElapsedSeconds),
			run.Output,
		})
	}
	fmt.Println(renderTable(
		[]string{"ID", "Time", "Series", "Frames", "Elapsed", "Output"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	rec, err := st.Load(args[0])
	if err != nil {
		return err
	}
	points, err := st.LoadPoints(rec.ID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", rec.ID)
	fmt.Printf("time: %s\n", rec.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("series: %s (%d samples, %s – %s)\n", rec.SeriesPath, rec.Samples, rec.FirstMonth, rec.LastMonth)
	fmt.Printf("output: %s (%d frames, %.1fs)\n", rec.Output, rec.Frames, rec.ElapsedSeconds)
	fmt.Printf("trend: %+.3f °C/decade\n\n", rec.Summary.TrendPerDecade)

	if runCfg, err := st.LoadConfig(rec.ID); err == nil {
		fmt.Println(renderTable(
			[]string{"Setting", "Value"},
			configRows(runCfg),
			[]columnAlignment{alignLeft, alignRight},
		))
		fmt.Println()
	}

	if len(points) > 1 {
		values := make([]float64, len(points))
		for i, p := range points {
			values[i] = p.Value
		}
		fmt.Println(asciigraph.Plot(values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("anomaly (°C)"),
		))
	}
	return nil
}

func configRows(cfg *config.Config) [][]string {
	return [][]string{
		{"size", fmt.Sprintf("%dx%d", cfg.Render.Width, cfg.Render.Height)},
		{"colormap", cfg.Render.Colormap},
		{"frame rate", strconv.Itoa(cfg.Encoder.FrameRate)},
		{"codec", cfg.Encoder.Codec},
		{"bitrate", cfg.Encoder.Bitrate},
		{"hold", fmt.Sprintf("%gs", cfg.Encoder.HoldSeconds)},
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	rows := make([][]string, 0, len(config.Presets))
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%dx%d", cfg.Render.Width, cfg.Render.Height),
			strconv.Itoa(cfg.Encoder.FrameRate),
			cfg.Encoder.Bitrate,
			fmt.Sprintf("%gs", cfg.Encoder.HoldSeconds),
			cfg.Encoder.Output,
		})
	}
	fmt.Println(renderTable(
		[]string{"Preset", "Size", "FPS", "Bitrate", "Hold", "Output"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
	return nil
}
