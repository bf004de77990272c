package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/climaspiral/internal/analysis"
	"github.com/san-kum/climaspiral/internal/series"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := series.Load(cfg.Data.Path, series.Columns{Time: cfg.Data.TimeColumn, Anomaly: cfg.Data.AnomalyColumn})
	if err != nil {
		return err
	}

	sum := analysis.Summarize(s)
	fmt.Printf("series: %s\n", cfg.Data.Path)
	fmt.Printf("samples: %d (%s – %s)\n\n", sum.Count, sum.Start.Format("2006-01"), sum.End.Format("2006-01"))

	rows := [][]string{
		{"mean", fmt.Sprintf("%+.3f °C", sum.Mean)},
		{"std dev", fmt.Sprintf("%.3f °C", sum.StdDev)},
		{"coldest month", fmt.Sprintf("%+.3f °C (%s)", sum.Min, sum.MinAt.Format("2006-01"))},
		{"warmest month", fmt.Sprintf("%+.3f °C (%s)", sum.Max, sum.MaxAt.Format("2006-01"))},
		{"trend", fmt.Sprintf("%+.3f °C/decade (r² %.2f)", sum.TrendPerDecade, sum.RSquared)},
	}
	if acc, err := analysis.Acceleration(s); err == nil {
		rows = append(rows, []string{"acceleration", fmt.Sprintf("%+.4f °C/decade²", acc)})
	}
	if bins, err := analysis.Spectrum(s.Values()); err == nil {
		if dom, ok := analysis.Dominant(bins); ok {
			rows = append(rows, []string{"dominant period", fmt.Sprintf("%.1f years", dom.Period())})
		}
	}
	fmt.Println(renderTable([]string{"Statistic", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
	fmt.Println()

	years := analysis.AnnualMeans(s)
	if len(years) > 1 {
		fmt.Println(asciigraph.Plot(analysis.Means(years),
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Precision(2),
			asciigraph.Caption(fmt.Sprintf("annual mean anomaly (°C), %d – %d", years[0].Year, years[len(years)-1].Year)),
		))
		fmt.Println()
	}

	clim := analysis.Climatology(s)
	climRows := make([][]string, 0, len(clim))
	for m, v := range clim {
		climRows = append(climRows, []string{monthNames[m], fmt.Sprintf("%+.3f", v)})
	}
	fmt.Println(renderTable([]string{"Month", "Mean °C"}, climRows, []columnAlignment{alignLeft, alignRight}))

	if !s.StartsInJanuary() {
		fmt.Printf("\nnote: series starts in %s; spiral months follow sample order\n", s.First().Time.Month())
	}
	return nil
}
