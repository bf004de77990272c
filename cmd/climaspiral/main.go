package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/climaspiral/internal/config"
	"github.com/san-kum/climaspiral/internal/log"
)

var (
	configFile string
	preset     string
	dataPath   string
	storeDir   string
	debug      bool

	// render flags
	outPath   string
	fps       int
	width     int
	height    int
	workers   int
	cmapName  string
	ffmpegBin string
	noRecord  bool

	// other commands
	frameIndex int
	jsonOut    string
	theme      string
	force      bool
)

func main() {
	// Errors before flag parsing still need a logger.
	if err := log.Init(false); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		log.Sugared().Error(err)
		log.Sync()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "climaspiral",
		Short:         "render the global temperature climate spiral",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", fmt.Sprintf("use preset configuration %v", config.ListPresets()))
	pf.StringVar(&dataPath, "data", "", "anomaly CSV path")
	pf.StringVar(&storeDir, "store", "", "run history directory")
	pf.BoolVar(&debug, "debug", false, "debug logging")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the spiral to a video file",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	rf := renderCmd.Flags()
	rf.StringVar(&outPath, "out", "", "output video path")
	rf.IntVar(&fps, "fps", config.DefaultFrameRate, "frame rate")
	rf.IntVar(&width, "width", config.DefaultWidth, "frame width in pixels")
	rf.IntVar(&height, "height", config.DefaultHeight, "frame height in pixels")
	rf.IntVar(&workers, "workers", 0, "frame render workers (0 = number of CPUs)")
	rf.StringVar(&cmapName, "colormap", config.DefaultColormapName, "colormap name")
	rf.StringVar(&ffmpegBin, "ffmpeg", "ffmpeg", "ffmpeg binary")
	rf.BoolVar(&noRecord, "no-record", false, "do not record the run in the history")

	frameCmd := &cobra.Command{
		Use:   "frame [index|final] [out.png]",
		Short: "render a single frame as PNG (final = complete spiral)",
		Args:  cobra.ExactArgs(2),
		RunE:  runFrame,
	}
	frameCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "frame width in pixels")
	frameCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "frame height in pixels")
	frameCmd.Flags().StringVar(&cmapName, "colormap", config.DefaultColormapName, "colormap name")

	svgCmd := &cobra.Command{
		Use:   "svg [out.svg]",
		Short: "write the spiral as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runSVG,
	}
	svgCmd.Flags().IntVar(&frameIndex, "frame", -1, "frame to draw (-1 = complete spiral)")
	svgCmd.Flags().StringVar(&cmapName, "colormap", config.DefaultColormapName, "colormap name")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export spiral points and series summary as JSON",
		Args:  cobra.NoArgs,
		RunE:  runExportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonOut, "out", "", "output file (default stdout)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "summary statistics and trend of the series",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "animate the spiral in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}
	previewCmd.Flags().StringVar(&theme, "theme", "ember", fmt.Sprintf("color theme %v", vizThemes()))

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "render history",
	}
	runsListCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded renders",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	runsShowCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a recorded render",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	runsCmd.AddCommand(runsListCmd, runsShowCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the default (or preset) values",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(renderCmd, frameCmd, svgCmd, exportJSONCmd, statsCmd, previewCmd, runsCmd, presetsCmd, configCmd)
	return rootCmd
}
