package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/climaspiral/internal/colormap"
	"github.com/san-kum/climaspiral/internal/config"
	"github.com/san-kum/climaspiral/internal/log"
	"github.com/san-kum/climaspiral/internal/storage"
)

// resolveConfig layers defaults, preset, config file and flags, in that
// order. Flags only apply when set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if !config.ApplyPreset(cfg, preset) {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if flagChanged(cmd, "data") {
		cfg.Data.Path = dataPath
	}
	if flagChanged(cmd, "store") {
		cfg.Store.Dir = storeDir
	}
	if debug {
		cfg.Log.Debug = true
	}
	if cmd.Name() == "render" && flagChanged(cmd, "out") {
		cfg.Encoder.Output = outPath
	}
	if flagChanged(cmd, "fps") {
		cfg.Encoder.FrameRate = fps
	}
	if flagChanged(cmd, "width") {
		cfg.Render.Width = width
	}
	if flagChanged(cmd, "height") {
		cfg.Render.Height = height
	}
	if flagChanged(cmd, "workers") {
		cfg.Render.Workers = workers
	}
	if flagChanged(cmd, "colormap") {
		cfg.Render.Colormap = cmapName
	}
	if flagChanged(cmd, "ffmpeg") {
		cfg.Encoder.Binary = ffmpegBin
	}

	if err := cfg.Validate(colormap.Known); err != nil {
		return nil, err
	}
	if cfg.Log.Debug && !debug {
		if err := log.Init(true); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	st := storage.New(cfg.Store.Dir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if preset != "" && !config.ApplyPreset(cfg, preset) {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
