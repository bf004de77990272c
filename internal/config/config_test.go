package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Spiral.Segments != 12 {
		t.Errorf("expected 12 segments, got %d", cfg.Spiral.Segments)
	}
	if cfg.Encoder.FrameRate != 48 {
		t.Errorf("expected 48 fps, got %d", cfg.Encoder.FrameRate)
	}
	if len(cfg.Render.Thresholds) != 2 {
		t.Errorf("expected 2 threshold rings, got %d", len(cfg.Render.Thresholds))
	}
	if err := cfg.Validate(nil); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if got := cfg.ScaleFactor(); got != 7.0/3.6 {
		t.Errorf("expected scale 7/3.6, got %f", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero segments", func(c *Config) { c.Spiral.Segments = 0 }},
		{"eight segments", func(c *Config) { c.Spiral.Segments = 8 }},
		{"negative radius", func(c *Config) { c.Spiral.Radius = -1 }},
		{"zero scale range", func(c *Config) { c.Spiral.ScaleRange = 0 }},
		{"odd width", func(c *Config) { c.Render.Width = 641 }},
		{"zero height", func(c *Config) { c.Render.Height = 0 }},
		{"zero extent", func(c *Config) { c.Render.Extent = 0 }},
		{"zero line width", func(c *Config) { c.Render.LineWidth = 0 }},
		{"negative workers", func(c *Config) { c.Render.Workers = -2 }},
		{"zero fps", func(c *Config) { c.Encoder.FrameRate = 0 }},
		{"negative hold", func(c *Config) { c.Encoder.HoldSeconds = -1 }},
		{"empty binary", func(c *Config) { c.Encoder.Binary = " " }},
		{"empty output", func(c *Config) { c.Encoder.Output = "" }},
		{"empty data path", func(c *Config) { c.Data.Path = "" }},
		{"empty column", func(c *Config) { c.Data.AnomalyColumn = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(nil); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateColormap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.Colormap = "rainbow"
	known := func(name string) bool { return name == "jet" }
	if err := cfg.Validate(known); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected unknown colormap to fail, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("preview")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Render.Width != 480 {
		t.Errorf("expected width 480, got %d", cfg.Render.Width)
	}
	if cfg.Spiral.Radius != DefaultRadius {
		t.Errorf("preset should keep spiral defaults, got radius %f", cfg.Spiral.Radius)
	}
	if err := cfg.Validate(nil); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if ApplyPreset(DefaultConfig(), "nonexistent") {
		t.Error("expected ApplyPreset to report unknown preset")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(nil); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestHoldFrames(t *testing.T) {
	cfg := GetPreset("social")
	if got := cfg.HoldFrames(); got != 90 {
		t.Errorf("expected 90 hold frames, got %d", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spiral.yaml")
	cfg := DefaultConfig()
	cfg.Encoder.Output = "out.mp4"
	cfg.Render.Thresholds = append(cfg.Render.Thresholds, Threshold{Label: "3.0°C", Anomaly: 2.5})

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Encoder.Output != "out.mp4" {
		t.Errorf("expected output out.mp4, got %s", loaded.Encoder.Output)
	}
	if len(loaded.Render.Thresholds) != 3 {
		t.Errorf("expected 3 thresholds, got %d", len(loaded.Render.Thresholds))
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("encoder:\n  frame_rate: 24\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Encoder.FrameRate != 24 {
		t.Errorf("expected 24 fps, got %d", cfg.Encoder.FrameRate)
	}
	if cfg.Encoder.Codec != DefaultCodec {
		t.Errorf("expected default codec, got %s", cfg.Encoder.Codec)
	}
	if cfg.Spiral.Offset != DefaultOffset {
		t.Errorf("expected default offset, got %f", cfg.Spiral.Offset)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("encoder:\n  bitrate: 2M\n"), 0644); err != nil {
		t.Fatal(err)
	}
	base := GetPreset("social")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Encoder.Bitrate != "2M" {
		t.Errorf("expected file bitrate, got %s", cfg.Encoder.Bitrate)
	}
	if cfg.Render.Width != 720 || cfg.Encoder.HoldSeconds != 3 {
		t.Errorf("expected preset values to survive, got %d / %g", cfg.Render.Width, cfg.Encoder.HoldSeconds)
	}
	if base.Encoder.Bitrate == "2M" {
		t.Error("base must not be modified")
	}
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()
	cp.Render.Thresholds[0].Anomaly = 9
	if cfg.Render.Thresholds[0].Anomaly == 9 {
		t.Error("clone shares threshold storage")
	}
}
