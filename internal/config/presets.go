package config

import "sort"

// Presets override the render and encoder sections of DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {
		c.Render.Width, c.Render.Height = 1400, 1400
		c.Encoder.FrameRate = 48
	},
	"preview": func(c *Config) {
		c.Render.Width, c.Render.Height = 480, 480
		c.Render.LineWidth = 1.0
		c.Encoder.FrameRate = 24
		c.Encoder.Bitrate = "1M"
		c.Encoder.Output = "climate_spiral_preview.mp4"
	},
	"hd": func(c *Config) {
		c.Render.Width, c.Render.Height = 1080, 1080
		c.Render.LineWidth = 2.5
		c.Encoder.FrameRate = 60
		c.Encoder.Bitrate = "8M"
	},
	"social": func(c *Config) {
		c.Render.Width, c.Render.Height = 720, 720
		c.Encoder.FrameRate = 30
		c.Encoder.HoldSeconds = 3
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset applies the named preset on top of cfg.
func ApplyPreset(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if !ok {
		return false
	}
	apply(cfg)
	return true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
