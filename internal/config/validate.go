package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. knownColormap may be nil to
// skip the colormap name check.
func (c *Config) Validate(knownColormap func(string) bool) error {
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateSpiral(); err != nil {
		return err
	}
	if err := c.validateRender(knownColormap); err != nil {
		return err
	}
	return c.validateEncoder()
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return invalid("data.path must be set")
	}
	if strings.TrimSpace(c.Data.TimeColumn) == "" || strings.TrimSpace(c.Data.AnomalyColumn) == "" {
		return invalid("data.time_column and data.anomaly_column must be set")
	}
	return nil
}

func (c *Config) validateSpiral() error {
	// one segment per calendar month
	if c.Spiral.Segments != DefaultSegments {
		return invalid("spiral.segments must be %d, got %d", DefaultSegments, c.Spiral.Segments)
	}
	if c.Spiral.Radius <= 0 {
		return invalid("spiral.radius must be positive, got %g", c.Spiral.Radius)
	}
	if c.Spiral.ScaleRange <= 0 {
		return invalid("spiral.scale_range must be positive, got %g", c.Spiral.ScaleRange)
	}
	return nil
}

func (c *Config) validateRender(knownColormap func(string) bool) error {
	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return invalid("render size must be positive, got %dx%d", r.Width, r.Height)
	}
	if r.Width%2 != 0 || r.Height%2 != 0 {
		return invalid("render size must be even for yuv420p output, got %dx%d", r.Width, r.Height)
	}
	if r.Extent <= 0 {
		return invalid("render.extent must be positive, got %g", r.Extent)
	}
	if r.LineWidth <= 0 {
		return invalid("render.line_width must be positive, got %g", r.LineWidth)
	}
	if r.Workers < 0 {
		return invalid("render.workers must not be negative, got %d", r.Workers)
	}
	if knownColormap != nil && !knownColormap(r.Colormap) {
		return invalid("render.colormap: unknown colormap %q", r.Colormap)
	}
	return nil
}

func (c *Config) validateEncoder() error {
	e := c.Encoder
	if strings.TrimSpace(e.Binary) == "" {
		return invalid("encoder.binary must be set")
	}
	if strings.TrimSpace(e.Output) == "" {
		return invalid("encoder.output must be set")
	}
	if e.FrameRate <= 0 {
		return invalid("encoder.frame_rate must be positive, got %d", e.FrameRate)
	}
	if e.HoldSeconds < 0 {
		return invalid("encoder.hold_seconds must not be negative, got %g", e.HoldSeconds)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
