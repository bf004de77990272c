package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSegments     = 12
	DefaultRadius       = 7.0
	DefaultOffset       = 1.5
	DefaultScaleRange   = 3.6
	DefaultWidth        = 1080
	DefaultHeight       = 1080
	DefaultExtent       = 10.0
	DefaultFrameRate    = 48
	DefaultBitrate      = "4M"
	DefaultCodec        = "libx264"
	DefaultPixelFormat  = "yuv420p"
	DefaultOutput       = "climate_spiral.mp4"
	DefaultDataPath     = "HadCRUT.5.0.1.0.analysis.summary_series.global.monthly.csv"
	DefaultStoreDir     = ".climaspiral"
	DefaultColormapName = "jet"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Data    DataConfig    `yaml:"data"`
	Spiral  SpiralConfig  `yaml:"spiral"`
	Render  RenderConfig  `yaml:"render"`
	Encoder EncoderConfig `yaml:"encoder"`
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
}

type DataConfig struct {
	Path          string `yaml:"path"`
	TimeColumn    string `yaml:"time_column"`
	AnomalyColumn string `yaml:"anomaly_column"`
}

type SpiralConfig struct {
	Segments   int     `yaml:"segments"`
	Radius     float64 `yaml:"radius"`
	Offset     float64 `yaml:"offset"`
	ScaleRange float64 `yaml:"scale_range"`
	StartYear  int     `yaml:"start_year"`
}

// Threshold is a reference ring drawn at a raw anomaly value.
type Threshold struct {
	Label   string  `yaml:"label"`
	Anomaly float64 `yaml:"anomaly"`
}

type RenderConfig struct {
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Extent     float64     `yaml:"extent"`
	Background string      `yaml:"background"`
	Disc       string      `yaml:"disc"`
	Colormap   string      `yaml:"colormap"`
	LineWidth  float64     `yaml:"line_width"`
	Title      string      `yaml:"title"`
	Thresholds []Threshold `yaml:"thresholds"`
	Workers    int         `yaml:"workers"`
}

type EncoderConfig struct {
	Binary      string  `yaml:"binary"`
	FrameRate   int     `yaml:"frame_rate"`
	Codec       string  `yaml:"codec"`
	Bitrate     string  `yaml:"bitrate"`
	PixelFormat string  `yaml:"pixel_format"`
	Output      string  `yaml:"output"`
	HoldSeconds float64 `yaml:"hold_seconds"`
}

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

type StoreConfig struct {
	Dir string `yaml:"dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:          DefaultDataPath,
			TimeColumn:    "Time",
			AnomalyColumn: "Anomaly (deg C)",
		},
		Spiral: SpiralConfig{
			Segments:   DefaultSegments,
			Radius:     DefaultRadius,
			Offset:     DefaultOffset,
			ScaleRange: DefaultScaleRange,
		},
		Render: RenderConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Extent:     DefaultExtent,
			Background: "#808080",
			Disc:       "#000000",
			Colormap:   DefaultColormapName,
			LineWidth:  2.0,
			Title:      "Global temperature change",
			Thresholds: []Threshold{
				{Label: "1.5°C", Anomaly: 1.0},
				{Label: "2.0°C", Anomaly: 1.5},
			},
		},
		Encoder: EncoderConfig{
			Binary:      "ffmpeg",
			FrameRate:   DefaultFrameRate,
			Codec:       DefaultCodec,
			Bitrate:     DefaultBitrate,
			PixelFormat: DefaultPixelFormat,
			Output:      DefaultOutput,
		},
		Store: StoreConfig{Dir: DefaultStoreDir},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base; keys missing from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets are never modified in place.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Render.Thresholds = append([]Threshold(nil), c.Render.Thresholds...)
	return &cp
}

// ScaleFactor is the radius per degree of offset anomaly.
func (c *Config) ScaleFactor() float64 {
	return c.Spiral.Radius / c.Spiral.ScaleRange
}

// HoldFrames is the number of times the final frame is repeated.
func (c *Config) HoldFrames() int {
	return int(c.Encoder.HoldSeconds * float64(c.Encoder.FrameRate))
}
