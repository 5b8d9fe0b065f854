// Package config holds the settings an application passes to the window
// and the renderers.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"render2d/internal/batching"
	"render2d/internal/reactable"
)

var (
	ErrUnknownFormat = errors.New("unknown config format")
	ErrInvalid       = errors.New("invalid config")
)

type Config struct {
	Window Window `yaml:"window" toml:"window"`
	Batch  Batch  `yaml:"batch" toml:"batch"`
	Log    Log    `yaml:"log" toml:"log"`
}

type Window struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
	VSync  bool   `yaml:"vsync" toml:"vsync"`
}

// Batch is the number of items each renderer buffers before it must flush.
type Batch struct {
	Texture uint32 `yaml:"texture" toml:"texture"`
	Font    uint32 `yaml:"font" toml:"font"`
	Rect    uint32 `yaml:"rect" toml:"rect"`
	Line    uint32 `yaml:"line" toml:"line"`
}

type Log struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level" toml:"level"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "render2d", VSync: true},
		Batch: Batch{
			Texture: batching.DefaultBatchSize,
			Font:    batching.DefaultBatchSize,
			Rect:    batching.DefaultBatchSize,
			Line:    batching.DefaultBatchSize,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads a YAML or TOML file, chosen by extension, over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	for _, t := range reactable.BatchTypes() {
		if c.Batch.Size(t) == 0 {
			errs = append(errs, fmt.Errorf("%s batch size is zero", t))
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Size returns the configured size for t.
func (b Batch) Size(t reactable.BatchType) uint32 {
	switch t {
	case reactable.TextureBatch:
		return b.Texture
	case reactable.FontBatch:
		return b.Font
	case reactable.RectBatch:
		return b.Rect
	case reactable.LineBatch:
		return b.Line
	}
	return 0
}

// Publish announces every batch size on bus.
func (b Batch) Publish(bus *reactable.Bus) {
	for _, t := range reactable.BatchTypes() {
		bus.SetBatchSize(t, b.Size(t))
	}
}

func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
