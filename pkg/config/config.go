package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/render"
	"github.com/arthur-debert/shine/pkg/style"
)

// Config is the effective configuration.
type Config struct {
	Render RenderConfig `koanf:"render" toml:"render"`
	Output OutputConfig `koanf:"output" toml:"output"`
	Styles StylesConfig `koanf:"styles" toml:"styles"`
}

// RenderConfig holds the renderer caps and thresholds.
type RenderConfig struct {
	SmallMapThreshold int  `koanf:"small_map_threshold" toml:"small_map_threshold"`
	CellWidth         int  `koanf:"cell_width" toml:"cell_width"`
	MaxRows           int  `koanf:"max_rows" toml:"max_rows"`
	PreviewWidth      int  `koanf:"preview_width" toml:"preview_width"`
	TreeItemWidth     int  `koanf:"tree_item_width" toml:"tree_item_width"`
	TreeMaxItems      int  `koanf:"tree_max_items" toml:"tree_max_items"`
	TextPreviewWidth  int  `koanf:"text_preview_width" toml:"text_preview_width"`
	Numbered          bool `koanf:"numbered" toml:"numbered"`
}

// OutputConfig selects the output format.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"`
	Color  string `koanf:"color" toml:"color"`
	Width  int    `koanf:"width" toml:"width"`
}

// StylesConfig points at a style override file.
type StylesConfig struct {
	File string `koanf:"file" toml:"file"`
}

// Color modes for OutputConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	positive := map[string]int{
		"render.small_map_threshold": c.Render.SmallMapThreshold,
		"render.cell_width":          c.Render.CellWidth,
		"render.max_rows":            c.Render.MaxRows,
		"render.preview_width":       c.Render.PreviewWidth,
		"render.tree_item_width":     c.Render.TreeItemWidth,
		"render.tree_max_items":      c.Render.TreeMaxItems,
		"render.text_preview_width":  c.Render.TextPreviewWidth,
	}
	for _, key := range sortedKeys(positive) {
		if positive[key] <= 0 {
			return errors.Newf(errors.ErrConfigValid, "%s must be positive, got %d", key, positive[key]).
				WithDetail("key", key)
		}
	}

	if c.Output.Width < 0 {
		return errors.Newf(errors.ErrConfigValid, "output.width must not be negative, got %d", c.Output.Width).
			WithDetail("key", "output.width")
	}
	if _, err := render.ParseFormat(c.Output.Format); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid output.format %q", c.Output.Format).
			WithDetail("key", "output.format")
	}
	switch strings.ToLower(c.Output.Color) {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigValid, "output.color must be auto, always or never, got %q", c.Output.Color).
			WithDetail("key", "output.color")
	}
	return nil
}

// Settings converts the render section.
func (c *Config) Settings() render.Settings {
	return render.Settings{
		SmallMapThreshold: c.Render.SmallMapThreshold,
		CellWidth:         c.Render.CellWidth,
		MaxRows:           c.Render.MaxRows,
		PreviewWidth:      c.Render.PreviewWidth,
		TreeItemWidth:     c.Render.TreeItemWidth,
		TreeMaxItems:      c.Render.TreeMaxItems,
		TextPreviewWidth:  c.Render.TextPreviewWidth,
		Numbered:          c.Render.Numbered,
	}
}

// Registry loads the configured styles file, or returns the defaults.
func (c *Config) Registry() (*style.Registry, error) {
	if c.Styles.File == "" {
		return style.Default(), nil
	}
	return style.Load(c.Styles.File)
}

// RenderOptions returns the options building a renderer from this config.
func (c *Config) RenderOptions() ([]render.Option, error) {
	format, err := render.ParseFormat(c.Output.Format)
	if err != nil {
		return nil, err
	}
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}

	opts := []render.Option{
		render.WithFormat(format),
		render.WithSettings(c.Settings()),
		render.WithRegistry(reg),
		render.WithWidth(c.Output.Width),
	}
	switch strings.ToLower(c.Output.Color) {
	case ColorAlways:
		opts = append(opts, render.WithColor(true))
	case ColorNever:
		opts = append(opts, render.WithColor(false))
	}
	return opts, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("render=%+v output=%+v styles=%+v", c.Render, c.Output, c.Styles)
}
