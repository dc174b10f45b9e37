package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/rdvisser/socionet/pkg/netviz"
)

// fileConfig mirrors the viewer options a TOML config file may override.
// Background accepts either a color string or a {fill, stroke,
// strokeWidth} table.
type fileConfig struct {
	Width      int   `toml:"width"`
	Height     int   `toml:"height"`
	Stabilize  *bool `toml:"stabilize"`
	Selectable *bool `toml:"selectable"`
	Background any   `toml:"background"`

	Links struct {
		DefaultLength float64 `toml:"defaultLength"`
	} `toml:"links"`
}

// applyConfig overlays the config file onto the option defaults.
func applyConfig(path string, opts *netviz.Options) error {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if cfg.Width > 0 {
		opts.Width = cfg.Width
	}
	if cfg.Height > 0 {
		opts.Height = cfg.Height
	}
	if cfg.Stabilize != nil {
		opts.Stabilize = *cfg.Stabilize
	}
	if cfg.Selectable != nil {
		opts.Selectable = *cfg.Selectable
	}
	if cfg.Links.DefaultLength > 0 {
		opts.LinksDefaultLength = cfg.Links.DefaultLength
	}
	if err := opts.SetBackground(cfg.Background); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}
