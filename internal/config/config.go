// Package config loads tabart settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/tabart"
)

// ErrUnsupportedFile is returned for config files that are neither TOML nor
// YAML.
var ErrUnsupportedFile = errors.New("unsupported config file type")

// Width modes.
const (
	WidthEastAsian = "eastasian"
	WidthCells     = "cells"
	WidthTerminal  = "terminal"
)

// Log formats, as understood by the CLI logger.
var logFormats = []string{"text", "json", "json-pretty"}

var widthModes = []string{WidthEastAsian, WidthCells, WidthTerminal}

// Config holds the persistent tabart settings. Flags given on the command
// line override values loaded from a file.
type Config struct {
	Style        string        `toml:"style" yaml:"style"`
	ColumnAlign  string        `toml:"column_align" yaml:"column_align"`
	NoHeader     bool          `toml:"no_header" yaml:"no_header"`
	Width        string        `toml:"width" yaml:"width"`
	Width1Chars  []string      `toml:"width1_chars" yaml:"width1_chars"`
	QueryTimeout time.Duration `toml:"query_timeout" yaml:"query_timeout"`
	MaxRows      int           `toml:"max_rows" yaml:"max_rows"`
	MaxCols      int           `toml:"max_cols" yaml:"max_cols"`
	Log          LogConfig     `toml:"log" yaml:"log"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Style:        tabart.OrgMode.String(),
		Width:        WidthEastAsian,
		QueryTimeout: tabart.DefaultQueryTimeout,
		MaxRows:      tabart.DefaultMaxRows,
		MaxCols:      tabart.DefaultMaxCols,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Dir returns the tabart config directory. It follows the XDG Base
// Directory spec on Linux and platform conventions elsewhere.
func Dir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "tabart")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tabart")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tabart")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tabart")
	}
}

// DefaultPath returns the first existing config file in [Dir], trying
// config.toml, config.yaml and config.yml in that order. It returns "" when
// there is none.
func DefaultPath() string {
	dir := Dir()
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads the config file at path on top of [Default]. An empty path
// means [DefaultPath]; when that finds nothing the defaults are returned.
// The file type is picked by extension: .toml, or .yaml/.yml/.json.
// Unknown keys are errors.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("loading %s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml", ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, path)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := tabart.ParseDialect(c.Style); err != nil {
		errs = append(errs, fmt.Errorf("style: %w", err))
	}
	if _, err := tabart.ParseAlign(c.ColumnAlign); err != nil {
		errs = append(errs, fmt.Errorf("column_align: %w", err))
	}
	if _, err := c.NarrowClasses(); err != nil {
		errs = append(errs, fmt.Errorf("width1_chars: %w", err))
	}
	if !slices.Contains(widthModes, c.Width) {
		errs = append(errs, fmt.Errorf("width: %q is not one of %s", c.Width, strings.Join(widthModes, ", ")))
	}
	if c.QueryTimeout < 0 {
		errs = append(errs, fmt.Errorf("query_timeout: must not be negative, got %s", c.QueryTimeout))
	}
	if c.MaxRows < 0 {
		errs = append(errs, fmt.Errorf("max_rows: must not be negative, got %d", c.MaxRows))
	}
	if c.MaxCols < 0 {
		errs = append(errs, fmt.Errorf("max_cols: must not be negative, got %d", c.MaxCols))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format: %q is not one of %s", c.Log.Format, strings.Join(logFormats, ", ")))
	}
	return errors.Join(errs...)
}

// NarrowClasses parses Width1Chars.
func (c *Config) NarrowClasses() ([]tabart.CharClass, error) {
	var classes []tabart.CharClass
	for _, s := range c.Width1Chars {
		cc, err := tabart.ParseCharClass(s)
		if err != nil {
			return nil, err
		}
		classes = append(classes, cc)
	}
	return classes, nil
}

// Options converts the settings into conversion options. Width measurement
// other than East-Asian is left to the caller, which owns the terminal.
func (c *Config) Options() (tabart.Options, error) {
	d, err := tabart.ParseDialect(c.Style)
	if err != nil {
		return tabart.Options{}, err
	}
	classes, err := c.NarrowClasses()
	if err != nil {
		return tabart.Options{}, err
	}
	opts := tabart.Options{
		Dialect:  d,
		Align:    c.ColumnAlign,
		NoHeader: c.NoHeader,
		Width:    tabart.EastAsian{Narrow: classes},
		MaxRows:  c.MaxRows,
		MaxCols:  c.MaxCols,
	}
	if c.Width == WidthCells {
		opts.Width = tabart.Cells{}
	}
	return opts, nil
}
