// Package config layers defaults, an optional YAML file and MOUSEREPLAY_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is read from the working directory when no path is given
const DefaultFileName = "mousereplay.yaml"

// Driver names
const (
	DriverDesktop = "desktop"
	DriverBrowser = "browser"
	DriverLog     = "log"
)

// Config holds every setting a run needs
type Config struct {
	Driver  string        `yaml:"driver"`
	Script  ScriptConfig  `yaml:"script"`
	Log     LogConfig     `yaml:"log"`
	Browser BrowserConfig `yaml:"browser"`

	// Source is the file the settings came from, or "<defaults>"
	Source string `yaml:"-"`
}

// ScriptConfig controls where the action file is looked up
type ScriptConfig struct {
	File        string   `yaml:"file"`
	SearchPaths []string `yaml:"search_paths"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// BrowserConfig applies to the browser driver only
type BrowserConfig struct {
	URL      string `yaml:"url"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Headless bool   `yaml:"headless"`
	Profile  string `yaml:"profile"`
	Record   string `yaml:"record"`
	FPS      int    `yaml:"fps"`
	MaxWidth uint   `yaml:"max_width"`
}

// Default returns the settings used when nothing overrides them
func Default() Config {
	return Config{
		Driver: DriverDesktop,
		Script: ScriptConfig{
			File: "mouse_actions.csv",
		},
		Log: LogConfig{Level: "info"},
		Browser: BrowserConfig{
			URL:      "about:blank",
			Width:    1280,
			Height:   720,
			Headless: true,
			FPS:      4,
			MaxWidth: 800,
		},
		Source: "<defaults>",
	}
}

// Load reads path over the defaults. An empty path reads DefaultFileName if
// it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Source = path

	return cfg, nil
}

// ApplyEnv overrides settings from MOUSEREPLAY_* variables
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("MOUSEREPLAY_DRIVER"); v != "" {
		c.Driver = v
	}
	if v := getenv("MOUSEREPLAY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("MOUSEREPLAY_FILE"); v != "" {
		c.Script.File = v
	}
	if v := getenv("MOUSEREPLAY_BROWSER_URL"); v != "" {
		c.Browser.URL = v
	}
	if v := getenv("MOUSEREPLAY_BROWSER_PROFILE"); v != "" {
		c.Browser.Profile = v
	}
	if v := getenv("MOUSEREPLAY_BROWSER_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MOUSEREPLAY_BROWSER_HEADLESS: %w", err)
		}
		c.Browser.Headless = b
	}
	return nil
}

// Validate rejects settings no driver can run with
func (c Config) Validate() error {
	switch strings.ToLower(c.Driver) {
	case DriverDesktop, DriverLog:
	case DriverBrowser:
		if c.Browser.Width <= 0 || c.Browser.Height <= 0 {
			return fmt.Errorf("browser viewport must be positive, got %dx%d", c.Browser.Width, c.Browser.Height)
		}
		if c.Browser.Record != "" && c.Browser.FPS <= 0 {
			return fmt.Errorf("browser fps must be positive, got %d", c.Browser.FPS)
		}
	default:
		return fmt.Errorf("unknown driver %q (supported: desktop, browser, log)", c.Driver)
	}

	if c.Browser.Record != "" && !strings.EqualFold(c.Driver, DriverBrowser) {
		return fmt.Errorf("recording needs the browser driver")
	}
	if strings.TrimSpace(c.Script.File) == "" {
		return fmt.Errorf("script file name must not be empty")
	}
	return nil
}
