// Package config loads board settings: built-in defaults, then an optional
// YAML file, then a .env file, then the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/render"
)

// Environment variables that override file settings.
const (
	EnvDataDir   = "BOARD_DATA_DIR"
	EnvExportDir = "BOARD_EXPORT_DIR"
	EnvShareAddr = "BOARD_SHARE_ADDR"
	EnvPreset    = "BOARD_PRESET"
	EnvThickness = "BOARD_DRAW_THICKNESS"
)

// Config is the resolved board configuration.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	ExportDir string `yaml:"export_dir"`
	ShareAddr string `yaml:"share_addr"` // empty disables the live mirror
	Preset    string `yaml:"preset"`

	Window struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`

	Draw struct {
		Thickness float64  `yaml:"thickness"`
		Palette   []string `yaml:"palette"`
	} `yaml:"draw"`
}

// Default returns the built-in settings.
func Default() Config {
	var c Config
	c.DataDir = "data"
	c.ExportDir = "."
	c.Preset = formation.DefaultPresetName
	c.Window.Width = 1280
	c.Window.Height = 760
	c.Draw.Thickness = 3
	c.Draw.Palette = []string{formation.DefaultDrawColor, "#ffffff", "#facc15", "#3b82f6", "#111827"}
	return c
}

// Load resolves the configuration. path may be empty; a named file that does
// not exist is an error. A missing .env file is not.
func Load(path string) (Config, error) {
	return load(path, ".env", os.LookupEnv)
}

func load(path, envFile string, lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	if path != "" {
		if err := readYAML(path, &c); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", envFile, err)
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := c.applyEnv(env); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func readYAML(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(env func(string) (string, bool)) error {
	if v, ok := env(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := env(EnvExportDir); ok && v != "" {
		c.ExportDir = v
	}
	if v, ok := env(EnvShareAddr); ok {
		c.ShareAddr = v
	}
	if v, ok := env(EnvPreset); ok && v != "" {
		c.Preset = v
	}
	if v, ok := env(EnvThickness); ok && v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvThickness, err)
		}
		c.Draw.Thickness = t
	}
	return nil
}

// Validate rejects settings the board cannot start with.
func (c Config) Validate() error {
	if _, err := formation.PresetByName(c.Preset); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Draw.Thickness <= 0 {
		return fmt.Errorf("config: draw thickness must be positive, got %v", c.Draw.Thickness)
	}
	if len(c.Draw.Palette) == 0 {
		return errors.New("config: draw palette is empty")
	}
	for _, p := range c.Draw.Palette {
		if _, err := render.ParseHexColor(p); err != nil {
			return fmt.Errorf("config: palette: %w", err)
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
