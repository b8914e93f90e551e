package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file location.
const EnvPath = "NVOVERLAY_CONFIG"

const (
	defaultFontFamily = "Calibri"
	defaultFontSize   = 18
	defaultFPS        = 60
	maxFPS            = 240
)

// Config is the application configuration.
type Config struct {
	Font   FontConfig   `yaml:"font"`
	Render RenderConfig `yaml:"render"`
	Scene  []Item       `yaml:"scene"`
}

// FontConfig parameterizes the overlay text format.
type FontConfig struct {
	Family string  `yaml:"family"`
	Size   float32 `yaml:"size"`
}

// RenderConfig holds frame loop settings.
type RenderConfig struct {
	FPS int  `yaml:"fps"`
	HUD bool `yaml:"hud"`
}

// Item is one primitive drawn every frame.
type Item struct {
	Kind   string  `yaml:"kind"` // text, rect, fillrect, circle, fillcircle, line
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	X2     float32 `yaml:"x2,omitempty"`
	Y2     float32 `yaml:"y2,omitempty"`
	Width  float32 `yaml:"width,omitempty"`
	Height float32 `yaml:"height,omitempty"`
	Radius float32 `yaml:"radius,omitempty"`
	Stroke float32 `yaml:"stroke,omitempty"`
	Text   string  `yaml:"text,omitempty"`
	Color  string  `yaml:"color,omitempty"`
}

// Dir returns the OS-specific config directory (e.g. %AppData%\nvoverlay).
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "nvoverlay"), nil
}

// Path returns the full path to config.yaml, honoring NVOVERLAY_CONFIG.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}

// Load reads config from Path, or returns the default if the file is missing.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(p)
}

// LoadFile reads config from p. A missing file yields Default.
func LoadFile(p string) (*Config, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config decode %s: %w", p, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", p, err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Font.Family == "" {
		c.Font.Family = defaultFontFamily
	}
	if c.Font.Size == 0 {
		c.Font.Size = defaultFontSize
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = defaultFPS
	}
	for i := range c.Scene {
		if c.Scene[i].Stroke == 0 && c.Scene[i].Kind != "text" {
			c.Scene[i].Stroke = 1
		}
	}
}

// Validate reports the first invalid setting. Colors are checked by the scene
// package when the items are compiled.
func (c *Config) Validate() error {
	if c.Font.Family == "" {
		return errors.New("font family is empty")
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font size %g must be positive", c.Font.Size)
	}
	if c.Render.FPS < 1 || c.Render.FPS > maxFPS {
		return fmt.Errorf("fps %d out of range 1..%d", c.Render.FPS, maxFPS)
	}
	for i, it := range c.Scene {
		switch it.Kind {
		case "text", "rect", "fillrect", "circle", "fillcircle", "line":
		default:
			return fmt.Errorf("scene[%d]: unknown kind %q", i, it.Kind)
		}
	}
	return nil
}

// Save writes config to Path.
func Save(c *Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(c, p)
}

// SaveFile writes config to p, creating its directory.
func SaveFile(c *Config, p string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

// Default returns the default configuration: a greeting and a box.
func Default() *Config {
	return &Config{
		Font:   FontConfig{Family: defaultFontFamily, Size: defaultFontSize},
		Render: RenderConfig{FPS: defaultFPS, HUD: true},
		Scene: []Item{
			{Kind: "text", X: 10, Y: 30, Text: "hello", Color: "#ff3300"},
			{Kind: "rect", X: 10, Y: 80, Width: 100, Height: 100, Stroke: 2, Color: "white"},
		},
	}
}
