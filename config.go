package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const (
	configFileName    = ".memeditrc"
	apiKeyEnv         = "MEMEDIT_API_KEY"
	defaultEndpoint   = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"
	defaultGenTimeout = 30 * time.Second
)

type Config struct {
	SaveDirectory     string  `toml:"save_directory"`
	Confirmations     bool    `toml:"confirmations"`
	Font              string  `toml:"font"`
	StrokeWidth       float64 `toml:"stroke_width"`
	StrokeOrder       string  `toml:"stroke_order"`
	Watermark         bool    `toml:"watermark"`
	GeneratorEndpoint string  `toml:"generator_endpoint"`
	GeneratorAPIKey   string  `toml:"generator_api_key"`
	GeneratorTimeout  string  `toml:"generator_timeout"`
	DebugLog          string  `toml:"debug_log"`
}

func defaultConfig() *Config {
	style := defaultRenderStyle()
	return &Config{
		Confirmations:     true,
		Font:              style.FontFamily,
		StrokeWidth:       style.StrokeWidth,
		StrokeOrder:       style.StrokeOrder.String(),
		Watermark:         style.Watermark,
		GeneratorEndpoint: defaultEndpoint,
	}
}

// loadConfig reads ~/.memeditrc. A missing or unreadable file yields the
// defaults; keys absent from the file keep their default values.
func loadConfig() *Config {
	config := defaultConfig()
	home, err := homedir.Dir()
	if err != nil {
		return config
	}
	config = loadConfigFile(filepath.Join(home, configFileName))
	if key := os.Getenv(apiKeyEnv); key != "" {
		config.GeneratorAPIKey = key
	}
	return config
}

func loadConfigFile(path string) *Config {
	config := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}
	parsed := *config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return config
	}
	config = &parsed
	if config.SaveDirectory != "" {
		if dir, err := expandPath(config.SaveDirectory); err == nil {
			config.SaveDirectory = dir
		}
	}
	return config
}

// expandPath resolves a leading ~ and makes p absolute.
func expandPath(p string) (string, error) {
	p, err := homedir.Expand(p)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p, nil
}

// RenderStyle builds the initial render style from the config.
func (c *Config) RenderStyle() RenderStyle {
	style := defaultRenderStyle()
	if c.Font != "" {
		style.FontFamily = c.Font
	}
	if c.StrokeWidth > 0 {
		style.StrokeWidth = clampStrokeWidth(c.StrokeWidth)
	}
	if order, err := parseStrokeOrder(c.StrokeOrder); err == nil {
		style.StrokeOrder = order
	}
	style.Watermark = c.Watermark
	return style
}

func (c *Config) GeneratorTimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(c.GeneratorTimeout)); err == nil && d > 0 {
		return d
	}
	return defaultGenTimeout
}

// GetSavePath places filename in the save directory when one is set.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		log.Printf("create save directory: %v", err)
	}
	return filepath.Join(c.SaveDirectory, filename)
}

// StoreDirectory is where snapshots and fonts are kept: the save directory
// if configured, otherwise ~/.memedit.
func (c *Config) StoreDirectory() string {
	if c.SaveDirectory != "" {
		return filepath.Join(c.SaveDirectory, ".memedit")
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".memedit")
}
