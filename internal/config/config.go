package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the optional user configuration file. Environment variables
// override it at startup and are never written back.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Window        WindowConfig  `yaml:"window"`
	Display       DisplayConfig `yaml:"display"`
	Logging       LoggingConfig `yaml:"logging"`
}

type WindowConfig struct {
	Title string `yaml:"title"`
}

type DisplayConfig struct {
	// DevicePixelRatio overrides the window scale when > 0.
	DevicePixelRatio float64 `yaml:"device_pixel_ratio"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

const (
	EnvTitle = "SKP_TITLE"
	EnvDPR   = "SKP_DPR"

	EnvLogLevel  = "SKP_LOG_LEVEL"
	EnvLogFormat = "SKP_LOG_FORMAT"
	EnvLogSource = "SKP_LOG_SOURCE"
	EnvLogFile   = "SKP_LOG_FILE"
)

func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Window:        WindowConfig{Title: "Sketch Pad"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// DefaultPath is config.yaml in the per-user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "sketchpad", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides are not applied; see ApplyEnv.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Display.DevicePixelRatio < 0 {
		return Defaults(), fmt.Errorf("parse config %s: device_pixel_ratio must not be negative", path)
	}
	return cfg, nil
}

// ApplyEnv overlays SKP_* variables. Unparseable values are skipped.
func ApplyEnv(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTitle)); v != "" {
		cfg.Window.Title = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDPR)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Display.DevicePixelRatio = f
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvLogSource); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.Source = b
		}
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
}
