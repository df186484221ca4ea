package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections improve readability and map naturally to flags/env.
type FileConfig struct {
	Colors struct {
		URL string `yaml:"url" json:"url"`
	} `yaml:"colors" json:"colors"`

	Scale struct {
		URL string `yaml:"url" json:"url"`
	} `yaml:"scale" json:"scale"`

	Only   string `yaml:"only" json:"only"`
	Format string `yaml:"format" json:"format"`
	Render string `yaml:"render" json:"render"`

	Fetch struct {
		UserAgent string        `yaml:"ua" json:"ua"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"fetch" json:"fetch"`

	Output  string `yaml:"output" json:"output"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that still carry their flag defaults. Flags should already have been
// parsed; this lets file config supply defaults while preserving explicit
// flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	const (
		onlyDefault   = "all"
		formatDefault = "hex"
		renderDefault = "auto"
		outputDefault = "-"
	)

	if (cfg.ColorsURL == "" || cfg.ColorsURL == DefaultColorsURL) && fc.Colors.URL != "" {
		cfg.ColorsURL = fc.Colors.URL
	}
	if (cfg.ScaleURL == "" || cfg.ScaleURL == DefaultScaleURL) && fc.Scale.URL != "" {
		cfg.ScaleURL = fc.Scale.URL
	}
	if (cfg.Only == "" || cfg.Only == onlyDefault) && fc.Only != "" {
		cfg.Only = fc.Only
	}
	if (cfg.Format == "" || cfg.Format == formatDefault) && fc.Format != "" {
		cfg.Format = fc.Format
	}
	if (cfg.Render == "" || cfg.Render == renderDefault) && fc.Render != "" {
		cfg.Render = fc.Render
	}
	if (cfg.UserAgent == "" || cfg.UserAgent == DefaultUserAgent) && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if (cfg.Timeout == 0 || cfg.Timeout == DefaultTimeout) && fc.Fetch.Timeout > 0 {
		cfg.Timeout = fc.Fetch.Timeout
	}
	if (cfg.OutputPath == "" || cfg.OutputPath == outputDefault) && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	switch cfg.Only {
	case "colors", "scale", "all":
	default:
		return fmt.Errorf("config: only must be colors, scale or all (got %q)", cfg.Only)
	}
	switch cfg.Format {
	case "hex", "rgb":
	default:
		return fmt.Errorf("config: format must be hex or rgb (got %q)", cfg.Format)
	}
	switch cfg.Render {
	case "auto", "browser", "static":
	default:
		return fmt.Errorf("config: render must be auto, browser or static (got %q)", cfg.Render)
	}
	if cfg.Only != "scale" && strings.TrimSpace(cfg.ColorsURL) == "" {
		return errors.New("config: colors.url is required")
	}
	if cfg.Only != "colors" && strings.TrimSpace(cfg.ScaleURL) == "" {
		return errors.New("config: scale.url is required")
	}
	if cfg.Timeout < 0 {
		return errors.New("config: negative timeout is not allowed")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	return nil
}
