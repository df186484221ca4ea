package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment
// variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.ColorsURL == "" {
		cfg.ColorsURL = os.Getenv("COLORS_URL")
	}
	if cfg.ScaleURL == "" {
		cfg.ScaleURL = os.Getenv("SCALE_URL")
	}
	if cfg.Only == "" {
		cfg.Only = os.Getenv("CSSVARS_ONLY")
	}
	if cfg.Format == "" {
		cfg.Format = os.Getenv("CSSVARS_FORMAT")
	}
	if cfg.Render == "" {
		cfg.Render = os.Getenv("RENDER_MODE")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("CSSVARS_UA")
	}
	if cfg.Timeout == 0 || cfg.Timeout == DefaultTimeout {
		if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.Timeout = d
			}
		}
	}
	if !cfg.Verbose {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv("VERBOSE"))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				cfg.Verbose = true
			}
		}
	}
}
