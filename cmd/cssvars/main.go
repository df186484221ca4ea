package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/cssvars/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		colorsURL  string
		scaleURL   string
		only       string
		format     string
		render     string
		userAgent  string
		timeout    time.Duration
		outputPath string
		configPath string
		verbose    bool
	)

	flag.StringVar(&colorsURL, "colors.url", envOr("COLORS_URL", app.DefaultColorsURL), "URL of the color definitions page")
	flag.StringVar(&scaleURL, "scale.url", envOr("SCALE_URL", app.DefaultScaleURL), "URL of the typographic scale page")
	flag.StringVar(&only, "only", envOr("CSSVARS_ONLY", "all"), "Pipeline to run: colors, scale or all")
	flag.StringVar(&format, "format", envOr("CSSVARS_FORMAT", "hex"), "Color output format: hex or rgb")
	flag.StringVar(&render, "render", envOr("RENDER_MODE", "auto"), "Document loading: auto, browser or static")
	flag.StringVar(&userAgent, "ua", envOr("CSSVARS_UA", app.DefaultUserAgent), "Custom User-Agent for page requests")
	flag.DurationVar(&timeout, "timeout", app.DefaultTimeout, "Bound for each page fetch (e.g. 10s); 0 disables")
	flag.StringVar(&outputPath, "output", "-", "Path to write the CSS output; '-' writes to stdout")
	flag.StringVar(&configPath, "config", os.Getenv("CSSVARS_CONFIG"), "Path to YAML/JSON config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		ColorsURL:  colorsURL,
		ScaleURL:   scaleURL,
		Only:       only,
		Format:     format,
		Render:     render,
		UserAgent:  userAgent,
		Timeout:    timeout,
		OutputPath: outputPath,
		Verbose:    verbose,
	}

	// Precedence: flags > env > config file > built-in defaults.
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
