// Package app wires the fetch, extraction and rendering stages into the
// two one-shot pipelines of the cssvars tool.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/cssvars/internal/css"
	"github.com/hyperifyio/cssvars/internal/extract"
	"github.com/hyperifyio/cssvars/internal/fetch"
	"github.com/hyperifyio/cssvars/internal/palette"
)

// App is a configured, runnable instance of the tool.
type App struct {
	cfg     Config
	fetcher fetch.Fetcher
	out     io.Writer
	closeFn func() error
}

// New builds an App: selects the document fetcher for the configured
// render mode and opens the output destination.
func New(ctx context.Context, cfg Config) (*App, error) {
	fetcher, err := fetch.New(cfg.Render, cfg.UserAgent, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("select fetcher: %w", err)
	}
	a := &App{cfg: cfg, fetcher: fetcher, out: os.Stdout}
	if cfg.OutputPath != "" && cfg.OutputPath != "-" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		a.out = f
		a.closeFn = f.Close
	}
	return a, nil
}

// Close releases the output file, if any.
func (a *App) Close() error {
	if a.closeFn != nil {
		return a.closeFn()
	}
	return nil
}

// Run executes the selected pipelines. Each pipeline is a linear
// fetch → locate tables → extract → write sequence; a fetch or missing
// table failure aborts the run.
func (a *App) Run(ctx context.Context) error {
	switch a.cfg.Only {
	case "colors", "scale", "all":
	default:
		return fmt.Errorf("unknown pipeline selection %q", a.cfg.Only)
	}
	if a.cfg.Only == "colors" || a.cfg.Only == "all" {
		if err := a.runColors(ctx); err != nil {
			return err
		}
	}
	if a.cfg.Only == "scale" || a.cfg.Only == "all" {
		if err := a.runScales(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) runColors(ctx context.Context) error {
	doc, err := a.fetcher.Fetch(ctx, a.cfg.ColorsURL)
	if err != nil {
		return err
	}
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return &extract.MissingTableError{URL: a.cfg.ColorsURL, Selector: "table"}
	}
	format := palette.Format(a.cfg.Format)
	var decls []css.Declaration
	for c := range extract.AllColors(tables) {
		line, err := c.Render(format)
		if err != nil {
			return fmt.Errorf("render color: %w", err)
		}
		decls = append(decls, css.Declaration{Line: line, Comment: colorComment(c, format)})
	}
	log.Info().Int("colors", len(decls)).Str("url", a.cfg.ColorsURL).Msg("extracted colors")
	return css.WriteBlock(a.out, decls)
}

func (a *App) runScales(ctx context.Context) error {
	doc, err := a.fetcher.Fetch(ctx, a.cfg.ScaleURL)
	if err != nil {
		return err
	}
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return &extract.MissingTableError{URL: a.cfg.ScaleURL, Selector: "table"}
	}
	var decls []css.Declaration
	for inc := range extract.Scales(tables.First()) {
		decls = append(decls, css.Declaration{
			Line:    fmt.Sprintf("%s: %s;", palette.VariableName(inc.Name), inc.RemSize),
			Comment: strings.TrimSpace(inc.PixelSize + " " + inc.Base),
		})
	}
	log.Info().Int("increments", len(decls)).Str("url", a.cfg.ScaleURL).Msg("extracted scale increments")
	return css.WriteBlock(a.out, decls)
}

// colorComment annotates a declaration with the representation the chosen
// format left out, falling back to the alias reference when present.
func colorComment(c palette.Color, format palette.Format) string {
	switch {
	case format == palette.FormatHex && c.RGB != nil:
		return fmt.Sprintf("%d,%d,%d", c.RGB[0], c.RGB[1], c.RGB[2])
	case format == palette.FormatRGB && c.Hex != nil:
		return fmt.Sprintf("#%06x", *c.Hex)
	case c.Alias != "":
		return c.Alias
	}
	return ""
}
