package app

import "time"

// Default source pages: sub-paths of the style-guide documentation root.
const (
	DefaultColorsURL = "https://styleguide.hyperify.io/foundations/colors"
	DefaultScaleURL  = "https://styleguide.hyperify.io/foundations/typography"
	DefaultUserAgent = "cssvars/1.0 (+https://github.com/hyperifyio/cssvars)"
)

// DefaultTimeout is the -timeout flag default; the config overlays treat a
// Config still carrying it as "not explicitly set".
const DefaultTimeout = 30 * time.Second

// Config holds runtime configuration for the application.
type Config struct {
	// Sources
	ColorsURL string
	ScaleURL  string

	// Pipeline selection: "colors", "scale" or "all".
	Only string

	// Color serialization: "hex" or "rgb".
	Format string

	// Document loading: "auto", "browser" or "static".
	Render string

	// Fetch
	UserAgent string
	Timeout   time.Duration

	// Behavior
	OutputPath string // "-" writes to stdout
	Verbose    bool
}
