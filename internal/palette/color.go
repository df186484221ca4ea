// Package palette turns the free-text cell values of a style-guide color
// table into typed color records and renders them as CSS custom properties.
package palette

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color is one named color extracted from a style-guide table. Besides the
// name, every field is optional; classification guarantees that at least one
// of RGB or Hex is set.
type Color struct {
	Name string
	// Pantone holds the matched PMS text verbatim, e.g. "186 100%".
	Pantone string
	// RGB holds the three channel values. Out-of-range channels pass
	// through unchanged; the source tables are trusted.
	RGB *[3]int
	// Hex holds the numeric value of a six-digit hex code.
	Hex *uint32
	// Alias holds a "Same as ..." reference to another color, verbatim.
	Alias string
}

// Format selects the Render output form.
type Format string

const (
	FormatHex Format = "hex"
	FormatRGB Format = "rgb"
)

// InvalidColorError reports a color that could not be classified: the name
// was empty, or no value resolved to an RGB triple or hex code.
type InvalidColorError struct {
	Name   string
	Values []string
}

func (e *InvalidColorError) Error() string {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Sprintf("color has no name (values %q)", e.Values)
	}
	return fmt.Sprintf("color %q: no rgb or hex value in %q", e.Name, e.Values)
}

// FormatError reports an unsupported render format or a record that lacks
// the field backing the requested format.
type FormatError struct {
	Format Format
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("render %q: %s", string(e.Format), e.Reason)
}

// Classification patterns, tried in order; the first hit claims the value.
var (
	pantoneRe = regexp.MustCompile(`(?i)\d+\s+\d+%`)
	rgbRe     = regexp.MustCompile(`\d+, \d+, \d+`)
	hexRe     = regexp.MustCompile(`^(?i)[0-9a-f]{6}$`)
	aliasRe   = regexp.MustCompile(`(?i)Same as.*`)
)

// Classify builds a Color from a name and the raw cell texts of one table
// column. Each value is tested against the Pantone, RGB, hex and alias
// patterns in that order; the first match claims the value and later
// patterns never see it. Values matching nothing are dropped silently.
// Returns *InvalidColorError when the name is empty or neither an RGB
// triple nor a hex code was found.
func Classify(name string, values []string) (Color, error) {
	c := Color{Name: name}
	if strings.TrimSpace(name) == "" {
		return Color{}, &InvalidColorError{Name: name, Values: values}
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		switch {
		case pantoneRe.MatchString(v):
			c.Pantone = pantoneRe.FindString(v)
		case rgbRe.MatchString(v):
			parts := strings.Split(rgbRe.FindString(v), ", ")
			var ch [3]int
			for i, p := range parts {
				n, err := strconv.Atoi(p)
				if err != nil {
					// unreachable: the pattern admits digits only
					continue
				}
				ch[i] = n
			}
			c.RGB = &ch
		case hexRe.MatchString(v):
			n, err := strconv.ParseUint(v, 16, 32)
			if err == nil {
				h := uint32(n)
				c.Hex = &h
			}
		case aliasRe.MatchString(v):
			c.Alias = aliasRe.FindString(v)
		}
	}
	if c.RGB == nil && c.Hex == nil {
		return Color{}, &InvalidColorError{Name: name, Values: values}
	}
	return c, nil
}

// VariableName derives a CSS custom property name: lower-cased, spaces
// become hyphens, "%" becomes "-percent", prefixed with "--".
func VariableName(name string) string {
	v := strings.ToLower(name)
	v = strings.ReplaceAll(v, " ", "-")
	v = strings.ReplaceAll(v, "%", "-percent")
	return "--" + v
}

// CSSVariableName returns the custom property name for this color.
func (c Color) CSSVariableName() string {
	return VariableName(c.Name)
}

// Render serializes the color as one CSS declaration, e.g.
// "--primary-blue: #aabbcc;". Hex output is zero-padded to six digits so
// codes like 00ff00 survive the numeric round trip. Returns *FormatError
// when the format is unknown or its backing field is absent.
func (c Color) Render(format Format) (string, error) {
	switch format {
	case FormatHex:
		if c.Hex == nil {
			return "", &FormatError{Format: format, Reason: fmt.Sprintf("color %q has no hex value", c.Name)}
		}
		return fmt.Sprintf("%s: #%06x;", c.CSSVariableName(), *c.Hex), nil
	case FormatRGB:
		if c.RGB == nil {
			return "", &FormatError{Format: format, Reason: fmt.Sprintf("color %q has no rgb value", c.Name)}
		}
		return fmt.Sprintf("%s: rgb(%d,%d,%d);", c.CSSVariableName(), c.RGB[0], c.RGB[1], c.RGB[2]), nil
	default:
		return "", &FormatError{Format: format, Reason: "unknown format"}
	}
}
