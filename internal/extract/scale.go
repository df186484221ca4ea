package extract

import (
	"iter"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// Increment is one row of the typographic scale table. All fields are the
// raw cell text; no further typing is applied.
type Increment struct {
	Base      string
	Name      string
	PixelSize string
	RemSize   string
}

const incrementNamePattern = `^Base(-\d+)?$`

// Scales yields one Increment per well-formed body row of the scale table.
// The header row is always skipped. Rows with fewer than four non-empty
// cells, or an increment name that does not match "Base" / "Base-<digits>"
// (case-sensitive), are logged to the error stream and skipped. The
// sequence is lazy and restartable; each pass compiles a fresh matcher so
// no match state leaks between passes.
func Scales(table *goquery.Selection) iter.Seq[Increment] {
	return func(yield func(Increment) bool) {
		nameRe := regexp.MustCompile(incrementNamePattern)
		rows := table.Find("tr")
		for i := 1; i < rows.Length(); i++ {
			cells := rowCells(rows.Eq(i))
			if len(cells) < 4 {
				log.Warn().Int("row", i).Int("cells", len(cells)).Strs("content", cells).
					Msg("skipping scale row: expected 4 non-empty cells")
				continue
			}
			if !nameRe.MatchString(cells[1]) {
				log.Warn().Int("row", i).Str("name", cells[1]).Str("pattern", incrementNamePattern).
					Msg("skipping scale row: increment name does not match pattern")
				continue
			}
			inc := Increment{Base: cells[0], Name: cells[1], PixelSize: cells[2], RemSize: cells[3]}
			if !yield(inc) {
				return
			}
		}
	}
}

// rowCells collects the trimmed text of a row's cells, dropping empties.
// Filtering here is what makes the four-cell check sufficient: the first
// four collected cells are non-empty by construction.
func rowCells(row *goquery.Selection) []string {
	var out []string
	row.Find("td, th").Each(func(_ int, s *goquery.Selection) {
		if v := strings.TrimSpace(s.Text()); v != "" {
			out = append(out, v)
		}
	})
	return out
}
