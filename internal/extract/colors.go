// Package extract walks the two fixed table layouts of the style guide:
// the column-wise color tables and the row-wise typographic scale table.
package extract

import (
	"fmt"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/cssvars/internal/palette"
)

// The color tables hold three colors side by side, stored column-wise:
// a color's name sits in its column's first cell and its values in the
// cells below. Between color columns sits a decorative separator column,
// so the data columns are nth-child 1, 3 and 5.
const colorSlots = 3

// MissingTableError reports that the fetched document does not contain the
// expected table element. Fatal for the pipeline run.
type MissingTableError struct {
	URL      string
	Selector string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("no %q element found in document %s", e.Selector, e.URL)
}

// Colors yields one palette.Color per populated color column of a single
// table. The sequence is lazy and restartable: each range re-walks the
// table snapshot from the start. A column whose cells cannot be classified
// is logged and skipped; extraction continues with the next column.
func Colors(table *goquery.Selection) iter.Seq[palette.Color] {
	return func(yield func(palette.Color) bool) {
		for slot := 1; slot <= colorSlots; slot++ {
			cells := table.Find(fmt.Sprintf("tr td:nth-child(%d)", 2*slot-1))
			if cells.Length() == 0 {
				continue
			}
			name := strings.TrimSpace(cells.First().Text())
			values := make([]string, 0, cells.Length()-1)
			for i := 1; i < cells.Length(); i++ {
				v := strings.TrimRight(cells.Eq(i).Text(), " \t\r\n")
				if v != "" {
					values = append(values, v)
				}
			}
			c, err := palette.Classify(name, values)
			if err != nil {
				log.Warn().Err(err).Int("column", slot).Msg("skipping unclassifiable color column")
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// AllColors concatenates Colors over every table in the selection,
// preserving document order and per-column order within each table.
func AllColors(tables *goquery.Selection) iter.Seq[palette.Color] {
	return func(yield func(palette.Color) bool) {
		for i := 0; i < tables.Length(); i++ {
			for c := range Colors(tables.Eq(i)) {
				if !yield(c) {
					return
				}
			}
		}
	}
}
