// Package css renders extracted records as a :root block of custom
// property declarations, ready to paste into a stylesheet.
package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is one line inside the :root block. Line is a complete
// "--name: value;" declaration; Comment, when set, is appended as a
// trailing /* ... */ comment.
type Declaration struct {
	Line    string
	Comment string
}

// WriteBlock writes the declarations wrapped in ":root { ... }" with tab
// indentation. An empty slice still produces the wrapper so the output is
// always valid CSS.
func WriteBlock(w io.Writer, decls []Declaration) error {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, d := range decls {
		b.WriteString("\t")
		b.WriteString(d.Line)
		if d.Comment != "" {
			b.WriteString(" /* ")
			b.WriteString(d.Comment)
			b.WriteString(" */")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write css: %w", err)
	}
	return nil
}
