// Package renderer turns ledger reports into markdown strings for the CLI
// and the assistant.
package renderer

import (
	"fmt"
	"strings"
)

// mdRenderer accumulates markdown output.
type mdRenderer struct {
	*strings.Builder
}

func newRenderer() *mdRenderer { return &mdRenderer{Builder: &strings.Builder{}} }

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}
