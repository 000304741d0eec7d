// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"morphogen/pkg/api"
)

// OrganismWriters maps a format to a handler that consumes the whole stream.
// Register in init() blocks; last registration wins.
var OrganismWriters = map[string]func(w io.Writer, in <-chan api.OrganismV1) error{}

func RegisterOrganism(format string, fn func(io.Writer, <-chan api.OrganismV1) error) {
	OrganismWriters[format] = fn
}

// WriteOrganisms dispatches to the registered writer for format.
func WriteOrganisms(format string, w io.Writer, in <-chan api.OrganismV1) error {
	fn, ok := OrganismWriters[format]
	if !ok {
		return fmt.Errorf("unknown organism format %q (no writer registered)", format)
	}
	return fn(w, in)
}

// Formats lists the registered format names.
func Formats() []string {
	out := make([]string, 0, len(OrganismWriters))
	for k := range OrganismWriters {
		out = append(out, k)
	}
	return out
}
