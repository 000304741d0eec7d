// internal/output/json.go
package output

import (
	"io"

	"morphogen/internal/jsonutil"
	"morphogen/pkg/api"
)

// WriteJSON writes a single JSON array of v1 organisms (pretty-indented).
func WriteJSON(w io.Writer, list []api.OrganismV1) error {
	if list == nil {
		list = []api.OrganismV1{}
	}
	return jsonutil.EncodePretty(w, list)
}
