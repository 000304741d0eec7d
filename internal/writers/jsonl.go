// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"morphogen/internal/jsonlutil"
	"morphogen/pkg/api"
)

// StartOrganismJSONLWriter streams each organism as one JSON line (v1).
func StartOrganismJSONLWriter(out io.Writer, bufSize int) (chan<- api.OrganismV1, <-chan error) {
	return jsonlutil.Start[api.OrganismV1](out, bufSize,
		func(enc *json.Encoder, v api.OrganismV1) error {
			return enc.Encode(v)
		},
		IsBrokenPipe,
	)
}
