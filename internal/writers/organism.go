// internal/writers/organism.go
package writers

import (
	"io"

	"morphogen/internal/output"
	"morphogen/pkg/api"
)

func init() {
	// JSON array
	RegisterOrganism(output.FormatJSON, func(w io.Writer, in <-chan api.OrganismV1) error {
		list := make([]api.OrganismV1, 0, 16)
		for v := range in {
			list = append(list, v)
		}
		return output.WriteJSON(w, list)
	})

	// JSONL streaming
	RegisterOrganism(output.FormatJSONL, func(w io.Writer, in <-chan api.OrganismV1) error {
		pipe, done := StartOrganismJSONLWriter(w, 64)
		for v := range in {
			pipe <- v
		}
		close(pipe)
		return <-done
	})

	// TEXT blocks, streamed
	RegisterOrganism(output.FormatText, func(w io.Writer, in <-chan api.OrganismV1) error {
		for v := range in {
			if err := output.WriteText(w, v); err != nil {
				drain(in)
				return err
			}
		}
		return nil
	})
}

// StartOrganismWriter spins up a writer goroutine for the given format.
// Close the returned channel, then read exactly one error from the other.
// The input is always drained, so senders never block on a failed writer.
func StartOrganismWriter(out io.Writer, format string, bufSize int) (chan<- api.OrganismV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.OrganismV1, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteOrganisms(format, out, in)
		drain(in)
		errCh <- err
	}()
	return in, errCh
}

func drain[T any](ch <-chan T) {
	for range ch {
	}
}
