package cmdutil

import "context"

// RunStream runs produce and forwards every emitted value to send.
// It returns the number of values sent and the first error encountered;
// once ctx is done, emit fails with ctx.Err().
func RunStream[T any](
	ctx context.Context,
	produce func(emit func(T) error) error,
	send chan<- T,
) (int, error) {
	total := 0
	err := produce(func(v T) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case send <- v:
			total++
			return nil
		}
	})
	return total, err
}
