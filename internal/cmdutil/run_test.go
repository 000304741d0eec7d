package cmdutil

import (
	"context"
	"errors"
	"testing"
)

func TestRunStreamSendsAll(t *testing.T) {
	ch := make(chan int, 8)
	n, err := RunStream(context.Background(), func(emit func(int) error) error {
		for i := 0; i < 5; i++ {
			if err := emit(i); err != nil {
				return err
			}
		}
		return nil
	}, ch)
	close(ch)
	if err != nil || n != 5 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	sum := 0
	for v := range ch {
		sum += v
	}
	if sum != 10 {
		t.Fatalf("sum = %d", sum)
	}
}

func TestRunStreamStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan int) // unbuffered and never read
	n, err := RunStream(ctx, func(emit func(int) error) error {
		cancel()
		return emit(1)
	}, ch)
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestRunStreamPropagatesProducerError(t *testing.T) {
	boom := errors.New("boom")
	ch := make(chan int, 1)
	n, err := RunStream(context.Background(), func(emit func(int) error) error {
		_ = emit(1)
		return boom
	}, ch)
	if !errors.Is(err, boom) || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}
