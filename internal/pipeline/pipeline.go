// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"iter"
	"runtime"
	"sync"
)

// Config controls the worker pool.
type Config struct {
	Threads int // worker goroutines; <1 means runtime.NumCPU()
}

type job[In any] struct {
	seq int
	v   In
}

type result[Out any] struct {
	seq int
	v   Out
	err error
}

// Run feeds every item of source to work on cfg.Threads goroutines and calls
// visit with the results in source order. A source error stops feeding.
// It returns the first error in source order (from source, work or visit),
// or the context's error if ctx ends first.
func Run[In, Out any](
	ctx context.Context,
	cfg Config,
	source iter.Seq2[In, error],
	work func(In) (Out, error),
	visit func(Out) error,
) error {
	threads := cfg.Threads
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job[In], threads*2)
	results := make(chan result[Out], threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					out, err := work(j.v)
					select {
					case results <- result[Out]{seq: j.seq, v: out, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: reorders by sequence number.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]result[Out])
		next := 0
		for r := range results {
			if cerr != nil {
				continue
			}
			pending[r.seq] = r
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if p.err == nil {
					p.err = visit(p.v)
				}
				if p.err != nil {
					cerr = p.err
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
	var ferr error
	seq := 0
feed:
	for v, err := range source {
		if err != nil {
			ferr = err
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job[In]{seq: seq, v: v}:
			seq++
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	switch {
	case cerr != nil:
		return cerr
	case ferr != nil:
		return ferr
	default:
		return parent.Err()
	}
}
