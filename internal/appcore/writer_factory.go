package appcore

import (
	"io"

	"morphogen/internal/writers"
	"morphogen/pkg/api"
)

type WriterFactory interface {
	Start(out io.Writer, bufSize int) (chan<- api.OrganismV1, <-chan error)
}

// OrganismWriterFactory writes Format through the Compress codec. The codec
// frame is closed once the writer is done; out itself is left open.
type OrganismWriterFactory struct {
	Format   string
	Compress string
}

func NewOrganismWriterFactory(format, compress string) OrganismWriterFactory {
	return OrganismWriterFactory{Format: format, Compress: compress}
}

func (f OrganismWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.OrganismV1, <-chan error) {
	errCh := make(chan error, 1)
	zw, err := writers.Compress(out, f.Compress)
	if err != nil {
		in := make(chan api.OrganismV1, bufSize)
		go func() {
			for range in {
			}
			errCh <- err
		}()
		return in, errCh
	}
	in, done := writers.StartOrganismWriter(zw, f.Format, bufSize)
	go func() {
		err := <-done
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
		errCh <- err
	}()
	return in, errCh
}
