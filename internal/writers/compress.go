// internal/writers/compress.go
package writers

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Compression codecs accepted by --compress.
const (
	CodecNone = "none"
	CodecZstd = "zstd"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Compress wraps out in the named codec. Close flushes the codec's frame but
// never closes out itself.
func Compress(out io.Writer, codec string) (io.WriteCloser, error) {
	switch codec {
	case "", CodecNone:
		return nopCloser{out}, nil
	case CodecZstd:
		zw, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("unknown compression %q (want %s or %s)", codec, CodecNone, CodecZstd)
	}
}
