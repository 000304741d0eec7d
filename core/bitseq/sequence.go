// core/bitseq/sequence.go
package bitseq

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"math/rand"
)

// DefaultWidth is the unit size (bits) used when none is configured.
const DefaultWidth = 4

// Genome encodings as reported by Encoding.
const (
	EncodingBits = "bits"
	EncodingRNA  = "rna"
)

// Range bounds a randomly synthesized genome: [2^MinExp, 2^MaxExp] inclusive.
type Range struct {
	MinExp uint
	MaxExp uint
}

// DefaultRange draws genomes between 31 and 64 bits long.
var DefaultRange = Range{MinExp: 31, MaxExp: 64}

// MaxExpLimit caps Range.MaxExp so a random genome stays a few KiB.
const MaxExpLimit = 4096

func (r Range) Validate() error {
	if r.MaxExp > MaxExpLimit {
		return fmt.Errorf("bitseq: max exponent %d exceeds %d", r.MaxExp, MaxExpLimit)
	}
	if r.MinExp > r.MaxExp {
		return fmt.Errorf("bitseq: min exponent %d exceeds max exponent %d", r.MinExp, r.MaxExp)
	}
	return nil
}

// Codon is one unit handed to the organism builder. Sealed codons are
// complete on their own and never extended by a trailing 1.
type Codon struct {
	Bits   string
	Sealed bool
}

// Sequence is an immutable big-endian bit string read in fixed-width units.
type Sequence struct {
	bits  string
	width int
}

// New validates bits (0/1 only, non-empty) and width (>= 1).
func New(bits string, width int) (Sequence, error) {
	if width < 1 {
		return Sequence{}, fmt.Errorf("bitseq: width must be >= 1 (got %d)", width)
	}
	if bits == "" {
		return Sequence{}, errors.New("bitseq: empty sequence")
	}
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return Sequence{}, fmt.Errorf("bitseq: invalid bit %q at %d", bits[i], i+1)
		}
	}
	return Sequence{bits: bits, width: width}, nil
}

// MustNew is New for literals in tests and defaults.
func MustNew(bits string, width int) Sequence {
	s, err := New(bits, width)
	if err != nil {
		panic(err)
	}
	return s
}

// FromInt wraps the minimal binary representation of n (zero is "0").
func FromInt(n *big.Int, width int) (Sequence, error) {
	if n == nil || n.Sign() < 0 {
		return Sequence{}, errors.New("bitseq: genome integer must be non-negative")
	}
	return New(n.Text(2), width)
}

// Random draws a uniform integer from r using rng and wraps it.
func Random(rng *rand.Rand, r Range, width int) (Sequence, error) {
	if err := r.Validate(); err != nil {
		return Sequence{}, err
	}
	one := big.NewInt(1)
	lo := new(big.Int).Lsh(one, r.MinExp)
	hi := new(big.Int).Lsh(one, r.MaxExp)
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, one)

	n := new(big.Int).Rand(rng, span)
	n.Add(n, lo)
	return FromInt(n, width)
}

func (s Sequence) Bits() string { return s.bits }
func (s Sequence) Width() int { return s.width }
func (s Sequence) Len() int { return len(s.bits) }
func (s Sequence) String() string { return s.bits }
func (s Sequence) Encoding() string { return EncodingBits }

// Int returns the genome as a number.
func (s Sequence) Int() *big.Int {
	n, _ := new(big.Int).SetString(s.bits, 2)
	return n
}

// Units splits the bits into width interleaved sub-streams (every width-th
// bit starting at offsets 0..width-1) and zips them back together, padding
// the shorter sub-streams with '0'. Each call starts over from the stored bits.
func (s Sequence) Units() iter.Seq[string] {
	return func(yield func(string) bool) {
		w := s.width
		if w < 1 || len(s.bits) == 0 {
			return
		}
		// Sub-stream x holds bits[x], bits[x+w], ...; the longest is x == 0.
		steps := (len(s.bits) + w - 1) / w
		unit := make([]byte, w)
		for i := 0; i < steps; i++ {
			for x := 0; x < w; x++ {
				if j := x + i*w; j < len(s.bits) {
					unit[x] = s.bits[j]
				} else {
					unit[x] = '0'
				}
			}
			if !yield(string(unit)) {
				return
			}
		}
	}
}

// Codons yields Units as extensible codons.
func (s Sequence) Codons() iter.Seq[Codon] {
	return func(yield func(Codon) bool) {
		for u := range s.Units() {
			if !yield(Codon{Bits: u}) {
				return
			}
		}
	}
}
