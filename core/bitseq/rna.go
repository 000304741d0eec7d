// core/bitseq/rna.go
package bitseq

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"math/rand"
	"strconv"
	"strings"
)

// DefaultGeneCount is the number of values drawn by RandomRNA callers that
// have no preference.
const DefaultGeneCount = 256

// Alphabet describes how small integers are read in RNA mode.
// Values 0..MaxNumeric are digits; larger values are separators and the
// all-ones value (2^Width-1) is also a stop marker.
type Alphabet struct {
	Width       int // bits per value
	MaxNumeric  int
	StopsNeeded int // consecutive stop markers that end a message
	StartRun    int // consecutive separators that open a message
}

var DefaultAlphabet = Alphabet{Width: 4, MaxNumeric: 9, StopsNeeded: 3, StartRun: 3}

func (a Alphabet) Stop() int { return 1<<a.Width - 1 }
func (a Alphabet) IsSeparator(v int) bool { return v > a.MaxNumeric }
func (a Alphabet) IsStop(v int) bool { return v == a.Stop() }
func (a Alphabet) inRange(v int) bool { return v >= 0 && v <= a.Stop() }

func (a Alphabet) Validate() error {
	switch {
	case a.Width < 1 || a.Width > 16:
		return fmt.Errorf("bitseq: rna width must be in [1,16] (got %d)", a.Width)
	case a.MaxNumeric < 0 || a.MaxNumeric >= a.Stop():
		return fmt.Errorf("bitseq: max numeric value %d must be in [0,%d)", a.MaxNumeric, a.Stop())
	case a.StopsNeeded < 1:
		return errors.New("bitseq: stops needed must be >= 1")
	case a.StartRun < 1:
		return errors.New("bitseq: start run must be >= 1")
	}
	return nil
}

// RNA is a sequence of small integers scanned for start and stop markers.
type RNA struct {
	values []int
	alpha  Alphabet
}

func NewRNA(values []int, a Alphabet) (*RNA, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	for i, v := range values {
		if !a.inRange(v) {
			return nil, fmt.Errorf("bitseq: value %d at %d outside [0,%d]", v, i+1, a.Stop())
		}
	}
	return &RNA{values: append([]int(nil), values...), alpha: a}, nil
}

// ParseRNA reads comma-separated decimal values.
func ParseRNA(s string, a Alphabet) (*RNA, error) {
	var values []int
	for i, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bitseq: bad rna value %q at %d: %w", f, i+1, err)
		}
		values = append(values, v)
	}
	return NewRNA(values, a)
}

// RandomRNA draws count values and forces the last 10..20 of them to the
// stop marker so that a read always terminates once started.
func RandomRNA(rng *rand.Rand, count int, a Alphabet) (*RNA, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("bitseq: gene count must be >= 1 (got %d)", count)
	}
	values := make([]int, count)
	for i := range values {
		values[i] = rng.Intn(a.Stop() + 1)
	}
	tail := 10 + rng.Intn(11)
	if tail > count {
		tail = count
	}
	for i := count - tail; i < count; i++ {
		values[i] = a.Stop()
	}
	return &RNA{values: values, alpha: a}, nil
}

func (r *RNA) Values() []int { return append([]int(nil), r.values...) }
func (r *RNA) Alphabet() Alphabet { return r.alpha }
func (r *RNA) Len() int { return len(r.values) }
func (r *RNA) Encoding() string { return EncodingRNA }

func (r *RNA) String() string {
	var b strings.Builder
	for i, v := range r.values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// NewReader opens a single-pass cursor at the first value.
func (r *RNA) NewReader() *Reader {
	return &Reader{values: r.values, alpha: r.alpha}
}

// Read locates the start marker and yields every decoded integer up to the
// stop run. Each call reads from the beginning with a fresh cursor.
func (r *RNA) Read() iter.Seq[*big.Int] {
	return func(yield func(*big.Int) bool) {
		rd := r.NewReader()
		if _, ok := rd.FindStart(); !ok {
			return
		}
		for v := range rd.Values() {
			if !yield(v) {
				return
			}
		}
	}
}

// Codons yields each decoded integer in binary as a sealed codon.
func (r *RNA) Codons() iter.Seq[Codon] {
	return func(yield func(Codon) bool) {
		for v := range r.Read() {
			if !yield(Codon{Bits: v.Text(2), Sealed: true}) {
				return
			}
		}
	}
}

// Transcript summarizes one complete read.
type Transcript struct {
	Start   int // index of the first value after the start run
	Found   bool
	Values  []*big.Int
	Stopped bool
	Pending string // digits dropped at end of input with no separator after them
}

func (r *RNA) Scan() Transcript {
	rd := r.NewReader()
	var t Transcript
	t.Start, t.Found = rd.FindStart()
	if !t.Found {
		return t
	}
	for v := range rd.Values() {
		t.Values = append(t.Values, v)
	}
	t.Stopped = rd.Stopped()
	t.Pending = rd.Pending()
	return t
}

// Reader is a forward-only cursor over an RNA sequence.
type Reader struct {
	values  []int
	alpha   Alphabet
	pos     int
	digits  []byte
	stops   int
	stopped bool
}

// FindStart consumes values through the StartRun-th consecutive separator and
// returns the index of the element after it.
func (rd *Reader) FindStart() (int, bool) {
	run := 0
	for rd.pos < len(rd.values) {
		v := rd.values[rd.pos]
		rd.pos++
		if rd.alpha.IsSeparator(v) {
			run++
		} else {
			run = 0
		}
		if run >= rd.alpha.StartRun {
			return rd.pos, true
		}
	}
	return rd.pos, false
}

// Next returns the next decoded integer. Numeric values accumulate as decimal
// digits and a separator flushes them; with nothing buffered, stop markers
// count toward StopsNeeded and any digit resets that count.
func (rd *Reader) Next() (*big.Int, bool) {
	for !rd.stopped && rd.pos < len(rd.values) {
		v := rd.values[rd.pos]
		rd.pos++

		if !rd.alpha.IsSeparator(v) {
			rd.stops = 0
			rd.digits = strconv.AppendInt(rd.digits, int64(v), 10)
			continue
		}
		if len(rd.digits) > 0 {
			n, _ := new(big.Int).SetString(string(rd.digits), 10)
			rd.digits = rd.digits[:0]
			rd.stops = 0
			return n, true
		}
		if rd.alpha.IsStop(v) {
			rd.stops++
			if rd.stops >= rd.alpha.StopsNeeded {
				rd.stopped = true
			}
		}
	}
	return nil, false
}

// Values drains the cursor.
func (rd *Reader) Values() iter.Seq[*big.Int] {
	return func(yield func(*big.Int) bool) {
		for {
			v, ok := rd.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Stopped reports whether the stop run was reached.
func (rd *Reader) Stopped() bool { return rd.stopped }

// Pending returns buffered digits not yet flushed by a separator.
func (rd *Reader) Pending() string { return string(rd.digits) }

// Pos is the index of the next value to be read.
func (rd *Reader) Pos() int { return rd.pos }
