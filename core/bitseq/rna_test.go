package bitseq

import (
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

func mustRNA(t *testing.T, values ...int) *RNA {
	t.Helper()
	r, err := NewRNA(values, DefaultAlphabet)
	if err != nil {
		t.Fatalf("NewRNA: %v", err)
	}
	return r
}

func readAll(r *RNA) []string {
	var out []string
	for v := range r.Read() {
		out = append(out, v.String())
	}
	return out
}

func TestFindStartAfterThreeSeparators(t *testing.T) {
	r := mustRNA(t, 2, 7, 15, 15, 15, 3)
	// Index of the first element after the run (the 3), not the run's offset.
	start, ok := r.NewReader().FindStart()
	if !ok || start != 5 {
		t.Fatalf("FindStart = %d,%v want 5,true", start, ok)
	}
	// The trailing 3 has no separator after it, so it is never emitted.
	if got := readAll(r); len(got) != 0 {
		t.Fatalf("values = %v, want none", got)
	}
	tr := r.Scan()
	if tr.Stopped || tr.Pending != "3" {
		t.Fatalf("transcript = %+v", tr)
	}
}

func TestFindStartMissing(t *testing.T) {
	r := mustRNA(t, 15, 15, 1, 15, 15, 2, 10)
	if _, ok := r.NewReader().FindStart(); ok {
		t.Fatalf("start found without three separators in a row")
	}
	if got := readAll(r); len(got) != 0 {
		t.Fatalf("values = %v, want none", got)
	}
	if tr := r.Scan(); tr.Found {
		t.Fatalf("transcript found a start: %+v", tr)
	}
}

func TestReadToStop(t *testing.T) {
	r := mustRNA(t, 15, 15, 15, 1, 2, 10, 3, 11, 15, 15, 15, 4, 10)
	got := readAll(r)
	if strings.Join(got, ",") != "12,3" {
		t.Fatalf("values = %v, want [12 3]", got)
	}
	if tr := r.Scan(); !tr.Stopped || tr.Start != 3 {
		t.Fatalf("transcript = %+v", tr)
	}
}

func TestDigitResetsStopCount(t *testing.T) {
	r := mustRNA(t, 10, 10, 10, 15, 15, 4, 15, 15, 15)
	got := readAll(r)
	if strings.Join(got, ",") != "4" {
		t.Fatalf("values = %v, want [4]", got)
	}
	// 4 flushes on the first 15, leaving only two stops.
	if r.Scan().Stopped {
		t.Fatalf("stopped with only two trailing stop markers")
	}
}

func TestPlainSeparatorDoesNotResetStops(t *testing.T) {
	r := mustRNA(t, 12, 12, 12, 15, 12, 15, 15, 5, 10)
	if got := readAll(r); len(got) != 0 {
		t.Fatalf("values = %v, want none (stopped before 5)", got)
	}
	if !r.Scan().Stopped {
		t.Fatalf("expected stop")
	}
}

func TestArbitraryPrecisionAndLeadingZeros(t *testing.T) {
	vals := []int{10, 10, 10}
	for i := 0; i < 25; i++ {
		vals = append(vals, 9)
	}
	vals = append(vals, 10, 0, 0, 7, 10)
	got := readAll(mustRNA(t, vals...))
	if len(got) != 2 || got[0] != strings.Repeat("9", 25) || got[1] != "7" {
		t.Fatalf("values = %v", got)
	}
}

func TestReaderIsSinglePass(t *testing.T) {
	r := mustRNA(t, 10, 10, 10, 5, 10, 6, 10)
	rd := r.NewReader()
	if _, ok := rd.FindStart(); !ok || rd.Pos() != 3 {
		t.Fatalf("no start (pos %d)", rd.Pos())
	}
	n := 0
	for range rd.Values() {
		n++
	}
	if n != 2 || rd.Pos() != r.Len() {
		t.Fatalf("first pass read %d values ending at %d, want 2 at %d", n, rd.Pos(), r.Len())
	}
	for range rd.Values() {
		t.Fatal("drained reader yielded again")
	}
	// A fresh read starts over.
	if got := readAll(r); len(got) != 2 {
		t.Fatalf("fresh read = %v", got)
	}
}

func TestCodonsAreSealedBinary(t *testing.T) {
	r := mustRNA(t, 10, 10, 10, 6, 3, 11)
	var got []Codon
	for c := range r.Codons() {
		got = append(got, c)
	}
	if len(got) != 1 || got[0].Bits != big.NewInt(63).Text(2) || !got[0].Sealed {
		t.Fatalf("codons = %+v", got)
	}
}

func TestRandomRNAEndsInStops(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		r, err := RandomRNA(rng, 64, DefaultAlphabet)
		if err != nil {
			t.Fatal(err)
		}
		v := r.Values()
		if len(v) != 64 {
			t.Fatalf("len = %d", len(v))
		}
		for j, x := range v {
			if x < 0 || x > 15 {
				t.Fatalf("value %d out of range at %d", x, j)
			}
		}
		for _, x := range v[len(v)-10:] {
			if x != 15 {
				t.Fatalf("tail not forced to stop: %v", v)
			}
		}
	}
}

func TestRandomRNASmallCount(t *testing.T) {
	r, err := RandomRNA(rand.New(rand.NewSource(1)), 4, DefaultAlphabet)
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "15,15,15,15" {
		t.Fatalf("got %s", r.String())
	}
}

func TestParseRNA(t *testing.T) {
	r, err := ParseRNA("15, 15,15,3", DefaultAlphabet)
	if err != nil || r.Len() != 4 || r.String() != "15,15,15,3" {
		t.Fatalf("ParseRNA = %v, %v", r, err)
	}
	if _, err := ParseRNA("1,16", DefaultAlphabet); err == nil {
		t.Fatalf("out-of-range value accepted")
	}
	if _, err := ParseRNA("1,x", DefaultAlphabet); err == nil {
		t.Fatalf("non-numeric value accepted")
	}
}

func TestAlphabetValidate(t *testing.T) {
	bad := []Alphabet{
		{Width: 0, MaxNumeric: 0, StopsNeeded: 1, StartRun: 1},
		{Width: 4, MaxNumeric: 15, StopsNeeded: 1, StartRun: 1},
		{Width: 4, MaxNumeric: 9, StopsNeeded: 0, StartRun: 3},
		{Width: 4, MaxNumeric: 9, StopsNeeded: 3, StartRun: 0},
	}
	for _, a := range bad {
		if err := a.Validate(); err == nil {
			t.Errorf("alphabet %+v accepted", a)
		}
	}
	if err := DefaultAlphabet.Validate(); err != nil {
		t.Fatalf("default alphabet: %v", err)
	}
}
