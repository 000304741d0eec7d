// core/organism/builder.go
package organism

import (
	"iter"
	"strings"

	"morphogen-core/bitseq"
	"morphogen-core/feature"
)

// Genome is any codon source: a bitseq.Sequence or a *bitseq.RNA.
type Genome interface {
	Codons() iter.Seq[bitseq.Codon]
	Encoding() string
	String() string
}

// Drop records a codon that could not be turned into a feature.
type Drop struct {
	Position int // index among finalized codons
	Kind     string
	Codon    string
	Err      error
}

// builder owns one decode: the accumulator and the kind cursor.
type builder struct {
	kinds  []feature.Kind
	next   int
	extend bool
	log    Logger

	finalized int
	features  []feature.Instance
	drops     []Drop
}

func newBuilder(kinds []feature.Kind, extend bool, log Logger) *builder {
	if log == nil {
		log = NopLogger{}
	}
	return &builder{kinds: kinds, extend: extend, log: log}
}

// run reads every codon of g. A unit ending in 1 asks for the next unit to be
// appended to the same feature codon; anything left over at the end is
// finalized as one more feature.
func (b *builder) run(g Genome) {
	var acc strings.Builder
	for c := range g.Codons() {
		acc.WriteString(c.Bits)
		if b.extend && !c.Sealed && strings.HasSuffix(c.Bits, "1") {
			continue
		}
		b.finalize(acc.String())
		acc.Reset()
	}
	if acc.Len() > 0 {
		b.finalize(acc.String())
	}
}

// finalize decodes codon as the current kind. The cursor only moves on
// success, so a dropped codon's kind is retried with the next one.
func (b *builder) finalize(codon string) {
	pos := b.finalized
	b.finalized++

	k := b.kinds[b.next]
	inst, err := feature.Decode(k, codon)
	if err != nil {
		b.drops = append(b.drops, Drop{Position: pos, Kind: k.Name, Codon: codon, Err: err})
		b.log.Warnf("dropping codon %d (%s) for %s: %v", pos, codon, k.Name, err)
		return
	}
	b.next = (b.next + 1) % len(b.kinds)
	b.features = append(b.features, inst)
	b.log.Debugf("%s from %s: %s", k.Name, codon, inst)
}

// diagnose reports silent degradation of an RNA read.
func (b *builder) diagnose(g Genome) {
	r, ok := g.(interface{ Scan() bitseq.Transcript })
	if !ok {
		return
	}
	t := r.Scan()
	switch {
	case !t.Found:
		b.log.Debugf("rna: no start marker found; nothing decoded")
	case !t.Stopped:
		b.log.Debugf("rna: no stop found after %d values", len(t.Values))
	}
	if t.Pending != "" {
		b.log.Debugf("rna: discarding unterminated digits %q at end of input", t.Pending)
	}
}
