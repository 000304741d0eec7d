package organism

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"morphogen-core/bitseq"
	"morphogen-core/feature"
)

type recordLogger struct {
	debug, warn []string
}

func (r *recordLogger) Debugf(f string, v ...any) { r.debug = append(r.debug, fmt.Sprintf(f, v...)) }
func (r *recordLogger) Infof(string, ...any)      {}
func (r *recordLogger) Warnf(f string, v ...any)  { r.warn = append(r.warn, fmt.Sprintf(f, v...)) }
func (r *recordLogger) Errorf(string, ...any)     {}

func decode(t *testing.T, bits string, width int, v Variant) *Organism {
	t.Helper()
	o, err := Decode(bitseq.MustNew(bits, width), v, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return o
}

func kinds(o *Organism) []string {
	var out []string
	for _, f := range o.Features() {
		out = append(out, f.Kind)
	}
	return out
}

func TestExtensionCollapsesUnits(t *testing.T) {
	o := decode(t, "001101111010", 4, Plain)
	if o.Len() != 1 {
		t.Fatalf("features = %d, want 1", o.Len())
	}
	f := o.Features()[0]
	if f.Kind != "Node" || f.Codon != "001101111010" {
		t.Fatalf("feature = %+v", f)
	}
	if f.Int("radius") != 4 || f.Int("weight") != 8 || f.Int("friction") != 11 {
		t.Fatalf("params = %s", f)
	}
}

func TestDecodeRotation(t *testing.T) {
	o := decode(t, "011011101111001110101100", 4, Plain)
	wantCodons := []string{"0110", "1110", "111100111010", "1100"}
	if got := o.Codons(); !slices.Equal(got, wantCodons) {
		t.Fatalf("codons = %v, want %v", got, wantCodons)
	}
	if got := kinds(o); !slices.Equal(got, []string{"Node", "Muscle", "Node", "Muscle"}) {
		t.Fatalf("kinds = %v", got)
	}
}

func TestLeftoverIsFlushed(t *testing.T) {
	o := decode(t, "01101111", 4, Plain)
	if got := o.Codons(); !slices.Equal(got, []string{"0110", "1111"}) {
		t.Fatalf("codons = %v", got)
	}
	if got := kinds(o); !slices.Equal(got, []string{"Node", "Muscle"}) {
		t.Fatalf("kinds = %v", got)
	}
}

func TestEntropyDropKeepsCyclePosition(t *testing.T) {
	log := &recordLogger{}
	// Units of 2: "10" (dropped) | "11"+"10" | "01"+"10".
	o, err := New(Options{Genome: bitseq.MustNew("1011100110", 2), Logger: log})
	if err != nil {
		t.Fatal(err)
	}
	if got := kinds(o); !slices.Equal(got, []string{"Node", "Muscle"}) {
		t.Fatalf("kinds = %v, want [Node Muscle]", got)
	}
	if got := o.Codons(); !slices.Equal(got, []string{"1110", "0110"}) {
		t.Fatalf("codons = %v", got)
	}
	drops := o.Drops()
	if len(drops) != 1 || drops[0].Position != 0 || drops[0].Kind != "Node" || drops[0].Codon != "10" {
		t.Fatalf("drops = %+v", drops)
	}
	if !errors.Is(drops[0].Err, feature.ErrInsufficientEntropy) {
		t.Fatalf("drop reason = %v", drops[0].Err)
	}
	if len(log.warn) != 1 || !strings.Contains(log.warn[0], "10") {
		t.Fatalf("warnings = %v", log.warn)
	}
}

func TestSwimmerRotation(t *testing.T) {
	o := decode(t, "0000001001000110", 4, Swimmer)
	if got := kinds(o); !slices.Equal(got, []string{"Node", "Flagellum", "Muscle", "Node"}) {
		t.Fatalf("kinds = %v", got)
	}
	fl := o.Features()[1]
	if len(fl.Params) != 2 || fl.Int("strength") != 1 || fl.Int("length") != 3 {
		t.Fatalf("flagellum = %s", fl)
	}
}

func TestNoExtendReadsFixedWidth(t *testing.T) {
	o, err := New(Options{Genome: bitseq.MustNew("111100111010", 4), NoExtend: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := o.Codons(); !slices.Equal(got, []string{"1111", "0011", "1010"}) {
		t.Fatalf("codons = %v", got)
	}
}

func TestFeatureCountMatchesFinalizedCodons(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		g, err := bitseq.Random(rng, bitseq.DefaultRange, 8)
		if err != nil {
			t.Fatal(err)
		}
		o, err := New(Options{Genome: g, Variant: Swimmer, NoExtend: true})
		if err != nil {
			t.Fatal(err)
		}
		units := 0
		for range g.Units() {
			units++
		}
		if o.Len() != units || len(o.Drops()) != 0 {
			t.Fatalf("features=%d drops=%d units=%d", o.Len(), len(o.Drops()), units)
		}
		order := []string{"Node", "Flagellum", "Muscle"}
		for j, k := range kinds(o) {
			if k != order[j%3] {
				t.Fatalf("feature %d is %s, want %s", j, k, order[j%3])
			}
		}
	}
}

func TestParameterRange(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for i := 0; i < 100; i++ {
		g, _ := bitseq.Random(rng, bitseq.DefaultRange, 4)
		o, _ := Decode(g, Plain, nil)
		for _, f := range o.Features() {
			hi := new(big.Int).Lsh(big.NewInt(1), uint(len(f.Codon)/len(f.Params)))
			for _, p := range f.Params {
				if p.Value.Sign() <= 0 || p.Value.Cmp(hi) > 0 {
					t.Fatalf("%s=%s outside [1,%s] for codon %s", p.Name, p.Value, hi, f.Codon)
				}
			}
		}
	}
}

func TestDecodeRNA(t *testing.T) {
	r, err := bitseq.NewRNA([]int{10, 10, 10, 6, 3, 11, 7, 12, 15, 15, 15}, bitseq.DefaultAlphabet)
	if err != nil {
		t.Fatal(err)
	}
	o, err := Decode(r, Plain, nil)
	if err != nil {
		t.Fatal(err)
	}
	// 63 = 111111 is sealed: no extension despite the trailing 1.
	if got := o.Codons(); !slices.Equal(got, []string{"111111", "111"}) {
		t.Fatalf("codons = %v", got)
	}
	if got := kinds(o); !slices.Equal(got, []string{"Node", "Muscle"}) {
		t.Fatalf("kinds = %v", got)
	}
}

func TestDecodeRNAUnterminatedIsSilent(t *testing.T) {
	r, _ := bitseq.NewRNA([]int{2, 7, 15, 15, 15, 3}, bitseq.DefaultAlphabet)
	log := &recordLogger{}
	o, err := Decode(r, Plain, log)
	if err != nil {
		t.Fatalf("unterminated rna must not fail: %v", err)
	}
	if o.Len() != 0 || len(log.warn) != 0 {
		t.Fatalf("features=%d warnings=%v", o.Len(), log.warn)
	}
	joined := strings.Join(log.debug, "\n")
	if !strings.Contains(joined, "no stop") || !strings.Contains(joined, `"3"`) {
		t.Fatalf("debug log = %q", joined)
	}
}

func TestNewWithoutSource(t *testing.T) {
	_, err := New(Options{})
	if !errors.Is(err, ErrNoSource) || !IsConfigurationError(err) {
		t.Fatalf("want configuration error, got %v", err)
	}
	if _, err := Decode(nil, Plain, nil); !IsConfigurationError(err) {
		t.Fatalf("Decode(nil): %v", err)
	}
}

func TestNewFromFeatures(t *testing.T) {
	node, _ := feature.Decode(feature.Node, "010101")
	list := []feature.Instance{node}
	o, err := New(Options{Features: list})
	if err != nil {
		t.Fatal(err)
	}
	if o.Genome() != nil || o.Len() != 1 || o.Features()[0].Codon != "010101" {
		t.Fatalf("organism = %+v", o)
	}
	list[0].Codon = "mutated"
	if o.Features()[0].Codon != "010101" {
		t.Fatalf("feature list not copied")
	}
}

func TestGenomePreferredOverFeatures(t *testing.T) {
	node, _ := feature.Decode(feature.Node, "010101")
	log := &recordLogger{}
	o, err := New(Options{
		Genome:   bitseq.MustNew("0110", 4),
		Features: []feature.Instance{node, node},
		Logger:   log,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := o.Codons(); !slices.Equal(got, []string{"0110"}) {
		t.Fatalf("codons = %v", got)
	}
	if len(log.warn) != 1 {
		t.Fatalf("expected a warning about the ignored feature list, got %v", log.warn)
	}
}

func TestEmptyVariantRejected(t *testing.T) {
	_, err := New(Options{Genome: bitseq.MustNew("0110", 4), Variant: NewVariant("blob")})
	if !IsConfigurationError(err) {
		t.Fatalf("want configuration error, got %v", err)
	}
	bad := NewVariant("bad", feature.Kind{Name: "Spike", Role: feature.RoleNode})
	if _, err := New(Options{Genome: bitseq.MustNew("0110", 4), Variant: bad}); !IsConfigurationError(err) {
		t.Fatalf("want configuration error for slotless kind, got %v", err)
	}
}

func TestKindOf(t *testing.T) {
	o := decode(t, "01100110", 4, Swimmer)
	k, ok := o.Kind(o.Features()[1])
	if !ok || k.Role != feature.RoleAppendage {
		t.Fatalf("kind = %+v, %v", k, ok)
	}
}
