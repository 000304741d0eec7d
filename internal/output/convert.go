// internal/output/convert.go
package output

import (
	"fmt"
	"math/big"

	"morphogen-core/bitseq"
	"morphogen-core/feature"
	"morphogen-core/organism"
	"morphogen/internal/body"
	"morphogen/pkg/api"
)

// ToAPIOrganism converts a decoded organism to the stable wire schema (v1).
// Parameter values are copied so the wire value never aliases the organism.
func ToAPIOrganism(id string, o *organism.Organism) api.OrganismV1 {
	v := api.OrganismV1{
		ID:       id,
		Variant:  o.Variant().Name(),
		Features: make([]api.FeatureV1, 0, o.Len()),
		Dropped:  len(o.Drops()),
	}
	if g := o.Genome(); g != nil {
		v.Encoding = g.Encoding()
		v.Genome = g.String()
		if s, ok := g.(bitseq.Sequence); ok {
			v.Width = s.Width()
		}
	}
	for _, f := range o.Features() {
		v.Features = append(v.Features, ToAPIFeature(f))
	}
	return v
}

func ToAPIFeature(f feature.Instance) api.FeatureV1 {
	params := make(map[string]*big.Int, len(f.Params))
	for _, p := range f.Params {
		params[p.Name] = new(big.Int).Set(p.Value)
	}
	return api.FeatureV1{Kind: f.Kind, Parameters: params, Codon: f.Codon}
}

// ToAPIBody converts a blueprint; node indexes are implied by position.
func ToAPIBody(bp body.Blueprint) *api.BodyV1 {
	out := &api.BodyV1{Nodes: make([]api.NodeV1, 0, len(bp.Nodes))}
	for _, n := range bp.Nodes {
		out.Nodes = append(out.Nodes, api.NodeV1{Feature: n.Feature, Radius: n.Radius, Mass: n.Mass, Friction: n.Friction})
	}
	for _, l := range bp.Links {
		out.Links = append(out.Links, api.LinkV1{Feature: l.Feature, A: l.A, B: l.B})
	}
	for _, a := range bp.Appendages {
		out.Appendages = append(out.Appendages, api.AppendageV1{Feature: a.Feature, Node: a.Node})
	}
	return out
}

// FromAPIGenome rebuilds the genome a wire organism was decoded from, so
// emitted organisms can be checked by decoding them again.
// A missing width means bitseq.DefaultWidth.
func FromAPIGenome(w api.OrganismV1, a bitseq.Alphabet) (organism.Genome, error) {
	switch w.Encoding {
	case "", bitseq.EncodingBits:
		width := w.Width
		if width == 0 {
			width = bitseq.DefaultWidth
		}
		s, err := bitseq.New(w.Genome, width)
		if err != nil {
			return nil, err
		}
		return s, nil
	case bitseq.EncodingRNA:
		r, err := bitseq.ParseRNA(w.Genome, a)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("output: unknown genome encoding %q", w.Encoding)
	}
}

// FromAPIFeatures verifies wire output: it re-decodes every feature from its
// codon using the kinds of v and checks the result against the wire parameters.
func FromAPIFeatures(list []api.FeatureV1, v organism.Variant) ([]feature.Instance, error) {
	out := make([]feature.Instance, 0, len(list))
	for i, w := range list {
		k, ok := organism.KindOf(v, w.Kind)
		if !ok {
			return nil, fmt.Errorf("output: feature %d: kind %q not in variant %q", i, w.Kind, v.Name())
		}
		in, err := feature.Decode(k, w.Codon)
		if err != nil {
			return nil, fmt.Errorf("output: feature %d: %w", i, err)
		}
		for _, p := range in.Params {
			got, ok := w.Parameters[p.Name]
			if !ok || got.Cmp(p.Value) != 0 {
				return nil, fmt.Errorf("output: feature %d: parameter %s=%v does not match codon %s", i, p.Name, got, w.Codon)
			}
		}
		out = append(out, in)
	}
	return out, nil
}
