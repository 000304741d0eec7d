// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"morphogen/pkg/api"
)

// WriteText prints one tab-separated block per organism:
//
//	# organism <id> variant=<v> encoding=<e> features=<n> dropped=<d>
//	genome	<genome>
//	feature	<i>	<kind>	<name=value ...>	<codon>
//	node	<i>	feature=<f> radius=<r> mass=<m> friction=<fr>
//	link	<feature>	<a>-<b>
//	appendage	<feature>	node=<n>
//
// Parameters are listed by name. A blank line ends the block.
func WriteText(w io.Writer, v api.OrganismV1) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# organism %s variant=%s encoding=%s", orDash(v.ID), orDash(v.Variant), orDash(v.Encoding))
	if v.Width > 0 {
		fmt.Fprintf(&b, " width=%d", v.Width)
	}
	fmt.Fprintf(&b, " features=%d dropped=%d\n", len(v.Features), v.Dropped)
	if v.Genome != "" {
		fmt.Fprintf(&b, "genome\t%s\n", v.Genome)
	}
	for i, f := range v.Features {
		fmt.Fprintf(&b, "feature\t%d\t%s\t%s\t%s\n", i, f.Kind, params(f), f.Codon)
	}
	if v.Body != nil {
		for i, n := range v.Body.Nodes {
			fmt.Fprintf(&b, "node\t%d\tfeature=%d radius=%d mass=%d friction=%d\n", i, n.Feature, n.Radius, n.Mass, n.Friction)
		}
		for _, l := range v.Body.Links {
			fmt.Fprintf(&b, "link\t%d\t%d-%d\n", l.Feature, l.A, l.B)
		}
		for _, a := range v.Body.Appendages {
			fmt.Fprintf(&b, "appendage\t%d\tnode=%d\n", a.Feature, a.Node)
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func params(f api.FeatureV1) string {
	names := slices.Sorted(maps.Keys(f.Parameters))
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + "=" + f.Parameters[n].String()
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
