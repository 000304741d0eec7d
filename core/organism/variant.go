// core/organism/variant.go
package organism

import "morphogen-core/feature"

// Variant supplies the ordered feature kinds an organism cycles through.
type Variant interface {
	Name() string
	Kinds() []feature.Kind
}

type variant struct {
	name  string
	kinds []feature.Kind
}

// NewVariant declares a variant; kinds are copied.
func NewVariant(name string, kinds ...feature.Kind) Variant {
	return variant{name: name, kinds: append([]feature.Kind(nil), kinds...)}
}

func (v variant) Name() string { return v.name }

func (v variant) Kinds() []feature.Kind { return append([]feature.Kind(nil), v.kinds...) }

var (
	// Plain alternates Node-Muscle-Node-Muscle...
	Plain = NewVariant("creature", feature.Node, feature.Muscle)
	// Swimmer cycles Node-Flagellum-Muscle.
	Swimmer = NewVariant("swimmer", feature.Node, feature.Flagellum, feature.Muscle)
)

// KindOf looks a kind up by name within v.
func KindOf(v Variant, name string) (feature.Kind, bool) {
	for _, k := range v.Kinds() {
		if k.Name == name {
			return k, true
		}
	}
	return feature.Kind{}, false
}
