// core/organism/organism.go
package organism

import (
	"errors"
	"fmt"

	"morphogen-core/feature"
)

// Options selects one of the two construction paths: decode Genome, or keep
// Features verbatim. Genome wins when both are set.
type Options struct {
	Genome   Genome
	Features []feature.Instance
	Variant  Variant // nil means Plain
	Logger   Logger

	// NoExtend treats every unit as a complete codon (plain fixed-width reading).
	NoExtend bool
}

// Organism is an ordered, immutable list of features.
type Organism struct {
	variant  Variant
	genome   Genome
	features []feature.Instance
	drops    []Drop
}

// New builds an organism. The only errors are configuration errors; codons
// that cannot be decoded are dropped and reported through Drops and the logger.
func New(o Options) (*Organism, error) {
	v := o.Variant
	if v == nil {
		v = Plain
	}
	log := o.Logger
	if log == nil {
		log = NopLogger{}
	}

	switch {
	case o.Genome != nil:
		if err := ValidateVariant(v); err != nil {
			return nil, err
		}
		if len(o.Features) > 0 {
			log.Warnf("both genome and %d features given; decoding the genome", len(o.Features))
		}
		b := newBuilder(v.Kinds(), !o.NoExtend, log)
		b.run(o.Genome)
		b.diagnose(o.Genome)
		return &Organism{variant: v, genome: o.Genome, features: b.features, drops: b.drops}, nil

	case len(o.Features) > 0:
		return &Organism{variant: v, features: append([]feature.Instance(nil), o.Features...)}, nil

	default:
		return nil, &ConfigurationError{Err: ErrNoSource}
	}
}

// ValidateVariant checks that v can drive a decode: at least one kind, and
// every kind valid. Failures are *ConfigurationError.
func ValidateVariant(v Variant) error {
	kinds := v.Kinds()
	if len(kinds) == 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("variant %q declares no feature kinds", v.Name())}
	}
	for _, k := range kinds {
		if err := k.Validate(); err != nil {
			return &ConfigurationError{Reason: "variant " + v.Name(), Err: err}
		}
	}
	return nil
}

// Decode is New with a genome; it cannot fail for a valid variant.
func Decode(g Genome, v Variant, log Logger) (*Organism, error) {
	if g == nil {
		return nil, &ConfigurationError{Err: ErrNoSource}
	}
	return New(Options{Genome: g, Variant: v, Logger: log})
}

// IsConfigurationError reports whether err came from invalid construction options.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func (o *Organism) Variant() Variant { return o.variant }

// Genome is nil for organisms built from an explicit feature list.
func (o *Organism) Genome() Genome { return o.genome }

// Features returns the features in decode order.
func (o *Organism) Features() []feature.Instance {
	return append([]feature.Instance(nil), o.features...)
}

func (o *Organism) Len() int { return len(o.features) }

// Drops lists codons skipped for lack of entropy (or malformed bits).
func (o *Organism) Drops() []Drop { return append([]Drop(nil), o.drops...) }

// Kind resolves the declaration behind an instance.
func (o *Organism) Kind(in feature.Instance) (feature.Kind, bool) {
	return KindOf(o.variant, in.Kind)
}

// Codons returns the source codon of every feature, in order.
func (o *Organism) Codons() []string {
	out := make([]string, len(o.features))
	for i, f := range o.features {
		out[i] = f.Codon
	}
	return out
}
