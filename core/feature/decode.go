// core/feature/decode.go
package feature

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

var (
	// ErrInsufficientEntropy: the codon has fewer bits than parameter slots.
	ErrInsufficientEntropy = errors.New("insufficient entropy")
	ErrMalformedCodon      = errors.New("malformed codon")
)

// EntropyError reports a codon too short to give every slot at least one bit.
type EntropyError struct {
	Codon string
	Slots int
}

func (e *EntropyError) Error() string {
	return fmt.Sprintf("codon %q (%d bits) lacks sufficient entropy for %d values", e.Codon, len(e.Codon), e.Slots)
}

func (e *EntropyError) Is(target error) bool { return target == ErrInsufficientEntropy }

var one = big.NewInt(1)

// Split divides a binary codon into count equal groups of len(codon)/count
// bits (the remainder at the tail is dropped) and returns each group's
// value plus one.
func Split(codon string, count int) ([]*big.Int, error) {
	if count < 1 {
		return nil, fmt.Errorf("feature: slot count must be >= 1 (got %d)", count)
	}
	for i := 0; i < len(codon); i++ {
		if codon[i] != '0' && codon[i] != '1' {
			return nil, fmt.Errorf("%w: %q has %q at %d", ErrMalformedCodon, codon, codon[i], i+1)
		}
	}
	size := len(codon) / count
	if size == 0 {
		return nil, &EntropyError{Codon: codon, Slots: count}
	}
	out := make([]*big.Int, count)
	for i := range out {
		v, _ := new(big.Int).SetString(codon[i*size:(i+1)*size], 2)
		out[i] = v.Add(v, one)
	}
	return out, nil
}

// SplitInt is Split over the binary representation of v.
func SplitInt(v *big.Int, count int) ([]*big.Int, error) {
	if v == nil || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative or missing value", ErrMalformedCodon)
	}
	return Split(v.Text(2), count)
}

// Param is one named, decoded value.
type Param struct {
	Name  string
	Value *big.Int
}

// Instance is a decoded occurrence of a kind. Codon keeps the source bits.
type Instance struct {
	Kind   string
	Params []Param
	Codon  string
}

// Decode fills every slot of k from codon.
func Decode(k Kind, codon string) (Instance, error) {
	values, err := Split(codon, k.Count())
	if err != nil {
		return Instance{}, err
	}
	inst := Instance{Kind: k.Name, Codon: codon, Params: make([]Param, len(values))}
	for i, v := range values {
		inst.Params[i] = Param{Name: k.Slots[i], Value: v}
	}
	return inst, nil
}

// Value returns the named parameter.
func (in Instance) Value(name string) (*big.Int, bool) {
	for _, p := range in.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Int returns the named parameter clamped to the int range; 0 if absent.
func (in Instance) Int(name string) int {
	v, ok := in.Value(name)
	if !ok || v == nil {
		return 0
	}
	if !v.IsInt64() || v.Int64() > math.MaxInt {
		return math.MaxInt
	}
	return int(v.Int64())
}

func (in Instance) Map() map[string]*big.Int {
	m := make(map[string]*big.Int, len(in.Params))
	for _, p := range in.Params {
		m[p.Name] = p.Value
	}
	return m
}

func (in Instance) String() string {
	s := in.Kind + "{"
	for i, p := range in.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name + ": " + p.Value.String()
	}
	return s + "}"
}
