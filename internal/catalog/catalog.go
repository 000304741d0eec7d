// Package catalog loads feature kinds and organism variants from YAML.
// File entries are added to the built-ins; a file entry with a built-in's
// name replaces it.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"morphogen-core/feature"
	"morphogen-core/organism"
)

//go:embed catalog.schema.json
var schemaText string

const schemaURL = "https://morphogen.local/schemas/catalog.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaURL, schemaText)
})

// File is the on-disk layout.
type File struct {
	Kinds    []KindSpec    `yaml:"kinds"`
	Variants []VariantSpec `yaml:"variants"`
}

type KindSpec struct {
	Name      string   `yaml:"name"`
	Role      string   `yaml:"role"`
	Slots     []string `yaml:"slots"`
	Endpoints []string `yaml:"endpoints,omitempty"`
}

type VariantSpec struct {
	Name  string   `yaml:"name"`
	Kinds []string `yaml:"kinds"`
}

// Catalog resolves variant names for the decoder.
type Catalog struct {
	kinds    map[string]feature.Kind
	variants map[string]organism.Variant
}

// Default returns the built-in kinds (Node, Muscle, Flagellum) and variants
// (creature, swimmer).
func Default() *Catalog {
	c := &Catalog{kinds: map[string]feature.Kind{}, variants: map[string]organism.Variant{}}
	for _, k := range []feature.Kind{feature.Node, feature.Muscle, feature.Flagellum} {
		c.kinds[k.Name] = k
	}
	for _, v := range []organism.Variant{organism.Plain, organism.Swimmer} {
		c.variants[v.Name()] = v
	}
	return c
}

// Load reads a catalog file. An empty path yields Default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates raw YAML against the catalog schema, decodes it strictly and
// merges it over the defaults.
func Parse(raw []byte) (*Catalog, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return build(f)
}

func validateSchema(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	if doc == nil {
		// An empty document declares nothing.
		doc = map[string]any{}
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("yaml: not representable as JSON: %w", err)
	}
	d := json.NewDecoder(bytes.NewReader(js))
	d.UseNumber()
	var inst any
	if err := d.Decode(&inst); err != nil {
		return err
	}
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	if err := s.Validate(inst); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

func build(f File) (*Catalog, error) {
	c := Default()
	verr := &ValidationError{}

	seen := map[string]bool{}
	for i, ks := range f.Kinds {
		if seen[ks.Name] {
			verr.Add(fmt.Sprintf("kinds[%d]: duplicate kind %q", i, ks.Name))
			continue
		}
		seen[ks.Name] = true
		k := feature.Kind{Name: ks.Name, Slots: append([]string(nil), ks.Slots...), Role: feature.Role(ks.Role)}
		if len(ks.Endpoints) == 2 {
			k.Endpoints = [2]string{ks.Endpoints[0], ks.Endpoints[1]}
			if k.Role != feature.RoleConnector {
				verr.Add(fmt.Sprintf("kinds[%d]: endpoints only apply to connectors", i))
			}
		}
		if err := k.Validate(); err != nil {
			verr.Add(fmt.Sprintf("kinds[%d]: %v", i, err))
			continue
		}
		c.kinds[k.Name] = k
	}
	// Built-in variants pick up overridden kinds.
	for _, v := range []organism.Variant{organism.Plain, organism.Swimmer} {
		kinds := v.Kinds()
		for i := range kinds {
			kinds[i] = c.kinds[kinds[i].Name]
		}
		c.variants[v.Name()] = organism.NewVariant(v.Name(), kinds...)
	}

	seenV := map[string]bool{}
	for i, vs := range f.Variants {
		if seenV[vs.Name] {
			verr.Add(fmt.Sprintf("variants[%d]: duplicate variant %q", i, vs.Name))
			continue
		}
		seenV[vs.Name] = true
		kinds := make([]feature.Kind, 0, len(vs.Kinds))
		ok := true
		for _, name := range vs.Kinds {
			k, found := c.kinds[name]
			if !found {
				verr.Add(fmt.Sprintf("variants[%d] %q: unknown kind %q", i, vs.Name, name))
				ok = false
				continue
			}
			kinds = append(kinds, k)
		}
		if ok {
			c.variants[vs.Name] = organism.NewVariant(vs.Name, kinds...)
		}
	}

	if verr.HasIssues() {
		return nil, verr
	}
	return c, nil
}

// Variant looks up a variant by name.
func (c *Catalog) Variant(name string) (organism.Variant, error) {
	v, ok := c.variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q (known: %s)", name, strings.Join(c.Names(), ", "))
	}
	return v, nil
}

// Kind looks up a kind by name.
func (c *Catalog) Kind(name string) (feature.Kind, bool) {
	k, ok := c.kinds[name]
	return k, ok
}

// Names lists the variant names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.variants))
	for n := range c.variants {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
