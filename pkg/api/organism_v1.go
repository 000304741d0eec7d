// pkg/api/organism_v1.go
package api

import "math/big"

// OrganismV1 is the stable JSON/JSONL schema for one decoded organism.
// Features and Genome are always present; everything else is additive.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type OrganismV1 struct {
	ID       string      `json:"id,omitempty"`
	Variant  string      `json:"variant,omitempty"`
	Encoding string      `json:"encoding,omitempty"` // "bits" | "rna"
	Width    int         `json:"width,omitempty"`    // unit width for "bits" genomes
	Genome   string      `json:"genome"`
	Features []FeatureV1 `json:"features"`
	Dropped  int         `json:"dropped,omitempty"`
	Body     *BodyV1     `json:"body,omitempty"`
}

// FeatureV1 is one decoded feature. Parameter values are arbitrary-precision
// integers encoded as JSON numbers.
type FeatureV1 struct {
	Kind       string              `json:"kind"`
	Parameters map[string]*big.Int `json:"parameters"`
	Codon      string              `json:"codon,omitempty"`
}

// BodyV1 is the resolved physical layout handed to a simulator.
type BodyV1 struct {
	Nodes      []NodeV1      `json:"nodes"`
	Links      []LinkV1      `json:"links,omitempty"`
	Appendages []AppendageV1 `json:"appendages,omitempty"`
}

type NodeV1 struct {
	Feature  int `json:"feature"`
	Radius   int `json:"radius"`
	Mass     int `json:"mass"`
	Friction int `json:"friction"`
}

type LinkV1 struct {
	Feature int `json:"feature"`
	A       int `json:"a"`
	B       int `json:"b"`
}

type AppendageV1 struct {
	Feature int `json:"feature"`
	Node    int `json:"node"`
}
