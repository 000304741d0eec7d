// Package body resolves a decoded organism into the layout a physics
// simulator builds from: one rigid body per node feature, one spring per
// connector, appendages pinned to a node. It never touches a physics engine.
package body

import (
	"errors"
	"math/big"

	"morphogen-core/feature"
	"morphogen-core/organism"
)

var ErrNoNodes = errors.New("body: connectors present but the organism has no nodes")

// Node indexes refer to Blueprint.Nodes; Feature indexes refer to Organism.Features.
type Node struct {
	Index    int
	Feature  int
	Radius   int
	Mass     int
	Friction int
}

type Link struct {
	Feature int
	A, B    int
}

type Appendage struct {
	Feature int
	Node    int
}

type Blueprint struct {
	Nodes      []Node
	Links      []Link
	Appendages []Appendage
}

// Build maps node features to nodes in order, then joins each connector's
// endpoints by value modulo the node count. Appendages attach to the most
// recent node before them (node 0 when none precedes them).
func Build(o *organism.Organism) (Blueprint, error) {
	var bp Blueprint
	feats := o.Features()
	roles := make([]feature.Kind, len(feats))
	known := make([]bool, len(feats))

	for i, f := range feats {
		roles[i], known[i] = o.Kind(f)
		if known[i] && roles[i].Role == feature.RoleNode {
			bp.Nodes = append(bp.Nodes, Node{
				Index:    len(bp.Nodes),
				Feature:  i,
				Radius:   f.Int("radius"),
				Mass:     firstInt(f, "weight", "mass"),
				Friction: f.Int("friction"),
			})
		}
	}

	n := big.NewInt(int64(len(bp.Nodes)))
	last := 0
	for i, f := range feats {
		if !known[i] {
			continue
		}
		switch roles[i].Role {
		case feature.RoleNode:
			last = nodeAt(bp.Nodes, i)
		case feature.RoleConnector:
			if len(bp.Nodes) == 0 {
				return bp, ErrNoNodes
			}
			sa, sb := roles[i].EndpointSlots()
			bp.Links = append(bp.Links, Link{Feature: i, A: mod(f, sa, n), B: mod(f, sb, n)})
		case feature.RoleAppendage:
			if len(bp.Nodes) == 0 {
				continue
			}
			bp.Appendages = append(bp.Appendages, Appendage{Feature: i, Node: last})
		}
	}
	return bp, nil
}

func nodeAt(nodes []Node, feat int) int {
	for _, nd := range nodes {
		if nd.Feature == feat {
			return nd.Index
		}
	}
	return 0
}

func mod(f feature.Instance, slot string, n *big.Int) int {
	v, ok := f.Value(slot)
	if !ok {
		return 0
	}
	return int(new(big.Int).Mod(v, n).Int64())
}

func firstInt(f feature.Instance, names ...string) int {
	for _, name := range names {
		if _, ok := f.Value(name); ok {
			return f.Int(name)
		}
	}
	return 0
}
