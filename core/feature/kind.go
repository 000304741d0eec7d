// core/feature/kind.go
package feature

import (
	"fmt"
	"strings"
)

// Role tells body builders how to realize a kind.
type Role string

const (
	RoleNode      Role = "node"      // rigid body + collision shape
	RoleConnector Role = "connector" // spring between two nodes
	RoleAppendage Role = "appendage" // attached to the preceding node
)

// Kind declares one organism part: its name and ordered parameter slots.
type Kind struct {
	Name  string
	Slots []string
	Role  Role
	// Endpoints names the two slots selecting the nodes a connector joins.
	// Empty means the first two slots.
	Endpoints [2]string
}

var (
	Node = Kind{
		Name:  "Node",
		Slots: []string{"radius", "weight", "friction"},
		Role:  RoleNode,
	}
	Muscle = Kind{
		Name:      "Muscle",
		Slots:     []string{"strength", "length", "group"},
		Role:      RoleConnector,
		Endpoints: [2]string{"strength", "length"},
	}
	Flagellum = Kind{
		Name:  "Flagellum",
		Slots: []string{"strength", "length"},
		Role:  RoleAppendage,
	}
)

// Count is the number of parameters an instance of k carries.
func (k Kind) Count() int { return len(k.Slots) }

// EndpointSlots resolves the connector endpoints, defaulting to the first two slots.
func (k Kind) EndpointSlots() (a, b string) {
	if k.Endpoints[0] != "" && k.Endpoints[1] != "" {
		return k.Endpoints[0], k.Endpoints[1]
	}
	if len(k.Slots) < 2 {
		return "", ""
	}
	return k.Slots[0], k.Slots[1]
}

func (k Kind) HasSlot(name string) bool {
	for _, s := range k.Slots {
		if s == name {
			return true
		}
	}
	return false
}

// Validate checks the declaration; slots must be non-empty and unique.
func (k Kind) Validate() error {
	if strings.TrimSpace(k.Name) == "" {
		return fmt.Errorf("feature: kind name is required")
	}
	if len(k.Slots) == 0 {
		return fmt.Errorf("feature: kind %s declares no slots", k.Name)
	}
	seen := make(map[string]bool, len(k.Slots))
	for _, s := range k.Slots {
		if s == "" {
			return fmt.Errorf("feature: kind %s has an empty slot name", k.Name)
		}
		if seen[s] {
			return fmt.Errorf("feature: kind %s repeats slot %q", k.Name, s)
		}
		seen[s] = true
	}
	switch k.Role {
	case RoleNode, RoleAppendage:
	case RoleConnector:
		a, b := k.EndpointSlots()
		if a == "" || !k.HasSlot(a) || !k.HasSlot(b) {
			return fmt.Errorf("feature: connector %s needs two endpoint slots", k.Name)
		}
	default:
		return fmt.Errorf("feature: kind %s has unknown role %q", k.Name, k.Role)
	}
	return nil
}
