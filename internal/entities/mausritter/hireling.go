package mausritter

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

// HirelingEntityType is the core.Entity type of a hireling
const HirelingEntityType = "mausritter_hireling"

// ErrHirelingNotFound is returned for an unknown hireling id
var ErrHirelingNotFound = errors.NotFound("hireling not found")

// Hireling is an NPC companion with its own small inventory
type Hireling struct {
	ID          string
	Type        string
	Ordinal     int
	Name        string
	Look        string
	Disposition string
	Attributes  Attributes
	HP          Attribute
	Inventory   *inventory.Inventory
}

var _ core.Entity = (*Hireling)(nil)

// GetID implements core.Entity
func (h *Hireling) GetID() string {
	return h.ID
}

// GetType implements core.Entity
func (h *Hireling) GetType() string {
	return HirelingEntityType
}

// DisplayName is the name, or the type and ordinal when unnamed
func (h *Hireling) DisplayName() string {
	if strings.TrimSpace(h.Name) != "" {
		return h.Name
	}
	return fmt.Sprintf("%s #%d", h.Type, h.Ordinal)
}

// AddHireling attaches a hireling, giving it an empty inventory if it has
// none and the next ordinal for its type.
func (c *Character) AddHireling(h *Hireling) *Hireling {
	if h.Inventory == nil {
		h.Inventory = inventory.NewHireling()
	}
	h.Ordinal = c.countType(h.Type) + 1
	c.Hirelings = append(c.Hirelings, h)
	return h
}

// Hireling finds a hireling by id
func (c *Character) Hireling(id string) (*Hireling, error) {
	for _, h := range c.Hirelings {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, errors.Wrapf(ErrHirelingNotFound, "hireling %s not found", id).WithMeta("hireling_id", id)
}

// RemoveHireling detaches a hireling and renumbers the rest of its type
func (c *Character) RemoveHireling(id string) (*Hireling, error) {
	for i, h := range c.Hirelings {
		if h.ID != id {
			continue
		}
		c.Hirelings = append(c.Hirelings[:i], c.Hirelings[i+1:]...)
		if len(c.Hirelings) == 0 {
			c.Hirelings = nil
		}
		c.renumber(h.Type)
		return h, nil
	}
	return nil, errors.Wrapf(ErrHirelingNotFound, "hireling %s not found", id).WithMeta("hireling_id", id)
}

func (c *Character) countType(kind string) int {
	n := 0
	for _, h := range c.Hirelings {
		if strings.EqualFold(h.Type, kind) {
			n++
		}
	}
	return n
}

func (c *Character) renumber(kind string) {
	n := 0
	for _, h := range c.Hirelings {
		if strings.EqualFold(h.Type, kind) {
			n++
			h.Ordinal = n
		}
	}
}

// RenumberHirelings recomputes every ordinal from list order
func (c *Character) RenumberHirelings() {
	seen := make(map[string]int)
	for _, h := range c.Hirelings {
		key := strings.ToLower(h.Type)
		seen[key]++
		h.Ordinal = seen[key]
	}
}

// Normalize clamps hireling stats
func (h *Hireling) Normalize() {
	h.Attributes = h.Attributes.Clamped()
	h.HP = h.HP.Clamped()
}
