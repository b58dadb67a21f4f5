// Package inventory implements the Mausritter slot grid: the slot model, the
// placement engine for one and two slot items, and per slot usage tracking.
// The same algorithms serve the character grid and the smaller hireling grid.
package inventory

import "github.com/KirkDiggler/mausritter-api/internal/catalog"

// SlotID names a slot within an inventory shape
type SlotID string

// Character slots
const (
	MainPaw SlotID = "main_paw"
	OffPaw  SlotID = "off_paw"
	Body1   SlotID = "body_1"
	Body2   SlotID = "body_2"
	Pack1   SlotID = "pack_1"
	Pack2   SlotID = "pack_2"
	Pack3   SlotID = "pack_3"
	Pack4   SlotID = "pack_4"
	Pack5   SlotID = "pack_5"
	Pack6   SlotID = "pack_6"
)

// Hireling slots. Hireling packs reuse Pack1 through Pack4.
const (
	Paw1 SlotID = "paw_1"
	Paw2 SlotID = "paw_2"
)

// Role is the kind of position a slot occupies
type Role string

// Slot roles
const (
	RolePaw  Role = "paw"
	RoleBody Role = "body"
	RolePack Role = "pack"
)

type slotDef struct {
	id   SlotID
	role Role
}

// Shape is the fixed layout of an inventory: its ordered slots and the
// pairing topology used by two slot items.
type Shape struct {
	name  string
	defs  []slotDef
	pairs map[SlotID]SlotID

	// cross pairs used by light armour, empty for shapes without body slots
	lightArmour map[SlotID]SlotID
}

func symmetric(pairs ...[2]SlotID) map[SlotID]SlotID {
	m := make(map[SlotID]SlotID, len(pairs)*2)
	for _, p := range pairs {
		m[p[0]] = p[1]
		m[p[1]] = p[0]
	}
	return m
}

// CharacterShape is the ten slot grid of a mouse: two paws, two body
// slots and a three by two pack.
var CharacterShape = &Shape{
	name: "character",
	defs: []slotDef{
		{MainPaw, RolePaw}, {OffPaw, RolePaw},
		{Body1, RoleBody}, {Body2, RoleBody},
		{Pack1, RolePack}, {Pack2, RolePack}, {Pack3, RolePack},
		{Pack4, RolePack}, {Pack5, RolePack}, {Pack6, RolePack},
	},
	pairs: symmetric(
		[2]SlotID{MainPaw, OffPaw},
		[2]SlotID{Body1, Body2},
		[2]SlotID{Pack1, Pack4},
		[2]SlotID{Pack2, Pack5},
		[2]SlotID{Pack3, Pack6},
	),
	lightArmour: symmetric([2]SlotID{OffPaw, Body2}),
}

// HirelingShape is the six slot grid of a hireling: two paws and a two by
// two pack.
var HirelingShape = &Shape{
	name: "hireling",
	defs: []slotDef{
		{Paw1, RolePaw}, {Paw2, RolePaw},
		{Pack1, RolePack}, {Pack2, RolePack},
		{Pack3, RolePack}, {Pack4, RolePack},
	},
	pairs: symmetric(
		[2]SlotID{Paw1, Paw2},
		[2]SlotID{Pack1, Pack3},
		[2]SlotID{Pack2, Pack4},
	),
	lightArmour: map[SlotID]SlotID{},
}

// Name identifies the shape ("character" or "hireling")
func (s *Shape) Name() string {
	return s.name
}

// IDs returns the slot ids in display order
func (s *Shape) IDs() []SlotID {
	ids := make([]SlotID, len(s.defs))
	for i, def := range s.defs {
		ids[i] = def.id
	}
	return ids
}

// Len is the number of slots in the shape
func (s *Shape) Len() int {
	return len(s.defs)
}

// Has reports whether id belongs to the shape
func (s *Shape) Has(id SlotID) bool {
	_, ok := s.Role(id)
	return ok
}

// Role returns the role of a slot
func (s *Shape) Role(id SlotID) (Role, bool) {
	for _, def := range s.defs {
		if def.id == id {
			return def.role, true
		}
	}
	return "", false
}

// SlotsWithRole returns the ids of one role in display order
func (s *Shape) SlotsWithRole(role Role) []SlotID {
	var ids []SlotID
	for _, def := range s.defs {
		if def.role == role {
			ids = append(ids, def.id)
		}
	}
	return ids
}

// PairOf returns the slot a two slot item placed at id would also occupy.
// Light armour pairs across grids when placed on either end of the cross
// pair and falls back to the normal topology elsewhere.
func (s *Shape) PairOf(id SlotID, pairing catalog.Pairing) (SlotID, bool) {
	if pairing == catalog.PairingLightArmour {
		if partner, ok := s.lightArmour[id]; ok {
			return partner, true
		}
	}
	partner, ok := s.pairs[id]
	return partner, ok
}

// IsPair reports whether a and b form a pair under either topology
func (s *Shape) IsPair(a, b SlotID) bool {
	return s.pairs[a] == b || s.lightArmour[a] == b
}
