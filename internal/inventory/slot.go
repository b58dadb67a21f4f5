package inventory

import "github.com/KirkDiggler/mausritter-api/internal/catalog"

// SelectWeaponText is the placeholder shown in the main paw of a freshly
// generated character until the player picks a weapon.
const SelectWeaponText = "Select weapon"

// PlacementState distinguishes an empty slot, a reserved placeholder and a
// real item.
type PlacementState int

// Placement states
const (
	PlacementUnset PlacementState = iota
	PlacementPlaceholder
	PlacementFilled
)

// Placement is what a slot shows
type Placement struct {
	State PlacementState
	Text  string
	// SourceItem is the catalog name when the item came from the picker and
	// is cleared by a manual edit.
	SourceItem     string
	IsCondition    bool
	ClearCondition string
}

func filledFromItem(item catalog.Item) Placement {
	return Placement{
		State:          PlacementFilled,
		Text:           item.Name,
		SourceItem:     item.Name,
		IsCondition:    item.IsCondition(),
		ClearCondition: item.ClearCondition,
	}
}

// Slot is one position in an inventory
type Slot struct {
	ID       SlotID
	Role     Role
	Contents Placement
	// Secondary is set on the mirrored half of a two slot item
	Secondary bool
	// PairedWith is set on both halves of a two slot item
	PairedWith SlotID
	Usage      UsageState
}

// IsEmpty reports whether nothing is placed in the slot
func (s Slot) IsEmpty() bool {
	return s.Contents.State == PlacementUnset
}

// IsDepleted reports whether every charge mark is full
func (s Slot) IsDepleted() bool {
	return !s.IsEmpty() && s.Usage.Depleted()
}

// NeedsSelection reports whether the slot holds a placeholder the player has
// not resolved yet.
func (s Slot) NeedsSelection() bool {
	return s.Contents.State == PlacementPlaceholder
}

// IsPaired reports whether the slot is one half of a two slot item
func (s Slot) IsPaired() bool {
	return s.PairedWith != ""
}

// Text is the display text, empty for an unset slot
func (s Slot) Text() string {
	return s.Contents.Text
}

func (s *Slot) reset() {
	s.Contents = Placement{}
	s.Secondary = false
	s.PairedWith = ""
	s.Usage = newUsage(catalog.UsageStandard)
}
