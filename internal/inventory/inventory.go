package inventory

import (
	"strings"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

var (
	// ErrUnknownSlot is returned for a slot id outside the inventory's shape
	ErrUnknownSlot = errors.InvalidArgument("unknown slot id")
	// ErrUnknownMarker is returned for a charge marker index outside 0..2
	ErrUnknownMarker = errors.InvalidArgument("charge marker out of range")
	// ErrSecondarySlot is returned when editing the mirrored half of a pair
	ErrSecondarySlot = errors.FailedPrecondition("slot mirrors a paired item")
)

// Inventory is a fixed shape collection of slots. It is not safe for
// concurrent use; each inventory has a single owner.
type Inventory struct {
	shape *Shape
	slots []Slot
}

// New returns an empty inventory of the given shape
func New(shape *Shape) *Inventory {
	inv := &Inventory{
		shape: shape,
		slots: make([]Slot, len(shape.defs)),
	}
	for i, def := range shape.defs {
		inv.slots[i] = Slot{ID: def.id, Role: def.role}
		inv.slots[i].reset()
	}
	return inv
}

// NewCharacter returns an empty character inventory
func NewCharacter() *Inventory {
	return New(CharacterShape)
}

// NewHireling returns an empty hireling inventory
func NewHireling() *Inventory {
	return New(HirelingShape)
}

// Shape returns the inventory's layout
func (inv *Inventory) Shape() *Shape {
	return inv.shape
}

// Clone returns a deep copy
func (inv *Inventory) Clone() *Inventory {
	out := &Inventory{shape: inv.shape, slots: make([]Slot, len(inv.slots))}
	copy(out.slots, inv.slots)
	return out
}

func (inv *Inventory) slot(id SlotID) (*Slot, error) {
	for i := range inv.slots {
		if inv.slots[i].ID == id {
			return &inv.slots[i], nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownSlot, "slot %q is not part of the %s inventory", id, inv.shape.name).
		WithMeta("slot_id", string(id))
}

// Slot returns a copy of one slot
func (inv *Inventory) Slot(id SlotID) (Slot, error) {
	s, err := inv.slot(id)
	if err != nil {
		return Slot{}, err
	}
	return *s, nil
}

// Slots returns copies of every slot in display order
func (inv *Inventory) Slots() []Slot {
	out := make([]Slot, len(inv.slots))
	copy(out, inv.slots)
	return out
}

// PairedSlotID returns the partner of a paired slot
func (inv *Inventory) PairedSlotID(id SlotID) (SlotID, bool, error) {
	s, err := inv.slot(id)
	if err != nil {
		return "", false, err
	}
	return s.PairedWith, s.IsPaired(), nil
}

// IsEmpty reports whether every slot is unset
func (inv *Inventory) IsEmpty() bool {
	for _, s := range inv.slots {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Place writes a catalog item into id. Whatever the slot held before is
// cleared first, including the other half of a previous pair. A two slot
// item also occupies the partner given by the shape's topology; the target
// becomes the editable primary and the partner its read only mirror.
func (inv *Inventory) Place(id SlotID, item catalog.Item) error {
	target, err := inv.slot(id)
	if err != nil {
		return err
	}

	var partner *Slot
	if item.IsTwoSlot() {
		if pid, ok := inv.shape.PairOf(id, item.Pairing); ok {
			if partner, err = inv.slot(pid); err != nil {
				return err
			}
		}
	}

	inv.clearSlot(target)
	if partner != nil {
		inv.clearSlot(partner)
	}

	target.Contents = filledFromItem(item)
	target.Usage = newUsage(item.Usage)
	if partner != nil {
		target.PairedWith = partner.ID
		partner.Contents = target.Contents
		partner.Usage = newUsage(item.Usage)
		partner.Secondary = true
		partner.PairedWith = target.ID
	}
	return nil
}

// PlacePlaceholder reserves a slot with placeholder text that the player has
// to resolve, such as SelectWeaponText.
func (inv *Inventory) PlacePlaceholder(id SlotID, text string) error {
	target, err := inv.slot(id)
	if err != nil {
		return err
	}
	inv.clearSlot(target)
	target.Contents = Placement{State: PlacementPlaceholder, Text: text}
	return nil
}

// Clear empties a slot and, when it is paired, its partner. Clearing an
// empty slot does nothing.
func (inv *Inventory) Clear(id SlotID) error {
	target, err := inv.slot(id)
	if err != nil {
		return err
	}
	inv.clearSlot(target)
	return nil
}

func (inv *Inventory) clearSlot(s *Slot) {
	if s.IsPaired() {
		if partner, err := inv.slot(s.PairedWith); err == nil {
			partner.reset()
		}
	}
	s.reset()
}

// SetText applies a manual edit. The mirrored half of a pair rejects edits;
// a primary copies its new text onto its partner. Empty text clears the
// placement and usage but leaves the pairing in place until an explicit
// Clear or a new Place.
func (inv *Inventory) SetText(id SlotID, text string) error {
	target, err := inv.slot(id)
	if err != nil {
		return err
	}
	if target.Secondary {
		return errors.Wrapf(ErrSecondarySlot, "slot %q mirrors %q", id, target.PairedWith).
			WithMeta("slot_id", string(id))
	}

	if strings.TrimSpace(text) == "" {
		target.Contents = Placement{}
		target.Usage = newUsage(catalog.UsageStandard)
	} else {
		if target.Usage.Kind != catalog.UsageStandard {
			target.Usage = newUsage(catalog.UsageStandard)
		}
		target.Contents = Placement{State: PlacementFilled, Text: text}
	}

	if target.IsPaired() {
		partner, err := inv.slot(target.PairedWith)
		if err != nil {
			return err
		}
		partner.Contents = target.Contents
		if target.IsEmpty() || partner.Usage.Kind != target.Usage.Kind {
			partner.Usage = newUsage(target.Usage.Kind)
		}
	}
	return nil
}

// ToggleCharge clicks one usage marker. Empty slots and unresolved
// placeholders ignore clicks.
func (inv *Inventory) ToggleCharge(id SlotID, marker int) error {
	target, err := inv.slot(id)
	if err != nil {
		return err
	}
	if marker < 0 || marker >= MarkerCount {
		return errors.Wrapf(ErrUnknownMarker, "marker %d", marker).WithMeta("marker", marker)
	}
	if target.IsEmpty() || target.NeedsSelection() {
		return nil
	}
	target.Usage.Toggle(marker)
	return nil
}

// ResetUsage clears the charge marks of every slot
func (inv *Inventory) ResetUsage() {
	for i := range inv.slots {
		inv.slots[i].Usage.Reset()
	}
}

// ShowsDepleted reports whether a slot should render as used up: either it
// is depleted itself or it is half of a pair whose other half is.
func (inv *Inventory) ShowsDepleted(id SlotID) (bool, error) {
	s, err := inv.slot(id)
	if err != nil {
		return false, err
	}
	if s.IsDepleted() {
		return true, nil
	}
	if !s.IsPaired() {
		return false, nil
	}
	partner, err := inv.slot(s.PairedWith)
	if err != nil {
		return false, err
	}
	return partner.IsDepleted(), nil
}

// Restore overwrites one slot with previously persisted state. Charges on
// an empty slot are dropped. Callers run Validate once every slot is
// restored.
func (inv *Inventory) Restore(state Slot) error {
	target, err := inv.slot(state.ID)
	if err != nil {
		return err
	}
	state.Role = target.Role
	if state.Usage.Kind == "" {
		state.Usage.Kind = catalog.UsageStandard
	}
	if state.IsEmpty() {
		state.Usage.Reset()
	}
	*target = state
	return nil
}
