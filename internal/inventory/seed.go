package inventory

import "github.com/KirkDiggler/mausritter-api/internal/catalog"

// Stow sorts a list of starting items into free slots and returns the items
// that did not fit. Armour goes to the body (or across paw and body for
// light armour); everything else fills the pack in order, with two slot
// items taking the first free vertical pair.
func (inv *Inventory) Stow(items []catalog.Item) []catalog.Item {
	var overflow []catalog.Item
	for _, item := range items {
		if !inv.stowOne(item) {
			overflow = append(overflow, item)
		}
	}
	return overflow
}

func (inv *Inventory) stowOne(item catalog.Item) bool {
	if item.Category == catalog.CategoryArmour {
		for _, id := range inv.armourTargets(item) {
			if inv.tryPlace(id, item) {
				return true
			}
		}
	}

	for _, id := range inv.shape.SlotsWithRole(RolePack) {
		if inv.tryPlace(id, item) {
			return true
		}
	}
	return false
}

func (inv *Inventory) armourTargets(item catalog.Item) []SlotID {
	if item.Pairing == catalog.PairingLightArmour {
		var ids []SlotID
		for id := range inv.shape.lightArmour {
			if role, _ := inv.shape.Role(id); role == RoleBody {
				ids = append(ids, id)
			}
		}
		return ids
	}
	return inv.shape.SlotsWithRole(RoleBody)
}

// tryPlace places item at id when every slot it would occupy is free
func (inv *Inventory) tryPlace(id SlotID, item catalog.Item) bool {
	target, err := inv.slot(id)
	if err != nil || !target.IsEmpty() || target.IsPaired() {
		return false
	}
	if item.IsTwoSlot() {
		pid, ok := inv.shape.PairOf(id, item.Pairing)
		if !ok {
			return false
		}
		partner, err := inv.slot(pid)
		if err != nil || !partner.IsEmpty() || partner.IsPaired() {
			return false
		}
		// keep pack pairs top to bottom
		if target.Role == RolePack && partner.Role == RolePack && inv.index(pid) < inv.index(id) {
			return false
		}
	}
	return inv.Place(id, item) == nil
}

func (inv *Inventory) index(id SlotID) int {
	for i := range inv.slots {
		if inv.slots[i].ID == id {
			return i
		}
	}
	return -1
}
