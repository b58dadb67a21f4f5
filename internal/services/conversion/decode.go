package conversion

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

// slotInput is one slot as found in a document
type slotInput struct {
	text  string
	usage SlotUsageDoc
}

func characterSlotInputs(doc *Document) (map[inventory.SlotID]slotInput, error) {
	if len(doc.Inventory.Body) > len(bodySlots) {
		return nil, errors.Wrapf(ErrInvalidDocument, "body has %d slots", len(doc.Inventory.Body))
	}
	if len(doc.Inventory.Pack) > len(packSlots) {
		return nil, errors.Wrapf(ErrInvalidDocument, "pack has %d slots", len(doc.Inventory.Pack))
	}

	texts := map[inventory.SlotID]string{
		inventory.MainPaw: doc.Inventory.MainPaw,
		inventory.OffPaw:  doc.Inventory.OffPaw,
	}
	for i, text := range doc.Inventory.Body {
		texts[bodySlots[i]] = text
	}
	for i, text := range doc.Inventory.Pack {
		texts[packSlots[i]] = text
	}

	out := make(map[inventory.SlotID]slotInput, inventory.CharacterShape.Len())
	for _, id := range inventory.CharacterShape.IDs() {
		out[id] = slotInput{text: texts[id], usage: doc.InventoryUsage[string(id)]}
	}
	for key := range doc.InventoryUsage {
		if !inventory.CharacterShape.Has(inventory.SlotID(key)) {
			return nil, errors.Wrapf(ErrInvalidDocument, "unknown slot %q", key).WithMeta("slot_id", key)
		}
	}
	return out, nil
}

func hirelingSlotInputs(hd HirelingDoc) (map[inventory.SlotID]slotInput, error) {
	if len(hd.Inventory.Paws) > len(hirelingPawSlots) || len(hd.Usage.Paws) > len(hirelingPawSlots) {
		return nil, fmt.Errorf("hireling has more than %d paw slots", len(hirelingPawSlots))
	}
	if len(hd.Inventory.Pack) > len(hirelingPackSlots) || len(hd.Usage.Pack) > len(hirelingPackSlots) {
		return nil, fmt.Errorf("hireling has more than %d pack slots", len(hirelingPackSlots))
	}

	out := make(map[inventory.SlotID]slotInput, inventory.HirelingShape.Len())
	for _, id := range inventory.HirelingShape.IDs() {
		out[id] = slotInput{usage: hd.Slots[string(id)]}
	}
	fill := func(ids []inventory.SlotID, texts []string, marks [][inventory.MarkerCount]Mark) {
		for i, text := range texts {
			in := out[ids[i]]
			in.text = text
			out[ids[i]] = in
		}
		for i, m := range marks {
			in := out[ids[i]]
			in.usage.Markers = m
			out[ids[i]] = in
		}
	}
	fill(hirelingPawSlots, hd.Inventory.Paws, hd.Usage.Paws)
	fill(hirelingPackSlots, hd.Inventory.Pack, hd.Usage.Pack)

	for key := range hd.Slots {
		if !inventory.HirelingShape.Has(inventory.SlotID(key)) {
			return nil, fmt.Errorf("unknown hireling slot %q", key)
		}
	}
	return out, nil
}

// decodeInventory restores every slot and checks the result. Legacy
// documents carry no explicit partner, placeholder or six use flags, so
// those are inferred from the topology, the placeholder text and the
// catalog.
func (c *converter) decodeInventory(
	shape *inventory.Shape,
	inputs map[inventory.SlotID]slotInput,
	legacy bool,
) (*inventory.Inventory, error) {
	inv := inventory.New(shape)
	for _, id := range shape.IDs() {
		slot := c.decodeSlot(shape, id, inputs, legacy)
		if err := inv.Restore(slot); err != nil {
			return nil, err
		}
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (c *converter) decodeSlot(
	shape *inventory.Shape,
	id inventory.SlotID,
	inputs map[inventory.SlotID]slotInput,
	legacy bool,
) inventory.Slot {
	in := inputs[id]
	u := in.usage
	slot := inventory.Slot{ID: id}

	item, known := c.lookup(u.Source, in.text)
	switch {
	case u.NeedsSelection || (legacy && in.text == inventory.SelectWeaponText):
		slot.Contents = inventory.Placement{State: inventory.PlacementPlaceholder, Text: in.text}
	case strings.TrimSpace(in.text) == "":
		slot.Contents = inventory.Placement{}
	default:
		slot.Contents = inventory.Placement{
			State:          inventory.PlacementFilled,
			Text:           in.text,
			SourceItem:     u.Source,
			IsCondition:    u.ConditionSlot,
			ClearCondition: u.ClearCondition,
		}
		if legacy && known && item.IsCondition() {
			slot.Contents.IsCondition = true
		}
		if legacy && slot.Contents.IsCondition && slot.Contents.ClearCondition == "" {
			slot.Contents.ClearCondition = c.catalog.ClearConditionFor(in.text)
		}
	}

	slot.Usage.Kind = catalog.UsageStandard
	if u.SixUse || (legacy && c.looksSixUse(u, item, known)) {
		slot.Usage.Kind = catalog.UsageSixUse
	}
	for i, mark := range u.Markers {
		slot.Usage.Charges[i] = inventory.ChargeMark(mark)
	}

	if u.PairedWith != "" {
		slot.PairedWith = inventory.SlotID(u.PairedWith)
		slot.Secondary = u.TwoSlotSecondary
	} else if u.TwoSlotItem {
		if partner, ok := inferPartner(shape, id, in.text, inputs); ok {
			slot.PairedWith = partner
			slot.Secondary = u.TwoSlotSecondary
		}
	}
	return slot
}

// lookup resolves the catalog entry behind a slot, preferring the recorded
// source item over the display text.
func (c *converter) lookup(source, text string) (catalog.Item, bool) {
	for _, name := range []string{source, text} {
		if name == "" {
			continue
		}
		if item, err := c.catalog.Lookup(name); err == nil {
			return item, true
		}
	}
	return catalog.Item{}, false
}

func (c *converter) looksSixUse(u SlotUsageDoc, item catalog.Item, known bool) bool {
	for _, mark := range u.Markers {
		if inventory.ChargeMark(mark) == inventory.MarkHalf {
			return true
		}
	}
	return known && item.Usage == catalog.UsageSixUse
}

// inferPartner finds the other half of a legacy two slot item: the first
// topology partner, normal or cross pair, that is also flagged two slot and
// shows the same text.
func inferPartner(
	shape *inventory.Shape,
	id inventory.SlotID,
	text string,
	inputs map[inventory.SlotID]slotInput,
) (inventory.SlotID, bool) {
	for _, pairing := range []catalog.Pairing{catalog.PairingNormal, catalog.PairingLightArmour} {
		partner, ok := shape.PairOf(id, pairing)
		if !ok {
			continue
		}
		other, ok := inputs[partner]
		if ok && other.usage.TwoSlotItem && other.text == text {
			return partner, true
		}
	}
	return "", false
}
