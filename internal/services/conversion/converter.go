// Package conversion converts between the persisted character document and
// the character aggregate, and applies typed patches and accepted proposals.
package conversion

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

// converter is the concrete implementation of CharacterConverter
type converter struct {
	catalog *catalog.Catalog
}

// Config holds the configuration for creating a converter
type Config struct {
	Catalog *catalog.Catalog
}

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Catalog == nil {
		return errors.InvalidArgument("catalog is required")
	}
	return nil
}

// New creates a new converter instance
func New(cfg *Config) (CharacterConverter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &converter{catalog: cfg.Catalog}, nil
}

// ToDocument snapshots the full character state
func (c *converter) ToDocument(ch *mausritter.Character) *Document {
	if ch == nil {
		return nil
	}

	grit := ch.Grit()
	doc := &Document{
		Version:        DocumentVersion,
		ID:             ch.ID,
		Name:           ch.Name,
		Background:     ch.Background,
		Attributes:     attributesDoc(ch.Attributes),
		HP:             statDoc(ch.HP),
		Pips:           ch.Pips,
		Level:          ch.Level,
		XP:             ch.XP,
		Grit:           grit.Current,
		MaxGrit:        grit.Max,
		InventoryUsage: make(map[string]SlotUsageDoc),
		Conditions:     []string{},
		Hirelings:      []HirelingDoc{},
		BankedText:     ch.BankedText,
		Notes:          ch.Notes,
	}

	inv := ch.Inventory
	if inv == nil {
		inv = inventory.NewCharacter()
	}
	doc.Inventory = InventoryDoc{Body: make([]string, len(bodySlots)), Pack: make([]string, len(packSlots))}
	for _, slot := range inv.Slots() {
		doc.InventoryUsage[string(slot.ID)] = slotUsageDoc(inv, slot)
		switch slot.ID {
		case inventory.MainPaw:
			doc.Inventory.MainPaw = slot.Text()
		case inventory.OffPaw:
			doc.Inventory.OffPaw = slot.Text()
		default:
			if i := indexOf(bodySlots, slot.ID); i >= 0 {
				doc.Inventory.Body[i] = slot.Text()
			} else if i := indexOf(packSlots, slot.ID); i >= 0 {
				doc.Inventory.Pack[i] = slot.Text()
			}
		}
	}

	for _, cond := range ch.IgnoredConditions() {
		doc.Conditions = append(doc.Conditions, cond.Name)
		doc.IgnoredConditions = append(doc.IgnoredConditions, IgnoredConditionDoc(cond))
	}

	for _, h := range ch.Hirelings {
		doc.Hirelings = append(doc.Hirelings, hirelingDoc(h))
	}

	if ch.Appearance != (mausritter.Appearance{}) {
		appearance := AppearanceDoc(ch.Appearance)
		doc.Appearance = &appearance
	}

	return doc
}

// FromDocument rebuilds a character. Current values are clamped to their
// maximum; broken inventories are rejected.
func (c *converter) FromDocument(doc *Document) (*mausritter.Character, error) {
	if doc == nil {
		return nil, errors.Wrap(ErrInvalidDocument, "document is required")
	}
	legacy := doc.Version < DocumentVersion

	ch := mausritter.NewCharacter(doc.ID)
	ch.Name = doc.Name
	ch.Background = doc.Background
	ch.Attributes = attributesFromDoc(doc.Attributes)
	ch.HP = statFromDoc(doc.HP)
	ch.Pips = doc.Pips
	ch.Level = doc.Level
	ch.XP = doc.XP
	ch.BankedText = doc.BankedText
	ch.Notes = doc.Notes
	if doc.Appearance != nil {
		ch.Appearance = mausritter.Appearance(*doc.Appearance)
	}

	inputs, err := characterSlotInputs(doc)
	if err != nil {
		return nil, err
	}
	inv, err := c.decodeInventory(inventory.CharacterShape, inputs, legacy)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "inventory: %v", err).WithMeta("section", "inventory")
	}
	ch.Inventory = inv

	ch.RestoreGrit(doc.MaxGrit, c.ignoredFromDoc(doc))

	renumber := false
	for i, hd := range doc.Hirelings {
		h, err := c.hirelingFromDoc(hd, i, legacy)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidDocument, "hireling %d: %v", i, err).WithMeta("section", "hirelings")
		}
		if h.Ordinal <= 0 {
			renumber = true
		}
		ch.Hirelings = append(ch.Hirelings, h)
	}
	if renumber {
		ch.RenumberHirelings()
	}

	ch.Normalize()
	return ch, nil
}

// Marshal encodes the character as JSON
func (c *converter) Marshal(ch *mausritter.Character) ([]byte, error) {
	if ch == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	data, err := json.Marshal(c.ToDocument(ch))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode character document")
	}
	return data, nil
}

// Unmarshal decodes a JSON document into a character
func (c *converter) Unmarshal(data []byte) (*mausritter.Character, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "decode: %v", err)
	}
	return c.FromDocument(&doc)
}

// LoadOrDefault decodes a document, falling back to an empty character
func (c *converter) LoadOrDefault(data []byte) (*mausritter.Character, error) {
	ch, err := c.Unmarshal(data)
	if err != nil {
		return mausritter.NewCharacter(""), err
	}
	return ch, nil
}

func (c *converter) ignoredFromDoc(doc *Document) []mausritter.IgnoredCondition {
	if len(doc.IgnoredConditions) > 0 {
		out := make([]mausritter.IgnoredCondition, len(doc.IgnoredConditions))
		for i, cond := range doc.IgnoredConditions {
			out[i] = mausritter.IgnoredCondition(cond)
		}
		return out
	}

	var out []mausritter.IgnoredCondition
	for _, name := range doc.Conditions {
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, mausritter.IgnoredCondition{Name: name, ClearCondition: c.catalog.ClearConditionFor(name)})
	}
	return out
}

func (c *converter) hirelingFromDoc(hd HirelingDoc, index int, legacy bool) (*mausritter.Hireling, error) {
	h := &mausritter.Hireling{
		ID:          hd.ID,
		Type:        hd.Type,
		Ordinal:     hd.Ordinal,
		Name:        hd.Name,
		Look:        hd.Look,
		Disposition: hd.Disposition,
		Attributes:  attributesFromDoc(hd.Attributes),
		HP:          statFromDoc(hd.HP),
	}
	if h.ID == "" {
		h.ID = fmt.Sprintf("hireling_%d", index+1)
	}

	inputs, err := hirelingSlotInputs(hd)
	if err != nil {
		return nil, err
	}
	inv, err := c.decodeInventory(inventory.HirelingShape, inputs, legacy)
	if err != nil {
		return nil, err
	}
	h.Inventory = inv
	h.Normalize()
	return h, nil
}

func hirelingDoc(h *mausritter.Hireling) HirelingDoc {
	hd := HirelingDoc{
		ID:          h.ID,
		Type:        h.Type,
		Ordinal:     h.Ordinal,
		Name:        h.Name,
		Look:        h.Look,
		Disposition: h.Disposition,
		Attributes:  attributesDoc(h.Attributes),
		HP:          statDoc(h.HP),
		Inventory: HirelingInventoryDoc{
			Paws: make([]string, len(hirelingPawSlots)),
			Pack: make([]string, len(hirelingPackSlots)),
		},
		Usage: HirelingUsageDoc{
			Paws: make([][inventory.MarkerCount]Mark, len(hirelingPawSlots)),
			Pack: make([][inventory.MarkerCount]Mark, len(hirelingPackSlots)),
		},
	}

	inv := h.Inventory
	if inv == nil {
		inv = inventory.NewHireling()
	}
	for _, slot := range inv.Slots() {
		usage := slotUsageDoc(inv, slot)
		if i := indexOf(hirelingPawSlots, slot.ID); i >= 0 {
			hd.Inventory.Paws[i] = slot.Text()
			hd.Usage.Paws[i] = usage.Markers
		} else if i := indexOf(hirelingPackSlots, slot.ID); i >= 0 {
			hd.Inventory.Pack[i] = slot.Text()
			hd.Usage.Pack[i] = usage.Markers
		}
		if usage.hasFlags() {
			if hd.Slots == nil {
				hd.Slots = make(map[string]SlotUsageDoc)
			}
			hd.Slots[string(slot.ID)] = usage
		}
	}
	return hd
}

func slotUsageDoc(inv *inventory.Inventory, slot inventory.Slot) SlotUsageDoc {
	depleted, _ := inv.ShowsDepleted(slot.ID)
	u := SlotUsageDoc{
		TwoSlotItem:      slot.IsPaired(),
		TwoSlotSecondary: slot.Secondary,
		ConditionSlot:    slot.Contents.IsCondition,
		Depleted:         depleted,
		PairedWith:       string(slot.PairedWith),
		SixUse:           slot.Usage.Kind == catalog.UsageSixUse,
		Source:           slot.Contents.SourceItem,
		NeedsSelection:   slot.NeedsSelection(),
		ClearCondition:   slot.Contents.ClearCondition,
	}
	for i, mark := range slot.Usage.Charges {
		u.Markers[i] = Mark(mark)
	}
	return u
}

func (u SlotUsageDoc) hasFlags() bool {
	return u.TwoSlotItem || u.ConditionSlot || u.Depleted || u.SixUse ||
		u.Source != "" || u.NeedsSelection || u.ClearCondition != ""
}

func attributesDoc(a mausritter.Attributes) AttributesDoc {
	return AttributesDoc{STR: statDoc(a.STR), DEX: statDoc(a.DEX), WIL: statDoc(a.WIL)}
}

func attributesFromDoc(a AttributesDoc) mausritter.Attributes {
	return mausritter.Attributes{STR: statFromDoc(a.STR), DEX: statFromDoc(a.DEX), WIL: statFromDoc(a.WIL)}
}

func statDoc(a mausritter.Attribute) StatDoc {
	return StatDoc{Max: a.Max, Current: a.Current}
}

func statFromDoc(s StatDoc) mausritter.Attribute {
	return mausritter.Attribute{Max: s.Max, Current: s.Current}
}

func indexOf(ids []inventory.SlotID, id inventory.SlotID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
