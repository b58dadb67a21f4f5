package conversion

import (
	"bytes"
	"encoding/json"

	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

// Patch is a typed partial update of a character. Nil fields are left
// alone; list and inventory sections replace the stored value entirely.
// grit is accepted for compatibility with full documents but ignored since
// it is derived from max_grit and the ignored conditions.
type Patch struct {
	Name              *string                 `json:"name,omitempty"`
	Background        *string                 `json:"background,omitempty"`
	Attributes        *AttributesPatch        `json:"attributes,omitempty"`
	HP                *StatPatch              `json:"hp,omitempty"`
	Pips              *int                    `json:"pips,omitempty"`
	Level             *int                    `json:"level,omitempty"`
	XP                *int                    `json:"xp,omitempty"`
	Grit              *int                    `json:"grit,omitempty"`
	MaxGrit           *int                    `json:"max_grit,omitempty"`
	Inventory         *InventoryDoc           `json:"inventory,omitempty"`
	InventoryUsage    map[string]SlotUsageDoc `json:"inventory_usage,omitempty"`
	Conditions        *[]string               `json:"conditions,omitempty"`
	IgnoredConditions *[]IgnoredConditionDoc  `json:"ignored_conditions,omitempty"`
	Hirelings         *[]HirelingDoc          `json:"hirelings,omitempty"`
	Appearance        *AppearanceDoc          `json:"appearance,omitempty"`
	BankedText        *string                 `json:"banked_text,omitempty"`
	Notes             *string                 `json:"notes,omitempty"`
	Version           *int                    `json:"version,omitempty"`
	ID                *string                 `json:"id,omitempty"`
}

// AttributesPatch updates any of the three attributes
type AttributesPatch struct {
	STR *StatPatch `json:"STR,omitempty"`
	DEX *StatPatch `json:"DEX,omitempty"`
	WIL *StatPatch `json:"WIL,omitempty"`
}

// StatPatch updates either half of a max and current pair
type StatPatch struct {
	Max     *int `json:"max,omitempty"`
	Current *int `json:"current,omitempty"`
}

// DecodePatch parses a JSON patch, rejecting unknown keys at every level
func DecodePatch(data []byte) (*Patch, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var patch Patch
	if err := dec.Decode(&patch); err != nil {
		return nil, errors.InvalidArgumentf("invalid patch: %v", err)
	}
	if dec.More() {
		return nil, errors.InvalidArgument("invalid patch: trailing data")
	}
	return &patch, nil
}

// IsEmpty reports whether the patch changes nothing
func (p *Patch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Background == nil && p.Attributes == nil && p.HP == nil &&
		p.Pips == nil && p.Level == nil && p.XP == nil && p.MaxGrit == nil && p.Inventory == nil &&
		p.InventoryUsage == nil && p.Conditions == nil && p.IgnoredConditions == nil &&
		p.Hirelings == nil && p.Appearance == nil && p.BankedText == nil && p.Notes == nil)
}

// Validate checks field ranges that clamping would otherwise hide
func (p *Patch) Validate() error {
	vb := errors.NewValidationBuilder()
	if p.Pips != nil {
		errors.ValidateRange("pips", *p.Pips, 0, mausritter.MaxPips, vb)
	}
	if p.Level != nil && *p.Level < mausritter.MinLevel {
		vb.InvalidField("level", "must be at least 1")
	}
	if p.XP != nil && *p.XP < 0 {
		vb.InvalidField("xp", "must not be negative")
	}
	if p.MaxGrit != nil && *p.MaxGrit < 0 {
		vb.InvalidField("max_grit", "must not be negative")
	}
	if p.Hirelings != nil {
		seen := make(map[string]bool, len(*p.Hirelings))
		for _, h := range *p.Hirelings {
			if h.ID == "" {
				vb.RequiredField("hirelings.id")
				break
			}
			if seen[h.ID] {
				vb.InvalidField("hirelings.id", "duplicate id "+h.ID)
				break
			}
			seen[h.ID] = true
		}
	}
	return vb.Build()
}

// ApplyPatch applies the patch to a document snapshot of the character and
// swaps the result in only once it loads cleanly.
func (c *converter) ApplyPatch(ch *mausritter.Character, patch *Patch) error {
	if ch == nil {
		return errors.InvalidArgument("character is required")
	}
	if patch == nil {
		return errors.InvalidArgument("patch is required")
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if patch.ID != nil && *patch.ID != "" && *patch.ID != ch.ID {
		return errors.InvalidArgument("id cannot be changed").WithMeta("id", *patch.ID)
	}

	doc := c.ToDocument(ch)
	old := c.ToDocument(ch)

	setString(&doc.Name, patch.Name)
	setString(&doc.Background, patch.Background)
	setString(&doc.BankedText, patch.BankedText)
	setString(&doc.Notes, patch.Notes)
	setInt(&doc.Pips, patch.Pips)
	setInt(&doc.Level, patch.Level)
	setInt(&doc.XP, patch.XP)
	setInt(&doc.MaxGrit, patch.MaxGrit)

	if patch.Attributes != nil {
		patch.Attributes.STR.apply(&doc.Attributes.STR)
		patch.Attributes.DEX.apply(&doc.Attributes.DEX)
		patch.Attributes.WIL.apply(&doc.Attributes.WIL)
	}
	patch.HP.apply(&doc.HP)

	if patch.Appearance != nil {
		appearance := *patch.Appearance
		doc.Appearance = &appearance
	}

	if patch.Inventory != nil {
		doc.Inventory = *patch.Inventory
		if patch.InventoryUsage == nil {
			if err := dropStaleUsage(doc, old); err != nil {
				return err
			}
		}
	}
	if patch.InventoryUsage != nil {
		doc.InventoryUsage = patch.InventoryUsage
	}

	switch {
	case patch.IgnoredConditions != nil:
		doc.IgnoredConditions = *patch.IgnoredConditions
		doc.Conditions = nil
	case patch.Conditions != nil:
		doc.Conditions = *patch.Conditions
		doc.IgnoredConditions = nil
	}
	if ignored := c.ignoredFromDoc(doc); len(ignored) > doc.MaxGrit {
		return errors.Wrapf(mausritter.ErrGritExhausted, "%d ignored conditions with max grit %d",
			len(ignored), doc.MaxGrit).WithMeta("max_grit", doc.MaxGrit)
	}

	if patch.Hirelings != nil {
		doc.Hirelings = *patch.Hirelings
	}

	next, err := c.FromDocument(doc)
	if err != nil {
		return err
	}
	*ch = *next
	return nil
}

// dropStaleUsage forgets the stored flags of every slot whose text the patch
// changed, and of the partner it was paired with, so the new text is not
// read with the old item's pairing or placeholder state. The mirrored half
// of a pair only changes together with its primary.
func dropStaleUsage(doc, old *Document) error {
	oldTexts := characterTexts(old)
	newTexts := characterTexts(doc)
	for id, text := range newTexts {
		if oldTexts[id] == text {
			continue
		}
		state := old.InventoryUsage[id]
		if !state.TwoSlotSecondary || state.PairedWith == "" {
			continue
		}
		if primary := state.PairedWith; newTexts[primary] == oldTexts[primary] {
			return errors.Wrapf(inventory.ErrSecondarySlot, "slot %q mirrors %q", id, primary).
				WithMeta("slot_id", id)
		}
	}

	usage := make(map[string]SlotUsageDoc, len(doc.InventoryUsage))
	for k, v := range doc.InventoryUsage {
		usage[k] = v
	}
	for id, text := range newTexts {
		if oldTexts[id] == text {
			continue
		}
		if partner := usage[id].PairedWith; partner != "" {
			delete(usage, partner)
		}
		delete(usage, id)
	}
	doc.InventoryUsage = usage
	return nil
}

func characterTexts(doc *Document) map[string]string {
	out := map[string]string{
		"main_paw": doc.Inventory.MainPaw,
		"off_paw":  doc.Inventory.OffPaw,
	}
	for i, id := range bodySlots {
		if i < len(doc.Inventory.Body) {
			out[string(id)] = doc.Inventory.Body[i]
		} else {
			out[string(id)] = ""
		}
	}
	for i, id := range packSlots {
		if i < len(doc.Inventory.Pack) {
			out[string(id)] = doc.Inventory.Pack[i]
		} else {
			out[string(id)] = ""
		}
	}
	return out
}

func (p *StatPatch) apply(s *StatDoc) {
	if p == nil {
		return
	}
	setInt(&s.Max, p.Max)
	setInt(&s.Current, p.Current)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
