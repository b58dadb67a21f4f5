// Package catalog holds the static Mausritter item table and the random
// tables the character generator samples from.
package catalog

import "strings"

// Category groups items by how the sheet treats them
type Category string

// Item categories
const (
	CategoryWeapon    Category = "weapon"
	CategoryArmour    Category = "armour"
	CategoryGear      Category = "gear"
	CategorySpell     Category = "spell"
	CategoryCondition Category = "condition"
	CategoryProvision Category = "provision"
)

// Categories lists every category in picker order
var Categories = []Category{
	CategoryWeapon,
	CategoryArmour,
	CategoryGear,
	CategorySpell,
	CategoryCondition,
	CategoryProvision,
}

// Usage selects how an item's charge marks behave
type Usage string

const (
	// UsageStandard items count three uses left to right
	UsageStandard Usage = "standard"
	// UsageSixUse items (light sources) track six half steps, each mark on its own
	UsageSixUse Usage = "six_use"
)

// Pairing selects which topology a two slot item pairs through
type Pairing string

const (
	// PairingNormal pairs within the target's own grid
	PairingNormal Pairing = "normal"
	// PairingLightArmour pairs the off paw with the second body slot
	PairingLightArmour Pairing = "light_armour"
)

// Item is an immutable catalog entry
type Item struct {
	Name           string
	SlotCost       int
	Category       Category
	ClearCondition string
	Usage          Usage
	Pairing        Pairing
	// Detail is the short rules text shown in the picker (damage, effect)
	Detail string
}

// IsTwoSlot reports whether the item fills a pair of slots
func (i Item) IsTwoSlot() bool {
	return i.SlotCost == 2
}

// IsCondition reports whether the item is a condition card
func (i Item) IsCondition() bool {
	return i.Category == CategoryCondition
}

// Freeform returns the definition used for text with no catalog entry:
// one slot of gear with standard usage and normal pairing.
func Freeform(text string) Item {
	return Item{
		Name:     strings.TrimSpace(text),
		SlotCost: 1,
		Category: CategoryGear,
		Usage:    UsageStandard,
		Pairing:  PairingNormal,
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
