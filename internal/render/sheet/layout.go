// Package sheet draws a character sheet in the terminal and lets the player
// edit its inventory.
package sheet

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

// CellWidth is the width of one inventory cell, borders excluded
const CellWidth = 16

// Marker glyphs
const (
	markEmpty = "○"
	markHalf  = "◐"
	markFull  = "●"
)

// CharacterGrid is the on-screen arrangement of a character's slots: paws,
// then body, then the two by three pack.
var CharacterGrid = [][]inventory.SlotID{
	{inventory.MainPaw, inventory.Body1, inventory.Pack1, inventory.Pack2, inventory.Pack3},
	{inventory.OffPaw, inventory.Body2, inventory.Pack4, inventory.Pack5, inventory.Pack6},
}

// HirelingGrid is the arrangement of a hireling's slots
var HirelingGrid = [][]inventory.SlotID{
	{inventory.Paw1, inventory.Pack1, inventory.Pack2},
	{inventory.Paw2, inventory.Pack3, inventory.Pack4},
}

// Label turns a slot id or category into a heading, main_paw becomes
// "Main Paw"
func Label(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// Fit truncates or pads s to exactly width terminal columns
func Fit(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

// CellText is what an inventory cell shows on its first line
func CellText(slot inventory.Slot) string {
	switch {
	case slot.IsEmpty():
		return ""
	case slot.Secondary:
		return "↳ " + slot.Text()
	default:
		return slot.Text()
	}
}

// Marks renders the three charge markers of a slot
func Marks(slot inventory.Slot) string {
	if slot.IsEmpty() || slot.NeedsSelection() || slot.Secondary {
		return ""
	}
	var b strings.Builder
	for _, mark := range slot.Usage.Charges {
		switch mark {
		case inventory.MarkHalf:
			b.WriteString(markHalf)
		case inventory.MarkFull:
			b.WriteString(markFull)
		default:
			b.WriteString(markEmpty)
		}
	}
	return b.String()
}

// StatsLine summarises attributes, hit points, pips and grit
func StatsLine(ch *mausritter.Character) string {
	grit := ch.Grit()
	return fmt.Sprintf("STR %d/%d  DEX %d/%d  WIL %d/%d  HP %d/%d  Pips %d  Grit %d/%d",
		ch.Attributes.STR.Current, ch.Attributes.STR.Max,
		ch.Attributes.DEX.Current, ch.Attributes.DEX.Max,
		ch.Attributes.WIL.Current, ch.Attributes.WIL.Max,
		ch.HP.Current, ch.HP.Max,
		ch.Pips,
		grit.Current, grit.Max)
}

// HeaderLine names the character
func HeaderLine(ch *mausritter.Character) string {
	name := ch.Name
	if name == "" {
		name = "Unnamed mouse"
	}
	parts := []string{name}
	if ch.Background != "" {
		parts = append(parts, ch.Background)
	}
	parts = append(parts, fmt.Sprintf("Level %d", ch.Level))
	return strings.Join(parts, " · ")
}

// HirelingLine summarises one hireling
func HirelingLine(h *mausritter.Hireling) string {
	return fmt.Sprintf("%s  STR %d DEX %d WIL %d  HP %d/%d",
		h.DisplayName(),
		h.Attributes.STR.Current, h.Attributes.DEX.Current, h.Attributes.WIL.Current,
		h.HP.Current, h.HP.Max)
}

// PickerEntry is one row of the item picker
type PickerEntry struct {
	Item  catalog.Item
	Label string
}

// PickerEntries lists the catalog grouped by category
func PickerEntries(cat *catalog.Catalog) []PickerEntry {
	var out []PickerEntry
	for _, category := range catalog.Categories {
		for _, item := range cat.ByCategory(category) {
			label := fmt.Sprintf("%-10s %s", Label(string(category)), item.Name)
			if item.Detail != "" {
				label += " - " + item.Detail
			}
			out = append(out, PickerEntry{Item: item, Label: label})
		}
	}
	return out
}
