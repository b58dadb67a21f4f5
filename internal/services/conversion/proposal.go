package conversion

import (
	"fmt"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/idgen"
)

// ApplyProposal overwrites the rolled fields, rebuilds the inventory from the
// proposal's items and attaches the granted hirelings. Notes and banked text
// survive; grit, level and xp start over.
func (c *converter) ApplyProposal(
	ch *mausritter.Character,
	p *mausritter.Proposal,
	hirelingIDs idgen.Generator,
) []string {
	if ch == nil || p == nil {
		return nil
	}

	ch.Name = p.Name
	ch.Background = p.Background
	ch.Attributes = p.Attributes()
	ch.HP = mausritter.Full(p.HP)
	ch.SetPips(p.Pips)
	ch.Level = mausritter.MinLevel
	ch.XP = 0
	ch.Appearance = p.Appearance.Appearance()
	ch.RestoreGrit(0, nil)

	inv := inventory.NewCharacter()
	// the main paw waits for the player to pick a weapon
	_ = inv.PlacePlaceholder(inventory.MainPaw, inventory.SelectWeaponText)

	items := make([]catalog.Item, 0, len(p.Items))
	for _, name := range p.Items {
		items = append(items, c.catalog.Resolve(name))
	}
	overflow := inv.Stow(items)
	inv.ResetUsage()
	ch.Inventory = inv

	var warnings []string
	for _, item := range overflow {
		warnings = append(warnings, fmt.Sprintf("no room for %s", item.Name))
	}

	ch.Hirelings = nil
	for _, ph := range p.Hirelings {
		ch.AddHireling(ph.Hireling(hirelingIDs.Generate()))
	}

	return warnings
}
