package testutils

import (
	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

// TestCharacterName is the default name for fixture characters
const TestCharacterName = "Bramble Ashcoat"

// CreateTestCharacter builds an accepted level one mouse carrying a spear,
// torches and rations, with one hireling attached. It panics on catalog
// drift so broken fixtures fail loudly.
func CreateTestCharacter(id string) *mausritter.Character {
	cat := catalog.Default()
	ch := mausritter.NewCharacter(id)
	ch.Name = TestCharacterName
	ch.Background = "Beetleherd"
	ch.Attributes = mausritter.Attributes{
		STR: mausritter.Full(9),
		DEX: mausritter.Full(8),
		WIL: mausritter.Full(11),
	}
	ch.HP = mausritter.Full(4)
	ch.SetPips(3)
	ch.Appearance = mausritter.Appearance{
		Birthsign:   "Star",
		Disposition: "Brave / Reckless",
		CoatColor:   "Chocolate",
		CoatPattern: "Solid",
	}

	place(ch.Inventory, cat, inventory.MainPaw, "Spear (Heavy, d10)")
	place(ch.Inventory, cat, inventory.Pack1, catalog.ItemTorches)
	place(ch.Inventory, cat, inventory.Pack2, catalog.ItemRations)

	h := &mausritter.Hireling{
		Type:        "Test hireling",
		Attributes:  mausritter.Attributes{STR: mausritter.Full(6), DEX: mausritter.Full(6), WIL: mausritter.Full(6)},
		HP:          mausritter.Full(3),
		Disposition: "Timid",
		Inventory:   inventory.NewHireling(),
	}
	h.ID = id + "_hireling_1"
	ch.AddHireling(h)

	return ch
}

func place(inv *inventory.Inventory, cat *catalog.Catalog, id inventory.SlotID, name string) {
	item, err := cat.Lookup(name)
	if err != nil {
		panic(err)
	}
	if err := inv.Place(id, item); err != nil {
		panic(err)
	}
}
