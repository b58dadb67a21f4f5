package catalog

// Item names referenced by the generator and the sheet
const (
	ItemTorches        = "Torches"
	ItemLantern        = "Lantern"
	ItemRations        = "Rations"
	ItemLeadCoat       = "Lead coat (Heavy armour)"
	ItemShieldJerkin   = "Shield & jerkin (Light armour)"
	ItemMagicMissile   = "Spell: Magic missile"
	ConditionInjured   = "Injured"
	ConditionExhausted = "Exhausted"
)

func weapon(name, detail string, slots int) Item {
	return Item{Name: name, SlotCost: slots, Category: CategoryWeapon, Detail: detail}
}

func armour(name string, pairing Pairing, detail string) Item {
	return Item{Name: name, SlotCost: 2, Category: CategoryArmour, Pairing: pairing, Detail: detail}
}

func gear(name string) Item {
	return Item{Name: name, SlotCost: 1, Category: CategoryGear}
}

func light(name, detail string) Item {
	return Item{Name: name, SlotCost: 1, Category: CategoryGear, Usage: UsageSixUse, Detail: detail}
}

func spell(name, detail string) Item {
	return Item{Name: "Spell: " + name, SlotCost: 1, Category: CategorySpell, Detail: detail}
}

func condition(name, clear, detail string) Item {
	return Item{Name: name, SlotCost: 1, Category: CategoryCondition, ClearCondition: clear, Detail: detail}
}

func provision(name string) Item {
	return Item{Name: name, SlotCost: 1, Category: CategoryProvision, Detail: "Restores HP during a meal"}
}

func srdItems() []Item {
	return []Item{
		weapon("Needle (Light, d6)", "d6", 1),
		weapon("Dagger (Light, d6)", "d6", 1),
		weapon("Oak staff (Light, d6)", "d6", 1),
		weapon("Sword (Medium, d6/d8)", "d6 one paw, d8 both paws", 1),
		weapon("Axe (Medium, d6/d8)", "d6 one paw, d8 both paws", 1),
		weapon("Mace (Medium, d6/d8)", "d6 one paw, d8 both paws", 1),
		weapon("Hammer (Medium, d6/d8)", "d6 one paw, d8 both paws", 1),
		weapon("Pickaxe (Medium, d6/d8)", "d6 one paw, d8 both paws", 1),
		weapon("Spear (Heavy, d10)", "d10, both paws", 2),
		weapon("Hookarm (Heavy, d10)", "d10, both paws", 2),
		weapon("Trashhook (Heavy, d10)", "d10, both paws", 2),
		weapon("Sling (Light, d6)", "d6, ranged", 1),
		weapon("Hand crossbow (Light, d6)", "d6, ranged", 1),
		weapon("Bow (Heavy, d8)", "d8, ranged, both paws", 2),
		gear("Stones, pouch"),
		gear("Arrows, quiver"),

		armour(ItemShieldJerkin, PairingLightArmour, "1 defence, paw and body"),
		armour(ItemLeadCoat, PairingNormal, "2 defence, both body slots"),

		light(ItemTorches, "6 uses of light"),
		light(ItemLantern, "6 uses of light"),
		light("Electric lantern", "6 uses of light"),
		gear("Rope"),
		gear("Pot of cooking"),
		gear("Bottle of milk"),
		gear("Incense packet"),
		gear("Shears"),
		gear("Flask of coffee"),
		gear("Holy symbol"),
		gear(`Pole, 6"`),
		gear("Small barrel of ale"),
		gear("Net"),
		gear("Metal file"),
		gear("Wire, spool"),
		gear("Twine, roll"),
		gear("Bag of bat teeth"),
		gear("Mirror"),
		gear("Fishhook"),
		gear("Thread, spool"),
		gear("20p IOU from a noblemouse"),
		gear("Wooden spikes"),
		gear("Soap"),
		gear("Goggles"),
		gear(`Chain, 6"`),
		gear("Spore mask"),
		gear("Shovel"),
		gear("Quill & ink"),
		gear("Compass"),
		gear("Block of cheese"),
		gear("Glue"),
		gear("Tent"),
		gear("Treasure map, dubious"),
		gear("Whistle"),
		gear("Bedroll"),
		gear("Documents, sealed"),
		gear("Musical instrument"),
		gear("Disguise kit"),
		gear("Set of loaded dice"),
		gear("Bucket"),
		gear("Jar of honey"),
		gear("Scrap of paper from a spellbook"),
		gear("Felt hat"),
		gear("Perfume"),

		spell("Magic missile", "Deal [SUM] + [DICE] damage to a creature"),
		spell("Be understood", "Make your meaning clear to [DICE] creatures"),
		spell("Heal", "Heal [SUM] STR and remove Injured"),
		spell("Restore", "Remove Exhausted or Frightened from [DICE] + 1 creatures"),
		spell("Darkness", "Create a sphere of darkness [SUM] x 2 inches across"),
		spell("Fireball", "Deal [SUM] + [DICE] damage to all creatures within 6 inches"),
		spell("Light", "Blind [DICE] creatures with bright light"),
		spell("Ghost beetle", "Summon an invisible beetle carrying 6 slots"),
		spell("Invisible ring", "Become invisible for [DICE] turns"),
		spell("Knock", "Open a door or mechanism"),
		spell("Grow", "Grow to [DICE] + 1 times your size"),
		spell("Catnip", "Turn an object into catnip for [DICE] turns"),

		condition(ConditionExhausted, "After long rest", "Occupies a slot until cleared"),
		condition("Frightened", "After short rest", "Disadvantage on WIL saves, cannot move closer to the source"),
		condition("Hungry", "After a meal", "Occupies a slot until cleared"),
		condition(ConditionInjured, "Heal 1 STR at full rest", "Disadvantage on STR and DEX saves"),
		condition("Drained", "After full rest", "Disadvantage on WIL saves"),

		provision(ItemRations),
		provision("Dried mushroom (as rations)"),
	}
}
