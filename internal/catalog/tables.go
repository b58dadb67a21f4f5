package catalog

import (
	"fmt"
	"strings"
)

// HirelingPrefix marks a background item that grants a hireling instead of
// an inventory item, e.g. "Hireling: Loyal beetle".
const HirelingPrefix = "Hireling: "

// Background is one row of the background table
type Background struct {
	Name  string
	ItemA string
	ItemB string
}

// Birthsign pairs a sign with the disposition it grants
type Birthsign struct {
	Sign        string
	Disposition string
}

// HirelingType is a kind of hireling that can be recruited
type HirelingType struct {
	Name string
	// Wage is the daily cost in pips, zero for hirelings granted by a background
	Wage int
}

// Tables holds the random tables sampled by the character generator
type Tables struct {
	Backgrounds          map[[2]int]Background
	FallbackBackground   Background
	Birthsigns           []Birthsign
	CoatColors           []string
	CoatPatterns         []string
	PhysicalDetails      map[int]string
	FirstNames           []string
	FamilyNames          []string
	HirelingTypes        []HirelingType
	HirelingLooks        []string
	HirelingDispositions []string
}

// BackgroundFor looks up the background for an HP and pips roll, falling
// back to the first row when the pair is off the table.
func (t *Tables) BackgroundFor(hp, pips int) Background {
	if bg, ok := t.Backgrounds[[2]int{hp, pips}]; ok {
		return bg
	}
	return t.FallbackBackground
}

// PhysicalDetail looks up a d66 roll (tens die then ones die)
func (t *Tables) PhysicalDetail(d66 int) string {
	return t.PhysicalDetails[d66]
}

// HirelingType finds a hireling type by name, case insensitively
func (t *Tables) HirelingType(name string) (HirelingType, bool) {
	for _, ht := range t.HirelingTypes {
		if strings.EqualFold(ht.Name, strings.TrimSpace(name)) {
			return ht, true
		}
	}
	return HirelingType{}, false
}

// HirelingGrant reports whether a background item grants a hireling and
// returns the hireling type.
func HirelingGrant(item string) (string, bool) {
	if !strings.HasPrefix(item, HirelingPrefix) {
		return "", false
	}
	kind := strings.TrimSpace(strings.TrimPrefix(item, HirelingPrefix))
	return kind, kind != ""
}

// DefaultTables returns new SRD 2.3 tables
func DefaultTables() *Tables {
	t := &Tables{
		Backgrounds:        make(map[[2]int]Background, 36),
		FallbackBackground: Background{"Test subject", ItemMagicMissile, ItemLeadCoat},
		Birthsigns: []Birthsign{
			{"Star", "Brave / Reckless"},
			{"Wheel", "Industrious / Unimaginative"},
			{"Acorn", "Inquisitive / Stubborn"},
			{"Storm", "Generous / Wrathful"},
			{"Moon", "Wise / Mysterious"},
			{"Mother", "Nurturing / Worrying"},
		},
		CoatColors:   []string{"Chocolate", "Black", "White", "Tan", "Grey", "Blue"},
		CoatPatterns: []string{"Solid", "Brindle", "Patchy", "Banded", "Marbled", "Flecked"},
		FirstNames: []string{
			"Ada", "Agate", "Agnes", "Aloe", "April", "Azalea", "Bay", "Belladonna",
			"Blossom", "Brie", "Brynn", "Cherry", "Claire", "Crocus", "Dahlia", "Daisy",
			"Else", "Emerald", "Erin", "Grace", "Gwendoline", "Hazel", "Heather", "Holly",
			"Abe", "Alder", "Ambrose", "Anise", "Barley", "Basil", "Bramble", "Burdock",
			"Cole", "Conrad", "Edgar", "Fennel", "Hawthorn", "Jasper", "Rowan", "Tobias",
		},
		FamilyNames: []string{
			"Ashdown", "Beech", "Berry", "Black", "Briar", "Bright", "Buckthorn", "Burrows",
			"Butterball", "Chestnut", "Clover", "Copper", "Daisy", "Duckweed", "Elder", "Grey",
			"Haystack", "Hazelnut", "Holly", "Honeydew", "Kettle", "Lavender", "Moss", "Oakhollow",
		},
		HirelingTypes: []HirelingType{
			{"Torchbearer", 1},
			{"Labourer", 2},
			{"Tunnel digger", 5},
			{"Armourer", 8},
			{"Local guide", 10},
			{"Mouse-at-arms", 10},
			{"Scholar", 20},
			{"Knight", 25},
			{"Interpreter", 30},
			{"Loyal beetle", 0},
			{"Drunken torchbearer", 0},
			{"Pack rat", 0},
		},
		HirelingLooks: []string{
			"Scruffy fur", "Patched cloak", "Missing tooth", "Nervous whiskers", "Broad shoulders", "Tiny frame",
			"Ink stained paws", "Bright eyes", "Notched ear", "Braided tail", "Soot smudged", "Well groomed",
		},
		HirelingDispositions: []string{
			"Loyal", "Cowardly", "Greedy", "Cheerful", "Grumpy", "Curious",
			"Lazy", "Brave", "Superstitious", "Talkative", "Suspicious", "Earnest",
		},
	}

	rows := [6][6]Background{
		{
			{"Test subject", ItemMagicMissile, ItemLeadCoat},
			{"Kitchen forager", ItemShieldJerkin, "Pot of cooking"},
			{"Cage dweller", "Spell: Be understood", "Bottle of milk"},
			{"Hedge witch", "Spell: Heal", "Incense packet"},
			{"Leatherworker", ItemShieldJerkin, "Shears"},
			{"Street tough", "Dagger (Light, d6)", "Flask of coffee"},
		},
		{
			{"Mendicant priest", "Spell: Restore", "Holy symbol"},
			{"Beetleherd", HirelingPrefix + "Loyal beetle", `Pole, 6"`},
			{"Ale brewer", HirelingPrefix + "Drunken torchbearer", "Small barrel of ale"},
			{"Fishermouse", "Net", "Needle (Light, d6)"},
			{"Blacksmith", "Hammer (Medium, d6/d8)", "Metal file"},
			{"Wireworker", "Wire, spool", "Electric lantern"},
		},
		{
			{"Woodcutter", "Axe (Medium, d6/d8)", "Twine, roll"},
			{"Bat cultist", "Spell: Darkness", "Bag of bat teeth"},
			{"Tin miner", "Pickaxe (Medium, d6/d8)", ItemLantern},
			{"Trash collector", "Trashhook (Heavy, d10)", "Mirror"},
			{"Wall rover", "Fishhook", "Thread, spool"},
			{"Merchant", HirelingPrefix + "Pack rat", "20p IOU from a noblemouse"},
		},
		{
			{"Raft crew", "Hammer (Medium, d6/d8)", "Wooden spikes"},
			{"Worm wrangler", `Pole, 6"`, "Soap"},
			{"Sparrow rider", "Fishhook", "Goggles"},
			{"Sewer guide", "Metal file", "Thread, spool"},
			{"Prison guard", `Chain, 6"`, "Spear (Heavy, d10)"},
			{"Fungus farmer", "Dried mushroom (as rations)", "Spore mask"},
		},
		{
			{"Dam builder", "Shovel", "Wooden spikes"},
			{"Cartographer", "Quill & ink", "Compass"},
			{"Trap thief", "Block of cheese", "Glue"},
			{"Vagabond", "Tent", "Treasure map, dubious"},
			{"Grain farmer", "Spear (Heavy, d10)", "Whistle"},
			{"Message runner", "Bedroll", "Documents, sealed"},
		},
		{
			{"Troubadour", "Musical instrument", "Disguise kit"},
			{"Gambler", "Set of loaded dice", "Mirror"},
			{"Sap tapper", "Bucket", "Wooden spikes"},
			{"Bee keeper", "Jar of honey", "Net"},
			{"Librarian", "Scrap of paper from a spellbook", "Quill & ink"},
			{"Fallen noble", "Felt hat", "Perfume"},
		},
	}
	for hp := range rows {
		for pips, bg := range rows[hp] {
			t.Backgrounds[[2]int{hp + 1, pips + 1}] = bg
		}
	}

	details := [6][6]string{
		{"Scarred body", "Corpulent body", "Skeletal body", "Willowy body", "Tiny body", "Massive body"},
		{"War paint", "Foreign clothes", "Elegant clothes", "Patched clothes", "Fashionable clothes", "Unwashed clothes"},
		{"Missing ear", "Lumpy face", "Beautiful face", "Round face", "Delicate face", "Elongated face"},
		{"Groomed fur", "Dreadlocks", "Dyed fur", "Shaved fur", "Frizzy fur", "Silky fur"},
		{"Night black eyes", "Eye patch", "Blood red eyes", "Wise eyes", "Sharp eyes", "Luminous eyes"},
		{"Cropped tail", "Whip-like tail", "Tufted tail", "Stubby tail", "Prehensile tail", "Curly tail"},
	}
	t.PhysicalDetails = make(map[int]string, 36)
	for tens := range details {
		for ones, detail := range details[tens] {
			t.PhysicalDetails[(tens+1)*10+ones+1] = detail
		}
	}

	return t
}

// String renders a birthsign the way the sheet shows it
func (b Birthsign) String() string {
	return fmt.Sprintf("%s (%s)", b.Sign, b.Disposition)
}
