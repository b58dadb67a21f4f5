package conversion_test

import (
	"encoding/json"
	stderrors "errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/idgen"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

type ConverterTestSuite struct {
	suite.Suite
	catalog   *catalog.Catalog
	converter conversion.CharacterConverter
}

func TestConverterSuite(t *testing.T) {
	suite.Run(t, new(ConverterTestSuite))
}

func (s *ConverterTestSuite) SetupTest() {
	s.catalog = catalog.Default()
	conv, err := conversion.New(&conversion.Config{Catalog: s.catalog})
	s.Require().NoError(err)
	s.converter = conv
}

func (s *ConverterTestSuite) item(name string) catalog.Item {
	item, err := s.catalog.Lookup(name)
	s.Require().NoError(err)
	return item
}

// sampleCharacter exercises every kind of slot state
func (s *ConverterTestSuite) sampleCharacter() *mausritter.Character {
	c := mausritter.NewCharacter("char_1")
	c.Name = "Agate Chestnut"
	c.Background = "Beetleherd"
	c.Attributes = mausritter.Attributes{
		STR: mausritter.Attribute{Max: 9, Current: 7},
		DEX: mausritter.Full(11),
		WIL: mausritter.Full(6),
	}
	c.HP = mausritter.Attribute{Max: 4, Current: 2}
	c.SetPips(37)
	c.Level = 2
	c.XP = 1200
	c.BankedText = "40p at the bank"
	c.Notes = "Owes the miller a favour"
	c.Appearance = mausritter.Appearance{
		Birthsign: "Star", Disposition: "Brave / Reckless",
		CoatColor: "Tan", CoatPattern: "Banded", PhysicalDetail: "Tufted tail",
	}
	c.RaiseMaxGrit(2)
	s.Require().NoError(c.IgnoreCondition(mausritter.IgnoredCondition{
		Name: catalog.ConditionInjured, ClearCondition: s.catalog.ClearConditionFor(catalog.ConditionInjured),
	}))

	inv := c.Inventory
	s.Require().NoError(inv.PlacePlaceholder(inventory.MainPaw, inventory.SelectWeaponText))
	s.Require().NoError(inv.Place(inventory.Body1, s.item(catalog.ItemLeadCoat)))
	s.Require().NoError(inv.Place(inventory.Pack1, s.item(catalog.ItemTorches)))
	s.Require().NoError(inv.ToggleCharge(inventory.Pack1, 0))
	s.Require().NoError(inv.ToggleCharge(inventory.Pack1, 2))
	s.Require().NoError(inv.ToggleCharge(inventory.Pack1, 2))
	s.Require().NoError(inv.Place(inventory.Pack2, s.item("Rope")))
	s.Require().NoError(inv.ToggleCharge(inventory.Pack2, 0))
	s.Require().NoError(inv.Place(inventory.Pack3, s.item("Spear (Heavy, d10)")))
	s.Require().NoError(inv.Place(inventory.Pack5, s.item(catalog.ConditionExhausted)))
	s.Require().NoError(inv.SetText(inventory.Pack2, "Rope, frayed"))

	beetle := c.AddHireling(&mausritter.Hireling{
		ID: "hireling_a", Type: "Loyal beetle", Look: "Shiny shell", Disposition: "Loyal",
		Attributes: mausritter.Attributes{STR: mausritter.Full(8), DEX: mausritter.Full(5), WIL: mausritter.Full(4)},
		HP:         mausritter.Full(3),
	})
	s.Require().NoError(beetle.Inventory.Place(inventory.Pack1, s.item(catalog.ItemLeadCoat)))
	s.Require().NoError(beetle.Inventory.Place(inventory.Paw1, s.item(catalog.ItemLantern)))
	s.Require().NoError(beetle.Inventory.ToggleCharge(inventory.Paw1, 1))
	c.AddHireling(&mausritter.Hireling{ID: "hireling_b", Type: "Loyal beetle", Name: "Clicky"})

	return c
}

func (s *ConverterTestSuite) roundTrip(c *mausritter.Character) *mausritter.Character {
	data, err := s.converter.Marshal(c)
	s.Require().NoError(err)
	out, err := s.converter.Unmarshal(data)
	s.Require().NoError(err)
	return out
}

func (s *ConverterTestSuite) TestRoundTrip() {
	c := s.sampleCharacter()
	s.Equal(c, s.roundTrip(c))
}

func (s *ConverterTestSuite) TestRoundTripEmptyCharacter() {
	c := mausritter.NewCharacter("char_empty")
	s.Equal(c, s.roundTrip(c))
}

func (s *ConverterTestSuite) TestRoundTripAfterRandomEdits() {
	rng := rand.New(rand.NewSource(11))
	all := s.catalog.All()
	c := mausritter.NewCharacter("char_random")
	c.RaiseMaxGrit(3)
	h := c.AddHireling(&mausritter.Hireling{ID: "h1", Type: "Torchbearer"})
	invs := []*inventory.Inventory{c.Inventory, h.Inventory}

	for step := 0; step < 400; step++ {
		inv := invs[rng.Intn(len(invs))]
		ids := inv.Shape().IDs()
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(7) {
		case 0, 1:
			s.Require().NoError(inv.Place(id, all[rng.Intn(len(all))]))
		case 2:
			s.Require().NoError(inv.Clear(id))
		case 3:
			_ = inv.SetText(id, []string{"", "Lucky button", "Select weapon"}[rng.Intn(3)])
		case 4:
			s.Require().NoError(inv.ToggleCharge(id, rng.Intn(inventory.MarkerCount)))
		case 5:
			s.Require().NoError(inv.PlacePlaceholder(id, inventory.SelectWeaponText))
		case 6:
			if rng.Intn(2) == 0 {
				_ = c.IgnoreCondition(mausritter.IgnoredCondition{Name: catalog.ConditionExhausted})
			} else {
				_, _ = c.UnignoreCondition(0)
			}
		}
		if step%20 == 0 {
			s.Require().Equal(c, s.roundTrip(c), "step %d", step)
		}
	}
	s.Equal(c, s.roundTrip(c))
}

func (s *ConverterTestSuite) TestDocumentShape() {
	data, err := s.converter.Marshal(s.sampleCharacter())
	s.Require().NoError(err)

	var raw map[string]interface{}
	s.Require().NoError(json.Unmarshal(data, &raw))

	s.Equal(float64(1), raw["grit"])
	s.Equal(float64(2), raw["max_grit"])
	s.Equal([]interface{}{catalog.ConditionInjured}, raw["conditions"])

	inv := raw["inventory"].(map[string]interface{})
	s.Equal(inventory.SelectWeaponText, inv["main_paw"])
	s.Equal([]interface{}{catalog.ItemLeadCoat, catalog.ItemLeadCoat}, inv["body"])
	s.Len(inv["pack"], 6)

	usage := raw["inventory_usage"].(map[string]interface{})
	torches := usage["pack_1"].(map[string]interface{})
	s.Equal([]interface{}{"half", false, "used"}, torches["markers"])
	s.Equal(true, torches["sixUse"])

	body2 := usage["body_2"].(map[string]interface{})
	s.Equal(true, body2["twoSlotItem"])
	s.Equal(true, body2["twoSlotSecondary"])
	s.Equal("body_1", body2["pairedWith"])

	exhausted := usage["pack_5"].(map[string]interface{})
	s.Equal(true, exhausted["conditionSlot"])
	s.Equal("After long rest", exhausted["clearCondition"])

	hirelings := raw["hirelings"].([]interface{})
	s.Len(hirelings, 2)
	beetle := hirelings[0].(map[string]interface{})
	s.Equal("Loyal beetle", beetle["type"])
	beetleUsage := beetle["usage"].(map[string]interface{})
	s.Equal([]interface{}{false, "half", false}, beetleUsage["paws"].([]interface{})[0])
	s.Len(beetle["inventory"].(map[string]interface{})["pack"], 4)
}

func (s *ConverterTestSuite) TestDepletedFlagMirrorsAcrossPair() {
	c := mausritter.NewCharacter("char_1")
	s.Require().NoError(c.Inventory.Place(inventory.Body1, s.item(catalog.ItemLeadCoat)))
	for i := 0; i < inventory.MarkerCount; i++ {
		s.Require().NoError(c.Inventory.ToggleCharge(inventory.Body1, i))
	}

	doc := s.converter.ToDocument(c)
	s.True(doc.InventoryUsage["body_1"].Depleted)
	s.True(doc.InventoryUsage["body_2"].Depleted)
	s.False(doc.InventoryUsage["pack_1"].Depleted)
}

const legacyDocument = `{
  "name": "Hazel Moss",
  "background": "Leatherworker",
  "attributes": {"STR": {"max": 8, "current": 8}, "DEX": {"max": 10, "current": 12}, "WIL": {"max": 7, "current": 7}},
  "hp": {"max": 5, "current": 5},
  "pips": 400,
  "level": 1,
  "xp": 0,
  "grit": 2,
  "max_grit": 1,
  "inventory": {
    "main_paw": "Select weapon",
    "off_paw": "Shield & jerkin (Light armour)",
    "body": ["", "Shield & jerkin (Light armour)"],
    "pack": ["Torches", "Injured", "Shears", "", "", ""]
  },
  "inventory_usage": {
    "off_paw": {"markers": [false, false, false], "twoSlotItem": true, "twoSlotSecondary": false, "conditionSlot": false, "depleted": false},
    "body_2": {"markers": [false, false, false], "twoSlotItem": true, "twoSlotSecondary": true, "conditionSlot": false, "depleted": false},
    "pack_1": {"markers": ["half", false, false], "twoSlotItem": false, "twoSlotSecondary": false, "conditionSlot": false, "depleted": false},
    "pack_2": {"markers": [false, false, false], "twoSlotItem": false, "twoSlotSecondary": false, "conditionSlot": true, "depleted": false},
    "pack_3": {"markers": [true, false, false], "twoSlotItem": false, "twoSlotSecondary": false, "conditionSlot": false, "depleted": false}
  },
  "conditions": ["Hungry", "Frightened"],
  "hirelings": [
    {"type": "Torchbearer", "look": "Scruffy fur", "disposition": "Cheerful",
     "attributes": {"STR": {"max": 6, "current": 6}, "DEX": {"max": 7, "current": 7}, "WIL": {"max": 5, "current": 5}},
     "hp": {"max": 3, "current": 3},
     "inventory": {"paws": ["Torches", ""], "pack": ["Rations", "", "", ""]},
     "usage": {"paws": [["used", false, false], [false, false, false]], "pack": [[false, false, false], [false, false, false], [false, false, false], [false, false, false]]}}
  ]
}`

func (s *ConverterTestSuite) TestLegacyDocumentUpgrade() {
	c, err := s.converter.Unmarshal([]byte(legacyDocument))
	s.Require().NoError(err)

	s.Equal("Hazel Moss", c.Name)
	s.Equal(mausritter.MaxPips, c.Pips)
	s.Equal(mausritter.Full(10), c.Attributes.DEX)

	main, err := c.Inventory.Slot(inventory.MainPaw)
	s.Require().NoError(err)
	s.True(main.NeedsSelection())

	off, err := c.Inventory.Slot(inventory.OffPaw)
	s.Require().NoError(err)
	s.Equal(inventory.Body2, off.PairedWith)
	s.False(off.Secondary)
	body2, err := c.Inventory.Slot(inventory.Body2)
	s.Require().NoError(err)
	s.Equal(inventory.OffPaw, body2.PairedWith)
	s.True(body2.Secondary)

	torches, err := c.Inventory.Slot(inventory.Pack1)
	s.Require().NoError(err)
	s.Equal(catalog.UsageSixUse, torches.Usage.Kind)
	s.Equal(inventory.MarkHalf, torches.Usage.Charges[0])

	injured, err := c.Inventory.Slot(inventory.Pack2)
	s.Require().NoError(err)
	s.True(injured.Contents.IsCondition)
	s.Equal("Heal 1 STR at full rest", injured.Contents.ClearCondition)

	shears, err := c.Inventory.Slot(inventory.Pack3)
	s.Require().NoError(err)
	s.Equal(inventory.MarkFull, shears.Usage.Charges[0])

	// two ignored conditions raise the stored max grit of 1
	s.Equal(mausritter.Grit{Current: 0, Max: 2}, c.Grit())
	ignored := c.IgnoredConditions()
	s.Require().Len(ignored, 2)
	s.Equal("After a meal", ignored[0].ClearCondition)

	s.Require().Len(c.Hirelings, 1)
	h := c.Hirelings[0]
	s.Equal("hireling_1", h.ID)
	s.Equal(1, h.Ordinal)
	lamp, err := h.Inventory.Slot(inventory.Paw1)
	s.Require().NoError(err)
	s.Equal(catalog.ItemTorches, lamp.Text())
	s.Equal(catalog.UsageSixUse, lamp.Usage.Kind)

	s.Equal(c, s.roundTrip(c))
}

func (s *ConverterTestSuite) TestLoadOrDefaultFallsBack() {
	testCases := []struct {
		name string
		data string
	}{
		{"not json", `{"name": `},
		{"wrong types", `{"inventory": {"pack": [1, 2]}}`},
		{"too many pack slots", `{"inventory": {"pack": ["a","b","c","d","e","f","g"]}}`},
		{"unknown slot", `{"inventory_usage": {"tail": {"markers": [false, false, false]}}}`},
		{"unknown mark", `{"inventory": {"pack": ["Rope"]}, "inventory_usage": {"pack_1": {"markers": ["sparkly", false, false]}}}`},
		{"partner outside topology", `{"version": 2, "inventory": {"body": ["", "Chain mail"], "pack": ["Chain mail"]},
			"inventory_usage": {"body_2": {"markers": [false, false, false], "twoSlotItem": true,
			"twoSlotSecondary": true, "pairedWith": "pack_1"}}}`},
		{"half mark on standard item", `{"version": 2, "inventory": {"pack": ["Rope"]},
			"inventory_usage": {"pack_1": {"markers": ["half", false, false]}}}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, err := s.converter.LoadOrDefault([]byte(tc.data))
			s.Require().Error(err)
			s.True(errors.IsDataLoss(err), err.Error())
			s.True(stderrors.Is(err, conversion.ErrInvalidDocument))
			s.Require().NotNil(c)
			s.True(c.Inventory.IsEmpty())
			s.Equal(mausritter.MinLevel, c.Level)
		})
	}
}

func (s *ConverterTestSuite) TestLoadOrDefaultHappyPath() {
	c, err := s.converter.LoadOrDefault([]byte(legacyDocument))
	s.NoError(err)
	s.Equal("Hazel Moss", c.Name)
}

func (s *ConverterTestSuite) TestApplyProposal() {
	c := mausritter.NewCharacter("char_1")
	c.Notes = "keep me"
	c.RaiseMaxGrit(1)
	s.Require().NoError(c.IgnoreCondition(mausritter.IgnoredCondition{Name: "Hungry"}))

	p := &mausritter.Proposal{
		Name: "Ada Ashdown", Background: "Beetleherd",
		STR: 9, DEX: 7, WIL: 8, HP: 2, Pips: 2,
		Appearance: mausritter.ProposalAppearance{Birthsign: "Star", Disposition: "Brave / Reckless"},
		Items: []string{
			catalog.ItemTorches, catalog.ItemRations, `Pole, 6"`, catalog.ItemShieldJerkin,
			"Spear (Heavy, d10)", "Rope", "Net", "Soap", "Bucket",
		},
		Hirelings: []mausritter.ProposedHireling{{Type: "Loyal beetle", STR: 8, DEX: 5, WIL: 4, HP: 3}},
	}

	warnings := s.converter.ApplyProposal(c, p, idgen.NewSequential("hireling"))

	s.Equal([]string{"no room for Spear (Heavy, d10)", "no room for Bucket"}, warnings)
	s.Equal("Ada Ashdown", c.Name)
	s.Equal(mausritter.Full(9), c.Attributes.STR)
	s.Equal(mausritter.Full(2), c.HP)
	s.Equal(2, c.Pips)
	s.Equal("keep me", c.Notes)
	s.Equal(mausritter.Grit{}, c.Grit())
	s.Equal("Star", c.Appearance.Birthsign)

	main, err := c.Inventory.Slot(inventory.MainPaw)
	s.Require().NoError(err)
	s.True(main.NeedsSelection())
	body2, err := c.Inventory.Slot(inventory.Body2)
	s.Require().NoError(err)
	s.Equal(catalog.ItemShieldJerkin, body2.Text())
	s.Equal(inventory.OffPaw, body2.PairedWith)
	for _, slot := range c.Inventory.Slots() {
		s.True(slot.Usage.IsClear())
	}
	s.NoError(c.Inventory.Validate())

	s.Require().Len(c.Hirelings, 1)
	s.Equal("hireling_1", c.Hirelings[0].ID)
	s.Equal(1, c.Hirelings[0].Ordinal)
	s.True(c.Hirelings[0].Inventory.IsEmpty())
	s.Equal(mausritter.Full(3), c.Hirelings[0].HP)
}

func (s *ConverterTestSuite) TestNewRequiresCatalog() {
	_, err := conversion.New(&conversion.Config{})
	s.True(errors.IsInvalidArgument(err))

	_, err = conversion.New(nil)
	s.True(errors.IsInvalidArgument(err))
}
