package inventory_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

type PlacementTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
	inv     *inventory.Inventory
}

func TestPlacementSuite(t *testing.T) {
	suite.Run(t, new(PlacementTestSuite))
}

func (s *PlacementTestSuite) SetupTest() {
	s.catalog = catalog.Default()
	s.inv = inventory.NewCharacter()
}

func (s *PlacementTestSuite) item(name string) catalog.Item {
	item, err := s.catalog.Lookup(name)
	s.Require().NoError(err)
	return item
}

func (s *PlacementTestSuite) slot(id inventory.SlotID) inventory.Slot {
	slot, err := s.inv.Slot(id)
	s.Require().NoError(err)
	return slot
}

func (s *PlacementTestSuite) assertEmptyUnpaired(id inventory.SlotID) {
	slot := s.slot(id)
	s.True(slot.IsEmpty(), "%s should be empty", id)
	s.False(slot.IsPaired(), "%s should be unpaired", id)
	s.False(slot.Secondary, "%s should not be secondary", id)
	s.True(slot.Usage.IsClear(), "%s usage should be reset", id)
}

func (s *PlacementTestSuite) TestShapes() {
	s.Equal(10, inventory.CharacterShape.Len())
	s.Equal(6, inventory.HirelingShape.Len())
	s.Len(s.inv.Slots(), 10)
	s.True(s.inv.IsEmpty())
}

func (s *PlacementTestSuite) TestPlaceSingleSlot() {
	s.Require().NoError(s.inv.Place(inventory.Pack1, s.item("Rope")))

	slot := s.slot(inventory.Pack1)
	s.Equal("Rope", slot.Text())
	s.Equal("Rope", slot.Contents.SourceItem)
	s.Equal(inventory.PlacementFilled, slot.Contents.State)
	s.False(slot.IsPaired())
	s.False(slot.Secondary)
	s.Equal(catalog.UsageStandard, slot.Usage.Kind)
}

func (s *PlacementTestSuite) TestHeavyArmourScenario() {
	s.Require().NoError(s.inv.Place(inventory.Body1, s.item(catalog.ItemLeadCoat)))

	body1 := s.slot(inventory.Body1)
	body2 := s.slot(inventory.Body2)
	s.Equal(catalog.ItemLeadCoat, body1.Text())
	s.Equal(catalog.ItemLeadCoat, body2.Text())
	s.False(body1.Secondary)
	s.True(body2.Secondary)
	s.Equal(inventory.Body2, body1.PairedWith)
	s.Equal(inventory.Body1, body2.PairedWith)
	s.NoError(s.inv.Validate())

	s.Require().NoError(s.inv.Clear(inventory.Body1))
	s.assertEmptyUnpaired(inventory.Body1)
	s.assertEmptyUnpaired(inventory.Body2)
}

func (s *PlacementTestSuite) TestPairingSymmetryAcrossTopology() {
	heavy := s.item("Spear (Heavy, d10)")
	testCases := []struct {
		shape   *inventory.Shape
		target  inventory.SlotID
		partner inventory.SlotID
	}{
		{inventory.CharacterShape, inventory.MainPaw, inventory.OffPaw},
		{inventory.CharacterShape, inventory.OffPaw, inventory.MainPaw},
		{inventory.CharacterShape, inventory.Body2, inventory.Body1},
		{inventory.CharacterShape, inventory.Pack1, inventory.Pack4},
		{inventory.CharacterShape, inventory.Pack5, inventory.Pack2},
		{inventory.CharacterShape, inventory.Pack3, inventory.Pack6},
		{inventory.HirelingShape, inventory.Paw1, inventory.Paw2},
		{inventory.HirelingShape, inventory.Pack1, inventory.Pack3},
		{inventory.HirelingShape, inventory.Pack4, inventory.Pack2},
	}

	for _, tc := range testCases {
		s.Run(tc.shape.Name()+"/"+string(tc.target), func() {
			inv := inventory.New(tc.shape)
			s.Require().NoError(inv.Place(tc.target, heavy))

			a, err := inv.Slot(tc.target)
			s.Require().NoError(err)
			b, err := inv.Slot(tc.partner)
			s.Require().NoError(err)

			s.Equal(tc.partner, a.PairedWith)
			s.Equal(tc.target, b.PairedWith)
			s.False(a.Secondary)
			s.True(b.Secondary)
			s.Equal(a.Contents, b.Contents)
			s.NoError(inv.Validate())

			for _, id := range []inventory.SlotID{tc.target, tc.partner} {
				got, paired, err := inv.PairedSlotID(id)
				s.Require().NoError(err)
				s.True(paired)
				want, ok := tc.shape.PairOf(id, heavy.Pairing)
				s.Require().True(ok)
				s.Equal(want, got)
			}
		})
	}
}

func (s *PlacementTestSuite) TestLightArmourPairsAcrossGrids() {
	jerkin := s.item(catalog.ItemShieldJerkin)

	s.Require().NoError(s.inv.Place(inventory.OffPaw, jerkin))
	s.Equal(inventory.Body2, s.slot(inventory.OffPaw).PairedWith)
	s.True(s.slot(inventory.Body2).Secondary)
	s.assertEmptyUnpaired(inventory.MainPaw)
	s.assertEmptyUnpaired(inventory.Body1)

	s.Require().NoError(s.inv.Place(inventory.Body2, jerkin))
	s.Equal(inventory.OffPaw, s.slot(inventory.Body2).PairedWith)
	s.True(s.slot(inventory.OffPaw).Secondary)
	s.NoError(s.inv.Validate())
}

func (s *PlacementTestSuite) TestLightArmourElsewhereUsesNormalTopology() {
	s.Require().NoError(s.inv.Place(inventory.Body1, s.item(catalog.ItemShieldJerkin)))
	s.Equal(inventory.Body2, s.slot(inventory.Body1).PairedWith)

	hireling := inventory.NewHireling()
	s.Require().NoError(hireling.Place(inventory.Paw2, s.item(catalog.ItemShieldJerkin)))
	slot, err := hireling.Slot(inventory.Paw2)
	s.Require().NoError(err)
	s.Equal(inventory.Paw1, slot.PairedWith)
}

func (s *PlacementTestSuite) TestPlaceOverPairClearsOldPartner() {
	s.Require().NoError(s.inv.Place(inventory.MainPaw, s.item("Spear (Heavy, d10)")))
	s.Require().NoError(s.inv.Place(inventory.OffPaw, s.item(catalog.ItemShieldJerkin)))

	s.assertEmptyUnpaired(inventory.MainPaw)
	s.Equal(inventory.Body2, s.slot(inventory.OffPaw).PairedWith)
	s.Equal(catalog.ItemShieldJerkin, s.slot(inventory.Body2).Text())
	s.NoError(s.inv.Validate())
}

func (s *PlacementTestSuite) TestSingleItemOverPairUnpairsBoth() {
	s.Require().NoError(s.inv.Place(inventory.Pack2, s.item("Bow (Heavy, d8)")))
	s.Require().NoError(s.inv.Place(inventory.Pack5, s.item("Rope")))

	s.assertEmptyUnpaired(inventory.Pack2)
	pack5 := s.slot(inventory.Pack5)
	s.Equal("Rope", pack5.Text())
	s.False(pack5.IsPaired())
	s.False(pack5.Secondary)
}

func (s *PlacementTestSuite) TestTwoSlotOntoPairedPartnerClearsThirdSlot() {
	s.Require().NoError(s.inv.Place(inventory.Body1, s.item(catalog.ItemLeadCoat)))
	s.Require().NoError(s.inv.Place(inventory.OffPaw, s.item(catalog.ItemShieldJerkin)))

	s.assertEmptyUnpaired(inventory.Body1)
	s.Equal(inventory.Body2, s.slot(inventory.OffPaw).PairedWith)
	s.NoError(s.inv.Validate())
}

func (s *PlacementTestSuite) TestConditionPlacement() {
	s.Require().NoError(s.inv.Place(inventory.Pack3, s.item(catalog.ConditionInjured)))

	slot := s.slot(inventory.Pack3)
	s.True(slot.Contents.IsCondition)
	s.Equal("Heal 1 STR at full rest", slot.Contents.ClearCondition)
}

func (s *PlacementTestSuite) TestClearIsIdempotent() {
	before := s.inv.Slots()
	s.Require().NoError(s.inv.Clear(inventory.Pack4))
	s.Require().NoError(s.inv.Clear(inventory.Pack4))
	s.Equal(before, s.inv.Slots())
}

func (s *PlacementTestSuite) TestClearSecondaryClearsPair() {
	s.Require().NoError(s.inv.Place(inventory.Pack3, s.item("Trashhook (Heavy, d10)")))
	s.Require().NoError(s.inv.Clear(inventory.Pack6))

	s.assertEmptyUnpaired(inventory.Pack3)
	s.assertEmptyUnpaired(inventory.Pack6)
}

func (s *PlacementTestSuite) TestManualTextMirrorsContinuously() {
	s.Require().NoError(s.inv.Place(inventory.Pack1, s.item("Bow (Heavy, d8)")))

	for _, text := range []string{"Bow", "Bow (notched)", "Great bow of Fenwick", ""} {
		s.Require().NoError(s.inv.SetText(inventory.Pack1, text))
		primary := s.slot(inventory.Pack1)
		secondary := s.slot(inventory.Pack4)
		s.Equal(primary.Text(), secondary.Text())
		s.Equal(primary.Contents, secondary.Contents)
		s.NoError(s.inv.Validate())
	}

	// empty text keeps the pair
	s.Equal(inventory.Pack4, s.slot(inventory.Pack1).PairedWith)
	s.True(s.slot(inventory.Pack4).Secondary)

	s.Require().NoError(s.inv.SetText(inventory.Pack1, "Crossbow"))
	s.Equal("Crossbow", s.slot(inventory.Pack4).Text())
}

func (s *PlacementTestSuite) TestManualTextClearsSourceItem() {
	s.Require().NoError(s.inv.Place(inventory.Pack2, s.item(catalog.ConditionInjured)))
	s.Require().NoError(s.inv.SetText(inventory.Pack2, "Injured (leg)"))

	slot := s.slot(inventory.Pack2)
	s.Empty(slot.Contents.SourceItem)
	s.False(slot.Contents.IsCondition)
	s.Equal(inventory.PlacementFilled, slot.Contents.State)
}

func (s *PlacementTestSuite) TestManualTextOnSecondaryRejected() {
	s.Require().NoError(s.inv.Place(inventory.Body1, s.item(catalog.ItemLeadCoat)))

	err := s.inv.SetText(inventory.Body2, "Tin can")
	s.Require().Error(err)
	s.True(stderrors.Is(err, inventory.ErrSecondarySlot))
	s.Equal(catalog.ItemLeadCoat, s.slot(inventory.Body2).Text())
}

func (s *PlacementTestSuite) TestManualTextDefaultsToStandard() {
	s.Require().NoError(s.inv.Place(inventory.Pack1, s.item(catalog.ItemTorches)))
	s.Require().NoError(s.inv.ToggleCharge(inventory.Pack1, 0))

	s.Require().NoError(s.inv.SetText(inventory.Pack1, "Candle stub"))

	slot := s.slot(inventory.Pack1)
	s.Equal(catalog.UsageStandard, slot.Usage.Kind)
	s.True(slot.Usage.IsClear())
}

func (s *PlacementTestSuite) TestManualTextEmptyResetsUsage() {
	s.Require().NoError(s.inv.Place(inventory.Pack1, s.item("Rope")))
	s.Require().NoError(s.inv.ToggleCharge(inventory.Pack1, 0))

	s.Require().NoError(s.inv.SetText(inventory.Pack1, "   "))

	slot := s.slot(inventory.Pack1)
	s.True(slot.IsEmpty())
	s.True(slot.Usage.IsClear())
}

func (s *PlacementTestSuite) TestPlaceholderResolvesByTextOrPicker() {
	s.Require().NoError(s.inv.PlacePlaceholder(inventory.MainPaw, inventory.SelectWeaponText))
	slot := s.slot(inventory.MainPaw)
	s.True(slot.NeedsSelection())
	s.False(slot.IsEmpty())

	s.Require().NoError(s.inv.SetText(inventory.MainPaw, "Sharpened twig"))
	s.False(s.slot(inventory.MainPaw).NeedsSelection())

	s.Require().NoError(s.inv.PlacePlaceholder(inventory.MainPaw, inventory.SelectWeaponText))
	s.Require().NoError(s.inv.Place(inventory.MainPaw, s.item("Dagger (Light, d6)")))
	s.False(s.slot(inventory.MainPaw).NeedsSelection())
}

func (s *PlacementTestSuite) TestPairedSlotIDOnSingleSlot() {
	s.Require().NoError(s.inv.Place(inventory.Pack2, s.item("Rope")))

	id, paired, err := s.inv.PairedSlotID(inventory.Pack2)
	s.Require().NoError(err)
	s.False(paired)
	s.Empty(id)

	_, _, err = s.inv.PairedSlotID("pack_9")
	s.ErrorIs(err, inventory.ErrUnknownSlot)
}

func (s *PlacementTestSuite) TestUnknownSlot() {
	err := s.inv.Place("tail", s.item("Rope"))
	s.Require().Error(err)
	s.True(stderrors.Is(err, inventory.ErrUnknownSlot))

	_, err = inventory.NewHireling().Slot(inventory.Body1)
	s.True(stderrors.Is(err, inventory.ErrUnknownSlot))

	s.True(stderrors.Is(s.inv.Clear(inventory.Paw1), inventory.ErrUnknownSlot))
	s.True(stderrors.Is(s.inv.SetText("", "x"), inventory.ErrUnknownSlot))
}

func (s *PlacementTestSuite) TestCloneIsIndependent() {
	s.Require().NoError(s.inv.Place(inventory.Pack1, s.item("Rope")))
	clone := s.inv.Clone()
	s.Require().NoError(clone.Clear(inventory.Pack1))

	s.Equal("Rope", s.slot(inventory.Pack1).Text())
}

func (s *PlacementTestSuite) TestValidateDetectsBrokenPairs() {
	testCases := []struct {
		name  string
		slots []inventory.Slot
	}{
		{
			name:  "secondary without partner",
			slots: []inventory.Slot{{ID: inventory.Pack1, Secondary: true}},
		},
		{
			name: "one sided pairing",
			slots: []inventory.Slot{
				{ID: inventory.Pack1, PairedWith: inventory.Pack4, Contents: inventory.Placement{State: inventory.PlacementFilled, Text: "Bow"}},
			},
		},
		{
			name: "pair outside topology",
			slots: []inventory.Slot{
				{ID: inventory.Pack1, PairedWith: inventory.Pack2},
				{ID: inventory.Pack2, PairedWith: inventory.Pack1, Secondary: true},
			},
		},
		{
			name: "mirror mismatch",
			slots: []inventory.Slot{
				{ID: inventory.Body1, PairedWith: inventory.Body2, Contents: inventory.Placement{State: inventory.PlacementFilled, Text: "Lead coat"}},
				{ID: inventory.Body2, PairedWith: inventory.Body1, Secondary: true, Contents: inventory.Placement{State: inventory.PlacementFilled, Text: "Tin"}},
			},
		},
		{
			name: "two primaries",
			slots: []inventory.Slot{
				{ID: inventory.Body1, PairedWith: inventory.Body2},
				{ID: inventory.Body2, PairedWith: inventory.Body1},
			},
		},
		{
			name: "half mark on standard item",
			slots: []inventory.Slot{{
				ID:       inventory.Pack1,
				Contents: inventory.Placement{State: inventory.PlacementFilled, Text: "Rope"},
				Usage:    inventory.UsageState{Kind: catalog.UsageStandard, Charges: [3]inventory.ChargeMark{inventory.MarkHalf}},
			}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			inv := inventory.NewCharacter()
			for _, slot := range tc.slots {
				s.Require().NoError(inv.Restore(slot))
			}
			err := inv.Validate()
			s.Require().Error(err)
			s.True(stderrors.Is(err, inventory.ErrInconsistent))
		})
	}
}

func (s *PlacementTestSuite) TestRestoreDropsChargesOnEmptySlot() {
	s.Require().NoError(s.inv.Restore(inventory.Slot{
		ID:    inventory.Pack2,
		Usage: inventory.UsageState{Charges: [3]inventory.ChargeMark{inventory.MarkFull}},
	}))

	slot := s.slot(inventory.Pack2)
	s.True(slot.Usage.IsClear())
	s.Equal(catalog.UsageStandard, slot.Usage.Kind)
	s.Equal(inventory.RolePack, slot.Role)
}
