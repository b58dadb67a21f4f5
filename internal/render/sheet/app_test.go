package sheet_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
	"github.com/KirkDiggler/mausritter-api/internal/render/sheet"
	"github.com/KirkDiggler/mausritter-api/internal/testutils"
)

type AppTestSuite struct {
	suite.Suite
	ctx     context.Context
	screen  tcell.SimulationScreen
	catalog *catalog.Catalog
	ch      *mausritter.Character
	bus     events.EventBus
	changes int
	app     *sheet.App
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.screen = tcell.NewSimulationScreen("UTF-8")
	s.Require().NoError(s.screen.Init())
	s.screen.SetSize(100, 30)

	s.catalog = catalog.Default()
	s.ch = mausritter.NewCharacter("char_1")
	s.ch.Name = "Bramble"

	s.changes = 0
	s.bus = events.NewBus()
	s.bus.SubscribeFunc(mausritter.EventCharacterChanged, 0, func(_ context.Context, _ events.Event) error {
		s.changes++
		return nil
	})

	app, err := sheet.New(&sheet.Config{
		Screen:    s.screen,
		Character: s.ch,
		Catalog:   s.catalog,
		Bus:       s.bus,
	})
	s.Require().NoError(err)
	s.app = app
}

func (s *AppTestSuite) TearDownTest() {
	s.screen.Fini()
}

func (s *AppTestSuite) press(key tcell.Key) bool {
	return s.app.HandleKey(s.ctx, tcell.NewEventKey(key, 0, tcell.ModNone))
}

func (s *AppTestSuite) typeRune(r rune) bool {
	return s.app.HandleKey(s.ctx, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func (s *AppTestSuite) slot(id inventory.SlotID) inventory.Slot {
	slot, err := s.ch.Inventory.Slot(id)
	s.Require().NoError(err)
	return slot
}

func (s *AppTestSuite) TestCursorMovesAndClamps() {
	s.Equal(inventory.MainPaw, s.app.Cursor())

	s.press(tcell.KeyLeft)
	s.press(tcell.KeyUp)
	s.Equal(inventory.MainPaw, s.app.Cursor())

	s.press(tcell.KeyDown)
	s.Equal(inventory.OffPaw, s.app.Cursor())

	for i := 0; i < 10; i++ {
		s.press(tcell.KeyRight)
	}
	s.Equal(inventory.Pack6, s.app.Cursor())
}

func (s *AppTestSuite) TestPickerPlacesItem() {
	s.typeRune('p')
	s.press(tcell.KeyDown)
	s.press(tcell.KeyEnter)

	entries := sheet.PickerEntries(s.catalog)
	s.Equal(entries[1].Item.Name, s.slot(inventory.MainPaw).Text())
	s.Equal(1, s.changes)
}

func (s *AppTestSuite) TestPickerEscapeLeavesSlot() {
	s.typeRune('p')
	s.press(tcell.KeyEscape)

	s.True(s.slot(inventory.MainPaw).IsEmpty())
	s.Zero(s.changes)

	s.True(s.press(tcell.KeyEscape), "escape outside the picker closes the sheet")
}

func (s *AppTestSuite) TestEditsOnSecondaryHalfTargetPrimary() {
	spear, err := s.catalog.Lookup("Spear (Heavy, d10)")
	s.Require().NoError(err)
	s.Require().NoError(s.ch.Inventory.Place(inventory.MainPaw, spear))

	s.press(tcell.KeyDown)
	s.Require().Equal(inventory.OffPaw, s.app.Cursor())

	s.typeRune('1')
	s.Equal(inventory.MarkFull, s.slot(inventory.MainPaw).Usage.Charges[0])

	s.typeRune('c')
	s.True(s.slot(inventory.MainPaw).IsEmpty())
	s.True(s.slot(inventory.OffPaw).IsEmpty())
	s.Equal(2, s.changes)
}

func (s *AppTestSuite) TestPickerOnSecondaryHalfPlacesUnderCursor() {
	spear, err := s.catalog.Lookup("Spear (Heavy, d10)")
	s.Require().NoError(err)
	s.Require().NoError(s.ch.Inventory.Place(inventory.Pack1, spear))

	s.press(tcell.KeyDown)
	s.press(tcell.KeyRight)
	s.press(tcell.KeyRight)
	s.Require().Equal(inventory.Pack4, s.app.Cursor())

	s.typeRune('p')
	s.press(tcell.KeyEnter)

	entries := sheet.PickerEntries(s.catalog)
	s.Require().False(entries[0].Item.IsTwoSlot())
	s.Equal(entries[0].Item.Name, s.slot(inventory.Pack4).Text())
	s.False(s.slot(inventory.Pack4).IsPaired())
	s.True(s.slot(inventory.Pack1).IsEmpty())
	s.False(s.slot(inventory.Pack1).IsPaired())
}

func (s *AppTestSuite) TestResetUsage() {
	torches, err := s.catalog.Lookup(catalog.ItemTorches)
	s.Require().NoError(err)
	s.Require().NoError(s.ch.Inventory.Place(inventory.MainPaw, torches))

	s.typeRune('3')
	s.typeRune('3')
	s.Equal(inventory.MarkFull, s.slot(inventory.MainPaw).Usage.Charges[2])

	s.typeRune('r')
	s.True(s.slot(inventory.MainPaw).Usage.IsClear())
}

func (s *AppTestSuite) TestQuit() {
	s.False(s.typeRune('x'))
	s.True(s.typeRune('q'))
}

func (s *AppTestSuite) TestDrawDoesNotPanic() {
	spear, err := s.catalog.Lookup("Spear (Heavy, d10)")
	s.Require().NoError(err)
	s.Require().NoError(s.ch.Inventory.Place(inventory.MainPaw, spear))
	s.ch.RaiseMaxGrit(1)
	s.Require().NoError(s.ch.IgnoreCondition(mausritter.IgnoredCondition{Name: "Frightened", ClearCondition: "After short rest"}))

	s.NotPanics(s.app.Draw)

	s.typeRune('p')
	s.NotPanics(s.app.Draw)

	s.app.SetStatus("saved", false)
	s.NotPanics(s.app.Draw)
}

func TestDrawFixtureCharacter(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(120, 40)

	app, err := sheet.New(&sheet.Config{
		Screen:    screen,
		Character: testutils.CreateTestCharacter("char_7"),
		Catalog:   catalog.Default(),
	})
	if err != nil {
		t.Fatal(err)
	}
	app.Draw()
	app.View(func(ch *mausritter.Character) {
		if ch.ID != "char_7" {
			t.Fatalf("unexpected character %s", ch.ID)
		}
	})
}

func (s *AppTestSuite) TestRunStopsWithContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.NoError(s.app.Run(ctx))
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := sheet.New(&sheet.Config{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("want invalid argument, got %v", err)
	}

	_, err = sheet.New(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}
