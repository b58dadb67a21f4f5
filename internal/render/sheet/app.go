package sheet

import (
	"context"
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

var (
	styleDefault   = tcell.StyleDefault
	styleHeader    = tcell.StyleDefault.Bold(true)
	styleCursor    = tcell.StyleDefault.Reverse(true)
	styleDepleted  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelect    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCondition = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleError     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Config holds the sheet dependencies
type Config struct {
	Screen    tcell.Screen
	Character *mausritter.Character
	Catalog   *catalog.Catalog

	// Optional. Every edit is published as a character change so an
	// autosave subscriber can persist it.
	Bus events.EventBus
}

// Validate ensures required dependencies are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Screen == nil {
		vb.RequiredField("Screen")
	}
	if c.Character == nil {
		vb.RequiredField("Character")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	return vb.Build()
}

// App is the interactive sheet. Character state is only touched while mu
// is held, so snapshots taken from other goroutines are consistent.
type App struct {
	screen  tcell.Screen
	catalog *catalog.Catalog
	bus     events.EventBus
	entries []PickerEntry

	mu        sync.Mutex
	ch        *mausritter.Character
	row, col  int
	picking   bool
	pickIndex int
	status    string
	statusErr bool
}

// New creates the sheet. The screen must already be initialised.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &App{
		screen:  cfg.Screen,
		catalog: cfg.Catalog,
		bus:     cfg.Bus,
		entries: PickerEntries(cfg.Catalog),
		ch:      cfg.Character,
	}, nil
}

// View runs fn with the character locked
func (a *App) View(fn func(ch *mausritter.Character)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.ch)
}

// Cursor returns the selected slot
func (a *App) Cursor() inventory.SlotID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return CharacterGrid[a.row][a.col]
}

// SetStatus shows a message on the bottom line. It may be called from any
// goroutine.
func (a *App) SetStatus(msg string, isErr bool) {
	a.mu.Lock()
	a.status = msg
	a.statusErr = isErr
	a.mu.Unlock()
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run draws and handles keys until the player quits or ctx ends
func (a *App) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
	}()

	a.Draw()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventKey:
			if a.HandleKey(ctx, ev) {
				return nil
			}
		}
		a.Draw()
	}
}

// HandleKey applies one key press and reports whether the sheet should
// close
func (a *App) HandleKey(ctx context.Context, ev *tcell.EventKey) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.picking {
		a.handlePickerKey(ctx, ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyUp:
		a.row = clamp(a.row-1, len(CharacterGrid))
	case tcell.KeyDown:
		a.row = clamp(a.row+1, len(CharacterGrid))
	case tcell.KeyLeft:
		a.col = clamp(a.col-1, len(CharacterGrid[a.row]))
	case tcell.KeyRight:
		a.col = clamp(a.col+1, len(CharacterGrid[a.row]))
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			return true
		case 'p':
			a.picking = true
		case 'c':
			a.edit(ctx, "cleared", func(inv *inventory.Inventory, id inventory.SlotID) error {
				return inv.Clear(id)
			})
		case 'r':
			a.edit(ctx, "usage reset", func(inv *inventory.Inventory, _ inventory.SlotID) error {
				inv.ResetUsage()
				return nil
			})
		case '1', '2', '3':
			marker := int(r - '1')
			a.edit(ctx, "", func(inv *inventory.Inventory, id inventory.SlotID) error {
				if slot, err := inv.Slot(id); err == nil && slot.Secondary {
					id = slot.PairedWith
				}
				return inv.ToggleCharge(id, marker)
			})
		}
	}
	return false
}

func (a *App) handlePickerKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.picking = false
	case tcell.KeyUp:
		a.pickIndex = clamp(a.pickIndex-1, len(a.entries))
	case tcell.KeyDown:
		a.pickIndex = clamp(a.pickIndex+1, len(a.entries))
	case tcell.KeyEnter:
		a.picking = false
		if len(a.entries) == 0 {
			return
		}
		item := a.entries[a.pickIndex].Item
		a.edit(ctx, "placed "+item.Name, func(inv *inventory.Inventory, id inventory.SlotID) error {
			return inv.Place(id, item)
		})
	}
}

// edit runs op on the slot under the cursor. Callers hold mu.
func (a *App) edit(ctx context.Context, done string, op func(*inventory.Inventory, inventory.SlotID) error) {
	id := CharacterGrid[a.row][a.col]
	if err := op(a.ch.Inventory, id); err != nil {
		a.status = errors.GetMessage(err)
		a.statusErr = true
		return
	}
	a.status = done
	a.statusErr = false

	if a.bus != nil {
		if err := a.bus.Publish(ctx, mausritter.NewChangedEvent(a.ch, nil)); err != nil {
			a.status = "change not published: " + errors.GetMessage(err)
			a.statusErr = true
		}
	}
}

// Draw repaints the whole screen
func (a *App) Draw() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.screen.Clear()
	ch := a.ch

	y := 0
	a.put(0, y, HeaderLine(ch), styleHeader)
	y++
	a.put(0, y, StatsLine(ch), styleDefault)
	y += 2

	for r, row := range CharacterGrid {
		for c, id := range row {
			x := c * (CellWidth + 1)
			slot, err := ch.Inventory.Slot(id)
			if err != nil {
				continue
			}
			style := slotStyle(slot, ch.Inventory)
			if r == a.row && c == a.col {
				style = styleCursor
			}
			a.put(x, y, Fit(Label(string(id)), CellWidth), styleHeader)
			a.put(x, y+1, Fit(CellText(slot), CellWidth), style)
			a.put(x, y+2, Fit(Marks(slot), CellWidth), style)
		}
		y += 4
	}

	if ignored := ch.IgnoredConditions(); len(ignored) > 0 {
		a.put(0, y, "Ignoring:", styleHeader)
		for _, cond := range ignored {
			y++
			a.put(2, y, fmt.Sprintf("%s (clears: %s)", cond.Name, cond.ClearCondition), styleCondition)
		}
		y += 2
	}

	for _, h := range ch.Hirelings {
		a.put(0, y, HirelingLine(h), styleDefault)
		y++
	}

	_, height := a.screen.Size()
	if a.picking {
		a.drawPicker(height)
	}

	help := "←↑↓→ move  p pick  c clear  1-3 charge  r reset  q quit"
	a.put(0, height-2, help, styleDepleted)
	if a.status != "" {
		style := styleStatus
		if a.statusErr {
			style = styleError
		}
		a.put(0, height-1, a.status, style)
	}
	a.screen.Show()
}

func (a *App) drawPicker(height int) {
	width, _ := a.screen.Size()
	top := 3
	rows := height - top - 3
	if rows < 1 {
		return
	}
	start := 0
	if a.pickIndex >= rows {
		start = a.pickIndex - rows + 1
	}
	for i := 0; i < rows && start+i < len(a.entries); i++ {
		style := styleDefault
		if start+i == a.pickIndex {
			style = styleCursor
		}
		a.put(2, top+i, Fit(a.entries[start+i].Label, width-4), style)
	}
}

func slotStyle(slot inventory.Slot, inv *inventory.Inventory) tcell.Style {
	switch {
	case slot.NeedsSelection():
		return styleSelect
	case slot.Contents.IsCondition:
		return styleCondition
	}
	if depleted, err := inv.ShowsDepleted(slot.ID); err == nil && depleted {
		return styleDepleted
	}
	return styleDefault
}

// put writes s from column x, advancing by rune width
func (a *App) put(x, y int, s string, style tcell.Style) {
	width, _ := a.screen.Size()
	for _, r := range s {
		if x >= width {
			return
		}
		a.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
