// Package mausritter holds the character and hireling aggregates tracked by
// the sheet.
package mausritter

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

// Limits on character values
const (
	MaxPips             = 250
	MinLevel            = 1
	CharacterEntityType = "mausritter_character"
)

var (
	// ErrGritExhausted is returned when ignoring a condition with no grit left
	ErrGritExhausted = errors.FailedPrecondition("no grit remaining to ignore conditions")
	// ErrConditionIndex is returned for an ignored condition index out of range
	ErrConditionIndex = errors.InvalidArgument("ignored condition index out of range")
	// ErrGritBelowIgnored is returned when lowering max grit below the number
	// of conditions already ignored
	ErrGritBelowIgnored = errors.FailedPrecondition("max grit cannot drop below ignored conditions")
)

// Attribute is a current and maximum pair (STR, DEX, WIL and HP)
type Attribute struct {
	Max     int
	Current int
}

// Clamped returns the attribute with both values non negative and current
// no higher than max.
func (a Attribute) Clamped() Attribute {
	if a.Max < 0 {
		a.Max = 0
	}
	if a.Current < 0 {
		a.Current = 0
	}
	if a.Current > a.Max {
		a.Current = a.Max
	}
	return a
}

// Full returns an attribute at its maximum
func Full(value int) Attribute {
	return Attribute{Max: value, Current: value}
}

// Attributes are the three Mausritter attributes
type Attributes struct {
	STR Attribute
	DEX Attribute
	WIL Attribute
}

// Clamped clamps every attribute
func (a Attributes) Clamped() Attributes {
	return Attributes{STR: a.STR.Clamped(), DEX: a.DEX.Clamped(), WIL: a.WIL.Clamped()}
}

// Highest returns the largest maximum of the three
func (a Attributes) Highest() int {
	highest := a.STR.Max
	if a.DEX.Max > highest {
		highest = a.DEX.Max
	}
	if a.WIL.Max > highest {
		highest = a.WIL.Max
	}
	return highest
}

// Grit is the derived view of the grit pool
type Grit struct {
	Current int
	Max     int
}

// IgnoredCondition is a condition the character is ignoring with grit
type IgnoredCondition struct {
	Name           string
	ClearCondition string
}

// Appearance is the rolled look of a mouse
type Appearance struct {
	Birthsign      string
	Disposition    string
	CoatColor      string
	CoatPattern    string
	PhysicalDetail string
}

// Character is a player mouse
type Character struct {
	ID         string
	Name       string
	Background string
	Attributes Attributes
	HP         Attribute
	Pips       int
	Level      int
	XP         int
	Inventory  *inventory.Inventory
	BankedText string
	Notes      string
	Appearance Appearance
	Hirelings  []*Hireling

	maxGrit int
	ignored []IgnoredCondition
}

// NewCharacter returns an empty level one character
func NewCharacter(id string) *Character {
	return &Character{
		ID:        id,
		Level:     MinLevel,
		Inventory: inventory.NewCharacter(),
	}
}

var _ core.Entity = (*Character)(nil)

// GetID implements core.Entity
func (c *Character) GetID() string {
	return c.ID
}

// GetType implements core.Entity
func (c *Character) GetType() string {
	return CharacterEntityType
}

// SetPips sets the pip count clamped to 0..250
func (c *Character) SetPips(pips int) {
	switch {
	case pips < 0:
		c.Pips = 0
	case pips > MaxPips:
		c.Pips = MaxPips
	default:
		c.Pips = pips
	}
}

// Normalize clamps stats so current values never exceed their maximum and
// pips stay in range.
func (c *Character) Normalize() {
	c.Attributes = c.Attributes.Clamped()
	c.HP = c.HP.Clamped()
	c.SetPips(c.Pips)
	if c.Level < MinLevel {
		c.Level = MinLevel
	}
	if c.XP < 0 {
		c.XP = 0
	}
}

// Grit returns the grit pool. Current is always max minus the number of
// ignored conditions.
func (c *Character) Grit() Grit {
	return Grit{Current: c.maxGrit - len(c.ignored), Max: c.maxGrit}
}

// IgnoredConditions returns a copy of the ignored conditions in order
func (c *Character) IgnoredConditions() []IgnoredCondition {
	if len(c.ignored) == 0 {
		return nil
	}
	out := make([]IgnoredCondition, len(c.ignored))
	copy(out, c.ignored)
	return out
}

// IgnoreCondition spends one grit to ignore a condition
func (c *Character) IgnoreCondition(cond IgnoredCondition) error {
	if c.Grit().Current <= 0 {
		return errors.Wrapf(ErrGritExhausted, "cannot ignore %s", cond.Name).
			WithMeta("max_grit", c.maxGrit)
	}
	c.ignored = append(c.ignored, cond)
	return nil
}

// UnignoreCondition stops ignoring the condition at index and returns the
// grit it held.
func (c *Character) UnignoreCondition(index int) (IgnoredCondition, error) {
	if index < 0 || index >= len(c.ignored) {
		return IgnoredCondition{}, errors.Wrapf(ErrConditionIndex, "index %d of %d", index, len(c.ignored)).
			WithMeta("index", index)
	}
	removed := c.ignored[index]
	c.ignored = append(c.ignored[:index], c.ignored[index+1:]...)
	if len(c.ignored) == 0 {
		c.ignored = nil
	}
	return removed, nil
}

// RaiseMaxGrit records a new highest grit value. Lower values are ignored.
func (c *Character) RaiseMaxGrit(value int) {
	if value > c.maxGrit {
		c.maxGrit = value
	}
}

// SetMaxGrit explicitly sets max grit, for example when a GM corrects a
// sheet. It cannot drop below the number of ignored conditions.
func (c *Character) SetMaxGrit(value int) error {
	if value < len(c.ignored) {
		return errors.Wrapf(ErrGritBelowIgnored, "max grit %d with %d ignored", value, len(c.ignored)).
			WithMeta("ignored", len(c.ignored))
	}
	c.maxGrit = value
	return nil
}

// RestoreGrit loads a persisted grit ledger. Max grit grows to cover the
// ignored list if the stored max is too small.
func (c *Character) RestoreGrit(maxGrit int, ignored []IgnoredCondition) {
	c.ignored = nil
	if len(ignored) > 0 {
		c.ignored = make([]IgnoredCondition, len(ignored))
		copy(c.ignored, ignored)
	}
	c.maxGrit = 0
	c.RaiseMaxGrit(maxGrit)
	c.RaiseMaxGrit(len(c.ignored))
}
