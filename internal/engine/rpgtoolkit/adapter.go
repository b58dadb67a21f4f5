// Package rpgtoolkit provides the concrete implementation of the engine interface using rpg-toolkit modules.
package rpgtoolkit

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/engine"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

// Bonus equipment thresholds on the highest attribute
const (
	firstBonusThreshold  = 9
	secondBonusThreshold = 7
)

// Adapter implements the engine.Engine interface using rpg-toolkit
type Adapter struct {
	diceRoller dice.Roller
	tables     *catalog.Tables
}

// AdapterConfig contains configuration for creating a new Adapter
type AdapterConfig struct {
	DiceRoller dice.Roller
	Tables     *catalog.Tables
}

// Validate checks that all required dependencies are provided
func (c *AdapterConfig) Validate() error {
	if c.DiceRoller == nil {
		return errors.InvalidArgument("dice roller is required")
	}
	if c.Tables == nil {
		return errors.InvalidArgument("tables are required")
	}
	return nil
}

// NewAdapter creates a new rpg-toolkit engine adapter
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Adapter{
		diceRoller: cfg.DiceRoller,
		tables:     cfg.Tables,
	}, nil
}

// Verify that Adapter implements engine.Engine interface
var _ engine.Engine = (*Adapter)(nil)

// GenerateProposal rolls attributes (3d6 keep the two highest), HP, pips,
// background, bonus equipment, appearance and name. Background items that
// grant a hireling become rolled hirelings instead of inventory items.
func (a *Adapter) GenerateProposal(
	ctx context.Context,
	input *engine.GenerateProposalInput,
) (*engine.GenerateProposalOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	rolls := &engine.GenerationRolls{}
	str, strDice, err := a.rollAttribute()
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll STR")
	}
	dex, dexDice, err := a.rollAttribute()
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll DEX")
	}
	wil, wilDice, err := a.rollAttribute()
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll WIL")
	}
	rolls.STR, rolls.DEX, rolls.WIL = strDice, dexDice, wilDice

	if rolls.HP, err = a.roll(6); err != nil {
		return nil, errors.Wrap(err, "failed to roll HP")
	}
	if rolls.Pips, err = a.roll(6); err != nil {
		return nil, errors.Wrap(err, "failed to roll pips")
	}

	background := a.tables.BackgroundFor(rolls.HP, rolls.Pips)
	granted := []string{catalog.ItemTorches, catalog.ItemRations, background.ItemA, background.ItemB}

	highest := max(str, dex, wil)
	if highest <= firstBonusThreshold {
		if rolls.BonusHP, err = a.roll(6); err != nil {
			return nil, errors.Wrap(err, "failed to roll bonus background")
		}
		if rolls.BonusPips, err = a.roll(6); err != nil {
			return nil, errors.Wrap(err, "failed to roll bonus background")
		}
		bonus := a.tables.BackgroundFor(rolls.BonusHP, rolls.BonusPips)
		granted = append(granted, bonus.ItemA)
		if highest <= secondBonusThreshold {
			granted = append(granted, bonus.ItemB)
		}
	}

	proposal := &mausritter.Proposal{
		CharacterID: input.CharacterID,
		Background:  background.Name,
		STR:         str,
		DEX:         dex,
		WIL:         wil,
		HP:          rolls.HP,
		Pips:        rolls.Pips,
	}

	for _, item := range granted {
		kind, ok := catalog.HirelingGrant(item)
		if !ok {
			proposal.Items = append(proposal.Items, item)
			continue
		}
		hireling, err := a.rollHireling(kind)
		if err != nil {
			return nil, err
		}
		proposal.Hirelings = append(proposal.Hirelings, *hireling)
	}

	if proposal.Appearance, rolls.PhysicalD66, err = a.rollAppearance(); err != nil {
		return nil, err
	}
	if proposal.Name, err = a.rollName(); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "generated character proposal",
		"character_id", input.CharacterID,
		"background", proposal.Background,
		"highest", highest,
		"items", len(proposal.Items),
		"hirelings", len(proposal.Hirelings))

	return &engine.GenerateProposalOutput{Proposal: proposal, Rolls: rolls}, nil
}

// RollHireling rolls HP d6 and 2d6 for each attribute
func (a *Adapter) RollHireling(
	ctx context.Context,
	input *engine.RollHirelingInput,
) (*engine.RollHirelingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	kind := strings.TrimSpace(input.Type)
	if kind == "" {
		return nil, errors.InvalidArgument("hireling type is required")
	}

	hireling, err := a.rollHireling(kind)
	if err != nil {
		return nil, err
	}

	out := &engine.RollHirelingOutput{Hireling: hireling}
	if ht, ok := a.tables.HirelingType(kind); ok {
		out.Wage = ht.Wage
		hireling.Type = ht.Name
	}

	slog.DebugContext(ctx, "rolled hireling", "type", hireling.Type, "hp", hireling.HP)

	return out, nil
}

func (a *Adapter) rollHireling(kind string) (*mausritter.ProposedHireling, error) {
	h := &mausritter.ProposedHireling{Type: kind}
	var err error
	if h.HP, err = a.roll(6); err != nil {
		return nil, errors.Wrap(err, "failed to roll hireling HP")
	}
	for _, attr := range []*int{&h.STR, &h.DEX, &h.WIL} {
		rolls, err := a.diceRoller.RollN(2, 6)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll hireling attribute")
		}
		*attr = sum(rolls)
	}
	if h.Look, err = a.pick(a.tables.HirelingLooks); err != nil {
		return nil, errors.Wrap(err, "failed to roll hireling look")
	}
	if h.Disposition, err = a.pick(a.tables.HirelingDispositions); err != nil {
		return nil, errors.Wrap(err, "failed to roll hireling disposition")
	}
	return h, nil
}

// rollAttribute rolls 3d6 and keeps the two highest
func (a *Adapter) rollAttribute() (int, []int, error) {
	rolls, err := a.diceRoller.RollN(3, 6)
	if err != nil {
		return 0, nil, err
	}
	if len(rolls) != 3 {
		return 0, nil, errors.Internalf("expected 3 dice, got %d", len(rolls))
	}
	sorted := append([]int(nil), rolls...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return sorted[0] + sorted[1], rolls, nil
}

func (a *Adapter) rollAppearance() (mausritter.ProposalAppearance, int, error) {
	var out mausritter.ProposalAppearance

	idx, err := a.index(len(a.tables.Birthsigns))
	if err != nil {
		return out, 0, errors.Wrap(err, "failed to roll birthsign")
	}
	sign := a.tables.Birthsigns[idx]
	out.Birthsign, out.Disposition = sign.Sign, sign.Disposition

	if out.CoatColor, err = a.pick(a.tables.CoatColors); err != nil {
		return out, 0, errors.Wrap(err, "failed to roll coat colour")
	}
	if out.CoatPattern, err = a.pick(a.tables.CoatPatterns); err != nil {
		return out, 0, errors.Wrap(err, "failed to roll coat pattern")
	}

	tens, err := a.roll(6)
	if err != nil {
		return out, 0, errors.Wrap(err, "failed to roll physical detail")
	}
	ones, err := a.roll(6)
	if err != nil {
		return out, 0, errors.Wrap(err, "failed to roll physical detail")
	}
	d66 := tens*10 + ones
	out.PhysicalDetail = a.tables.PhysicalDetail(d66)
	return out, d66, nil
}

func (a *Adapter) rollName() (string, error) {
	first, err := a.pick(a.tables.FirstNames)
	if err != nil {
		return "", errors.Wrap(err, "failed to roll first name")
	}
	family, err := a.pick(a.tables.FamilyNames)
	if err != nil {
		return "", errors.Wrap(err, "failed to roll family name")
	}
	return first + " " + family, nil
}

func (a *Adapter) roll(size int) (int, error) {
	return a.diceRoller.Roll(size)
}

// index rolls a zero based index into a table of n rows
func (a *Adapter) index(n int) (int, error) {
	if n == 0 {
		return 0, errors.Internal("table is empty")
	}
	v, err := a.diceRoller.Roll(n)
	if err != nil {
		return 0, err
	}
	return v - 1, nil
}

func (a *Adapter) pick(rows []string) (string, error) {
	idx, err := a.index(len(rows))
	if err != nil {
		return "", err
	}
	return rows[idx], nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
