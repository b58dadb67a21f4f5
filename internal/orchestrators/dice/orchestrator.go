// Package dice implements table dice rolls and attribute saves
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/mausritter-api/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/mausritter-api/internal/repositories/dice_session"
)

// Limits on dice notation
const (
	MaxDiceCount = 100
	MaxDieSize   = 1000
	saveDie      = 20
)

// Regex for dice notation like "2d6", "1d20", "3d8+2"
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// Service defines the interface for dice operations
type Service interface {
	// RollDice rolls XdY with an optional +Z or -Z modifier
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// RollSave rolls a d20 against an attribute; the save succeeds when the
	// roll is at or under the value
	RollSave(ctx context.Context, input *RollSaveInput) (*RollSaveOutput, error)

	// GetRollSession returns the recent rolls of an entity
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)

	// ClearRollSession drops the recent rolls of an entity
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator
	Roller          dice.Roller
	Clock           clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type orchestrator struct {
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	roller          dice.Roller
	clock           clock.Clock
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		roller:          cfg.Roller,
		clock:           clk,
	}, nil
}

// Notation is parsed dice notation
type Notation struct {
	Count    int
	Size     int
	Modifier int
}

// String renders the notation in canonical form
func (n Notation) String() string {
	switch {
	case n.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Size, n.Modifier)
	case n.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", n.Count, n.Size, n.Modifier)
	default:
		return fmt.Sprintf("%dd%d", n.Count, n.Size)
	}
}

// ParseNotation parses XdY, XdY+Z and XdY-Z, ignoring case and surrounding
// space
func ParseNotation(notation string) (Notation, error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(notation)))
	if matches == nil {
		return Notation{}, errors.InvalidArgumentf("invalid dice notation: %q (expected format: XdY, XdY+Z)", notation).
			WithMeta("notation", notation)
	}

	count, err := strconv.Atoi(matches[1])
	if err != nil {
		return Notation{}, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}
	size, err := strconv.Atoi(matches[2])
	if err != nil {
		return Notation{}, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}
	modifier := 0
	if matches[3] != "" {
		if modifier, err = strconv.Atoi(matches[3]); err != nil {
			return Notation{}, errors.InvalidArgumentf("invalid modifier in notation: %s", notation)
		}
	}

	if count <= 0 || size <= 0 {
		return Notation{}, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}
	if count > MaxDiceCount {
		return Notation{}, errors.InvalidArgumentf("cannot roll more than %d dice at once", MaxDiceCount).
			WithMeta("count", count)
	}
	if size > MaxDieSize {
		return Notation{}, errors.InvalidArgumentf("die size cannot exceed %d", MaxDieSize).
			WithMeta("size", size)
	}

	return Notation{Count: count, Size: size, Modifier: modifier}, nil
}

// RollDice rolls dice using the specified notation and logs the result
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	notation, err := ParseNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	values, err := o.roller.RollN(notation.Count, notation.Size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}

	sum := 0
	for _, v := range values {
		sum += v
	}

	roll := &dicesession.DiceRoll{
		RollID:      o.idGen.Generate(),
		Kind:        dicesession.KindRoll,
		Notation:    notation.String(),
		Dice:        values,
		Modifier:    notation.Modifier,
		Total:       sum + notation.Modifier,
		Description: input.Description,
		RolledAt:    o.clock.Now().UTC(),
	}
	o.log(ctx, input.EntityID, roll)

	slog.InfoContext(ctx, "dice rolled",
		"entity_id", input.EntityID,
		"notation", roll.Notation,
		"total", roll.Total,
		"roll_id", roll.RollID,
	)

	return &RollDiceOutput{Roll: roll}, nil
}

// RollSave rolls under an attribute
func (o *orchestrator) RollSave(ctx context.Context, input *RollSaveInput) (*RollSaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("entityID", input.EntityID, vb)
	if input.Value < 0 {
		vb.InvalidField("value", "must not be negative")
	}
	mode := input.Mode
	if mode == "" {
		mode = SaveNormal
	}
	errors.ValidateEnum("mode", string(mode),
		[]string{string(SaveNormal), string(SaveAdvantage), string(SaveDisadvantage)}, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	count := 1
	if mode != SaveNormal {
		count = 2
	}
	values, err := o.roller.RollN(count, saveDie)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll save")
	}

	result := values[0]
	for _, v := range values[1:] {
		if (mode == SaveAdvantage && v < result) || (mode == SaveDisadvantage && v > result) {
			result = v
		}
	}

	roll := &dicesession.DiceRoll{
		RollID:      o.idGen.Generate(),
		Kind:        dicesession.KindSave,
		Notation:    fmt.Sprintf("%dd%d", count, saveDie),
		Dice:        values,
		Total:       result,
		Target:      input.Value,
		Success:     result <= input.Value,
		Description: saveDescription(input.Attribute, mode),
		RolledAt:    o.clock.Now().UTC(),
	}
	o.log(ctx, input.EntityID, roll)

	slog.InfoContext(ctx, "save rolled",
		"entity_id", input.EntityID,
		"attribute", input.Attribute,
		"target", input.Value,
		"result", result,
		"success", roll.Success,
	)

	return &RollSaveOutput{Roll: roll}, nil
}

// GetRollSession retrieves the logged rolls of an entity
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	listed, err := o.diceSessionRepo.List(ctx, dicesession.ListInput{EntityID: input.EntityID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get roll log")
	}

	return &GetRollSessionOutput{Rolls: listed.Rolls}, nil
}

// ClearRollSession removes the logged rolls of an entity
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	cleared, err := o.diceSessionRepo.Clear(ctx, dicesession.ClearInput{EntityID: input.EntityID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear roll log")
	}

	slog.InfoContext(ctx, "roll log cleared",
		"entity_id", input.EntityID,
		"rolls_deleted", cleared.RollsDeleted,
	)

	return &ClearRollSessionOutput{RollsDeleted: cleared.RollsDeleted}, nil
}

// log records the roll; storage failures are only logged
func (o *orchestrator) log(ctx context.Context, entityID string, roll *dicesession.DiceRoll) {
	_, err := o.diceSessionRepo.Append(ctx, dicesession.AppendInput{EntityID: entityID, Roll: *roll})
	if err != nil {
		slog.WarnContext(ctx, "failed to log roll",
			"entity_id", entityID,
			"roll_id", roll.RollID,
			"error", err)
	}
}

func saveDescription(attribute string, mode SaveMode) string {
	label := strings.ToUpper(strings.TrimSpace(attribute))
	if label == "" {
		label = "Attribute"
	}
	if mode == SaveNormal {
		return label + " save"
	}
	return fmt.Sprintf("%s save with %s", label, mode)
}
