package character

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/mausritter-api/internal/engine"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
	"github.com/KirkDiggler/mausritter-api/internal/services/character"
)

// UpdateInventory applies one slot edit to the character grid or to one of
// its hirelings' grids.
func (o *Orchestrator) UpdateInventory(
	ctx context.Context,
	input *character.UpdateInventoryInput,
) (out *character.UpdateInventoryOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.tracer.Start(ctx, "character.UpdateInventory",
		trace.WithAttributes(
			attribute.String("character.id", input.CharacterID),
			attribute.String("inventory.action", string(input.Action.Kind)),
			attribute.String("inventory.slot", string(input.Action.SlotID)),
		))
	defer func() { endSpan(span, err) }()

	ch, record, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	inv := ch.Inventory
	var target *mausritter.Hireling
	if input.HirelingID != "" {
		if target, err = ch.Hireling(input.HirelingID); err != nil {
			return nil, err
		}
		inv = target.Inventory
	}

	if err := o.applyAction(inv, input.Action); err != nil {
		return nil, errors.Wrapf(err, "failed to %s %s", input.Action.Kind, input.Action.SlotID).
			WithMeta("character_id", input.CharacterID)
	}

	saved, err := o.save(ctx, ch, record, target)
	if err != nil {
		return nil, err
	}

	return &character.UpdateInventoryOutput{Character: saved}, nil
}

func (o *Orchestrator) applyAction(inv *inventory.Inventory, action character.InventoryAction) error {
	switch action.Kind {
	case character.ActionPlace:
		item, err := o.catalog.Lookup(action.Item)
		if err != nil {
			return err
		}
		return inv.Place(action.SlotID, item)
	case character.ActionPlaceholder:
		text := action.Text
		if strings.TrimSpace(text) == "" {
			text = inventory.SelectWeaponText
		}
		return inv.PlacePlaceholder(action.SlotID, text)
	case character.ActionClear:
		return inv.Clear(action.SlotID)
	case character.ActionSetText:
		return inv.SetText(action.SlotID, action.Text)
	case character.ActionToggleCharge:
		return inv.ToggleCharge(action.SlotID, action.Marker)
	case character.ActionResetUsage:
		inv.ResetUsage()
		return nil
	default:
		return errors.InvalidArgumentf("unknown inventory action %q", action.Kind).
			WithMeta("action", string(action.Kind))
	}
}

// IgnoreCondition spends a point of grit on a condition. The clear text
// comes from the catalog.
func (o *Orchestrator) IgnoreCondition(
	ctx context.Context,
	input *character.IgnoreConditionInput,
) (out *character.IgnoreConditionOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("condition", strings.TrimSpace(input.Condition), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	ctx, span := o.tracer.Start(ctx, "character.IgnoreCondition",
		trace.WithAttributes(attribute.String("character.id", input.CharacterID)))
	defer func() { endSpan(span, err) }()

	ch, record, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Condition)
	if err := ch.IgnoreCondition(mausritter.IgnoredCondition{
		Name:           name,
		ClearCondition: o.catalog.ClearConditionFor(name),
	}); err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, ch, record, nil)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "condition ignored",
		"character_id", ch.ID,
		"condition", name,
		"grit_left", ch.Grit().Current)

	return &character.IgnoreConditionOutput{Character: saved}, nil
}

// UnignoreCondition drops the ignored condition at index, freeing its grit
func (o *Orchestrator) UnignoreCondition(
	ctx context.Context,
	input *character.UnignoreConditionInput,
) (out *character.UnignoreConditionOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.tracer.Start(ctx, "character.UnignoreCondition",
		trace.WithAttributes(attribute.String("character.id", input.CharacterID)))
	defer func() { endSpan(span, err) }()

	ch, record, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	removed, err := ch.UnignoreCondition(input.Index)
	if err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, ch, record, nil)
	if err != nil {
		return nil, err
	}

	return &character.UnignoreConditionOutput{
		Character: saved,
		Removed:   removed,
	}, nil
}

// AddHireling rolls a hireling of the given type and attaches it
func (o *Orchestrator) AddHireling(
	ctx context.Context,
	input *character.AddHirelingInput,
) (out *character.AddHirelingOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("type", strings.TrimSpace(input.Type), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	ctx, span := o.tracer.Start(ctx, "character.AddHireling",
		trace.WithAttributes(
			attribute.String("character.id", input.CharacterID),
			attribute.String("hireling.type", input.Type),
		))
	defer func() { endSpan(span, err) }()

	ch, record, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	rolled, err := o.engine.RollHireling(ctx, &engine.RollHirelingInput{Type: strings.TrimSpace(input.Type)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll hireling")
	}

	h := ch.AddHireling(rolled.Hireling.Hireling(o.hirelingIDs.Generate()))

	saved, err := o.save(ctx, ch, record, h)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "hireling added",
		"character_id", ch.ID,
		"hireling_id", h.ID,
		"hireling", h.DisplayName())

	return &character.AddHirelingOutput{
		Character: saved,
		Hireling:  h,
		Wage:      rolled.Wage,
	}, nil
}

// RemoveHireling dismisses a hireling; the rest of its type are renumbered
func (o *Orchestrator) RemoveHireling(
	ctx context.Context,
	input *character.RemoveHirelingInput,
) (out *character.RemoveHirelingOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("hirelingID", input.HirelingID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	ctx, span := o.tracer.Start(ctx, "character.RemoveHireling",
		trace.WithAttributes(attribute.String("character.id", input.CharacterID)))
	defer func() { endSpan(span, err) }()

	ch, record, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	removed, err := ch.RemoveHireling(input.HirelingID)
	if err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, ch, record, nil)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "hireling removed",
		"character_id", ch.ID,
		"hireling_id", removed.ID)

	return &character.RemoveHirelingOutput{Character: saved}, nil
}
