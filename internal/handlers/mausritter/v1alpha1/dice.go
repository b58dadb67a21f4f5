package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/mausritter-api/internal/auth"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/orchestrators/dice"
	dicesession "github.com/KirkDiggler/mausritter-api/internal/repositories/dice_session"
)

// GMEntityID is the roll log of the GM
const GMEntityID = "gm"

// rollEntity picks whose log a roll lands in. Players always roll into their
// own character's log; the GM may name any entity.
func rollEntity(ctx context.Context, requested string) (string, error) {
	p := auth.FromContext(ctx)
	if p == nil {
		return "", errors.Unauthenticated("a token is required to roll")
	}
	if p.IsGM() {
		if requested == "" {
			return GMEntityID, nil
		}
		return requested, nil
	}
	if requested != "" && requested != p.CharacterID {
		return "", errors.PermissionDenied("players may only roll for their own character").
			WithMeta("entity_id", requested)
	}
	return p.CharacterID, nil
}

type rollResponse struct {
	Roll *dicesession.DiceRoll `json:"roll"`
}

// RollDice rolls dice notation such as 2d6+1
func (h *Handler) RollDice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		EntityID    string `json:"entity_id"`
		Notation    string `json:"notation"`
		Description string `json:"description"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	entityID, err := rollEntity(ctx, in.EntityID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.dice.RollDice(ctx, &dice.RollDiceInput{
		EntityID:    entityID,
		Notation:    in.Notation,
		Description: in.Description,
	})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, rollResponse{Roll: out.Roll})
}

// RollSave rolls a d20 save against an attribute value
func (h *Handler) RollSave(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		EntityID  string `json:"entity_id"`
		Attribute string `json:"attribute"`
		Value     int    `json:"value"`
		Mode      string `json:"mode"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	entityID, err := rollEntity(ctx, in.EntityID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.dice.RollSave(ctx, &dice.RollSaveInput{
		EntityID:  entityID,
		Attribute: in.Attribute,
		Value:     in.Value,
		Mode:      dice.SaveMode(in.Mode),
	})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, rollResponse{Roll: out.Roll})
}

// GetRollLog returns the recent rolls of an entity, oldest first
func (h *Handler) GetRollLog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		EntityID string `json:"entity_id"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	entityID, err := rollEntity(ctx, in.EntityID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.dice.GetRollSession(ctx, &dice.GetRollSessionInput{EntityID: entityID})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	rolls := out.Rolls
	if rolls == nil {
		rolls = []dicesession.DiceRoll{}
	}
	return respond(ctx, struct {
		EntityID string                 `json:"entity_id"`
		Rolls    []dicesession.DiceRoll `json:"rolls"`
	}{
		EntityID: entityID,
		Rolls:    rolls,
	})
}
