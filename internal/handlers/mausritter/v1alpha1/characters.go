package v1alpha1

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/mausritter-api/internal/auth"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
	"github.com/KirkDiggler/mausritter-api/internal/services/character"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

type characterView struct {
	ID          string               `json:"id"`
	Version     int64                `json:"version"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Document    *conversion.Document `json:"document"`
	PlayerToken string               `json:"player_token,omitempty"`
}

type summaryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type characterResponse struct {
	Character characterView `json:"character"`
	Warnings  []string      `json:"warnings,omitempty"`
}

type characterRef struct {
	CharacterID string `json:"character_id"`
}

func (h *Handler) view(stored *character.Stored) characterView {
	return characterView{
		ID:        stored.Character.ID,
		Version:   stored.Version,
		UpdatedAt: stored.UpdatedAt,
		Document:  h.converter.ToDocument(stored.Character),
	}
}

func (h *Handler) characterResponse(ctx context.Context, stored *character.Stored, warnings []string) (*structpb.Struct, error) {
	return respond(ctx, characterResponse{Character: h.view(stored), Warnings: warnings})
}

// ListCharacters returns full documents to the GM and id and name pairs to
// everyone else, which is what the join page needs.
func (h *Handler) ListCharacters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := Decode(req, &struct{}{}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.ListCharacters(ctx, &character.ListCharactersInput{})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}

	if !auth.FromContext(ctx).IsGM() {
		summaries := make([]summaryView, 0, len(out.Summaries))
		for _, s := range out.Summaries {
			summaries = append(summaries, summaryView{ID: s.ID, Name: s.Name})
		}
		return respond(ctx, struct {
			Characters []summaryView `json:"characters"`
		}{Characters: summaries})
	}

	views := make([]characterView, 0, len(out.Characters))
	for _, stored := range out.Characters {
		views = append(views, h.view(stored))
	}
	return respond(ctx, struct {
		Characters []characterView `json:"characters"`
	}{Characters: views})
}

// CreateCharacter adds a character from a document, or generates one when
// no document is sent. The response carries the new player's token.
func (h *Handler) CreateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireGM(ctx); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	var in struct {
		Document json.RawMessage `json:"document"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if string(in.Document) == "null" {
		in.Document = nil
	}

	out, err := h.characters.CreateCharacter(ctx, &character.CreateCharacterInput{Document: in.Document})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}

	view := h.view(out.Character)
	if view.PlayerToken, err = h.tokens.IssuePlayer(view.ID, out.PlayerTokenID); err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, characterResponse{Character: view, Warnings: out.Warnings})
}

// GetCharacter returns one character. The GM also gets the player token.
func (h *Handler) GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in characterRef
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireOwner(ctx, in.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.GetCharacter(ctx, &character.GetCharacterInput{CharacterID: in.CharacterID})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}

	view := h.view(out.Character)
	if auth.FromContext(ctx).IsGM() && out.PlayerTokenID != "" {
		if view.PlayerToken, err = h.tokens.IssuePlayer(view.ID, out.PlayerTokenID); err != nil {
			return nil, toGRPC(ctx, err)
		}
	}
	return respond(ctx, characterResponse{Character: view})
}

// UpdateCharacter applies a partial update; the latest write wins
func (h *Handler) UpdateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		CharacterID string          `json:"character_id"`
		Patch       json.RawMessage `json:"patch"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireOwner(ctx, in.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if len(in.Patch) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("patch is required"))
	}

	patch, err := conversion.DecodePatch(in.Patch)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.UpdateCharacter(ctx, &character.UpdateCharacterInput{
		CharacterID: in.CharacterID,
		Patch:       patch,
	})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return h.characterResponse(ctx, out.Character, nil)
}

// DeleteCharacter removes a character and revokes its player token
func (h *Handler) DeleteCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireGM(ctx); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	var in characterRef
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.characters.DeleteCharacter(ctx, &character.DeleteCharacterInput{CharacterID: in.CharacterID}); err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, struct {
		Deleted string `json:"deleted"`
	}{Deleted: in.CharacterID})
}

// JoinCharacter hands out the player token of a character. Anyone on the
// network may call it.
func (h *Handler) JoinCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in characterRef
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.JoinCharacter(ctx, &character.JoinCharacterInput{CharacterID: in.CharacterID})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	token, err := h.tokens.IssuePlayer(out.CharacterID, out.PlayerTokenID)
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, struct {
		CharacterID string `json:"character_id"`
		Name        string `json:"name"`
		PlayerToken string `json:"player_token"`
	}{
		CharacterID: out.CharacterID,
		Name:        out.Name,
		PlayerToken: token,
	})
}

// ProposeCharacter rolls a candidate for the character, replacing any
// pending one
func (h *Handler) ProposeCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in characterRef
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireOwner(ctx, in.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.ProposeCharacter(ctx, &character.ProposeCharacterInput{CharacterID: in.CharacterID})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, struct {
		Proposal *mausritter.Proposal `json:"proposal"`
	}{Proposal: out.Proposal})
}

// AcceptProposal writes the pending candidate onto the character
func (h *Handler) AcceptProposal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		CharacterID string `json:"character_id"`
		ProposalID  string `json:"proposal_id"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireOwner(ctx, in.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.AcceptProposal(ctx, &character.AcceptProposalInput{
		CharacterID: in.CharacterID,
		ProposalID:  in.ProposalID,
	})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return h.characterResponse(ctx, out.Character, out.Warnings)
}

// UpdateInventory applies one slot action to the character or a hireling
func (h *Handler) UpdateInventory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		CharacterID string `json:"character_id"`
		HirelingID  string `json:"hireling_id"`
		Action      struct {
			Kind   string `json:"kind"`
			SlotID string `json:"slot_id"`
			Item   string `json:"item"`
			Text   string `json:"text"`
			Marker int    `json:"marker"`
		} `json:"action"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireOwner(ctx, in.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.UpdateInventory(ctx, &character.UpdateInventoryInput{
		CharacterID: in.CharacterID,
		HirelingID:  in.HirelingID,
		Action: character.InventoryAction{
			Kind:   character.InventoryActionKind(in.Action.Kind),
			SlotID: inventory.SlotID(in.Action.SlotID),
			Item:   in.Action.Item,
			Text:   in.Action.Text,
			Marker: in.Action.Marker,
		},
	})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return h.characterResponse(ctx, out.Character, nil)
}

// IgnoreCondition spends grit on a condition
func (h *Handler) IgnoreCondition(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		CharacterID string `json:"character_id"`
		Condition   string `json:"condition"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireOwner(ctx, in.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.IgnoreCondition(ctx, &character.IgnoreConditionInput{
		CharacterID: in.CharacterID,
		Condition:   in.Condition,
	})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return h.characterResponse(ctx, out.Character, nil)
}

// UnignoreCondition frees the grit held by an ignored condition
func (h *Handler) UnignoreCondition(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		CharacterID string `json:"character_id"`
		Index       int    `json:"index"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireOwner(ctx, in.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.UnignoreCondition(ctx, &character.UnignoreConditionInput{
		CharacterID: in.CharacterID,
		Index:       in.Index,
	})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return h.characterResponse(ctx, out.Character, nil)
}

// AddHireling rolls and attaches a hireling
func (h *Handler) AddHireling(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		CharacterID string `json:"character_id"`
		Type        string `json:"type"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireOwner(ctx, in.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.AddHireling(ctx, &character.AddHirelingInput{
		CharacterID: in.CharacterID,
		Type:        in.Type,
	})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, struct {
		Character  characterView `json:"character"`
		HirelingID string        `json:"hireling_id"`
		Wage       int           `json:"wage"`
	}{
		Character:  h.view(out.Character),
		HirelingID: out.Hireling.ID,
		Wage:       out.Wage,
	})
}

// RemoveHireling dismisses a hireling
func (h *Handler) RemoveHireling(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		CharacterID string `json:"character_id"`
		HirelingID  string `json:"hireling_id"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireOwner(ctx, in.CharacterID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characters.RemoveHireling(ctx, &character.RemoveHirelingInput{
		CharacterID: in.CharacterID,
		HirelingID:  in.HirelingID,
	})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return h.characterResponse(ctx, out.Character, nil)
}
