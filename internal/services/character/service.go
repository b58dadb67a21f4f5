// Package character defines the interface for character operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactersvcmock github.com/KirkDiggler/mausritter-api/internal/services/character Service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

// Service defines the interface for character operations
type Service interface {
	// Character lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)
	JoinCharacter(ctx context.Context, input *JoinCharacterInput) (*JoinCharacterOutput, error)

	// Generation
	ProposeCharacter(ctx context.Context, input *ProposeCharacterInput) (*ProposeCharacterOutput, error)
	AcceptProposal(ctx context.Context, input *AcceptProposalInput) (*AcceptProposalOutput, error)

	// Sheet edits
	UpdateInventory(ctx context.Context, input *UpdateInventoryInput) (*UpdateInventoryOutput, error)
	IgnoreCondition(ctx context.Context, input *IgnoreConditionInput) (*IgnoreConditionOutput, error)
	UnignoreCondition(ctx context.Context, input *UnignoreConditionInput) (*UnignoreConditionOutput, error)
	AddHireling(ctx context.Context, input *AddHirelingInput) (*AddHirelingOutput, error)
	RemoveHireling(ctx context.Context, input *RemoveHirelingInput) (*RemoveHirelingOutput, error)
}

// Stored is a character together with its storage metadata
type Stored struct {
	Character *mausritter.Character
	Version   int64
	UpdatedAt time.Time
}

// Summary is the listing entry shown to anonymous callers
type Summary struct {
	ID   string
	Name string
}

// Lifecycle types

// CreateCharacterInput defines the request for creating a character. With
// no document a character is generated and accepted in one step.
type CreateCharacterInput struct {
	Document json.RawMessage
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *Stored
	// PlayerTokenID identifies the player token the transport should issue
	PlayerTokenID string
	Warnings      []string
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Character *Stored
	// PlayerTokenID is the jti of the currently valid player token
	PlayerTokenID string
}

// ListCharactersInput defines the request for listing characters
type ListCharactersInput struct{}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Characters []*Stored
	Summaries  []Summary
}

// UpdateCharacterInput defines a full state patch
type UpdateCharacterInput struct {
	CharacterID string
	Patch       *conversion.Patch
}

// UpdateCharacterOutput defines the response for a patch
type UpdateCharacterOutput struct {
	Character *Stored
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct{}

// JoinCharacterInput defines the request for claiming a character as a player
type JoinCharacterInput struct {
	CharacterID string
}

// JoinCharacterOutput carries the player token id of the character
type JoinCharacterOutput struct {
	CharacterID   string
	Name          string
	PlayerTokenID string
}

// Generation types

// ProposeCharacterInput defines the request for a new proposal
type ProposeCharacterInput struct {
	CharacterID string
}

// ProposeCharacterOutput carries the pending proposal
type ProposeCharacterOutput struct {
	Proposal *mausritter.Proposal
}

// AcceptProposalInput defines the request for accepting a proposal
type AcceptProposalInput struct {
	CharacterID string
	ProposalID  string
}

// AcceptProposalOutput defines the response for accepting a proposal
type AcceptProposalOutput struct {
	Character *Stored
	Warnings  []string
}

// Sheet edit types

// InventoryActionKind selects what UpdateInventory does to a slot
type InventoryActionKind string

// Inventory actions
const (
	ActionPlace        InventoryActionKind = "place"
	ActionPlaceholder  InventoryActionKind = "placeholder"
	ActionClear        InventoryActionKind = "clear"
	ActionSetText      InventoryActionKind = "set_text"
	ActionToggleCharge InventoryActionKind = "toggle_charge"
	ActionResetUsage   InventoryActionKind = "reset_usage"
)

// InventoryAction is one edit of a slot grid
type InventoryAction struct {
	Kind   InventoryActionKind
	SlotID inventory.SlotID
	// Item is the catalog name for ActionPlace
	Item string
	// Text is the manual text for ActionSetText and ActionPlaceholder
	Text string
	// Marker is the charge mark index for ActionToggleCharge
	Marker int
}

// UpdateInventoryInput targets the character grid, or a hireling's grid when
// HirelingID is set.
type UpdateInventoryInput struct {
	CharacterID string
	HirelingID  string
	Action      InventoryAction
}

// UpdateInventoryOutput defines the response for an inventory edit
type UpdateInventoryOutput struct {
	Character *Stored
}

// IgnoreConditionInput defines the request for spending grit on a condition
type IgnoreConditionInput struct {
	CharacterID string
	Condition   string
}

// IgnoreConditionOutput defines the response for ignoring a condition
type IgnoreConditionOutput struct {
	Character *Stored
}

// UnignoreConditionInput defines the request for dropping an ignored condition
type UnignoreConditionInput struct {
	CharacterID string
	Index       int
}

// UnignoreConditionOutput defines the response for dropping an ignored condition
type UnignoreConditionOutput struct {
	Character *Stored
	Removed   mausritter.IgnoredCondition
}

// AddHirelingInput defines the request for hiring a companion
type AddHirelingInput struct {
	CharacterID string
	Type        string
}

// AddHirelingOutput defines the response for hiring a companion
type AddHirelingOutput struct {
	Character *Stored
	Hireling  *mausritter.Hireling
	// Wage is the daily wage in pips, zero for types outside the table
	Wage int
}

// RemoveHirelingInput defines the request for dismissing a companion
type RemoveHirelingInput struct {
	CharacterID string
	HirelingID  string
}

// RemoveHirelingOutput defines the response for dismissing a companion
type RemoveHirelingOutput struct {
	Character *Stored
}
