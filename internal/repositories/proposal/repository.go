// Package proposal stores generated characters that are waiting to be
// accepted or regenerated. A character has at most one pending proposal and
// every proposal expires.
package proposal

//go:generate mockgen -destination=mock/mock_repository.go -package=proposalmock github.com/KirkDiggler/mausritter-api/internal/repositories/proposal Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

// Repository defines the storage interface for pending proposals
type Repository interface {
	// Put stores the proposal for its character, replacing any pending one
	// Returns errors.InvalidArgument for a proposal that is incomplete or already expired
	Put(ctx context.Context, input *PutInput) (*PutOutput, error)

	// Get returns the pending proposal of a character
	// Returns errors.NotFound when there is none or it expired
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete drops the pending proposal; deleting nothing is not an error
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// PutInput defines the request for storing a proposal
type PutInput struct {
	Proposal *mausritter.Proposal
}

// PutOutput defines the response for storing a proposal
type PutOutput struct{}

// GetInput defines the request for retrieving a proposal
type GetInput struct {
	CharacterID string
}

// GetOutput defines the response for retrieving a proposal
type GetOutput struct {
	Proposal *mausritter.Proposal
}

// DeleteInput defines the request for dropping a proposal
type DeleteInput struct {
	CharacterID string
}

// DeleteOutput defines the response for dropping a proposal
type DeleteOutput struct{}

func validateProposal(p *mausritter.Proposal, now time.Time) (time.Duration, error) {
	if p == nil {
		return 0, errors.InvalidArgument("proposal is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", p.ID, vb)
	errors.ValidateRequired("character_id", p.CharacterID, vb)
	if p.ExpiresAt.IsZero() {
		vb.RequiredField("expires_at")
	}
	if err := vb.Build(); err != nil {
		return 0, err
	}

	ttl := p.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return 0, errors.InvalidArgument("proposal has already expired").WithMeta("proposal_id", p.ID)
	}
	return ttl, nil
}

func notFound(characterID string) error {
	return errors.NotFoundf("no pending proposal for character %s", characterID)
}
