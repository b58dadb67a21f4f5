package proposal

import (
	"context"
	"sync"

	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*mausritter.Proposal
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository. A nil clock uses real time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*mausritter.Proposal),
	}
}

// Put stores a copy of the proposal
func (r *InMemoryRepository) Put(_ context.Context, input *PutInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if _, err := validateProposal(input.Proposal, r.clock.Now()); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[input.Proposal.CharacterID] = cloneProposal(input.Proposal)
	return &PutOutput{}, nil
}

// Get returns a copy of the pending proposal
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[input.CharacterID]
	if !ok {
		return nil, notFound(input.CharacterID)
	}
	if p.Expired(r.clock.Now()) {
		delete(r.store, input.CharacterID)
		return nil, notFound(input.CharacterID)
	}
	return &GetOutput{Proposal: cloneProposal(p)}, nil
}

// Delete drops the pending proposal
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, input.CharacterID)
	return &DeleteOutput{}, nil
}

func cloneProposal(p *mausritter.Proposal) *mausritter.Proposal {
	out := *p
	out.Items = append([]string(nil), p.Items...)
	out.Hirelings = append([]mausritter.ProposedHireling(nil), p.Hirelings...)
	return &out
}
