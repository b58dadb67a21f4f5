package dicesession

import (
	"context"
	"sync"
)

// InMemoryRepository keeps roll logs in process memory. Logs never expire;
// they are bounded by MaxRolls per entity.
type InMemoryRepository struct {
	mu    sync.Mutex
	rolls map[string][]DiceRoll
}

// NewInMemory creates an empty in-memory roll log
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{rolls: make(map[string][]DiceRoll)}
}

var _ Repository = (*InMemoryRepository)(nil)

// Append logs a roll
func (r *InMemoryRepository) Append(_ context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateEntity(input.EntityID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	log := append(r.rolls[input.EntityID], cloneRoll(input.Roll))
	if len(log) > MaxRolls {
		log = append([]DiceRoll(nil), log[len(log)-MaxRolls:]...)
	}
	r.rolls[input.EntityID] = log
	return &AppendOutput{}, nil
}

// List returns a copy of the log
func (r *InMemoryRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	if err := validateEntity(input.EntityID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.rolls[input.EntityID]
	out := make([]DiceRoll, 0, len(log))
	for _, roll := range log {
		out = append(out, cloneRoll(roll))
	}
	return &ListOutput{Rolls: out}, nil
}

// Clear drops the log
func (r *InMemoryRepository) Clear(_ context.Context, input ClearInput) (*ClearOutput, error) {
	if err := validateEntity(input.EntityID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.rolls[input.EntityID])
	delete(r.rolls, input.EntityID)
	return &ClearOutput{RollsDeleted: n}, nil
}

func cloneRoll(roll DiceRoll) DiceRoll {
	roll.Dice = append([]int(nil), roll.Dice...)
	return roll
}
