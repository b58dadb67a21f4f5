// Package dicesession keeps the recent dice rolls of a table, grouped by the
// entity that rolled them (a character id, or the GM).
package dicesession

import (
	"context"
	"time"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/mausritter-api/internal/repositories/dice_session Repository

// Limits on the roll log
const (
	// MaxRolls is how many rolls are kept per entity, oldest dropped first
	MaxRolls = 20
	// DefaultTTL is how long an idle log survives
	DefaultTTL = 12 * time.Hour
)

// Roll kinds
const (
	KindRoll = "roll"
	KindSave = "save"
)

// DiceRoll is one logged roll
type DiceRoll struct {
	RollID   string `json:"roll_id"`
	Kind     string `json:"kind"`
	Notation string `json:"notation"`
	// Dice are the individual die results in roll order
	Dice     []int `json:"dice"`
	Modifier int   `json:"modifier"`
	Total    int   `json:"total"`
	// Target and Success are set for saves
	Target      int       `json:"target,omitempty"`
	Success     bool      `json:"success,omitempty"`
	Description string    `json:"description,omitempty"`
	RolledAt    time.Time `json:"rolled_at"`
}

// AppendInput contains parameters for logging a roll
type AppendInput struct {
	EntityID string
	Roll     DiceRoll
	// TTL refreshes the log's expiry; zero uses DefaultTTL
	TTL time.Duration
}

// AppendOutput contains the result of logging a roll
type AppendOutput struct{}

// ListInput contains parameters for reading a log
type ListInput struct {
	EntityID string
}

// ListOutput contains the logged rolls, oldest first
type ListOutput struct {
	Rolls []DiceRoll
}

// ClearInput contains parameters for clearing a log
type ClearInput struct {
	EntityID string
}

// ClearOutput reports how many rolls were dropped
type ClearOutput struct {
	RollsDeleted int
}

// Repository defines the interface for roll log storage
type Repository interface {
	// Append logs a roll, trimming the log to MaxRolls
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// List returns the logged rolls; an unknown entity has an empty log
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Clear drops every roll of an entity
	Clear(ctx context.Context, input ClearInput) (*ClearOutput, error)
}

const errEntityIDEmpty = "entity ID cannot be empty"

func validateEntity(id string) error {
	if id == "" {
		return errors.InvalidArgument(errEntityIDEmpty)
	}
	return nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
