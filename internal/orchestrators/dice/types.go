package dice

import (
	dicesession "github.com/KirkDiggler/mausritter-api/internal/repositories/dice_session"
)

// SaveMode selects how many d20 a save rolls
type SaveMode string

// Save modes. With advantage two d20 are rolled and the lower kept; with
// disadvantage the higher.
const (
	SaveNormal       SaveMode = "normal"
	SaveAdvantage    SaveMode = "advantage"
	SaveDisadvantage SaveMode = "disadvantage"
)

// RollDiceInput defines the request for rolling dice
type RollDiceInput struct {
	// EntityID owns the roll log entry, a character id or "gm"
	EntityID    string
	Notation    string
	Description string
}

// RollDiceOutput defines the response for rolling dice
type RollDiceOutput struct {
	Roll *dicesession.DiceRoll
}

// RollSaveInput defines the request for an attribute save
type RollSaveInput struct {
	EntityID string
	// Attribute is the label shown in the log, e.g. STR
	Attribute string
	// Value is the current attribute value to roll under
	Value int
	Mode  SaveMode
}

// RollSaveOutput defines the response for an attribute save
type RollSaveOutput struct {
	Roll *dicesession.DiceRoll
}

// GetRollSessionInput defines the request for reading the roll log
type GetRollSessionInput struct {
	EntityID string
}

// GetRollSessionOutput defines the response for reading the roll log
type GetRollSessionOutput struct {
	Rolls []dicesession.DiceRoll
}

// ClearRollSessionInput defines the request for clearing the roll log
type ClearRollSessionInput struct {
	EntityID string
}

// ClearRollSessionOutput defines the response for clearing the roll log
type ClearRollSessionOutput struct {
	RollsDeleted int
}
