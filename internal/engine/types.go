package engine

import "github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"

// GenerateProposalInput contains the parameters for generating a character
type GenerateProposalInput struct {
	CharacterID string
}

// GenerateProposalOutput contains the rolled proposal and the individual
// rolls that produced it.
type GenerateProposalOutput struct {
	Proposal *mausritter.Proposal
	Rolls    *GenerationRolls
}

// GenerationRolls records the dice behind a proposal for display and
// debugging.
type GenerationRolls struct {
	STR         []int
	DEX         []int
	WIL         []int
	HP          int
	Pips        int
	BonusHP     int
	BonusPips   int
	PhysicalD66 int
}

// RollHirelingInput contains the parameters for rolling a hireling
type RollHirelingInput struct {
	Type string
}

// RollHirelingOutput contains the rolled hireling
type RollHirelingOutput struct {
	Hireling *mausritter.ProposedHireling
	// Wage is the daily cost in pips, zero for unknown or granted types
	Wage int
}
