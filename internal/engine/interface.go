// Package engine generates Mausritter characters and hirelings from the
// random tables.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/mausritter-api/internal/engine Engine

import (
	"context"
)

// Engine rolls new characters and hirelings
type Engine interface {
	// GenerateProposal rolls a complete candidate character. The proposal has
	// no id or timestamps yet; the caller assigns them when storing it.
	GenerateProposal(ctx context.Context, input *GenerateProposalInput) (*GenerateProposalOutput, error)

	// RollHireling rolls stats, look and disposition for one hireling
	RollHireling(ctx context.Context, input *RollHirelingInput) (*RollHirelingOutput, error)
}
