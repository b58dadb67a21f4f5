package character

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/mausritter-api/internal/engine"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	characterrepo "github.com/KirkDiggler/mausritter-api/internal/repositories/character"
	proposalrepo "github.com/KirkDiggler/mausritter-api/internal/repositories/proposal"
	"github.com/KirkDiggler/mausritter-api/internal/services/character"
)

// ProposeCharacter rolls a new candidate for an existing character. Any
// pending proposal is replaced, which is how regenerating works.
func (o *Orchestrator) ProposeCharacter(
	ctx context.Context,
	input *character.ProposeCharacterInput,
) (out *character.ProposeCharacterOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	ctx, span := o.tracer.Start(ctx, "character.ProposeCharacter",
		trace.WithAttributes(attribute.String("character.id", input.CharacterID)))
	defer func() { endSpan(span, err) }()

	if _, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID}); err != nil {
		return nil, errors.Wrapf(err, "failed to get character %s", input.CharacterID)
	}

	generated, err := o.engine.GenerateProposal(ctx, &engine.GenerateProposalInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate proposal")
	}

	proposal := generated.Proposal
	now := o.clock.Now().UTC()
	proposal.ID = o.proposalIDs.Generate()
	proposal.CharacterID = input.CharacterID
	proposal.CreatedAt = now
	proposal.ExpiresAt = now.Add(o.proposalTTL)

	if _, err := o.proposalRepo.Put(ctx, &proposalrepo.PutInput{Proposal: proposal}); err != nil {
		return nil, errors.Wrap(err, "failed to store proposal")
	}

	slog.InfoContext(ctx, "character proposed",
		"character_id", input.CharacterID,
		"proposal_id", proposal.ID,
		"background", proposal.Background)

	return &character.ProposeCharacterOutput{Proposal: proposal}, nil
}

// AcceptProposal writes the pending proposal onto the character. Usage marks
// start clear and granted hirelings are attached.
func (o *Orchestrator) AcceptProposal(
	ctx context.Context,
	input *character.AcceptProposalInput,
) (out *character.AcceptProposalOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("proposalID", input.ProposalID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	ctx, span := o.tracer.Start(ctx, "character.AcceptProposal",
		trace.WithAttributes(
			attribute.String("character.id", input.CharacterID),
			attribute.String("proposal.id", input.ProposalID),
		))
	defer func() { endSpan(span, err) }()

	pending, err := o.proposalRepo.Get(ctx, &proposalrepo.GetInput{CharacterID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrapf(err, "no pending proposal for character %s", input.CharacterID)
	}
	if pending.Proposal.ID != input.ProposalID {
		return nil, errors.FailedPreconditionf("proposal %s is no longer pending", input.ProposalID).
			WithMeta("pending_proposal_id", pending.Proposal.ID)
	}

	ch, record, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	warnings := o.converter.ApplyProposal(ch, pending.Proposal, o.hirelingIDs)

	saved, err := o.save(ctx, ch, record, nil)
	if err != nil {
		return nil, err
	}

	if _, err := o.proposalRepo.Delete(ctx, &proposalrepo.DeleteInput{CharacterID: input.CharacterID}); err != nil {
		slog.WarnContext(ctx, "failed to drop accepted proposal",
			"character_id", input.CharacterID,
			"error", err)
	}

	slog.InfoContext(ctx, "proposal accepted",
		"character_id", input.CharacterID,
		"proposal_id", input.ProposalID,
		"hirelings", len(ch.Hirelings),
		"warnings", len(warnings))

	return &character.AcceptProposalOutput{
		Character: saved,
		Warnings:  warnings,
	}, nil
}
