// Package character implements the character orchestrator
package character

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/engine"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/mausritter-api/internal/repositories/character"
	proposalrepo "github.com/KirkDiggler/mausritter-api/internal/repositories/proposal"
	"github.com/KirkDiggler/mausritter-api/internal/services/character"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

// DefaultProposalTTL is how long a generated proposal waits for acceptance
const DefaultProposalTTL = 15 * time.Minute

const tracerName = "github.com/KirkDiggler/mausritter-api/internal/orchestrators/character"

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	ProposalRepo  proposalrepo.Repository
	Engine        engine.Engine
	Converter     conversion.CharacterConverter
	Catalog       *catalog.Catalog
	EventBus      events.EventBus

	CharacterIDs idgen.Generator
	HirelingIDs  idgen.Generator
	TokenIDs     idgen.Generator
	ProposalIDs  idgen.Generator

	// Optional
	Clock       clock.Clock
	ProposalTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.ProposalRepo == nil {
		vb.RequiredField("ProposalRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Converter == nil {
		vb.RequiredField("Converter")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.CharacterIDs == nil {
		vb.RequiredField("CharacterIDs")
	}
	if c.HirelingIDs == nil {
		vb.RequiredField("HirelingIDs")
	}
	if c.TokenIDs == nil {
		vb.RequiredField("TokenIDs")
	}
	if c.ProposalIDs == nil {
		vb.RequiredField("ProposalIDs")
	}
	if c.ProposalTTL < 0 {
		vb.InvalidField("ProposalTTL", "must not be negative")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	proposalRepo  proposalrepo.Repository
	engine        engine.Engine
	converter     conversion.CharacterConverter
	catalog       *catalog.Catalog
	eventBus      events.EventBus
	characterIDs  idgen.Generator
	hirelingIDs   idgen.Generator
	tokenIDs      idgen.Generator
	proposalIDs   idgen.Generator
	clock         clock.Clock
	proposalTTL   time.Duration
	tracer        trace.Tracer
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	ttl := cfg.ProposalTTL
	if ttl == 0 {
		ttl = DefaultProposalTTL
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		proposalRepo:  cfg.ProposalRepo,
		engine:        cfg.Engine,
		converter:     cfg.Converter,
		catalog:       cfg.Catalog,
		eventBus:      cfg.EventBus,
		characterIDs:  cfg.CharacterIDs,
		hirelingIDs:   cfg.HirelingIDs,
		tokenIDs:      cfg.TokenIDs,
		proposalIDs:   cfg.ProposalIDs,
		clock:         clk,
		proposalTTL:   ttl,
		tracer:        otel.Tracer(tracerName),
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

// Character lifecycle methods

// CreateCharacter stores a character built from a manual document, or
// generates one and accepts it straight away when no document is given.
func (o *Orchestrator) CreateCharacter(
	ctx context.Context,
	input *character.CreateCharacterInput,
) (out *character.CreateCharacterOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.tracer.Start(ctx, "character.CreateCharacter")
	defer func() { endSpan(span, err) }()

	id := o.characterIDs.Generate()
	span.SetAttributes(attribute.String("character.id", id))

	var (
		ch       *mausritter.Character
		warnings []string
	)
	if len(input.Document) == 0 {
		ch = mausritter.NewCharacter(id)
		generated, genErr := o.engine.GenerateProposal(ctx, &engine.GenerateProposalInput{CharacterID: id})
		if genErr != nil {
			return nil, errors.Wrap(genErr, "failed to generate character")
		}
		warnings = o.converter.ApplyProposal(ch, generated.Proposal, o.hirelingIDs)
	} else {
		ch, err = o.converter.Unmarshal(input.Document)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid character document")
		}
		ch.ID = id
	}

	doc, err := o.converter.Marshal(ch)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode character")
	}

	created, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{
		Record: &characterrepo.Record{
			ID:            id,
			PlayerTokenID: o.tokenIDs.Generate(),
			Name:          ch.Name,
			Document:      doc,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create character")
	}

	slog.InfoContext(ctx, "character created",
		"character_id", id,
		"name", ch.Name,
		"generated", len(input.Document) == 0,
		"warnings", len(warnings))
	o.publish(ctx, mausritter.NewChangedEvent(ch, nil))

	return &character.CreateCharacterOutput{
		Character:     stored(ch, created.Record),
		PlayerTokenID: created.Record.PlayerTokenID,
		Warnings:      warnings,
	}, nil
}

// GetCharacter retrieves a character by ID
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *character.GetCharacterInput,
) (out *character.GetCharacterOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.tracer.Start(ctx, "character.GetCharacter",
		trace.WithAttributes(attribute.String("character.id", input.CharacterID)))
	defer func() { endSpan(span, err) }()

	ch, record, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &character.GetCharacterOutput{
		Character:     stored(ch, record),
		PlayerTokenID: record.PlayerTokenID,
	}, nil
}

// ListCharacters returns every character in creation order
func (o *Orchestrator) ListCharacters(
	ctx context.Context,
	input *character.ListCharactersInput,
) (out *character.ListCharactersOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.tracer.Start(ctx, "character.ListCharacters")
	defer func() { endSpan(span, err) }()

	listed, err := o.characterRepo.List(ctx, characterrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	out = &character.ListCharactersOutput{
		Characters: make([]*character.Stored, 0, len(listed.Records)),
		Summaries:  make([]character.Summary, 0, len(listed.Records)),
	}
	for _, record := range listed.Records {
		ch := o.decode(ctx, record)
		out.Characters = append(out.Characters, stored(ch, record))
		out.Summaries = append(out.Summaries, character.Summary{ID: record.ID, Name: record.Name})
	}
	span.SetAttributes(attribute.Int("character.count", len(listed.Records)))

	return out, nil
}

// UpdateCharacter applies a full state patch. The latest write wins.
func (o *Orchestrator) UpdateCharacter(
	ctx context.Context,
	input *character.UpdateCharacterInput,
) (out *character.UpdateCharacterOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Patch == nil {
		return nil, errors.InvalidArgument("patch is required")
	}
	ctx, span := o.tracer.Start(ctx, "character.UpdateCharacter",
		trace.WithAttributes(attribute.String("character.id", input.CharacterID)))
	defer func() { endSpan(span, err) }()

	ch, record, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if input.Patch.IsEmpty() {
		return &character.UpdateCharacterOutput{Character: stored(ch, record)}, nil
	}

	if err := o.converter.ApplyPatch(ch, input.Patch); err != nil {
		return nil, errors.Wrapf(err, "failed to update character %s", input.CharacterID)
	}

	saved, err := o.save(ctx, ch, record, nil)
	if err != nil {
		return nil, err
	}

	return &character.UpdateCharacterOutput{Character: saved}, nil
}

// DeleteCharacter removes a character and its pending proposal
func (o *Orchestrator) DeleteCharacter(
	ctx context.Context,
	input *character.DeleteCharacterInput,
) (out *character.DeleteCharacterOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.tracer.Start(ctx, "character.DeleteCharacter",
		trace.WithAttributes(attribute.String("character.id", input.CharacterID)))
	defer func() { endSpan(span, err) }()

	ch, _, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character %s", input.CharacterID)
	}
	if _, err := o.proposalRepo.Delete(ctx, &proposalrepo.DeleteInput{CharacterID: input.CharacterID}); err != nil {
		slog.WarnContext(ctx, "failed to drop pending proposal",
			"character_id", input.CharacterID,
			"error", err)
	}

	slog.InfoContext(ctx, "character deleted", "character_id", input.CharacterID)
	o.publish(ctx, mausritter.NewDeletedEvent(ch))

	return &character.DeleteCharacterOutput{}, nil
}

// JoinCharacter hands out the player token id of a character. Anyone who can
// reach the server may join, as on the original LAN join page.
func (o *Orchestrator) JoinCharacter(
	ctx context.Context,
	input *character.JoinCharacterInput,
) (*character.JoinCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	got, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character %s", input.CharacterID)
	}

	slog.InfoContext(ctx, "player joined", "character_id", input.CharacterID)

	return &character.JoinCharacterOutput{
		CharacterID:   got.Record.ID,
		Name:          got.Record.Name,
		PlayerTokenID: got.Record.PlayerTokenID,
	}, nil
}

// load fetches a record and decodes its document
func (o *Orchestrator) load(ctx context.Context, id string) (*mausritter.Character, *characterrepo.Record, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", id, vb)
	if err := vb.Build(); err != nil {
		return nil, nil, err
	}

	got, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: id})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get character %s", id)
	}
	return o.decode(ctx, got.Record), got.Record, nil
}

// decode turns a record into a character. A malformed document falls back
// to an empty character that keeps the record's id and name; the next write
// replaces the broken document.
func (o *Orchestrator) decode(ctx context.Context, record *characterrepo.Record) *mausritter.Character {
	ch, err := o.converter.LoadOrDefault(record.Document)
	if err != nil {
		slog.WarnContext(ctx, "stored character document is invalid, using an empty character",
			"character_id", record.ID,
			"error", err)
		ch.Name = record.Name
	}
	ch.ID = record.ID
	return ch
}

// save writes the current full state of ch over record and announces it
func (o *Orchestrator) save(
	ctx context.Context,
	ch *mausritter.Character,
	record *characterrepo.Record,
	target *mausritter.Hireling,
) (*character.Stored, error) {
	doc, err := o.converter.Marshal(ch)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode character")
	}

	next := *record
	next.Name = ch.Name
	next.Document = doc

	updated, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Record: &next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save character %s", ch.ID)
	}

	slog.DebugContext(ctx, "character saved",
		"character_id", ch.ID,
		"version", updated.Record.Version)
	o.publish(ctx, mausritter.NewChangedEvent(ch, target))

	return stored(ch, updated.Record), nil
}

func (o *Orchestrator) publish(ctx context.Context, event events.Event) {
	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish character event",
			"event_type", event.Type(),
			"error", err)
	}
}

func stored(ch *mausritter.Character, record *characterrepo.Record) *character.Stored {
	return &character.Stored{
		Character: ch,
		Version:   record.Version,
		UpdatedAt: record.UpdatedAt,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errors.GetMessage(err))
	}
	span.End()
}
