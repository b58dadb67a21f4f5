// Package session implements the game session: its name, GM notes, the GM
// token and whole session export, import and reset.
package session

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/mausritter-api/internal/repositories/character"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

// DefaultName is the name of a fresh session
const DefaultName = "New Session"

// Limits on session text
const (
	MaxNameLength  = 100
	MaxNotesLength = 20000
)

// createdLayouts are accepted for the created field of imported files,
// including timestamps written without a zone
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Config holds the dependencies for the session orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	Converter     conversion.CharacterConverter
	TokenIDs      idgen.Generator
	SessionIDs    idgen.Generator

	// Optional
	Clock clock.Clock
	Name  string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Converter == nil {
		vb.RequiredField("Converter")
	}
	if c.TokenIDs == nil {
		vb.RequiredField("TokenIDs")
	}
	if c.SessionIDs == nil {
		vb.RequiredField("SessionIDs")
	}
	errors.ValidateMaxLength("Name", c.Name, MaxNameLength, vb)

	return vb.Build()
}

// Orchestrator owns the single game session of a server
type Orchestrator struct {
	characterRepo characterrepo.Repository
	converter     conversion.CharacterConverter
	tokenIDs      idgen.Generator
	sessionIDs    idgen.Generator
	clock         clock.Clock
	initialName   string

	mu        sync.RWMutex
	id        string
	name      string
	notes     string
	createdAt time.Time
	combat    Combat
	gmTokenID string
}

// New creates the session orchestrator with a fresh session
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
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = DefaultName
	}

	o := &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		converter:     cfg.Converter,
		tokenIDs:      cfg.TokenIDs,
		sessionIDs:    cfg.SessionIDs,
		clock:         clk,
		initialName:   name,
	}
	o.resetLocked()
	return o, nil
}

// resetLocked starts a new session; callers hold mu
func (o *Orchestrator) resetLocked() {
	o.id = o.sessionIDs.Generate()
	o.name = o.initialName
	o.notes = ""
	o.createdAt = o.clock.Now().UTC()
	o.combat = Combat{TurnOrder: []string{}}
	o.gmTokenID = o.tokenIDs.Generate()
}

// GMTokenID returns the jti of the GM token currently accepted
func (o *Orchestrator) GMTokenID() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.gmTokenID
}

// IsCurrentGMToken reports whether jti is the current GM token. Tokens from
// before an import or reset are rejected.
func (o *Orchestrator) IsCurrentGMToken(jti string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return jti != "" && subtle.ConstantTimeCompare([]byte(jti), []byte(o.gmTokenID)) == 1
}

// Info returns the session
func (o *Orchestrator) Info(ctx context.Context, input *InfoInput) (*InfoOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	info, err := o.info(ctx)
	if err != nil {
		return nil, err
	}
	return &InfoOutput{Session: info}, nil
}

// Rename sets the session name
func (o *Orchestrator) Rename(ctx context.Context, input *RenameInput) (*RenameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := strings.TrimSpace(input.Name)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	errors.ValidateMaxLength("name", name, MaxNameLength, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.name = name
	o.mu.Unlock()

	slog.InfoContext(ctx, "session renamed", "name", name)

	info, err := o.info(ctx)
	if err != nil {
		return nil, err
	}
	return &RenameOutput{Session: info}, nil
}

// SetNotes replaces the GM notes
func (o *Orchestrator) SetNotes(ctx context.Context, input *SetNotesInput) (*SetNotesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateMaxLength("notes", input.Notes, MaxNotesLength, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.notes = input.Notes
	o.mu.Unlock()

	info, err := o.info(ctx)
	if err != nil {
		return nil, err
	}
	return &SetNotesOutput{Session: info}, nil
}

// Export writes the session and every character document as one file
func (o *Orchestrator) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	listed, err := o.characterRepo.List(ctx, characterrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	o.mu.RLock()
	file := &fileSession{
		SessionName: o.name,
		Created:     o.createdAt.Format(time.RFC3339Nano),
		GMNotes:     o.notes,
		Characters:  make(map[string]json.RawMessage, len(listed.Records)),
		Combat:      cloneCombat(o.combat),
	}
	o.mu.RUnlock()

	for _, record := range listed.Records {
		file.Characters[record.ID] = record.Document
	}

	data, err := json.MarshalIndent(envelope{
		Version:  ExportVersion,
		Exported: o.clock.Now().UTC().Format(time.RFC3339Nano),
		Session:  file,
	}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session")
	}

	slog.InfoContext(ctx, "session exported",
		"name", file.SessionName,
		"characters", len(file.Characters))

	return &ExportOutput{
		Data:     data,
		Filename: exportFilename(file.SessionName),
	}, nil
}

// Import replaces the session and all characters with a session file. Every
// character document is checked before anything is replaced. Player tokens
// and the GM token are reissued.
func (o *Orchestrator) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var file envelope
	dec := json.NewDecoder(bytes.NewReader(input.Data))
	if err := dec.Decode(&file); err != nil {
		return nil, errors.InvalidArgumentf("session file is not valid JSON: %v", err)
	}
	if file.Session == nil {
		return nil, errors.InvalidArgument("session file has no session")
	}

	records, err := o.importRecords(file.Session.Characters)
	if err != nil {
		return nil, err
	}

	if _, err := o.characterRepo.DeleteAll(ctx, characterrepo.DeleteAllInput{}); err != nil {
		return nil, errors.Wrap(err, "failed to clear characters")
	}
	for _, record := range records {
		if _, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Record: record}); err != nil {
			return nil, errors.Wrapf(err, "failed to import character %s", record.ID)
		}
	}

	o.mu.Lock()
	o.id = o.sessionIDs.Generate()
	o.name = strings.TrimSpace(file.Session.SessionName)
	if o.name == "" {
		o.name = o.initialName
	}
	o.notes = file.Session.GMNotes
	o.createdAt = parseCreated(file.Session.Created, o.clock.Now().UTC())
	o.combat = Combat{TurnOrder: []string{}}
	if file.Session.Combat != nil {
		o.combat = *cloneCombat(*file.Session.Combat)
	}
	o.gmTokenID = o.tokenIDs.Generate()
	gmTokenID := o.gmTokenID
	o.mu.Unlock()

	slog.InfoContext(ctx, "session imported",
		"version", file.Version,
		"characters", len(records))

	info, err := o.info(ctx)
	if err != nil {
		return nil, err
	}
	return &ImportOutput{
		Session:   info,
		Imported:  len(records),
		GMTokenID: gmTokenID,
	}, nil
}

func (o *Orchestrator) importRecords(docs map[string]json.RawMessage) ([]*characterrepo.Record, error) {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	vb := errors.NewValidationBuilder()
	records := make([]*characterrepo.Record, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			vb.InvalidField("characters", "character id cannot be empty")
			continue
		}
		ch, err := o.converter.Unmarshal(docs[id])
		if err != nil {
			vb.InvalidField("characters."+id, errors.GetMessage(err))
			continue
		}
		ch.ID = id
		doc, err := o.converter.Marshal(ch)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode character %s", id)
		}
		records = append(records, &characterrepo.Record{
			ID:            id,
			PlayerTokenID: o.tokenIDs.Generate(),
			Name:          ch.Name,
			Document:      doc,
		})
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	return records, nil
}

// Reset deletes every character and starts a fresh session
func (o *Orchestrator) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	deleted, err := o.characterRepo.DeleteAll(ctx, characterrepo.DeleteAllInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear characters")
	}

	o.mu.Lock()
	o.resetLocked()
	gmTokenID := o.gmTokenID
	o.mu.Unlock()

	slog.InfoContext(ctx, "session reset", "characters_deleted", deleted.Deleted)

	info, err := o.info(ctx)
	if err != nil {
		return nil, err
	}
	return &ResetOutput{
		Session:   info,
		Deleted:   deleted.Deleted,
		GMTokenID: gmTokenID,
	}, nil
}

func (o *Orchestrator) info(ctx context.Context) (Info, error) {
	listed, err := o.characterRepo.List(ctx, characterrepo.ListInput{})
	if err != nil {
		return Info{}, errors.Wrap(err, "failed to count characters")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	return Info{
		ID:             o.id,
		Name:           o.name,
		Notes:          o.notes,
		CreatedAt:      o.createdAt,
		Combat:         *cloneCombat(o.combat),
		CharacterCount: len(listed.Records),
	}, nil
}

func cloneCombat(c Combat) *Combat {
	c.TurnOrder = append([]string{}, c.TurnOrder...)
	return &c
}

func parseCreated(value string, fallback time.Time) time.Time {
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return fallback
}

func exportFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		slug = "session"
	}
	return fmt.Sprintf("mausritter_%s.json", slug)
}
