package v1alpha1

//go:generate mockgen -destination=mock/mock_session.go -package=v1alpha1mock github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1 SessionService

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/mausritter-api/internal/auth"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/mausritter-api/internal/orchestrators/session"
	"github.com/KirkDiggler/mausritter-api/internal/services/character"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

// SessionService is the game session as the handler uses it
type SessionService interface {
	Info(ctx context.Context, input *session.InfoInput) (*session.InfoOutput, error)
	Rename(ctx context.Context, input *session.RenameInput) (*session.RenameOutput, error)
	SetNotes(ctx context.Context, input *session.SetNotesInput) (*session.SetNotesOutput, error)
	Export(ctx context.Context, input *session.ExportInput) (*session.ExportOutput, error)
	Import(ctx context.Context, input *session.ImportInput) (*session.ImportOutput, error)
	Reset(ctx context.Context, input *session.ResetInput) (*session.ResetOutput, error)
	GMTokenID() string
	IsCurrentGMToken(jti string) bool
}

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
	SessionService   SessionService
	DiceService      dice.Service
	Converter        conversion.CharacterConverter
	Tokens           *auth.Tokens
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if c.SessionService == nil {
		vb.RequiredField("SessionService")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.Converter == nil {
		vb.RequiredField("Converter")
	}
	if c.Tokens == nil {
		vb.RequiredField("Tokens")
	}
	return vb.Build()
}

// Handler implements CharacterServiceServer
type Handler struct {
	characters character.Service
	session    SessionService
	dice       dice.Service
	converter  conversion.CharacterConverter
	tokens     *auth.Tokens
}

var _ CharacterServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characters: cfg.CharacterService,
		session:    cfg.SessionService,
		dice:       cfg.DiceService,
		converter:  cfg.Converter,
		tokens:     cfg.Tokens,
	}, nil
}

// GMToken signs a token for the current GM token id
func (h *Handler) GMToken() (string, error) {
	return h.tokens.IssueGM(h.session.GMTokenID())
}

type sessionView struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	GMNotes        string         `json:"gm_notes"`
	CreatedAt      time.Time      `json:"created_at"`
	CharacterCount int            `json:"character_count"`
	Combat         session.Combat `json:"combat"`
}

func toSessionView(info session.Info) sessionView {
	return sessionView{
		ID:             info.ID,
		Name:           info.Name,
		GMNotes:        info.Notes,
		CreatedAt:      info.CreatedAt,
		CharacterCount: info.CharacterCount,
		Combat:         info.Combat,
	}
}

type sessionResponse struct {
	Session sessionView `json:"session"`
}

// GetSession returns the session name, notes and character count
func (h *Handler) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireGM(ctx); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := Decode(req, &struct{}{}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.session.Info(ctx, &session.InfoInput{})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, sessionResponse{Session: toSessionView(out.Session)})
}

// RenameSession sets the session name
func (h *Handler) RenameSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireGM(ctx); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	var in struct {
		Name string `json:"name"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.session.Rename(ctx, &session.RenameInput{Name: in.Name})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, sessionResponse{Session: toSessionView(out.Session)})
}

// UpdateGMNotes replaces the GM notes
func (h *Handler) UpdateGMNotes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireGM(ctx); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	var in struct {
		Notes string `json:"notes"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.session.SetNotes(ctx, &session.SetNotesInput{Notes: in.Notes})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, sessionResponse{Session: toSessionView(out.Session)})
}

// ExportSession returns the whole session as a session file
func (h *Handler) ExportSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireGM(ctx); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := Decode(req, &struct{}{}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.session.Export(ctx, &session.ExportInput{})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, struct {
		Filename    string          `json:"filename"`
		SessionFile json.RawMessage `json:"session_file"`
	}{
		Filename:    out.Filename,
		SessionFile: out.Data,
	})
}

type rotatedResponse struct {
	Session  sessionView `json:"session"`
	GMToken  string      `json:"gm_token"`
	Imported int         `json:"imported,omitempty"`
	Deleted  int         `json:"deleted,omitempty"`
}

// ImportSession replaces the session with a session file. The caller's
// token stops working; the response carries the new GM token.
func (h *Handler) ImportSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireGM(ctx); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	var in struct {
		SessionFile json.RawMessage `json:"session_file"`
	}
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if len(in.SessionFile) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_file is required"))
	}

	out, err := h.session.Import(ctx, &session.ImportInput{Data: in.SessionFile})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	token, err := h.tokens.IssueGM(out.GMTokenID)
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, rotatedResponse{
		Session:  toSessionView(out.Session),
		GMToken:  token,
		Imported: out.Imported,
	})
}

// ResetSession deletes every character and starts over with a new GM token
func (h *Handler) ResetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireGM(ctx); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := Decode(req, &struct{}{}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.session.Reset(ctx, &session.ResetInput{})
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	token, err := h.tokens.IssueGM(out.GMTokenID)
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return respond(ctx, rotatedResponse{
		Session: toSessionView(out.Session),
		GMToken: token,
		Deleted: out.Deleted,
	})
}

// requireGM fails unless the caller holds the GM token
func requireGM(ctx context.Context) error {
	p := auth.FromContext(ctx)
	if p == nil {
		return errors.Unauthenticated("a GM token is required")
	}
	if !p.IsGM() {
		return errors.PermissionDenied("only the GM may do this")
	}
	return nil
}

// requireOwner fails unless the caller is the GM or the character's player
func requireOwner(ctx context.Context, characterID string) error {
	p := auth.FromContext(ctx)
	if p == nil {
		return errors.Unauthenticated("a token is required")
	}
	if !p.Owns(characterID) {
		return errors.PermissionDenied("token does not grant access to this character").
			WithMeta("character_id", characterID)
	}
	return nil
}

func respond(ctx context.Context, v any) (*structpb.Struct, error) {
	out, err := Encode(v)
	if err != nil {
		return nil, toGRPC(ctx, err)
	}
	return out, nil
}

// toGRPC logs internal failures before converting err to a status
func toGRPC(ctx context.Context, err error) error {
	switch errors.GetCode(err) {
	case errors.CodeInternal, errors.CodeDataLoss, errors.CodeUnavailable:
		slog.ErrorContext(ctx, "request failed", "error", err)
	}
	return errors.ToGRPCError(err)
}
