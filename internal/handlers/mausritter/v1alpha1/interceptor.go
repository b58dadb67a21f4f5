package v1alpha1

import (
	"context"
	"log/slog"

	grpc_auth "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/metadata"

	"github.com/KirkDiggler/mausritter-api/internal/auth"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/services/character"
)

// AuthenticatorConfig holds dependencies for the authenticator
type AuthenticatorConfig struct {
	Tokens           *auth.Tokens
	SessionService   SessionService
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *AuthenticatorConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Tokens == nil {
		vb.RequiredField("Tokens")
	}
	if c.SessionService == nil {
		vb.RequiredField("SessionService")
	}
	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	return vb.Build()
}

// Authenticator turns the bearer token of a request into a principal. A
// request without a token is anonymous; a bad, expired or revoked token is
// rejected outright.
type Authenticator struct {
	tokens     *auth.Tokens
	session    SessionService
	characters character.Service
}

// NewAuthenticator creates an authenticator
func NewAuthenticator(cfg *AuthenticatorConfig) (*Authenticator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Authenticator{
		tokens:     cfg.Tokens,
		session:    cfg.SessionService,
		characters: cfg.CharacterService,
	}, nil
}

// AuthFunc implements grpc_auth.AuthFunc
func (a *Authenticator) AuthFunc(ctx context.Context) (context.Context, error) {
	if len(metadata.ValueFromIncomingContext(ctx, "authorization")) == 0 {
		return ctx, nil
	}

	raw, err := grpc_auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, err
	}

	p, err := a.Authenticate(ctx, raw)
	if err != nil {
		slog.DebugContext(ctx, "rejected token", "error", err)
		return nil, errors.ToGRPCError(err)
	}
	return auth.WithPrincipal(ctx, p), nil
}

// Authenticate verifies a raw token and checks it was not revoked by a
// session reset or import, or by deleting the character
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (*auth.Principal, error) {
	p, err := a.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	if p.IsGM() {
		if !a.session.IsCurrentGMToken(p.TokenID) {
			return nil, errors.Unauthenticated("GM token was replaced")
		}
		return p, nil
	}

	out, err := a.characters.GetCharacter(ctx, &character.GetCharacterInput{CharacterID: p.CharacterID})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthenticated("character of this token no longer exists")
		}
		return nil, errors.Wrap(err, "failed to check player token")
	}
	if out.PlayerTokenID != p.TokenID {
		return nil, errors.Unauthenticated("player token was replaced")
	}
	return p, nil
}
