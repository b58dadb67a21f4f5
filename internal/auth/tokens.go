// Package auth issues and verifies the bearer tokens that identify the GM
// and the players of a session.
package auth

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
)

// Role is who a token speaks for
type Role string

const (
	// RoleGM may do anything in the session
	RoleGM Role = "gm"
	// RolePlayer may only touch one character
	RolePlayer Role = "player"
)

// DefaultIssuer is the iss claim written when Config.Issuer is empty
const DefaultIssuer = "mausritter-api"

// MinSecretLength is the shortest HMAC secret accepted
const MinSecretLength = 32

// Principal is a verified token
type Principal struct {
	Role        Role
	CharacterID string
	TokenID     string
	ExpiresAt   time.Time
}

// IsGM reports whether the principal is the GM
func (p *Principal) IsGM() bool {
	return p != nil && p.Role == RoleGM
}

// Owns reports whether the principal may act on the character
func (p *Principal) Owns(characterID string) bool {
	if p == nil {
		return false
	}
	return p.IsGM() || (p.Role == RolePlayer && p.CharacterID != "" && p.CharacterID == characterID)
}

type claims struct {
	jwt.RegisteredClaims
	Role        Role   `json:"role"`
	CharacterID string `json:"character_id,omitempty"`
}

// Config holds the signing configuration
type Config struct {
	Secret []byte
	TTL    time.Duration

	// Optional
	Issuer string
	Clock  clock.Clock
}

// Validate ensures the secret and lifetime are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if len(c.Secret) < MinSecretLength {
		vb.InvalidField("Secret", "must be at least 32 bytes")
	}
	if c.TTL <= 0 {
		vb.InvalidField("TTL", "must be positive")
	}
	return vb.Build()
}

// Tokens signs and verifies HS256 bearer tokens
type Tokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
	clock  clock.Clock
}

// New creates a token signer
func New(cfg *Config) (*Tokens, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	issuer := cfg.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Tokens{
		secret: append([]byte(nil), cfg.Secret...),
		ttl:    cfg.TTL,
		issuer: issuer,
		clock:  clk,
	}, nil
}

// RandomSecret returns a fresh secret for servers started without one.
// Tokens signed with it stop verifying when the process exits.
func RandomSecret() ([]byte, error) {
	secret := make([]byte, MinSecretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Wrap(err, "failed to read random secret")
	}
	return secret, nil
}

// IssueGM signs a GM token carrying jti
func (t *Tokens) IssueGM(jti string) (string, error) {
	return t.issue(jti, RoleGM, "")
}

// IssuePlayer signs a player token for one character
func (t *Tokens) IssuePlayer(characterID, jti string) (string, error) {
	if characterID == "" {
		return "", errors.InvalidArgument("character id is required for a player token")
	}
	return t.issue(jti, RolePlayer, characterID)
}

func (t *Tokens) issue(jti string, role Role, characterID string) (string, error) {
	if jti == "" {
		return "", errors.InvalidArgument("token id is required")
	}

	now := t.clock.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Role:        role,
		CharacterID: characterID,
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify checks the signature, issuer and expiry of a token. It does not
// know whether the token was revoked; callers compare TokenID with the
// currently issued id.
func (t *Tokens) Verify(raw string) (*Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.Unauthenticated("token is required")
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}

	if parsed.ID == "" {
		return nil, errors.Unauthenticated("token id is missing")
	}

	p := &Principal{
		Role:        parsed.Role,
		CharacterID: parsed.CharacterID,
		TokenID:     parsed.ID,
		ExpiresAt:   parsed.ExpiresAt.Time.UTC(),
	}
	switch p.Role {
	case RoleGM:
	case RolePlayer:
		if p.CharacterID == "" {
			return nil, errors.Unauthenticated("player token has no character")
		}
	default:
		return nil, errors.Unauthenticatedf("unknown token role %q", p.Role)
	}
	return p, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Unauthenticated("token is expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errors.Unauthenticated("token signature is invalid")
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return errors.Unauthenticated("token issuer mismatch")
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Unauthenticated("token is malformed")
	default:
		return errors.WrapWithCode(err, errors.CodeUnauthenticated, "token is invalid")
	}
}
