package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mausritter-api/internal/auth"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/clock"
)

var testSecret = []byte(strings.Repeat("k", auth.MinSecretLength))

func newTokens(t *testing.T, clk clock.Clock) *auth.Tokens {
	t.Helper()
	tokens, err := auth.New(&auth.Config{Secret: testSecret, TTL: time.Hour, Clock: clk})
	require.NoError(t, err)
	return tokens
}

func TestIssueAndVerify(t *testing.T) {
	clk := &clock.Fixed{T: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)}
	tokens := newTokens(t, clk)

	gm, err := tokens.IssueGM("token_1")
	require.NoError(t, err)

	p, err := tokens.Verify(gm)
	require.NoError(t, err)
	assert.True(t, p.IsGM())
	assert.Equal(t, "token_1", p.TokenID)
	assert.Equal(t, clk.T.Add(time.Hour), p.ExpiresAt)
	assert.True(t, p.Owns("anything"))

	player, err := tokens.IssuePlayer("char_3", "token_2")
	require.NoError(t, err)

	p, err = tokens.Verify("  " + player + "\n")
	require.NoError(t, err)
	assert.False(t, p.IsGM())
	assert.Equal(t, auth.RolePlayer, p.Role)
	assert.Equal(t, "char_3", p.CharacterID)
	assert.True(t, p.Owns("char_3"))
	assert.False(t, p.Owns("char_4"))
}

func TestVerifyRejects(t *testing.T) {
	clk := &clock.Fixed{T: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)}
	tokens := newTokens(t, clk)

	gm, err := tokens.IssueGM("token_1")
	require.NoError(t, err)

	other, err := auth.New(&auth.Config{Secret: []byte(strings.Repeat("x", 40)), TTL: time.Hour, Clock: clk})
	require.NoError(t, err)
	forged, err := other.IssueGM("token_1")
	require.NoError(t, err)

	otherIssuer, err := auth.New(&auth.Config{Secret: testSecret, TTL: time.Hour, Clock: clk, Issuer: "elsewhere"})
	require.NoError(t, err)
	foreign, err := otherIssuer.IssueGM("token_1")
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "wrong secret", token: forged},
		{name: "wrong issuer", token: foreign},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tokens.Verify(tc.token)
			require.Error(t, err)
			assert.True(t, errors.IsUnauthenticated(err))
		})
	}

	t.Run("expired", func(t *testing.T) {
		clk.Advance(2 * time.Hour)
		_, err := tokens.Verify(gm)
		require.Error(t, err)
		assert.True(t, errors.IsUnauthenticated(err))
		assert.Contains(t, err.Error(), "expired")
	})
}

func TestIssueValidation(t *testing.T) {
	tokens := newTokens(t, nil)

	_, err := tokens.IssueGM("")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = tokens.IssuePlayer("", "token_1")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewValidation(t *testing.T) {
	_, err := auth.New(&auth.Config{Secret: []byte("short"), TTL: time.Hour})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = auth.New(&auth.Config{Secret: testSecret})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = auth.New(nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRandomSecret(t *testing.T) {
	a, err := auth.RandomSecret()
	require.NoError(t, err)
	b, err := auth.RandomSecret()
	require.NoError(t, err)

	assert.Len(t, a, auth.MinSecretLength)
	assert.NotEqual(t, a, b)
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, auth.FromContext(ctx))
	assert.False(t, auth.FromContext(ctx).Owns("char_1"))

	p := &auth.Principal{Role: auth.RolePlayer, CharacterID: "char_1", TokenID: "token_9"}
	assert.Same(t, p, auth.FromContext(auth.WithPrincipal(ctx, p)))
}
