//go:build integration

package client

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1"
)

// TestCharacterLifecycleIntegration needs a running server and its GM token
// in MAUSRITTER_TOKEN.
func TestCharacterLifecycleIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	gmToken := os.Getenv("MAUSRITTER_TOKEN")
	if gmToken == "" {
		t.Skip("MAUSRITTER_TOKEN is not set")
	}

	addr := os.Getenv("GRPC_SERVER_ADDRESS")
	if addr == "" {
		addr = "localhost:50051"
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gm := v1alpha1.NewClient(conn, gmToken)
	created, err := gm.Call(ctx, v1alpha1.MethodCreateCharacter, nil)
	require.NoError(t, err)
	view := created["character"].(map[string]any)
	characterID := view["id"].(string)
	defer func() {
		_, _ = gm.Call(context.Background(), v1alpha1.MethodDeleteCharacter, map[string]any{"character_id": characterID})
	}()

	player := v1alpha1.NewClient(conn, view["player_token"].(string))
	proposed, err := player.Call(ctx, v1alpha1.MethodProposeCharacter, map[string]any{"character_id": characterID})
	require.NoError(t, err)
	proposalID := proposed["proposal"].(map[string]any)["id"].(string)

	accepted, err := player.Call(ctx, v1alpha1.MethodAcceptProposal, map[string]any{
		"character_id": characterID,
		"proposal_id":  proposalID,
	})
	require.NoError(t, err)
	doc := accepted["character"].(map[string]any)["document"].(map[string]any)
	assert.NotEmpty(t, doc["name"])

	anon := v1alpha1.NewClient(conn, "")
	listed, err := anon.Call(ctx, v1alpha1.MethodListCharacters, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, listed["characters"])
}
