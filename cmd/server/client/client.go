// Package client provides commands that call a running Mausritter API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1"
)

var (
	serverAddr string
	token      string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running Mausritter API",
	Long: `Client commands make real gRPC requests. Pass the GM token printed at
server start, or a player token, with --token or MAUSRITTER_TOKEN.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("MAUSRITTER_TOKEN"), "Bearer token")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(sessionCmd)
	ClientCmd.AddCommand(listCharactersCmd)
	ClientCmd.AddCommand(createCharacterCmd)
	ClientCmd.AddCommand(getCharacterCmd)
	ClientCmd.AddCommand(deleteCharacterCmd)
	ClientCmd.AddCommand(joinCmd)
	ClientCmd.AddCommand(proposeCmd)
	ClientCmd.AddCommand(acceptCmd)
	ClientCmd.AddCommand(placeCmd)
	ClientCmd.AddCommand(clearSlotCmd)
	ClientCmd.AddCommand(chargeCmd)
	ClientCmd.AddCommand(gritCmd)
	ClientCmd.AddCommand(hirelingCmd)
	ClientCmd.AddCommand(rollCmd)
	ClientCmd.AddCommand(saveCmd)
	ClientCmd.AddCommand(rollLogCmd)
}

// call dials the server, invokes method and closes the connection
func call(method string, req any) (map[string]any, error) {
	conn, err := grpc.NewClient(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := v1alpha1.NewClient(conn, token).Call(ctx, method, req)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}
	return resp, nil
}

// callAndPrint calls method and writes the response as indented JSON
func callAndPrint(w io.Writer, method string, req any) error {
	resp, err := call(method, req)
	if err != nil {
		return err
	}
	return printJSON(w, resp)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
