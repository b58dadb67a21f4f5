// Package main is the entry point for the Mausritter API
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mausritter-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "mausritter-api",
	Short: "Mausritter character sheets over gRPC",
	Long: `Mausritter API generates Mausritter characters, keeps their inventories
and shares them between a GM and the players at the table.`,
	SilenceUsage: true,
}

var envFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "read configuration from this file instead of .env")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
