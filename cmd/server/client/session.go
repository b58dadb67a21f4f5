package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the game session (GM)",
}

var sessionInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodGetSession, nil)
	},
}

var sessionRenameCmd = &cobra.Command{
	Use:   "rename [name]",
	Short: "Rename the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodRenameSession,
			map[string]any{"name": args[0]})
	},
}

var sessionExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Save the session file; without a file the server's suggested name is used",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodExportSession, nil)
		if err != nil {
			return err
		}

		path, _ := resp["filename"].(string)
		if len(args) == 1 {
			path = args[0]
		}
		data, err := json.MarshalIndent(resp["session_file"], "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode session file: %w", err)
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Session saved to %s\n", path)
		return nil
	},
}

var sessionImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the session with a session file. Prints the new GM token.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		var file map[string]any
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("%s is not a session file: %w", args[0], err)
		}
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodImportSession,
			map[string]any{"session_file": file})
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every character and start a new session. Prints the new GM token.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodResetSession, nil)
	},
}

func init() {
	sessionCmd.AddCommand(sessionInfoCmd)
	sessionCmd.AddCommand(sessionRenameCmd)
	sessionCmd.AddCommand(sessionExportCmd)
	sessionCmd.AddCommand(sessionImportCmd)
	sessionCmd.AddCommand(sessionResetCmd)
}
