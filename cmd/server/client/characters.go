package client

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1"
)

var listCharactersCmd = &cobra.Command{
	Use:   "list",
	Short: "List characters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodListCharacters, nil)
	},
}

var createCharacterCmd = &cobra.Command{
	Use:   "create [document.json]",
	Short: "Create a character, optionally from a saved document (GM)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := map[string]any{}
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var doc map[string]any
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("%s is not a JSON object: %w", args[0], err)
			}
			req["document"] = doc
		}
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodCreateCharacter, req)
	},
}

var getCharacterCmd = &cobra.Command{
	Use:   "get [character-id]",
	Short: "Show one character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodGetCharacter,
			map[string]any{"character_id": args[0]})
	},
}

var deleteCharacterCmd = &cobra.Command{
	Use:   "delete [character-id]",
	Short: "Delete a character (GM)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodDeleteCharacter,
			map[string]any{"character_id": args[0]})
	},
}

var joinCmd = &cobra.Command{
	Use:   "join [character-id]",
	Short: "Claim a character and receive its player token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodJoinCharacter,
			map[string]any{"character_id": args[0]})
	},
}

var proposeCmd = &cobra.Command{
	Use:   "propose [character-id]",
	Short: "Roll a new candidate for a character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodProposeCharacter,
			map[string]any{"character_id": args[0]})
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept [character-id] [proposal-id]",
	Short: "Accept the pending proposal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodAcceptProposal,
			map[string]any{"character_id": args[0], "proposal_id": args[1]})
	},
}

var placeCmd = &cobra.Command{
	Use:   "place [character-id] [slot-id] [item]",
	Short: "Place a catalog item in a slot",
	Example: `  place char_1 main_paw "Spear (Heavy, d10)"
  place char_1 pack_1 Torches`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inventoryAction(cmd, args[0], map[string]any{
			"kind":    "place",
			"slot_id": args[1],
			"item":    args[2],
		})
	},
}

var clearSlotCmd = &cobra.Command{
	Use:   "clear [character-id] [slot-id]",
	Short: "Empty a slot and its pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inventoryAction(cmd, args[0], map[string]any{
			"kind":    "clear",
			"slot_id": args[1],
		})
	},
}

var hirelingID string

func init() {
	for _, c := range []*cobra.Command{placeCmd, clearSlotCmd} {
		c.Flags().StringVar(&hirelingID, "hireling", "", "edit this hireling's inventory instead")
	}
}

func inventoryAction(cmd *cobra.Command, characterID string, action map[string]any) error {
	req := map[string]any{
		"character_id": characterID,
		"action":       action,
	}
	if hirelingID != "" {
		req["hireling_id"] = hirelingID
	}
	return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodUpdateInventory, req)
}

func atoi(s, name string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, s)
	}
	return n, nil
}
