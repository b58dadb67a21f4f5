package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1"
)

var chargeCmd = &cobra.Command{
	Use:   "charge [character-id] [slot-id] [marker]",
	Short: "Click a usage marker (1-3) on a slot",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		marker, err := atoi(args[2], "marker")
		if err != nil {
			return err
		}
		return inventoryAction(cmd, args[0], map[string]any{
			"kind":    "toggle_charge",
			"slot_id": args[1],
			"marker":  marker - 1,
		})
	},
}

var gritCmd = &cobra.Command{
	Use:   "grit",
	Short: "Ignore conditions with grit",
}

var ignoreCmd = &cobra.Command{
	Use:   "ignore [character-id] [condition]",
	Short: "Spend grit to ignore a condition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodIgnoreCondition,
			map[string]any{"character_id": args[0], "condition": args[1]})
	},
}

var unignoreCmd = &cobra.Command{
	Use:   "unignore [character-id] [index]",
	Short: "Stop ignoring the condition at index",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := atoi(args[1], "index")
		if err != nil {
			return err
		}
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodUnignoreCondition,
			map[string]any{"character_id": args[0], "index": index})
	},
}

var hirelingCmd = &cobra.Command{
	Use:   "hireling",
	Short: "Hire and dismiss hirelings",
}

var hireCmd = &cobra.Command{
	Use:     "add [character-id] [type]",
	Short:   "Roll and attach a hireling",
	Example: `  hireling add char_1 "Torchbearer"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodAddHireling,
			map[string]any{"character_id": args[0], "type": args[1]})
	},
}

var dismissCmd = &cobra.Command{
	Use:   "remove [character-id] [hireling-id]",
	Short: "Dismiss a hireling",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodRemoveHireling,
			map[string]any{"character_id": args[0], "hireling_id": args[1]})
	},
}

func init() {
	chargeCmd.Flags().StringVar(&hirelingID, "hireling", "", "edit this hireling's inventory instead")

	gritCmd.AddCommand(ignoreCmd)
	gritCmd.AddCommand(unignoreCmd)
	hirelingCmd.AddCommand(hireCmd)
	hirelingCmd.AddCommand(dismissCmd)
}
