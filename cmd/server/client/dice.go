package client

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mausritter-api/internal/handlers/mausritter/v1alpha1"
)

var (
	entityID    string
	description string
	saveMode    string
)

var rollCmd = &cobra.Command{
	Use:   "roll [notation]",
	Short: "Roll dice, for example 2d6+1",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := call(v1alpha1.MethodRollDice, map[string]any{
			"entity_id":   entityID,
			"notation":    args[0],
			"description": description,
		})
		if err != nil {
			return err
		}
		printRoll(cmd, resp)
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [attribute] [value]",
	Short: "Roll a d20 save against an attribute",
	Example: `  save str 9
  save wil 11 --mode advantage`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := atoi(args[1], "value")
		if err != nil {
			return err
		}
		resp, err := call(v1alpha1.MethodRollSave, map[string]any{
			"entity_id": entityID,
			"attribute": args[0],
			"value":     value,
			"mode":      saveMode,
		})
		if err != nil {
			return err
		}
		printRoll(cmd, resp)
		return nil
	},
}

var rollLogCmd = &cobra.Command{
	Use:   "roll-log",
	Short: "Show recent rolls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return callAndPrint(cmd.OutOrStdout(), v1alpha1.MethodGetRollLog,
			map[string]any{"entity_id": entityID})
	},
}

func init() {
	for _, c := range []*cobra.Command{rollCmd, saveCmd, rollLogCmd} {
		c.Flags().StringVar(&entityID, "entity", "", "character id to roll for; players always roll for their own")
	}
	rollCmd.Flags().StringVar(&description, "description", "", "what the roll is for")
	saveCmd.Flags().StringVar(&saveMode, "mode", "", "advantage or disadvantage")
}

func printRoll(cmd *cobra.Command, resp map[string]any) {
	roll, _ := resp["roll"].(map[string]any)
	w := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(w, "🎲 %v\n", roll["notation"])
	if d, ok := roll["dice"].([]any); ok {
		parts := make([]string, 0, len(d))
		for _, v := range d {
			parts = append(parts, fmt.Sprint(v))
		}
		_, _ = fmt.Fprintf(w, "  Dice: %s\n", strings.Join(parts, ", "))
	}
	_, _ = fmt.Fprintf(w, "  Total: %v\n", roll["total"])
	if target, ok := roll["target"]; ok {
		outcome := "failure"
		if success, _ := roll["success"].(bool); success {
			outcome = "success"
		}
		_, _ = fmt.Fprintf(w, "  Target: %v (%s)\n", target, outcome)
	}
	if desc, ok := roll["description"].(string); ok && desc != "" {
		_, _ = fmt.Fprintf(w, "  Description: %s\n", desc)
	}
}
