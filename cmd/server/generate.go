package main

import (
	"fmt"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/engine"
	"github.com/KirkDiggler/mausritter-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/idgen"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Roll a character and print its document",
	Long: `Roll a complete level one mouse offline and print the character
document. The output can be opened with "sheet" or sent with "client create".`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "write the document to this file")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	converter, err := conversion.New(&conversion.Config{Catalog: catalog.Default()})
	if err != nil {
		return err
	}

	ch, err := rollCharacter(cmd, converter)
	if err != nil {
		return err
	}
	data, err := converter.Marshal(ch)
	if err != nil {
		return err
	}

	if generateOut == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(generateOut, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", generateOut, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s saved to %s\n", ch.Name, generateOut)
	return nil
}

// rollCharacter generates a mouse and accepts it straight away. Stowing
// warnings go to stderr.
func rollCharacter(cmd *cobra.Command, converter conversion.CharacterConverter) (*mausritter.Character, error) {
	adapter, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		DiceRoller: dice.DefaultRoller,
		Tables:     catalog.DefaultTables(),
	})
	if err != nil {
		return nil, err
	}

	ch := mausritter.NewCharacter(idgen.NewUUID("char").Generate())
	generated, err := adapter.GenerateProposal(cmd.Context(), &engine.GenerateProposalInput{CharacterID: ch.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to roll character: %w", err)
	}
	for _, warning := range converter.ApplyProposal(ch, generated.Proposal, idgen.NewPrefixed("hireling")) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
	return ch, nil
}
