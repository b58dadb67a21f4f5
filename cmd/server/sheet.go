package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mausritter-api/internal/autosave"
	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/render/sheet"
	"github.com/KirkDiggler/mausritter-api/internal/services/conversion"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet [file]",
	Short: "Edit a character document in the terminal",
	Long: `Open a character document in an interactive sheet. Edits are saved
back to the file shortly after each change. A missing file starts with a
freshly rolled mouse; an unreadable one starts blank.`,
	Args: cobra.ExactArgs(1),
	RunE: runSheet,
}

func runSheet(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat := catalog.Default()
	converter, err := conversion.New(&conversion.Config{Catalog: cat})
	if err != nil {
		return err
	}

	var ch *mausritter.Character
	var loadErr error
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if ch, err = rollCharacter(cmd, converter); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", path, err)
	default:
		ch, loadErr = converter.LoadOrDefault(data)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer screen.Fini()

	bus := events.NewBus()
	app, err := sheet.New(&sheet.Config{
		Screen:    screen,
		Character: ch,
		Catalog:   cat,
		Bus:       bus,
	})
	if err != nil {
		return err
	}
	if loadErr != nil {
		app.SetStatus("could not read "+path+", starting a blank mouse", true)
	}

	saver, err := autosave.New(&autosave.Config{
		Bus: bus,
		Snapshot: func(context.Context) ([]byte, error) {
			var out []byte
			var err error
			app.View(func(ch *mausritter.Character) {
				out, err = converter.Marshal(ch)
			})
			return out, err
		},
		Write: func(_ context.Context, data []byte) error {
			return os.WriteFile(path, data, 0o600)
		},
		Delay: cfg.AutosaveDelay,
		OnError: func(err error) {
			app.SetStatus("save failed: "+err.Error(), true)
		},
		OnSaved: func() {
			app.SetStatus("saved "+time.Now().Format(time.Kitchen), false)
		},
	})
	if err != nil {
		return err
	}

	runErr := app.Run(cmd.Context())

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := saver.Close(closeCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to save %s: %w", path, err)
	}
	return runErr
}
