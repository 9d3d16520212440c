package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/platform/tui"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse high scores interactively",
	Long: `Open the scoreboard with one tab per difficulty mode.

Keys: Tab/Left/Right switch mode, Up/Down scroll, Esc or Q leave.`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	exitOnError("opening scores database", err)
	defer store.Close()

	rc := runtimeConfig()
	if _, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH); err != nil {
		store.Close()
		exitOnError("running scoreboard", err)
	}
}
