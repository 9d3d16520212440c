package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top high scores, for one difficulty mode or all of them.

Examples:
  snake scores
  snake scores hard
  snake scores --limit 25
  snake scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scores instead of showing them")
}

func runScores(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		preset, err := config.ParseDifficulty(args[0])
		exitOnError("parsing mode", err)
		mode = string(preset)
	}

	store, err := storage.Open(flagDBPath)
	exitOnError("opening scores database", err)
	defer store.Close()

	title := "all modes"
	if mode != "" {
		title = mode
	}

	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			store.Close()
			exitOnError("clearing scores", err)
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		store.Close()
		exitOnError("retrieving scores", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'snake play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-12s  %s\n", "Rank", "Score", "Length", "Mode", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-12s  %s\n", "----", "-----", "------", "----", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-6d  %-7s  %-12s  %s\n", i+1, entry.Score, entry.Length, entry.Mode, player, dateStr)
	}

	// Show high score
	fmt.Println()
	if highScore, err := store.HighScore(mode); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	} else {
		fmt.Fprintf(os.Stderr, "Error retrieving best score: %v\n", err)
	}
}
