package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-mode statistics",
	Long: `Show runs played, total, best and average score and the longest snake,
per difficulty mode and overall.`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	exitOnError("opening scores database", err)
	defer store.Close()

	byMode, err := store.StatsByMode()
	if err != nil {
		store.Close()
		exitOnError("retrieving stats", err)
	}
	total, err := store.Stats("")
	if err != nil {
		store.Close()
		exitOnError("retrieving stats", err)
	}

	if total.Sessions == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	modes := make([]string, 0, len(byMode))
	for mode := range byMode {
		modes = append(modes, mode)
	}
	slices.Sort(modes)

	fmt.Printf("  %-7s  %-5s  %-7s  %-5s  %-7s  %-7s  %s\n", "Mode", "Runs", "Total", "Best", "Average", "Longest", "Last played")
	fmt.Printf("  %-7s  %-5s  %-7s  %-5s  %-7s  %-7s  %s\n", "----", "----", "-----", "----", "-------", "-------", "-----------")
	for _, mode := range modes {
		printStats(mode, byMode[mode])
	}
	fmt.Println()
	printStats("all", total)
}

func printStats(label string, st *storage.Stats) {
	last := "-"
	if !st.LastPlayed.IsZero() {
		last = st.LastPlayed.Format("2006-01-02 15:04")
	}
	fmt.Printf("  %-7s  %-5d  %-7d  %-5d  %-7.1f  %-7d  %s\n",
		label, st.Sessions, st.TotalScore, st.BestScore, st.AverageScore, st.LongestSnake, last)
}
