// snake is a terminal snake game with an SSH server and a live event feed.
//
// Usage:
//
//	snake                    - Start menu
//	snake play               - Start a game straight away
//	snake serve              - Start SSH server for remote play
//	snake scores [mode]      - Show high scores
//	snake board              - Browse high scores interactively
//	snake stats              - Show per-mode statistics
//	snake simulate           - Run a scripted game without a terminal
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.snake/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
//	--feed <addr>         - Serve the websocket event feed
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/platform/tui"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagFeedAddr   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Neon Snake - the classic grid game in your terminal",
	Long: `Neon Snake is a terminal snake game. Eat food to grow and speed up;
hitting a wall or your own tail ends the run.

Available commands:
  play     - Start a game straight away
  serve    - Start SSH server for remote play
  scores   - Print high scores
  board    - Browse high scores interactively
  stats    - Per-mode statistics
  simulate - Scripted run without a terminal

Examples:
  snake
  snake play --difficulty hard
  snake serve --ssh :2222 --feed :8090
  snake scores normal
  snake simulate --moves rrrddd --seed 42`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagFeedAddr, "feed", "", "Serve the websocket event feed on this address (host:port)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simulateCmd)
}

// exitOnError prints the error the way every command does and exits.
func exitOnError(what string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}

// newLogger builds the process logger. Interactive commands own the terminal,
// so without --log-file they log nowhere.
func newLogger(interactive bool) (*log.Logger, func()) {
	var (
		out     io.Writer = os.Stderr
		cleanup           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		exitOnError("opening log file", err)
		out = f
		cleanup = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})

	level, err := log.ParseLevel(flagLogLevel)
	exitOnError("parsing --log-level", err)
	logger.SetLevel(level)

	return logger, cleanup
}

// loadConfig reads the game configuration and applies --difficulty.
func loadConfig() config.SnakeConfig {
	cfg, err := config.LoadSnake(flagConfig)
	exitOnError("loading config", err)

	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		exitOnError("parsing --difficulty", err)
		config.ApplySnakePreset(&cfg, preset)
	}
	return cfg
}

// runtimeConfig sizes the view from the current terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Seed = flagSeed
	return rc
}

// openStore opens the scores database. Interactive play continues without
// it, so failures are only logged.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runMenu(_ *cobra.Command, _ []string) {
	runInteractive(false)
}

func runInteractive(play bool) {
	logger, cleanup := newLogger(true)
	defer cleanup()

	cfg := loadConfig()
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	hub, stopFeed := startFeed(logger)
	defer stopFeed()

	rc := runtimeConfig()
	l := tui.Launcher{
		Config: cfg,
		Store:  store,
		Feed:   hub,
		Logger: logger,
		Player: os.Getenv("USER"),
		Seed:   rc.Seed,
	}

	if err := tui.RunApp(l, rc, play); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
