package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/feed"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game straight away",
	Long: `Start a game without going through the menu. Esc returns to the menu.

Controls:
  Arrows/WASD/hjkl - Steer
  Space/Enter      - Start, pause, resume; after game over, back to the start screen
  P                - Pause
  R                - Restart
  Esc/B            - Menu
  Q/Ctrl+C         - Quit
  Mouse            - Click the on-screen buttons or swipe on the board

Difficulty options:
  easy   - 250ms start, 4ms faster per food, floor 150ms
  normal - 200ms start, 5ms faster per food, floor 100ms
  hard   - 150ms start, 5ms faster per food, floor 60ms
  fixed  - No speed-up

Examples:
  snake play
  snake play --difficulty hard
  snake play --feed :8090            # Stream game events over a websocket
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	runInteractive(true)
}

// startFeed starts the event feed when --feed is set. The returned function
// stops it.
func startFeed(logger *log.Logger) (*feed.Hub, func()) {
	if flagFeedAddr == "" {
		return nil, func() {}
	}

	cfg := feed.DefaultHubConfig()
	cfg.Logger = logger
	hub := feed.NewHub(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := hub.ListenAndServe(ctx, flagFeedAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("feed server stopped", "error", err)
		}
	}()

	return hub, func() {
		cancel()
		<-done
	}
}
