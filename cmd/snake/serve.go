package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/neon-snake/internal/feed"
	"github.com/vovakirdan/neon-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the menu. Scores are stored
per-server (all users share the same leaderboard) under their SSH user name.
With --feed, every session's events are also streamed over a websocket.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23234 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --feed :8090              # Also serve ws://host:8090/feed
  snake serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, cleanup := newLogger(false)
	defer cleanup()

	cfg := loadConfig()
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	var hub *feed.Hub
	if flagFeedAddr != "" {
		hubCfg := feed.DefaultHubConfig()
		hubCfg.Logger = logger
		hub = feed.NewHub(hubCfg)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, tui.Launcher{
		Config: cfg,
		Store:  store,
		Feed:   hub,
		Logger: logger,
		Seed:   flagSeed,
	})
	exitOnError("creating server", err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting snake SSH server on %s\n", flagSSHAddr)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(flagSSHAddr))
	if hub != nil {
		fmt.Printf("Event feed on ws://%s/feed\n", flagFeedAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	if hub != nil {
		g.Go(func() error {
			return hub.ListenAndServe(gctx, flagFeedAddr)
		})
	}

	exitOnError("serving", g.Wait())
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
