package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/feed"
	"github.com/vovakirdan/neon-snake/internal/scheduler"
	"github.com/vovakirdan/neon-snake/internal/session"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

// Launcher builds sessions for one player. Local play and every SSH
// connection get their own Launcher sharing the store and the feed.
type Launcher struct {
	Config config.SnakeConfig
	Store  *storage.Store // Optional; nil disables score history
	Feed   *feed.Hub      // Optional
	Logger *log.Logger
	Player string
	Seed   int64           // Zero means time-based
	Clock  scheduler.Clock // Nil means wall clock
}

// NewSession starts an idle session with the given difficulty applied on top
// of the base configuration.
func (l Launcher) NewSession(preset config.DifficultyPreset) (*session.Session, config.SnakeConfig, error) {
	cfg := l.Config
	if preset == "" {
		preset = cfg.Difficulty
	}
	config.ApplySnakePreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}

	logger := l.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	opts := session.Options{
		Engine:   cfg.Engine(),
		Effects:  cfg.EffectsTuning(),
		CellSize: cfg.Grid.CellSize,
		Seed:     l.Seed,
		Clock:    l.Clock,
		Logger:   logger,
		Mode:     string(cfg.Difficulty),
		Player:   l.Player,
	}
	// A nil *Store must not become a non-nil Recorder.
	if l.Store != nil {
		opts.Recorder = l.Store
	}

	sess, err := session.New(opts)
	if err != nil {
		return nil, cfg, err
	}
	if l.Feed != nil {
		sess.Subscribe(l.Feed.Listener(sess.ID()))
	}

	logger.Debug("session created", "session", sess.ID(), "mode", opts.Mode, "player", l.Player)
	return sess, cfg, nil
}

// Best returns the stored high score for a difficulty, or zero.
func (l Launcher) Best(preset config.DifficultyPreset) int {
	if l.Store == nil {
		return 0
	}
	best, err := l.Store.HighScore(string(preset))
	if err != nil {
		return 0
	}
	return best
}
