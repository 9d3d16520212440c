package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/scheduler"
)

func newTestApp(t *testing.T, play bool) AppModel {
	t.Helper()
	m := NewAppModel(testLauncher(scheduler.NewManualClock()), core.RuntimeConfig{ScreenW: 80, ScreenH: 25}, play)
	if m.Err() != nil {
		t.Fatalf("NewAppModel() error = %v", m.Err())
	}
	t.Cleanup(m.Close)
	return m
}

func send(t *testing.T, m AppModel, msgs ...tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		next, c := m.Update(msg)
		app, ok := next.(AppModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m, cmd = app, c
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestAppStartsOnMenu(t *testing.T) {
	m := newTestApp(t, false)
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.difficulty != config.DifficultyNormal {
		t.Errorf("difficulty = %q, want normal", m.difficulty)
	}
}

func TestAppPlayAndBack(t *testing.T) {
	m := newTestApp(t, false)

	m, cmd := send(t, m, keyEnter)
	if m.screen != screenGame || m.game == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if cmd == nil {
		t.Error("starting a game should wait for frames")
	}
	sess := m.game.sess

	m, _ = send(t, m, keyEsc)
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	select {
	case <-sess.Done():
	default:
		t.Error("leaving the game should close its session")
	}
}

func TestAppPlayFlagSkipsMenu(t *testing.T) {
	m := newTestApp(t, true)
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if m.Init() == nil {
		t.Error("Init should wait for frames")
	}
}

func TestAppDifficultyCycle(t *testing.T) {
	m := newTestApp(t, false)

	m, _ = send(t, m, keyDown, keyRight)
	if m.difficulty != config.DifficultyHard {
		t.Fatalf("difficulty = %q, want hard", m.difficulty)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, keyEnter)
	if m.game == nil || m.game.cfg.Difficulty != config.DifficultyHard {
		t.Error("game should start on hard")
	}
}

func TestAppDifficultyPicker(t *testing.T) {
	m := newTestApp(t, false)

	m, _ = send(t, m, keyDown, keyEnter)
	if m.screen != screenDifficulty {
		t.Fatalf("screen = %v, want difficulty", m.screen)
	}

	// Cursor starts on normal; one down is hard.
	m, _ = send(t, m, keyDown, keyEnter)
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.difficulty != config.DifficultyHard {
		t.Errorf("difficulty = %q, want hard", m.difficulty)
	}
	if m.menu.Difficulty() != config.DifficultyHard {
		t.Errorf("menu difficulty = %q, want hard", m.menu.Difficulty())
	}
}

func TestAppScoreboardAndBack(t *testing.T) {
	m := newTestApp(t, false)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, want scores", m.screen)
	}
	if m.View() == "" {
		t.Error("scoreboard should render")
	}

	m, _ = send(t, m, keyEsc)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestAppQuit(t *testing.T) {
	m := newTestApp(t, false)

	m, cmd := send(t, m, keyQuit)
	if !m.quitting || cmd == nil {
		t.Error("q on the menu should quit")
	}
	if m.View() != "" {
		t.Error("quitting app renders nothing")
	}
}

func TestAppCloseStopsSessions(t *testing.T) {
	m := newTestApp(t, true)
	sess := m.game.sess

	m.Close()
	select {
	case <-sess.Done():
	default:
		t.Error("Close should stop the running session")
	}
}

func TestAppStaleFrameOnMenu(t *testing.T) {
	m := newTestApp(t, true)
	sess := m.game.sess
	m, _ = send(t, m, keyEsc)

	m, cmd := send(t, m, FrameMsg{SessionID: sess.ID(), Frame: sess.Frame()})
	if cmd != nil || m.screen != screenMenu {
		t.Error("a late frame should be dropped on the menu")
	}
}
