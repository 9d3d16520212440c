package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/session"
	"github.com/vovakirdan/neon-snake/internal/snake"
)

// Model is the Bubble Tea model for one snake session. The session ticks on
// its own; the model forwards input and redraws whatever frame arrives last.
type Model struct {
	sess     *session.Session
	cfg      config.SnakeConfig
	screen   *core.Screen
	layout   Layout
	frame    session.Frame
	hud      HUD
	keys     *KeyMapper
	help     help.Model
	drag     *pointer
	quitting bool
	back     bool
}

type pointer struct{ x, y int }

// NewModel creates a game model over an idle session.
func NewModel(sess *session.Session, cfg config.SnakeConfig, best int, rc core.RuntimeConfig) Model {
	engine := cfg.Engine()
	h := help.New()
	h.Width = rc.ScreenW

	return Model{
		sess:   sess,
		cfg:    cfg,
		screen: core.NewScreen(rc.ScreenW, boardRows(rc.ScreenH)),
		layout: ComputeLayout(rc.ScreenW, boardRows(rc.ScreenH), engine.Extent),
		frame:  sess.Frame(),
		hud: HUD{
			Best:            best,
			Mode:            string(cfg.Difficulty),
			InitialInterval: engine.InitialInterval,
			MinInterval:     engine.MinInterval,
		},
		keys: NewKeyMapper(),
		help: h,
	}
}

// boardRows leaves the last terminal row to the help bar.
func boardRows(height int) int {
	return max(height-1, 1)
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.sess)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.BlurMsg:
		// Losing focus pauses a running game.
		if m.frame.State == snake.StateRunning {
			_ = m.sess.Pause()
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		// Frames from a session this model no longer owns are dropped
		// without re-arming, so only one wait is ever pending.
		if msg.SessionID != m.sess.ID() {
			return m, nil
		}
		m.frame = msg.Frame
		if m.frame.Result != nil {
			m.hud.Best = max(m.hud.Best, m.frame.Result.Score)
		}
		return m, waitForFrame(m.sess)

	case sessionClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m.apply(m.keys.MapKey(msg))
}

// apply routes an action to the session. Lifecycle misuse (pausing an idle
// game and so on) is rejected by the session and ignored here.
func (m Model) apply(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionQuit:
		m.quitting = true
		m.sess.Close()
		return m, tea.Quit

	case core.ActionBack:
		m.back = true
		m.sess.Close()
		return m, tea.Quit

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if v, err := snake.ParseVector(a.Direction()); err == nil {
			m.sess.ProposeDirection(v)
		}

	case core.ActionPrimary:
		_ = m.sess.Control(snake.ControlPrimary)

	case core.ActionPause:
		_ = m.sess.Control(snake.ControlPauseToggle)

	case core.ActionRestart:
		_ = m.sess.Control(snake.ControlRestart)
	}
	return m, nil
}

// handleMouse supports the on-screen buttons and swipe gestures on the board.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if a := m.layout.ButtonAt(msg.X, msg.Y); a != core.ActionNone {
			return m.apply(a)
		}
		if _, ok := m.layout.CellAt(msg.X, msg.Y); ok {
			m.drag = &pointer{x: msg.X, y: msg.Y}
		}

	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		from := *m.drag
		m.drag = nil

		dx := float64(msg.X-from.x) / cellCols
		dy := float64(msg.Y - from.y)
		if v, ok := snake.SwipeVector(dx, dy, m.cfg.Input.SwipeThreshold); ok {
			m.sess.ProposeDirection(v)
			return m, nil
		}
		// A tap on the board acts like the primary key outside of play.
		if m.frame.State != snake.StateRunning {
			return m.apply(core.ActionPrimary)
		}
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	rows := boardRows(msg.Height)
	m.screen.Resize(msg.Width, rows)
	m.layout = ComputeLayout(msg.Width, rows, m.cfg.Extent())
	m.help.Width = msg.Width
	return m, nil
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	DrawBoard(m.screen, m.layout, m.frame, m.hud)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Frame returns the last frame received from the session.
func (m Model) Frame() session.Frame {
	return m.frame
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user wants to return to menu.
func (m Model) BackToMenu() bool {
	return m.back
}
