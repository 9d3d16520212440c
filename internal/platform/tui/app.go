package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/session"
)

type appScreen int

// sessionSet tracks the sessions opened by one AppModel and its copies.
type sessionSet struct {
	mu   sync.Mutex
	live []*session.Session
}

func (s *sessionSet) add(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.live[:0]
	for _, old := range s.live {
		select {
		case <-old.Done():
		default:
			live = append(live, old)
		}
	}
	s.live = append(live, sess)
}

func (s *sessionSet) closeAll() {
	s.mu.Lock()
	live := s.live
	s.live = nil
	s.mu.Unlock()

	for _, sess := range live {
		sess.Close()
	}
}

const (
	screenMenu appScreen = iota
	screenDifficulty
	screenGame
	screenScores
)

// AppModel manages the full flow: menu -> game -> menu, plus the difficulty
// picker and the scoreboard. Local play and SSH sessions both run it.
type AppModel struct {
	launcher   Launcher
	config     core.RuntimeConfig
	difficulty config.DifficultyPreset
	screen     appScreen
	menu       MenuModel
	picker     DifficultyModel
	game       *Model
	scores     ScoreboardModel
	sessions   *sessionSet
	err        error
	quitting   bool
}

// NewAppModel creates the top-level model. With play set it skips the menu
// and opens a game straight away.
func NewAppModel(l Launcher, rc core.RuntimeConfig, play bool) AppModel {
	difficulty := l.Config.Difficulty
	if difficulty == "" {
		difficulty = config.DifficultyNormal
	}

	m := AppModel{
		launcher:   l,
		config:     rc,
		difficulty: difficulty,
		sessions:   &sessionSet{},
	}
	m.menu = NewMenuModel(rc, difficulty, l.Best(difficulty))
	if play {
		m.startGame()
	}
	return m
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame && m.game != nil {
		return m.game.Init()
	}
	return nil
}

// Update handles messages for the current screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenDifficulty:
		return m.updatePicker(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. Submodels quit their own
// program when used standalone; here the quit command is swallowed and the
// choice decides the next screen.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	m.difficulty = m.menu.Difficulty()

	switch m.menu.Choice() {
	case MenuChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuChoicePlay:
		if !m.startGame() {
			return m, tea.Quit
		}
		return m, m.game.Init()

	case MenuChoiceDifficulty:
		m.picker = NewDifficultyModel(m.config.ScreenW, m.config.ScreenH, m.difficulty)
		m.screen = screenDifficulty
		return m, nil

	case MenuChoiceScores:
		m.scores = NewScoreboardModel(m.launcher.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, nil
	}

	// Frames from a game that was just left end up here.
	if _, ok := msg.(FrameMsg); ok {
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(DifficultyModel); ok {
		m.picker = picker
	}

	switch {
	case m.picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.picker.Selected() != nil:
		m.difficulty = *m.picker.Selected()
		return m.toMenu()
	case m.picker.WantsBack():
		return m.toMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scores, ok := newScores.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.config, m.difficulty, m.launcher.Best(m.difficulty))
	m.screen = screenMenu
	return m, m.menu.Init()
}

// startGame opens a session at the current difficulty. On failure the error
// is kept for the caller of the program.
func (m *AppModel) startGame() bool {
	sess, cfg, err := m.launcher.NewSession(m.difficulty)
	if err != nil {
		m.err = err
		m.quitting = true
		return false
	}
	m.sessions.add(sess)
	game := NewModel(sess, cfg, m.launcher.Best(m.difficulty), m.config)
	m.game = &game
	m.screen = screenGame
	return true
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenDifficulty:
		return m.picker.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that stopped the flow, if any.
func (m AppModel) Err() error {
	return m.err
}

// Close stops every session the flow has opened. It is safe to call from
// another goroutine.
func (m AppModel) Close() {
	m.sessions.closeAll()
}

// AppOptions returns the program options the game needs.
func AppOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Buttons and swipes
		tea.WithReportFocus(),     // Auto-pause on blur
	}
}

// RunApp runs the full flow in the local terminal.
func RunApp(l Launcher, rc core.RuntimeConfig, play bool) error {
	model := NewAppModel(l, rc, play)
	if model.Err() != nil {
		return model.Err()
	}

	p := tea.NewProgram(model, AppOptions()...)
	finalModel, err := p.Run()
	if app, ok := finalModel.(AppModel); ok {
		app.Close()
		if err == nil {
			err = app.Err()
		}
	}
	return err
}
