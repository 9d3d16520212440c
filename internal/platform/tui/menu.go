package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
)

// MenuChoice is what the user picked on the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceDifficulty
	MenuChoiceScores
	MenuChoiceQuit
)

var menuItems = []MenuChoice{MenuChoicePlay, MenuChoiceDifficulty, MenuChoiceScores, MenuChoiceQuit}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor     int
	width      int
	height     int
	difficulty config.DifficultyPreset
	best       int
	keyMapper  *KeyMapper
	choice     MenuChoice
}

// NewMenuModel creates a new menu model. best is shown under the title.
func NewMenuModel(cfg core.RuntimeConfig, difficulty config.DifficultyPreset, best int) MenuModel {
	return MenuModel{
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		difficulty: difficulty,
		best:       best,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if menuItems[m.cursor] == MenuChoiceDifficulty {
			m.difficulty = cyclePreset(m.difficulty, -1)
		}

	case MenuActionRight:
		if menuItems[m.cursor] == MenuChoiceDifficulty {
			m.difficulty = cyclePreset(m.difficulty, 1)
		}

	case MenuActionSelect:
		m.choice = menuItems[m.cursor]
		return m, tea.Quit

	case MenuActionScoreboard:
		m.choice = MenuChoiceScores
		return m, tea.Quit
	}

	return m, nil
}

func cyclePreset(p config.DifficultyPreset, delta int) config.DifficultyPreset {
	idx := 0
	for i, preset := range config.Presets {
		if preset == p {
			idx = i
		}
	}
	n := len(config.Presets)
	return config.Presets[(idx+delta+n)%n]
}

func (m MenuModel) label(c MenuChoice) string {
	switch c {
	case MenuChoicePlay:
		return "Play"
	case MenuChoiceDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", m.difficulty)
	case MenuChoiceScores:
		return "High Scores"
	case MenuChoiceQuit:
		return "Quit"
	default:
		return ""
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("  N E O N   S N A K E  ", m.width, titleStyle))
	b.WriteString("\n\n")
	if m.best > 0 {
		b.WriteString(centerText(fmt.Sprintf("best %d", m.best), m.width, dimStyle))
	}
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+m.label(item), m.width, lipgloss.NewStyle()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.difficulty.Description(), m.width, dimStyle))
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, m.width, dimStyle))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user picked, or MenuChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the preset currently shown on the menu.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return m.difficulty
}

// centerText centers text within given width and renders it with style.
func centerText(text string, width int, style lipgloss.Style) string {
	w := lipgloss.Width(text)
	if w >= width {
		return style.Render(text)
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + style.Render(text)
}
