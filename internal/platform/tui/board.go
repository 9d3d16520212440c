package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/session"
	"github.com/vovakirdan/neon-snake/internal/snake"
)

// Terminal cells are roughly twice as tall as they are wide, so each board
// cell is drawn two columns wide.
const cellCols = 2

const speedBarWidth = 5

// Button is a clickable on-screen control.
type Button struct {
	Rect   core.Rect
	Label  string
	Action core.Action
}

// Layout positions the board, HUD and buttons on the terminal.
type Layout struct {
	Width, Height int
	Extent        int
	HUDY          int
	Board         core.Rect // Outer rect, border included
	Buttons       []Button  // Empty when there is no room for them
	TooSmall      bool
}

// MinSize returns the smallest terminal that fits a board of the given
// extent, without the button row.
func MinSize(extent int) (w, h int) {
	return extent*cellCols + 2, extent + 3
}

// ComputeLayout centres the board horizontally, with the HUD above it and the
// button row below when the terminal is tall enough.
func ComputeLayout(width, height, extent int) Layout {
	l := Layout{Width: width, Height: height, Extent: extent}
	minW, minH := MinSize(extent)
	if width < minW || height < minH {
		l.TooSmall = true
		return l
	}

	l.Board = core.NewRect((width-minW)/2, 1, minW, extent+2)
	if height > minH {
		l.Buttons = layoutButtons(l.Board.X, l.Board.Bottom(), width)
	}
	return l
}

func layoutButtons(x, y, width int) []Button {
	specs := []struct {
		label  string
		action core.Action
	}{
		{"[ ◀ ]", core.ActionLeft},
		{"[ ▲ ]", core.ActionUp},
		{"[ ▼ ]", core.ActionDown},
		{"[ ▶ ]", core.ActionRight},
		{"[ SPACE ]", core.ActionPrimary},
	}

	buttons := make([]Button, 0, len(specs))
	for _, sp := range specs {
		w := utf8.RuneCountInString(sp.label)
		if x+w > width {
			break
		}
		buttons = append(buttons, Button{
			Rect:   core.NewRect(x, y, w, 1),
			Label:  sp.label,
			Action: sp.action,
		})
		x += w + 1
	}
	return buttons
}

// Interior returns the playable area inside the border.
func (l Layout) Interior() core.Rect {
	return core.NewRect(l.Board.X+1, l.Board.Y+1, l.Board.W-2, l.Board.H-2)
}

// CellOrigin returns the screen position of a board cell's left column.
func (l Layout) CellOrigin(p snake.Position) (x, y int) {
	in := l.Interior()
	return in.X + p.X*cellCols, in.Y + p.Y
}

// CellAt maps a screen position back to a board cell.
func (l Layout) CellAt(x, y int) (snake.Position, bool) {
	in := l.Interior()
	if l.TooSmall || !in.Contains(x, y) {
		return snake.Position{}, false
	}
	return snake.Position{X: (x - in.X) / cellCols, Y: y - in.Y}, true
}

// ButtonAt returns the action of the button under the pointer.
func (l Layout) ButtonAt(x, y int) core.Action {
	for _, b := range l.Buttons {
		if b.Rect.Contains(x, y) {
			return b.Action
		}
	}
	return core.ActionNone
}

// surfaceToScreen maps a point in surface units onto the terminal.
func (l Layout) surfaceToScreen(px, py float64, cellSize int) (x, y int) {
	in := l.Interior()
	cs := float64(cellSize)
	return in.X + int(px*cellCols/cs), in.Y + int(py/cs)
}

// HUD is the per-run information shown above the board.
type HUD struct {
	Best            int
	Mode            string
	InitialInterval time.Duration
	MinInterval     time.Duration
}

// DrawBoard renders a frame onto the screen.
func DrawBoard(s *core.Screen, l Layout, f session.Frame, hud HUD) {
	s.Clear()
	if l.TooSmall {
		w, h := MinSize(l.Extent)
		msg := fmt.Sprintf("Terminal too small: need %dx%d", w, h)
		s.DrawTextCentered(s.Height()/2, msg, core.ColorAlert)
		return
	}

	drawHUD(s, l, f, hud)
	s.DrawBox(l.Board, core.ColorBorder)
	drawGrid(s, l)
	drawFood(s, l, f.Food)
	drawSnake(s, l, f.Body)
	drawParticles(s, l, f)
	drawPopups(s, l, f)
	drawOverlay(s, l, f)
	drawButtons(s, l)
}

func drawHUD(s *core.Screen, l Layout, f session.Frame, hud HUD) {
	best := max(hud.Best, f.Score)
	text := fmt.Sprintf("SCORE %d  BEST %d  LEN %d  %dms %s",
		f.Score, best, len(f.Body), f.Interval.Milliseconds(), speedBar(hud, f.Interval))
	s.DrawTextColored(l.Board.X, l.HUDY, text, core.ColorHUD)

	if hud.Mode == "" {
		return
	}
	mode := "[" + hud.Mode + "]"
	x := l.Board.Right() - utf8.RuneCountInString(mode)
	if x > l.Board.X+utf8.RuneCountInString(text) {
		s.DrawTextColored(x, l.HUDY, mode, core.ColorDim)
	}
}

func speedBar(hud HUD, current time.Duration) string {
	level := config.SpeedLevel(hud.InitialInterval, hud.MinInterval, current)
	filled := int(level*speedBarWidth + 0.5)
	return strings.Repeat("▮", filled) + strings.Repeat("▯", speedBarWidth-filled)
}

func drawGrid(s *core.Screen, l Layout) {
	for y := range l.Extent {
		for x := range l.Extent {
			sx, sy := l.CellOrigin(snake.Position{X: x, Y: y})
			s.SetColored(sx, sy, '·', core.ColorGridDot)
		}
	}
}

func drawFood(s *core.Screen, l Layout, food snake.Position) {
	x, y := l.CellOrigin(food)
	s.SetColored(x, y, '▐', core.ColorFood)
	s.SetColored(x+1, y, '▌', core.ColorFood)
}

func drawSnake(s *core.Screen, l Layout, body []snake.Position) {
	// Tail first so the head wins when segments overlap.
	for i := len(body) - 1; i >= 0; i-- {
		x, y := l.CellOrigin(body[i])
		r, c := '▓', core.ColorSnakeBody
		if i == 0 {
			r, c = '█', core.ColorSnakeHead
		}
		s.SetColored(x, y, r, c)
		s.SetColored(x+1, y, r, c)
	}
}

func drawParticles(s *core.Screen, l Layout, f session.Frame) {
	in := l.Interior()
	for _, p := range f.Particles {
		x, y := l.surfaceToScreen(p.Pos.X, p.Pos.Y, f.CellSize)
		if !in.Contains(x, y) {
			continue
		}
		s.SetHex(x, y, '•', particleHex(p))
	}
}

func drawPopups(s *core.Screen, l Layout, f session.Frame) {
	in := l.Interior()
	for _, p := range f.Popups {
		// Popups are anchored at a cell's corner and centred on that cell.
		cx, y := l.surfaceToScreen(p.Pos.X+float64(f.CellSize)/2, p.Pos.Y, f.CellSize)
		if y < in.Y || y >= in.Bottom() {
			continue
		}
		// Shifted inward so text near a side wall stays whole.
		n := utf8.RuneCountInString(p.Text)
		x := core.Clamp(cx-n/2, in.X, in.X+max(in.W-n, 0))
		c := core.ColorPopup
		if p.Opacity() < 0.4 {
			c = core.ColorDim
		}
		for i, r := range []rune(p.Text) {
			if in.Contains(x+i, y) {
				s.SetColored(x+i, y, r, c)
			}
		}
	}
}

func drawOverlay(s *core.Screen, l Layout, f session.Frame) {
	var lines []string
	switch f.State {
	case snake.StateIdle:
		lines = []string{"N E O N   S N A K E", "", "space: start", "arrows / wasd: steer"}
	case snake.StatePaused:
		lines = []string{"PAUSED", "", "space: resume"}
	case snake.StateGameOver:
		lines = []string{"GAME OVER", ""}
		if f.Result != nil {
			lines = append(lines,
				fmt.Sprintf("score %d  length %d", f.Result.Score, f.Result.Length),
				causeText(f.Result.Cause))
		}
		lines = append(lines, "", "space: new game  r: retry")
	default:
		return
	}

	in := l.Interior()
	w := 0
	for _, line := range lines {
		w = max(w, utf8.RuneCountInString(line))
	}
	w = min(w+4, in.W)
	h := min(len(lines)+2, in.H)
	box := core.NewRect(in.X+(in.W-w)/2, in.Y+(in.H-h)/2, w, h)

	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, core.ColorHUD)
	for i, line := range lines {
		y := box.Y + 1 + i
		if y >= box.Bottom()-1 {
			break
		}
		c := core.ColorHUD
		if i == 0 {
			c = core.ColorFood
			if f.State == snake.StateGameOver {
				c = core.ColorAlert
			}
		}
		x := box.X + (box.W-utf8.RuneCountInString(line))/2
		s.DrawTextColored(x, y, line, c)
	}
}

func causeText(c snake.Cause) string {
	switch c {
	case snake.CauseWall:
		return "hit the wall"
	case snake.CauseSelf:
		return "bit its own tail"
	default:
		return ""
	}
}

func drawButtons(s *core.Screen, l Layout) {
	for _, b := range l.Buttons {
		s.DrawTextColored(b.Rect.X, b.Rect.Y, b.Label, core.ColorDim)
	}
}
