// Package tui provides the Bubble Tea front end for the snake game: menus,
// the board view, the scoreboard and the SSH server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-snake/internal/session"
)

// FrameMsg carries a frame published by a session.
type FrameMsg struct {
	SessionID string
	Frame     session.Frame
}

// sessionClosedMsg is sent once the session's frame stream has ended.
type sessionClosedMsg struct{}

// waitForFrame returns a command that blocks until the session publishes
// its next frame. The session's scheduler drives the pace; the view only
// follows.
func waitForFrame(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-sess.Frames():
			return FrameMsg{SessionID: sess.ID(), Frame: f}
		case <-sess.Done():
			return sessionClosedMsg{}
		}
	}
}
