// Package tui renders live build progress from a progrock update stream.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
)

// TapeSource yields progrock updates in order. Read returns an error once
// the stream has ended.
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

// WaitForTape returns a command that reads the next update from the tape.
// Any read error ends the program.
func WaitForTape(tape TapeSource) tea.Cmd {
	return func() tea.Msg {
		update, err := tape.Read()
		if err != nil {
			return endMsg{}
		}
		return updateMsg{update: update}
	}
}
