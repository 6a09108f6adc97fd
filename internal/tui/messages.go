package tui

import "github.com/vito/progrock"

// updateMsg carries one status update read from the tape.
type updateMsg struct {
	update *progrock.StatusUpdate
}

// endMsg reports that the tape has no more updates.
type endMsg struct{}
