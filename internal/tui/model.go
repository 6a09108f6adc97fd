package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/pack/internal/ui/style"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// PhaseState is one top-level build phase as shown on screen.
type PhaseState struct {
	ID     string
	Name   string
	Status string
	// Done and Total count the internal units finished while the phase ran.
	Done  int
	Total int
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	failed    lipgloss.Style
	counter   lipgloss.Style
}

// Model is the Bubble Tea model showing build phases and per-module progress.
type Model struct {
	tape     TapeSource
	phases   []PhaseState
	internal map[string]bool
	height   int
	spinner  spinner.Model
	styles   styles
}

// NewModel creates a new model reading from tape.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Yellow)

	return &Model{
		tape:     tape,
		internal: make(map[string]bool),
		spinner:  s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(style.Yellow),
			completed: lipgloss.NewStyle().Foreground(style.Green),
			failed:    lipgloss.NewStyle().Foreground(style.Red),
			counter:   lipgloss.NewStyle().Foreground(style.Slate),
		},
	}
}

// Init starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case updateMsg:
		m.apply(msg.update)
		return m, WaitForTape(m.tape)
	case endMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) apply(update *progrock.StatusUpdate) {
	for _, v := range update.Vertexes {
		if v.Internal {
			m.applyInternal(v)
			continue
		}
		m.applyPhase(v)
	}
}

// applyInternal attributes an internal vertex to the phase currently running.
func (m *Model) applyInternal(v *progrock.Vertex) {
	phase := m.running()
	if phase == nil {
		return
	}

	done, seen := m.internal[v.Id]
	if !seen {
		phase.Total++
	}
	if v.Completed != nil && !done {
		phase.Done++
	}
	m.internal[v.Id] = v.Completed != nil
}

func (m *Model) applyPhase(v *progrock.Vertex) {
	status := statusRunning
	if v.Completed != nil {
		status = statusCompleted
		if v.Error != nil {
			status = statusFailed
		}
	}

	for i := range m.phases {
		if m.phases[i].ID == v.Id {
			m.phases[i].Status = status
			return
		}
	}
	m.phases = append(m.phases, PhaseState{ID: v.Id, Name: v.Name, Status: status})
}

func (m *Model) running() *PhaseState {
	for i := len(m.phases) - 1; i >= 0; i-- {
		if m.phases[i].Status == statusRunning {
			return &m.phases[i]
		}
	}
	return nil
}

// View renders one line per phase. Older phases scroll off when the
// terminal is shorter than the phase list.
func (m *Model) View() string {
	var s strings.Builder

	start := 0
	if m.height > 0 && len(m.phases) > m.height {
		start = len(m.phases) - m.height
	}

	for _, p := range m.phases[start:] {
		var icon string
		var st lipgloss.Style
		switch p.Status {
		case statusCompleted:
			icon, st = style.Check, m.styles.completed
		case statusFailed:
			icon, st = style.Cross, m.styles.failed
		default:
			icon, st = m.spinner.View(), m.styles.running
		}

		line := fmt.Sprintf("%s %s", st.Render(icon), p.Name)
		if p.Total > 0 {
			line += " " + m.styles.counter.Render(fmt.Sprintf("%d/%d", p.Done, p.Total))
		}
		s.WriteString(line + "\n")
	}

	return s.String()
}
