//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// sliceTape replays a fixed list of updates, then reports io.EOF.
type sliceTape struct {
	updates []*progrock.StatusUpdate
}

func (s *sliceTape) Read() (*progrock.StatusUpdate, error) {
	if len(s.updates) == 0 {
		return nil, io.EOF
	}
	u := s.updates[0]
	s.updates = s.updates[1:]
	return u, nil
}

func vertex(id, name string, internal, completed bool, errMsg string) *progrock.Vertex {
	v := &progrock.Vertex{Id: id, Name: name, Internal: internal}
	if completed {
		v.Completed = timestamppb.New(time.Now())
	}
	if errMsg != "" {
		v.Error = &errMsg
	}
	return v
}

func update(vs ...*progrock.Vertex) updateMsg {
	return updateMsg{update: &progrock.StatusUpdate{Vertexes: vs}}
}

func TestModel_TapeUpdate_AddsPhase(t *testing.T) {
	m := NewModel(&sliceTape{})

	_, cmd := m.Update(update(vertex("1", "resolve graph", false, false, "")))

	require.Len(t, m.phases, 1)
	assert.Equal(t, "resolve graph", m.phases[0].Name)
	assert.Equal(t, statusRunning, m.phases[0].Status)
	assert.NotNil(t, cmd)
}

func TestModel_TapeUpdate_CompletesPhase(t *testing.T) {
	m := NewModel(&sliceTape{})

	m.Update(update(vertex("1", "resolve graph", false, false, "")))
	m.Update(update(vertex("1", "resolve graph", false, true, "")))
	m.Update(update(vertex("2", "transform modules", false, true, "boom")))

	require.Len(t, m.phases, 2)
	assert.Equal(t, statusCompleted, m.phases[0].Status)
	assert.Equal(t, statusFailed, m.phases[1].Status)
}

func TestModel_InternalVerticesCountTowardRunningPhase(t *testing.T) {
	m := NewModel(&sliceTape{})

	m.Update(update(vertex("p", "transform modules", false, false, "")))
	m.Update(update(
		vertex("a", "transform /a.js", true, false, ""),
		vertex("b", "transform /b.js", true, false, ""),
	))
	m.Update(update(vertex("a", "transform /a.js", true, true, "")))
	m.Update(update(vertex("a", "transform /a.js", true, true, "")))

	assert.Equal(t, 1, m.phases[0].Done)
	assert.Equal(t, 2, m.phases[0].Total)
	assert.Contains(t, m.View(), "1/2")
}

func TestModel_InternalVertexWithoutPhaseIsIgnored(t *testing.T) {
	m := NewModel(&sliceTape{})

	m.Update(update(vertex("a", "transform /a.js", true, true, "")))

	assert.Empty(t, m.phases)
	assert.Empty(t, m.View())
}

func TestModel_View(t *testing.T) {
	m := NewModel(&sliceTape{})
	m.phases = []PhaseState{
		{ID: "1", Name: "resolve graph", Status: statusCompleted},
		{ID: "2", Name: "transform modules", Status: statusFailed},
		{ID: "3", Name: "assemble bundle", Status: statusRunning},
	}

	output := m.View()

	assert.Contains(t, output, "resolve graph")
	assert.Contains(t, output, "transform modules")
	assert.Contains(t, output, "assemble bundle")
	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "✗")
}

func TestModel_View_Scrolling(t *testing.T) {
	m := NewModel(&sliceTape{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	m.phases = []PhaseState{
		{ID: "1", Name: "Phase 1", Status: statusCompleted},
		{ID: "2", Name: "Phase 2", Status: statusCompleted},
		{ID: "3", Name: "Phase 3", Status: statusRunning},
	}

	output := m.View()

	assert.NotContains(t, output, "Phase 1")
	assert.Contains(t, output, "Phase 2")
	assert.Contains(t, output, "Phase 3")
}

func TestModel_TapeEndedQuits(t *testing.T) {
	m := NewModel(&sliceTape{})

	_, cmd := m.Update(endMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWaitForTape(t *testing.T) {
	tape := &sliceTape{updates: []*progrock.StatusUpdate{{}}}

	assert.IsType(t, updateMsg{}, WaitForTape(tape)())
	assert.IsType(t, endMsg{}, WaitForTape(tape)())
}
