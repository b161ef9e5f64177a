package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tilemaze/tilemaze/pkg/grid"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up", "down", "left", "right":
		types := map[string]tea.KeyType{
			"up":    tea.KeyUp,
			"down":  tea.KeyDown,
			"left":  tea.KeyLeft,
			"right": tea.KeyRight,
		}
		return tea.KeyMsg{Type: types[s]}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewPlayModel(t *testing.T) {
	m, err := newPlayModel(5, 4, false, false, 7)
	if err != nil {
		t.Fatalf("newPlayModel: %v", err)
	}

	if m.pos != (grid.Square{Col: 0, Row: 0}) {
		t.Errorf("start = %v", m.pos)
	}
	if m.goal != (grid.Square{Col: 4, Row: 3}) {
		t.Errorf("goal = %v", m.goal)
	}
	// A perfect maze connects every pair of cells, so the optimal path
	// between opposite corners is always at least the Manhattan distance.
	if m.optimal < 7 {
		t.Errorf("optimal = %d, want >= 7", m.optimal)
	}
}

func TestPlayModelMovesOnlyThroughPassages(t *testing.T) {
	m, err := newPlayModel(5, 5, false, false, 42)
	if err != nil {
		t.Fatalf("newPlayModel: %v", err)
	}

	moved := 0
	for _, dir := range []string{"up", "right", "down", "left"} {
		next, _ := m.Update(keyMsg(dir))
		nm := next.(playModel)
		if nm.pos != m.pos {
			moved++
			// Any successful move must follow a carved passage.
			if !m.maze.Linked(m.pos, nm.pos) {
				t.Errorf("moved %s through a wall: %v -> %v", dir, m.pos, nm.pos)
			}
			if nm.steps != m.steps+1 {
				t.Errorf("steps = %d after move", nm.steps)
			}
		}
	}
	// The corner cell of a perfect maze has at least one open passage, and
	// up/left leave the grid, so at least one of right/down moves.
	if moved == 0 {
		t.Error("no direction moved from the start corner")
	}
}

func TestPlayModelWin(t *testing.T) {
	m, err := newPlayModel(2, 1, false, false, 1)
	if err != nil {
		t.Fatalf("newPlayModel: %v", err)
	}

	// A 2x1 maze has exactly one passage, east from the start.
	next, _ := m.Update(keyMsg("right"))
	nm := next.(playModel)
	if !nm.won {
		t.Error("reaching the goal should win")
	}
	if nm.steps != 1 {
		t.Errorf("steps = %d, want 1", nm.steps)
	}
}

func TestPlayModelView(t *testing.T) {
	m, err := newPlayModel(3, 3, false, false, 9)
	if err != nil {
		t.Fatalf("newPlayModel: %v", err)
	}

	view := m.View()
	if !strings.Contains(view, "@") {
		t.Error("view missing player marker")
	}
	if !strings.Contains(view, "X") {
		t.Error("view missing goal marker")
	}
	if !strings.Contains(view, "steps: 0") {
		t.Error("view missing step counter")
	}
}

func TestPlayModelQuitKeys(t *testing.T) {
	m, err := newPlayModel(3, 3, false, false, 9)
	if err != nil {
		t.Fatalf("newPlayModel: %v", err)
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}
