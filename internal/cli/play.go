package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tilemaze/tilemaze/pkg/grid"
	"github.com/tilemaze/tilemaze/pkg/pipeline"
	"github.com/tilemaze/tilemaze/pkg/structure"
)

// playCommand creates the play command for walking a maze in the terminal.
func (c *CLI) playCommand() *cobra.Command {
	var (
		width  int
		height int
		torusX bool
		torusY bool
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Walk a maze interactively in the terminal",
		Long:  `Play carves a square maze and lets you walk it with the arrow keys. Reach the marked goal cell in as few steps as possible.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width == 0 {
				width = pipeline.DefaultWidth
			}
			if height == 0 {
				height = pipeline.DefaultHeight
			}
			if seed == 0 {
				seed = pipeline.DefaultSeed
			}

			model, err := newPlayModel(width, height, torusX, torusY, seed)
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}

			if m, ok := final.(playModel); ok && m.won {
				printSuccess("Escaped in %d steps (optimal: %d)", m.steps, m.optimal)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "grid width in cells")
	cmd.Flags().IntVar(&height, "height", 0, "grid height in cells")
	cmd.Flags().BoolVar(&torusX, "torus-x", false, "wrap the horizontal axis")
	cmd.Flags().BoolVar(&torusY, "torus-y", false, "wrap the vertical axis")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 uses the built-in default)")

	return cmd
}

// Play styles
var (
	playPlayerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	playGoalStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	playWallStyle   = lipgloss.NewStyle().Foreground(colorGray)
	playDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// playModel is the bubbletea model for the interactive maze walker.
type playModel struct {
	grid    *grid.SquareGrid
	maze    *structure.Structure[grid.Square]
	pos     grid.Square
	goal    grid.Square
	steps   int
	optimal int
	won     bool
}

// newPlayModel carves the maze and places the player and goal at opposite
// corners.
func newPlayModel(width, height int, torusX, torusY bool, seed uint64) (playModel, error) {
	var opts []grid.SquareOption
	if torusX {
		opts = append(opts, grid.WithTorusX())
	}
	if torusY {
		opts = append(opts, grid.WithTorusY())
	}
	g, err := grid.NewSquareGrid(width, height, opts...)
	if err != nil {
		return playModel{}, err
	}

	maze, err := g.Structure().GenerateMaze(structure.SeededRand(seed))
	if err != nil {
		return playModel{}, err
	}

	start := grid.Square{Col: 0, Row: 0}
	goal := grid.Square{Col: width - 1, Row: height - 1}
	path, _, err := maze.FindPath(start, goal)
	if err != nil {
		return playModel{}, err
	}

	return playModel{
		grid:    g,
		maze:    maze,
		pos:     start,
		goal:    goal,
		optimal: len(path) - 1,
	}, nil
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	if m.won {
		return m, tea.Quit
	}

	var dir grid.Direction
	switch key.String() {
	case "up", "k":
		dir = grid.North
	case "right", "l":
		dir = grid.East
	case "down", "j":
		dir = grid.South
	case "left", "h":
		dir = grid.West
	default:
		return m, nil
	}

	next, ok := m.grid.Step(m.pos, dir)
	if !ok || !m.maze.Linked(m.pos, next) {
		return m, nil
	}
	m.pos = next
	m.steps++
	if m.pos == m.goal {
		m.won = true
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tilemaze"))
	b.WriteString("\n")
	b.WriteString(playDimStyle.Render("arrows/hjkl move · q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderMaze())
	b.WriteString("\n")

	if m.won {
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("You escaped in %d steps! Press any key.", m.steps)))
	} else {
		b.WriteString(playDimStyle.Render(fmt.Sprintf("steps: %d", m.steps)))
	}
	b.WriteString("\n")

	return b.String()
}

// renderMaze draws the maze as ASCII walls. An opening is drawn wherever the
// carved maze links two cells, including wrap-around links on toroidal axes.
func (m playModel) renderMaze() string {
	var b strings.Builder

	for row := 0; row < m.grid.Height; row++ {
		// Wall row above the cells.
		for col := 0; col < m.grid.Width; col++ {
			b.WriteString(playWallStyle.Render("+"))
			if m.open(grid.Square{Col: col, Row: row}, grid.North) {
				b.WriteString("   ")
			} else {
				b.WriteString(playWallStyle.Render("---"))
			}
		}
		b.WriteString(playWallStyle.Render("+"))
		b.WriteString("\n")

		// Cell row.
		for col := 0; col < m.grid.Width; col++ {
			c := grid.Square{Col: col, Row: row}
			if m.open(c, grid.West) {
				b.WriteString(" ")
			} else {
				b.WriteString(playWallStyle.Render("|"))
			}
			switch c {
			case m.pos:
				b.WriteString(playPlayerStyle.Render(" @ "))
			case m.goal:
				b.WriteString(playGoalStyle.Render(" X "))
			default:
				b.WriteString("   ")
			}
		}
		if m.open(grid.Square{Col: m.grid.Width - 1, Row: row}, grid.East) {
			b.WriteString(" ")
		} else {
			b.WriteString(playWallStyle.Render("|"))
		}
		b.WriteString("\n")
	}

	// Bottom wall.
	for col := 0; col < m.grid.Width; col++ {
		b.WriteString(playWallStyle.Render("+"))
		if m.open(grid.Square{Col: col, Row: m.grid.Height - 1}, grid.South) {
			b.WriteString("   ")
		} else {
			b.WriteString(playWallStyle.Render("---"))
		}
	}
	b.WriteString(playWallStyle.Render("+"))
	b.WriteString("\n")

	return b.String()
}

// open reports whether the player could walk from c in direction d.
func (m playModel) open(c grid.Square, d grid.Direction) bool {
	next, ok := m.grid.Step(c, d)
	return ok && m.maze.Linked(c, next)
}
