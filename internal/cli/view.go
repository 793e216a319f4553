package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circlet/pkg/animate"
	"github.com/matzehuels/circlet/pkg/config"
	"github.com/matzehuels/circlet/pkg/grid"
	"github.com/matzehuels/circlet/pkg/location"
	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/render/layout"
	"github.com/matzehuels/circlet/pkg/render/sink"
)

const (
	tileCols    = 16                 // braille cells across one tile
	tileLines   = (tileCols + 1) / 2 // text lines down one tile
	statusLines = 2
)

// viewCommand creates the interactive view command.
func (c *CLI) viewCommand() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "view [token|url]",
		Short: "Browse an animated wall of patterns in the terminal",
		Long: `View fills the terminal with patterns and regenerates one tile at a time,
always picking among the tiles regenerated least often. Animation pauses
while the pointer is over a tile, while a tile is expanded, and while the
terminal is unfocused.

Keys:
  arrows   move the cursor        enter  expand the cursor tile
  space    regenerate             esc    collapse
  p        pause or resume        x      clear an invalid token
  q        quit

With a token or share URL, the view opens on that pattern, expanded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(io.Discard)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				logger = newLogger(f, c.Logger.GetLevel())
			}

			m := newViewModel(c.Config, animate.SystemClock, logger)
			defer m.close()
			if len(args) == 1 {
				m.open(args[0])
			}

			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithReportFocus(),
			)
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the view owns the terminal")

	return cmd
}

// =============================================================================
// Model
// =============================================================================

type tickMsg struct{}

// viewModel is the bubbletea model behind "view". Every state change runs
// on the bubbletea loop; animator firings reach it through ticks.
type viewModel struct {
	wall    *grid.Wall
	anim    *animate.Animator
	ticks   chan struct{}
	done    chan struct{}
	closed  bool
	enabled bool // user's play/pause switch
	logger  *log.Logger
	palette pattern.Palette
	baseURL string

	width, height int
	cursor        int  // selected tile
	hovering      bool // pointer rests on the cursor tile
	expanded      int  // expanded tile, -1 when collapsed
	invalid       error
}

func newViewModel(cfg config.Config, clock animate.Clock, logger *log.Logger) *viewModel {
	m := &viewModel{
		wall:     grid.NewWall(grid.FromViewport(grid.CellSize, grid.CellSize), nil),
		ticks:    make(chan struct{}, 1),
		done:     make(chan struct{}),
		logger:   logger,
		palette:  cfg.Palette,
		baseURL:  cfg.Share.BaseURL,
		enabled:  cfg.Animation.Enabled,
		expanded: -1,
	}
	m.anim = animate.New(m.notify, animate.Options{
		Interval: cfg.Animation.Interval(),
		Clock:    clock,
		Logger:   logger,
	})
	m.anim.SetEnabled(m.enabled)
	return m
}

// notify runs on the clock's goroutine. A tick already pending absorbs it.
func (m *viewModel) notify() {
	select {
	case m.ticks <- struct{}{}:
	default:
	}
}

func (m *viewModel) waitTick() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ticks:
			return tickMsg{}
		case <-m.done:
			return nil
		}
	}
}

// open shows the pattern named by a token or share URL, expanded. A
// pattern that does not parse puts the view in its error state.
func (m *viewModel) open(arg string) {
	token, err := location.TokenFromArg(arg)
	if err == nil {
		var d pattern.Descriptor
		if d, err = pattern.Decode(token); err == nil {
			m.wall.Set(0, d)
			m.cursor = 0
			m.expand(0)
			return
		}
	}
	m.logger.Warn("invalid pattern", "arg", arg, "err", err)
	m.invalid = err
	m.anim.SetExpanded(true)
}

func (m *viewModel) close() {
	if m.closed {
		return
	}
	m.closed = true
	m.anim.Close()
	close(m.done)
}

func (m *viewModel) Init() tea.Cmd {
	return m.waitTick()
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// A firing queued just before a pause is dropped.
		if m.anim.State() == animate.Running {
			if i := m.wall.Tick(); i >= 0 {
				m.logger.Debug("tick", "tile", i, "count", m.wall.Triggers().Count(i))
			}
		}
		return m, m.waitTick()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.FocusMsg:
		m.anim.SetVisible(true)

	case tea.BlurMsg:
		m.anim.SetVisible(false)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.close()
		return m, tea.Quit
	case "x":
		if m.invalid != nil {
			m.invalid = nil
			m.collapse()
		}
	case "esc":
		if m.invalid == nil {
			m.collapse()
		}
	case "enter":
		if m.invalid == nil && m.expanded < 0 {
			m.expand(m.cursor)
		}
	case " ", "space":
		if m.invalid != nil {
			break
		}
		if m.expanded >= 0 {
			m.wall.Regenerate(m.expanded)
			break
		}
		for i := range m.wall.Len() {
			m.wall.Regenerate(i)
		}
	case "p":
		m.enabled = !m.enabled
		m.anim.SetEnabled(m.enabled)
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	}
	return m, nil
}

func (m *viewModel) handleMouse(msg tea.MouseMsg) {
	if m.invalid != nil {
		return
	}
	i := m.tileAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.expanded >= 0 {
			return
		}
		m.hovering = i >= 0
		if i >= 0 {
			m.cursor = i
		}
		m.anim.SetHovering(m.hovering)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.expanded >= 0 {
			m.collapse()
		} else if i >= 0 {
			m.cursor = i
			m.expand(i)
		}
	}
}

func (m *viewModel) expand(i int) {
	m.expanded = i
	m.anim.SetExpanded(true)
}

func (m *viewModel) collapse() {
	m.expanded = -1
	m.anim.SetExpanded(false)
}

func (m *viewModel) moveCursor(dr, dc int) {
	if m.expanded >= 0 {
		return
	}
	geo := m.wall.Geometry()
	row, col := geo.Cell(m.cursor)
	row = min(max(row+dr, 0), geo.Rows-1)
	col = min(max(col+dc, 0), geo.Cols-1)
	m.cursor = row*geo.Cols + col
}

// resize maps the terminal onto the wall: one cell per tileCols×tileLines
// block of characters.
func (m *viewModel) resize(width, height int) {
	m.width, m.height = width, height
	cols := max(width/tileCols, 1)
	rows := max((height-statusLines)/tileLines, 1)
	geo := grid.FromViewport(float64(cols)*grid.CellSize, float64(rows)*grid.CellSize)

	m.wall.Resize(geo)
	m.cursor = min(m.cursor, geo.Len()-1)
	if m.expanded >= geo.Len() {
		m.collapse()
	}
	m.logger.Debug("resize", "width", width, "height", height, "rows", geo.Rows, "cols", geo.Cols)
}

// tileAt returns the tile under terminal cell (x, y), or -1.
func (m *viewModel) tileAt(x, y int) int {
	geo := m.wall.Geometry()
	px := (float64(x) + 0.5) * grid.CellSize / tileCols
	py := (float64(y) + 0.5) * grid.CellSize / tileLines
	return geo.At(px, py)
}

// =============================================================================
// View
// =============================================================================

func (m *viewModel) View() string {
	switch {
	case m.invalid != nil:
		return m.viewInvalid()
	case m.expanded >= 0:
		return m.viewExpanded()
	default:
		return m.viewGrid()
	}
}

func (m *viewModel) viewInvalid() string {
	var b strings.Builder
	b.WriteString(StyleError.Bold(true).Render("Error parsing pattern"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.invalid.Error()))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("x clear  q quit"))
	return b.String()
}

func (m *viewModel) viewGrid() string {
	geo := m.wall.Geometry()
	rows := make([]string, geo.Rows)
	for r := range geo.Rows {
		blocks := make([]string, geo.Cols)
		for c := range geo.Cols {
			i := r*geo.Cols + c
			d := m.wall.Tile(i)
			edge := float64(grid.CellSize)
			if m.hovering && i == m.cursor {
				edge /= grid.HoverScale(d.Diameter)
			}
			blocks[c] = m.renderTile(d, edge, tileCols, i == m.cursor)
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	}

	d := m.wall.Tile(m.cursor)
	status := fmt.Sprintf("%d×%d · %s · tile %d d=%d regenerated %d× · ticks %d",
		geo.Rows, geo.Cols, m.anim.State(), m.cursor, d.Diameter,
		m.wall.Triggers().Count(m.cursor), m.anim.Ticks())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		StyleDim.Render(status),
		StyleDim.Render("arrows move  enter expand  space regenerate  p pause  q quit"),
	)
}

func (m *viewModel) viewExpanded() string {
	geo := m.wall.Geometry()
	d := m.wall.Tile(m.expanded)

	// The field spans the grid's shorter side; the pattern is zoomed so the
	// largest diameter would fill most of it.
	n := min(geo.Rows, geo.Cols)
	edge := float64(n) * grid.CellSize / grid.ExpandedScale(d.Diameter, geo)
	cols := n * tileCols
	if m.width > 0 {
		cols = min(cols, m.width)
	}
	if m.height > 0 {
		cols = min(cols, 2*max(m.height-statusLines-1, 1))
	}

	url, err := location.ShareURL(m.baseURL, d)
	if err != nil {
		url = err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTile(d, edge, max(cols, 1), false),
		StyleLink.Render(url),
		StyleDim.Render("space regenerate  esc collapse  q quit"),
	)
}

// renderTile draws d in braille through a square window of the given edge,
// in tile units, using cols terminal cells.
func (m *viewModel) renderTile(d pattern.Descriptor, edge float64, cols int, selected bool) string {
	l := layout.Build(d, m.palette)
	l.TileSize = edge
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(l.Foreground)).
		Background(lipgloss.Color(l.Background))
	if selected {
		style = style.Underline(true)
	}
	return style.Render(strings.Join(sink.Braille(l, cols), "\n"))
}
