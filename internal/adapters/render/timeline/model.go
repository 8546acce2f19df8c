package timeline

import (
	"errors"
	"io"

	"github.com/bnema/timeline-viewer/internal/application"
	"github.com/bnema/timeline-viewer/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	rows       []application.Row
	opts       RenderOptions
	labelWidth int
	styles     Styles
	output     string
}

func newModel(rows []application.Row, opts RenderOptions) model {
	if opts.Pool.Capacity <= 0 {
		opts.Pool = domain.DefaultPoolConfig()
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}

	return model{
		rows:       rows,
		opts:       opts,
		labelWidth: LabelWidth(opts.Width),
		styles:     NewStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = lipgloss.JoinVertical(lipgloss.Left, m.sections()...)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func (m model) sections() []string {
	lines := []string{
		RenderHeader(m.opts, len(m.rows), m.styles),
		RenderHistory(m.opts.History, m.styles),
		"",
	}

	if len(m.rows) == 0 {
		return append(lines, RenderEmpty(m.styles))
	}

	lines = append(lines, RenderColumns(m.opts.Pool, m.labelWidth, m.styles))
	for _, row := range m.rows {
		lines = append(lines, RenderRow(row, RowOptions{
			Capacity:   m.opts.Pool.Capacity,
			LabelWidth: m.labelWidth,
			Offset:     m.opts.Offsets[row.Index],
		}, m.styles))
	}

	return lines
}

// Render produces the static report view of a projected timeline. A zero pool falls back to the
// default pool and a zero width to 100 columns.
func Render(rows []application.Row, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(rows, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
