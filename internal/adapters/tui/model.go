package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	render "github.com/bnema/timeline-viewer/internal/adapters/render/timeline"
	"github.com/bnema/timeline-viewer/internal/application"
	"github.com/bnema/timeline-viewer/internal/domain"
	"github.com/bnema/timeline-viewer/internal/ports"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	offsetStep       = 0.5
	defaultStatusTTL = 3 * time.Second
	// header (2) + history + blank + columns + status + help
	chromeLines = 7
)

var ErrUnexpectedModel = errors.New("unexpected final tui model type")

type Options struct {
	Source    string
	StatusTTL time.Duration
	// Watcher is optional; when set the timeline reloads on every change it reports.
	Watcher ports.FileWatcher
	// Notice is shown as an error status until the first status change, e.g. a failed initial load.
	Notice string
}

type statusExpiredMsg struct{ seq int }

type fileChangedMsg struct{ event ports.FileEvent }

type watcherClosedMsg struct{}

type reloadedMsg struct {
	result application.LoadResult
	err    error
}

type Model struct {
	ctx     context.Context
	session *application.Session
	opts    Options
	styles  render.Styles
	keys    keyMap
	help    help.Model
	input   textinput.Model

	rows    []application.Row
	offsets map[int]string
	cursor  int
	top     int
	editing bool

	width  int
	height int

	status    string
	statusErr bool
	statusSeq int
}

func New(ctx context.Context, session *application.Session, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = defaultStatusTTL
	}

	input := textinput.New()
	input.Prompt = "offset (s): "
	input.Placeholder = "0"
	input.CharLimit = 16

	return Model{
		ctx:       ctx,
		session:   session,
		opts:      opts,
		styles:    render.NewStyles(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		input:     input,
		rows:      session.Rows(),
		offsets:   make(map[int]string),
		status:    opts.Notice,
		statusErr: opts.Notice != "",
	}
}

func (m Model) Init() tea.Cmd {
	if m.opts.Watcher == nil {
		return nil
	}
	return waitForFileEvent(m.opts.Watcher)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()
		return m, nil
	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	case fileChangedMsg:
		return m, tea.Batch(reload(m.ctx, m.session, m.opts.Source), waitForFileEvent(m.opts.Watcher))
	case watcherClosedMsg:
		return m, nil
	case reloadedMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("reload failed, keeping previous timeline: %v", msg.err), true)
		}
		m.refresh()
		return m, m.setStatus(fmt.Sprintf("reloaded %d entries", msg.result.Entries), false)
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	default:
		return m, nil
	}
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.rows))
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.rows))
	case key.Matches(msg, m.keys.Use):
		return m, m.useSelected()
	case key.Matches(msg, m.keys.Later):
		m.nudgeOffset(offsetStep)
	case key.Matches(msg, m.keys.Earlier):
		m.nudgeOffset(-offsetStep)
	case key.Matches(msg, m.keys.Edit):
		if len(m.rows) == 0 {
			return m, nil
		}
		m.editing = true
		m.input.SetValue(m.offsets[m.cursor])
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.refresh()
		return m, m.setStatus("charges reset", false)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Apply):
		m.setOffset(m.cursor, m.input.Value())
		m.stopEditing()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) useSelected() tea.Cmd {
	result, err := m.session.Use(application.UseCommand{Index: m.cursor, Offset: m.offsets[m.cursor]})
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	if !result.Applied {
		return m.setStatus(fmt.Sprintf("%v: %s at %.1fs", domain.ErrInsufficientCharges, result.Label, result.Time), true)
	}

	m.refresh()
	return m.setStatus(fmt.Sprintf("used %s at %.1fs", result.Label, result.Time), false)
}

func (m *Model) nudgeOffset(delta float64) {
	if len(m.rows) == 0 {
		return
	}

	next := domain.ParseOffset(m.offsets[m.cursor]) + delta
	m.setOffset(m.cursor, domain.FormatOffset(next))
}

// setOffset keeps the text as typed; Use reads anything non-numeric as 0.
func (m *Model) setOffset(index int, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		delete(m.offsets, index)
		return
	}
	m.offsets[index] = raw
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr

	seq := m.statusSeq
	return tea.Tick(m.opts.StatusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (m *Model) refresh() {
	m.rows = m.session.Rows()
	for index := range m.offsets {
		if index >= len(m.rows) {
			delete(m.offsets, index)
		}
	}
	m.moveCursor(0)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

// pageSize is the number of rows that fit on screen; 0 height shows everything.
func (m Model) pageSize() int {
	if m.height <= 0 {
		return len(m.rows)
	}

	size := m.height - chromeLines
	if m.editing {
		size--
	}
	if size < 1 {
		return 1
	}
	return size
}

func (m *Model) scrollToCursor() {
	size := m.pageSize()
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if size > 0 && m.cursor >= m.top+size {
		m.top = m.cursor - size + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

func (m Model) View() string {
	snapshot := m.session.Snapshot()
	opts := render.RenderOptions{
		Pool:    snapshot.Pool,
		Source:  m.opts.Source,
		History: snapshot.History,
		Width:   m.width,
	}

	lines := []string{
		render.RenderHeader(opts, len(m.rows), m.styles),
		render.RenderHistory(opts.History, m.styles),
		"",
	}

	if len(m.rows) == 0 {
		lines = append(lines, render.RenderEmpty(m.styles))
	} else {
		labelWidth := render.LabelWidth(m.width)
		lines = append(lines, render.RenderColumns(opts.Pool, labelWidth, m.styles))

		end := m.top + m.pageSize()
		if end > len(m.rows) {
			end = len(m.rows)
		}
		for _, row := range m.rows[m.top:end] {
			lines = append(lines, render.RenderRow(row, render.RowOptions{
				Capacity:   opts.Pool.Capacity,
				LabelWidth: labelWidth,
				Offset:     m.offsets[row.Index],
				Selected:   row.Index == m.cursor,
			}, m.styles))
		}
	}

	if m.editing {
		lines = append(lines, m.input.View())
	}

	lines = append(lines, m.renderStatus(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.StatusError.Render(m.status)
	}
	return m.styles.StatusOK.Render(m.status)
}

func waitForFileEvent(watcher ports.FileWatcher) tea.Cmd {
	if watcher == nil {
		return nil
	}

	return func() tea.Msg {
		event, ok := <-watcher.Events()
		if !ok {
			return watcherClosedMsg{}
		}
		return fileChangedMsg{event: event}
	}
}

func reload(ctx context.Context, session *application.Session, path string) tea.Cmd {
	return func() tea.Msg {
		result, err := session.Load(ctx, path)
		return reloadedMsg{result: result, err: err}
	}
}

// Run starts the interactive viewer on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, session *application.Session, opts Options, input io.Reader, output io.Writer) error {
	p := tea.NewProgram(
		New(ctx, session, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(input),
		tea.WithOutput(output),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if _, ok := finalModel.(Model); !ok {
		return ErrUnexpectedModel
	}
	return nil
}
