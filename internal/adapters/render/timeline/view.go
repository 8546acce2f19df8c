package timeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/timeline-viewer/internal/application"
	"github.com/bnema/timeline-viewer/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth      = 100
	minLabelWidth     = 12
	maxLabelWidth     = 48
	progressBarWidth  = 10
	historyShown      = 3
	historyLabelRunes = 2
	// Everything on a row except the label column.
	fixedRowWidth = 58
)

type RenderOptions struct {
	Pool    domain.PoolConfig
	Source  string
	History []domain.ConsumptionEvent
	Width   int
	// Offsets holds the offset text per row index; missing rows show 0.
	Offsets map[int]string
}

// RowOptions carries what one row needs besides its projection.
type RowOptions struct {
	Capacity   int
	LabelWidth int
	Offset     string
	Selected   bool
}

func RenderHeader(opts RenderOptions, entries int, s Styles) string {
	title := s.Title.Render(fmt.Sprintf("%s timeline", poolName(opts.Pool)))
	meta := fmt.Sprintf("entries: %d  capacity: %d  regen: %ss", entries, opts.Pool.Capacity, formatSeconds(opts.Pool.RegenInterval))
	if opts.Source != "" {
		meta = fmt.Sprintf("file: %s  %s", opts.Source, meta)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, s.Header.Render(meta))
}

// RenderHistory lists the most recent uses, oldest first.
func RenderHistory(history []domain.ConsumptionEvent, s Styles) string {
	if len(history) == 0 {
		return s.History.Render("uses: none")
	}

	recent := history
	if len(recent) > historyShown {
		recent = recent[len(recent)-historyShown:]
	}

	parts := make([]string, 0, len(recent))
	for _, event := range recent {
		parts = append(parts, fmt.Sprintf("%.1fs(%s)", event.Time, shortLabel(event.Label)))
	}

	text := "uses: " + strings.Join(parts, " ")
	if len(history) > historyShown {
		text += "..."
	}

	return s.History.Render(text)
}

func RenderEmpty(s Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Empty.Render("No timeline entries found."),
		s.Hint.Render(`Expected lines like: 7.9 "--middle--"  (time in seconds, then the skill name)`),
	)
}

func RenderColumns(pool domain.PoolConfig, labelWidth int, s Styles) string {
	return s.ColumnTitle.Render(fmt.Sprintf("  %-8s  %s %-8s %s",
		"time",
		runewidth.FillRight("skill", labelWidth),
		"offset",
		poolName(pool),
	))
}

// RenderRow draws one timeline row from its projection. It holds no state of its own.
func RenderRow(row application.Row, opts RowOptions, s Styles) string {
	cursor := "  "
	if opts.Selected {
		cursor = "› "
	}

	labelWidth := opts.LabelWidth
	if labelWidth <= 0 {
		labelWidth = LabelWidth(0)
	}
	label := runewidth.FillRight(runewidth.Truncate(row.Entry.Label, labelWidth, "…"), labelWidth)

	offset := strings.TrimSpace(opts.Offset)
	if offset == "" {
		offset = "0"
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		cursor,
		s.Time.Render(fmt.Sprintf("%-8s", fmt.Sprintf("%.1fs", row.Entry.Time))),
		" ",
		lipgloss.NewStyle().Foreground(AccentColor(row.Entry.Label)).Render("┃"),
		" ",
		s.Label.Render(label),
		" ",
		s.Offset.Render(fmt.Sprintf("%-8s", "±"+offset+"s")),
		" ",
		renderCharges(row.Charges, opts.Capacity, s),
		" ",
		renderRegen(row, s),
	)

	if opts.Selected {
		return s.Selected.Render(line)
	}
	return line
}

// AccentColor picks the accent bar colour from keywords in the skill name.
func AccentColor(label string) lipgloss.Color {
	switch {
	case strings.Contains(label, "--"):
		return colorMarker
	case containsAny(label, "连指向", "定格"):
		return colorAttack
	case containsAny(label, "场地", "热舞"):
		return colorField
	case containsAny(label, "同步", "Reset"):
		return colorSync
	default:
		return colorDefault
	}
}

func LabelWidth(totalWidth int) int {
	if totalWidth <= 0 {
		totalWidth = defaultWidth
	}

	w := totalWidth - fixedRowWidth
	if w < minLabelWidth {
		return minLabelWidth
	}
	if w > maxLabelWidth {
		return maxLabelWidth
	}
	return w
}

func renderCharges(charges, capacity int, s Styles) string {
	var b strings.Builder
	for i := 0; i < capacity; i++ {
		if i < charges {
			b.WriteString(s.ChargeOn.Render("◆"))
		} else {
			b.WriteString(s.ChargeOff.Render("◇"))
		}
	}

	return b.String() + " " + s.Count.Render(fmt.Sprintf("%d/%d", charges, capacity))
}

func renderRegen(row application.Row, s Styles) string {
	if row.Full {
		return s.Caption.Render("full")
	}
	if row.Regen == nil {
		return s.Caption.Render("idle")
	}

	caption := "imminent"
	if row.Regen.Remaining > 0 {
		caption = fmt.Sprintf("regen %.1fs", row.Regen.Remaining)
	}

	return renderProgressBar(row.Regen.Progress, progressBarWidth, s) + " " + s.Caption.Render(caption)
}

func renderProgressBar(progress float64, width int, s Styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampUnit(progress)))
	fill := lipgloss.NewStyle().Foreground(progressColor(progress))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.BarBracket.Render("["),
		fill.Render(strings.Repeat("=", filled)),
		s.BarEmpty.Render(strings.Repeat("-", width-filled)),
		s.BarBracket.Render("]"),
	)
}

func progressColor(progress float64) lipgloss.Color {
	switch {
	case progress < 0.3:
		return colorRegenStart
	case progress < 0.7:
		return colorRegenMid
	default:
		return colorRegenEnd
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func shortLabel(label string) string {
	runes := []rune(label)
	if len(runes) > historyLabelRunes {
		runes = runes[:historyLabelRunes]
	}
	return string(runes)
}

func poolName(pool domain.PoolConfig) string {
	if strings.TrimSpace(pool.Name) == "" {
		return "charges"
	}
	return pool.Name
}

func formatSeconds(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
