package timeline

import "github.com/charmbracelet/lipgloss"

const (
	colorMarker  = lipgloss.Color("#FFA726")
	colorAttack  = lipgloss.Color("#EF5350")
	colorField   = lipgloss.Color("#42A5F5")
	colorSync    = lipgloss.Color("#66BB6A")
	colorDefault = lipgloss.Color("#AB47BC")

	colorRegenStart = lipgloss.Color("#FF5722")
	colorRegenMid   = lipgloss.Color("#FF9800")
	colorRegenEnd   = lipgloss.Color("#4CAF50")
)

type Styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	ColumnTitle lipgloss.Style
	Time        lipgloss.Style
	Label       lipgloss.Style
	Selected    lipgloss.Style
	Offset      lipgloss.Style
	ChargeOn    lipgloss.Style
	ChargeOff   lipgloss.Style
	Count       lipgloss.Style
	BarBracket  lipgloss.Style
	BarEmpty    lipgloss.Style
	Caption     lipgloss.Style
	History     lipgloss.Style
	Empty       lipgloss.Style
	Hint        lipgloss.Style
	StatusOK    lipgloss.Style
	StatusError lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50")),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ColumnTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Time:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD54F")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Selected:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Offset:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD54F")),
		ChargeOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E1BEE7")),
		ChargeOff:   lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
		Count:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD54F")),
		BarBracket:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		BarEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Caption:     lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		History:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E1BEE7")),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		Hint:        lipgloss.NewStyle().Faint(true),
		StatusOK:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50")),
		StatusError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}
