package display

import "github.com/charmbracelet/lipgloss"

// Styles contains styling for game output
type Styles struct {
	Header    lipgloss.Style
	Player    lipgloss.Style
	Score     lipgloss.Style
	Balance   lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	Loser     lipgloss.Style
	Push      lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles builds the game styles on renderer so colour follows the
// renderer's output profile
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Score: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Balance: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		CardRed: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Loser: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Push: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
