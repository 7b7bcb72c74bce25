package views

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name     string
	Header   lipgloss.Style
	Border   lipgloss.Color
	Focused  lipgloss.Color
	Text     lipgloss.Style
	Dim      lipgloss.Style
	Accent   lipgloss.Style
	Break    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	// Glamour is the glamour standard style used for task descriptions.
	Glamour      string
	ProgressFrom string
	ProgressTo   string
}

var Themes = map[string]Theme{
	"dark": {
		Name:         "dark",
		Header:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Border:       lipgloss.Color("63"),
		Focused:      lipgloss.Color("205"),
		Text:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Break:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Selected:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Done:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Glamour:      "dark",
		ProgressFrom: "#FF7CCB",
		ProgressTo:   "#FDFF8C",
	},
	"light": {
		Name:         "light",
		Header:       lipgloss.NewStyle().Foreground(lipgloss.Color("125")).Bold(true),
		Border:       lipgloss.Color("244"),
		Focused:      lipgloss.Color("125"),
		Text:         lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		Break:        lipgloss.NewStyle().Foreground(lipgloss.Color("130")).Bold(true),
		Selected:     lipgloss.NewStyle().Foreground(lipgloss.Color("161")).Bold(true),
		Done:         lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Strikethrough(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		Glamour:      "light",
		ProgressFrom: "#5A56E0",
		ProgressTo:   "#EE6FF8",
	},
}

// ThemeFor returns the named theme, falling back to dark.
func ThemeFor(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["dark"]
}
