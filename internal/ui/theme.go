package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the color scheme for the whole interface. Two palettes exist;
// the chat store's dark-mode flag selects between them.
type Theme struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	Text    lipgloss.Color
	UserTag lipgloss.Color
	AITag   lipgloss.Color
}

// lightTheme is the default palette.
var lightTheme = Theme{
	Accent:  lipgloss.Color("#005FAF"), // blue
	Success: lipgloss.Color("#008757"), // green
	Error:   lipgloss.Color("#D70000"), // red
	Hint:    lipgloss.Color("#8A8A8A"), // gray
	Text:    lipgloss.Color("#262626"),
	UserTag: lipgloss.Color("#005FAF"),
	AITag:   lipgloss.Color("#8700AF"), // purple
}

// darkTheme mirrors the original app's dark mode.
var darkTheme = Theme{
	Accent:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"),
	Error:   lipgloss.Color("#FF005F"),
	Hint:    lipgloss.Color("#6C6C6C"),
	Text:    lipgloss.Color("#DADADA"),
	UserTag: lipgloss.Color("#5FAFD7"),
	AITag:   lipgloss.Color("#D787FF"),
}

// themeFor picks the palette for the dark-mode flag.
func themeFor(dark bool) Theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

// Style functions for dynamic theming
func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success)
}

func (t Theme) textStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text)
}

func (t Theme) userTagStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.UserTag).Bold(true)
}

func (t Theme) aiTagStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.AITag).Bold(true)
}

func (t Theme) selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
}
