package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences for plain terminal output.
type Theme struct {
	Name      string
	Primary   string // headings, emphasized values
	Secondary string // defaults and secondary labels
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// Theme names accepted by SetTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeNone  = "none"
)

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      ThemeDark,
		Primary:   "\033[38;5;45m",
		Secondary: "\033[38;5;246m",
		Success:   "\033[38;5;114m",
		Warning:   "\033[38;5;221m",
		Error:     "\033[38;5;203m",
		Info:      "\033[38;5;177m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      ThemeLight,
		Primary:   "\033[38;5;25m",
		Secondary: "\033[38;5;241m",
		Success:   "\033[38;5;22m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;160m",
		Info:      "\033[38;5;90m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape sequences at all.
	NoColorTheme = Theme{Name: ThemeNone}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme holds lipgloss colors for styled rendering.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	// Series colors the plotted k* line.
	Series lipgloss.TerminalColor
	// Annotation colors value labels on the chart.
	Annotation lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default styled palette.
	DarkTUITheme = TUITheme{
		Text:       lipgloss.Color("#D8DEE9"),
		Border:     lipgloss.Color("#5E81AC"),
		Accent:     lipgloss.Color("#88C0D0"),
		Success:    lipgloss.Color("#A3BE8C"),
		Warning:    lipgloss.Color("#EBCB8B"),
		Error:      lipgloss.Color("#BF616A"),
		Dim:        lipgloss.Color("#4C566A"),
		Series:     lipgloss.Color("#81A1C1"),
		Annotation: lipgloss.Color("#B48EAD"),
	}

	// LightTUITheme is the styled palette for light backgrounds.
	LightTUITheme = TUITheme{
		Text:       lipgloss.Color("#2E3440"),
		Border:     lipgloss.Color("#3B5B8C"),
		Accent:     lipgloss.Color("#1F6F8B"),
		Success:    lipgloss.Color("#3C7A3C"),
		Warning:    lipgloss.Color("#9A6700"),
		Error:      lipgloss.Color("#A3262E"),
		Dim:        lipgloss.Color("#8A8F98"),
		Series:     lipgloss.Color("#1F4E8C"),
		Annotation: lipgloss.Color("#7A3E74"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:       lipgloss.NoColor{},
		Border:     lipgloss.NoColor{},
		Accent:     lipgloss.NoColor{},
		Success:    lipgloss.NoColor{},
		Warning:    lipgloss.NoColor{},
		Error:      lipgloss.NoColor{},
		Dim:        lipgloss.NoColor{},
		Series:     lipgloss.NoColor{},
		Annotation: lipgloss.NoColor{},
	}
)

// GetCurrentTheme returns the active ANSI theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the styled palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	switch currentTheme.Name {
	case ThemeNone:
		return NoColorTUITheme
	case ThemeLight:
		return LightTUITheme
	}
	return DarkTUITheme
}

// SetCurrentTheme installs t as the active theme. Tests use it to restore
// state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name. Unknown names select the dark theme.
func SetTheme(name string) {
	SetCurrentTheme(themeByName(name))
}

// IsValidTheme reports whether name is a known theme.
func IsValidTheme(name string) bool {
	switch name {
	case ThemeDark, ThemeLight, ThemeNone:
		return true
	}
	return false
}

// InitTheme selects the active theme at startup. Colors are disabled when
// noColor is set or when the NO_COLOR environment variable exists
// (https://no-color.org/); otherwise the named theme is used.
func InitTheme(name string, noColor bool) {
	if noColor || NoColorRequested() {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(name)
}

// NoColorRequested reports whether NO_COLOR is present in the environment.
func NoColorRequested() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func themeByName(name string) Theme {
	switch name {
	case ThemeLight:
		return LightTheme
	case ThemeNone:
		return NoColorTheme
	}
	return DarkTheme
}
