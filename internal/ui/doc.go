// Package ui holds the color themes shared by the CLI, the chart renderer
// and the TUI. ANSI themes drive plain terminal output; TUIThemes provide
// lipgloss colors for styled rendering. NO_COLOR is honored everywhere.
package ui
