package ui

import (
	"testing"
)

// Theme tests mutate package state and therefore do not run in parallel.

func TestInitTheme_NoColorFlag(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(ThemeLight, true)
	if got := GetCurrentTheme().Name; got != ThemeNone {
		t.Errorf("theme = %q, want %q", got, ThemeNone)
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("no-color theme should produce empty escape sequences")
	}
	if _, ok := GetCurrentTUITheme().Accent.(interface{ RGBA() (r, g, b, a uint32) }); !ok {
		t.Error("TUI colors should implement lipgloss.TerminalColor")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	t.Setenv("NO_COLOR", "1")

	InitTheme(ThemeDark, false)
	if got := GetCurrentTheme().Name; got != ThemeNone {
		t.Errorf("NO_COLOR should select %q, got %q", ThemeNone, got)
	}
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("NO_COLOR should select the no-color TUI theme")
	}
}

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	testCases := []struct {
		name string
		want string
		tui  TUITheme
	}{
		{ThemeDark, ThemeDark, DarkTUITheme},
		{ThemeLight, ThemeLight, LightTUITheme},
		{ThemeNone, ThemeNone, NoColorTUITheme},
		{"solarized", ThemeDark, DarkTUITheme},
	}
	for _, tc := range testCases {
		SetTheme(tc.name)
		if got := GetCurrentTheme().Name; got != tc.want {
			t.Errorf("SetTheme(%q) selected %q, want %q", tc.name, got, tc.want)
		}
		if GetCurrentTUITheme() != tc.tui {
			t.Errorf("SetTheme(%q) selected the wrong TUI palette", tc.name)
		}
	}
}

func TestIsValidTheme(t *testing.T) {
	t.Parallel()
	for _, name := range []string{ThemeDark, ThemeLight, ThemeNone} {
		if !IsValidTheme(name) {
			t.Errorf("IsValidTheme(%q) = false", name)
		}
	}
	if IsValidTheme("orange") {
		t.Error("IsValidTheme(\"orange\") = true")
	}
}

func TestErrorColors(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	SetCurrentTheme(DarkTheme)

	var c ErrorColors
	if c.Yellow() != DarkTheme.Warning || c.Reset() != DarkTheme.Reset {
		t.Error("ErrorColors should follow the active theme")
	}
}
