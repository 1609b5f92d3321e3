package ui

// Shorthands for the active theme's escape sequences.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorGrey() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ErrorColors adapts the active theme to the error handler's color needs.
type ErrorColors struct{}

// Yellow returns the warning color.
func (ErrorColors) Yellow() string { return ColorYellow() }

// Reset returns the reset sequence.
func (ErrorColors) Reset() string { return ColorReset() }
