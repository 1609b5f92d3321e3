// Package format holds presentation helpers shared by the CLI and the TUI:
// duration and ETA formatting, progress aggregation with ETA estimation,
// textual progress bars and number formatting.
package format
