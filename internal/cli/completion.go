package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry
// there.
type FlagCompletion struct {
	Long      string   // long flag name without dashes (e.g., "max-n")
	Short     string   // short alias without dash (e.g., "n")
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free value)
	ValueName string   // value label in zsh; empty for boolean flags
	IsFile    bool     // the flag takes a file path
	IsBackend bool     // values come from the compiled-in backends
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "max-n", Short: "n", Help: "Largest n of the sweep", ValueName: "number"},
	{Long: "workers", Short: "w", Help: "Number of concurrent analyzers", Values: []string{"1", "2", "4", "8"}, ValueName: "count"},
	{Long: "backend", Help: "Factorial backend", IsBackend: true, ValueName: "backend"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"1m", "10m", "1h", "6h"}, ValueName: "duration"},
	{Long: "output", Short: "o", Help: "CSV output path (.zst compresses)", IsFile: true, ValueName: "file"},
	{Long: "print-only", Short: "p", Help: "Print rows instead of writing a file"},
	{Long: "table", Help: "Render an aligned table"},
	{Long: "table-edge", Help: "Digits kept at each end of big values", ValueName: "digits"},
	{Long: "plot", Help: "Draw the k* chart"},
	{Long: "plot-limit", Help: "Largest n drawn on the chart", Values: []string{"100", "300", "1000"}, ValueName: "number"},
	{Long: "plot-width", Help: "Chart width in cells", ValueName: "cells"},
	{Long: "plot-height", Help: "Chart height in cells", ValueName: "cells"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Print every record"},
	{Long: "details", Short: "d", Help: "Show memory, cache and system details"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}, ValueName: "theme"},
	{Long: "tui", Help: "Interactive dashboard"},
	{Long: "interactive", Short: "i", Help: "Interactive explorer"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "log-every", Help: "Records between milestone logs", ValueName: "number"},
	{Long: "metrics-file", Help: "Prometheus textfile output", IsFile: true, ValueName: "file"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell to out.
// backends lists the factorial backends offered for -backend.
func GenerateCompletion(out io.Writer, shell string, backends []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(backends)
	case "zsh":
		script = zshCompletion(backends)
	case "fish":
		script = fishCompletion(backends)
	case "powershell", "ps":
		script = powerShellCompletion(backends)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// valuesFor returns the suggestions of a value-taking flag.
func valuesFor(f FlagCompletion, backends []string) []string {
	if f.IsBackend {
		return backends
	}
	return f.Values
}

// spellings returns every command-line form of a flag.
func spellings(f FlagCompletion) []string {
	var s []string
	if f.Long != "" {
		s = append(s, "--"+f.Long, "-"+f.Long)
	}
	if f.Short != "" {
		s = append(s, "-"+f.Short)
	}
	return s
}

func bashCompletion(backends []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, spellings(f)...)
		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(valuesFor(f, backends)) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(valuesFor(f, backends), " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(spellings(f), "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for bincross
# Add this to your ~/.bashrc or ~/.bash_completion

_bincross_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _bincross_completions bincross
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion(backends []string) string {
	var args []string
	for _, f := range flagRegistry {
		suffix := ""
		switch {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case len(valuesFor(f, backends)) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(valuesFor(f, backends), " "))
		case f.ValueName != "":
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}
		if f.Short != "" {
			args = append(args, fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix))
			continue
		}
		args = append(args, fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix))
	}

	return fmt.Sprintf(`#compdef bincross

# Zsh completion script for bincross
# Place this file in $fpath as _bincross

_bincross() {
    _arguments -s \
%s
}

_bincross "$@"
`, strings.Join(args, " \\\n"))
}

func fishCompletion(backends []string) string {
	lines := []string{
		"# Fish completion script for bincross",
		"# Add this to ~/.config/fish/completions/bincross.fish",
		"",
		"complete -c bincross -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c bincross"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case len(valuesFor(f, backends)) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(valuesFor(f, backends), " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion(backends []string) string {
	var options, switches []string
	for _, f := range flagRegistry {
		options = append(options, fmt.Sprintf("        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		if f.Short != "" {
			options = append(options, fmt.Sprintf("        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		values := valuesFor(f, backends)
		if len(values) == 0 {
			continue
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = "'" + v + "'"
		}
		switches = append(switches, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for bincross
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'bincross' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(switches, "\n"))
}
