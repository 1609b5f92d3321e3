package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/format"
	"github.com/agbru/bincross/internal/report"
	"github.com/agbru/bincross/internal/ui"
)

// MaxREPLRange bounds the number of records the range command tabulates.
const MaxREPLRange = 500

// REPLConfig holds configuration for an interactive session.
type REPLConfig struct {
	// Backend is the name of the factorial backend, for display.
	Backend string
	// Timeout bounds each command.
	Timeout time.Duration
	// MaxN is the largest n a command may analyze.
	MaxN uint64
	// FullValues prints big integers in full instead of truncating them.
	FullValues bool
	// Edge is the number of digits kept at each end of truncated values.
	Edge int
}

// REPL is an interactive explorer for single values of n.
type REPL struct {
	config   REPLConfig
	analyzer *combinatorics.Analyzer
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a session backed by analyzer.
func NewREPL(analyzer *combinatorics.Analyzer, config REPLConfig) *REPL {
	if config.Edge <= 0 {
		config.Edge = 20
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &REPL{
		config:   config,
		analyzer: analyzer,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and runs commands until exit or EOF.
func (r *REPL) Start() {
	fmt.Fprintf(r.out, "\n%sbincross explorer%s (threshold 2^128, %s backend)\n\n", ui.ColorBold(), ui.ColorReset(), r.config.Backend)
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"bincross> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sanalyze <n>%s       - Threshold statistics for n (or just type n)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scombos <n> <k>%s    - Exact C(n,k) and its position against 2^128\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srange <a> <b>%s     - Table of records for n = a..b (at most %d)\n", ui.ColorYellow(), ui.ColorReset(), MaxREPLRange)
	fmt.Fprintf(r.out, "  %sfull%s              - Toggle full display of big values\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s            - Display the session configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s              - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s       - Leave the explorer\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand runs one command line and reports whether to continue.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "analyze", "a":
		if n, ok := r.parseArgs(args, 1, "analyze <n>"); ok {
			r.analyze(n[0])
		}
	case "combos", "c":
		if v, ok := r.parseArgs(args, 2, "combos <n> <k>"); ok {
			r.combos(v[0], v[1])
		}
	case "range", "r":
		if v, ok := r.parseArgs(args, 2, "range <a> <b>"); ok {
			r.tabulate(v[0], v[1])
		}
	case "full":
		r.config.FullValues = !r.config.FullValues
		fmt.Fprintf(r.out, "Full values: %s%t%s\n", ui.ColorGreen(), r.config.FullValues, ui.ColorReset())
	case "status", "st":
		r.status()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.analyze(n)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// parseArgs parses exactly want unsigned integers, each at most MaxN.
func (r *REPL) parseArgs(args []string, want int, usage string) ([]uint64, bool) {
	if len(args) != want {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return nil, false
	}
	vals := make([]uint64, want)
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), a, ui.ColorReset())
			return nil, false
		}
		if r.config.MaxN > 0 && v > r.config.MaxN {
			fmt.Fprintf(r.out, "%sValue %d exceeds the supported limit of %d%s\n", ui.ColorRed(), v, r.config.MaxN, ui.ColorReset())
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

func (r *REPL) analyze(n uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	start := time.Now()
	rec, err := r.analyzer.Analyze(ctx, n)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "\n%sn = %d%s (%s)\n", ui.ColorBold(), n, ui.ColorReset(), format.FormatExecutionDuration(time.Since(start)))
	fmt.Fprintf(r.out, "  k* (aggregated) : %s%d%s, sum %s (log2 %s)\n",
		ui.ColorCyan(), rec.MinKAggregated, ui.ColorReset(), r.value(rec.SumAtMinKAggregated.String()), format.FormatLog2(rec.Log2SumAtMinKAggregated))
	fmt.Fprintf(r.out, "  min k           : %s%d%s, C = %s (log2 %s)\n",
		ui.ColorCyan(), rec.MinK, ui.ColorReset(), r.value(rec.CombinationsAtMinK.String()), format.FormatLog2(rec.Log2CombinationsAtMinK))
	fmt.Fprintf(r.out, "  max k           : %s%d%s, C = %s (log2 %s)\n",
		ui.ColorCyan(), rec.MaxK, ui.ColorReset(), r.value(rec.CombinationsAtMaxK.String()), format.FormatLog2(rec.Log2CombinationsAtMaxK))
	if rec.CrossingFound {
		fmt.Fprintf(r.out, "  crossing        : C(n,%d) <= 2^128 < C(n,%d)\n\n", rec.MinK, rec.MaxK)
		return
	}
	fmt.Fprintf(r.out, "  crossing        : none, every C(n,k) fits in 128 bits\n\n")
}

func (r *REPL) combos(n, k uint64) {
	c, err := r.analyzer.Evaluator().Combinations(n, k)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	relation := "<="
	if c.Cmp(r.analyzer.Threshold()) > 0 {
		relation = ">"
	}
	log2 := "-inf"
	if c.Sign() > 0 {
		if v, err := combinatorics.Log2(c); err == nil {
			log2 = format.FormatLog2(v)
		}
	}
	fmt.Fprintf(r.out, "C(%d,%d) = %s%s%s\n", n, k, ui.ColorGreen(), r.value(c.String()), ui.ColorReset())
	fmt.Fprintf(r.out, "  %d digits, log2 %s, %s 2^128\n", len(c.String()), log2, relation)
}

func (r *REPL) tabulate(from, to uint64) {
	if from < 1 || to < from {
		fmt.Fprintf(r.out, "%sInvalid range: need 1 <= a <= b%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if to-from+1 > MaxREPLRange {
		fmt.Fprintf(r.out, "%sRange too large: at most %d values%s\n", ui.ColorRed(), MaxREPLRange, ui.ColorReset())
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	recs := make([]combinatorics.AnalysisRecord, 0, to-from+1)
	for n := from; n <= to; n++ {
		rec, err := r.analyzer.Analyze(ctx, n)
		if err != nil {
			fmt.Fprintf(r.out, "%sError at n=%d: %v%s\n", ui.ColorRed(), n, err, ui.ColorReset())
			return
		}
		recs = append(recs, rec)
	}
	report.RenderTable(r.out, recs, r.config.Edge)
}

func (r *REPL) status() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Backend:         %s%s%s\n", ui.ColorCyan(), r.config.Backend, ui.ColorReset())
	fmt.Fprintf(r.out, "  Threshold:       %s%s%s\n", ui.ColorCyan(), r.analyzer.Threshold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:         %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Cached factorials: %s%d%s\n", ui.ColorCyan(), r.analyzer.CacheLen(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Full values:     %s%t%s\n\n", ui.ColorCyan(), r.config.FullValues, ui.ColorReset())
}

// value truncates a decimal string unless full display is on.
func (r *REPL) value(s string) string {
	if r.config.FullValues {
		return s
	}
	return format.TruncateDigits(s, r.config.Edge)
}
