package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/format"
)

// LinePrinter prints each record as one comma-separated line without a
// header. It backs the print-only mode.
type LinePrinter struct {
	w io.Writer
}

// NewLinePrinter creates a LinePrinter writing to w.
func NewLinePrinter(w io.Writer) *LinePrinter {
	return &LinePrinter{w: w}
}

// Write implements Sink.
func (p *LinePrinter) Write(rec combinatorics.AnalysisRecord) error {
	_, err := fmt.Fprintln(p.w, strings.Join(FormatRow(rec), ","))
	return err
}

// tableHeader is shorter than Header to keep the table readable.
var tableHeader = []string{"n", "k* agg", "log2 sum", "min k", "log2 C(min)", "max k", "log2 C(max)", "C(n, max k)"}

// RenderTable prints records as an aligned table. Integers longer than
// 2*edge+3 digits are shortened to their edges.
func RenderTable(w io.Writer, recs []combinatorics.AnalysisRecord, edge int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(tableHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, rec := range recs {
		table.Append([]string{
			strconv.FormatUint(rec.N, 10),
			strconv.FormatUint(rec.MinKAggregated, 10),
			format.FormatLog2(rec.Log2SumAtMinKAggregated),
			strconv.FormatUint(rec.MinK, 10),
			format.FormatLog2(rec.Log2CombinationsAtMinK),
			strconv.FormatUint(rec.MaxK, 10),
			format.FormatLog2(rec.Log2CombinationsAtMaxK),
			format.TruncateDigits(rec.CombinationsAtMaxK.String(), edge),
		})
	}
	table.Render()
}
