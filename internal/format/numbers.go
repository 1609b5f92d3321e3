package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Log2Precision is the number of fractional digits used for log2 values in
// every persisted and printed record.
const Log2Precision = 6

// FormatLog2 renders a log2 value with Log2Precision fractional digits.
func FormatLog2(v float64) string {
	return strconv.FormatFloat(v, 'f', Log2Precision, 64)
}

// FormatNumberString inserts thousand separators into a decimal string.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var b strings.Builder
	b.Grow(len(prefix) + n + (n-1)/3)
	b.WriteString(prefix)
	first := n % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateDigits shortens a long decimal string to its first and last edge
// digits, e.g. "12345...67890". Strings of at most 2*edge+3 characters are
// returned unchanged.
func TruncateDigits(s string, edge int) string {
	if edge <= 0 || len(s) <= 2*edge+3 {
		return s
	}
	return s[:edge] + "..." + s[len(s)-edge:]
}

// FormatBytes renders a byte count with binary units ("1.5 KiB").
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
