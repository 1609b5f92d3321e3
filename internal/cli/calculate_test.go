package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bincross/internal/config"
)

func TestPrintExecutionConfig(t *testing.T) {
	withoutColors(t)
	var buf bytes.Buffer
	PrintExecutionConfig(config.AppConfig{MaxN: 500, Timeout: time.Minute, OutputFile: "x.csv"}, &buf)
	out := buf.String()
	for _, want := range []string{"Sweeping n = 1..500", "2^128", "timeout of 1m0s", "Output: x.csv."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintExecutionConfig(config.AppConfig{MaxN: 5, PrintOnly: true}, &buf)
	if !strings.Contains(buf.String(), "Output: standard output.") {
		t.Errorf("print-only destination not shown:\n%s", buf.String())
	}
}

func TestPrintExecutionMode(t *testing.T) {
	withoutColors(t)
	var buf bytes.Buffer
	PrintExecutionMode("big", 1, &buf)
	if !strings.Contains(buf.String(), "Sequential sweep using the big factorial backend") {
		t.Errorf("sequential mode = %q", buf.String())
	}
	buf.Reset()
	PrintExecutionMode("gmp", 4, &buf)
	if !strings.Contains(buf.String(), "Parallel sweep with 4 workers using the gmp factorial backend") {
		t.Errorf("parallel mode = %q", buf.String())
	}
}
