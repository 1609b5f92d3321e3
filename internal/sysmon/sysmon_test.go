package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_ProcessRSS(t *testing.T) {
	rss := Sample().ProcessRSS
	if rss == 0 {
		t.Skip("process memory is not readable on this platform")
	}
	if rss < 1<<20 {
		t.Errorf("ProcessRSS = %d bytes, expected at least 1 MiB for a running test binary", rss)
	}
}

func TestHostInfo(t *testing.T) {
	h := HostInfo()
	if h.LogicalCPUs < 0 {
		t.Errorf("LogicalCPUs = %d", h.LogicalCPUs)
	}
	if h.TotalMemory == 0 {
		t.Skip("total memory is not readable on this platform")
	}
}
