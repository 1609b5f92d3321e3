// Package sysmon samples system and process resource usage for the details
// report and the dashboard sparklines.
package sysmon

import (
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	ProcessRSS uint64  // resident set of this process in bytes
}

// Sample collects one snapshot. CPU uses interval=0, i.e. the delta since
// the previous call. Fields that cannot be read are left at zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	s.ProcessRSS = processRSS()
	return s
}

func processRSS() uint64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	info, err := p.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return info.RSS
}

// Host describes the machine a sweep ran on.
type Host struct {
	CPUModel    string
	LogicalCPUs int
	TotalMemory uint64
}

// HostInfo reads static host facts. Unknown values stay empty.
func HostInfo() Host {
	var h Host
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = strings.TrimSpace(infos[0].ModelName)
	}
	if n, err := cpu.Counts(true); err == nil {
		h.LogicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		h.TotalMemory = vm.Total
	}
	return h
}
