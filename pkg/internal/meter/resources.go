package meter

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
)

// SampleResources records CPU, RAM and goroutine gauges.
func (m *Meter) SampleResources() {
	if m.sampleCPU {
		if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
			m.SetGauge(types.MetricCurrentCpuPercentage, pct[0])
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		m.SetGauge(types.MetricCurrentRamPercentage, vm.UsedPercent)
	}

	n := float64(runtime.NumGoroutine())
	m.mu.Lock()
	m.gauges[types.MetricCurrentGoRoutines] = n
	if n > m.gauges[types.MetricPeakGoRoutines] {
		m.gauges[types.MetricPeakGoRoutines] = n
	}
	m.counts[types.MetricResourceSamplesCounted]++
	m.mu.Unlock()
}

func (m *Meter) sampleLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SampleResources()
		}
	}
}
