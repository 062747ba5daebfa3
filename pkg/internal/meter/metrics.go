package meter

import (
	"sort"
	"time"
)

// IncrementCount adds one to a counter.
func (m *Meter) IncrementCount(name string) {
	m.AddToCount(name, 1)
}

// AddToCount adds delta to a counter.
func (m *Meter) AddToCount(name string, delta uint64) {
	m.mu.Lock()
	m.counts[name] += delta
	m.mu.Unlock()
}

// GetMetricCount returns a counter value.
func (m *Meter) GetMetricCount(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}

// AddDuration accumulates d under name.
func (m *Meter) AddDuration(name string, d time.Duration) {
	m.mu.Lock()
	m.durations[name] += d
	m.mu.Unlock()
}

// GetDuration returns an accumulated duration.
func (m *Meter) GetDuration(name string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.durations[name]
}

// StartTimer records a start time for name.
func (m *Meter) StartTimer(name string) {
	m.mu.Lock()
	m.startTimes[name] = time.Now()
	m.mu.Unlock()
}

// StopTimer adds the time since StartTimer to the named duration and returns it.
// Stopping a timer that was never started returns zero.
func (m *Meter) StopTimer(name string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	start, ok := m.startTimes[name]
	if !ok {
		return 0
	}
	delete(m.startTimes, name)
	d := time.Since(start)
	m.durations[name] += d
	return d
}

// SetGauge stores a point-in-time value.
func (m *Meter) SetGauge(name string, value float64) {
	m.mu.Lock()
	m.gauges[name] = value
	m.mu.Unlock()
}

// GetGauge returns a gauge value.
func (m *Meter) GetGauge(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gauges[name]
}

// Snapshot returns every counter, gauge and duration (in seconds) under one map.
func (m *Meter) Snapshot() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.counts)+len(m.gauges)+len(m.durations))
	for k, v := range m.counts {
		out[k] = float64(v)
	}
	for k, v := range m.gauges {
		out[k] = v
	}
	for k, v := range m.durations {
		out[k] = v.Seconds()
	}
	return out
}

func sortedKeys(snapshot map[string]float64) []string {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
