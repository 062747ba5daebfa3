package meter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

// ReportData logs the current snapshot at info level. Calls closer together than a second are
// folded into the next one.
func (m *Meter) ReportData() {
	m.mu.Lock()
	now := time.Now()
	if !m.lastReport.IsZero() && now.Sub(m.lastReport) < time.Second {
		m.mu.Unlock()
		return
	}
	m.lastReport = now
	m.mu.Unlock()

	snap := m.Snapshot()
	kv := make([]interface{}, 0, 4+2*len(snap))
	kv = append(kv, logschema.FieldComponent, m.componentMetadata, logschema.FieldEvent, logschema.EventMeterReport)
	for _, k := range sortedKeys(snap) {
		kv = append(kv, k, snap[k])
	}
	m.NotifyLoggers(types.InfoLevel, "meter report", kv...)
}

// PrintSummary writes one aligned line per metric.
func (m *Meter) PrintSummary(w io.Writer) error {
	snap := m.Snapshot()
	keys := sortedKeys(snap)
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, "elapsed", m.Elapsed().Round(time.Millisecond)); err != nil {
		return err
	}
	for _, k := range keys {
		label := k
		if strings.HasPrefix(k, types.MetricStageDurationPrefix) || strings.HasSuffix(k, "_duration_total") {
			if _, err := fmt.Fprintf(w, "%-*s  %.3fs\n", width, label, snap[k]); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%-*s  %g\n", width, label, snap[k]); err != nil {
			return err
		}
	}
	return nil
}
