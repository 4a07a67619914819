package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/drawstorm/internal/dispatcher/action"
)

// Metrics collects dispatch statistics for a manager.
type Metrics struct {
	mu sync.RWMutex

	actions map[action.Name]*ActionMetrics

	totalDispatches  uint64
	totalSuppressed  uint64
	totalConflicts   uint64
	totalPanics      uint64
	totalDuration    time.Duration
	lastConflictKeys []action.Name
}

// ActionMetrics holds statistics for one action.
type ActionMetrics struct {
	Name            action.Name
	DispatchCount   uint64
	SuppressedCount uint64
	PanicCount      uint64
	TotalDuration   time.Duration
	MinDuration     time.Duration
	MaxDuration     time.Duration
	LastSource      action.Source
	LastDispatch    time.Time
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actions: make(map[action.Name]*ActionMetrics),
	}
}

func (m *Metrics) entry(name action.Name) *ActionMetrics {
	am := m.actions[name]
	if am == nil {
		am = &ActionMetrics{Name: name}
		m.actions[name] = am
	}
	return am
}

// RecordDispatch records one performed action and how long the performer
// took to return its outcome.
func (m *Metrics) RecordDispatch(name action.Name, source action.Source, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	am := m.entry(name)
	if am.DispatchCount == 0 || duration < am.MinDuration {
		am.MinDuration = duration
	}
	if duration > am.MaxDuration {
		am.MaxDuration = duration
	}
	am.DispatchCount++
	am.TotalDuration += duration
	am.LastSource = source
	am.LastDispatch = time.Now()
}

// RecordSuppressed records a shortcut ignored because of view mode.
func (m *Metrics) RecordSuppressed(name action.Name) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalSuppressed++
	m.entry(name).SuppressedCount++
}

// RecordConflict records a key event matched by more than one action.
func (m *Metrics) RecordConflict(names []action.Name) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalConflicts++
	m.lastConflictKeys = append([]action.Name(nil), names...)
}

// RecordPanic records a recovered performer panic.
func (m *Metrics) RecordPanic(name action.Name) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++
	m.entry(name).PanicCount++
}

// TotalDispatches returns the number of performed actions.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalSuppressed returns the number of shortcuts blocked by view mode.
func (m *Metrics) TotalSuppressed() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalSuppressed
}

// TotalConflicts returns the number of ambiguous key events.
func (m *Metrics) TotalConflicts() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalConflicts
}

// LastConflict returns the names from the most recent ambiguous key event.
func (m *Metrics) LastConflict() []action.Name {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]action.Name(nil), m.lastConflictKeys...)
}

// TotalPanics returns the number of recovered performer panics.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average performer duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// ActionStats returns a copy of the statistics for one action, or nil.
func (m *Metrics) ActionStats(name action.Name) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actions[name]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// TopActions returns the n most dispatched actions.
func (m *Metrics) TopActions(n int) []*ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		c := *am
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DispatchCount != list[j].DispatchCount {
			return list[i].DispatchCount > list[j].DispatchCount
		}
		return list[i].Name < list[j].Name
	})

	if n > len(list) {
		n = len(list)
	}
	return list[:n]
}

// Reset clears all statistics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = make(map[action.Name]*ActionMetrics)
	m.totalDispatches = 0
	m.totalSuppressed = 0
	m.totalConflicts = 0
	m.totalPanics = 0
	m.totalDuration = 0
	m.lastConflictKeys = nil
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalSuppressed uint64
	TotalConflicts  uint64
	TotalPanics     uint64
	AverageDuration time.Duration
	ActionCount     int
	Timestamp       time.Time
}

// Snapshot returns the current global counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalSuppressed: m.totalSuppressed,
		TotalConflicts:  m.totalConflicts,
		TotalPanics:     m.totalPanics,
		ActionCount:     len(m.actions),
		Timestamp:       time.Now(),
	}
	if m.totalDispatches > 0 {
		s.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}
	return s
}

// AverageActionDuration returns the average performer duration for the action.
func (am *ActionMetrics) AverageActionDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}
