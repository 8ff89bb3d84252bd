package monitoring

import (
	"log"
	"sync"
	"time"
)

// Monitor tracks the outcome of analysis runs for the health endpoints.
type Monitor struct {
	mu             sync.Mutex
	lastRunSuccess bool
	lastRunTime    time.Time
	lastSummary    string
	totalRuns      int
	failedRuns     int
}

// Status is a point-in-time snapshot of run outcomes. A process with
// no runs yet reports healthy.
type Status struct {
	Healthy     bool      `json:"healthy"`
	TotalRuns   int       `json:"total_runs"`
	FailedRuns  int       `json:"failed_runs"`
	LastRunTime time.Time `json:"last_run_time,omitempty"`
	LastSummary string    `json:"last_summary,omitempty"`
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.lastSummary = summary
	m.totalRuns++

	log.Printf("Analysis run completed - %s (took %v)", summary, duration)
}

func (m *Monitor) RecordFailure(err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastRunSuccess = false
	m.lastRunTime = time.Now()
	m.lastSummary = err.Error()
	m.totalRuns++
	m.failedRuns++

	log.Printf("Analysis run failed: %v (took %v)", err, duration)
}

func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Status{
		Healthy:     m.totalRuns == 0 || m.lastRunSuccess,
		TotalRuns:   m.totalRuns,
		FailedRuns:  m.failedRuns,
		LastRunTime: m.lastRunTime,
		LastSummary: m.lastSummary,
	}
}
