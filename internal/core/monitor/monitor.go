package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Pinger checks the accounting API.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the outcome of the latest check.
type Status struct {
	Reachable           bool          `json:"reachable"`
	Latency             time.Duration `json:"latency_ns"`
	CheckedAt           time.Time     `json:"checked_at"`
	Error               string        `json:"error,omitempty"`
	ConsecutiveFailures int           `json:"consecutive_failures"`
}

// Monitor checks the API on a cron schedule and keeps the last result.
type Monitor struct {
	pinger  Pinger
	timeout time.Duration
	cron    *cron.Cron

	mu      sync.RWMutex
	status  Status
	checked bool
	entry   cron.EntryID
}

func New(p Pinger, timeout time.Duration) *Monitor {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Monitor{
		pinger:  p,
		timeout: timeout,
		cron:    cron.New(),
	}
}

// Schedule registers the check. expr is a standard cron expression or a
// descriptor such as "@every 1m". Calling it again replaces the schedule.
func (m *Monitor) Schedule(expr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entry != 0 {
		m.cron.Remove(m.entry)
		m.entry = 0
	}

	id, err := m.cron.AddFunc(expr, func() { m.Check(context.Background()) })
	if err != nil {
		return fmt.Errorf("failed to schedule backend check: %w", err)
	}
	m.entry = id
	return nil
}

func (m *Monitor) Start() {
	log.Info().Msg("starting backend monitor")
	m.cron.Start()
}

// Stop stops the schedule and waits for a running check to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	log.Info().Msg("backend monitor stopped")
}

// Check pings the API once and records the result. An authentication
// rejection still proves the API is up.
func (m *Monitor) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	err := m.pinger.Ping(ctx)
	latency := time.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()

	next := Status{
		Latency:   latency,
		CheckedAt: start,
	}
	if err == nil || errors.Is(err, backend.ErrUnauthenticated) {
		next.Reachable = true
	} else {
		next.Error = err.Error()
		next.ConsecutiveFailures = m.status.ConsecutiveFailures + 1
		log.Warn().Err(err).Int("failures", next.ConsecutiveFailures).Msg("backend check failed")
	}

	if next.Reachable && m.checked && !m.status.Reachable {
		log.Info().Dur("latency", latency).Msg("backend reachable again")
	}

	m.status = next
	m.checked = true
	return next
}

// Status returns the last check result; ok is false before the first check.
func (m *Monitor) Status() (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status, m.checked
}

// NextRun reports when the check runs next, or the zero time when it is not
// scheduled or the monitor is not started.
func (m *Monitor) NextRun() time.Time {
	m.mu.RLock()
	entry := m.entry
	m.mu.RUnlock()

	if entry == 0 {
		return time.Time{}
	}
	return m.cron.Entry(entry).Next
}
