package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckRecordsFailuresAndRecovery(t *testing.T) {
	var next error
	m := New(pingFunc(func(context.Context) error { return next }), time.Second)

	_, ok := m.Status()
	assert.False(t, ok)

	next = &backend.TransportError{Op: "ping", Err: errors.New("connection refused")}
	m.Check(context.Background())
	st := m.Check(context.Background())
	assert.False(t, st.Reachable)
	assert.Equal(t, 2, st.ConsecutiveFailures)
	assert.Contains(t, st.Error, "connection refused")

	next = nil
	st = m.Check(context.Background())
	assert.True(t, st.Reachable)
	assert.Zero(t, st.ConsecutiveFailures)
	assert.Empty(t, st.Error)

	last, ok := m.Status()
	assert.True(t, ok)
	assert.Equal(t, st, last)
}

func TestCheckTreatsAuthRejectionAsReachable(t *testing.T) {
	m := New(pingFunc(func(context.Context) error {
		return fmt.Errorf("ping: %w", backend.ErrUnauthenticated)
	}), time.Second)

	assert.True(t, m.Check(context.Background()).Reachable)
}

func TestCheckAppliesTimeout(t *testing.T) {
	m := New(pingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}), 10*time.Millisecond)

	st := m.Check(context.Background())
	assert.False(t, st.Reachable)
	assert.Contains(t, st.Error, "deadline exceeded")
}

func TestSchedule(t *testing.T) {
	m := New(pingFunc(func(context.Context) error { return nil }), time.Second)

	assert.Error(t, m.Schedule("not a schedule"))
	assert.True(t, m.NextRun().IsZero())

	require.NoError(t, m.Schedule("@every 1m"))
	require.NoError(t, m.Schedule("@every 2m"))
	assert.Len(t, m.cron.Entries(), 1)

	m.Start()
	defer m.Stop()
	assert.Eventually(t, func() bool { return !m.NextRun().IsZero() }, time.Second, 10*time.Millisecond)
}
