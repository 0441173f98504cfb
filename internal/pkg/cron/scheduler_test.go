package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (c *countingSweeper) Sweep(context.Context) (int, error) {
	c.calls.Add(1)
	return 3, c.err
}

func TestScheduler_RunsJobsUntilStopped(t *testing.T) {
	s := NewScheduler(context.Background())
	sweeper := &countingSweeper{}
	s.AddJob("sweep", 5*time.Millisecond, SweepJob("sweep", sweeper))
	s.Start()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := sweeper.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, sweeper.calls.Load(), "no runs after Stop")
}

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(context.Background())
	s.AddJob("never", 0, func(context.Context) error { return nil })
	assert.Empty(t, s.jobs)

	s.AddJob("ok", time.Hour, func(context.Context) error { return nil })
	s.Start()
	defer s.Stop()

	s.AddJob("late", time.Hour, func(context.Context) error { return nil })
	assert.Len(t, s.jobs, 1)
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	s := NewScheduler(context.Background())
	failing := &countingSweeper{err: errors.New("boom")}
	ok := &countingSweeper{}
	s.AddJob("failing", time.Hour, SweepJob("failing", failing))
	s.AddJob("ok", time.Hour, SweepJob("ok", ok))

	s.RunOnce(context.Background())

	assert.EqualValues(t, 1, failing.calls.Load())
	assert.EqualValues(t, 1, ok.calls.Load())
}
