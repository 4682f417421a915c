package application

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

type countingStandings struct {
	StandingsService
	calls atomic.Int32
}

func (c *countingStandings) SyncAll() error {
	c.calls.Add(1)
	return nil
}

func TestSheetSyncJobRejectsZeroInterval(t *testing.T) {
	job := NewSheetSyncJob(0, &countingStandings{}, nopLogger{})
	assert.NotEqual(t, nil, job.Init())
	job.Stop()
}

func TestSheetSyncJobRuns(t *testing.T) {
	counter := &countingStandings{}
	job := NewSheetSyncJob(20*time.Millisecond, counter, nopLogger{})
	assert.Equal(t, nil, job.Init())

	job.Run(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for counter.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	job.Stop()

	assert.T(t, counter.calls.Load() > 0, "sync never ran")
}
