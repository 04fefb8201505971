package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnce_ExecutesEveryJob(t *testing.T) {
	scheduler := NewScheduler()

	var firstRuns, secondRuns int
	scheduler.AddJob("first", time.Hour, func(ctx context.Context) error {
		firstRuns++
		return nil
	})
	scheduler.AddJob("second", time.Hour, func(ctx context.Context) error {
		secondRuns++
		return nil
	})

	scheduler.RunOnce(context.Background())
	scheduler.RunOnce(context.Background())

	assert.Equal(t, 2, firstRuns)
	assert.Equal(t, 2, secondRuns)
}

func TestRunOnce_FailureDoesNotStopRemainingJobs(t *testing.T) {
	scheduler := NewScheduler()

	var ran bool
	scheduler.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	scheduler.AddJob("after", time.Hour, func(ctx context.Context) error {
		ran = true
		return nil
	})

	scheduler.RunOnce(context.Background())

	assert.True(t, ran)
}

func TestStop_WaitsForRegisteredJobs(t *testing.T) {
	scheduler := NewScheduler()

	done := make(chan struct{})
	scheduler.AddJob("single", time.Hour, func(ctx context.Context) error {
		select {
		case <-done:
		default:
			close(done)
		}
		return nil
	})

	scheduler.Start()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}

	scheduler.Stop()
}
