package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func countingJob(counter *atomic.Int32, err error) Job {
	return JobFunc{JobName: "test", Fn: func(ctx context.Context) error {
		counter.Add(1)
		return err
	}}
}

func TestCronTrigger_RunsOncePerDayAfterDueTime(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	var runs atomic.Int32
	trigger := NewCronTrigger(CronTriggerConfig{Hour: 9, Minute: 30, CheckInterval: time.Minute, Location: tokyo},
		countingJob(&runs, nil), zap.NewNop())

	clock := time.Date(2024, 4, 1, 9, 29, 0, 0, tokyo)
	trigger.now = func() time.Time { return clock }
	ctx := context.Background()

	assert.False(t, trigger.checkAndTrigger(ctx))

	clock = time.Date(2024, 4, 1, 9, 33, 0, 0, tokyo)
	assert.True(t, trigger.checkAndTrigger(ctx))
	assert.False(t, trigger.checkAndTrigger(ctx))

	clock = time.Date(2024, 4, 2, 9, 30, 0, 0, tokyo)
	assert.True(t, trigger.checkAndTrigger(ctx))
	assert.Equal(t, int32(2), runs.Load())
}

func TestCronTrigger_UsesConfiguredLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	var runs atomic.Int32
	trigger := NewCronTrigger(CronTriggerConfig{Hour: 8, CheckInterval: time.Minute, Location: tokyo},
		countingJob(&runs, nil), zap.NewNop())

	// 23:00 UTC is 08:00 the next day in Tokyo.
	trigger.now = func() time.Time { return time.Date(2024, 4, 1, 23, 0, 0, 0, time.UTC) }
	assert.True(t, trigger.checkAndTrigger(context.Background()))
	assert.Equal(t, "2024-04-02", trigger.lastRunDate)
}

func TestCronTrigger_JobErrorIsLogged(t *testing.T) {
	var runs atomic.Int32
	trigger := NewCronTrigger(DefaultCronTriggerConfig(), countingJob(&runs, errors.New("boom")), zap.NewNop())
	err := trigger.RunNow(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), runs.Load())
}

func TestCronTrigger_RunNowRejectsOverlap(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	job := JobFunc{JobName: "slow", Fn: func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}}
	trigger := NewCronTrigger(DefaultCronTriggerConfig(), job, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- trigger.RunNow(context.Background()) }()
	<-started
	assert.ErrorIs(t, trigger.RunNow(context.Background()), ErrAlreadyRunning)
	close(release)
	require.NoError(t, <-done)
}

func TestCronTrigger_StartStop(t *testing.T) {
	var runs atomic.Int32
	trigger := NewCronTrigger(CronTriggerConfig{Hour: 0, Minute: 0, CheckInterval: 10 * time.Millisecond},
		countingJob(&runs, nil), zap.NewNop())

	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Start(context.Background()))
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, trigger.Stop(ctx))
	require.NoError(t, trigger.Stop(ctx))
}

func TestCronTriggerConfigFrom(t *testing.T) {
	cfg, err := CronTriggerConfigFrom(config.SchedulerConfig{Hour: 7, Minute: 15, Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Hour)
	assert.Equal(t, time.Minute, cfg.CheckInterval)
	assert.Equal(t, "UTC", cfg.Location.String())

	_, err = CronTriggerConfigFrom(config.SchedulerConfig{Hour: 24})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = CronTriggerConfigFrom(config.SchedulerConfig{Timezone: "Mars/Olympus"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
