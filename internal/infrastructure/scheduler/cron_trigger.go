package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Job is a unit of scheduled work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function into a named Job.
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

func (f JobFunc) Name() string                  { return f.JobName }
func (f JobFunc) Run(ctx context.Context) error { return f.Fn(ctx) }

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	Hour          int
	Minute        int
	CheckInterval time.Duration
	Location      *time.Location
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		Hour:          8,
		Minute:        0,
		CheckInterval: time.Minute,
		Location:      time.Local,
	}
}

// CronTriggerConfigFrom converts the scheduler section of the app config.
func CronTriggerConfigFrom(cfg config.SchedulerConfig) (CronTriggerConfig, error) {
	out := DefaultCronTriggerConfig()
	out.Hour = cfg.Hour
	out.Minute = cfg.Minute
	if cfg.CheckInterval > 0 {
		out.CheckInterval = cfg.CheckInterval
	}
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return out, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, cfg.Timezone, err)
		}
		out.Location = loc
	}
	return out, out.Validate()
}

// Validate checks the trigger time.
func (c CronTriggerConfig) Validate() error {
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("%w: hour must be 0-23", ErrInvalidConfig)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("%w: minute must be 0-59", ErrInvalidConfig)
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("%w: check interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// CronTrigger runs a job once a day at a fixed wall-clock time.
type CronTrigger struct {
	config CronTriggerConfig
	job    Job
	logger *zap.Logger
	now    func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	jobRunning  bool
	lastRunDate string
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(cfg CronTriggerConfig, job Job, logger *zap.Logger) *CronTrigger {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &CronTrigger{
		config: cfg,
		job:    job,
		logger: logger,
		now:    time.Now,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.String("job", c.job.Name()),
		zap.Int("hour", c.config.Hour),
		zap.Int("minute", c.config.Minute),
		zap.String("timezone", c.config.Location.String()),
		zap.Duration("check_interval", c.config.CheckInterval),
	)
	return nil
}

// Stop stops the cron trigger and waits for an in-flight run.
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped", zap.String("job", c.job.Name()))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger runs the job if the configured time has been reached
// today and it has not yet run today. A check that lands a few minutes
// late still fires.
func (c *CronTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now().In(c.config.Location)
	currentDate := now.Format("2006-01-02")
	due := time.Date(now.Year(), now.Month(), now.Day(), c.config.Hour, c.config.Minute, 0, 0, c.config.Location)

	c.mu.Lock()
	if c.lastRunDate == currentDate || now.Before(due) {
		c.mu.Unlock()
		return false
	}
	c.lastRunDate = currentDate
	c.mu.Unlock()

	c.logger.Info("Triggering scheduled job", zap.String("job", c.job.Name()))
	if err := c.RunNow(ctx); err != nil {
		c.logger.Error("Scheduled job failed", zap.String("job", c.job.Name()), zap.Error(err))
	}
	return true
}

// RunNow runs the job immediately unless a run is already in progress.
func (c *CronTrigger) RunNow(ctx context.Context) error {
	c.mu.Lock()
	if c.jobRunning {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	c.jobRunning = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.jobRunning = false
		c.mu.Unlock()
	}()

	start := c.now()
	err := c.job.Run(ctx)
	c.logger.Info("Scheduled job finished",
		zap.String("job", c.job.Name()),
		zap.Duration("duration", c.now().Sub(start)),
		zap.Bool("success", err == nil),
	)
	return err
}
