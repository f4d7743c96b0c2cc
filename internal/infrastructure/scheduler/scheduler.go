package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"hairconnect/pkg/logger"
)

// Scheduler runs named maintenance jobs on cron specs. Runs of the same job
// never overlap.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		timeout: 10 * time.Minute,
	}
}

// Add registers fn under spec, e.g. "@hourly" or "0 3 * * *".
func (s *Scheduler) Add(name, spec string, fn func(ctx context.Context) error) error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		started := time.Now()
		if err := fn(ctx); err != nil {
			logger.Error("Scheduled job %s failed: %v", name, err)
			return
		}
		logger.Info("Scheduled job %s completed in %s", name, time.Since(started).Round(time.Millisecond))
	}))

	if _, err := s.cron.AddJob(spec, job); err != nil {
		return err
	}
	logger.Info("Scheduled job %s registered (%s)", name, spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
