// Package scheduler runs a job on a cron schedule for the daemon mode.
package scheduler

import (
	"AppShelf/internal/logger"
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
)

// Job is the work run on every tick.
type Job func(ctx context.Context)

// Scheduler runs one job on a cron schedule. A tick that arrives while the
// previous run is still going is skipped.
type Scheduler struct {
	spec string
	job  cron.Job

	mu     sync.Mutex
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// cronLogger routes robfig/cron logging through the application logger.
type cronLogger struct {
	ctx context.Context
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Trace(l.ctx, "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Error(l.ctx, fmt.Sprintf("cron: %s: %v", msg, err), keysAndValues...)
}

// New validates spec and returns a stopped Scheduler. spec accepts the
// standard five-field syntax as well as descriptors such as "@every 1h".
func New(ctx context.Context, spec string, job Job) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	l := cronLogger{ctx: ctx}
	s := &Scheduler{spec: spec, ctx: ctx, cancel: cancel}
	s.job = cron.NewChain(cron.Recover(l), cron.SkipIfStillRunning(l)).Then(cron.FuncJob(func() {
		job(s.ctx)
	}))
	return s, nil
}

// Start begins dispatching ticks. Calling Start twice has no effect.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return nil
	}
	c := cron.New(cron.WithLogger(cronLogger{ctx: s.ctx}))
	if _, err := c.AddJob(s.spec, s.job); err != nil {
		return fmt.Errorf("register schedule %q: %w", s.spec, err)
	}
	c.Start()
	s.cron = c
	logger.Info(s.ctx, "Scheduler started with schedule '{{_Var_}}%s{{|-|}}'.", s.spec)
	return nil
}

// RunNow runs the job on the calling goroutine, unless a run is already
// in progress in which case it returns immediately.
func (s *Scheduler) RunNow() {
	s.job.Run()
}

// Stop cancels the job context and waits for a running job to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
		logger.Info(s.ctx, "Scheduler stopped.")
	}
}
