// Package worker runs the periodic maintenance jobs of the server.
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/bizdesk/internal/domain/job"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/metrics"
)

// Func performs one run of a job and reports how many records it touched
type Func func(ctx context.Context) (int64, error)

// historySize is the number of executions kept per job
const historySize = 20

type registration struct {
	name     job.Name
	schedule string
	run      Func
	entryID  cron.EntryID
	history  []*job.Execution
}

// Scheduler runs registered jobs on cron schedules
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  *logger.Logger

	mu   sync.RWMutex
	jobs map[job.Name]*registration

	runningMutex sync.Mutex
	isRunning    bool
}

// NewScheduler creates a scheduler. Each run is cancelled after timeout.
func NewScheduler(timeout time.Duration, log *logger.Logger) *Scheduler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		timeout: timeout,
		logger:  log,
		jobs:    make(map[job.Name]*registration),
	}
}

// Register adds a job with a standard five-field cron schedule
func (s *Scheduler) Register(name job.Name, schedule string, run Func) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule for %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job %s is already registered", name)
	}
	reg := &registration{name: name, schedule: schedule, run: run}
	entryID, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.execute(context.Background(), reg, "schedule"); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"job": name,
			}).ErrorWithErr(err, "Scheduled job failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	reg.entryID = entryID
	s.jobs[name] = reg

	s.logger.WithFields(map[string]interface{}{
		"job":      name,
		"schedule": schedule,
	}).Info("Job scheduled")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()
	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true

	s.mu.RLock()
	n := len(s.jobs)
	s.mu.RUnlock()
	s.logger.WithFields(map[string]interface{}{
		"jobs_loaded": n,
	}).Info("Job scheduler started")
}

// Stop stops the scheduler and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()
	if !s.isRunning {
		return
	}
	done := s.cron.Stop()
	s.isRunning = false

	select {
	case <-done.Done():
		s.logger.Info("Job scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Job scheduler stopped before running jobs finished")
	}
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()
	return s.isRunning
}

// Trigger runs a job immediately and waits for it
func (s *Scheduler) Trigger(ctx context.Context, name job.Name) (*job.Execution, error) {
	s.mu.RLock()
	reg, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("Job")
	}
	return s.execute(ctx, reg, "manual")
}

// Entries lists registered jobs with their next and last runs
func (s *Scheduler) Entries() []job.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]job.Entry, 0, len(s.jobs))
	for _, reg := range s.jobs {
		e := job.Entry{Name: reg.name, Schedule: reg.schedule}
		if next := s.cron.Entry(reg.entryID).Next; !next.IsZero() {
			e.NextRun = &next
		}
		if n := len(reg.history); n > 0 {
			last := *reg.history[n-1]
			e.LastRun = &last
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// History returns the recent executions of a job, newest first
func (s *Scheduler) History(name job.Name) ([]*job.Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.jobs[name]
	if !ok {
		return nil, errors.NotFound("Job")
	}
	out := make([]*job.Execution, 0, len(reg.history))
	for i := len(reg.history) - 1; i >= 0; i-- {
		cp := *reg.history[i]
		out = append(out, &cp)
	}
	return out, nil
}

// execute runs a job and records the execution
func (s *Scheduler) execute(ctx context.Context, reg *registration, trigger string) (*job.Execution, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now().UTC()
	execution := &job.Execution{
		ID:        uuid.New().String(),
		Job:       reg.name,
		Status:    job.ExecutionStatusRunning,
		Trigger:   trigger,
		StartedAt: started,
	}

	affected, err := reg.run(ctx)

	completed := time.Now().UTC()
	execution.CompletedAt = &completed
	execution.DurationMs = completed.Sub(started).Milliseconds()
	execution.Affected = affected

	if err != nil {
		execution.Status = job.ExecutionStatusFailed
		execution.ErrorMessage = errors.UserMessage(err)
		metrics.RecordJobRun(string(reg.name), "failed")
		s.logger.WithFields(map[string]interface{}{
			"job":          reg.name,
			"execution_id": execution.ID,
		}).ErrorWithErr(err, "Job execution failed")
	} else {
		execution.Status = job.ExecutionStatusCompleted
		metrics.RecordJobRun(string(reg.name), "completed")
		s.logger.WithFields(map[string]interface{}{
			"job":          reg.name,
			"execution_id": execution.ID,
			"affected":     affected,
			"duration_ms":  execution.DurationMs,
		}).Info("Job execution completed")
	}

	s.mu.Lock()
	reg.history = append(reg.history, execution)
	if len(reg.history) > historySize {
		reg.history = reg.history[len(reg.history)-historySize:]
	}
	s.mu.Unlock()

	cp := *execution
	return &cp, err
}
