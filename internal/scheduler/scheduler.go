package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"stromvarsel/internal/pipeline"
)

// Scheduler fires the notification pipeline on a daily cron schedule.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *pipeline.Runner
}

// NewScheduler creates a new Scheduler.
func NewScheduler(runner *pipeline.Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
	}
}

// Register adds the daily price check task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the daily task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily price check")
	if err := s.Runner.RunOnce(); err != nil {
		log.Printf("[ERROR] daily run aborted: %v", err)
	}
}
