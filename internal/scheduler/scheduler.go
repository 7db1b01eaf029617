package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/config"
	"github.com/mamadbah2/herd/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// ReminderJob creates and dispatches vaccination reminders.
type ReminderJob interface {
	Run(ctx context.Context) error
}

// SnapshotJob records the daily herd snapshot.
type SnapshotJob interface {
	RunDailySnapshot(ctx context.Context) (models.HerdSnapshot, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	reminders ReminderJob
	snapshots SnapshotJob
	cfg       config.Config
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. Cron expressions are
// evaluated in the configured farm time zone. Either job may be nil.
func NewScheduler(cfg config.Config, reminders ReminderJob, snapshots SnapshotJob, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cron.New(
		cron.WithLocation(cfg.Locale.Location()),
		cron.WithLogger(cronLogger{logger.Sugar()}),
		cron.WithChain(cron.Recover(cronLogger{logger.Sugar()}), cron.SkipIfStillRunning(cronLogger{logger.Sugar()})),
	)

	return &Scheduler{
		cron:      c,
		reminders: reminders,
		snapshots: snapshots,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.reminders != nil {
		if _, err := s.cron.AddFunc(s.cfg.Reminders.CronSchedule, s.runReminders); err != nil {
			return fmt.Errorf("schedule reminders %q: %w", s.cfg.Reminders.CronSchedule, err)
		}
	}
	if s.snapshots != nil {
		if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runSnapshot); err != nil {
			return fmt.Errorf("schedule herd snapshot %q: %w", s.cfg.Reporting.CronSchedule, err)
		}
	}

	s.logger.Info("starting scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.reminders.Run(ctx); err != nil {
		s.logger.Error("vaccination reminder run failed", zap.Error(err))
		return
	}
	s.logger.Info("vaccination reminders processed")
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	snap, err := s.snapshots.RunDailySnapshot(ctx)
	if err != nil {
		s.logger.Error("herd snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("herd snapshot recorded", zap.String("date", snap.Date), zap.Int64("total", snap.Total))
}

// cronLogger routes cron's own logging to zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
