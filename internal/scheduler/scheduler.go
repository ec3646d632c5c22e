// Package scheduler runs the background due-check loop for the reminder
// daemon.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/PixelCode01/syllabo/internal/config"
	"github.com/PixelCode01/syllabo/internal/notify"
	"github.com/PixelCode01/syllabo/internal/spaced_repetition"
)

// Scheduler periodically loads the due list and hands it to the
// dispatcher. It only ever reads scheduler state; marking reviews stays
// with the CLI.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	engine     *spaced_repetition.Engine
	dispatcher *notify.Dispatcher
	cfg        config.NotificationConfig
	log        *zap.Logger
}

// New creates a scheduler around the engine and dispatcher.
func New(engine *spaced_repetition.Engine, dispatcher *notify.Dispatcher, cfg config.NotificationConfig, log *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.Local),
		engine:     engine,
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        log,
	}
}

// Start begins the periodic due check without blocking.
func (s *Scheduler) Start() {
	if _, err := s.scheduler.Every(time.Duration(s.cfg.CheckInterval)).Do(s.checkDueTopics); err != nil {
		s.log.Error("failed to schedule due check", zap.Error(err))
		return
	}
	s.scheduler.StartAsync()
}

// Stop terminates the loop.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunManualCheck forces one due check regardless of notification hours.
func (s *Scheduler) RunManualCheck(ctx context.Context) error {
	due, err := s.engine.ListDue(ctx, time.Now())
	if err != nil {
		return err
	}
	s.dispatcher.Dispatch(due)
	return nil
}

func (s *Scheduler) checkDueTopics() {
	now := time.Now()
	if now.Hour() < s.cfg.StartHour || now.Hour() > s.cfg.EndHour {
		s.log.Debug("outside notification hours, skipping due check",
			zap.Int("hour", now.Hour()),
			zap.Int("start_hour", s.cfg.StartHour),
			zap.Int("end_hour", s.cfg.EndHour))
		return
	}

	due, err := s.engine.ListDue(context.Background(), now)
	if err != nil {
		s.log.Error("due check failed", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}
	s.log.Info("dispatching due reminders", zap.Int("due_topics", len(due)))
	s.dispatcher.Dispatch(due)
}
