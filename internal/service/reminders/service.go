// Package reminders turns upcoming vaccination due dates into notifications
// and delivers pending ones over WhatsApp.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
)

// Store is the persistence the reminder sweep needs.
type Store interface {
	DueVaccinations(ctx context.Context, from, to models.Date) ([]models.Vaccination, error)
	CattleByIDs(ctx context.Context, ids []uint) (map[uint]models.Cattle, error)
	CreateReminders(ctx context.Context, reminders []models.Notification) ([]models.Notification, error)
	UnsentNotifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationSent(ctx context.Context, id uint, at time.Time) error
}

// Sender delivers outbound messages.
type Sender interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Recorder receives reminder counters.
type Recorder interface {
	RemindersCreated(n int)
	MessageSent(err error)
}

// Options configures the service. Sender and NotifyTo are optional; without
// them notifications are only stored.
type Options struct {
	LeadDays   int
	NotifyTo   string
	Location   *time.Location
	Translator *i18n.Translator
	Lang       i18n.Lang
}

// Service implements the reminder sweep and dispatch.
type Service struct {
	store    Store
	sender   Sender
	recorder Recorder
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a reminder service.
func NewService(store Store, sender Sender, recorder Recorder, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{store: store, sender: sender, recorder: recorder, opts: opts, logger: logger, now: time.Now}
}

// Sweep creates one pending vaccine notification for every vaccination due
// within the lead window that has none yet. It returns the number created.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	today := models.DateOf(s.now().In(s.opts.Location))
	due, err := s.store.DueVaccinations(ctx, today, today.AddDays(s.opts.LeadDays))
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(due))
	for _, v := range due {
		ids = append(ids, v.CattleID)
	}
	herd, err := s.store.CattleByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	pending := make([]models.Notification, 0, len(due))
	for _, v := range due {
		label := herd[v.CattleID].TagNo
		pending = append(pending, models.Notification{
			CattleID:      v.CattleID,
			Type:          models.NotificationVaccine,
			Message:       s.opts.Translator.T(s.opts.Lang, "reminder.vaccine", v.VaccineName, label, v.NextDueDate.String()),
			NotifyDate:    today,
			Status:        models.NotificationPending,
			VaccinationID: &v.ID,
		})
	}

	created, err := s.store.CreateReminders(ctx, pending)
	if err != nil {
		return 0, err
	}
	if s.recorder != nil {
		s.recorder.RemindersCreated(len(created))
	}
	s.logger.Info("reminder sweep finished", zap.Int("due", len(due)), zap.Int("created", len(created)))
	return len(created), nil
}

// Dispatch sends every pending unsent notification and stamps it. It is a
// no-op when WhatsApp delivery is not configured.
func (s *Service) Dispatch(ctx context.Context) (int, error) {
	if s.sender == nil || s.opts.NotifyTo == "" {
		return 0, nil
	}

	unsent, err := s.store.UnsentNotifications(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	var errs []error
	for _, n := range unsent {
		err := s.sender.SendOutbound(ctx, models.OutboundMessageRequest{To: s.opts.NotifyTo, Message: n.Message})
		if s.recorder != nil {
			s.recorder.MessageSent(err)
		}
		if err != nil {
			s.logger.Error("failed to send reminder", zap.Uint("notification_id", n.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("notification %d: %w", n.ID, err))
			continue
		}
		if err := s.store.MarkNotificationSent(ctx, n.ID, s.now().UTC()); err != nil {
			errs = append(errs, err)
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}

// Run performs a sweep followed by a dispatch.
func (s *Service) Run(ctx context.Context) error {
	if _, err := s.Sweep(ctx); err != nil {
		return fmt.Errorf("reminder sweep: %w", err)
	}
	if _, err := s.Dispatch(ctx); err != nil {
		return fmt.Errorf("reminder dispatch: %w", err)
	}
	return nil
}
