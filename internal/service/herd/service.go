// Package herd implements the cattle workflows: dashboard counters, the
// filtered list, record management and the composite health event save.
package herd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/repository/sqlstore"
	"github.com/mamadbah2/herd/internal/validation"
)

// ErrNotFound is returned for unknown animals.
var ErrNotFound = sqlstore.ErrNotFound

// Store is the persistence the service needs.
type Store interface {
	Summary(ctx context.Context) (models.HerdSummary, error)
	ListCattle(ctx context.Context, filter sqlstore.CattleFilter) ([]models.Cattle, error)
	GetCattle(ctx context.Context, id uint, withChecks bool) (*models.Cattle, error)
	SaveCattle(ctx context.Context, c *models.Cattle, status *models.Status, fallbackDate models.Date) error
	DeleteCattle(ctx context.Context, id uint) (*models.Cattle, error)
	LatestHealthCheck(ctx context.Context, cattleID uint) (*models.HealthCheck, error)
	SaveHealthEvent(ctx context.Context, cattleID uint, ev models.HealthEvent) error
}

// Recorder receives domain counters.
type Recorder interface {
	HealthEventSaved()
}

// Service implements the herd workflows.
type Service struct {
	store    Store
	recorder Recorder
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a herd service. loc is the farm's time zone, used for
// "today".
func NewService(store Store, recorder Recorder, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, recorder: recorder, loc: loc, logger: logger, now: time.Now}
}

// Today is the current date in the farm's time zone.
func (s *Service) Today() models.Date {
	return models.DateOf(s.now().In(s.loc))
}

// Dashboard carries the dashboard counters and the herd with derived status.
type Dashboard struct {
	Summary models.HerdSummary
	Cattle  []models.Cattle
}

// Dashboard loads the counters and every animal.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	summary, err := s.store.Summary(ctx)
	if err != nil {
		return nil, err
	}
	herd, err := s.store.ListCattle(ctx, sqlstore.CattleFilter{})
	if err != nil {
		return nil, err
	}
	return &Dashboard{Summary: summary, Cattle: herd}, nil
}

// ListQuery mirrors the list page query string.
type ListQuery struct {
	Q       string
	ForSale bool
	Sick    bool
}

// List returns the filtered herd. ForSale takes precedence over Sick.
func (s *Service) List(ctx context.Context, q ListQuery) ([]models.Cattle, error) {
	filter := sqlstore.CattleFilter{Query: q.Q}
	switch {
	case q.ForSale:
		filter.Status = models.StatusForSale
	case q.Sick:
		filter.Status = models.StatusSick
	}
	return s.store.ListCattle(ctx, filter)
}

// All returns every animal with health checks, for selection lists and the REST API.
func (s *Service) All(ctx context.Context) ([]models.Cattle, error) {
	return s.store.ListCattle(ctx, sqlstore.CattleFilter{WithChecks: true})
}

// Detail loads one animal with its health checks, newest first.
func (s *Service) Detail(ctx context.Context, id uint) (*models.Cattle, error) {
	return s.store.GetCattle(ctx, id, true)
}

// Save validates and stores an animal, creating it when c.ID is zero. A
// non-nil status is written through to the latest health check.
func (s *Service) Save(ctx context.Context, c *models.Cattle, status *models.Status) error {
	errs := validation.Errors{}
	if err := validation.Struct(c); err != nil {
		verrs, ok := validation.As(err)
		if !ok {
			return err
		}
		errs.Merge("", verrs)
	}
	if status != nil && !status.Valid() {
		errs.Add("status", "oneof", "")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	err := s.store.SaveCattle(ctx, c, status, s.Today())
	if errors.Is(err, sqlstore.ErrDuplicateTag) {
		dup := validation.Errors{}
		dup.Add("tag_no", "unique", "")
		return dup
	}
	return err
}

// Delete removes an animal and all of its records.
func (s *Service) Delete(ctx context.Context, id uint) (*models.Cattle, error) {
	return s.store.DeleteCattle(ctx, id)
}

// InitialStatus is the status pre-selected on the health check form: the
// derived status, healthy when the animal was never checked.
func (s *Service) InitialStatus(ctx context.Context, id uint) (models.Status, error) {
	hc, err := s.store.LatestHealthCheck(ctx, id)
	switch {
	case err == nil:
		return hc.Status, nil
	case errors.Is(err, sqlstore.ErrNotFound):
		return models.StatusHealthy, nil
	default:
		return "", err
	}
}

// Form prefixes of the composite health event.
const (
	PrefixCheck       = "hc"
	PrefixVaccination = "vax"
	PrefixRation      = "ration"
	PrefixEvent       = "cal"
)

// SaveHealthEvent validates the mandatory health check and each optional
// record present in ev, then writes them all in one transaction. Validation
// failures come back as validation.Errors keyed "<prefix>-<field>".
func (s *Service) SaveHealthEvent(ctx context.Context, cattleID uint, ev models.HealthEvent) error {
	if ev.Check == nil {
		return errors.New("health check is required")
	}

	// The owner is assigned here so "cattle" never fails validation.
	ev.Check.CattleID = cattleID
	errs := validation.Errors{}
	parts := []struct {
		prefix string
		record any
		set    bool
	}{
		{PrefixCheck, ev.Check, true},
		{PrefixVaccination, ev.Vaccination, ev.Vaccination != nil},
		{PrefixRation, ev.Ration, ev.Ration != nil},
		{PrefixEvent, ev.Event, ev.Event != nil},
	}
	if ev.Vaccination != nil {
		ev.Vaccination.CattleID = cattleID
	}
	if ev.Ration != nil {
		ev.Ration.CattleID = cattleID
	}
	if ev.Event != nil {
		ev.Event.CattleID = cattleID
		ev.Event.Start = ev.Event.Start.UTC()
		end := ev.Event.Start
		if ev.Event.End != nil {
			end = ev.Event.End.UTC()
		}
		ev.Event.End = &end
	}

	for _, part := range parts {
		if !part.set {
			continue
		}
		if err := validation.Struct(part.record); err != nil {
			verrs, ok := validation.As(err)
			if !ok {
				return err
			}
			errs.Merge(part.prefix, verrs)
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}

	if err := s.store.SaveHealthEvent(ctx, cattleID, ev); err != nil {
		if errors.Is(err, sqlstore.ErrNotFound) {
			return err
		}
		return fmt.Errorf("save health event: %w", err)
	}
	if s.recorder != nil {
		s.recorder.HealthEventSaved()
	}
	return nil
}
