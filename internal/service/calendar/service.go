// Package calendar manages farm calendar events and renders the JSON feeds
// consumed by the calendar widget.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/repository/sqlstore"
	"github.com/mamadbah2/herd/internal/validation"
)

// ErrNotFound is returned for unknown events.
var ErrNotFound = sqlstore.ErrNotFound

// EventStore persists calendar events.
type EventStore interface {
	List(ctx context.Context, cattleID uint) ([]models.CalendarEvent, error)
	Get(ctx context.Context, id uint) (*models.CalendarEvent, error)
	Create(ctx context.Context, ev *models.CalendarEvent) error
	Update(ctx context.Context, ev *models.CalendarEvent) error
	Delete(ctx context.Context, id uint) error
}

// CattleLookup resolves the animals events belong to.
type CattleLookup interface {
	CattleByIDs(ctx context.Context, ids []uint) (map[uint]models.Cattle, error)
}

// Service implements calendar management.
type Service struct {
	events     EventStore
	cattle     CattleLookup
	translator *i18n.Translator
	loc        *time.Location
	logger     *zap.Logger
}

// NewService wires a calendar service. Feed timestamps are rendered in loc.
func NewService(events EventStore, cattle CattleLookup, translator *i18n.Translator, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{events: events, cattle: cattle, translator: translator, loc: loc, logger: logger}
}

// Location is the zone event times are entered and displayed in.
func (s *Service) Location() *time.Location { return s.loc }

// List returns every event ordered by start.
func (s *Service) List(ctx context.Context) ([]models.CalendarEvent, error) {
	return s.events.List(ctx, 0)
}

// Get loads one event.
func (s *Service) Get(ctx context.Context, id uint) (*models.CalendarEvent, error) {
	return s.events.Get(ctx, id)
}

// Create validates and stores a new event. A missing end defaults to start.
func (s *Service) Create(ctx context.Context, ev *models.CalendarEvent) error {
	normalize(ev)
	if err := validation.Struct(ev); err != nil {
		return err
	}
	if err := s.events.Create(ctx, ev); err != nil {
		return cattleError(err)
	}
	s.logger.Info("calendar event created", zap.Uint("id", ev.ID), zap.Uint("cattle_id", ev.CattleID))
	return nil
}

// Update overwrites an event's details. The event keeps its animal.
func (s *Service) Update(ctx context.Context, id uint, input models.CalendarEvent) (*models.CalendarEvent, error) {
	ev, err := s.events.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ev.Title = input.Title
	ev.Start = input.Start
	ev.End = input.End
	ev.EventType = input.EventType
	ev.Notes = input.Notes
	normalize(ev)

	if err := validation.Struct(ev); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, cattleError(err)
	}
	return ev, nil
}

// Delete removes an event and returns it.
func (s *Service) Delete(ctx context.Context, id uint) (*models.CalendarEvent, error) {
	ev, err := s.events.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return nil, err
	}
	return ev, nil
}

// normalize defaults end to start and stores times in UTC so they order
// lexically in SQLite.
func normalize(ev *models.CalendarEvent) {
	if ev.Start.IsZero() {
		return
	}
	ev.Start = ev.Start.UTC()
	if ev.End == nil {
		end := ev.Start
		ev.End = &end
		return
	}
	end := ev.End.UTC()
	ev.End = &end
}

func cattleError(err error) error {
	if errors.Is(err, sqlstore.ErrCattleNotFound) {
		errs := validation.Errors{}
		errs.Add("cattle", "exists", "")
		return errs
	}
	return err
}

// FeedEvent is an entry of the plain calendar feed.
type FeedEvent struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ColoredEvent is an entry of the labelled, coloured feed.
type ColoredEvent struct {
	Title string  `json:"title"`
	Start string  `json:"start"`
	End   *string `json:"end"`
	Color string  `json:"color"`
}

// DashboardEvent is an entry of the dashboard calendar.
type DashboardEvent struct {
	Title string  `json:"title"`
	Start string  `json:"start"`
	End   *string `json:"end"`
	URL   string  `json:"url"`
}

// Feed lists every event with end defaulting to start.
func (s *Service) Feed(ctx context.Context) ([]FeedEvent, error) {
	events, err := s.events.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	out := make([]FeedEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, FeedEvent{
			ID:    ev.ID,
			Title: ev.Title,
			Start: s.format(ev.Start),
			End:   s.format(ev.EndOrStart()),
		})
	}
	return out, nil
}

// ColoredFeed lists every event titled "<title> <cattle label>: (<name>) [<type>]"
// and coloured by type.
func (s *Service) ColoredFeed(ctx context.Context, lang i18n.Lang) ([]ColoredEvent, error) {
	events, herd, err := s.withCattle(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ColoredEvent, 0, len(events))
	for _, ev := range events {
		title := ev.Title
		if c, ok := herd[ev.CattleID]; ok {
			title += fmt.Sprintf(" %s: (%s)", s.translator.T(lang, "cattle.label"), c.DisplayName())
		}
		title += fmt.Sprintf(" [%s]", s.translator.EventType(lang, ev.EventType))

		out = append(out, ColoredEvent{
			Title: title,
			Start: s.format(ev.Start),
			End:   s.formatPtr(ev.End),
			Color: i18n.EventColor(ev.EventType),
		})
	}
	return out, nil
}

// DashboardEvents lists every event titled "<title> (<tag>)" linking to its edit page.
func (s *Service) DashboardEvents(ctx context.Context) ([]DashboardEvent, error) {
	events, herd, err := s.withCattle(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DashboardEvent, 0, len(events))
	for _, ev := range events {
		title := ev.Title
		if c, ok := herd[ev.CattleID]; ok {
			title += fmt.Sprintf(" (%s)", c.TagNo)
		}
		out = append(out, DashboardEvent{
			Title: title,
			Start: s.format(ev.Start),
			End:   s.formatPtr(ev.End),
			URL:   fmt.Sprintf("/calendar/update-event/%d/", ev.ID),
		})
	}
	return out, nil
}

func (s *Service) withCattle(ctx context.Context) ([]models.CalendarEvent, map[uint]models.Cattle, error) {
	events, err := s.events.List(ctx, 0)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(events))
	seen := make(map[uint]bool, len(events))
	for _, ev := range events {
		if !seen[ev.CattleID] {
			seen[ev.CattleID] = true
			ids = append(ids, ev.CattleID)
		}
	}
	herd, err := s.cattle.CattleByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return events, herd, nil
}

func (s *Service) format(t time.Time) string {
	return t.In(s.loc).Format(time.RFC3339)
}

func (s *Service) formatPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := s.format(*t)
	return &v
}
