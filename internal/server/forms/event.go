package forms

import (
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/validation"
)

// EventForm is a calendar event. Cattle is only posted by the calendar
// pages; the health-check page assigns the animal itself.
type EventForm struct {
	Cattle    string `form:"cattle"`
	Title     string `form:"title"`
	Start     string `form:"start"`
	End       string `form:"end"`
	EventType string `form:"event_type"`
	Notes     string `form:"notes"`
}

// EventFormFrom pre-fills the form from an event, in loc.
func EventFormFrom(ev *models.CalendarEvent, loc *time.Location) EventForm {
	return EventForm{
		Cattle:    strconv.FormatUint(uint64(ev.CattleID), 10),
		Title:     ev.Title,
		Start:     FormatDateTimeLocal(&ev.Start, loc),
		End:       FormatDateTimeLocal(ev.End, loc),
		EventType: string(ev.EventType),
		Notes:     ev.Notes,
	}
}

// Changed reports whether any event field was filled in.
func (f EventForm) Changed() bool {
	return filled(f.Title, f.Start, f.End, f.EventType, f.Notes)
}

// Parse converts the form. Times without a zone are read in loc.
func (f EventForm) Parse(loc *time.Location) (*models.CalendarEvent, validation.Errors) {
	p := newParser(loc)
	ev := &models.CalendarEvent{
		CattleID:  p.id("cattle", f.Cattle),
		Title:     strings.TrimSpace(f.Title),
		End:       p.dateTime("end", f.End),
		EventType: models.EventType(f.EventType),
		Notes:     strings.TrimSpace(f.Notes),
	}
	if start := p.dateTime("start", f.Start); start != nil {
		ev.Start = *start
	}
	return ev, p.errs
}
