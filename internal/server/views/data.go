package views

import (
	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/server/forms"
	"github.com/mamadbah2/herd/internal/validation"
)

type DashboardData struct {
	Summary models.HerdSummary
	Cattle  []models.Cattle
	// Events is serialized into the page script for the calendar widget.
	Events any
}

type ListData struct {
	Cattle  []models.Cattle
	Query   string
	ForSale bool
	Sick    bool
}

type DetailData struct {
	Cattle *models.Cattle
}

// CattleFormData backs the add and edit pages. Cattle is nil when adding.
type CattleFormData struct {
	Cattle *models.Cattle
	Form   forms.CattleForm
	Errors validation.Errors
}

type SelectData struct {
	Cattle []models.Cattle
	Form   forms.CattleForm
	Errors validation.Errors
}

type HealthEventData struct {
	Cattle *models.Cattle
	Form   forms.HealthEventForm
	Errors validation.Errors
}

type CalendarData struct {
	Events []models.CalendarEvent
}

// EventFormData backs the add and update event pages. Event is nil when adding.
type EventFormData struct {
	Event  *models.CalendarEvent
	Cattle []models.Cattle
	Form   forms.EventForm
	Errors validation.Errors
}
