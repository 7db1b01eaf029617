package forms

import (
	"net/url"
	"strings"
	"time"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/service/herd"
	"github.com/mamadbah2/herd/internal/validation"
)

// HealthCheckForm is the mandatory part of the add-health-check page.
type HealthCheckForm struct {
	CheckDate   string `form:"check_date"`
	Temperature string `form:"temperature"`
	HeartRate   string `form:"heart_rate"`
	Weight      string `form:"weight"`
	Status      string `form:"status"`
	Notes       string `form:"notes"`
}

// VaccinationForm is the optional vaccination section.
type VaccinationForm struct {
	VaccineName string `form:"vaccine_name"`
	VaccineDate string `form:"vaccine_date"`
	NextDueDate string `form:"next_due_date"`
	DoctorName  string `form:"doctor_name"`
}

// Changed reports whether any field was filled in.
func (f VaccinationForm) Changed() bool {
	return filled(f.VaccineName, f.VaccineDate, f.NextDueDate, f.DoctorName)
}

// RationForm is the optional feeding ration section.
type RationForm struct {
	RationID    string `form:"ration_id"`
	FeedingTime string `form:"feeding_time"`
	FreshWeight string `form:"fresh_weight"`
	DryWeight   string `form:"dry_weight"`
	Supplement  string `form:"supplement"`
}

// Changed reports whether any field was filled in.
func (f RationForm) Changed() bool {
	return filled(f.RationID, f.FeedingTime, f.FreshWeight, f.DryWeight, f.Supplement)
}

// HealthEventForm groups the four sections of the add-health-check page.
type HealthEventForm struct {
	Check       HealthCheckForm
	Vaccination VaccinationForm
	Ration      RationForm
	Event       EventForm
}

// NewHealthEventForm returns the initial form: today's date and the
// animal's current status pre-selected.
func NewHealthEventForm(today models.Date, status models.Status) HealthEventForm {
	return HealthEventForm{Check: HealthCheckForm{CheckDate: today.String(), Status: string(status)}}
}

// BindHealthEvent binds each section from its prefixed fields.
func BindHealthEvent(values url.Values) (HealthEventForm, error) {
	var f HealthEventForm
	sections := []struct {
		prefix string
		dst    any
	}{
		{herd.PrefixCheck, &f.Check},
		{herd.PrefixVaccination, &f.Vaccination},
		{herd.PrefixRation, &f.Ration},
		{herd.PrefixEvent, &f.Event},
	}
	for _, s := range sections {
		if err := Bind(values, s.prefix, s.dst); err != nil {
			return f, err
		}
	}
	return f, nil
}

// HealthEvent parses the health check and every changed optional section.
// Parse errors are keyed "<prefix>-<field>".
func (f HealthEventForm) HealthEvent(loc *time.Location) (models.HealthEvent, validation.Errors) {
	errs := validation.Errors{}
	var ev models.HealthEvent

	p := newParser(loc)
	ev.Check = &models.HealthCheck{
		CheckDate:   p.requiredDate("check_date", f.Check.CheckDate),
		Temperature: p.float("temperature", f.Check.Temperature),
		HeartRate:   p.integer("heart_rate", f.Check.HeartRate),
		Weight:      p.float("weight", f.Check.Weight),
		Status:      models.Status(f.Check.Status),
		Notes:       strings.TrimSpace(f.Check.Notes),
	}
	errs.Merge(herd.PrefixCheck, p.errs)

	if f.Vaccination.Changed() {
		p := newParser(loc)
		ev.Vaccination = &models.Vaccination{
			VaccineName: strings.TrimSpace(f.Vaccination.VaccineName),
			VaccineDate: p.requiredDate("vaccine_date", f.Vaccination.VaccineDate),
			NextDueDate: p.date("next_due_date", f.Vaccination.NextDueDate),
			DoctorName:  strings.TrimSpace(f.Vaccination.DoctorName),
		}
		errs.Merge(herd.PrefixVaccination, p.errs)
	}

	if f.Ration.Changed() {
		p := newParser(loc)
		ev.Ration = &models.FeedingRation{
			RationID:    strings.TrimSpace(f.Ration.RationID),
			FeedingTime: strings.TrimSpace(f.Ration.FeedingTime),
			FreshWeight: p.float("fresh_weight", f.Ration.FreshWeight),
			DryWeight:   p.float("dry_weight", f.Ration.DryWeight),
			Supplement:  strings.TrimSpace(f.Ration.Supplement),
		}
		errs.Merge(herd.PrefixRation, p.errs)
	}

	if f.Event.Changed() {
		event, perrs := f.Event.Parse(loc)
		ev.Event = event
		errs.Merge(herd.PrefixEvent, perrs)
	}

	return ev, errs
}
