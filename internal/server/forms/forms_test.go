package forms

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/validation"
)

func bangkok(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)
	return loc
}

func TestBindStripsPrefix(t *testing.T) {
	values := url.Values{
		"hc-check_date":    {"2024-07-01"},
		"hc-status":        {"sick"},
		"vax-vaccine_name": {"FMD"},
		"check_date":       {"ignored"},
	}

	var hc HealthCheckForm
	require.NoError(t, Bind(values, "hc", &hc))
	assert.Equal(t, HealthCheckForm{CheckDate: "2024-07-01", Status: "sick"}, hc)

	var plain HealthCheckForm
	require.NoError(t, Bind(values, "", &plain))
	assert.Equal(t, "ignored", plain.CheckDate)
}

func TestChanged(t *testing.T) {
	assert.False(t, VaccinationForm{}.Changed())
	assert.False(t, VaccinationForm{VaccineName: "   "}.Changed())
	assert.True(t, VaccinationForm{DoctorName: "Dr. Somchai"}.Changed())
	assert.False(t, RationForm{}.Changed())
	assert.True(t, RationForm{DryWeight: "2.5"}.Changed())
	assert.False(t, EventForm{Cattle: "3"}.Changed())
	assert.True(t, EventForm{Notes: "x"}.Changed())
}

func TestHealthEventOnlyMandatory(t *testing.T) {
	f, err := BindHealthEvent(url.Values{
		"hc-check_date":  {"2024-07-01"},
		"hc-temperature": {"38.6"},
		"hc-heart_rate":  {"64"},
		"hc-status":      {"healthy"},
	})
	require.NoError(t, err)

	ev, errs := f.HealthEvent(time.UTC)
	assert.Empty(t, errs)
	require.NotNil(t, ev.Check)
	assert.Equal(t, models.NewDate(2024, 7, 1), ev.Check.CheckDate)
	require.NotNil(t, ev.Check.Temperature)
	assert.InDelta(t, 38.6, *ev.Check.Temperature, 1e-9)
	require.NotNil(t, ev.Check.HeartRate)
	assert.Equal(t, 64, *ev.Check.HeartRate)
	assert.Nil(t, ev.Check.Weight)
	assert.Nil(t, ev.Vaccination)
	assert.Nil(t, ev.Ration)
	assert.Nil(t, ev.Event)
}

func TestHealthEventOptionalSections(t *testing.T) {
	loc := bangkok(t)
	f, err := BindHealthEvent(url.Values{
		"hc-check_date":       {"2024-07-01"},
		"hc-status":           {"sick"},
		"vax-vaccine_name":    {"FMD"},
		"vax-vaccine_date":    {"2024-07-01"},
		"vax-next_due_date":   {"2025-01-01"},
		"ration-ration_id":    {"FTMR-1"},
		"ration-feeding_time": {"07:30, 16:30"},
		"ration-fresh_weight": {"12.5"},
		"ration-dry_weight":   {"4"},
		"cal-title":           {"Recheck"},
		"cal-start":           {"2024-07-03T09:00"},
		"cal-event_type":      {"health"},
	})
	require.NoError(t, err)

	ev, errs := f.HealthEvent(loc)
	assert.Empty(t, errs)
	require.NotNil(t, ev.Vaccination)
	assert.Equal(t, "FMD", ev.Vaccination.VaccineName)
	require.NotNil(t, ev.Vaccination.NextDueDate)
	assert.Equal(t, "2025-01-01", ev.Vaccination.NextDueDate.String())

	require.NotNil(t, ev.Ration)
	assert.InDelta(t, 4.0, *ev.Ration.DryWeight, 1e-9)

	require.NotNil(t, ev.Event)
	assert.True(t, ev.Event.Start.Equal(time.Date(2024, 7, 3, 2, 0, 0, 0, time.UTC)))
	assert.Nil(t, ev.Event.End)
	assert.Equal(t, models.EventHealth, ev.Event.EventType)
}

func TestHealthEventParseErrorsArePrefixed(t *testing.T) {
	f, err := BindHealthEvent(url.Values{
		"hc-check_date":       {"01/07/2024"},
		"hc-temperature":      {"hot"},
		"hc-heart_rate":       {"6.5"},
		"ration-fresh_weight": {"lots"},
		"cal-start":           {"tomorrow"},
	})
	require.NoError(t, err)

	_, errs := f.HealthEvent(time.UTC)
	assert.Equal(t, []string{
		"cal-start",
		"hc-check_date",
		"hc-heart_rate",
		"hc-temperature",
		"ration-fresh_weight",
	}, errs.Fields())
	assert.Equal(t, []validation.FieldError{{Tag: "date"}}, errs["hc-check_date"])
	assert.Equal(t, []validation.FieldError{{Tag: "integer"}}, errs["hc-heart_rate"])
	assert.Equal(t, []validation.FieldError{{Tag: "datetime"}}, errs["cal-start"])
}

func TestEventFormParse(t *testing.T) {
	loc := bangkok(t)

	ev, errs := EventForm{
		Cattle:    "7",
		Title:     " Weigh ",
		Start:     "2024-07-01T08:30",
		End:       "2024-07-01T10:00:00Z",
		EventType: "feeding",
	}.Parse(loc)
	assert.Empty(t, errs)
	assert.Equal(t, uint(7), ev.CattleID)
	assert.Equal(t, "Weigh", ev.Title)
	assert.True(t, ev.Start.Equal(time.Date(2024, 7, 1, 1, 30, 0, 0, time.UTC)))
	require.NotNil(t, ev.End)
	assert.True(t, ev.End.Equal(time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)))

	_, errs = EventForm{Cattle: "seven", Start: "2024-07-01T08:30"}.Parse(loc)
	assert.True(t, errs.Has("cattle"))
}

func TestEventFormFromRoundTripsLocalTime(t *testing.T) {
	loc := bangkok(t)
	start := time.Date(2024, 7, 1, 1, 30, 0, 0, time.UTC)
	f := EventFormFrom(&models.CalendarEvent{CattleID: 2, Title: "Weigh", Start: start, EventType: models.EventOther}, loc)

	assert.Equal(t, "2", f.Cattle)
	assert.Equal(t, "2024-07-01T08:30", f.Start)
	assert.Empty(t, f.End)

	ev, errs := f.Parse(loc)
	assert.Empty(t, errs)
	assert.True(t, ev.Start.Equal(start))
}

func TestCattleFormApply(t *testing.T) {
	c := &models.Cattle{ID: 4}
	status, errs := CattleForm{
		TagNo:     " A001 ",
		Name:      "Daisy",
		BirthDate: "2022-03-15",
		Gender:    "female",
		Status:    "forsale",
	}.Apply(c)

	assert.Empty(t, errs)
	assert.Equal(t, uint(4), c.ID)
	assert.Equal(t, "A001", c.TagNo)
	require.NotNil(t, c.BirthDate)
	assert.Equal(t, "2022-03-15", c.BirthDate.String())
	require.NotNil(t, status)
	assert.Equal(t, models.StatusForSale, *status)

	status, errs = CattleForm{TagNo: "A002", BirthDate: "15/03/2022"}.Apply(&models.Cattle{})
	assert.Nil(t, status)
	assert.True(t, errs.Has("birth_date"))
}

func TestCattleFormFrom(t *testing.T) {
	sick := models.StatusSick
	birth := models.NewDate(2021, 1, 2)
	f := CattleFormFrom(&models.Cattle{TagNo: "B1", Gender: models.GenderMale, BirthDate: &birth, LatestStatus: &sick})
	assert.Equal(t, CattleForm{TagNo: "B1", Gender: "male", BirthDate: "2021-01-02", Status: "sick"}, f)

	f = CattleFormFrom(&models.Cattle{TagNo: "B2"})
	assert.Empty(t, f.Status)
}

func TestNewHealthEventForm(t *testing.T) {
	f := NewHealthEventForm(models.NewDate(2024, 7, 1), models.StatusSick)
	assert.Equal(t, "2024-07-01", f.Check.CheckDate)
	assert.Equal(t, "sick", f.Check.Status)
	assert.False(t, f.Vaccination.Changed())
}
