package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/server/forms"
	"github.com/mamadbah2/herd/internal/server/views"
	"github.com/mamadbah2/herd/internal/service/calendar"
	"github.com/mamadbah2/herd/internal/service/herd"
)

// CalendarHandler serves the farm calendar pages and its JSON feeds.
type CalendarHandler struct {
	calendar *calendar.Service
	herd     *herd.Service
	renderer
}

// NewCalendarHandler constructs the calendar handlers.
func NewCalendarHandler(calendarSvc *calendar.Service, herdSvc *herd.Service, tr *i18n.Translator, loc *time.Location, logger *zap.Logger) *CalendarHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarHandler{
		calendar: calendarSvc,
		herd:     herdSvc,
		renderer: renderer{tr: tr, loc: loc, logger: logger},
	}
}

// Calendar renders the calendar page.
func (h *CalendarHandler) Calendar(c *gin.Context) {
	events, err := h.calendar.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	h.html(c, http.StatusOK, "calendar.html", "page.calendar", views.CalendarData{Events: events})
}

// Events is the plain JSON feed: id, title, start and end.
func (h *CalendarHandler) Events(c *gin.Context) {
	feed, err := h.calendar.Feed(c.Request.Context())
	if err != nil {
		h.jsonFail(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// ColoredEvents is the labelled feed coloured by event type.
func (h *CalendarHandler) ColoredEvents(c *gin.Context) {
	feed, err := h.calendar.ColoredFeed(c.Request.Context(), Lang(c, h.tr))
	if err != nil {
		h.jsonFail(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// NewEvent renders the add event form.
func (h *CalendarHandler) NewEvent(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "page.add_event", views.EventFormData{Form: forms.EventForm{Cattle: c.Query("cattle")}})
}

// CreateEvent stores a new event.
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var form forms.EventForm
	if err := bindPostForm(c, "", &form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	ev, errs := form.Parse(h.loc)
	if len(errs) == 0 {
		var err error
		if errs, err = splitValidation(h.calendar.Create(c.Request.Context(), ev)); err != nil {
			h.fail(c, err, nil)
			return
		}
	}
	if len(errs) > 0 {
		h.renderForm(c, http.StatusOK, "page.add_event", views.EventFormData{Form: form, Errors: errs})
		return
	}

	h.redirect(c, "/calendar/", "flash.event_saved", ev.Title)
}

// EditEvent renders the update form of one event.
func (h *CalendarHandler) EditEvent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	ev, err := h.calendar.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, calendar.ErrNotFound)
		return
	}
	h.renderForm(c, http.StatusOK, "page.edit_event", views.EventFormData{Event: ev, Form: forms.EventFormFrom(ev, h.loc)})
}

// UpdateEvent saves the update form. The event keeps its animal.
func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	existing, err := h.calendar.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, calendar.ErrNotFound)
		return
	}

	var form forms.EventForm
	if err := bindPostForm(c, "", &form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	form.Cattle = forms.EventFormFrom(existing, h.loc).Cattle

	input, errs := form.Parse(h.loc)
	if len(errs) == 0 {
		_, err = h.calendar.Update(c.Request.Context(), id, *input)
		if errs, err = splitValidation(err); err != nil {
			h.fail(c, err, calendar.ErrNotFound)
			return
		}
	}
	if len(errs) > 0 {
		h.renderForm(c, http.StatusOK, "page.edit_event", views.EventFormData{Event: existing, Form: form, Errors: errs})
		return
	}

	h.redirect(c, "/calendar/", "flash.event_saved", input.Title)
}

// DeleteEvent removes an event.
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	ev, err := h.calendar.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, calendar.ErrNotFound)
		return
	}
	h.redirect(c, "/calendar/", "flash.event_deleted", ev.Title)
}

func (h *CalendarHandler) renderForm(c *gin.Context, status int, titleKey string, data views.EventFormData) {
	herdList, err := h.herd.List(c.Request.Context(), herd.ListQuery{})
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	data.Cattle = herdList
	if len(data.Errors) > 0 {
		h.invalid(c, "event_form.html", titleKey, "flash.form_error", data)
		return
	}
	h.html(c, status, "event_form.html", titleKey, data)
}

func (h *CalendarHandler) jsonFail(c *gin.Context, err error) {
	h.logger.Error("calendar feed failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "A server error occurred."})
}
