package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/server/forms"
	"github.com/mamadbah2/herd/internal/server/views"
	"github.com/mamadbah2/herd/internal/service/calendar"
	"github.com/mamadbah2/herd/internal/service/herd"
	"github.com/mamadbah2/herd/internal/validation"
)

// PagesHandler serves the herd HTML pages.
type PagesHandler struct {
	herd     *herd.Service
	calendar *calendar.Service
	renderer
}

// NewPagesHandler constructs the page handlers.
func NewPagesHandler(herdSvc *herd.Service, calendarSvc *calendar.Service, tr *i18n.Translator, loc *time.Location, logger *zap.Logger) *PagesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PagesHandler{
		herd:     herdSvc,
		calendar: calendarSvc,
		renderer: renderer{tr: tr, loc: loc, logger: logger},
	}
}

// Dashboard shows the herd counters, every animal and the calendar.
func (h *PagesHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	dash, err := h.herd.Dashboard(ctx)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	events, err := h.calendar.DashboardEvents(ctx)
	if err != nil {
		h.fail(c, err, nil)
		return
	}

	h.html(c, http.StatusOK, "dashboard.html", "page.dashboard", views.DashboardData{
		Summary: dash.Summary,
		Cattle:  dash.Cattle,
		Events:  events,
	})
}

// List shows the herd filtered by ?q=, ?for_sale=1 and ?sick=1.
func (h *PagesHandler) List(c *gin.Context) {
	q := herd.ListQuery{
		Q:       c.Query("q"),
		ForSale: c.Query("for_sale") == "1",
		Sick:    c.Query("sick") == "1",
	}
	herdList, err := h.herd.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, nil)
		return
	}

	h.html(c, http.StatusOK, "cattle_list.html", "page.list", views.ListData{
		Cattle:  herdList,
		Query:   q.Q,
		ForSale: q.ForSale,
		Sick:    q.Sick,
	})
}

// Detail shows one animal and its health checks.
func (h *PagesHandler) Detail(c *gin.Context) {
	cattle, ok := h.load(c)
	if !ok {
		return
	}
	h.html(c, http.StatusOK, "cattle_detail.html", "page.detail", views.DetailData{Cattle: cattle})
}

// NewCattle renders the empty add form.
func (h *PagesHandler) NewCattle(c *gin.Context) {
	h.html(c, http.StatusOK, "cattle_form.html", "page.add", views.CattleFormData{})
}

// CreateCattle stores a new animal.
func (h *PagesHandler) CreateCattle(c *gin.Context) {
	var form forms.CattleForm
	if err := bindPostForm(c, "", &form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	cattle := &models.Cattle{}
	if errs, err := h.saveCattle(c, form, cattle); err != nil {
		h.fail(c, err, nil)
		return
	} else if len(errs) > 0 {
		h.invalid(c, "cattle_form.html", "page.add", "flash.form_error", views.CattleFormData{Form: form, Errors: errs})
		return
	}

	h.redirect(c, "/list/", "flash.created", cattle.TagNo)
}

// EditCattle renders the edit form of one animal.
func (h *PagesHandler) EditCattle(c *gin.Context) {
	cattle, ok := h.load(c)
	if !ok {
		return
	}
	h.html(c, http.StatusOK, "cattle_form.html", "page.edit", views.CattleFormData{
		Cattle: cattle,
		Form:   forms.CattleFormFrom(cattle),
	})
}

// UpdateCattle saves the edit form.
func (h *PagesHandler) UpdateCattle(c *gin.Context) {
	cattle, ok := h.load(c)
	if !ok {
		return
	}

	var form forms.CattleForm
	if err := bindPostForm(c, "", &form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	cattle.HealthChecks = nil
	if errs, err := h.saveCattle(c, form, cattle); err != nil {
		h.fail(c, err, herd.ErrNotFound)
		return
	} else if len(errs) > 0 {
		h.invalid(c, "cattle_form.html", "page.edit", "flash.form_error", views.CattleFormData{Cattle: cattle, Form: form, Errors: errs})
		return
	}

	h.redirect(c, "/list/", "flash.updated", cattle.DisplayName())
}

// DeleteCattle removes an animal and everything recorded about it.
func (h *PagesHandler) DeleteCattle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	cattle, err := h.herd.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, herd.ErrNotFound)
		return
	}
	h.logger.Info("cattle deleted", zap.Uint("id", id), zap.String("tag_no", cattle.TagNo))
	h.redirect(c, "/list/", "flash.deleted", cattle.TagNo)
}

// SelectCattle lists the herd to pick an animal for a health check, with a
// quick add form.
func (h *PagesHandler) SelectCattle(c *gin.Context) {
	h.renderSelect(c, forms.CattleForm{}, nil)
}

// QuickAddCattle handles the add form of the selection page.
func (h *PagesHandler) QuickAddCattle(c *gin.Context) {
	var form forms.CattleForm
	if err := bindPostForm(c, "", &form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	if c.PostForm("add_cattle_submit") == "" {
		c.Redirect(http.StatusFound, "/select-cattle/")
		return
	}

	cattle := &models.Cattle{}
	errs, err := h.saveCattle(c, form, cattle)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	if len(errs) > 0 {
		h.renderSelect(c, form, errs)
		return
	}
	h.redirect(c, "/select-cattle/", "flash.created", cattle.TagNo)
}

func (h *PagesHandler) renderSelect(c *gin.Context, form forms.CattleForm, errs validation.Errors) {
	herdList, err := h.herd.List(c.Request.Context(), herd.ListQuery{})
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	data := views.SelectData{Cattle: herdList, Form: form, Errors: errs}
	if len(errs) > 0 {
		h.invalid(c, "select_cattle.html", "page.select", "flash.form_error", data)
		return
	}
	h.html(c, http.StatusOK, "select_cattle.html", "page.select", data)
}

// HealthCheckForm renders the composite health event form.
func (h *PagesHandler) HealthCheckForm(c *gin.Context) {
	cattle, ok := h.load(c)
	if !ok {
		return
	}
	status, err := h.herd.InitialStatus(c.Request.Context(), cattle.ID)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	h.html(c, http.StatusOK, "add_healthcheck.html", "page.healthcheck", views.HealthEventData{
		Cattle: cattle,
		Form:   forms.NewHealthEventForm(h.herd.Today(), status),
	})
}

// SaveHealthCheck stores the health check and every filled-in optional section
// together, or nothing.
func (h *PagesHandler) SaveHealthCheck(c *gin.Context) {
	cattle, ok := h.load(c)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	form, err := forms.BindHealthEvent(c.Request.PostForm)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	ev, errs := form.HealthEvent(h.loc)
	if len(errs) == 0 {
		errs, err = splitValidation(h.herd.SaveHealthEvent(c.Request.Context(), cattle.ID, ev))
		if err != nil {
			h.fail(c, err, herd.ErrNotFound)
			return
		}
	}
	if len(errs) > 0 {
		h.invalid(c, "add_healthcheck.html", "page.healthcheck", "flash.forms_error", views.HealthEventData{
			Cattle: cattle,
			Form:   form,
			Errors: errs,
		})
		return
	}

	h.redirect(c, fmt.Sprintf("/%d/", cattle.ID), "flash.health_saved", cattle.DisplayName())
}

// load fetches the animal named by the :id parameter, rendering 404 when missing.
func (h *PagesHandler) load(c *gin.Context) (*models.Cattle, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		h.notFound(c)
		return nil, false
	}
	cattle, err := h.herd.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, herd.ErrNotFound)
		return nil, false
	}
	return cattle, true
}

func (h *PagesHandler) saveCattle(c *gin.Context, form forms.CattleForm, cattle *models.Cattle) (validation.Errors, error) {
	status, errs := form.Apply(cattle)
	if len(errs) > 0 {
		return errs, nil
	}
	return splitValidation(h.herd.Save(c.Request.Context(), cattle, status))
}

// NotFound renders the 404 page for unmatched routes.
func (h *PagesHandler) NotFound(c *gin.Context) {
	h.notFound(c)
}
