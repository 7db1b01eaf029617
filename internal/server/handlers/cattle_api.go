package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/service/herd"
)

// ReportGenerator writes the auto-dated report of one animal.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, cattleID uint) (*models.Report, error)
}

// CattleAPI is the REST collection of animals. Responses nest the animal's
// health checks, newest first; they are ignored on write.
type CattleAPI struct {
	herd    *herd.Service
	reports ReportGenerator
	api     apiErrors
}

// NewCattleAPI constructs the cattle REST handlers.
func NewCattleAPI(herdSvc *herd.Service, reports ReportGenerator, tr *i18n.Translator, logger *zap.Logger) *CattleAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CattleAPI{herd: herdSvc, reports: reports, api: apiErrors{tr: tr, logger: logger}}
}

// List returns every animal with its health checks.
func (h *CattleAPI) List(c *gin.Context) {
	herdList, err := h.herd.All(c.Request.Context())
	if err != nil {
		h.api.write(c, err)
		return
	}
	c.JSON(http.StatusOK, herdList)
}

// Create stores a new animal and answers 201 with it.
func (h *CattleAPI) Create(c *gin.Context) {
	var in models.Cattle
	if err := c.ShouldBindJSON(&in); err != nil {
		h.api.badJSON(c, err)
		return
	}
	in.ID = 0
	h.save(c, http.StatusCreated, &in)
}

// Retrieve returns one animal with its health checks.
func (h *CattleAPI) Retrieve(c *gin.Context) {
	cattle, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cattle)
}

// Update replaces an animal, keeping its id.
func (h *CattleAPI) Update(c *gin.Context) {
	existing, ok := h.load(c)
	if !ok {
		return
	}
	var in models.Cattle
	if err := c.ShouldBindJSON(&in); err != nil {
		h.api.badJSON(c, err)
		return
	}
	in.ID = existing.ID
	h.save(c, http.StatusOK, &in)
}

// Patch applies the fields present in the body to an animal.
func (h *CattleAPI) Patch(c *gin.Context) {
	existing, ok := h.load(c)
	if !ok {
		return
	}
	id := existing.ID
	if err := c.ShouldBindJSON(existing); err != nil {
		h.api.badJSON(c, err)
		return
	}
	existing.ID = id
	h.save(c, http.StatusOK, existing)
}

// Destroy deletes an animal with all of its records and answers 204.
func (h *CattleAPI) Destroy(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.api.notFound(c)
		return
	}
	if _, err := h.herd.Delete(c.Request.Context(), id); err != nil {
		h.api.write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Report generates and stores a report for the animal.
func (h *CattleAPI) Report(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.api.notFound(c)
		return
	}
	report, err := h.reports.GenerateReport(c.Request.Context(), id)
	if err != nil {
		h.api.write(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *CattleAPI) save(c *gin.Context, status int, cattle *models.Cattle) {
	cattle.HealthChecks = nil
	if err := h.herd.Save(c.Request.Context(), cattle, nil); err != nil {
		h.api.write(c, err)
		return
	}
	saved, err := h.herd.Detail(c.Request.Context(), cattle.ID)
	if err != nil {
		h.api.write(c, err)
		return
	}
	c.JSON(status, saved)
}

func (h *CattleAPI) load(c *gin.Context) (*models.Cattle, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		h.api.notFound(c)
		return nil, false
	}
	cattle, err := h.herd.Detail(c.Request.Context(), id)
	if err != nil {
		h.api.write(c, err)
		return nil, false
	}
	return cattle, true
}

// APIRoot lists the REST collections with absolute URLs.
func APIRoot(collections ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base := scheme + "://" + c.Request.Host + "/api/"

		out := make(map[string]string, len(collections))
		for _, name := range collections {
			out[name] = base + name + "/"
		}
		c.JSON(http.StatusOK, out)
	}
}
