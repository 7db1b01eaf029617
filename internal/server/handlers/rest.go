package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/repository/sqlstore"
	"github.com/mamadbah2/herd/internal/validation"
)

// CRUD is a REST collection mounted at "<prefix>/" and "<prefix>/:id/".
type CRUD interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Retrieve(c *gin.Context)
	Update(c *gin.Context)
	Patch(c *gin.Context)
	Destroy(c *gin.Context)
}

// Mount registers a CRUD collection on g.
func Mount(g *gin.RouterGroup, r CRUD) {
	g.GET("/", r.List)
	g.POST("/", r.Create)
	g.GET("/:id/", r.Retrieve)
	g.PUT("/:id/", r.Update)
	g.PATCH("/:id/", r.Patch)
	g.DELETE("/:id/", r.Destroy)
}

// RecordStore is the persistence of one kind of per-animal record.
type RecordStore[T any, PT sqlstore.Record[T]] interface {
	List(ctx context.Context, cattleID uint) ([]T, error)
	Get(ctx context.Context, id uint) (PT, error)
	Create(ctx context.Context, rec PT) error
	Update(ctx context.Context, rec PT) error
	Delete(ctx context.Context, id uint) error
}

// Resource exposes a RecordStore as JSON. Lists accept ?cattle=<id>.
type Resource[T any, PT sqlstore.Record[T]] struct {
	store   RecordStore[T, PT]
	prepare func(PT)
	api     apiErrors
}

// NewResource builds a REST resource. prepare, when set, fills defaults
// before validation on create and update.
func NewResource[T any, PT sqlstore.Record[T]](store RecordStore[T, PT], prepare func(PT), tr *i18n.Translator, logger *zap.Logger) *Resource[T, PT] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resource[T, PT]{store: store, prepare: prepare, api: apiErrors{tr: tr, logger: logger}}
}

// List returns every record of the collection, filtered by ?cattle= when given.
func (r *Resource[T, PT]) List(c *gin.Context) {
	var cattleID uint
	if raw := c.Query("cattle"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			r.api.fieldError(c, "cattle", "integer")
			return
		}
		cattleID = uint(id)
	}

	records, err := r.store.List(c.Request.Context(), cattleID)
	if err != nil {
		r.api.write(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create stores a new record and answers 201 with it.
func (r *Resource[T, PT]) Create(c *gin.Context) {
	rec := PT(new(T))
	if err := c.ShouldBindJSON(rec); err != nil {
		r.api.badJSON(c, err)
		return
	}
	rec.SetRecordID(0)
	if !r.validate(c, rec) {
		return
	}
	if err := r.store.Create(c.Request.Context(), rec); err != nil {
		r.api.write(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Retrieve returns one record.
func (r *Resource[T, PT]) Retrieve(c *gin.Context) {
	rec, ok := r.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Update replaces a record, keeping its id.
func (r *Resource[T, PT]) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		r.api.notFound(c)
		return
	}
	rec := PT(new(T))
	if err := c.ShouldBindJSON(rec); err != nil {
		r.api.badJSON(c, err)
		return
	}
	r.save(c, id, rec)
}

// Patch applies the fields present in the body to a record.
func (r *Resource[T, PT]) Patch(c *gin.Context) {
	rec, ok := r.load(c)
	if !ok {
		return
	}
	id := rec.RecordID()
	if err := c.ShouldBindJSON(rec); err != nil {
		r.api.badJSON(c, err)
		return
	}
	r.save(c, id, rec)
}

// Destroy deletes a record and answers 204.
func (r *Resource[T, PT]) Destroy(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		r.api.notFound(c)
		return
	}
	if err := r.store.Delete(c.Request.Context(), id); err != nil {
		r.api.write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Resource[T, PT]) save(c *gin.Context, id uint, rec PT) {
	rec.SetRecordID(id)
	if !r.validate(c, rec) {
		return
	}
	if err := r.store.Update(c.Request.Context(), rec); err != nil {
		r.api.write(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (r *Resource[T, PT]) load(c *gin.Context) (PT, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		r.api.notFound(c)
		return nil, false
	}
	rec, err := r.store.Get(c.Request.Context(), id)
	if err != nil {
		r.api.write(c, err)
		return nil, false
	}
	return rec, true
}

func (r *Resource[T, PT]) validate(c *gin.Context, rec PT) bool {
	if r.prepare != nil {
		r.prepare(rec)
	}
	if err := validation.Struct(rec); err != nil {
		r.api.write(c, err)
		return false
	}
	return true
}

// apiErrors renders REST failures: 404 {"detail"}, 400 {field: [messages]}.
type apiErrors struct {
	tr     *i18n.Translator
	logger *zap.Logger
}

func (a apiErrors) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (a apiErrors) fieldError(c *gin.Context, field, tag string) {
	errs := validation.Errors{}
	errs.Add(field, tag, "")
	a.write(c, errs)
}

func (a apiErrors) badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
}

func (a apiErrors) write(c *gin.Context, err error) {
	if errs, ok := validation.As(err); ok {
		c.JSON(http.StatusBadRequest, a.tr.Localize(Lang(c, a.tr), errs))
		return
	}
	switch {
	case errors.Is(err, sqlstore.ErrNotFound):
		a.notFound(c)
	case errors.Is(err, sqlstore.ErrCattleNotFound):
		a.fieldError(c, "cattle", "exists")
	default:
		a.logger.Error("api request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "A server error occurred."})
	}
}
