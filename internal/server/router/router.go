package router

import (
	"errors"
	"html/template"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/metrics"
	"github.com/mamadbah2/herd/internal/server/handlers"
)

// Collection is a REST resource mounted at /api/<Name>/.
type Collection struct {
	Name string
	CRUD handlers.CRUD
}

// Deps carries everything the router mounts. Webhook is nil when the
// WhatsApp integration is disabled.
type Deps struct {
	Pages       *handlers.PagesHandler
	Calendar    *handlers.CalendarHandler
	Cattle      *handlers.CattleAPI
	Collections []Collection
	Webhook     *handlers.WebhookHandler
	DB          handlers.Pinger
	Metrics     *metrics.Metrics
	Templates   *template.Template
	Translator  *i18n.Translator
}

// New wires the Gin engine with required routes and middlewares.
func New(deps Deps, logger *zap.Logger) (*gin.Engine, error) {
	if deps.Pages == nil || deps.Calendar == nil || deps.Cattle == nil {
		return nil, errors.New("router: page, calendar and cattle handlers are required")
	}
	if deps.Templates == nil || deps.Translator == nil {
		return nil, errors.New("router: templates and translator are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	if deps.Metrics != nil {
		r.Use(metricsMiddleware(deps.Metrics))
	}
	r.Use(languageMiddleware(deps.Translator))
	r.SetHTMLTemplate(deps.Templates)

	pages := deps.Pages
	r.GET("/", pages.Dashboard)
	r.GET("/list/", pages.List)
	r.GET("/add/", pages.NewCattle)
	r.POST("/add/", pages.CreateCattle)
	r.GET("/edit/:id/", pages.EditCattle)
	r.POST("/edit/:id/", pages.UpdateCattle)
	r.POST("/delete/:id/", pages.DeleteCattle)
	r.GET("/select-cattle/", pages.SelectCattle)
	r.POST("/select-cattle/", pages.QuickAddCattle)
	r.GET("/:id/", pages.Detail)
	r.GET("/:id/add-healthcheck/", pages.HealthCheckForm)
	r.POST("/:id/add-healthcheck/", pages.SaveHealthCheck)

	cal := deps.Calendar
	r.GET("/calendar/", cal.Calendar)
	r.GET("/calendar/events/", cal.Events)
	r.GET("/calendar/add-event/", cal.NewEvent)
	r.POST("/calendar/add-event/", cal.CreateEvent)
	r.GET("/calendar/update-event/:id/", cal.EditEvent)
	r.POST("/calendar/update-event/:id/", cal.UpdateEvent)
	r.POST("/calendar/delete-event/:id/", cal.DeleteEvent)

	api := r.Group("/api")
	names := []string{"cattle"}
	for _, col := range deps.Collections {
		names = append(names, col.Name)
	}
	api.GET("/", handlers.APIRoot(names...))
	api.GET("/calendar-events/", cal.ColoredEvents)

	cattle := api.Group("/cattle")
	handlers.Mount(cattle, deps.Cattle)
	cattle.POST("/:id/report/", deps.Cattle.Report)
	for _, col := range deps.Collections {
		handlers.Mount(api.Group("/"+col.Name), col.CRUD)
	}

	if deps.DB != nil {
		r.GET("/healthz", handlers.Healthz(deps.DB, logger))
	}
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	if deps.Webhook != nil {
		r.GET("/webhook", deps.Webhook.Verify)
		r.POST("/webhook", deps.Webhook.Receive)
		r.POST("/send-message", deps.Webhook.SendMessage)
	}

	r.NoRoute(pages.NotFound)

	logger.Info("router initialized",
		zap.Int("collections", len(deps.Collections)+1),
		zap.Bool("webhook", deps.Webhook != nil))
	return r, nil
}
