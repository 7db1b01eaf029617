package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/config"
	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/metrics"
	"github.com/mamadbah2/herd/internal/repository/mongodb"
	"github.com/mamadbah2/herd/internal/repository/sheets"
	"github.com/mamadbah2/herd/internal/repository/sqlstore"
	calendarsvc "github.com/mamadbah2/herd/internal/service/calendar"
	commandsvc "github.com/mamadbah2/herd/internal/service/commands"
	herdsvc "github.com/mamadbah2/herd/internal/service/herd"
	reminderssvc "github.com/mamadbah2/herd/internal/service/reminders"
	reportingsvc "github.com/mamadbah2/herd/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/herd/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/herd/pkg/clients/whatsapp"
	"github.com/mamadbah2/herd/pkg/logger"
)

// app holds the wired services shared by every subcommand.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *sqlstore.Store
	tr      *i18n.Translator
	metrics *metrics.Metrics

	herd      *herdsvc.Service
	calendar  *calendarsvc.Service
	reporting *reportingsvc.Service
	reminders *reminderssvc.Service
	messaging *whatsappsvc.MetaWhatsAppService

	closers []func(context.Context) error
}

// newApp loads the configuration, opens the database and builds the
// services. Optional integrations are skipped when unconfigured.
func newApp(ctx context.Context, envFile string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	baseLogger, err := logger.New(cfg.Server.LogLevel)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(baseLogger)

	a := &app{cfg: cfg, logger: baseLogger}

	a.tr, err = i18n.New(i18n.Lang(cfg.Locale.DefaultLanguage))
	if err != nil {
		return nil, err
	}
	a.metrics, err = metrics.New()
	if err != nil {
		return nil, err
	}

	a.store, err = sqlstore.Open(ctx, cfg.Database, logger.Named(baseLogger, "repo.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return a.store.Close() })

	if err := a.wire(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context) error {
	cfg, loc := a.cfg, a.cfg.Locale.Location()
	lang := a.tr.Default()

	a.herd = herdsvc.NewService(a.store, a.metrics, loc, logger.Named(a.logger, "svc.herd"))
	a.calendar = calendarsvc.NewService(
		sqlstore.NewRecords[models.CalendarEvent](a.store, "start, id"),
		a.store, a.tr, loc, logger.Named(a.logger, "svc.calendar"))

	deps := reportingsvc.Deps{
		Store:        a.store,
		Treatments:   sqlstore.NewRecords[models.Treatment](a.store, "treatment_date, id"),
		Vaccinations: sqlstore.NewRecords[models.Vaccination](a.store, "vaccine_date, id"),
		Rations:      sqlstore.NewRecords[models.FeedingRation](a.store, "id"),
		Reports:      sqlstore.NewRecords[models.Report](a.store, "id"),
		Recorder:     a.metrics,
		Translator:   a.tr,
		Lang:         lang,
		LeadDays:     cfg.Reminders.LeadDays,
		Location:     loc,
	}
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB, logger.Named(a.logger, "repo.mongodb"))
		if err != nil {
			return fmt.Errorf("failed to init mongodb repository: %w", err)
		}
		a.closers = append(a.closers, mongoRepo.Close)
		deps.Archive = mongoRepo
	} else {
		a.logger.Info("mongodb not configured, snapshot archive disabled")
	}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.Open(ctx, cfg.Sheets, logger.Named(a.logger, "repo.sheets"))
		if err != nil {
			return fmt.Errorf("failed to init sheets repository: %w", err)
		}
		deps.Sheet = sheetsRepo
	} else {
		a.logger.Info("google sheets not configured, herd log disabled")
	}
	a.reporting = reportingsvc.NewService(deps, logger.Named(a.logger, "svc.reporting"))

	var sender reminderssvc.Sender
	if cfg.WhatsApp.Enabled() {
		dispatcher := commandsvc.NewService(a.store, commandsvc.Options{
			Translator: a.tr,
			Lang:       lang,
			LeadDays:   cfg.Reminders.LeadDays,
			Location:   loc,
		}, logger.Named(a.logger, "svc.commands"))
		client := whatsappclient.NewClient(cfg.WhatsApp)
		a.messaging = whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, client, dispatcher, logger.Named(a.logger, "svc.whatsapp"))
		sender = a.messaging
	} else {
		a.logger.Warn("whatsapp access token missing, bot and reminder delivery disabled")
	}

	a.reminders = reminderssvc.NewService(a.store, sender, a.metrics, reminderssvc.Options{
		LeadDays:   cfg.Reminders.LeadDays,
		NotifyTo:   cfg.WhatsApp.NotifyTo,
		Location:   loc,
		Translator: a.tr,
		Lang:       lang,
	}, logger.Named(a.logger, "svc.reminders"))
	return nil
}

// close releases connections in reverse order of opening.
func (a *app) close() {
	ctx := context.Background()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Error("failed to close resource", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
