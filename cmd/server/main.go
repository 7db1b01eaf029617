package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/scheduler"
	"github.com/mamadbah2/herd/internal/server/handlers"
	"github.com/mamadbah2/herd/internal/server/router"
	"github.com/mamadbah2/herd/internal/server/views"
	"github.com/mamadbah2/herd/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var envFile string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web application, REST API and scheduled jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, envFile, serve)
		},
	}
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, envFile, func(ctx context.Context, a *app) error {
				if err := a.store.Migrate(ctx); err != nil {
					return err
				}
				a.logger.Info("database migrated", zap.String("driver", a.cfg.Database.Driver))
				return nil
			})
		},
	}
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Create due vaccination reminders and send pending ones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, envFile, func(ctx context.Context, a *app) error {
				created, err := a.reminders.Sweep(ctx)
				if err != nil {
					return err
				}
				sent, err := a.reminders.Dispatch(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "reminders created: %d, sent: %d\n", created, sent)
				return err
			})
		},
	}
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Take today's herd snapshot and write it to the configured sinks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, envFile, func(ctx context.Context, a *app) error {
				snap, err := a.reporting.RunDailySnapshot(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cattle, %d sick, %d for sale, %d vaccinations due\n",
					snap.Date, snap.Total, snap.Sick, snap.ForSale, snap.VaccinationsDue)
				return err
			})
		},
	}

	root := &cobra.Command{
		Use:           "server",
		Short:         "Cattle herd management",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default .env when present)")
	root.AddCommand(serveCmd, migrateCmd, remindCmd, snapshotCmd)
	return root
}

func withApp(cmd *cobra.Command, envFile string, run func(context.Context, *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, envFile)
	if err != nil {
		return err
	}
	defer a.close()
	return run(ctx, a)
}

func serve(ctx context.Context, a *app) error {
	if err := a.store.Migrate(ctx); err != nil {
		return err
	}

	tmpl, err := views.Templates()
	if err != nil {
		return err
	}

	loc := a.cfg.Locale.Location()
	deps := router.Deps{
		Pages:       handlers.NewPagesHandler(a.herd, a.calendar, a.tr, loc, logger.Named(a.logger, "handlers.pages")),
		Calendar:    handlers.NewCalendarHandler(a.calendar, a.herd, a.tr, loc, logger.Named(a.logger, "handlers.calendar")),
		Cattle:      handlers.NewCattleAPI(a.herd, a.reporting, a.tr, logger.Named(a.logger, "handlers.api")),
		Collections: router.Collections(a.store, a.herd.Today, a.tr, logger.Named(a.logger, "handlers.api")),
		DB:          a.store,
		Metrics:     a.metrics,
		Templates:   tmpl,
		Translator:  a.tr,
	}
	if a.messaging != nil {
		deps.Webhook = handlers.NewWebhookHandler(a.messaging, logger.Named(a.logger, "handlers.whatsapp"))
	}
	engine, err := router.New(deps, logger.Named(a.logger, "router"))
	if err != nil {
		return err
	}

	sched := scheduler.NewScheduler(*a.cfg, a.reminders, a.reporting, logger.Named(a.logger, "scheduler"))
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", zap.String("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server crashed: %w", err)
	case <-ctx.Done():
	}
	a.logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
