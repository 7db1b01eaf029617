package router

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/i18n"
	"github.com/mamadbah2/herd/internal/repository/sqlstore"
	"github.com/mamadbah2/herd/internal/server/handlers"
)

// Collections builds the per-animal record APIs in the order the API root
// lists them. today dates reports posted without a report_date.
func Collections(store *sqlstore.Store, today func() models.Date, tr *i18n.Translator, logger *zap.Logger) []Collection {
	return []Collection{
		{"healthchecks", handlers.NewResource[models.HealthCheck](
			sqlstore.NewRecords[models.HealthCheck](store, "check_date DESC, id DESC"),
			func(hc *models.HealthCheck) {
				if hc.Status == "" {
					hc.Status = models.StatusHealthy
				}
			}, tr, logger)},
		{"treatments", handlers.NewResource[models.Treatment](
			sqlstore.NewRecords[models.Treatment](store, "treatment_date DESC, id DESC"),
			nil, tr, logger)},
		{"vaccinations", handlers.NewResource[models.Vaccination](
			sqlstore.NewRecords[models.Vaccination](store, "vaccine_date DESC, id DESC"),
			nil, tr, logger)},
		{"rations", handlers.NewResource[models.FeedingRation](
			sqlstore.NewRecords[models.FeedingRation](store, "id"),
			nil, tr, logger)},
		{"notifications", handlers.NewResource[models.Notification](
			sqlstore.NewRecords[models.Notification](store, "notify_date, id"),
			func(n *models.Notification) {
				if n.Status == "" {
					n.Status = models.NotificationPending
				}
			}, tr, logger)},
		{"reports", handlers.NewResource[models.Report](
			sqlstore.NewRecords[models.Report](store, "report_date DESC, id DESC"),
			func(r *models.Report) {
				if r.ReportDate.IsZero() {
					r.ReportDate = today()
				}
			}, tr, logger)},
	}
}
