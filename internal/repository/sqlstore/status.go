package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mamadbah2/herd/internal/domain/models"
)

// latestStatus is the correlated subquery yielding the status of an animal's
// newest health check (check_date, then id). It must be embedded in a query
// over the cattle table.
func (s *Store) latestStatus() *gorm.DB {
	return s.db.Model(&models.HealthCheck{}).
		Select("health_checks.status").
		Where("health_checks.cattle_id = cattle.id").
		Order("health_checks.check_date DESC").
		Order("health_checks.id DESC").
		Limit(1)
}

// withLatestStatus selects cattle columns plus the derived latest_status.
func (s *Store) withLatestStatus(tx *gorm.DB) *gorm.DB {
	return tx.Model(&models.Cattle{}).Select("cattle.*, (?) AS latest_status", s.latestStatus())
}

// Summary counts the herd by derived status in one grouped query.
func (s *Store) Summary(ctx context.Context) (models.HerdSummary, error) {
	inner := s.db.Model(&models.Cattle{}).Select("(?) AS latest_status", s.latestStatus())

	var rows []struct {
		LatestStatus *string
		N            int64
	}
	err := s.db.WithContext(ctx).
		Table("(?) AS herd", inner).
		Select("herd.latest_status AS latest_status, COUNT(*) AS n").
		Group("herd.latest_status").
		Scan(&rows).Error
	if err != nil {
		return models.HerdSummary{}, fmt.Errorf("failed to summarize herd: %w", err)
	}

	var summary models.HerdSummary
	for _, row := range rows {
		summary.Total += row.N
		if row.LatestStatus == nil || *row.LatestStatus == "" {
			summary.Unchecked += row.N
			continue
		}
		switch models.Status(*row.LatestStatus) {
		case models.StatusSick:
			summary.Sick += row.N
		case models.StatusForSale:
			summary.ForSale += row.N
		case models.StatusHealthy:
			summary.Healthy += row.N
		}
	}
	return summary, nil
}

// LatestHealthCheck returns the health check defining the animal's status.
func (s *Store) LatestHealthCheck(ctx context.Context, cattleID uint) (*models.HealthCheck, error) {
	return latestHealthCheck(s.db.WithContext(ctx), cattleID)
}

func latestHealthCheck(tx *gorm.DB, cattleID uint) (*models.HealthCheck, error) {
	var hc models.HealthCheck
	err := tx.Where("cattle_id = ?", cattleID).
		Order("check_date DESC").
		Order("id DESC").
		First(&hc).Error
	if err != nil {
		return nil, translate(err)
	}
	return &hc, nil
}
