package sqlstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mamadbah2/herd/internal/domain/models"
)

// DueVaccinations returns vaccinations whose next dose falls within [from, to].
func (s *Store) DueVaccinations(ctx context.Context, from, to models.Date) ([]models.Vaccination, error) {
	var due []models.Vaccination
	err := s.db.WithContext(ctx).
		Where("next_due_date IS NOT NULL AND next_due_date >= ? AND next_due_date <= ?", from, to).
		Order("next_due_date").Order("id").
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load due vaccinations: %w", err)
	}
	return due, nil
}

// CreateReminders inserts notifications, skipping any whose vaccination
// already has one. It returns the rows actually created.
func (s *Store) CreateReminders(ctx context.Context, reminders []models.Notification) ([]models.Notification, error) {
	var created []models.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, n := range reminders {
			if n.VaccinationID != nil {
				var count int64
				if err := tx.Model(&models.Notification{}).Where("vaccination_id = ?", *n.VaccinationID).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					continue
				}
			}
			if n.Status == "" {
				n.Status = models.NotificationPending
			}
			if err := tx.Create(&n).Error; err != nil {
				return err
			}
			created = append(created, n)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reminders: %w", err)
	}
	return created, nil
}

// UnsentNotifications returns pending notifications never delivered.
func (s *Store) UnsentNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.WithContext(ctx).
		Where("status = ? AND sent_at IS NULL", models.NotificationPending).
		Order("notify_date").Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load unsent notifications: %w", err)
	}
	return out, nil
}

// MarkNotificationSent stamps the delivery time.
func (s *Store) MarkNotificationSent(ctx context.Context, id uint, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("sent_at", at)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification %d sent: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
