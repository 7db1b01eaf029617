package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mamadbah2/herd/internal/domain/models"
)

// SaveHealthEvent persists a health check and any optional vaccination,
// ration and calendar event for one animal. Either every row is written or
// none is.
func (s *Store) SaveHealthEvent(ctx context.Context, cattleID uint, ev models.HealthEvent) error {
	if ev.Check == nil {
		return errors.New("health event without a health check")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists[models.Cattle](tx, cattleID, ErrNotFound); err != nil {
			return err
		}

		ev.Check.CattleID = cattleID
		if err := tx.Create(ev.Check).Error; err != nil {
			return fmt.Errorf("save health check: %w", err)
		}
		if ev.Vaccination != nil {
			ev.Vaccination.CattleID = cattleID
			if err := tx.Create(ev.Vaccination).Error; err != nil {
				return fmt.Errorf("save vaccination: %w", err)
			}
		}
		if ev.Ration != nil {
			ev.Ration.CattleID = cattleID
			if err := tx.Create(ev.Ration).Error; err != nil {
				return fmt.Errorf("save feeding ration: %w", err)
			}
		}
		if ev.Event != nil {
			ev.Event.CattleID = cattleID
			if err := tx.Create(ev.Event).Error; err != nil {
				return fmt.Errorf("save calendar event: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to save health event for cattle %d: %w", cattleID, err)
	}

	s.logger.Info("health event saved",
		zap.Uint("cattle_id", cattleID),
		zap.Uint("health_check_id", ev.Check.ID),
		zap.Bool("vaccination", ev.Vaccination != nil),
		zap.Bool("ration", ev.Ration != nil),
		zap.Bool("event", ev.Event != nil))
	return nil
}
