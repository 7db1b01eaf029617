package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mamadbah2/herd/internal/domain/models"
)

// CattleFilter narrows ListCattle.
type CattleFilter struct {
	// Query matches tag numbers case-insensitively as a substring.
	Query string
	// Status keeps only animals whose derived status equals it.
	Status models.Status
	// WithChecks preloads health checks, newest first.
	WithChecks bool
}

// ListCattle returns animals with their derived status, ordered by id.
func (s *Store) ListCattle(ctx context.Context, filter CattleFilter) ([]models.Cattle, error) {
	q := s.withLatestStatus(s.db.WithContext(ctx))

	if filter.Query != "" {
		q = q.Where("LOWER(cattle.tag_no) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(filter.Query))+"%")
	}
	if filter.Status != "" {
		q = q.Where("(?) = ?", s.latestStatus(), string(filter.Status))
	}
	if filter.WithChecks {
		q = q.Preload("HealthChecks", orderChecks)
	}

	var herd []models.Cattle
	if err := q.Order("cattle.id").Find(&herd).Error; err != nil {
		return nil, fmt.Errorf("failed to list cattle: %w", err)
	}
	return herd, nil
}

// GetCattle loads one animal with its derived status. withChecks preloads its
// health checks newest first.
func (s *Store) GetCattle(ctx context.Context, id uint, withChecks bool) (*models.Cattle, error) {
	q := s.withLatestStatus(s.db.WithContext(ctx))
	if withChecks {
		q = q.Preload("HealthChecks", orderChecks)
	}

	var c models.Cattle
	if err := q.Where("cattle.id = ?", id).Take(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// CattleByIDs loads the given animals keyed by id.
func (s *Store) CattleByIDs(ctx context.Context, ids []uint) (map[uint]models.Cattle, error) {
	out := make(map[uint]models.Cattle, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var herd []models.Cattle
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&herd).Error; err != nil {
		return nil, fmt.Errorf("failed to load cattle: %w", err)
	}
	for _, c := range herd {
		out[c.ID] = c
	}
	return out, nil
}

// FindByTag loads one animal by tag number, with its derived status. An exact
// match wins. Otherwise a case-insensitive match is used when it is unique,
// since tag numbers are unique only as written.
func (s *Store) FindByTag(ctx context.Context, tag string) (*models.Cattle, error) {
	tag = strings.TrimSpace(tag)

	var c models.Cattle
	err := s.withLatestStatus(s.db.WithContext(ctx)).
		Where("cattle.tag_no = ?", tag).
		Take(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translate(err)
	}

	var matches []models.Cattle
	err = s.withLatestStatus(s.db.WithContext(ctx)).
		Where("LOWER(cattle.tag_no) = ?", strings.ToLower(tag)).
		Order("cattle.id").
		Limit(2).
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cattle %q: %w", tag, err)
	}
	if len(matches) != 1 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}

// SaveCattle creates (ID == 0) or fully updates an animal. When status is
// given it is written to the latest health check, or to a new check dated
// fallbackDate when the animal has none. Everything happens in one transaction.
func (s *Store) SaveCattle(ctx context.Context, c *models.Cattle, status *models.Status, fallbackDate models.Date) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.ID == 0 {
			if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
				return err
			}
		} else {
			if err := ensureExists[models.Cattle](tx, c.ID, ErrNotFound); err != nil {
				return err
			}
			if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
				return err
			}
		}

		if status == nil {
			return nil
		}
		return writeStatus(tx, c, *status, fallbackDate)
	})
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicateTag
		}
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to save cattle %q: %w", c.TagNo, err)
	}

	s.logger.Info("cattle saved", zap.Uint("id", c.ID), zap.String("tag_no", c.TagNo))
	return nil
}

func writeStatus(tx *gorm.DB, c *models.Cattle, status models.Status, fallbackDate models.Date) error {
	latest, err := latestHealthCheck(tx, c.ID)
	switch {
	case err == nil:
		return tx.Model(latest).Update("status", status).Error
	case errors.Is(err, ErrNotFound):
		checkDate := fallbackDate
		if c.BirthDate != nil && !c.BirthDate.IsZero() {
			checkDate = *c.BirthDate
		}
		return tx.Create(&models.HealthCheck{CattleID: c.ID, CheckDate: checkDate, Status: status}).Error
	default:
		return err
	}
}

// ownedTables lists every child model removed together with its animal.
var ownedTables = []any{
	&models.HealthCheck{},
	&models.Treatment{},
	&models.Vaccination{},
	&models.FeedingRation{},
	&models.CalendarEvent{},
	&models.Notification{},
	&models.Report{},
}

// DeleteCattle removes an animal and every row that belongs to it. Children
// are deleted explicitly so the cascade holds even where the driver does not
// enforce foreign keys.
func (s *Store) DeleteCattle(ctx context.Context, id uint) (*models.Cattle, error) {
	var deleted models.Cattle
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, id).Error; err != nil {
			return translate(err)
		}
		for _, child := range ownedTables {
			if err := tx.Where("cattle_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("delete %T rows: %w", child, err)
			}
		}
		return tx.Delete(&models.Cattle{}, id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete cattle %d: %w", id, err)
	}

	s.logger.Info("cattle deleted", zap.Uint("id", id), zap.String("tag_no", deleted.TagNo))
	return &deleted, nil
}

func orderChecks(db *gorm.DB) *gorm.DB {
	return db.Order("check_date DESC").Order("id DESC")
}

// ensureExists returns notFound when no T row has the given id.
func ensureExists[T any](tx *gorm.DB, id uint, notFound error) error {
	var count int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
