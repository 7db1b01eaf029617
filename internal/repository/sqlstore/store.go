package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mamadbah2/herd/internal/config"
	"github.com/mamadbah2/herd/internal/domain/models"
)

// Store is the relational persistence layer backed by GORM.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// allModels is the migration set, parents first.
var allModels = []any{
	&models.Cattle{},
	&models.HealthCheck{},
	&models.Treatment{},
	&models.Vaccination{},
	&models.FeedingRation{},
	&models.CalendarEvent{},
	&models.Notification{},
	&models.Report{},
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(logger),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	store := &Store{db: db, logger: logger}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	logger.Info("database connection initialized", zap.String("driver", cfg.Driver))
	return store, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.SQLitePath)), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	case config.DriverPostgres:
		dsn := cfg.URL
		if dsn == "" {
			dsn = cfg.DSN
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN turns on foreign key enforcement so cascades hold at the database level.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Migrate creates or updates every table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(allModels...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	s.logger.Info("database schema migrated")
	return nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	return sqlDB.Close()
}
