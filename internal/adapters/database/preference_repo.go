package database

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"weatherview.app/internal/config"
	"weatherview.app/pkg/errors"
)

// PreferenceModel represents the database model for preferences
type PreferenceModel struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (PreferenceModel) TableName() string {
	return "preferences"
}

// PreferenceRepositoryAdapter implements the PreferenceStore port using GORM
type PreferenceRepositoryAdapter struct {
	db *gorm.DB
}

// NewPreferenceRepositoryAdapter creates a new preference repository adapter
func NewPreferenceRepositoryAdapter(db *gorm.DB) *PreferenceRepositoryAdapter {
	return &PreferenceRepositoryAdapter{db: db}
}

// Open connects to the configured preferences database and migrates the schema.
// The sqlite file's directory is created when missing.
func Open(cfg config.PreferencesConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "", "sqlite":
		path, err := cfg.SQLitePath()
		if err != nil {
			return nil, err
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, errors.NewPersistenceError("failed to create preferences directory", err)
			}
		}
		dialector = sqlite.Open(path)
	default:
		return nil, errors.NewConfigurationError("unsupported preferences driver: "+cfg.Driver, nil)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.NewPersistenceError("failed to open preferences database", err)
	}
	if err := RunMigrations(db); err != nil {
		_ = Close(db)
		return nil, err
	}
	return db, nil
}

// RunMigrations executes database schema migrations
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&PreferenceModel{}); err != nil {
		return errors.NewPersistenceError("failed to migrate preferences schema", err)
	}
	return nil
}

// Close safely closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.NewPersistenceError("failed to access preferences connection", err)
	}
	if err := sqlDB.Close(); err != nil {
		return errors.NewPersistenceError("failed to close preferences database", err)
	}
	return nil
}

// Get returns the stored value for key. The boolean is false when the key is absent.
func (r *PreferenceRepositoryAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.NewValidationError("preference key cannot be empty")
	}

	var model PreferenceModel
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, errors.NewPersistenceError("failed to read preference", result.Error)
	}
	return model.Value, true, nil
}

// Put creates or replaces the value stored under key
func (r *PreferenceRepositoryAdapter) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.NewValidationError("preference key cannot be empty")
	}

	model := PreferenceModel{Key: key, Value: value, UpdatedAt: time.Now()}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return errors.NewPersistenceError("failed to write preference", result.Error)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *PreferenceRepositoryAdapter) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("preference key cannot be empty")
	}

	if err := r.db.WithContext(ctx).Where("key = ?", key).Delete(&PreferenceModel{}).Error; err != nil {
		return errors.NewPersistenceError("failed to delete preference", err)
	}
	return nil
}
