// Package runlog stores the history of calculator runs.
package runlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/validation"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ToolRun is one saved calculator run. RawData holds the engine output as JSON.
type ToolRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ToolSlug  string    `gorm:"type:varchar(50);not null;index" json:"toolSlug"`
	ToolName  string    `gorm:"type:varchar(100);not null" json:"toolName"`
	Version   string    `gorm:"type:varchar(50)" json:"version"`
	RawData   string    `gorm:"type:text;not null" json:"rawData"`
	Summary   string    `gorm:"type:varchar(500)" json:"summary"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

// TableName returns the table name for ToolRun.
func (ToolRun) TableName() string {
	return "tool_runs"
}

// Store is the run history used by the HTTP API.
type Store interface {
	Create(ctx context.Context, run *ToolRun) error
	FindByID(ctx context.Context, id uuid.UUID) (*ToolRun, error)
	List(ctx context.Context, toolSlug string, limit int) ([]ToolRun, error)
}

// Repository is a gorm-backed Store.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects to the configured database and migrates the run table.
func Open(driver, dsn string, log *zap.Logger) (*Repository, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if driver == DriverSQLite {
		// in-memory databases exist per connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return NewRepository(db, log)
}

// NewRepository wraps an open gorm connection and migrates the run table.
func NewRepository(db *gorm.DB, log *zap.Logger) (*Repository, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := db.AutoMigrate(&ToolRun{}); err != nil {
		return nil, fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return &Repository{db: db, logger: log}, nil
}

// Create validates and inserts run, assigning its ID and timestamp.
func (r *Repository) Create(ctx context.Context, run *ToolRun) error {
	if err := validation.ValidateRun(run.ToolSlug, run.ToolName, run.Summary); err != nil {
		return err
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	r.logger.Debug("saved tool run",
		zap.String("op", "runlog.Create"),
		zap.String("id", run.ID.String()),
		zap.String("tool", run.ToolSlug),
	)
	return nil
}

// FindByID retrieves a run by its ID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*ToolRun, error) {
	var run ToolRun
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&run)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, result.Error
	}
	return &run, nil
}

// List returns the newest runs first, optionally filtered by tool. The limit
// defaults to constants.DefaultRunListLimit and is capped at
// constants.MaxRunListLimit.
func (r *Repository) List(ctx context.Context, toolSlug string, limit int) ([]ToolRun, error) {
	if limit <= 0 {
		limit = constants.DefaultRunListLimit
	}
	if limit > constants.MaxRunListLimit {
		limit = constants.MaxRunListLimit
	}

	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if toolSlug != "" {
		query = query.Where("tool_slug = ?", toolSlug)
	}

	var runs []ToolRun
	if err := query.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}
	return sqlDB.Close()
}
