package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
)

// snapshotRow is the single-row table behind GormStore. The whole document
// lives in one JSON column; the engine has no per-entity query needs beyond
// load-everything.
type snapshotRow struct {
	ID            uint           `gorm:"primaryKey"`
	SchemaVersion int            `gorm:"column:schema_version;not null"`
	Data          datatypes.JSON `gorm:"column:data;not null"`
	SavedAt       time.Time      `gorm:"column:saved_at;not null"`
}

func (snapshotRow) TableName() string { return "snapshot" }

// GormStore keeps the snapshot in a sqlite database, the durable option for
// deployments where a flat file is too fragile.
type GormStore struct {
	log *logger.Logger
	db  *gorm.DB
}

func NewGormStore(path string, log *logger.Logger) (*GormStore, error) {
	storeLog := log.With("store", "SnapshotGormStore")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite snapshot db: %w", err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot table: %w", err)
	}
	return &GormStore{log: storeLog, db: db}, nil
}

func (s *GormStore) Save(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	row := snapshotRow{
		ID:            1,
		SchemaVersion: doc.SchemaVersion,
		Data:          datatypes.JSON(data),
		SavedAt:       doc.SavedAt,
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("save snapshot row: %w", err)
	}
	s.log.Debug("snapshot saved", "bytes", len(data))
	return nil
}

func (s *GormStore) Load(ctx context.Context) (*Document, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Info("no snapshot row, starting empty")
		return Normalize(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot row: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return Normalize(&doc), nil
}
