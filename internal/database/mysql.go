package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"property-storefront/internal/storage"
)

// StoreEntry is one persisted collection document.
type StoreEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:191"`
	Value     string `gorm:"column:value;type:longtext;not null"`
	UpdatedAt time.Time
}

// TableName pins the table shared with SQLPort.
func (StoreEntry) TableName() string {
	return entriesTable
}

// GormPort stores documents through gorm.
type GormPort struct {
	db *gorm.DB
}

// OpenMySQL connects to MySQL and migrates the entries table.
func OpenMySQL(dsn string) (*GormPort, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	port := NewGormPortFromDB(db)
	if err := port.InitSchema(); err != nil {
		return nil, err
	}
	return port, nil
}

// NewGormPortFromDB wraps an existing gorm.DB instance
func NewGormPortFromDB(db *gorm.DB) *GormPort {
	return &GormPort{db: db}
}

// InitSchema creates tables using GORM AutoMigrate
func (g *GormPort) InitSchema() error {
	return g.db.AutoMigrate(&StoreEntry{})
}

// Read returns the document stored under key.
func (g *GormPort) Read(ctx context.Context, key string) ([]byte, error) {
	var entry StoreEntry
	err := g.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql read %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Write upserts the document under key.
func (g *GormPort) Write(ctx context.Context, key string, data []byte) error {
	entry := StoreEntry{Key: key, Value: string(data)}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("mysql write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (g *GormPort) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&StoreEntry{}).Error; err != nil {
		return fmt.Errorf("mysql delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (g *GormPort) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
