package kv

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"cleanspot/internal/domain"
)

// record is the single-table relational rendition of the medium: one row
// per key, value as a JSON blob.
type record struct {
	Key   string `gorm:"primaryKey;size:191"`
	Value []byte `gorm:"type:bytes"`
}

func (record) TableName() string { return "kv_records" }

type GormOpts struct {
	Driver             string // "postgres" or "mysql"
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

type Gorm struct {
	db *gorm.DB
}

// NewGorm opens the relational backend and migrates the kv table.
func NewGorm(o GormOpts) (*Gorm, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dial = mysql.Open(o.DSN)
	default:
		return nil, domain.ErrUnsupported
	}

	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	db = db.Session(&gorm.Session{
		PrepareStmt:            true,
		SkipDefaultTransaction: true, // every op is a single-row write
	})

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var rec record
	err := g.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	rec := record{Key: key, Value: value}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&rec).Error
}

func (g *Gorm) Del(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&record{}, "key = ?", key).Error
}
