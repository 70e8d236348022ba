package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one key-value row.
type Record struct {
	Key       string    `gorm:"column:record_key;type:varchar(64);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Record) TableName() string {
	return "kv_records"
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore keeps records in the kv_records table. Run Migrate first.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Record{})
}

func (s *gormStore) Load(key string) ([]byte, bool, error) {
	var rec Record
	err := s.db.First(&rec, "record_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(rec.Value), true, nil
}

// Save upserts the row for key.
func (s *gormStore) Save(key string, value []byte) error {
	rec := Record{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}
