// Package store persists engine snapshots as JSON payload rows in sqlite,
// keyed by name. It is a plain key-value surface; the engine treats writes as
// best-effort and never depends on the store for derivations.
package store

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/futsalboard/server/internal/domain"
)

type Record struct {
	Key       string `gorm:"primaryKey"`
	Payload   string
	UpdatedAt time.Time
}

func (Record) TableName() string { return "snapshots" }

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// Put marshals value and upserts it under key.
func (s *Store) Put(key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return domain.ErrInternal("marshal snapshot", err)
	}
	rec := Record{Key: key, Payload: string(b), UpdatedAt: time.Now()}
	return s.db.Save(&rec).Error
}

// Get unmarshals the payload stored under key into dest.
func (s *Store) Get(key string, dest any) error {
	var rec Record
	if err := s.db.First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound("snapshot", key)
		}
		return err
	}
	if err := json.Unmarshal([]byte(rec.Payload), dest); err != nil {
		return domain.ErrParse("stored snapshot "+key+" is corrupt", err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	return s.db.Delete(&Record{}, "key = ?", key).Error
}
