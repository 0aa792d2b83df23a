// Package slots stores named client-state values in the database.
//
// Repository implements storage.Backend, so the wishlist, activity log and drafts survive
// restarts when the sqlite storage backend is configured.
package slots

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/libraryhub/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the value stored at key. A missing key is reported with ok=false.
func (r *Repository) Get(key string) (string, bool, error) {
	var slot entities.Slot
	err := r.db.Where("key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return slot.Value, true, nil
}

// Set stores value at key, replacing what was there.
func (r *Repository) Set(key, value string) error {
	slot := entities.Slot{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

// Keys lists the stored slot names with the given prefix.
func (r *Repository) Keys(prefix string) ([]string, error) {
	var keys []string
	err := r.db.Model(&entities.Slot{}).Where("key LIKE ?", prefix+"%").Order("key ASC").Pluck("key", &keys).Error
	return keys, err
}
