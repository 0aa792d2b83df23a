package entities

import "time"

// Slot is one named value of durable client state.
type Slot struct {
	Key       string    `gorm:"primaryKey;size:200" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Slot) TableName() string {
	return "storage_slots"
}
