package entities

import "time"

// Remote sale statuses. Anything else is treated as pending.
const (
	SaleStatusConfirmed = "confirmed"
	SaleStatusCancelled = "cancelled"
	SaleStatusPending   = "pending"
)

type Sale struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index" json:"user_id"`
	BookID        uint      `gorm:"index" json:"book_id"`
	Book          *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Quantity      *string   `gorm:"size:16" json:"quantity"`
	UnitPrice     *string   `gorm:"size:32" json:"unit_price"`
	Total         *string   `gorm:"size:32" json:"total"`
	Status        string    `gorm:"index;size:20" json:"status"`
	PaymentMethod string    `gorm:"size:50" json:"payment_method"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Sale) TableName() string {
	return "sales"
}
