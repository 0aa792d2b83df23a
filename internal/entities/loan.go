package entities

import "time"

// Remote loan statuses.
const (
	LoanStatusConfirmed = "confirmed"
	LoanStatusReturned  = "returned"
	LoanStatusCancelled = "cancelled"
	LoanStatusPending   = "pending"
)

type Loan struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index" json:"user_id"`
	BookID       uint       `gorm:"index" json:"book_id"`
	Book         *Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Status       string     `gorm:"index;size:20" json:"status"`
	LoanedAt     time.Time  `json:"loaned_at"`
	DueAt        time.Time  `gorm:"index" json:"due_at"`
	ReturnedAt   *time.Time `json:"returned_at"`
	RenewalCount *string    `gorm:"size:8" json:"renewal_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Loan) TableName() string {
	return "loans"
}
