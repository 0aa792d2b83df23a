package domain

import "time"

// SaleStatus is the application view of a sale. Remote statuses are folded into these three.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusFailed    SaleStatus = "failed"
	SaleStatusPending   SaleStatus = "pending"
)

type Sale struct {
	ID            uint       `json:"id"`
	UserID        uint       `json:"userId"`
	BookID        uint       `json:"bookId"`
	BookTitle     string     `json:"bookTitle,omitempty"`
	Quantity      int        `json:"quantity"`
	UnitPrice     float64    `json:"unitPrice"`
	Total         float64    `json:"total"`
	Status        SaleStatus `json:"status"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewSale is the input for recording a purchase.
type NewSale struct {
	UserID        uint   `json:"userId"`
	BookID        uint   `json:"bookId"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}
