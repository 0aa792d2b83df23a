// Package domain holds the application-shaped records the rest of the code works with.
//
// Remote rows (internal/entities) are translated into these types by internal/mapping;
// nothing outside that package should look at row representations.
package domain

import "time"

type BookStatus string

const (
	BookStatusAvailable   BookStatus = "available"
	BookStatusUnavailable BookStatus = "unavailable"
	BookStatusArchived    BookStatus = "archived"
)

type Book struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Author            string     `json:"author"`
	ISBN              string     `json:"isbn,omitempty"`
	Barcode           string     `json:"barcode,omitempty"`
	Publisher         string     `json:"publisher,omitempty"`
	Category          string     `json:"category,omitempty"`
	Description       string     `json:"description,omitempty"`
	CoverURL          string     `json:"coverUrl,omitempty"`
	PublicationYear   int        `json:"publicationYear,omitempty"`
	Price             float64    `json:"price"`
	Quantity          int        `json:"quantity"`
	AvailableQuantity int        `json:"availableQuantity"`
	Status            BookStatus `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// IsAvailable reports whether at least one copy can be lent or sold.
func (b Book) IsAvailable() bool {
	return b.Status != BookStatusArchived && b.AvailableQuantity > 0
}

// BookPatch carries a partial update; nil fields are left untouched.
type BookPatch struct {
	Title             *string     `json:"title,omitempty"`
	Author            *string     `json:"author,omitempty"`
	ISBN              *string     `json:"isbn,omitempty"`
	Barcode           *string     `json:"barcode,omitempty"`
	Publisher         *string     `json:"publisher,omitempty"`
	Category          *string     `json:"category,omitempty"`
	Description       *string     `json:"description,omitempty"`
	CoverURL          *string     `json:"coverUrl,omitempty"`
	PublicationYear   *int        `json:"publicationYear,omitempty"`
	Price             *float64    `json:"price,omitempty"`
	Quantity          *int        `json:"quantity,omitempty"`
	AvailableQuantity *int        `json:"availableQuantity,omitempty"`
	Status            *BookStatus `json:"status,omitempty"`
}
