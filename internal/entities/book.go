package entities

import "time"

// Book is a catalog row. Numeric columns are nullable text, as the remote service sends them.
type Book struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"index;size:512" json:"title"`
	Author            string    `gorm:"index;size:256" json:"author"`
	ISBN              string    `gorm:"index;size:20" json:"isbn"`
	Barcode           string    `gorm:"index;size:64" json:"barcode"`
	Publisher         string    `gorm:"size:256" json:"publisher"`
	Category          string    `gorm:"index;size:100" json:"category"`
	Description       string    `gorm:"type:text" json:"description"`
	CoverURL          string    `gorm:"size:1024" json:"cover_url"`
	PublicationYear   *string   `gorm:"size:10" json:"publication_year"`
	Price             *string   `gorm:"size:32" json:"price"`
	Quantity          *string   `gorm:"size:16" json:"quantity"`
	AvailableQuantity *string   `gorm:"size:16" json:"available_quantity"`
	Status            string    `gorm:"index;size:20;default:available" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
