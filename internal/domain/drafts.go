package domain

import "time"

type DraftStatus string

const (
	DraftStatusPending   DraftStatus = "pending"
	DraftStatusConfirmed DraftStatus = "confirmed"
	DraftStatusCataloged DraftStatus = "cataloged"
	DraftStatusFailed    DraftStatus = "failed"
)

// BookDraft is a provisional book captured during intake, before it is cataloged.
type BookDraft struct {
	ID        string      `json:"id"`
	ISBN      string      `json:"isbn"`
	Barcode   string      `json:"barcode"`
	Status    DraftStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`

	Title     string  `json:"title,omitempty"`
	Author    string  `json:"author,omitempty"`
	Publisher string  `json:"publisher,omitempty"`
	CoverURL  string  `json:"coverUrl,omitempty"`
	Year      int     `json:"year,omitempty"`
	Quantity  int     `json:"quantity,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// DraftPatch merges into a draft; nil fields are left untouched.
type DraftPatch struct {
	ISBN      *string      `json:"isbn,omitempty"`
	Barcode   *string      `json:"barcode,omitempty"`
	Status    *DraftStatus `json:"status,omitempty"`
	Title     *string      `json:"title,omitempty"`
	Author    *string      `json:"author,omitempty"`
	Publisher *string      `json:"publisher,omitempty"`
	CoverURL  *string      `json:"coverUrl,omitempty"`
	Year      *int         `json:"year,omitempty"`
	Quantity  *int         `json:"quantity,omitempty"`
	Price     *float64     `json:"price,omitempty"`
	Notes     *string      `json:"notes,omitempty"`
	Error     *string      `json:"error,omitempty"`
}

// Apply returns d with every non-nil patch field copied in.
func (p DraftPatch) Apply(d BookDraft) BookDraft {
	if p.ISBN != nil {
		d.ISBN = *p.ISBN
	}
	if p.Barcode != nil {
		d.Barcode = *p.Barcode
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Author != nil {
		d.Author = *p.Author
	}
	if p.Publisher != nil {
		d.Publisher = *p.Publisher
	}
	if p.CoverURL != nil {
		d.CoverURL = *p.CoverURL
	}
	if p.Year != nil {
		d.Year = *p.Year
	}
	if p.Quantity != nil {
		d.Quantity = *p.Quantity
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	if p.Error != nil {
		d.Error = *p.Error
	}
	return d
}
