package mapping

import (
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/entities"
)

func BookFromRow(row entities.Book) domain.Book {
	quantity := intFrom(row.Quantity, 0)
	return domain.Book{
		ID:                row.ID,
		Title:             row.Title,
		Author:            row.Author,
		ISBN:              row.ISBN,
		Barcode:           row.Barcode,
		Publisher:         row.Publisher,
		Category:          row.Category,
		Description:       row.Description,
		CoverURL:          row.CoverURL,
		PublicationYear:   intFrom(row.PublicationYear, 0),
		Price:             floatFrom(row.Price, 0),
		Quantity:          quantity,
		AvailableQuantity: intFrom(row.AvailableQuantity, quantity),
		Status:            bookStatusFromRemote(row.Status),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func BooksFromRows(rows []entities.Book) []domain.Book {
	out := make([]domain.Book, len(rows))
	for i, r := range rows {
		out[i] = BookFromRow(r)
	}
	return out
}

func BookToRow(b domain.Book) entities.Book {
	status := b.Status
	if status == "" {
		status = domain.BookStatusAvailable
	}
	return entities.Book{
		ID:                b.ID,
		Title:             b.Title,
		Author:            b.Author,
		ISBN:              b.ISBN,
		Barcode:           b.Barcode,
		Publisher:         b.Publisher,
		Category:          b.Category,
		Description:       b.Description,
		CoverURL:          b.CoverURL,
		PublicationYear:   optionalNum(b.PublicationYear),
		Price:             numString(b.Price),
		Quantity:          numString(b.Quantity),
		AvailableQuantity: numString(b.AvailableQuantity),
		Status:            string(status),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// BookPatchColumns returns the column updates for the non-nil fields of p.
func BookPatchColumns(p domain.BookPatch) map[string]any {
	cols := map[string]any{}
	setStr := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	setStr("title", p.Title)
	setStr("author", p.Author)
	setStr("isbn", p.ISBN)
	setStr("barcode", p.Barcode)
	setStr("publisher", p.Publisher)
	setStr("category", p.Category)
	setStr("description", p.Description)
	setStr("cover_url", p.CoverURL)
	if p.PublicationYear != nil {
		cols["publication_year"] = optionalNum(*p.PublicationYear)
	}
	if p.Price != nil {
		cols["price"] = numString(*p.Price)
	}
	if p.Quantity != nil {
		cols["quantity"] = numString(*p.Quantity)
	}
	if p.AvailableQuantity != nil {
		cols["available_quantity"] = numString(*p.AvailableQuantity)
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	return cols
}

func bookStatusFromRemote(s string) domain.BookStatus {
	switch domain.BookStatus(s) {
	case domain.BookStatusUnavailable, domain.BookStatusArchived:
		return domain.BookStatus(s)
	}
	return domain.BookStatusAvailable
}
