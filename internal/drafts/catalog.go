package drafts

import (
	"context"
	"log"

	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/domain"
)

// BookCreator adds books to the remote catalog.
type BookCreator interface {
	Create(ctx context.Context, book domain.Book) (domain.Book, error)
}

// ActivityRecorder receives one entry per cataloged book.
type ActivityRecorder interface {
	Append(a domain.NewActivity) domain.ActivityEntry
}

// CatalogResult summarizes a Catalog run.
type CatalogResult struct {
	Cataloged []domain.Book
	Failed    int
}

// Catalog turns every confirmed draft into a catalog book. Drafts the catalog accepts are marked
// cataloged; the others are marked failed with the rejection reason and stay for review.
// Only a cancelled context stops the run early.
func (s *Store) Catalog(ctx context.Context, creator BookCreator, rec ActivityRecorder, userID uint) (CatalogResult, error) {
	var result CatalogResult

	for _, d := range s.ByStatus(domain.DraftStatusConfirmed) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		book, err := creator.Create(ctx, BookFromDraft(d))
		if err != nil {
			log.Printf("WARNING: could not catalog draft %s: %v", d.ID, err)
			status, reason := domain.DraftStatusFailed, err.Error()
			s.UpdateOne(d.ID, domain.DraftPatch{Status: &status, Error: &reason})
			result.Failed++
			continue
		}

		status, cleared := domain.DraftStatusCataloged, ""
		s.UpdateOne(d.ID, domain.DraftPatch{Status: &status, Error: &cleared})
		if rec != nil {
			rec.Append(activity.BookCataloged(userID, book))
		}
		result.Cataloged = append(result.Cataloged, book)
	}

	return result, nil
}

// BookFromDraft builds the catalog record for a draft. A draft without a quantity yields one copy.
func BookFromDraft(d domain.BookDraft) domain.Book {
	qty := d.Quantity
	if qty <= 0 {
		qty = 1
	}
	return domain.Book{
		Title:             d.Title,
		Author:            d.Author,
		ISBN:              d.ISBN,
		Barcode:           d.Barcode,
		Publisher:         d.Publisher,
		CoverURL:          d.CoverURL,
		Description:       d.Notes,
		PublicationYear:   d.Year,
		Price:             d.Price,
		Quantity:          qty,
		AvailableQuantity: qty,
		Status:            domain.BookStatusAvailable,
	}
}
