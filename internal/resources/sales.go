package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/mapping"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/query"
)

type Sales struct {
	store    SaleStore
	books    BookStore
	tx       Transactor
	activity ActivityRecorder
	query    *query.Client
	notifier notify.Notifier
}

// NewSales creates the sales resource. Sale rows and stock counts change in one tx; a nil tx
// writes them one after the other.
func NewSales(store SaleStore, books BookStore, tx Transactor, rec ActivityRecorder, q *query.Client, n notify.Notifier) *Sales {
	if tx == nil {
		tx = directTx{}
	}
	if n == nil {
		n = notify.Discard
	}
	if rec == nil {
		rec = discardActivity{}
	}
	return &Sales{store: store, books: books, tx: tx, activity: rec, query: q, notifier: n}
}

func (s *Sales) List(ctx context.Context) ([]domain.Sale, error) {
	return query.Get(ctx, s.query, query.KeyOf(ResourceSales), func(ctx context.Context) ([]domain.Sale, error) {
		rows, err := s.store.GetSales(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load sales: %w", err)
		}
		return mapping.SalesFromRows(rows), nil
	})
}

// ListForUser returns userID's purchases, most recent first.
func (s *Sales) ListForUser(ctx context.Context, userID uint) ([]domain.Sale, error) {
	return query.Get(ctx, s.query, query.KeyOf(ResourceSales, "user", userID), func(ctx context.Context) ([]domain.Sale, error) {
		rows, err := s.store.GetSalesForUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load sales for user %d: %w", userID, err)
		}
		return mapping.SalesFromRows(rows), nil
	})
}

// Create records a completed purchase at the book's current price and takes the copies out of
// stock.
func (s *Sales) Create(ctx context.Context, in domain.NewSale) (domain.Sale, error) {
	sale, err := query.Mutate(ctx, s.query, s.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceSales, ResourceBooks},
		SuccessTitle: "Purchase completed",
		ErrorTitle:   "Purchase failed",
	}, func(ctx context.Context) (domain.Sale, error) {
		return inTx(ctx, s.tx, func(ctx context.Context) (domain.Sale, error) {
			return s.create(ctx, in)
		})
	})
	if err != nil {
		return domain.Sale{}, err
	}
	s.activity.Append(activity.Purchase(sale, sale.BookTitle))
	return sale, nil
}

func (s *Sales) create(ctx context.Context, in domain.NewSale) (domain.Sale, error) {
	if in.Quantity <= 0 {
		in.Quantity = 1
	}
	row, err := s.books.GetBookByID(ctx, in.BookID)
	if err != nil {
		return domain.Sale{}, remoteErr(err, "book", in.BookID)
	}
	book := mapping.BookFromRow(*row)
	if !book.IsAvailable() || book.AvailableQuantity < in.Quantity {
		return domain.Sale{}, fmt.Errorf("%q: %w", book.Title, ErrBookUnavailable)
	}

	sale := domain.Sale{
		UserID:        in.UserID,
		BookID:        in.BookID,
		Quantity:      in.Quantity,
		UnitPrice:     book.Price,
		Total:         book.Price * float64(in.Quantity),
		Status:        domain.SaleStatusCompleted,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
	}
	saleRow := mapping.SaleToRow(sale)
	if err := s.store.CreateSale(ctx, &saleRow); err != nil {
		return domain.Sale{}, fmt.Errorf("failed to record sale: %w", err)
	}
	if _, err := adjustStock(ctx, s.books, book.ID, -in.Quantity, -in.Quantity); err != nil {
		return domain.Sale{}, err
	}

	created := mapping.SaleFromRow(saleRow)
	created.BookTitle = book.Title
	return created, nil
}

// UpdateStatus changes a sale's status. Cancelling a completed sale puts its copies back.
func (s *Sales) UpdateStatus(ctx context.Context, id uint, status domain.SaleStatus) (domain.Sale, error) {
	var cancelled bool
	sale, err := query.Mutate(ctx, s.query, s.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceSales, ResourceBooks},
		SuccessTitle: "Sale updated",
		ErrorTitle:   "Could not update sale",
	}, func(ctx context.Context) (domain.Sale, error) {
		switch status {
		case domain.SaleStatusCompleted, domain.SaleStatusFailed, domain.SaleStatusPending:
		default:
			return domain.Sale{}, invalid("unknown sale status %q", status)
		}
		return inTx(ctx, s.tx, func(ctx context.Context) (domain.Sale, error) {
			before, err := s.store.GetSaleByID(ctx, id)
			if err != nil {
				return domain.Sale{}, remoteErr(err, "sale", id)
			}
			prev := mapping.SaleFromRow(*before)

			row, err := s.store.UpdateSaleStatus(ctx, id, mapping.SaleStatusToRemote(status))
			if err != nil {
				return domain.Sale{}, remoteErr(err, "sale", id)
			}
			cancelled = prev.Status == domain.SaleStatusCompleted && status == domain.SaleStatusFailed
			if cancelled {
				if _, err := adjustStock(ctx, s.books, prev.BookID, prev.Quantity, prev.Quantity); err != nil {
					return domain.Sale{}, err
				}
			}
			return mapping.SaleFromRow(*row), nil
		})
	})
	if err != nil {
		return domain.Sale{}, err
	}
	if cancelled {
		s.activity.Append(activity.SaleCancelled(sale, sale.BookTitle))
	}
	return sale, nil
}

func (s *Sales) Delete(ctx context.Context, id uint) error {
	_, err := query.Mutate(ctx, s.query, s.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceSales},
		SuccessTitle: "Sale deleted",
		ErrorTitle:   "Could not delete sale",
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, remoteErr(s.store.DeleteSale(ctx, id), "sale", id)
	})
	return err
}
