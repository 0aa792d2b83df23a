package mapping

import (
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/entities"
)

// SaleStatusFromRemote folds the remote status into completed, failed or pending.
func SaleStatusFromRemote(s string) domain.SaleStatus {
	switch s {
	case entities.SaleStatusConfirmed:
		return domain.SaleStatusCompleted
	case entities.SaleStatusCancelled:
		return domain.SaleStatusFailed
	default:
		return domain.SaleStatusPending
	}
}

func SaleStatusToRemote(s domain.SaleStatus) string {
	switch s {
	case domain.SaleStatusCompleted:
		return entities.SaleStatusConfirmed
	case domain.SaleStatusFailed:
		return entities.SaleStatusCancelled
	default:
		return entities.SaleStatusPending
	}
}

func SaleFromRow(row entities.Sale) domain.Sale {
	quantity := intFrom(row.Quantity, 1)
	unit := floatFrom(row.UnitPrice, 0)
	sale := domain.Sale{
		ID:            row.ID,
		UserID:        row.UserID,
		BookID:        row.BookID,
		Quantity:      quantity,
		UnitPrice:     unit,
		Total:         floatFrom(row.Total, unit*float64(quantity)),
		Status:        SaleStatusFromRemote(row.Status),
		PaymentMethod: row.PaymentMethod,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.Book != nil {
		sale.BookTitle = row.Book.Title
	}
	return sale
}

func SalesFromRows(rows []entities.Sale) []domain.Sale {
	out := make([]domain.Sale, len(rows))
	for i, r := range rows {
		out[i] = SaleFromRow(r)
	}
	return out
}

func SaleToRow(s domain.Sale) entities.Sale {
	return entities.Sale{
		ID:            s.ID,
		UserID:        s.UserID,
		BookID:        s.BookID,
		Quantity:      numString(s.Quantity),
		UnitPrice:     numString(s.UnitPrice),
		Total:         numString(s.Total),
		Status:        SaleStatusToRemote(s.Status),
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
