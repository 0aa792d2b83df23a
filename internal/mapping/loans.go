package mapping

import (
	"time"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/entities"
)

// LoanStatusFromRemote maps a remote loan status. A confirmed loan past its due date is overdue.
func LoanStatusFromRemote(s string, dueAt, now time.Time) domain.LoanStatus {
	switch s {
	case entities.LoanStatusConfirmed:
		if now.After(dueAt) {
			return domain.LoanStatusOverdue
		}
		return domain.LoanStatusActive
	case entities.LoanStatusReturned:
		return domain.LoanStatusReturned
	case entities.LoanStatusCancelled:
		return domain.LoanStatusCancelled
	default:
		return domain.LoanStatusPending
	}
}

func LoanStatusToRemote(s domain.LoanStatus) string {
	switch s {
	case domain.LoanStatusActive, domain.LoanStatusOverdue:
		return entities.LoanStatusConfirmed
	case domain.LoanStatusReturned:
		return entities.LoanStatusReturned
	case domain.LoanStatusCancelled:
		return entities.LoanStatusCancelled
	default:
		return entities.LoanStatusPending
	}
}

// LoanFromRow maps a loan row as seen at now.
func LoanFromRow(row entities.Loan, now time.Time) domain.Loan {
	loan := domain.Loan{
		ID:         row.ID,
		UserID:     row.UserID,
		BookID:     row.BookID,
		Status:     LoanStatusFromRemote(row.Status, row.DueAt, now),
		LoanedAt:   row.LoanedAt,
		DueAt:      row.DueAt,
		ReturnedAt: row.ReturnedAt,
		Renewals:   intFrom(row.RenewalCount, 0),
	}
	if row.Book != nil {
		loan.BookTitle = row.Book.Title
	}
	return loan
}

func LoansFromRows(rows []entities.Loan, now time.Time) []domain.Loan {
	out := make([]domain.Loan, len(rows))
	for i, r := range rows {
		out[i] = LoanFromRow(r, now)
	}
	return out
}

func LoanToRow(l domain.Loan) entities.Loan {
	return entities.Loan{
		ID:           l.ID,
		UserID:       l.UserID,
		BookID:       l.BookID,
		Status:       LoanStatusToRemote(l.Status),
		LoanedAt:     l.LoanedAt,
		DueAt:        l.DueAt,
		ReturnedAt:   l.ReturnedAt,
		RenewalCount: numString(l.Renewals),
	}
}
