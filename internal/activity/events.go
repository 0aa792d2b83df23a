package activity

import (
	"fmt"
	"strconv"

	"github.com/mrlokans/libraryhub/internal/domain"
)

// LoanConfirmed describes a new loan.
func LoanConfirmed(loan domain.Loan, bookTitle string) domain.NewActivity {
	return domain.NewActivity{
		UserID:      loan.UserID,
		Type:        domain.ActivityLoanConfirmed,
		Title:       "Loan confirmed",
		Description: fmt.Sprintf("You borrowed %q. Return it by %s.", bookTitle, loan.DueAt.Format("2006-01-02")),
		ItemID:      itemID(loan.BookID),
		ItemTitle:   bookTitle,
		Metadata: map[string]any{
			"loanId":   loan.ID,
			"loanedAt": loan.LoanedAt,
			"dueAt":    loan.DueAt,
		},
		ActionURL: "/loans",
	}
}

// LoanRenewed describes a renewal.
func LoanRenewed(loan domain.Loan, bookTitle string, maxRenewals int) domain.NewActivity {
	return domain.NewActivity{
		UserID:      loan.UserID,
		Type:        domain.ActivityLoanRenewed,
		Title:       "Loan renewed",
		Description: fmt.Sprintf("%q is now due on %s (renewal %d of %d).", bookTitle, loan.DueAt.Format("2006-01-02"), loan.Renewals, maxRenewals),
		ItemID:      itemID(loan.BookID),
		ItemTitle:   bookTitle,
		Metadata: map[string]any{
			"loanId":   loan.ID,
			"dueAt":    loan.DueAt,
			"renewals": loan.Renewals,
		},
		ActionURL: "/loans",
	}
}

// LoanReturned describes a returned book.
func LoanReturned(loan domain.Loan, bookTitle string) domain.NewActivity {
	md := map[string]any{"loanId": loan.ID}
	if loan.ReturnedAt != nil {
		md["returnedAt"] = *loan.ReturnedAt
	}
	return domain.NewActivity{
		UserID:      loan.UserID,
		Type:        domain.ActivityLoanReturned,
		Title:       "Book returned",
		Description: fmt.Sprintf("Thanks for returning %q.", bookTitle),
		ItemID:      itemID(loan.BookID),
		ItemTitle:   bookTitle,
		Metadata:    md,
	}
}

// LoanDueSoon warns that a loan is about to fall due.
func LoanDueSoon(loan domain.Loan, bookTitle string) domain.NewActivity {
	return domain.NewActivity{
		UserID:      loan.UserID,
		Type:        domain.ActivityLoanDueSoon,
		Title:       "Loan due soon",
		Description: fmt.Sprintf("%q is due on %s.", bookTitle, loan.DueAt.Format("2006-01-02")),
		ItemID:      itemID(loan.BookID),
		ItemTitle:   bookTitle,
		Metadata: map[string]any{
			"loanId": loan.ID,
			"dueAt":  loan.DueAt,
		},
		ActionURL: "/loans",
	}
}

// Purchase describes a completed sale.
func Purchase(sale domain.Sale, bookTitle string) domain.NewActivity {
	return domain.NewActivity{
		UserID:      sale.UserID,
		Type:        domain.ActivityPurchase,
		Title:       "Purchase completed",
		Description: fmt.Sprintf("You bought %d × %q for %.2f.", sale.Quantity, bookTitle, sale.Total),
		ItemID:      itemID(sale.BookID),
		ItemTitle:   bookTitle,
		Metadata: map[string]any{
			"saleId":      sale.ID,
			"total":       sale.Total,
			"purchasedAt": sale.CreatedAt,
		},
		ActionURL: "/purchases",
	}
}

// SaleCancelled describes a sale that was cancelled or failed.
func SaleCancelled(sale domain.Sale, bookTitle string) domain.NewActivity {
	return domain.NewActivity{
		UserID:      sale.UserID,
		Type:        domain.ActivitySaleCancelled,
		Title:       "Purchase cancelled",
		Description: fmt.Sprintf("Your purchase of %q was cancelled.", bookTitle),
		ItemID:      itemID(sale.BookID),
		ItemTitle:   bookTitle,
		Metadata:    map[string]any{"saleId": sale.ID},
	}
}

// BookCataloged describes a draft that became a catalog entry.
func BookCataloged(userID uint, book domain.Book) domain.NewActivity {
	return domain.NewActivity{
		UserID:      userID,
		Type:        domain.ActivityBookCataloged,
		Title:       "Book cataloged",
		Description: fmt.Sprintf("%q was added to the catalog.", book.Title),
		ItemID:      itemID(book.ID),
		ItemTitle:   book.Title,
		ActionURL:   "/books/" + itemID(book.ID),
	}
}

func itemID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
