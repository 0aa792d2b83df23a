package domain

import "time"

type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusOverdue   LoanStatus = "overdue"
	LoanStatusReturned  LoanStatus = "returned"
	LoanStatusCancelled LoanStatus = "cancelled"
	LoanStatusPending   LoanStatus = "pending"
)

type Loan struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"userId"`
	BookID     uint       `json:"bookId"`
	BookTitle  string     `json:"bookTitle,omitempty"`
	Status     LoanStatus `json:"status"`
	LoanedAt   time.Time  `json:"loanedAt"`
	DueAt      time.Time  `json:"dueAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	Renewals   int        `json:"renewals"`
}

// IsOpen reports whether the book is still out.
func (l Loan) IsOpen() bool {
	return l.Status == LoanStatusActive || l.Status == LoanStatusOverdue
}

// IsDueSoon reports whether an open loan falls due within the warning lead time.
// Loans already past due are not "due soon"; they are overdue.
func (l Loan) IsDueSoon(rules BusinessRules, now time.Time) bool {
	if !l.IsOpen() || now.After(l.DueAt) {
		return false
	}
	return l.DueAt.Sub(now) <= time.Duration(rules.DueWarningDays)*24*time.Hour
}

// CanRenew reports whether the renewal limit still allows another renewal.
func (l Loan) CanRenew(rules BusinessRules) bool {
	return l.IsOpen() && l.Renewals < rules.MaxRenewals
}
