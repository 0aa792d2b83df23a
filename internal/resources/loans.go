package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/mapping"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/query"
)

type Loans struct {
	store    LoanStore
	books    BookStore
	tx       Transactor
	settings *Settings
	activity ActivityRecorder
	query    *query.Client
	notifier notify.Notifier
	now      func() time.Time
}

// NewLoans creates the loans resource. Loan rows and stock counts change in one tx; a nil tx
// writes them one after the other.
func NewLoans(store LoanStore, books BookStore, tx Transactor, settings *Settings, rec ActivityRecorder, q *query.Client, n notify.Notifier) *Loans {
	if tx == nil {
		tx = directTx{}
	}
	if n == nil {
		n = notify.Discard
	}
	if rec == nil {
		rec = discardActivity{}
	}
	return &Loans{
		store:    store,
		books:    books,
		tx:       tx,
		settings: settings,
		activity: rec,
		query:    q,
		notifier: n,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (l *Loans) List(ctx context.Context) ([]domain.Loan, error) {
	return query.Get(ctx, l.query, query.KeyOf(ResourceLoans), func(ctx context.Context) ([]domain.Loan, error) {
		rows, err := l.store.GetLoans(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load loans: %w", err)
		}
		return mapping.LoansFromRows(rows, l.now()), nil
	})
}

func (l *Loans) ListForUser(ctx context.Context, userID uint) ([]domain.Loan, error) {
	return query.Get(ctx, l.query, query.KeyOf(ResourceLoans, "user", userID), func(ctx context.Context) ([]domain.Loan, error) {
		rows, err := l.store.GetLoansForUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load loans for user %d: %w", userID, err)
		}
		return mapping.LoansFromRows(rows, l.now()), nil
	})
}

func (l *Loans) Get(ctx context.Context, id uint) (domain.Loan, error) {
	return query.Get(ctx, l.query, query.KeyOf(ResourceLoans, id), func(ctx context.Context) (domain.Loan, error) {
		return l.fetchOne(ctx, id)
	})
}

// Create lends bookID to userID for the configured loan period.
func (l *Loans) Create(ctx context.Context, userID, bookID uint) (domain.Loan, error) {
	loan, err := query.Mutate(ctx, l.query, l.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceLoans, ResourceBooks},
		SuccessTitle: "Loan confirmed",
		ErrorTitle:   "Could not create loan",
	}, func(ctx context.Context) (domain.Loan, error) {
		rules := l.settings.BusinessRules(ctx)
		return inTx(ctx, l.tx, func(ctx context.Context) (domain.Loan, error) {
			return l.create(ctx, rules, userID, bookID)
		})
	})
	if err != nil {
		return domain.Loan{}, err
	}
	l.activity.Append(activity.LoanConfirmed(loan, loan.BookTitle))
	return loan, nil
}

func (l *Loans) create(ctx context.Context, rules domain.BusinessRules, userID, bookID uint) (domain.Loan, error) {
	open, err := l.store.CountOpenLoans(ctx, userID)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("failed to count loans: %w", err)
	}
	if int(open) >= rules.MaxSimultaneousLoans {
		return domain.Loan{}, fmt.Errorf("%w: at most %d books at a time", ErrLoanLimitReached, rules.MaxSimultaneousLoans)
	}

	row, err := l.books.GetBookByID(ctx, bookID)
	if err != nil {
		return domain.Loan{}, remoteErr(err, "book", bookID)
	}
	book := mapping.BookFromRow(*row)
	if !book.IsAvailable() {
		return domain.Loan{}, fmt.Errorf("%q: %w", book.Title, ErrBookUnavailable)
	}

	now := l.now()
	loan := domain.Loan{
		UserID:   userID,
		BookID:   bookID,
		Status:   domain.LoanStatusActive,
		LoanedAt: now,
		DueAt:    now.AddDate(0, 0, rules.MaxLoanDays),
	}
	loanRow := mapping.LoanToRow(loan)
	if err := l.store.CreateLoan(ctx, &loanRow); err != nil {
		return domain.Loan{}, fmt.Errorf("failed to create loan: %w", err)
	}
	if _, err := adjustStock(ctx, l.books, bookID, 0, -1); err != nil {
		return domain.Loan{}, err
	}

	created := mapping.LoanFromRow(loanRow, now)
	created.BookTitle = book.Title
	return created, nil
}

// Renew extends an open loan by another loan period.
func (l *Loans) Renew(ctx context.Context, id uint) (domain.Loan, error) {
	var maxRenewals int
	loan, err := query.Mutate(ctx, l.query, l.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceLoans},
		SuccessTitle: "Loan renewed",
		ErrorTitle:   "Could not renew loan",
	}, func(ctx context.Context) (domain.Loan, error) {
		rules := l.settings.BusinessRules(ctx)
		maxRenewals = rules.MaxRenewals

		row, err := l.store.GetLoanByID(ctx, id)
		if err != nil {
			return domain.Loan{}, remoteErr(err, "loan", id)
		}
		loan := mapping.LoanFromRow(*row, l.now())
		if !loan.IsOpen() {
			return domain.Loan{}, fmt.Errorf("loan %d: %w", id, ErrLoanClosed)
		}
		if !loan.CanRenew(rules) {
			return domain.Loan{}, fmt.Errorf("%w: at most %d renewals", ErrRenewalLimitReached, rules.MaxRenewals)
		}

		loan.Renewals++
		loan.DueAt = loan.DueAt.AddDate(0, 0, rules.MaxLoanDays)
		updated := mapping.LoanToRow(loan)
		updated.CreatedAt = row.CreatedAt
		if err := l.store.SaveLoan(ctx, &updated); err != nil {
			return domain.Loan{}, fmt.Errorf("failed to renew loan %d: %w", id, err)
		}
		return mapping.LoanFromRow(updated, l.now()), nil
	})
	if err != nil {
		return domain.Loan{}, err
	}
	loan.BookTitle = l.bookTitle(ctx, loan.BookID)
	l.activity.Append(activity.LoanRenewed(loan, loan.BookTitle, maxRenewals))
	return loan, nil
}

// Return closes an open loan and puts the copy back on the shelf.
func (l *Loans) Return(ctx context.Context, id uint) (domain.Loan, error) {
	loan, err := query.Mutate(ctx, l.query, l.notifier, query.MutationOptions{
		Invalidates:  []string{ResourceLoans, ResourceBooks},
		SuccessTitle: "Book returned",
		ErrorTitle:   "Could not return book",
	}, func(ctx context.Context) (domain.Loan, error) {
		return inTx(ctx, l.tx, func(ctx context.Context) (domain.Loan, error) {
			return l.giveBack(ctx, id)
		})
	})
	if err != nil {
		return domain.Loan{}, err
	}
	l.activity.Append(activity.LoanReturned(loan, loan.BookTitle))
	return loan, nil
}

func (l *Loans) giveBack(ctx context.Context, id uint) (domain.Loan, error) {
	row, err := l.store.GetLoanByID(ctx, id)
	if err != nil {
		return domain.Loan{}, remoteErr(err, "loan", id)
	}
	now := l.now()
	loan := mapping.LoanFromRow(*row, now)
	if !loan.IsOpen() {
		return domain.Loan{}, fmt.Errorf("loan %d: %w", id, ErrLoanClosed)
	}

	loan.Status = domain.LoanStatusReturned
	loan.ReturnedAt = &now
	updated := mapping.LoanToRow(loan)
	updated.CreatedAt = row.CreatedAt
	if err := l.store.SaveLoan(ctx, &updated); err != nil {
		return domain.Loan{}, fmt.Errorf("failed to return loan %d: %w", id, err)
	}
	if _, err := adjustStock(ctx, l.books, loan.BookID, 0, 1); err != nil {
		return domain.Loan{}, err
	}
	returned := mapping.LoanFromRow(updated, now)
	if row.Book != nil {
		returned.BookTitle = row.Book.Title
	}
	return returned, nil
}

// DueSoon returns open loans falling due within the warning lead time, soonest first.
// It always reads the remote service.
func (l *Loans) DueSoon(ctx context.Context) ([]domain.Loan, error) {
	rules := l.settings.BusinessRules(ctx)
	now := l.now()
	horizon := now.Add(time.Duration(rules.DueWarningDays) * 24 * time.Hour)

	rows, err := l.store.GetOpenLoansDueBefore(ctx, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to load due loans: %w", err)
	}
	var due []domain.Loan
	for _, loan := range mapping.LoansFromRows(rows, now) {
		if loan.IsDueSoon(rules, now) {
			due = append(due, loan)
		}
	}
	return due, nil
}

func (l *Loans) fetchOne(ctx context.Context, id uint) (domain.Loan, error) {
	row, err := l.store.GetLoanByID(ctx, id)
	if err != nil {
		return domain.Loan{}, remoteErr(err, "loan", id)
	}
	return mapping.LoanFromRow(*row, l.now()), nil
}

func (l *Loans) bookTitle(ctx context.Context, bookID uint) string {
	row, err := l.books.GetBookByID(ctx, bookID)
	if err != nil {
		return ""
	}
	return row.Title
}
