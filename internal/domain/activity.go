package domain

import "time"

type ActivityType string

const (
	ActivityLoanConfirmed ActivityType = "loan_confirmed"
	ActivityLoanRenewed   ActivityType = "loan_renewed"
	ActivityLoanReturned  ActivityType = "loan_returned"
	ActivityLoanDueSoon   ActivityType = "loan_due_soon"
	ActivityPurchase      ActivityType = "purchase"
	ActivitySaleCancelled ActivityType = "sale_cancelled"
	ActivityBookCataloged ActivityType = "book_cataloged"
)

// ActivityEntry is immutable once created.
type ActivityEntry struct {
	ID          string         `json:"id"`
	UserID      uint           `json:"userId"`
	Type        ActivityType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ItemID      string         `json:"itemId"`
	ItemTitle   string         `json:"itemTitle"`
	CreatedAt   time.Time      `json:"createdAt"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ActionURL   string         `json:"actionUrl,omitempty"`
}

// NewActivity is everything the caller supplies; the log assigns ID and CreatedAt.
type NewActivity struct {
	UserID      uint           `json:"userId"`
	Type        ActivityType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ItemID      string         `json:"itemId"`
	ItemTitle   string         `json:"itemTitle"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ActionURL   string         `json:"actionUrl,omitempty"`
}
