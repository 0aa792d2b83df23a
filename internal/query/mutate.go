package query

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/libraryhub/internal/notify"
)

// MutationOptions describes the side effects of a successful or failed write.
type MutationOptions struct {
	// Invalidates lists the resource namespaces the write makes stale.
	Invalidates []string

	SuccessTitle       string
	SuccessDescription string
	// ErrorTitle heads the error notification; the description is the error message verbatim.
	ErrorTitle string
}

// Mutate runs fn once. On success it invalidates opts.Invalidates, waits for live subscriptions
// to refetch, then notifies. On failure it notifies with the error message and changes nothing.
// Nothing is rendered optimistically. Notifications go to the user carried by ctx
// (see notify.WithUser).
func Mutate[T any](ctx context.Context, c *Client, n notify.Notifier, opts MutationOptions, fn func(ctx context.Context) (T, error)) (T, error) {
	if n == nil {
		n = notify.Discard
	}

	result, err := fn(ctx)
	if err != nil {
		title := opts.ErrorTitle
		if title == "" {
			title = "Something went wrong"
		}
		note := notify.Error(title, err.Error())
		note.UserID = notify.UserFromContext(ctx)
		n.Notify(note)
		var zero T
		return zero, err
	}

	if c != nil {
		if err := c.Invalidate(ctx, opts.Invalidates...); err != nil {
			log.Printf("WARNING: refetch after mutation interrupted: %v", err)
		}
	}

	if opts.SuccessTitle != "" {
		note := notify.Success(opts.SuccessTitle, opts.SuccessDescription)
		note.UserID = notify.UserFromContext(ctx)
		n.Notify(note)
	}
	return result, nil
}

// Get is Fetch with a typed result.
func Get[T any](ctx context.Context, c *Client, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached value is %T, not %T", key, v, zero)
	}
	return typed, nil
}
