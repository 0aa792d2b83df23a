// Package notify delivers user-facing notifications (toasts).
//
// Notifiers are fire-and-forget: nothing a caller does depends on delivery.
// A notification is addressed to the profile in its UserID; 0 addresses no one in particular.
package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notification struct {
	UserID      uint      `json:"userId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Severity    Severity  `json:"severity"`
	CreatedAt   time.Time `json:"createdAt"`
}

type userKey struct{}

// WithUser returns a context whose notifications are addressed to userID.
func WithUser(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the recipient set by WithUser, 0 when there is none.
func UserFromContext(ctx context.Context) uint {
	id, _ := ctx.Value(userKey{}).(uint)
	return id
}

// Notifier presents a notification to the user.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	if n.UserID != 0 {
		log.Printf("[%s] user %d: %s %s", n.Severity, n.UserID, n.Title, n.Description)
		return
	}
	if n.Description != "" {
		log.Printf("[%s] %s: %s", n.Severity, n.Title, n.Description)
		return
	}
	log.Printf("[%s] %s", n.Severity, n.Title)
}

// Multi fans a notification out to every notifier.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(n Notification) {
		for _, nt := range notifiers {
			nt.Notify(n)
		}
	})
}

// Feed keeps the most recent notifications in memory, newest first.
// A size of 0 or less keeps everything.
type Feed struct {
	mu    sync.RWMutex
	size  int
	items []Notification
}

func NewFeed(size int) *Feed {
	return &Feed{size: size}
}

func (f *Feed) Notify(n Notification) {
	if n.Severity == "" {
		n.Severity = SeverityInfo
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]Notification{n}, f.items...)
	if f.size > 0 && len(f.items) > f.size {
		f.items = f.items[:f.size]
	}
}

// Recent returns up to limit notifications, newest first. A limit of 0 or less returns all.
func (f *Feed) Recent(limit int) []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if limit <= 0 || limit > len(f.items) {
		limit = len(f.items)
	}
	out := make([]Notification, limit)
	copy(out, f.items[:limit])
	return out
}

// RecentFor returns up to limit of userID's notifications, newest first. A limit of 0 or less
// returns all of them.
func (f *Feed) RecentFor(userID uint, limit int) []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := []Notification{}
	for _, n := range f.items {
		if n.UserID != userID {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// ClearFor drops userID's notifications and reports how many were dropped.
func (f *Feed) ClearFor(userID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, n := range f.items {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	dropped := len(f.items) - len(kept)
	clear(f.items[len(kept):])
	f.items = kept
	return dropped
}

// Len returns the number of notifications held.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

// Clear drops every held notification.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
}

// Success, Info, Warning and Error build notifications with the matching severity.
func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Severity: SeveritySuccess}
}

func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Severity: SeverityInfo}
}

func Warning(title, description string) Notification {
	return Notification{Title: title, Description: description, Severity: SeverityWarning}
}

func Error(title, description string) Notification {
	return Notification{Title: title, Description: description, Severity: SeverityError}
}
