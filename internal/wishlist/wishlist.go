// Package wishlist keeps the set of book identifiers a user wants to remember.
//
// The set is stored in one slot per user (see SlotKey). A Store owns exactly one user's slot for
// its whole life; servers handling many users take each user's Store from a Registry.
package wishlist

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/storage"
)

// DefaultSlotPrefix is the slot name prefix used when none is configured.
const DefaultSlotPrefix = "wishlist"

// SlotKey returns the slot name holding userID's wishlist. User 0 is the anonymous visitor.
func SlotKey(prefix string, userID uint) string {
	if userID == 0 {
		return prefix + ":guest"
	}
	return fmt.Sprintf("%s:%d", prefix, userID)
}

// Store is the wishlist container. All operations are synchronous and cannot fail.
type Store struct {
	prefix   string
	notifier notify.Notifier

	mu   sync.Mutex
	user uint
	slot *storage.Slot[[]string]
}

// NewStore creates a wishlist bound to the anonymous visitor.
func NewStore(backend storage.Backend, prefix string, notifier notify.Notifier) *Store {
	return newStore(backend, prefix, 0, notifier)
}

func newStore(backend storage.Backend, prefix string, userID uint, notifier notify.Notifier) *Store {
	if prefix == "" {
		prefix = DefaultSlotPrefix
	}
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Store{
		prefix:   prefix,
		notifier: notifier,
		user:     userID,
		slot:     storage.NewSlot(backend, SlotKey(prefix, userID), []string{}),
	}
}

// UserID returns the user the store belongs to.
func (s *Store) UserID() uint {
	return s.user
}

// Contains reports whether bookID is on the wishlist.
func (s *Store) Contains(bookID string) bool {
	return slices.Contains(s.slot.Value(), bookID)
}

// Items returns the identifiers in insertion order.
func (s *Store) Items() []string {
	return slices.Clone(s.slot.Value())
}

func (s *Store) Count() int {
	return len(s.slot.Value())
}

// Toggle flips membership of bookID and reports whether it is now on the wishlist.
func (s *Store) Toggle(bookID, label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.slot.Value(), bookID) {
		s.remove(bookID)
		s.notify(removedNotification(label))
		return false
	}
	s.add(bookID)
	s.notify(addedNotification(label))
	return true
}

// Add puts bookID on the wishlist. It does nothing, and says nothing, if it is already there.
func (s *Store) Add(bookID, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.slot.Value(), bookID) {
		return
	}
	s.add(bookID)
	s.notify(addedNotification(label))
}

// Remove takes bookID off the wishlist. It does nothing if it is not there.
func (s *Store) Remove(bookID, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.slot.Value(), bookID) {
		return
	}
	s.remove(bookID)
	s.notify(removedNotification(label))
}

// notify addresses n to the bound user. Callers hold s.mu.
func (s *Store) notify(n notify.Notification) {
	n.UserID = s.user
	s.notifier.Notify(n)
}

func (s *Store) add(bookID string) {
	s.slot.Update(func(ids []string) []string {
		return append(slices.Clone(ids), bookID)
	})
}

func (s *Store) remove(bookID string) {
	s.slot.Update(func(ids []string) []string {
		return slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == bookID })
	})
}

func addedNotification(label string) notify.Notification {
	if label == "" {
		return notify.Success("Added to wishlist", "The book was added to your wishlist")
	}
	return notify.Success("Added to wishlist", fmt.Sprintf("%q was added to your wishlist", label))
}

func removedNotification(label string) notify.Notification {
	if label == "" {
		return notify.Info("Removed from wishlist", "The book was removed from your wishlist")
	}
	return notify.Info("Removed from wishlist", fmt.Sprintf("%q was removed from your wishlist", label))
}
