// Package drafts holds provisional book records captured during intake.
//
// Drafts are created in batches from scanned or typed codes and refined field by field until
// they are cataloged. New drafts are appended, so the collection keeps scan order.
package drafts

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/storage"
)

// DefaultSlotKey is the slot the drafts are stored under when none is configured.
const DefaultSlotKey = "book_drafts"

// Store is the draft container. Mutations never fail; unknown ids are ignored.
type Store struct {
	slot *storage.Slot[[]domain.BookDraft]

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewStore loads the drafts stored under key.
func NewStore(backend storage.Backend, key string) *Store {
	if key == "" {
		key = DefaultSlotKey
	}
	return &Store{
		slot:  storage.NewSlot(backend, key, []domain.BookDraft{}),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// AddBatch creates one pending draft per non-blank code and returns the new drafts.
func (s *Store) AddBatch(codes []string) []domain.BookDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]domain.BookDraft, 0, len(codes))
	now := s.now()
	for _, raw := range codes {
		code := strings.TrimSpace(raw)
		if code == "" {
			continue
		}
		d := domain.BookDraft{
			ID:        s.newID(),
			Status:    domain.DraftStatusPending,
			CreatedAt: now,
		}
		if LooksLikeISBN(code) {
			d.ISBN = code
		} else {
			d.Barcode = code
		}
		created = append(created, d)
	}
	if len(created) == 0 {
		return created
	}

	s.slot.Update(func(drafts []domain.BookDraft) []domain.BookDraft {
		return append(slices.Clone(drafts), created...)
	})
	return created
}

// UpdateOne merges patch into the draft with the given id and reports whether it was found.
func (s *Store) UpdateOne(id string, patch domain.DraftPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	s.slot.Update(func(drafts []domain.BookDraft) []domain.BookDraft {
		next := slices.Clone(drafts)
		for i := range next {
			if next[i].ID == id {
				next[i] = patch.Apply(next[i])
				found = true
			}
		}
		return next
	})
	return found
}

func (s *Store) RemoveOne(id string) {
	s.RemoveMany([]string{id})
}

// RemoveMany drops every draft whose id is listed.
func (s *Store) RemoveMany(ids []string) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slot.Update(func(drafts []domain.BookDraft) []domain.BookDraft {
		return slices.DeleteFunc(slices.Clone(drafts), func(d domain.BookDraft) bool {
			return slices.Contains(ids, d.ID)
		})
	})
}

func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot.Set([]domain.BookDraft{})
}

// All returns every draft in creation order.
func (s *Store) All() []domain.BookDraft {
	return slices.Clone(s.slot.Value())
}

func (s *Store) Get(id string) (domain.BookDraft, bool) {
	for _, d := range s.slot.Value() {
		if d.ID == id {
			return d, true
		}
	}
	return domain.BookDraft{}, false
}

// ByStatus returns the drafts currently in status, in creation order.
func (s *Store) ByStatus(status domain.DraftStatus) []domain.BookDraft {
	var out []domain.BookDraft
	for _, d := range s.slot.Value() {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) Len() int {
	return len(s.slot.Value())
}

// LooksLikeISBN reports whether code is made of digits and hyphens (an X check digit is
// allowed last) and has 10 or 13 significant characters.
func LooksLikeISBN(code string) bool {
	n := 0
	for i, r := range code {
		switch {
		case r == '-':
			continue
		case r >= '0' && r <= '9':
			n++
		case (r == 'X' || r == 'x') && i == len(code)-1:
			n++
		default:
			return false
		}
	}
	return n == 10 || n == 13
}
