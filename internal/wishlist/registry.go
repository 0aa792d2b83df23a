package wishlist

import (
	"sync"

	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/storage"
)

// Registry hands out one Store per user. Stores are created on first use and stay bound to
// their user for the life of the registry.
type Registry struct {
	backend  storage.Backend
	prefix   string
	notifier notify.Notifier

	mu     sync.Mutex
	stores map[uint]*Store
}

func NewRegistry(backend storage.Backend, prefix string, notifier notify.Notifier) *Registry {
	return &Registry{
		backend:  backend,
		prefix:   prefix,
		notifier: notifier,
		stores:   make(map[uint]*Store),
	}
}

// For returns userID's wishlist.
func (r *Registry) For(userID uint) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[userID]; ok {
		return s
	}
	s := newStore(r.backend, r.prefix, userID, r.notifier)
	r.stores[userID] = s
	return s
}
