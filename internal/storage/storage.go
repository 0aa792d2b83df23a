// Package storage mirrors small pieces of client state into a durable key-value backend.
//
// Every value lives in a named slot. Reads never fail: a missing backend, a missing key or a
// value that does not decode all yield the caller's default. Writes never fail either: the
// error is logged and dropped so the in-memory copy stays authoritative for the session.
//
//	slot := storage.NewSlot(backend, "wishlist:7", []string{})
//	slot.Update(func(ids []string) []string { return append(ids, "42") })
package storage

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
)

// ErrUnavailable is reported by backends that cannot be reached at all.
var ErrUnavailable = errors.New("storage unavailable")

// Backend is a durable string key-value store.
// A nil Backend is treated as unavailable: reads are empty and writes are dropped.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Read loads the value stored at key, falling back to def on any failure or when nothing is
// stored there yet. Every fallback is logged with the slot name.
func Read[T any](b Backend, key string, def T) T {
	if b == nil {
		log.Printf("WARNING: storage unavailable, using default for %q", key)
		return def
	}

	raw, ok, err := b.Get(key)
	if err != nil {
		log.Printf("WARNING: failed to read slot %q: %v", key, err)
		return def
	}
	if !ok {
		log.Printf("slot %q is empty, using default", key)
		return def
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		log.Printf("WARNING: malformed data in slot %q: %v", key, err)
		return def
	}
	return value
}

// Write stores value at key. Failures are logged and swallowed.
func Write[T any](b Backend, key string, value T) {
	if b == nil {
		log.Printf("WARNING: storage unavailable, slot %q not persisted", key)
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("WARNING: failed to encode slot %q: %v", key, err)
		return
	}
	if err := b.Set(key, string(data)); err != nil {
		log.Printf("WARNING: failed to write slot %q: %v", key, err)
	}
}

// Slot keeps a typed value in memory and mirrors every change to the backend.
type Slot[T any] struct {
	backend Backend
	def     T

	mu    sync.RWMutex
	key   string
	value T
}

// NewSlot binds a slot to key and loads its current value.
func NewSlot[T any](b Backend, key string, def T) *Slot[T] {
	return &Slot[T]{
		backend: b,
		def:     def,
		key:     key,
		value:   Read(b, key, def),
	}
}

// Key returns the slot name the value is currently bound to.
func (s *Slot[T]) Key() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Value returns the in-memory value.
func (s *Slot[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and persists it.
func (s *Slot[T]) Set(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	Write(s.backend, s.key, value)
}

// Update applies fn to the current value under the slot lock and persists the result.
// It returns the new value.
func (s *Slot[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = fn(s.value)
	Write(s.backend, s.key, s.value)
	return s.value
}

// Rebind switches the slot to a different key and adopts that key's stored value.
// Values are never carried over between keys. Rebinding to the current key is a no-op.
func (s *Slot[T]) Rebind(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == s.key {
		return
	}
	s.key = key
	s.value = Read(s.backend, key, s.def)
}

// MemoryBackend is a process-local Backend, used when no durable store is configured.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
