// Package query caches remote reads per resource namespace and refetches them when a
// mutation invalidates the namespace.
//
// A view subscribes to a key; the subscription holds the latest State and calls its listener
// whenever that state changes. Mutations run through Mutate, which invalidates the namespaces
// they touch so every live subscription under them refetches before Mutate returns.
package query

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultStaleTime is how long a successful result is served from cache.
const DefaultStaleTime = 30 * time.Second

// maxParallelRefetch bounds how many subscriptions refetch at once after an invalidation.
const maxParallelRefetch = 8

// Key identifies a cached query. Resource is the namespace invalidation works on.
type Key struct {
	Resource string
	Params   string
}

// KeyOf builds a key for resource, optionally narrowed by params (an id, an owner...).
func KeyOf(resource string, params ...any) Key {
	if len(params) == 0 {
		return Key{Resource: resource}
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprint(p)
	}
	return Key{Resource: resource, Params: strings.Join(parts, ":")}
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + ":" + k.Params
}

// Fetcher loads the value for a key from the remote service.
type Fetcher func(ctx context.Context) (any, error)

// State is what a view renders: the last data, the last error, and whether a fetch is running.
type State struct {
	Data      any
	Err       error
	Loading   bool
	UpdatedAt time.Time
}

type entry struct {
	data      any
	err       error
	updatedAt time.Time
	stale     bool
	// gen increases on every invalidation; fetches started under an older gen stay stale.
	gen uint64
	// loadedGen is the gen of the fetch whose result is stored.
	loadedGen uint64
}

// Client is the query cache. It is safe for concurrent use.
type Client struct {
	staleTime time.Duration
	now       func() time.Time
	group     singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
	subs    map[*Subscription]struct{}
}

// NewClient creates a cache serving results for staleTime. A zero staleTime uses
// DefaultStaleTime; a negative one disables caching.
func NewClient(staleTime time.Duration) *Client {
	if staleTime == 0 {
		staleTime = DefaultStaleTime
	}
	return &Client{
		staleTime: staleTime,
		now:       time.Now,
		entries:   make(map[string]*entry),
		subs:      make(map[*Subscription]struct{}),
	}
}

// Fetch returns the cached value for key when it is fresh, and otherwise loads it with fetcher.
// Concurrent fetches of the same key share one call.
func (c *Client) Fetch(ctx context.Context, key Key, fetcher Fetcher) (any, error) {
	id := key.String()

	c.mu.Lock()
	e, ok := c.entries[id]
	if ok && c.fresh(e) {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	return c.load(ctx, key, fetcher)
}

func (c *Client) load(ctx context.Context, key Key, fetcher Fetcher) (any, error) {
	id := key.String()

	c.mu.Lock()
	e := c.entry(id)
	gen := e.gen
	c.mu.Unlock()

	v, err, _ := c.group.Do(id, func() (any, error) {
		return fetcher(ctx)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	e = c.entry(id)
	if gen < e.loadedGen {
		// A fetch started after ours already landed.
		return v, err
	}
	e.loadedGen = gen
	if err != nil {
		e.err = err
		e.stale = true
		return nil, err
	}
	e.data = v
	e.err = nil
	e.updatedAt = c.now()
	e.stale = e.gen != gen
	return v, nil
}

// Peek returns the cached state of key without fetching.
func (c *Client) Peek(key Key) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return State{}, false
	}
	return State{Data: e.data, Err: e.err, UpdatedAt: e.updatedAt}, true
}

// Invalidate marks every cached query under the given resources stale and refetches every live
// subscription among them. It returns once those refetches have finished.
func (c *Client) Invalidate(ctx context.Context, resources ...string) error {
	if len(resources) == 0 {
		return nil
	}
	match := make(map[string]bool, len(resources))
	for _, r := range resources {
		match[r] = true
	}

	c.mu.Lock()
	for id, e := range c.entries {
		if match[resourceOf(id)] {
			e.stale = true
			e.gen++
			c.group.Forget(id)
		}
	}
	var targets []*Subscription
	for sub := range c.subs {
		if match[sub.key.Resource] {
			targets = append(targets, sub)
		}
	}
	c.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRefetch)
	for _, sub := range targets {
		g.Go(func() error {
			sub.Refetch(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Subscribe registers listener for key and performs the initial load before returning.
// listener may be nil when the caller only polls State.
func (c *Client) Subscribe(ctx context.Context, key Key, fetcher Fetcher, listener func(State)) *Subscription {
	sub := &Subscription{
		client:   c,
		key:      key,
		fetcher:  fetcher,
		listener: listener,
	}

	c.mu.Lock()
	c.subs[sub] = struct{}{}
	c.mu.Unlock()

	data, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		sub.setLoading()
		return fetcher(ctx)
	})
	sub.settle(data, err)
	return sub
}

// Subscribers returns how many live subscriptions exist under resource.
func (c *Client) Subscribers(resource string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for sub := range c.subs {
		if sub.key.Resource == resource {
			n++
		}
	}
	return n
}

func (c *Client) fresh(e *entry) bool {
	if e.stale || e.err != nil || e.updatedAt.IsZero() || c.staleTime < 0 {
		return false
	}
	return c.now().Sub(e.updatedAt) < c.staleTime
}

func (c *Client) entry(id string) *entry {
	e, ok := c.entries[id]
	if !ok {
		e = &entry{}
		c.entries[id] = e
	}
	return e
}

func (c *Client) unsubscribe(sub *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, sub)
}

func resourceOf(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[:i]
	}
	return id
}

// Subscription is one view's interest in a key.
type Subscription struct {
	client   *Client
	key      Key
	fetcher  Fetcher
	listener func(State)

	mu     sync.Mutex
	state  State
	closed bool
}

func (s *Subscription) Key() Key {
	return s.key
}

// State returns the latest state.
func (s *Subscription) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Refetch reloads the key, bypassing the cache if it is stale, and returns the new state.
// Results arriving after Close are dropped.
func (s *Subscription) Refetch(ctx context.Context) State {
	s.setLoading()
	data, err := s.client.Fetch(ctx, s.key, s.fetcher)
	s.settle(data, err)
	return s.State()
}

// Close detaches the subscription. Pending fetches complete but are not delivered.
func (s *Subscription) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.client.unsubscribe(s)
}

func (s *Subscription) setLoading() {
	s.mu.Lock()
	if s.closed || s.state.Loading {
		s.mu.Unlock()
		return
	}
	s.state.Loading = true
	state := s.state
	s.mu.Unlock()
	s.emit(state)
}

func (s *Subscription) settle(data any, err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.Loading = false
	s.state.Err = err
	if err == nil {
		s.state.Data = data
		s.state.UpdatedAt = s.client.now()
	}
	state := s.state
	s.mu.Unlock()
	s.emit(state)
}

func (s *Subscription) emit(state State) {
	if s.listener != nil {
		s.listener(state)
	}
}
