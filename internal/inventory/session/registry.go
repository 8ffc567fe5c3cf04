package session

import (
	"sync"
	"time"

	"github.com/tair/stock-tracker/internal/inventory/domain"
	"github.com/tair/stock-tracker/internal/inventory/store"
)

const (
	// DefaultTTL is how long an idle session keeps its inventory
	DefaultTTL = 30 * time.Minute

	// DefaultCleanupInterval is how often idle sessions are swept
	DefaultCleanupInterval = time.Minute
)

// Config controls session lifetime and seeding
type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	Seed            bool
}

type entry struct {
	inventory *store.Store
	lastSeen  time.Time
}

// Registry implements domain.SessionStore with one store per session id
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	seed     bool
	now      func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// Verify interface compliance
var _ domain.SessionStore = (*Registry)(nil)

// NewRegistry creates a registry and starts its background cleanup
func NewRegistry(cfg Config) *Registry {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	r := &Registry{
		sessions:    make(map[string]*entry),
		ttl:         cfg.TTL,
		seed:        cfg.Seed,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop(cfg.CleanupInterval)

	return r
}

// cleanupLoop periodically drops sessions idle past the TTL
func (r *Registry) cleanupLoop(interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.expireSessions()
		case <-r.stopCleanup:
			return
		}
	}
}

// expireSessions removes every session whose last access is older than the TTL
func (r *Registry) expireSessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	expired := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			expired++
		}
	}
	return expired
}

// Open returns the inventory bound to sessionID, creating and initializing it on first use
func (r *Registry) Open(sessionID string) domain.Inventory {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.sessions[sessionID]
	if !exists {
		inv := store.New()
		if !r.seed {
			inv = store.NewWithSeed(nil)
		}
		inv.Initialize()

		e = &entry{inventory: inv}
		r.sessions[sessionID] = e
	}
	e.lastSeen = r.now()
	return e.inventory
}

// Close drops the session
func (r *Registry) Close(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[sessionID]; !exists {
		return false
	}
	delete(r.sessions, sessionID)
	return true
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Shutdown stops the background cleanup and waits for it to finish
func (r *Registry) Shutdown() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
	r.wg.Wait()
}
