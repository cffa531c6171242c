// Package session holds the signed-in store admin for the lifetime of a
// client process and persists it between runs.
package session

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"go.uber.org/zap"
)

// StorageKey is the slot the session is persisted under.
const StorageKey = "cold-storage-session"

// State is a snapshot of the container. Identity, Organization and
// Preferences are nil when nobody is signed in.
type State struct {
	Identity     *models.StoreAdmin
	Organization *models.ColdStorage
	Preferences  *models.Preferences
	Token        string
	IsLoading    bool
	HasHydrated  bool
}

// persisted is the part of State written to storage.
type persisted struct {
	Identity     *models.StoreAdmin  `json:"identity"`
	Organization *models.ColdStorage `json:"organization"`
	Preferences  *models.Preferences `json:"preferences"`
	Token        string              `json:"token"`
}

// Container owns the session state. Every mutator replaces the affected
// fields under one lock, so readers never see a half-applied update.
// persistMu is held from a state change through its matching storage write,
// so the stored slot always ends up matching the last mutation in call order.
type Container struct {
	mu      sync.RWMutex
	state   State
	storage *ExpiringStorage
	key     string
	log     *zap.Logger

	hydrated  chan struct{}
	persistMu sync.Mutex
	restored  bool // guarded by persistMu

	listenersMu sync.Mutex
	listeners   map[int]func(State)
	nextID      int
}

// NewContainer returns an empty, not yet hydrated container. storage may be
// nil, in which case nothing is persisted.
func NewContainer(storage *ExpiringStorage, log *zap.Logger) *Container {
	if log == nil {
		log = zap.NewNop()
	}
	return &Container{
		storage:   storage,
		key:       StorageKey,
		log:       log,
		hydrated:  make(chan struct{}),
		listeners: make(map[int]func(State)),
	}
}

// SetSessionData signs a store admin in. The password hash is never kept.
func (c *Container) SetSessionData(identity models.StoreAdmin, organization models.ColdStorage, token string, preferences models.Preferences) {
	identity.PasswordHash = ""
	preferences = clonePreferences(preferences)

	c.persistMu.Lock()
	c.mu.Lock()
	c.state.Identity = &identity
	c.state.Organization = &organization
	c.state.Preferences = &preferences
	c.state.Token = token
	c.state.IsLoading = false
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.storage != nil {
		err := c.storage.Write(c.key, persisted{
			Identity:     snap.Identity,
			Organization: snap.Organization,
			Preferences:  snap.Preferences,
			Token:        snap.Token,
		})
		if err != nil {
			c.log.Warn("persist session failed", zap.Error(err))
		}
	}
	c.persistMu.Unlock()

	c.notify(snap)
}

// ClearSessionData signs out. IsLoading and HasHydrated are left as they are.
func (c *Container) ClearSessionData() {
	c.persistMu.Lock()
	c.mu.Lock()
	c.state.Identity = nil
	c.state.Organization = nil
	c.state.Preferences = nil
	c.state.Token = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.storage != nil {
		if err := c.storage.Remove(c.key); err != nil {
			c.log.Warn("remove persisted session failed", zap.Error(err))
		}
	}
	c.persistMu.Unlock()

	c.notify(snap)
}

func (c *Container) SetLoading(loading bool) {
	c.mu.Lock()
	c.state.IsLoading = loading
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// SetHasHydrated marks hydration as finished. The flag only ever moves
// from false to true; any later call is ignored.
func (c *Container) SetHasHydrated(hydrated bool) {
	if !hydrated {
		return
	}

	c.mu.Lock()
	if c.state.HasHydrated {
		c.mu.Unlock()
		return
	}
	c.state.HasHydrated = true
	snap := c.snapshotLocked()
	c.mu.Unlock()

	close(c.hydrated)
	c.notify(snap)
}

// Hydrate performs the initial read from storage and then marks the
// container hydrated, whether or not a session was found. Only the first
// call reads; later calls return immediately.
func (c *Container) Hydrate() {
	c.persistMu.Lock()
	if c.restored || c.Snapshot().HasHydrated {
		c.persistMu.Unlock()
		return
	}
	c.restored = true

	// the read and the assignment share persistMu so a concurrent
	// SetSessionData can't be overwritten by older stored data
	if c.storage != nil {
		var p persisted
		if c.storage.Read(c.key, &p) {
			c.mu.Lock()
			c.state.Identity = p.Identity
			c.state.Organization = p.Organization
			c.state.Preferences = p.Preferences
			c.state.Token = p.Token
			c.mu.Unlock()
			c.log.Debug("session restored", zap.Bool("authenticated", p.Token != ""))
		} else {
			c.log.Debug("no stored session")
		}
	}
	c.persistMu.Unlock()

	c.SetHasHydrated(true)
}

// Hydrated is closed once the container has hydrated.
func (c *Container) Hydrated() <-chan struct{} {
	return c.hydrated
}

// WaitHydrated blocks until hydration finished or ctx is done.
func (c *Container) WaitHydrated(ctx context.Context) error {
	select {
	case <-c.hydrated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current state.
func (c *Container) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Container) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Token
}

func (c *Container) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Token != "" && c.state.Identity != nil
}

// Subscribe registers fn to be called with the new state after every
// mutation. The returned func removes it.
func (c *Container) Subscribe(fn func(State)) func() {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Container) notify(s State) {
	c.listenersMu.Lock()
	fns := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func (c *Container) snapshotLocked() State {
	s := c.state
	if s.Identity != nil {
		v := *s.Identity
		s.Identity = &v
	}
	if s.Organization != nil {
		v := *s.Organization
		s.Organization = &v
	}
	if s.Preferences != nil {
		v := clonePreferences(*s.Preferences)
		s.Preferences = &v
	}
	return s
}

func clonePreferences(p models.Preferences) models.Preferences {
	p.Commodities = slices.Clone(p.Commodities)
	p.BagSizes = slices.Clone(p.BagSizes)
	p.CustomFields = maps.Clone(p.CustomFields)
	return p
}
