package session

import (
	"sync"

	"github.com/careerlink-app/careerlink-backend/internal/identity"
)

// Controller is the long-lived, injectable incarnation of the access state
// machine for embedded clients. It tracks the provider's identity stream and
// fans snapshots out to subscribers; there are no ambient singletons, callers
// hold the instance they built.
type Controller struct {
	mu          sync.RWMutex
	current     Snapshot
	subscribers map[int]func(Snapshot)
	nextID      int
	unsubscribe func()
}

// NewController starts in Initializing and follows the provider's identity
// events. Call Close to detach from the provider.
func NewController(provider identity.Provider) *Controller {
	c := &Controller{
		current:     Snapshot{State: StateInitializing},
		subscribers: map[int]func(Snapshot){},
	}
	if provider != nil {
		c.unsubscribe = provider.OnIdentityChanged(c.apply)
	}
	return c
}

// Current returns the latest snapshot.
func (c *Controller) Current() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Authorize evaluates the route against the current snapshot.
func (c *Controller) Authorize(route Route) Decision {
	return Authorize(c.Current(), route)
}

// Subscribe registers an observer for snapshot changes and returns an
// unsubscribe func. The observer immediately receives the current snapshot.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	snapshot := c.current
	c.mu.Unlock()

	fn(snapshot)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Close detaches the controller from the identity provider.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) apply(ident *identity.Identity) {
	snapshot := SnapshotFor(ident)

	c.mu.Lock()
	c.current = snapshot
	observers := make([]func(Snapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}
