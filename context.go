package prefroom

import "sync"

// Context is the bootstrap context generated code is initialized with.
// It resolves stores and owns the registry that holds entity and component
// singletons, so each Context has its own set of instances.
type Context interface {
	// Store returns the store for the given namespace.
	Store(name string) Store
	// DefaultStore returns the process-wide default store.
	DefaultStore() Store
	// Registry returns the singleton registry of this context.
	Registry() *Registry
}

// StoreFactory creates the store for a namespace. The empty name denotes
// the default store.
type StoreFactory func(name string) Store

// ContextOption configures a Context created by NewContext.
type ContextOption func(*storeContext)

// WithStoreFactory sets the factory used to create stores. By default every
// namespace gets its own MemoryStore.
func WithStoreFactory(f StoreFactory) ContextOption {
	return func(c *storeContext) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithRegistry sets the singleton registry of the context.
func WithRegistry(r *Registry) ContextOption {
	return func(c *storeContext) {
		if r != nil {
			c.registry = r
		}
	}
}

// NewContext returns a Context that creates stores lazily and returns the
// same store for repeated requests of a namespace.
func NewContext(opts ...ContextOption) Context {
	c := &storeContext{
		factory:  func(string) Store { return NewMemoryStore() },
		stores:   make(map[string]Store),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type storeContext struct {
	factory  StoreFactory
	registry *Registry

	mu     sync.Mutex
	stores map[string]Store
}

func (c *storeContext) Store(name string) Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stores[name]
	if !ok {
		s = c.factory(name)
		c.stores[name] = s
	}
	return s
}

func (c *storeContext) DefaultStore() Store {
	return c.Store("")
}

func (c *storeContext) Registry() *Registry {
	return c.registry
}

// Registry holds singleton instances keyed by artifact identity.
//
// Lookups in generated code are check-then-act: a Load miss is followed by
// construction and LoadOrStore. Concurrent first calls may therefore
// construct more than one instance; LoadOrStore guarantees exactly one
// survives and is returned to every caller. Bootstrap from a single path to
// avoid the duplicate construction.
type Registry struct {
	m sync.Map
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Load returns the instance stored under key.
func (r *Registry) Load(key string) (any, bool) {
	return r.m.Load(key)
}

// LoadOrStore stores v under key unless an instance is already present,
// and returns the instance that ends up registered.
func (r *Registry) LoadOrStore(key string, v any) any {
	actual, _ := r.m.LoadOrStore(key, v)
	return actual
}

// Delete removes the instance stored under key.
func (r *Registry) Delete(key string) {
	r.m.Delete(key)
}

// Len returns the number of registered instances.
func (r *Registry) Len() int {
	n := 0
	r.m.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
