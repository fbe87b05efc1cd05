package namespace

import (
	"sync"

	"github.com/zero-day-ai/tagtree/gid"
)

// Shared guards a Registry with a read-write lock so one writer and many readers can use
// it from different goroutines.
//
// The common operations are forwarded directly. Anything else, including the generic
// SetMeta and GetMeta helpers, goes through Read or Write.
type Shared struct {
	mu  sync.RWMutex
	reg *Registry
}

// NewShared wraps r. The caller must stop using r directly.
func NewShared(r *Registry) *Shared {
	return &Shared{reg: r}
}

// Read calls fn with the registry under the read lock. fn must not mutate it.
func (s *Shared) Read(fn func(r *Registry)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.reg)
}

// Write calls fn with the registry under the write lock.
func (s *Shared) Write(fn func(r *Registry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.reg)
}

// Register is Registry.Register under the write lock.
func (s *Shared) Register(path string) (gid.GID, error) {
	s.mu.RLock()
	g, ok := s.reg.GIDOf(path)
	s.mu.RUnlock()
	if ok {
		return g, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Register(path)
}

// AddRedirect is Registry.AddRedirect under the write lock.
func (s *Shared) AddRedirect(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.AddRedirect(from, to)
}

// GIDOf is Registry.GIDOf under the read lock.
func (s *Shared) GIDOf(path string) (gid.GID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.GIDOf(path)
}

// PathOf is Registry.PathOf under the read lock.
func (s *Shared) PathOf(g gid.GID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.PathOf(g)
}

// Resolve is Registry.Resolve under the read lock.
func (s *Shared) Resolve(path string) (gid.GID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.Resolve(path)
}

// Contains is Registry.Contains under the read lock.
func (s *Shared) Contains(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.Contains(path)
}

// Len is Registry.Len under the read lock.
func (s *Shared) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.Len()
}

// DescendantsOf is Registry.DescendantsOf under the read lock.
func (s *Shared) DescendantsOf(ancestor gid.GID) []gid.GID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.DescendantsOf(ancestor)
}

// SetMetaRaw is Registry.SetMetaRaw under the write lock.
func (s *Shared) SetMetaRaw(g gid.GID, key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.SetMetaRaw(g, key, value)
}

// MetaRaw is Registry.MetaRaw under the read lock.
func (s *Shared) MetaRaw(g gid.GID, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.MetaRaw(g, key)
}
