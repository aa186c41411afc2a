// Package registry maps builder type names to factories.
package registry

import (
	"slices"
	"sort"
	"sync"

	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// Plugin contributes builders to a Registry.
type Plugin struct {
	ID string
	// Builtin plugins announce themselves when the registry is created.
	Builtin bool
	// Announce registers the plugin's builders.
	Announce func(r *Registry) error
}

// Registry holds the builder factories known to one process.
type Registry struct {
	// loadMu serializes announcements so a failed one can be rolled back.
	loadMu    sync.Mutex
	mu        sync.RWMutex
	factories map[string]ports.BuilderFactory
	catalog   map[string]Plugin
	loaded    map[string]bool
}

// New creates a Registry with the given plugin catalog and announces the builtin ones.
func New(plugins ...Plugin) (*Registry, error) {
	r := &Registry{
		factories: make(map[string]ports.BuilderFactory),
		catalog:   make(map[string]Plugin, len(plugins)),
		loaded:    make(map[string]bool),
	}
	for _, p := range plugins {
		r.catalog[p.ID] = p
	}
	for _, p := range plugins {
		if !p.Builtin {
			continue
		}
		if err := r.announce(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register binds name to factory.
func (r *Registry) Register(name string, factory ports.BuilderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return zerr.With(domain.ErrDuplicateBuilder, "builder", name)
	}
	r.factories[name] = factory
	return nil
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (ports.BuilderFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrUnknownBuilder, "builder", name), "known", r.namesLocked())
	}
	return factory, nil
}

// Names returns the registered builder names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Load announces the named optional plugins. Plugins already announced are skipped.
func (r *Registry) Load(ids []string) error {
	for _, id := range ids {
		p, ok := r.catalog[id]
		if !ok {
			return zerr.With(domain.ErrUnknownPlugin, "plugin", id)
		}
		if err := r.announce(p); err != nil {
			return err
		}
	}
	return nil
}

// Plugins returns the catalog plugin IDs, sorted.
func (r *Registry) Plugins() []string {
	ids := make([]string, 0, len(r.catalog))
	for id := range r.catalog {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *Registry) announce(p Plugin) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	r.mu.RLock()
	done := r.loaded[p.ID]
	before := make(map[string]bool, len(r.factories))
	for name := range r.factories {
		before[name] = true
	}
	r.mu.RUnlock()
	if done {
		return nil
	}

	if p.Announce != nil {
		if err := p.Announce(r); err != nil {
			r.rollback(before)
			return zerr.With(err, "plugin", p.ID)
		}
	}

	r.mu.Lock()
	r.loaded[p.ID] = true
	r.mu.Unlock()
	return nil
}

// rollback drops every factory registered since before was taken.
func (r *Registry) rollback(before map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name := range r.factories {
		if !before[name] {
			delete(r.factories, name)
		}
	}
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
