// Package events fans build lifecycle notifications out to observers.
package events

import (
	"sync"

	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
)

var _ ports.Observer = (*Hub)(nil)

// Hub delivers every notification to its subscribers in subscription order.
type Hub struct {
	mu        sync.RWMutex
	observers []ports.Observer
}

// NewHub creates a Hub with the given initial observers.
func NewHub(observers ...ports.Observer) *Hub {
	return &Hub{observers: observers}
}

// Subscribe adds an observer. It returns a function that removes it again.
func (h *Hub) Subscribe(o ports.Observer) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, o)

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, existing := range h.observers {
			if existing == o {
				h.observers = append(h.observers[:i:i], h.observers[i+1:]...)
				return
			}
		}
	}
}

// OnConfigLoaded notifies every observer that a build description was loaded.
func (h *Hub) OnConfigLoaded(cfg *domain.Config) {
	for _, o := range h.snapshot() {
		o.OnConfigLoaded(cfg)
	}
}

// OnBuildCompleted notifies every observer that a target finished.
func (h *Hub) OnBuildCompleted(outcome domain.TargetOutcome) {
	for _, o := range h.snapshot() {
		o.OnBuildCompleted(outcome)
	}
}

func (h *Hub) snapshot() []ports.Observer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]ports.Observer(nil), h.observers...)
}
