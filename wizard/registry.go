/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry keeps one Controller per browser session. Controllers live only in
// memory and are evicted once idle.
type Registry struct {
	mu          sync.RWMutex
	controllers map[string]*Controller
	analyzer    Analyzer
	now         func() time.Time
}

// NewRegistry returns an empty registry whose controllers use analyzer.
func NewRegistry(analyzer Analyzer) *Registry {
	return &Registry{
		controllers: make(map[string]*Controller),
		analyzer:    analyzer,
		now:         time.Now,
	}
}

// Create registers a fresh controller on the landing step.
func (r *Registry) Create() *Controller {
	c := NewController(uuid.NewString(), r.analyzer)
	c.now = r.now
	c.touch()

	r.mu.Lock()
	r.controllers[c.id] = c
	r.mu.Unlock()

	return c
}

// Get returns the controller with id and marks it as recently used.
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.RLock()
	c, ok := r.controllers[id]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}

	c.touch()

	return c, true
}

// Remove discards the controller with id, cancelling its analysis.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	c, ok := r.controllers[id]
	delete(r.controllers, id)
	r.mu.Unlock()

	if ok {
		c.Close()
	}
}

// Len returns the number of live controllers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.controllers)
}

// Sweep evicts controllers idle for longer than maxIdle and returns how many
// were removed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	now := r.now()

	var evicted []*Controller

	r.mu.Lock()
	for id, c := range r.controllers {
		if c.idleFor(now) > maxIdle {
			evicted = append(evicted, c)
			delete(r.controllers, id)
		}
	}
	r.mu.Unlock()

	for _, c := range evicted {
		c.Close()
	}

	return len(evicted)
}

// RunSweeper calls Sweep every interval until ctx is done, then closes every
// remaining controller.
func (r *Registry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				logger.Info("evicted idle wizards", "count", n, "remaining", r.Len())
			}
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	controllers := r.controllers
	r.controllers = make(map[string]*Controller)
	r.mu.Unlock()

	for _, c := range controllers {
		c.Close()
	}
}
