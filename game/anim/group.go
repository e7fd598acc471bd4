package anim

import "time"

// Group holds the active animations of one owner, at most one per key.
// Finished animations are dropped during Update in insertion order.
type Group[K comparable] struct {
	keys   []K
	active map[K]*Animation
}

// NewGroup creates an empty group.
func NewGroup[K comparable]() *Group[K] {
	return &Group[K]{active: make(map[K]*Animation)}
}

// Add registers a for key. An animation already running for key is replaced;
// the replacement continues from wherever the previous one left the rect.
func (g *Group[K]) Add(key K, a *Animation) {
	if _, exists := g.active[key]; !exists {
		g.keys = append(g.keys, key)
	}
	g.active[key] = a
}

// Update advances every animation by dt and removes those that finished.
func (g *Group[K]) Update(dt time.Duration) {
	kept := g.keys[:0]
	for _, key := range g.keys {
		a := g.active[key]
		a.Advance(dt)
		if a.Finished() {
			delete(g.active, key)
			continue
		}
		kept = append(kept, key)
	}
	g.keys = kept
}

// Get returns the animation running for key, if any.
func (g *Group[K]) Get(key K) (*Animation, bool) {
	a, ok := g.active[key]
	return a, ok
}

// Len returns the number of animations in flight.
func (g *Group[K]) Len() int {
	return len(g.keys)
}

// Empty reports whether nothing is animating.
func (g *Group[K]) Empty() bool {
	return len(g.keys) == 0
}

// Clear drops every animation without finishing it.
func (g *Group[K]) Clear() {
	g.keys = g.keys[:0]
	clear(g.active)
}
