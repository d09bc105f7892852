// SPDX-License-Identifier: EPL-2.0

package markers

import (
	"slices"
	"sync"

	"github.com/ik5/wavcue/formats/wav/cue"
)

// Collection owns the markers of one session. Every method takes the same
// mutex, so producers on several goroutines may add and clear markers.
type Collection struct {
	mu     sync.Mutex
	groups Groups
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{groups: make(Groups)}
}

// Add appends markers to the lists of their kinds.
func (c *Collection) Add(ms ...Marker) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range ms {
		c.groups[m.Kind] = append(c.groups[m.Kind], m)
	}
}

// Import classifies cues and adds the result. It returns the cues that were
// filed as unknown.
func (c *Collection) Import(cues []cue.Cue) []cue.Cue {
	groups, rejected := Classify(cues)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range Kinds {
		c.groups[k] = append(c.groups[k], groups[k]...)
	}
	return rejected
}

// Markers returns a copy of the markers of one kind.
func (c *Collection) Markers(k Kind) []Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.groups[k])
}

// All returns a copy of every marker, kinds in Kinds order.
func (c *Collection) All() []Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.groups.All()
}

// Clear drops the markers of one kind.
func (c *Collection) Clear(k Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.groups, k)
}

func (c *Collection) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.groups = make(Groups)
}

func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.groups.Len()
}

// Cues returns the cues to persist for the whole collection.
func (c *Collection) Cues() []cue.Cue {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.groups.Cues()
}
