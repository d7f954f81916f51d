// Package worker owns the graph snapshot lifecycle: the current immutable
// snapshot and the scheduled dataset reloads that replace it wholesale.
package worker

import (
	"sync"
	"time"

	"github.com/skymesh/routegraph/network"
)

// Snapshot is one fully built generation of the network. The graph inside
// is immutable; readers never observe a partially loaded state.
type Snapshot struct {
	Graph           *network.Graph
	LoadedAt        time.Time
	AirportsSkipped int
	RoutesSkipped   int
}

// Holder hands the current snapshot to readers and lets a reload swap in
// the next generation atomically.
type Holder struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewHolder creates a holder with an optional initial snapshot.
func NewHolder(initial *Snapshot) *Holder {
	return &Holder{snap: initial}
}

// Get returns the current snapshot, or nil before the first load.
func (h *Holder) Get() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

// Replace swaps in a new snapshot wholesale.
func (h *Holder) Replace(snap *Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snap = snap
}
