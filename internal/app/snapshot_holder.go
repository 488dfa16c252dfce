package app

import (
	"sync"

	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// SnapshotHolder guards the snapshot currently served from memory. All
// services read through it; only the cache service replaces it.
type SnapshotHolder struct {
	mu       sync.RWMutex
	snapshot *portals.Snapshot
}

// NewSnapshotHolder creates an empty holder
func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{}
}

// Current returns the loaded snapshot, or nil when the cache is cold
func (h *SnapshotHolder) Current() *portals.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot
}

// Set replaces the loaded snapshot
func (h *SnapshotHolder) Set(snapshot *portals.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshot = snapshot
}
