// Package gallery holds the in-memory set of enrolled face descriptors and
// answers nearest-neighbor queries against it.
package gallery

import (
	"math"
	"sync"
)

// Entry is one enrolled face: a labeled descriptor.
type Entry struct {
	IdentityID int64
	Name       string
	Descriptor []float32
}

// Match is the result of a BestMatch query.
type Match struct {
	Entry    Entry
	Distance float64
}

// Gallery is a concurrency-safe, append-only collection of entries. Entries
// are only ever added or wholesale replaced, never removed, so indexes into
// a snapshot stay valid for the life of the snapshot.
type Gallery struct {
	mu      sync.RWMutex
	entries []Entry
}

// New creates an empty gallery.
func New() *Gallery {
	return &Gallery{}
}

// Replace swaps the entire contents atomically. Used on (re)load from the
// persistent store.
func (g *Gallery) Replace(entries []Entry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append([]Entry(nil), entries...)
}

// Append adds one entry. The caller must have already persisted it.
func (g *Gallery) Append(e Entry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append(g.entries, e)
}

// Entries returns a snapshot copy of the current contents.
func (g *Gallery) Entries() []Entry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Entry(nil), g.entries...)
}

// Count returns the number of enrolled entries.
func (g *Gallery) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Dim returns the descriptor dimensionality of the gallery, or 0 when empty.
// All entries share one dimensionality; the first entry is authoritative.
func (g *Gallery) Dim() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if len(g.entries) == 0 {
		return 0
	}
	return len(g.entries[0].Descriptor)
}

// BestMatch scans every entry and returns the one closest to the probe, or
// ok=false when the gallery is empty or no entry is within tolerance. The
// scan keeps the first entry on exact distance ties, so results are
// deterministic for a given enrollment order.
func (g *Gallery) BestMatch(probe []float32, tolerance float64) (Match, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	best := -1
	bestDist := math.Inf(1)
	for i, e := range g.entries {
		if d := EuclideanDistance(probe, e.Descriptor); d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 || bestDist > tolerance {
		return Match{}, false
	}
	return Match{Entry: g.entries[best], Distance: bestDist}, true
}
