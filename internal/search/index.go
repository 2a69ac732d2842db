package search

import (
	"sort"
	"sync/atomic"

	"github.com/iliyamo/event-pass-market/internal/model"
)

// NameEntry is one row of the event-name index pulled from the store:
// an event name and the available listings carrying it.
type NameEntry struct {
	Name string
	IDs  []uint64
}

// Holder owns the process-wide prefix index.  Each rebuild constructs a
// fresh tree and swaps the pointer in one atomic store, so an in-flight
// lookup sees either the fully-old or the fully-new tree, never a
// half-built one.  A swapped snapshot is never mutated again.
type Holder struct {
	current atomic.Pointer[PrefixIndex]
}

// NewHolder returns a holder with an empty index so lookups are valid
// before the first rebuild.
func NewHolder() *Holder {
	h := &Holder{}
	h.current.Store(NewPrefixIndex())
	return h
}

// Rebuild constructs a new index from entries and swaps it in.
func (h *Holder) Rebuild(entries []NameEntry) {
	idx := NewPrefixIndex()
	for _, e := range entries {
		for _, id := range e.IDs {
			idx.Insert(e.Name, id)
		}
	}
	h.current.Store(idx)
}

// RebuildFromListings rebuilds the index from a freshly fetched batch
// of available listings, sparing the extra name-index round trip when
// the caller already holds the full set.
func (h *Holder) RebuildFromListings(listings []model.Listing) {
	idx := NewPrefixIndex()
	for _, l := range listings {
		idx.Insert(l.EventName, l.ID)
	}
	h.current.Store(idx)
}

// Lookup returns the ids of all listings whose event name starts with
// prefix, sorted ascending for stable responses.  The underlying set is
// unordered; sorting here is a presentation choice, not an index
// guarantee.
func (h *Holder) Lookup(prefix string) []uint64 {
	set := h.current.Load().FindByPrefix(prefix)
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
