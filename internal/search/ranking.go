// Package search implements the in-memory listing ranking and the
// prefix index used for event-name autocomplete.  Neither structure
// touches the database: the ranking orders a single query's result
// batch, the prefix index is a process-wide snapshot rebuilt from the
// current set of available listings.
package search

import "github.com/iliyamo/event-pass-market/internal/model"

// Ranking is an array-backed binary max-heap over listings.  We implement
// the heap operations manually instead of using container/heap to keep a
// plain value API; the ordering rule lives in outranks.
//
// Invariant: every node outranks both of its children.
type Ranking struct {
	items []model.Listing
}

// outranks reports whether a should be returned before b: higher
// priority first, ties broken by newer createdAt.  Listings equal on
// both fields are left unordered relative to each other.
func outranks(a, b model.Listing) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// NewRanking returns an empty ranking with room for n listings.
func NewRanking(n int) *Ranking {
	return &Ranking{items: make([]model.Listing, 0, n)}
}

// IsEmpty reports whether no listings remain.
func (r *Ranking) IsEmpty() bool { return len(r.items) == 0 }

// Len returns the number of listings currently held.
func (r *Ranking) Len() int { return len(r.items) }

// Insert adds one listing and bubbles it up to restore the heap invariant.
func (r *Ranking) Insert(l model.Listing) {
	r.items = append(r.items, l)
	r.up(len(r.items) - 1)
}

// ExtractTop removes and returns the highest-ranked remaining listing.
// The second return value is false when the ranking is empty; that is
// the normal end-of-sequence signal, not an error.
func (r *Ranking) ExtractTop() (model.Listing, bool) {
	if len(r.items) == 0 {
		return model.Listing{}, false
	}
	top := r.items[0]
	last := len(r.items) - 1
	r.items[0] = r.items[last]
	r.items = r.items[:last]
	r.down(0)
	return top, true
}

// up bubbles element j toward the root while it outranks its parent.
func (r *Ranking) up(j int) {
	for j > 0 {
		i := (j - 1) / 2 // parent index
		if !outranks(r.items[j], r.items[i]) {
			break
		}
		r.items[i], r.items[j] = r.items[j], r.items[i]
		j = i
	}
}

// down sinks the root element, swapping with the higher-ranked child
// until the invariant holds or no children exist.
func (r *Ranking) down(i int) {
	n := len(r.items)
	for {
		j := 2*i + 1 // left child
		if j >= n {
			break
		}
		if right := j + 1; right < n && outranks(r.items[right], r.items[j]) {
			j = right
		}
		if !outranks(r.items[j], r.items[i]) {
			break
		}
		r.items[i], r.items[j] = r.items[j], r.items[i]
		i = j
	}
}

// Rank orders a query's result batch: highest priority first, ties
// broken by newest first.  The input slice is not modified.  Draining
// the heap this way is equivalent to a stable descending sort on
// (priority, createdAt).
func Rank(batch []model.Listing) []model.Listing {
	r := NewRanking(len(batch))
	for _, l := range batch {
		r.Insert(l)
	}
	out := make([]model.Listing, 0, len(batch))
	for {
		l, ok := r.ExtractTop()
		if !ok {
			break
		}
		out = append(out, l)
	}
	return out
}
