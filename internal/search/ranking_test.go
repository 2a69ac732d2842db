package search

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/iliyamo/event-pass-market/internal/model"
)

func mkListing(id uint64, priority int, createdAt int64) model.Listing {
	return model.Listing{
		ID:        id,
		Priority:  priority,
		CreatedAt: time.Unix(createdAt, 0).UTC(),
	}
}

func drain(r *Ranking) []uint64 {
	var ids []uint64
	for {
		l, ok := r.ExtractTop()
		if !ok {
			break
		}
		ids = append(ids, l.ID)
	}
	return ids
}

func TestRankingOrder(t *testing.T) {
	// Boosted listings come first; within equal priority newest wins.
	batch := []model.Listing{
		mkListing(1, 1, 100),
		mkListing(2, 10, 50),
		mkListing(3, 10, 90),
	}

	got := Rank(batch)
	want := []uint64{3, 2, 1}
	for i, l := range got {
		if l.ID != want[i] {
			t.Fatalf("Rank order = %v at %d; want %v", l.ID, i, want)
		}
	}
}

func TestRankingExtractEmpty(t *testing.T) {
	r := NewRanking(0)
	if !r.IsEmpty() {
		t.Fatal("new ranking should be empty")
	}
	if _, ok := r.ExtractTop(); ok {
		t.Fatal("ExtractTop on empty ranking should report not ok")
	}
	// Extracting again stays a clean end-of-sequence signal.
	if _, ok := r.ExtractTop(); ok {
		t.Fatal("repeated ExtractTop on empty ranking should report not ok")
	}
}

func TestRankingInsertExtractInterleaved(t *testing.T) {
	r := NewRanking(4)
	r.Insert(mkListing(1, 1, 10))
	r.Insert(mkListing(2, 10, 5))
	if r.Len() != 2 {
		t.Fatalf("Len = %d after two inserts; want 2", r.Len())
	}

	if l, ok := r.ExtractTop(); !ok || l.ID != 2 {
		t.Fatalf("first extract = %+v ok=%v; want id 2", l, ok)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d after one extract; want 1", r.Len())
	}

	r.Insert(mkListing(3, 10, 1))
	if l, ok := r.ExtractTop(); !ok || l.ID != 3 {
		t.Fatalf("second extract = %+v ok=%v; want id 3", l, ok)
	}
	if l, ok := r.ExtractTop(); !ok || l.ID != 1 {
		t.Fatalf("third extract = %+v ok=%v; want id 1", l, ok)
	}
	if !r.IsEmpty() {
		t.Fatal("ranking should be empty after draining")
	}
}

// TestRankingEquivalence checks the core property: a full drain must
// yield the same sequence as a stable descending sort on
// (priority, createdAt).
func TestRankingEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(200)
		batch := make([]model.Listing, 0, n)
		for i := 0; i < n; i++ {
			// Small value ranges on purpose so ties happen often.
			batch = append(batch, mkListing(uint64(i+1), 1+rng.Intn(3)*3, int64(rng.Intn(20))))
		}

		want := make([]model.Listing, len(batch))
		copy(want, batch)
		sort.SliceStable(want, func(i, j int) bool {
			if want[i].Priority != want[j].Priority {
				return want[i].Priority > want[j].Priority
			}
			return want[i].CreatedAt.After(want[j].CreatedAt)
		})

		got := Rank(batch)
		if len(got) != len(want) {
			t.Fatalf("trial %d: drained %d listings; want %d", trial, len(got), len(want))
		}
		for i := range got {
			// Full ties may come out in either order; compare the key only.
			if got[i].Priority != want[i].Priority || !got[i].CreatedAt.Equal(want[i].CreatedAt) {
				t.Fatalf("trial %d: position %d has key (%d,%v); want (%d,%v)",
					trial, i, got[i].Priority, got[i].CreatedAt, want[i].Priority, want[i].CreatedAt)
			}
		}
	}
}

// TestRankingTies verifies that listings equal on both ordering fields
// each appear exactly once, in some order.
func TestRankingTies(t *testing.T) {
	batch := []model.Listing{
		mkListing(1, 5, 42),
		mkListing(2, 5, 42),
		mkListing(3, 5, 42),
	}

	r := NewRanking(len(batch))
	for _, l := range batch {
		r.Insert(l)
	}
	seen := map[uint64]int{}
	for _, id := range drain(r) {
		seen[id]++
	}
	for _, l := range batch {
		if seen[l.ID] != 1 {
			t.Fatalf("listing %d drained %d times; want exactly once", l.ID, seen[l.ID])
		}
	}
}

func TestRankingDoesNotMutateInput(t *testing.T) {
	batch := []model.Listing{
		mkListing(1, 1, 1),
		mkListing(2, 10, 2),
		mkListing(3, 1, 3),
	}
	Rank(batch)
	for i, want := range []uint64{1, 2, 3} {
		if batch[i].ID != want {
			t.Fatalf("input batch reordered: %d at %d; want %d", batch[i].ID, i, want)
		}
	}
}
