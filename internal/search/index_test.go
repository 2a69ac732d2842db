package search

import (
	"reflect"
	"sync"
	"testing"

	"github.com/iliyamo/event-pass-market/internal/model"
)

func TestHolderRebuildSwapsWholesale(t *testing.T) {
	h := NewHolder()
	h.Rebuild([]NameEntry{
		{Name: "Diwali Bash", IDs: []uint64{1}},
		{Name: "Diwali Party", IDs: []uint64{2}},
	})

	if got := h.Lookup("di"); !reflect.DeepEqual(got, []uint64{1, 2}) {
		t.Fatalf("Lookup(\"di\") = %v; want [1 2]", got)
	}

	// A rebuild with a new set must not leak ids from the old build.
	h.Rebuild([]NameEntry{
		{Name: "Holi Splash", IDs: []uint64{3}},
	})

	if got := h.Lookup("di"); len(got) != 0 {
		t.Fatalf("after rebuild Lookup(\"di\") = %v; want empty", got)
	}
	if got := h.Lookup("ho"); !reflect.DeepEqual(got, []uint64{3}) {
		t.Fatalf("after rebuild Lookup(\"ho\") = %v; want [3]", got)
	}
}

func TestHolderEmptyBeforeFirstRebuild(t *testing.T) {
	h := NewHolder()
	if got := h.Lookup("x"); len(got) != 0 {
		t.Fatalf("Lookup on fresh holder = %v; want empty", got)
	}
}

func TestHolderRebuildFromListings(t *testing.T) {
	h := NewHolder()
	h.RebuildFromListings([]model.Listing{
		{ID: 1, EventName: "Diwali Bash"},
		{ID: 2, EventName: "Diwali Bash"},
		{ID: 3, EventName: "Garba Night"},
	})

	if got := h.Lookup("diwali"); !reflect.DeepEqual(got, []uint64{1, 2}) {
		t.Fatalf("Lookup(\"diwali\") = %v; want [1 2]", got)
	}
	if got := h.Lookup(""); !reflect.DeepEqual(got, []uint64{1, 2, 3}) {
		t.Fatalf("Lookup(\"\") = %v; want [1 2 3]", got)
	}
}

// Lookups racing with rebuilds must always observe a complete tree:
// either both listings of the current build or both of the next, never
// a partial set.  Run with -race to make this meaningful.
func TestHolderConcurrentRebuildAndLookup(t *testing.T) {
	h := NewHolder()
	builds := [][]NameEntry{
		{{Name: "Diwali Bash", IDs: []uint64{1}}, {Name: "Diwali Party", IDs: []uint64{2}}},
		{{Name: "Diwali Mela", IDs: []uint64{3}}, {Name: "Diwali Fair", IDs: []uint64{4}}},
	}
	h.Rebuild(builds[0])

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				h.Rebuild(builds[i%2])
			}
		}
	}()

	for i := 0; i < 2000; i++ {
		got := h.Lookup("diwali")
		if len(got) != 2 {
			t.Fatalf("lookup saw %v; want exactly two ids from one build", got)
		}
		sum := got[0] + got[1]
		if sum != 3 && sum != 7 { // {1,2} or {3,4}
			t.Fatalf("lookup mixed builds: %v", got)
		}
	}
	close(done)
	wg.Wait()
}
