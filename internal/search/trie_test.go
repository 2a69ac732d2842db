package search

import (
	"reflect"
	"sort"
	"testing"
)

func sortedIDs(set map[uint64]struct{}) []uint64 {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestPrefixIndexFindByPrefix(t *testing.T) {
	idx := NewPrefixIndex()
	idx.Insert("Diwali Bash", 1)
	idx.Insert("Diwali Party", 2)
	idx.Insert("Holi Splash", 3)

	t.Run("shared prefix", func(t *testing.T) {
		got := sortedIDs(idx.FindByPrefix("di"))
		if !reflect.DeepEqual(got, []uint64{1, 2}) {
			t.Errorf("FindByPrefix(\"di\") = %v; want [1 2]", got)
		}
	})

	t.Run("longer prefix narrows", func(t *testing.T) {
		got := sortedIDs(idx.FindByPrefix("diwali b"))
		if !reflect.DeepEqual(got, []uint64{1}) {
			t.Errorf("FindByPrefix(\"diwali b\") = %v; want [1]", got)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := sortedIDs(idx.FindByPrefix("DIWALI"))
		if !reflect.DeepEqual(got, []uint64{1, 2}) {
			t.Errorf("FindByPrefix(\"DIWALI\") = %v; want [1 2]", got)
		}
	})

	t.Run("missing prefix", func(t *testing.T) {
		if got := idx.FindByPrefix("z"); len(got) != 0 {
			t.Errorf("FindByPrefix(\"z\") = %v; want empty set", got)
		}
	})

	t.Run("empty prefix returns everything", func(t *testing.T) {
		got := sortedIDs(idx.FindByPrefix(""))
		if !reflect.DeepEqual(got, []uint64{1, 2, 3}) {
			t.Errorf("FindByPrefix(\"\") = %v; want [1 2 3]", got)
		}
	})

	t.Run("prefix longer than any name", func(t *testing.T) {
		if got := idx.FindByPrefix("diwali bash deluxe"); len(got) != 0 {
			t.Errorf("over-long prefix = %v; want empty set", got)
		}
	})
}

// Every prefix of an inserted name, including the empty string and the
// full name, must surface that name's id.
func TestPrefixIndexCompleteness(t *testing.T) {
	const name = "Garba Night"
	idx := NewPrefixIndex()
	idx.Insert(name, 42)

	for i := 0; i <= len(name); i++ {
		prefix := name[:i]
		set := idx.FindByPrefix(prefix)
		if _, ok := set[42]; !ok {
			t.Fatalf("FindByPrefix(%q) missing id 42", prefix)
		}
	}
}

func TestPrefixIndexIdempotentInsert(t *testing.T) {
	idx := NewPrefixIndex()
	idx.Insert("Sunburn", 7)
	idx.Insert("Sunburn", 7)

	got := sortedIDs(idx.FindByPrefix("sun"))
	if !reflect.DeepEqual(got, []uint64{7}) {
		t.Errorf("after double insert FindByPrefix(\"sun\") = %v; want [7]", got)
	}
}

func TestPrefixIndexSharedName(t *testing.T) {
	// Two listings for the same event share a terminal node.
	idx := NewPrefixIndex()
	idx.Insert("Diwali Bash", 1)
	idx.Insert("Diwali Bash", 9)

	got := sortedIDs(idx.FindByPrefix("diwali bash"))
	if !reflect.DeepEqual(got, []uint64{1, 9}) {
		t.Errorf("FindByPrefix(\"diwali bash\") = %v; want [1 9]", got)
	}
}

func TestPrefixIndexEmptyName(t *testing.T) {
	// An empty name lands on the root: invisible to any non-empty
	// prefix but present in the full dump.
	idx := NewPrefixIndex()
	idx.Insert("", 5)

	if got := sortedIDs(idx.FindByPrefix("")); !reflect.DeepEqual(got, []uint64{5}) {
		t.Errorf("FindByPrefix(\"\") = %v; want [5]", got)
	}
	if got := idx.FindByPrefix("a"); len(got) != 0 {
		t.Errorf("FindByPrefix(\"a\") = %v; want empty set", got)
	}
}

func TestPrefixIndexEmptyTree(t *testing.T) {
	idx := NewPrefixIndex()
	if got := idx.FindByPrefix("anything"); len(got) != 0 {
		t.Errorf("lookup on empty index = %v; want empty set", got)
	}
	if got := idx.FindByPrefix(""); len(got) != 0 {
		t.Errorf("empty-prefix lookup on empty index = %v; want empty set", got)
	}
}
