package phamt

import "testing"


// checkInvariants walks every reachable node in m and asserts the trie's
// structural invariants: popcount/entries-length agreement, non-root
// non-reducibility, Collision well-formedness, and that every entry's
// own hash fragment at its level matches the slot it's actually stored at.
func checkInvariants[K comparable, V any](t *testing.T, m Map[K, V]) {
	t.Helper()
	walkInvariants(t, m.root, 0, true, m.ops)
}

func walkInvariants[K comparable, V any](t *testing.T, n *node[K, V], level int, isRoot bool, ops KeyOps[K]) {
	t.Helper()

	if popCount(n.presence) != len(n.entries) {
		t.Fatalf("level %d: popcount(%032b)=%d != len(entries)=%d", level, n.presence, popCount(n.presence), len(n.entries))
	}

	if ! isRoot {
		if len(n.entries) == 0 {
			t.Fatalf("level %d: non-root node is empty", level)
		}

		if len(n.entries) == 1 && n.entries[0].kind != entrySubtree {
			t.Fatalf("level %d: non-root node is reducible (single Leaf/Collision entry not collapsed)", level)
		}
	}

	if level > 13 {
		t.Fatalf("height exceeds 13 at level %d", level)
	}

	for pos, e := range n.entries {
		slot := slotForPosition(n.presence, pos)

		switch e.kind {
			case entryLeaf:
				if got := fragmentAt(ops.Hash(e.key), level); got != slot {
					t.Fatalf("level %d: leaf key %v fragment %d does not match slot %d", level, e.key, got, slot)
				}

			case entryCollision:
				if len(e.pairs) < 2 {
					t.Fatalf("level %d: collision entry has fewer than 2 pairs: %d", level, len(e.pairs))
				}

				for i := range e.pairs {
					if got := ops.Hash(e.pairs[i].Key); got != e.hash {
						t.Fatalf("level %d: collision pair %d hash %x != stored hash %x", level, i, got, e.hash)
					}

					for j := i + 1; j < len(e.pairs); j++ {
						if ops.Equal(e.pairs[i].Key, e.pairs[j].Key) {
							t.Fatalf("level %d: collision entry has duplicate key %v", level, e.pairs[i].Key)
						}
					}
				}

				if got := fragmentAt(e.hash, level); got != slot {
					t.Fatalf("level %d: collision fragment %d does not match slot %d", level, got, slot)
				}

			default: // entrySubtree
				walkInvariants(t, e.child, level+1, false, ops)
		}
	}
}

// slotForPosition finds the bit index of the pos-th set bit in bitmap,
// counted from the least significant end - the inverse of the position()
// addressing function.
func slotForPosition(bitmap uint32, pos int) int {
	for slot := 0; slot < 32; slot++ {
		if isBitSet(bitmap, slot) {
			if pos == 0 {
				return slot
			}
			pos--
		}
	}

	panic("phamt: slotForPosition: position out of range for bitmap")
}

func TestInvariantsHoldAfterBulkInsert(t *testing.T) {
	m := Comparable[int, int]()

	for k := 0; k < 512; k++ {
		m = m.Insert(k, k)
		checkInvariants(t, m)
	}
}

func TestInvariantsHoldAfterInterleavedInsertRemove(t *testing.T) {
	m := Comparable[int, int]()

	for k := 0; k < 256; k++ {
		m = m.Insert(k, k)
	}

	checkInvariants(t, m)

	for k := 0; k < 256; k += 2 {
		m = m.Remove(k)
	}

	checkInvariants(t, m)

	for k := 0; k < 256; k++ {
		_, ok := m.Get(k)
		wantOk := k%2 != 0
		if ok != wantOk {
			t.Fatalf("Get(%d) ok=%v, want %v", k, ok, wantOk)
		}
	}
}

func TestInsertNeverCreatesReducibleNonRootNode(t *testing.T) {
	// Insert never needs to collapse, since it only ever adds to an
	// existing entry or splits one apart - it never leaves a non-root
	// node holding exactly one Leaf/Collision entry.
	m := Comparable[string, int]()

	words := []string{ "alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel" }
	for i, w := range words {
		m = m.Insert(w, i)
		checkInvariants(t, m)
	}
}
