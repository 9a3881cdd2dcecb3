package phamt

//============================================= Remove Engine


// spliceKind distinguishes the four outcomes a remove can produce at any
// given level, so that a caller one level up the trie can splice the
// result into its own slot correctly.
type spliceKind uint8

const (
	// spliceUnchanged: the key wasn't found under this subtree; nothing
	// to splice, the caller keeps its existing Subtree entry as is.
	spliceUnchanged spliceKind = iota
	// spliceEntry: this subtree collapsed down to a single Leaf or
	// Collision entry, which the caller should splice directly into its
	// own slot in place of a Subtree entry.
	spliceEntry
	// spliceSubtree: this subtree is still a genuine branch (two or more
	// entries, or a single Subtree entry) and the caller should keep
	// pointing at it, just with the new node in place of the old one.
	spliceSubtree
	// spliceEmpty: this subtree lost its last entry; the caller should
	// drop its slot for it entirely.
	spliceEmpty
)

type spliceResult[K, V any] struct {
	kind  spliceKind
	entry entry[K, V]
	child *node[K, V]
}

// spliceOutcome classifies a freshly rebuilt node n2 for the benefit of
// whoever is holding a pointer to it one level up: empty, collapsible to a
// bare entry, or still a genuine subtree. Every remove branch below routes
// its rebuilt node through this one function, so a node that only just
// became reducible because its last sibling disappeared is caught the same
// way a node that was always going to collapse is.
func spliceOutcome[K, V any](n2 *node[K, V]) spliceResult[K, V] {
	switch {
		case n2.presence == 0:
			return spliceResult[K, V]{ kind: spliceEmpty }

		case len(n2.entries) == 1 && n2.entries[0].kind != entrySubtree:
			return spliceResult[K, V]{ kind: spliceEntry, entry: n2.entries[0] }

		default:
			return spliceResult[K, V]{ kind: spliceSubtree, child: n2 }
	}
}

// removeRecursive locates key within n at level and reports, via
// spliceResult, what n's caller should do with its own slot for n. n
// itself is never mutated; a spliceSubtree or spliceEntry result carries a
// freshly built replacement, and spliceUnchanged means n can be left
// exactly as the caller already has it (no copy was made at all).
func removeRecursive[K, V any](n *node[K, V], level int, key K, hash uint64, ops KeyOps[K]) spliceResult[K, V] {
	f := fragmentAt(hash, level)

	if ! isBitSet(n.presence, f) {
		return spliceResult[K, V]{ kind: spliceUnchanged }
	}

	pos := position(n.presence, f)
	e := n.entries[pos]

	switch e.kind {
		case entryLeaf:
			if ! ops.Equal(e.key, key) {
				return spliceResult[K, V]{ kind: spliceUnchanged }
			}

			return spliceOutcome(n.withRemoved(f, pos))

		case entryCollision:
			if e.hash != hash {
				return spliceResult[K, V]{ kind: spliceUnchanged }
			}

			newPairs, found := removePair(e.pairs, key, ops)
			if ! found {
				return spliceResult[K, V]{ kind: spliceUnchanged }
			}

			switch len(newPairs) {
				case 0:
					return spliceOutcome(n.withRemoved(f, pos))
				case 1:
					return spliceOutcome(n.withReplaced(pos, leafEntry(newPairs[0].Key, newPairs[0].Value)))
				default:
					return spliceOutcome(n.withReplaced(pos, collisionEntry(e.hash, newPairs)))
			}

		default: // entrySubtree
			childResult := removeRecursive(e.child, level+1, key, hash, ops)

			switch childResult.kind {
				case spliceUnchanged:
					return spliceResult[K, V]{ kind: spliceUnchanged }

				case spliceEmpty:
					return spliceOutcome(n.withRemoved(f, pos))

				case spliceEntry:
					cLog.Debug("collapsing single-entry subtree into parent slot at level:", level)
					return spliceOutcome(n.withReplaced(pos, childResult.entry))

				default: // spliceSubtree
					return spliceOutcome(n.withReplaced(pos, subtreeEntry(childResult.child)))
			}
	}
}

// removePair drops the pair matching key from pairs, reporting whether a
// match was found at all.
func removePair[K, V any](pairs []Pair[K, V], key K, ops KeyOps[K]) ([]Pair[K, V], bool) {
	for i, p := range pairs {
		if ops.Equal(p.Key, key) {
			newPairs := make([]Pair[K, V], 0, len(pairs)-1)
			newPairs = append(newPairs, pairs[:i]...)
			newPairs = append(newPairs, pairs[i+1:]...)

			return newPairs, true
		}
	}

	return pairs, false
}
