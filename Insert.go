package phamt

//============================================= Insert Engine


// insertRecursive attempts to traverse through the trie, locating the slot
// at a given level to modify for the incoming key-value pair, copying only
// the nodes on the path from n down to that slot. Siblings along the way
// are reused by reference.
//
// Three cases:
//
//   - the slot is unoccupied: a new Leaf is inserted there directly.
//   - the slot holds a Subtree: recurse one level deeper and splice the
//     returned child back in.
//   - the slot holds a Leaf or a Collision: either it's an update to the
//     same key (replace in place) or the two keys must coexist, which
//     splitEntries resolves by building fresh intermediate nodes below
//     this level until the two keys' fragments diverge.
func insertRecursive[K, V any](n *node[K, V], level int, key K, value V, hash uint64, ops KeyOps[K]) *node[K, V] {
	f := fragmentAt(hash, level)

	if ! isBitSet(n.presence, f) {
		pos := position(n.presence, f)
		return n.withInserted(f, pos, leafEntry(key, value))
	}

	pos := position(n.presence, f)
	e := n.entries[pos]

	switch e.kind {
		case entryLeaf:
			if ops.Equal(e.key, key) {
				return n.withReplaced(pos, leafEntry(key, value))
			}

			existingHash := ops.Hash(e.key)
			split := splitEntries(e, existingHash, key, value, hash, level+1, ops)
			return n.withReplaced(pos, split)

		case entryCollision:
			if e.hash == hash {
				cLog.Debug("merging key into existing collision entry at level:", level)
				return n.withReplaced(pos, collisionEntry(e.hash, upsertPair(e.pairs, key, value, ops)))
			}

			split := splitEntries(e, e.hash, key, value, hash, level+1, ops)
			return n.withReplaced(pos, split)

		default: // entrySubtree
			newChild := insertRecursive(e.child, level+1, key, value, hash, ops)
			return n.withReplaced(pos, subtreeEntry(newChild))
	}
}

// splitEntries resolves a conflict between an existing entry (a Leaf or a
// Collision, living one level above) and an incoming key that must coexist
// with it. level is the level of the node being built to hold both.
//
// If the two hashes are fully equal, no amount of descending would ever
// separate them (every one of the 64 bits has already been consumed by
// level 12), so a Collision is produced immediately regardless of level.
// Otherwise the two keys' fragments either still agree at this level, in
// which case a single-entry node is built and the procedure recurses one
// level deeper, or they diverge, in which case a two-entry branch node is
// built and the recursion terminates. Because the hashes differ and every
// bit is consumed by level 12, divergence is always reached at or before then.
func splitEntries[K, V any](existing entry[K, V], existingHash uint64, newKey K, newValue V, newHash uint64, level int, ops KeyOps[K]) entry[K, V] {
	if existingHash == newHash {
		cLog.Debug("full hash collision detected while splitting at level:", level)
		return collisionEntry(newHash, mergeIntoPairs(existing, newKey, newValue, ops))
	}

	existingFragment := fragmentAt(existingHash, level)
	newFragment := fragmentAt(newHash, level)

	if existingFragment == newFragment {
		child := splitEntries(existing, existingHash, newKey, newValue, newHash, level+1, ops)
		return subtreeEntry(singleEntryNode(existingFragment, child))
	}

	return subtreeEntry(twoEntryNode(existingFragment, existing, newFragment, leafEntry(newKey, newValue)))
}

// mergeIntoPairs folds an incoming key-value pair into whatever pairs an
// existing Leaf or Collision entry represents, producing the pair slice for
// a brand new Collision entry.
func mergeIntoPairs[K, V any](existing entry[K, V], key K, value V, ops KeyOps[K]) []Pair[K, V] {
	if existing.kind == entryLeaf {
		return []Pair[K, V]{ { Key: existing.key, Value: existing.value }, { Key: key, Value: value } }
	}

	return upsertPair(existing.pairs, key, value, ops)
}

// upsertPair replaces the value of a matching key within pairs, or appends
// a new pair if none match.
func upsertPair[K, V any](pairs []Pair[K, V], key K, value V, ops KeyOps[K]) []Pair[K, V] {
	for i, p := range pairs {
		if ops.Equal(p.Key, key) {
			updated := make([]Pair[K, V], len(pairs))
			copy(updated, pairs)
			updated[i].Value = value

			return updated
		}
	}

	extended := make([]Pair[K, V], len(pairs)+1)
	copy(extended, pairs)
	extended[len(pairs)] = Pair[K, V]{ Key: key, Value: value }

	return extended
}
