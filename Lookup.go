package phamt

import "github.com/sirgallo/utils"


//============================================= Lookup Engine


// getRecursive attempts to recursively retrieve a value for a given key.
// For each node traversed, the sparse index is calculated for the hashed
// key. If the bit is not set in the bitmap, the key has never been
// inserted down this path. Otherwise the position in the entries slice is
// found and the entry inspected: a matching Leaf returns its value, a
// Collision is scanned linearly, and a Subtree recurses one level deeper.
// Read-only; allocates nothing.
func getRecursive[K, V any](n *node[K, V], level int, key K, hash uint64, ops KeyOps[K]) (V, bool) {
	f := fragmentAt(hash, level)

	if ! isBitSet(n.presence, f) {
		return utils.GetZero[V](), false
	}

	pos := position(n.presence, f)
	e := n.entries[pos]

	switch e.kind {
		case entryLeaf:
			if ops.Equal(e.key, key) {
				return e.value, true
			}

			return utils.GetZero[V](), false

		case entryCollision:
			if e.hash == hash {
				for _, p := range e.pairs {
					if ops.Equal(p.Key, key) {
						return p.Value, true
					}
				}
			}

			return utils.GetZero[V](), false

		default: // entrySubtree
			return getRecursive(e.child, level+1, key, hash, ops)
	}
}
