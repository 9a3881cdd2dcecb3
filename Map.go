package phamt

import "github.com/sirgallo/logger"


// cLog is the package's structural-event tracer, a named logger a caller
// can turn up to watch collisions and collapses happen without threading a
// logger through every call.
var cLog = logger.NewCustomLog("phamt")


//============================================= Map Handle


// Map is an opaque handle onto a persistent hash array mapped trie: a
// shared reference to a root node plus the KeyOps collaborator used to
// hash and compare keys of type K. Map values are cheap to copy: copying
// a Map clones the handle, not the tree, since the root is a plain pointer
// and the trie beneath it is immutable once published.
type Map[K, V any] struct {
	root *node[K, V]
	ops  KeyOps[K]
}

// NewMap builds an empty Map using the given KeyOps collaborator. ops is
// stored in the handle and reused for every operation against this Map and
// every Map derived from it by Insert/Remove, so hashing stays deterministic
// across a whole chain of updates instead of being reseeded per call.
func NewMap[K, V any](ops KeyOps[K]) Map[K, V] {
	return Map[K, V]{ root: emptyNode[K, V](), ops: ops }
}

// Comparable builds an empty Map for any comparable K, using a fresh
// ComparableOps[K] KeyOps under the hood. This is the common case: most keys
// (ints, strings, simple structs) are already comparable via ==.
func Comparable[K comparable, V any]() Map[K, V] {
	return NewMap[K, V](NewComparable[K]())
}

// Empty returns a map with zero entries built from the same KeyOps as m.
// Useful when starting a fresh accumulation with the same hashing strategy
// without threading the KeyOps value around separately.
func (m Map[K, V]) Empty() Map[K, V] {
	return Map[K, V]{ root: emptyNode[K, V](), ops: m.ops }
}

// Len reports the number of key-value bindings in m. O(N), since the trie
// doesn't keep a running count: every insert/remove would otherwise
// need to thread a count up every path-copied node even when the count
// itself is never asked for.
func (m Map[K, V]) Len() int {
	return countEntries(m.root)
}

func countEntries[K, V any](n *node[K, V]) int {
	total := 0

	for _, e := range n.entries {
		switch e.kind {
			case entryLeaf:
				total++
			case entryCollision:
				total += len(e.pairs)
			default:
				total += countEntries(e.child)
		}
	}

	return total
}

// Height returns the maximum depth of any reachable node: 0 for an empty
// map, 1 if every binding fits directly in the root's own slots, and more
// as Subtree chains descend. Useful for asserting the no-empty-interior
// and path-collapse invariants in tests.
func (m Map[K, V]) Height() int {
	return heightOf(m.root)
}

func heightOf[K, V any](n *node[K, V]) int {
	if n.presence == 0 {
		return 0
	}

	deepest := 0

	for _, e := range n.entries {
		if e.kind == entrySubtree {
			if h := heightOf(e.child); h > deepest {
				deepest = h
			}
		}
	}

	return deepest + 1
}

// Get retrieves the value bound to key, if any. Fails with no error: an
// absent key simply reports ok == false.
func (m Map[K, V]) Get(key K) (value V, ok bool) {
	hash := m.ops.Hash(key)
	return getRecursive(m.root, 0, key, hash, m.ops)
}

// Contains reports whether key is bound in m.
func (m Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Insert returns a new Map in which key is bound to value, with every
// other binding preserved. If key was already bound, the old binding is
// replaced. m itself is left unchanged.
func (m Map[K, V]) Insert(key K, value V) Map[K, V] {
	hash := m.ops.Hash(key)
	newRoot := insertRecursive(m.root, 0, key, value, hash, m.ops)

	return Map[K, V]{ root: newRoot, ops: m.ops }
}

// Remove returns a new Map without any binding for key. If key was absent,
// the returned map is equal in contents to m (the receiver itself is never
// mutated either way).
func (m Map[K, V]) Remove(key K) Map[K, V] {
	hash := m.ops.Hash(key)
	result := removeRecursive(m.root, 0, key, hash, m.ops)

	switch result.kind {
		case spliceUnchanged:
			return m

		case spliceEmpty:
			return Map[K, V]{ root: emptyNode[K, V](), ops: m.ops }

		case spliceEntry:
			// The root has no parent to splice this bare entry into, so it
			// is rewrapped into a fresh single-entry node. The entry's own
			// hash, not the removed key's hash, determines which slot it
			// lives in, since they are not the same key.
			survivorHash := entryHash(result.entry, m.ops)
			return Map[K, V]{ root: singleEntryNode(fragmentAt(survivorHash, 0), result.entry), ops: m.ops }

		default: // spliceSubtree
			return Map[K, V]{ root: result.child, ops: m.ops }
	}
}

// From bulk-constructs a Map by folding Insert over an empty map built
// with ops. Later pairs with equal keys override earlier ones.
func From[K, V any](ops KeyOps[K], pairs ...Pair[K, V]) Map[K, V] {
	m := NewMap[K, V](ops)

	for _, p := range pairs {
		m = m.Insert(p.Key, p.Value)
	}

	return m
}
