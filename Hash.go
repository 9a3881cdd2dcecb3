package phamt

import "bytes"
import "hash/maphash"


//============================================= Hash Fragmenter


// bitChunkSize is the width, in bits, of the sparse index at every level
// except the last. 2^5 == 32, the branching factor of the trie.
const bitChunkSize = 5

// lastLevel is the final level in the descent. Twelve 5-bit chunks plus one
// trailing 4-bit chunk account for all 64 bits of the hash: 12*5 + 4 == 64.
const lastLevel = 12

// lastChunkSize is the width, in bits, of the sparse index at lastLevel.
const lastChunkSize = 4

// fragmentAt extracts the sparse index for a given level from a 64 bit hash.
// Levels 0 through 11 are read MSB-to-LSB in 5-bit chunks; level 12, the
// last, takes the remaining 4 bits. Because the chunks are taken from the
// high bits down, two distinct hashes are guaranteed to diverge at or
// before level 12 unless they are fully equal.
func fragmentAt(hash uint64, level int) int {
	if level < lastLevel {
		shift := uint(64 - bitChunkSize*(level+1))
		return int((hash >> shift) & 0x1F)
	}

	return int(hash & 0xF)
}


//============================================= Hasher / Key-Equality Collaborators


// KeyOps bundles hashing and key-equality into a single collaborator. A
// hash without a matching equality relation isn't independently useful to
// the trie, so the two always travel together here, the same way
// rogpeppe-generic's anyhash.Hasher[T] and wdamron-amt's Key[K] bundle Hash
// and Equal on one collaborator.
type KeyOps[K any] interface {
	// Hash returns the 64 bit hash code for a key. Must be deterministic
	// for the lifetime of a Map value built with this KeyOps.
	Hash(key K) uint64
	// Equal reports whether two keys are the same key. Must be consistent
	// with Hash: equal keys must hash equal.
	Equal(a, b K) bool
}

// ComparableOps is the default KeyOps for any comparable K. It draws a
// hash/maphash seed once at construction and seeds a fresh maphash.Hash
// with it on every Hash call, so that hashing the same key twice against
// the same ComparableOps value always agrees: a seeded, cheaply-cloneable
// hashing factory meant to be stored once in a Map handle and reused.
type ComparableOps[K comparable] struct {
	seed maphash.Seed
}

// NewComparable builds a ComparableOps KeyOps with a fresh random seed.
func NewComparable[K comparable]() ComparableOps[K] {
	return ComparableOps[K]{ seed: maphash.MakeSeed() }
}

func (ops ComparableOps[K]) Hash(key K) uint64 {
	var h maphash.Hash
	h.SetSeed(ops.seed)
	maphash.WriteComparable(&h, key)

	return h.Sum64()
}

func (ops ComparableOps[K]) Equal(a, b K) bool { return a == b }

// Bytes is a KeyOps for []byte keys, which aren't comparable via == but
// have an obvious equality relation in bytes.Equal.
type Bytes struct {
	seed maphash.Seed
}

// NewBytes builds a Bytes KeyOps with a fresh random seed.
func NewBytes() Bytes { return Bytes{ seed: maphash.MakeSeed() } }

func (ops Bytes) Hash(key []byte) uint64 {
	var h maphash.Hash
	h.SetSeed(ops.seed)
	h.Write(key)

	return h.Sum64()
}

func (ops Bytes) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// Strings is a KeyOps for string keys.
type Strings struct {
	seed maphash.Seed
}

// NewStrings builds a Strings KeyOps with a fresh random seed.
func NewStrings() Strings { return Strings{ seed: maphash.MakeSeed() } }

func (ops Strings) Hash(key string) uint64 {
	var h maphash.Hash
	h.SetSeed(ops.seed)
	h.WriteString(key)

	return h.Sum64()
}

func (ops Strings) Equal(a, b string) bool { return a == b }
