/*
Package phamt implements a persistent (immutable) associative array on top
of a hash array mapped trie (HAMT).

Every mutating operation (Insert, Remove) returns a new Map value and
leaves the receiver observably unchanged. The two maps share as much
internal structure as possible, so an update touches O(log32 N) nodes
instead of copying the whole trie. This is the same copy-on-write discipline
as a versioned on-disk trie, just without the disk: nodes are plain,
GC-managed values, and sharing falls out of ordinary pointer aliasing
between Map values rather than an explicit page cache.

A Map is parameterized by a KeyOps[K] collaborator bundling a hash function
and an equality relation for K. ComparableOps provides a default built on
hash/maphash for any comparable K; Bytes covers []byte keys, which aren't
comparable via == but have an obvious equality relation in bytes.Equal, and
Strings covers string keys.
*/
package phamt
