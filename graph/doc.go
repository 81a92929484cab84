// Package graph interns the nodes, links, link sequences, and paths that the
// rest of netsim builds on.
//
// A Storage owns every Node and Link for the lifetime of a simulation run:
// nodes are created on first reference by id and never mutated, links are
// deduplicated by (src, dst, src-port, dst-port), and paths are interned
// under a caller-supplied cookie so that two aggregates can hold distinct
// path identities over the same underlying link sequence. Every non-empty
// Path receives a tag unique within its Storage; the empty path is a single
// cookie-independent singleton.
//
// Callers receive stable *Node, *Link, and *Path references whose lifetimes
// track the Storage that produced them — Storage is the sole owner.
//
// Complexity: interning a node is a map lookup by id; interning a link is a
// map lookup by (src, dst) plus a linear scan of the links already interned
// at that pair; interning a path is O(k) in the
// number of links in the sequence plus a map lookup keyed by that sequence.
package graph
