// Package dfs enumerates simple paths between two nodes of a graph.Storage
// subject to hop, delay, wall-clock, and constraint budgets, and caches the
// results per (source, destination) pair behind a small set of convenience
// queries (lowest delay, k-lowest, k-diverse, k-hops-from-lowest).
//
// ArrayGraph flattens a graph.Storage into per-destination adjacency lists
// ordered by ascending precomputed distance to that destination, so Search
// visits the most promising neighbor first without resorting on every step.
// Search itself is an explicit-stack, non-recursive depth-first walk so
// that hop/weight/time budgets and cancellation can all be checked on every
// push without growing the Go call stack.
package dfs
