// Package network owns a dynamic set of named node collections and
// named edge collections, and keeps them mutually consistent under
// root-centered filtering.
//
// A Network has a root node type (typically "Publication"): every
// subgraph operation (Slice, Containing, Where) expresses its
// selection as a set of root identifiers and then applies that set to
// every edge collection (dropping rows not touching the root ids) and
// every node collection (dropping rows whose id has no surviving edge
// to the root). Node collections are keyed by their type tag; edge
// collections by the canonical sorted-pair key of their two types
// (edge.Key). Identifiers are int64 network-wide (edge.ID).
//
// The container is not thread-safe and operations with mutate=true race
// with any concurrent reader. Filtering with mutate=false clones the
// whole container first, so a failure mid-operation never leaves the
// original partially sliced. The clone is the documented way to get an
// independent snapshot for concurrent use.
//
// Constructing a Network whose root type has no node collection logs a
// warning (via the injected zap logger) and degrades filtering rather
// than failing.
package network
