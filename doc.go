// Package pubnet provides typed publication networks: node tables and
// edge collections grouped around a root node type, with filtering and
// similarity analysis on top.
//
// The packages split along the data model:
//
//   - node       — typed node tables backed by dataframes.
//   - edge       — typed edge collections with two interchangeable
//     backends, an array of identifier pairs and an adjacency graph.
//   - similarity — neighbor-overlap counting and shortest-path
//     similarity over the overlap graph.
//   - network    — the container tying node and edge collections
//     together: lookup, slicing, filtering, merging.
//   - storage    — graph directories on disk in plain text, gzip and
//     binary form, with discovery by naming convention.
//
// A network is built from in-memory collections with network.New or
// read from disk with storage.LoadGraph; both construct the same
// container. Filtering computes a set of root identifiers and slices
// every collection down to the rows connected to them. The root type
// defaults to "Publication", the network these packages were written
// for, but nothing in the model is specific to publications.
package pubnet
