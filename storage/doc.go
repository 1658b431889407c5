// Package storage persists publication networks as directories of
// per-collection files.
//
// A graph is a directory under a data directory. Each node collection
// lives in "<Type>_nodes.<ext>" and each edge collection in
// "<Type1>_<Type2>_edges.<ext>" with the types in lexical order.
// Three formats are supported: plain tab-separated text (easy to
// inspect and edit with outside tools), gzip-compressed text, and a
// gob binary encoding (faster and smaller for large collections).
// Text edge files carry a Neo4j-style header line naming the start and
// end types, so a loader can recover column orientation even when the
// file name lists the types in the opposite order.
//
// SaveGraph and LoadGraph are the entry points. The data directory is
// an explicit argument everywhere; SetDefaultDataDir installs a
// process-wide fallback and nothing touches the filesystem until a
// save or load is requested.
package storage
