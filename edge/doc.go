// Package edge stores the typed edge collections of a publication
// network: sets of (start, end) identifier pairs connecting two node
// types, with optional per-edge feature vectors.
//
// Two interchangeable backends implement the same Set contract:
//
//	– BackendArray: two parallel identifier columns. Identifiers are
//	  stored as-is, column operations work directly on the slices, and
//	  the set serializes cheaply as delimited or binary pairs.
//	– BackendGraph: an adjacency-structured graph object. Original
//	  identifiers are renumbered to a dense 0-based vertex space (the
//	  adjacency structure requires contiguous indices); every vertex
//	  carries its node type and original identifier, edges are stored
//	  directed to keep the start/end distinction reliable, and all
//	  public operations translate back to original identifiers.
//
// The backend is chosen at construction time and is transparent to the
// network container: filtering, overlap and similarity yield identical
// results on either backend. Edge sets are replaced wholesale (never
// edited row by row), and the derived overlap value is cached per
// (endpoint, weight) request with explicit invalidation; there is no
// dirty tracking.
package edge
