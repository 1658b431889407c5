// Package similarity provides the backend-agnostic algorithms behind
// edge-set analysis: pairwise neighbor overlap and shortest-path
// similarity over the weighted overlap graph.
//
// Both entry points are pure functions over plain identifier-pair data,
// so every edge backend produces numerically identical results by
// delegating here (or, in the graph backend's case, by reproducing the
// same accumulation over its adjacency structure).
//
// Overlap
//
//	Given an edge list (start, end) with optional per-edge weights,
//	Overlap computes the sparse upper triangle of A·Aᵗ, where A is the
//	adjacency matrix with rows indexed by start identifiers and columns
//	by end identifiers. Entry (i, j) is the weighted count of end nodes
//	that start nodes i and j share. Zero entries and the diagonal are
//	never materialized.
//
// ShortestPath
//
//	Given an overlap result and a subset of target identifiers,
//	ShortestPath runs one Dijkstra sweep per target over the overlap
//	graph with edge weight 1/overlap (more shared neighbors ⇒ shorter
//	distance) and reports the finite pairwise distances among the
//	targets only. Paths may route through non-target nodes.
//
// Complexity:
//
//	– Overlap:      O(E) to group edges, O(Σ deg(e)²) for the self-join.
//	– ShortestPath: O(T · (V + E′) log V) with T targets over the
//	  overlap graph (V nodes, E′ overlap pairs).
package similarity
