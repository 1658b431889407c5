// Package similarity core types and sentinel errors.
//
// Weighted is an overlap triple (A, B, Weight) with A < B; Score is a
// similarity triple (A, B, Value) with A < B. Both orderings are
// guaranteed by construction: the algorithms emit exactly one of
// (i, j) / (j, i) and never a self-pair.
package similarity

import "errors"

// Sentinel errors returned by the similarity algorithms.
var (
	// ErrWeightLength indicates the weight vector does not match the edge count.
	ErrWeightLength = errors.New("similarity: weights length does not match edge count")

	// ErrNegativeWeight indicates a non-positive edge weight was supplied.
	// Overlap counts are strictly positive, so a shortest-path input with a
	// weight ≤ 0 means the caller built the overlap graph incorrectly.
	ErrNegativeWeight = errors.New("similarity: overlap weights must be positive")
)

// Weighted is one strictly-positive entry of the sparse overlap result.
// A and B are original node identifiers with A < B.
type Weighted struct {
	A      int64   // smaller node identifier
	B      int64   // larger node identifier
	Weight float64 // shared-neighbor count (or weighted sum)
}

// Score is one pairwise similarity between two distinct target nodes.
// A and B are original node identifiers with A < B.
type Score struct {
	A     int64   // smaller target identifier
	B     int64   // larger target identifier
	Value float64 // similarity value (shortest-path distance)
}
