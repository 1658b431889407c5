// Package node row/column subsetting and sampling.
//
// Python-style polymorphic indexing maps here to typed methods: Select
// for columns, Rows/Mask/Range for rows, and compositions of the two
// for the 2-D form. Every derivation returns a new Node with the same
// type tag and identifier column.
package node

import (
	"fmt"
	"math/rand"
	"time"
)

// Select returns a new Node keeping only the named feature columns.
func (n *Node) Select(features []string) (*Node, error) {
	for _, feat := range features {
		if !n.hasFeature(feat) {
			return nil, fmt.Errorf("%w: %q (features: %v)", ErrFeatureNotFound, feat, n.Features())
		}
	}
	sub := n.data.Select(features)
	if sub.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadData, sub.Err)
	}

	return &Node{name: n.name, id: n.id, data: sub}, nil
}

// Rows returns a new Node holding the rows at the given positions.
// Positions may repeat (sampling relies on this).
func (n *Node) Rows(rows []int) (*Node, error) {
	total := n.Len()
	for _, r := range rows {
		if r < 0 || r >= total {
			return nil, fmt.Errorf("%w: %d of %d", ErrRowRange, r, total)
		}
	}
	sub := n.data.Subset(rows)
	if sub.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadData, sub.Err)
	}

	return &Node{name: n.name, id: n.id, data: sub}, nil
}

// Mask returns a new Node holding the rows where mask is true. The mask
// must be exactly one element per row; it is interpreted as a mask, not
// as positional indices.
func (n *Node) Mask(mask []bool) (*Node, error) {
	if len(mask) != n.Len() {
		return nil, fmt.Errorf("%w: mask %d for %d rows", ErrMaskLength, len(mask), n.Len())
	}
	rows := make([]int, 0, len(mask))
	for i, keep := range mask {
		if keep {
			rows = append(rows, i)
		}
	}

	return n.Rows(rows)
}

// Range returns a new Node holding rows lo..hi-1, half-open like a
// slice expression.
func (n *Node) Range(lo, hi int) (*Node, error) {
	if lo < 0 || hi < lo || hi > n.Len() {
		return nil, fmt.Errorf("%w: [%d:%d) of %d", ErrRowRange, lo, hi, n.Len())
	}
	rows := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		rows = append(rows, i)
	}

	return n.Rows(rows)
}

// GetRandom samples count rows independently with replacement via
// uniform draws of row positions. The same seed yields the same sample;
// pass a negative seed for a non-reproducible draw.
func (n *Node) GetRandom(count int, seed int64) (*Node, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadSample, count)
	}
	if n.Len() == 0 {
		return nil, fmt.Errorf("%w: cannot sample an empty collection", ErrRowRange)
	}

	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	rows := make([]int, count)
	for i := range rows {
		rows[i] = rng.Intn(n.Len())
	}

	return n.Rows(rows)
}
