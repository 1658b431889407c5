package similarity

import "sort"

// Overlap computes the pairwise neighbor overlap for the nodes in the
// first column of pairs.
//
// For every unordered pair (i, j) of first-column identifiers that share
// at least one second-column neighbor, the result holds one Weighted
// entry with A < B and Weight = Σ over shared neighbors e of
// w(i, e)·w(j, e). With nil weights every edge contributes 1, so Weight
// is the plain shared-neighbor count.
//
// This is the sparse upper triangle of A·Aᵗ: edges are grouped by their
// second-column node and each group contributes its pairs, so the dense
// first-by-first matrix is never materialized.
//
// The result is sorted by (A, B). An empty edge list yields an empty
// result; callers must treat nil and zero-length alike.
//
// Complexity: O(E) grouping + O(Σ deg(e)²) accumulation.
func Overlap(pairs [][2]int64, weights []float64) ([]Weighted, error) {
	if weights != nil && len(weights) != len(pairs) {
		return nil, ErrWeightLength
	}

	// Group by the shared (second-column) node, summing duplicate edges
	// the way a sparse matrix build would.
	type arc struct {
		node   int64
		weight float64
	}
	groups := make(map[int64]map[int64]float64, len(pairs))
	for i, p := range pairs {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		g, ok := groups[p[1]]
		if !ok {
			g = make(map[int64]float64)
			groups[p[1]] = g
		}
		g[p[0]] += w
	}

	// Self-join: every shared node contributes w_i·w_j to each of its
	// neighbor pairs. Keys are normalized to A < B, which discards the
	// diagonal and mirrors in one step.
	acc := make(map[[2]int64]float64)
	members := make([]arc, 0)
	for _, g := range groups {
		members = members[:0]
		for n, w := range g {
			members = append(members, arc{node: n, weight: w})
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i], members[j]
				if a.node == b.node {
					continue
				}
				key := [2]int64{a.node, b.node}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				acc[key] += a.weight * b.weight
			}
		}
	}

	out := make([]Weighted, 0, len(acc))
	for key, w := range acc {
		if w <= 0 {
			continue
		}
		out = append(out, Weighted{A: key[0], B: key[1], Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})

	return out, nil
}
