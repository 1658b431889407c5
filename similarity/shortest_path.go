package similarity

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// ShortestPath computes pairwise shortest-path distances among targets
// over the weighted overlap graph.
//
// Each overlap entry (A, B, w) becomes an undirected edge of length 1/w,
// so strongly overlapping nodes sit close together. One Dijkstra sweep
// runs per target; paths are free to route through non-target nodes.
// Only finite, nonzero distances between two distinct targets are
// emitted, each pair exactly once with A < B. Targets that do not appear
// in the overlap graph are dropped, and an empty overlap yields an empty
// result rather than an error.
//
// Node identifiers are renumbered internally to a dense 0-based index
// space with the surviving targets first, so the per-sweep distance
// vector can be sliced contiguously for the target block.
//
// Complexity: O(T · (V + E) log V), space O(V + E).
func ShortestPath(targets []int64, overlap []Weighted) ([]Score, error) {
	for _, o := range overlap {
		if o.Weight <= 0 {
			return nil, fmt.Errorf("%w: pair (%d,%d) weight=%g", ErrNegativeWeight, o.A, o.B, o.Weight)
		}
	}

	index, live := renumber(targets, overlap)
	if len(live) < 2 {
		return nil, nil
	}

	// Adjacency over dense indices; the overlap graph is undirected.
	type arc struct {
		to   int32
		dist float64
	}
	adj := make([][]arc, len(index))
	for _, o := range overlap {
		u, v := index[o.A], index[o.B]
		d := 1 / o.Weight
		adj[u] = append(adj[u], arc{to: v, dist: d})
		adj[v] = append(adj[v], arc{to: u, dist: d})
	}

	nv := len(adj)
	dist := make([]float64, nv)
	var out []Score
	for src := 0; src < len(live); src++ {
		// Single-source sweep with the lazy-decrease-key heap: stale
		// entries stay in the queue and are skipped when popped.
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		dist[src] = 0
		pq := pathPQ{{idx: int32(src), dist: 0}}
		heap.Init(&pq)
		for pq.Len() > 0 {
			item := heap.Pop(&pq).(pathItem)
			if item.dist > dist[item.idx] {
				continue
			}
			for _, a := range adj[item.idx] {
				if nd := item.dist + a.dist; nd < dist[a.to] {
					dist[a.to] = nd
					heap.Push(&pq, pathItem{idx: a.to, dist: nd})
				}
			}
		}

		// Targets occupy the leading block of the index space; emit the
		// strictly-upper part so each pair appears once and self-distances
		// never do.
		for dst := src + 1; dst < len(live); dst++ {
			if d := dist[dst]; !math.IsInf(d, 1) && d > 0 {
				out = append(out, Score{A: live[src], B: live[dst], Value: d})
			}
		}
	}

	return out, nil
}

// renumber maps original identifiers to dense indices with the targets
// that actually occur in the overlap graph first (in ascending id
// order), followed by the remaining overlap nodes. Returns the mapping
// and the ordered surviving targets.
func renumber(targets []int64, overlap []Weighted) (map[int64]int32, []int64) {
	inTargets := make(map[int64]bool, len(targets))
	for _, t := range targets {
		inTargets[t] = true
	}

	liveSet := make(map[int64]bool)
	rest := make(map[int64]bool)
	for _, o := range overlap {
		for _, n := range [2]int64{o.A, o.B} {
			if inTargets[n] {
				liveSet[n] = true
			} else {
				rest[n] = true
			}
		}
	}

	live := make([]int64, 0, len(liveSet))
	for n := range liveSet {
		live = append(live, n)
	}
	sort.Slice(live, func(i, j int) bool { return live[i] < live[j] })

	index := make(map[int64]int32, len(liveSet)+len(rest))
	for i, n := range live {
		index[n] = int32(i)
	}
	next := int32(len(live))
	for n := range rest {
		index[n] = next
		next++
	}

	return index, live
}

// pathItem is one (vertex, distance) entry in the Dijkstra min-heap.
type pathItem struct {
	idx  int32
	dist float64
}

// pathPQ is a min-heap of pathItem ordered by distance ascending.
type pathPQ []pathItem

func (pq pathPQ) Len() int            { return len(pq) }
func (pq pathPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq pathPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *pathPQ) Push(x interface{}) { *pq = append(*pq, x.(pathItem)) }
func (pq *pathPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
