package edge

import (
	"fmt"
	"sort"

	"github.com/net-synergy/pubnet/similarity"
)

// Graph is the adjacency backend. Original identifiers are renumbered
// into a dense 0-based vertex space (the adjacency structure requires
// contiguous indices); each vertex keeps its node type and original
// identifier so public operations can translate back. Edges are stored
// directed start→end, in insertion order, so the start/end distinction
// survives regardless of identifier values.
type Graph struct {
	meta
	verts  []vertexAttr
	lookup map[vertexKey]int32
	edges  []gedge
}

// vertexAttr tags a dense vertex with its node type and original id.
// Node types may reuse identifier values, so the pair is the identity.
type vertexAttr struct {
	Type string
	ID   ID
}

type vertexKey struct {
	typ string
	id  ID
}

// gedge is one directed edge over dense vertex ids.
type gedge struct {
	src int32
	dst int32
}

var _ Set = (*Graph)(nil)

func newGraph(m meta, pairs [][2]ID) *Graph {
	g := &Graph{meta: m}
	g.setPairs(pairs)

	return g
}

func (g *Graph) setPairs(pairs [][2]ID) {
	g.verts = g.verts[:0]
	g.lookup = make(map[vertexKey]int32)
	g.edges = make([]gedge, 0, len(pairs))

	for _, p := range pairs {
		src := g.vertex(g.startID, p[0])
		dst := g.vertex(g.endID, p[1])
		g.edges = append(g.edges, gedge{src: src, dst: dst})
	}
}

// vertex interns (type, id) into the dense vertex space.
func (g *Graph) vertex(typ string, id ID) int32 {
	key := vertexKey{typ: typ, id: id}
	if v, ok := g.lookup[key]; ok {
		return v
	}
	v := int32(len(g.verts))
	g.verts = append(g.verts, vertexAttr{Type: typ, ID: id})
	g.lookup[key] = v

	return v
}

// Len reports the number of edges.
func (g *Graph) Len() int { return len(g.edges) }

// Backend reports BackendGraph.
func (g *Graph) Backend() Backend { return BackendGraph }

// Column returns the original identifiers of the column named by node
// type, in edge insertion order.
func (g *Graph) Column(key string) ([]ID, error) {
	idx, err := g.columnIndex(key)
	if err != nil {
		return nil, err
	}

	return g.column(idx), nil
}

func (g *Graph) column(index int) []ID {
	out := make([]ID, len(g.edges))
	for i, e := range g.edges {
		if index == 0 {
			out[i] = g.verts[e.src].ID
		} else {
			out[i] = g.verts[e.dst].ID
		}
	}

	return out
}

// ColumnAt returns a column by position: 0 = start, 1 = end.
func (g *Graph) ColumnAt(index int) ([]ID, error) {
	if index != 0 && index != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrColumnRange, index)
	}

	return g.column(index), nil
}

// Row returns the (start, end) original identifiers of one edge.
func (g *Graph) Row(i int) (ID, ID, error) {
	if i < 0 || i >= len(g.edges) {
		return 0, 0, fmt.Errorf("%w: %d of %d", ErrRowRange, i, len(g.edges))
	}
	e := g.edges[i]

	return g.verts[e.src].ID, g.verts[e.dst].ID, nil
}

// Slice returns a new Graph holding the rows at the given positions.
// The vertex space is rebuilt for the subset.
func (g *Graph) Slice(rows []int) (Set, error) {
	pairs := make([][2]ID, len(rows))
	for i, r := range rows {
		if r < 0 || r >= len(g.edges) {
			return nil, fmt.Errorf("%w: %d of %d", ErrRowRange, r, len(g.edges))
		}
		e := g.edges[r]
		pairs[i] = [2]ID{g.verts[e.src].ID, g.verts[e.dst].ID}
	}
	m := newMeta(g.startID, g.endID, g.Features(), g.featureSubset(rows))

	return newGraph(m, pairs), nil
}

// Filter returns a new Graph holding the rows where mask is true.
func (g *Graph) Filter(mask []bool) (Set, error) {
	if len(mask) != len(g.edges) {
		return nil, fmt.Errorf("%w: mask %d for %d edges", ErrMaskLength, len(mask), len(g.edges))
	}
	rows := make([]int, 0, len(mask))
	for i, keep := range mask {
		if keep {
			rows = append(rows, i)
		}
	}

	return g.Slice(rows)
}

// IsIn reports, per row, membership of the named column in ids.
func (g *Graph) IsIn(key string, ids []ID) ([]bool, error) {
	idx, err := g.columnIndex(key)
	if err != nil {
		return nil, err
	}
	member := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		member[id] = struct{}{}
	}
	mask := make([]bool, len(g.edges))
	for i, e := range g.edges {
		v := e.src
		if idx == 1 {
			v = e.dst
		}
		_, mask[i] = member[g.verts[v].ID]
	}

	return mask, nil
}

// IsEqual reports structural equality in row order. Works across
// backends: rows are compared through the common contract.
func (g *Graph) IsEqual(other Set) bool {
	if other == nil || g.StartID() != other.StartID() || g.EndID() != other.EndID() {
		return false
	}
	if g.Len() != other.Len() {
		return false
	}
	for i := range g.edges {
		s1, e1, _ := g.Row(i)
		s2, e2, err := other.Row(i)
		if err != nil || s1 != s2 || e1 != e2 {
			return false
		}
	}

	return featuresEqual(g, other)
}

// SetData wholesale-replaces the graph storage and feature vectors.
func (g *Graph) SetData(pairs [][2]ID, features map[string][]float64) error {
	if err := g.replaceData(len(pairs), features); err != nil {
		return err
	}
	g.setPairs(pairs)

	return nil
}

// Distribution counts edges per original identifier in the named column.
func (g *Graph) Distribution(key string) (map[ID]int64, error) {
	col, err := g.Column(key)
	if err != nil {
		return nil, err
	}
	counts := make(map[ID]int64)
	for _, v := range col {
		counts[v]++
	}

	return counts, nil
}

// Overlap derives the neighbor-overlap set for the endpoint column by
// grouping edge rows on the shared-side vertex: each group contributes
// the pairwise products of its endpoint-side weights. Grouping is by
// column role, not vertex type, so sets connecting a type to itself
// count the same as in the array backend.
func (g *Graph) Overlap(endpoint, weightFeature string) (Set, error) {
	if cached, ok := g.cachedOverlap(endpoint, weightFeature); ok {
		return cached, nil
	}

	idx, err := g.columnIndex(endpoint)
	if err != nil {
		return nil, err
	}
	var weights []float64
	if weightFeature != "" {
		if weights, err = g.Feature(weightFeature); err != nil {
			return nil, err
		}
	}

	// ownSide picks the endpoint-type vertex of an edge row, sharedSide
	// the vertex in the other column. Grouping rows by the shared-side
	// vertex matches the array backend's column grouping even when both
	// columns carry the same node type.
	ownSide := func(e gedge) int32 {
		if idx == 0 {
			return e.src
		}

		return e.dst
	}
	sharedSide := func(e gedge) int32 {
		if idx == 0 {
			return e.dst
		}

		return e.src
	}

	byShared := make(map[int32]map[ID]float64)
	for row, e := range g.edges {
		w := 1.0
		if weights != nil {
			w = weights[row]
		}
		neighbors := byShared[sharedSide(e)]
		if neighbors == nil {
			neighbors = make(map[ID]float64)
			byShared[sharedSide(e)] = neighbors
		}
		neighbors[g.verts[ownSide(e)].ID] += w
	}

	acc := make(map[[2]ID]float64)
	for _, neighbors := range byShared {
		for a, wa := range neighbors {
			for b, wb := range neighbors {
				if a < b {
					acc[[2]ID{a, b}] += wa * wb
				}
			}
		}
	}

	triples := make([]similarity.Weighted, 0, len(acc))
	for key, w := range acc {
		if w <= 0 {
			continue
		}
		triples = append(triples, similarity.Weighted{A: key[0], B: key[1], Weight: w})
	}
	sort.Slice(triples, func(i, j int) bool {
		if triples[i].A != triples[j].A {
			return triples[i].A < triples[j].A
		}
		return triples[i].B < triples[j].B
	})

	out, err := overlapToSet(BackendGraph, endpoint, triples)
	if err != nil {
		return nil, err
	}
	g.storeOverlap(endpoint, weightFeature, out)

	return out, nil
}

// Similarity runs the named method over the endpoint's overlap graph.
func (g *Graph) Similarity(endpoint string, targets []ID, method string) ([]similarity.Score, error) {
	return similarityVia(g, endpoint, targets, method)
}

// ToBackend returns an equivalent set in the requested backend.
func (g *Graph) ToBackend(backend Backend) (Set, error) {
	return convertSet(g, backend)
}

// AsArray returns the plain two-column identifier-pair view in edge
// insertion order, translated back to original identifiers.
func (g *Graph) AsArray() [][2]ID {
	pairs := make([][2]ID, len(g.edges))
	for i, e := range g.edges {
		pairs[i] = [2]ID{g.verts[e.src].ID, g.verts[e.dst].ID}
	}

	return pairs
}

// Clone returns a deep copy sharing no mutable state.
func (g *Graph) Clone() Set {
	return newGraph(g.cloneMeta(), g.AsArray())
}
