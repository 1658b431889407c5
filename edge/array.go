package edge

import (
	"fmt"

	"github.com/net-synergy/pubnet/similarity"
)

// Array is the columnar backend: edges live in two parallel identifier
// slices, stored exactly as supplied (no renumbering). Column reads,
// membership tests and filtering operate directly on the slices, which
// keeps this backend cheap to serialize as two-column files.
type Array struct {
	meta
	start []ID
	end   []ID
}

var _ Set = (*Array)(nil)

func newArray(m meta, pairs [][2]ID) *Array {
	a := &Array{meta: m}
	a.setPairs(pairs)

	return a
}

func (a *Array) setPairs(pairs [][2]ID) {
	a.start = make([]ID, len(pairs))
	a.end = make([]ID, len(pairs))
	for i, p := range pairs {
		a.start[i] = p[0]
		a.end[i] = p[1]
	}
}

// Len reports the number of edges.
func (a *Array) Len() int { return len(a.start) }

// Backend reports BackendArray.
func (a *Array) Backend() Backend { return BackendArray }

func (a *Array) column(index int) []ID {
	if index == 0 {
		return a.start
	}

	return a.end
}

// Column returns the identifiers of the column named by node type.
func (a *Array) Column(key string) ([]ID, error) {
	idx, err := a.columnIndex(key)
	if err != nil {
		return nil, err
	}
	out := make([]ID, a.Len())
	copy(out, a.column(idx))

	return out, nil
}

// ColumnAt returns a column by position: 0 = start, 1 = end.
func (a *Array) ColumnAt(index int) ([]ID, error) {
	if index != 0 && index != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrColumnRange, index)
	}
	out := make([]ID, a.Len())
	copy(out, a.column(index))

	return out, nil
}

// Row returns the (start, end) identifiers of one edge.
func (a *Array) Row(i int) (ID, ID, error) {
	if i < 0 || i >= a.Len() {
		return 0, 0, fmt.Errorf("%w: %d of %d", ErrRowRange, i, a.Len())
	}

	return a.start[i], a.end[i], nil
}

// Slice returns a new Array holding the rows at the given positions.
func (a *Array) Slice(rows []int) (Set, error) {
	pairs := make([][2]ID, len(rows))
	for i, r := range rows {
		if r < 0 || r >= a.Len() {
			return nil, fmt.Errorf("%w: %d of %d", ErrRowRange, r, a.Len())
		}
		pairs[i] = [2]ID{a.start[r], a.end[r]}
	}
	m := newMeta(a.startID, a.endID, a.Features(), a.featureSubset(rows))

	return newArray(m, pairs), nil
}

// Filter returns a new Array holding the rows where mask is true.
func (a *Array) Filter(mask []bool) (Set, error) {
	if len(mask) != a.Len() {
		return nil, fmt.Errorf("%w: mask %d for %d edges", ErrMaskLength, len(mask), a.Len())
	}
	rows := make([]int, 0, len(mask))
	for i, keep := range mask {
		if keep {
			rows = append(rows, i)
		}
	}

	return a.Slice(rows)
}

// IsIn reports, per row, membership of the named column in ids.
func (a *Array) IsIn(key string, ids []ID) ([]bool, error) {
	idx, err := a.columnIndex(key)
	if err != nil {
		return nil, err
	}
	member := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		member[id] = struct{}{}
	}
	col := a.column(idx)
	mask := make([]bool, len(col))
	for i, v := range col {
		_, mask[i] = member[v]
	}

	return mask, nil
}

// IsEqual reports structural equality in row order.
func (a *Array) IsEqual(other Set) bool {
	if other == nil || a.StartID() != other.StartID() || a.EndID() != other.EndID() {
		return false
	}
	if a.Len() != other.Len() {
		return false
	}
	for i := range a.start {
		s, e, err := other.Row(i)
		if err != nil || s != a.start[i] || e != a.end[i] {
			return false
		}
	}

	return featuresEqual(a, other)
}

// SetData wholesale-replaces the backing columns and feature vectors.
func (a *Array) SetData(pairs [][2]ID, features map[string][]float64) error {
	if err := a.replaceData(len(pairs), features); err != nil {
		return err
	}
	a.setPairs(pairs)

	return nil
}

// Distribution counts edges per identifier in the named column.
func (a *Array) Distribution(key string) (map[ID]int64, error) {
	idx, err := a.columnIndex(key)
	if err != nil {
		return nil, err
	}
	counts := make(map[ID]int64)
	for _, v := range a.column(idx) {
		counts[v]++
	}

	return counts, nil
}

// Overlap derives the neighbor-overlap set for the endpoint type via
// the sparse self-join, with the other column as the shared side.
func (a *Array) Overlap(endpoint, weightFeature string) (Set, error) {
	if cached, ok := a.cachedOverlap(endpoint, weightFeature); ok {
		return cached, nil
	}

	idx, err := a.columnIndex(endpoint)
	if err != nil {
		return nil, err
	}
	var weights []float64
	if weightFeature != "" {
		if weights, err = a.Feature(weightFeature); err != nil {
			return nil, err
		}
	}

	own, shared := a.column(idx), a.column(1-idx)
	pairs := make([][2]ID, a.Len())
	for i := range own {
		pairs[i] = [2]ID{own[i], shared[i]}
	}
	triples, err := similarity.Overlap(pairs, weights)
	if err != nil {
		return nil, err
	}
	out, err := overlapToSet(BackendArray, endpoint, triples)
	if err != nil {
		return nil, err
	}
	a.storeOverlap(endpoint, weightFeature, out)

	return out, nil
}

// Similarity runs the named method over the endpoint's overlap graph.
func (a *Array) Similarity(endpoint string, targets []ID, method string) ([]similarity.Score, error) {
	return similarityVia(a, endpoint, targets, method)
}

// ToBackend returns an equivalent set in the requested backend.
func (a *Array) ToBackend(backend Backend) (Set, error) {
	return convertSet(a, backend)
}

// AsArray returns the plain two-column identifier-pair view.
func (a *Array) AsArray() [][2]ID {
	pairs := make([][2]ID, a.Len())
	for i := range a.start {
		pairs[i] = [2]ID{a.start[i], a.end[i]}
	}

	return pairs
}

// Clone returns a deep copy sharing no mutable state.
func (a *Array) Clone() Set {
	return newArray(a.cloneMeta(), a.AsArray())
}
