// Package edge types: the Set contract, backend tags, key helpers,
// sentinel errors, and construction options.
package edge

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/net-synergy/pubnet/similarity"
)

// ID is the fixed-width identifier type used network-wide. Callers must
// supply identifiers convertible to this type when filtering by id.
type ID = int64

// KeyDelim separates the two node types in a canonical edge key.
const KeyDelim = "-"

// MethodShortestPath is the similarity method implemented by every
// backend: Dijkstra over the weighted overlap graph.
const MethodShortestPath = "shortest_path"

// OverlapFeature is the feature name carried by derived overlap sets.
const OverlapFeature = "overlap"

// Backend tags the concrete in-memory storage strategy of an edge set.
type Backend string

const (
	// BackendArray stores edges as two parallel identifier columns.
	BackendArray Backend = "array"

	// BackendGraph stores edges in an adjacency-graph object with
	// densely renumbered vertices.
	BackendGraph Backend = "graph"
)

// Sentinel errors for edge-set operations.
var (
	// ErrUnknownColumn indicates a column key that is neither the start
	// nor the end node type of the set.
	ErrUnknownColumn = errors.New("edge: unknown column")

	// ErrColumnRange indicates a positional column index outside 0..1.
	ErrColumnRange = errors.New("edge: column index must be 0 or 1")

	// ErrFeatureNotFound indicates a feature name absent from the set.
	ErrFeatureNotFound = errors.New("edge: feature not found")

	// ErrFeatureLength indicates a feature vector whose length differs
	// from the edge count.
	ErrFeatureLength = errors.New("edge: feature length does not match edge count")

	// ErrMaskLength indicates a boolean mask whose length differs from
	// the edge count.
	ErrMaskLength = errors.New("edge: mask length does not match edge count")

	// ErrRowRange indicates a row index outside the edge set.
	ErrRowRange = errors.New("edge: row index out of range")

	// ErrBadBackend indicates an unrecognized backend tag.
	ErrBadBackend = errors.New("edge: unknown backend")

	// ErrBadKey indicates an edge key that does not name exactly two
	// node types.
	ErrBadKey = errors.New("edge: key must join exactly two node types")

	// ErrMethodNotImplemented indicates a similarity method unsupported
	// by the chosen backend. The wrapped message names both the method
	// and the backend so the caller can pick another of either.
	ErrMethodNotImplemented = errors.New("edge: similarity method not implemented")
)

// Set is the common contract both backends implement. All row-level
// derivations (Slice, Filter, Overlap) return new sets of the same
// backend; the receiver is never edited in place except by SetData.
type Set interface {
	// Len reports the number of edges.
	Len() int

	// StartID and EndID name the two node types this set connects.
	// Order matters for storage; the sorted pair defines the set's key.
	StartID() string
	EndID() string

	// Key is the canonical sorted-pair key of the two node types.
	Key() string

	// Backend reports the storage strategy tag.
	Backend() Backend

	// Column returns the identifiers of the column named by a node type
	// (the start or end type). ErrUnknownColumn names both valid options.
	Column(key string) ([]ID, error)

	// ColumnAt returns a column by position: 0 = start, 1 = end.
	ColumnAt(index int) ([]ID, error)

	// Row returns the (start, end) identifiers of one edge.
	Row(i int) (ID, ID, error)

	// Slice returns a new set holding the rows at the given positions,
	// feature vectors included.
	Slice(rows []int) (Set, error)

	// Filter returns a new set holding the rows where mask is true.
	// The mask must be Len() long.
	Filter(mask []bool) (Set, error)

	// IsIn reports, per row, whether the named column's identifier is a
	// member of ids.
	IsIn(key string, ids []ID) ([]bool, error)

	// IsEqual reports structural equality: same start/end types and the
	// same edge rows in the same order, features compared by value.
	IsEqual(other Set) bool

	// SetData wholesale-replaces the backing storage and drops any
	// cached overlap. Feature vectors must match the new edge count.
	SetData(pairs [][2]ID, features map[string][]float64) error

	// Features lists the feature names in a stable order.
	Features() []string

	// Feature returns one feature vector, aligned one value per edge.
	Feature(name string) ([]float64, error)

	// Distribution counts, per identifier in the named column, how many
	// edges reference it.
	Distribution(key string) (map[ID]int64, error)

	// Overlap derives the neighbor-overlap set for the named endpoint
	// type: all unordered pairs of that type's identifiers sharing at
	// least one neighbor on the other type, with the shared-neighbor
	// count (optionally weighted by an existing feature named by
	// weightFeature; empty means unit weights) as the OverlapFeature
	// vector. The result is cached per (endpoint, weightFeature) until
	// InvalidateOverlap or SetData.
	Overlap(endpoint, weightFeature string) (Set, error)

	// InvalidateOverlap drops all cached overlap results.
	InvalidateOverlap()

	// Similarity computes the 3-column (id, id, value) similarity among
	// targets using the named method over the endpoint's overlap graph.
	// Unknown methods yield ErrMethodNotImplemented naming the method
	// and the backend.
	Similarity(endpoint string, targets []ID, method string) ([]similarity.Score, error)

	// AsArray returns the plain two-column identifier-pair view.
	AsArray() [][2]ID

	// ToBackend returns an equivalent set in the requested backend,
	// feature vectors carried over. Converting to the set's own backend
	// returns a deep copy.
	ToBackend(backend Backend) (Set, error)

	// Clone returns a deep copy sharing no mutable state.
	Clone() Set
}

// Key builds the canonical dictionary key for a pair of node types:
// the sorted pair joined by KeyDelim.
func Key(node1, node2 string) string {
	if node1 > node2 {
		node1, node2 = node2, node1
	}

	return node1 + KeyDelim + node2
}

// KeyParts splits an edge key back into its two node types, sorted.
func KeyParts(key string) (string, string, error) {
	parts := strings.Split(key, KeyDelim)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	sort.Strings(parts)

	return parts[0], parts[1], nil
}

// Option configures edge-set construction.
type Option func(*options)

type options struct {
	features  map[string][]float64
	featOrder []string
}

// WithFeature attaches a named per-edge feature vector to the new set.
// The vector length is validated against the edge count at build time.
func WithFeature(name string, values []float64) Option {
	return func(o *options) {
		if o.features == nil {
			o.features = make(map[string][]float64)
		}
		if _, ok := o.features[name]; !ok {
			o.featOrder = append(o.featOrder, name)
		}
		o.features[name] = values
	}
}

// FromData builds an edge set of the requested backend from raw
// identifier pairs. startID and endID name the node types of the first
// and second pair positions respectively.
func FromData(backend Backend, pairs [][2]ID, startID, endID string, opts ...Option) (Set, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	for _, name := range o.featOrder {
		if len(o.features[name]) != len(pairs) {
			return nil, fmt.Errorf("%w: feature %q has %d values for %d edges",
				ErrFeatureLength, name, len(o.features[name]), len(pairs))
		}
	}

	m := newMeta(startID, endID, o.featOrder, o.features)
	switch backend {
	case BackendArray:
		return newArray(m, pairs), nil
	case BackendGraph:
		return newGraph(m, pairs), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadBackend, backend)
	}
}
