package edge

import (
	"fmt"
	"sort"

	"github.com/net-synergy/pubnet/similarity"
)

// meta carries the backend-independent state of an edge set: the two
// node type names, the per-edge feature vectors, and the explicit
// overlap cache. Both backends embed it.
type meta struct {
	startID   string
	endID     string
	featOrder []string
	features  map[string][]float64

	// overlapCache memoizes derived overlap sets keyed by
	// endpoint + "\x00" + weightFeature. Dropped by SetData and
	// InvalidateOverlap; never invalidated implicitly.
	overlapCache map[string]Set
}

func newMeta(startID, endID string, order []string, features map[string][]float64) meta {
	return meta{
		startID:   startID,
		endID:     endID,
		featOrder: order,
		features:  features,
	}
}

func (m *meta) StartID() string { return m.startID }
func (m *meta) EndID() string   { return m.endID }

func (m *meta) Key() string { return Key(m.startID, m.endID) }

// columnIndex resolves a node-type column key to 0 (start) or 1 (end).
func (m *meta) columnIndex(key string) (int, error) {
	switch key {
	case m.startID:
		return 0, nil
	case m.endID:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %q is not one of %q or %q",
			ErrUnknownColumn, key, m.startID, m.endID)
	}
}

func (m *meta) Features() []string {
	out := make([]string, len(m.featOrder))
	copy(out, m.featOrder)

	return out
}

func (m *meta) Feature(name string) ([]float64, error) {
	vec, ok := m.features[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFeatureNotFound, name)
	}

	return vec, nil
}

// featureSubset copies the feature vectors down to the selected rows.
func (m *meta) featureSubset(rows []int) map[string][]float64 {
	if len(m.featOrder) == 0 {
		return nil
	}
	out := make(map[string][]float64, len(m.featOrder))
	for _, name := range m.featOrder {
		src := m.features[name]
		vec := make([]float64, len(rows))
		for i, r := range rows {
			vec[i] = src[r]
		}
		out[name] = vec
	}

	return out
}

func (m *meta) cloneMeta() meta {
	c := newMeta(m.startID, m.endID, m.Features(), nil)
	if len(m.featOrder) > 0 {
		c.features = make(map[string][]float64, len(m.featOrder))
		for _, name := range m.featOrder {
			vec := make([]float64, len(m.features[name]))
			copy(vec, m.features[name])
			c.features[name] = vec
		}
	}

	return c
}

// replaceData swaps in new feature vectors after validating lengths,
// and drops the overlap cache.
func (m *meta) replaceData(n int, features map[string][]float64) error {
	order := make([]string, 0, len(features))
	for name, vec := range features {
		if len(vec) != n {
			return fmt.Errorf("%w: feature %q has %d values for %d edges",
				ErrFeatureLength, name, len(vec), n)
		}
		order = append(order, name)
	}
	sort.Strings(order)
	m.featOrder = order
	m.features = features
	m.overlapCache = nil

	return nil
}

func (m *meta) InvalidateOverlap() { m.overlapCache = nil }

func (m *meta) cachedOverlap(endpoint, weightFeature string) (Set, bool) {
	s, ok := m.overlapCache[endpoint+"\x00"+weightFeature]

	return s, ok
}

func (m *meta) storeOverlap(endpoint, weightFeature string, s Set) {
	if m.overlapCache == nil {
		m.overlapCache = make(map[string]Set)
	}
	m.overlapCache[endpoint+"\x00"+weightFeature] = s
}

// featuresEqual compares two sets' feature vectors by name and value,
// order-insensitive on names.
func featuresEqual(a, b Set) bool {
	an, bn := a.Features(), b.Features()
	if len(an) != len(bn) {
		return false
	}
	for _, name := range an {
		av, err := a.Feature(name)
		if err != nil {
			return false
		}
		bv, err := b.Feature(name)
		if err != nil {
			return false
		}
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}

	return true
}

// overlapToSet materializes an overlap result as a new edge set of the
// given backend, with both columns typed to the endpoint and the counts
// as the OverlapFeature vector.
func overlapToSet(backend Backend, endpoint string, triples []similarity.Weighted) (Set, error) {
	pairs := make([][2]ID, len(triples))
	counts := make([]float64, len(triples))
	for i, tr := range triples {
		pairs[i] = [2]ID{tr.A, tr.B}
		counts[i] = tr.Weight
	}

	return FromData(backend, pairs, endpoint, endpoint, WithFeature(OverlapFeature, counts))
}

// convertSet rebuilds a set in the requested backend from its pair
// view, feature vectors included. Both backends use it for ToBackend.
func convertSet(s Set, backend Backend) (Set, error) {
	if backend == s.Backend() {
		return s.Clone(), nil
	}

	opts := make([]Option, 0, len(s.Features()))
	for _, name := range s.Features() {
		values, err := s.Feature(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithFeature(name, values))
	}

	return FromData(backend, s.AsArray(), s.StartID(), s.EndID(), opts...)
}

// similarityVia resolves the method name and runs it over the overlap
// graph of the endpoint. Shared by both backends so the numbers are
// identical regardless of representation.
func similarityVia(s Set, endpoint string, targets []ID, method string) ([]similarity.Score, error) {
	if method != MethodShortestPath {
		return nil, fmt.Errorf("%w: %q for backend %q",
			ErrMethodNotImplemented, method, s.Backend())
	}

	over, err := s.Overlap(endpoint, "")
	if err != nil {
		return nil, err
	}
	counts, err := over.Feature(OverlapFeature)
	if err != nil {
		return nil, err
	}
	triples := make([]similarity.Weighted, over.Len())
	for i := range triples {
		a, b, rowErr := over.Row(i)
		if rowErr != nil {
			return nil, rowErr
		}
		triples[i] = similarity.Weighted{A: a, B: b, Weight: counts[i]}
	}

	return similarity.ShortestPath(targets, triples)
}
