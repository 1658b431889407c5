// Package edge_test exercises both backends through the common Set
// contract; every scenario runs against the array and graph backends
// to pin their equivalence.
package edge_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/net-synergy/pubnet/edge"
	"github.com/net-synergy/pubnet/similarity"
)

var backends = []edge.Backend{edge.BackendArray, edge.BackendGraph}

// publication→author pairs of the shared test network.
func pubAuthorPairs() [][2]int64 {
	return [][2]int64{
		{1, 1}, {1, 2}, {1, 3},
		{2, 1}, {2, 2},
		{3, 1}, {3, 3},
		{4, 2}, {4, 4},
		{5, 1}, {5, 4},
		{6, 4},
	}
}

func pubAuthorSet(t *testing.T, backend edge.Backend) edge.Set {
	t.Helper()
	s, err := edge.FromData(backend, pubAuthorPairs(), "Publication", "Author")
	require.NoError(t, err)

	return s
}

func TestKeyHelpers(t *testing.T) {
	require.Equal(t, "Author-Publication", edge.Key("Publication", "Author"))
	require.Equal(t, "Author-Publication", edge.Key("Author", "Publication"))

	n1, n2, err := edge.KeyParts("Publication-Author")
	require.NoError(t, err)
	require.Equal(t, "Author", n1)
	require.Equal(t, "Publication", n2)

	_, _, err = edge.KeyParts("Author")
	require.ErrorIs(t, err, edge.ErrBadKey)
	_, _, err = edge.KeyParts("A-B-C")
	require.ErrorIs(t, err, edge.ErrBadKey)
}

func TestFromData_UnknownBackend(t *testing.T) {
	_, err := edge.FromData(edge.Backend("sparse"), nil, "A", "B")
	require.ErrorIs(t, err, edge.ErrBadBackend)
}

func TestFromData_FeatureLengthChecked(t *testing.T) {
	_, err := edge.FromData(
		edge.BackendArray,
		[][2]int64{{1, 1}, {2, 2}},
		"A", "B",
		edge.WithFeature("weight", []float64{1}),
	)
	require.ErrorIs(t, err, edge.ErrFeatureLength)
}

func TestColumns(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s := pubAuthorSet(t, backend)
			require.Equal(t, 12, s.Len())
			require.Equal(t, "Publication", s.StartID())
			require.Equal(t, "Author", s.EndID())
			require.Equal(t, "Author-Publication", s.Key())

			pubs, err := s.Column("Publication")
			require.NoError(t, err)
			require.Equal(t, []int64{1, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6}, pubs)

			authors, err := s.Column("Author")
			require.NoError(t, err)
			require.Equal(t, []int64{1, 2, 3, 1, 2, 1, 3, 2, 4, 1, 4, 4}, authors)

			byPos, err := s.ColumnAt(0)
			require.NoError(t, err)
			require.Equal(t, pubs, byPos)

			_, err = s.Column("Chemical")
			require.ErrorIs(t, err, edge.ErrUnknownColumn)
			require.Contains(t, err.Error(), "Publication")
			require.Contains(t, err.Error(), "Author")

			_, err = s.ColumnAt(2)
			require.ErrorIs(t, err, edge.ErrColumnRange)
		})
	}
}

func TestIsIn(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s := pubAuthorSet(t, backend)
			mask, err := s.IsIn("Publication", []int64{1, 2})
			require.NoError(t, err)
			require.Equal(t,
				[]bool{true, true, true, true, true, false, false, false, false, false, false, false},
				mask)

			_, err = s.IsIn("Nope", nil)
			require.ErrorIs(t, err, edge.ErrUnknownColumn)
		})
	}
}

func TestFilterAndSlice(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s := pubAuthorSet(t, backend)
			mask, err := s.IsIn("Publication", []int64{1, 2})
			require.NoError(t, err)
			sub, err := s.Filter(mask)
			require.NoError(t, err)
			require.Equal(t, 5, sub.Len())
			require.Equal(t, backend, sub.Backend())
			require.Equal(t, [][2]int64{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2}}, sub.AsArray())

			head, err := s.Slice([]int{0, 1, 2})
			require.NoError(t, err)
			require.Equal(t, 3, head.Len())

			_, err = s.Filter([]bool{true})
			require.ErrorIs(t, err, edge.ErrMaskLength)
			_, err = s.Slice([]int{99})
			require.ErrorIs(t, err, edge.ErrRowRange)
		})
	}
}

func TestFeatureCarriedThroughFilter(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			weights := []float64{1, 2, 3, 4}
			s, err := edge.FromData(
				backend,
				[][2]int64{{1, 1}, {1, 2}, {2, 1}, {2, 2}},
				"Publication", "Author",
				edge.WithFeature("weight", weights),
			)
			require.NoError(t, err)
			require.Equal(t, []string{"weight"}, s.Features())

			mask, err := s.IsIn("Publication", []int64{2})
			require.NoError(t, err)
			sub, err := s.Filter(mask)
			require.NoError(t, err)
			got, err := sub.Feature("weight")
			require.NoError(t, err)
			require.Equal(t, []float64{3, 4}, got)

			_, err = sub.Feature("nope")
			require.ErrorIs(t, err, edge.ErrFeatureNotFound)
		})
	}
}

func TestIsEqual_AcrossBackends(t *testing.T) {
	arr := pubAuthorSet(t, edge.BackendArray)
	gr := pubAuthorSet(t, edge.BackendGraph)
	require.True(t, arr.IsEqual(gr))
	require.True(t, gr.IsEqual(arr))

	mask, err := arr.IsIn("Publication", []int64{1})
	require.NoError(t, err)
	sub, err := arr.Filter(mask)
	require.NoError(t, err)
	require.False(t, arr.IsEqual(sub))
}

func TestSetData_ReplacesWholesale(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s := pubAuthorSet(t, backend)
			require.NoError(t, s.SetData([][2]int64{{9, 9}}, nil))
			require.Equal(t, 1, s.Len())
			require.Equal(t, [][2]int64{{9, 9}}, s.AsArray())

			err := s.SetData([][2]int64{{1, 1}}, map[string][]float64{"w": {1, 2}})
			require.ErrorIs(t, err, edge.ErrFeatureLength)
		})
	}
}

func TestDistribution(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s := pubAuthorSet(t, backend)
			dist, err := s.Distribution("Author")
			require.NoError(t, err)
			require.Equal(t, map[int64]int64{1: 4, 2: 3, 3: 2, 4: 3}, dist)
		})
	}
}

func TestOverlap_PublicationFixture(t *testing.T) {
	want := [][2]int64{
		{1, 2}, {1, 3}, {1, 4}, {1, 5}, {2, 3}, {2, 4},
		{2, 5}, {3, 5}, {4, 5}, {4, 6}, {5, 6},
	}
	wantCounts := []float64{2, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s := pubAuthorSet(t, backend)
			over, err := s.Overlap("Publication", "")
			require.NoError(t, err)
			require.Equal(t, backend, over.Backend())
			require.Equal(t, "Publication", over.StartID())
			require.Equal(t, "Publication", over.EndID())
			require.Equal(t, want, over.AsArray())

			counts, err := over.Feature(edge.OverlapFeature)
			require.NoError(t, err)
			require.Equal(t, wantCounts, counts)

			// Cached until invalidated.
			again, err := s.Overlap("Publication", "")
			require.NoError(t, err)
			require.Same(t, over, again)
			s.InvalidateOverlap()
			fresh, err := s.Overlap("Publication", "")
			require.NoError(t, err)
			require.NotSame(t, over, fresh)
			require.True(t, over.IsEqual(fresh))
		})
	}
}

func TestOverlap_BackendEquivalence(t *testing.T) {
	arr, err := pubAuthorSet(t, edge.BackendArray).Overlap("Author", "")
	require.NoError(t, err)
	gr, err := pubAuthorSet(t, edge.BackendGraph).Overlap("Author", "")
	require.NoError(t, err)
	require.True(t, arr.IsEqual(gr))
}

// A set connecting a type to itself, like publication citations, must
// count shared neighbors by column, not by vertex type: a vertex's own
// outgoing rows are not neighbors of its incoming side.
func TestOverlap_SelfTypedSet(t *testing.T) {
	pairs := [][2]int64{{1, 2}, {3, 2}, {2, 4}}

	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s, err := edge.FromData(backend, pairs, "Publication", "Publication")
			require.NoError(t, err)

			over, err := s.Overlap("Publication", "")
			require.NoError(t, err)
			require.Equal(t, [][2]int64{{1, 3}}, over.AsArray())

			counts, err := over.Feature(edge.OverlapFeature)
			require.NoError(t, err)
			require.Equal(t, []float64{1}, counts)
		})
	}

	arr, err := edge.FromData(edge.BackendArray, pairs, "Publication", "Publication")
	require.NoError(t, err)
	gr, err := edge.FromData(edge.BackendGraph, pairs, "Publication", "Publication")
	require.NoError(t, err)
	arrOver, err := arr.Overlap("Publication", "")
	require.NoError(t, err)
	grOver, err := gr.Overlap("Publication", "")
	require.NoError(t, err)
	require.True(t, arrOver.IsEqual(grOver))
}

func TestOverlap_Weighted(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s, err := edge.FromData(
				backend,
				[][2]int64{{1, 10}, {2, 10}, {1, 20}, {2, 20}},
				"Publication", "Chemical",
				edge.WithFeature("weight", []float64{2, 3, 1, 1}),
			)
			require.NoError(t, err)
			over, err := s.Overlap("Publication", "weight")
			require.NoError(t, err)
			require.Equal(t, [][2]int64{{1, 2}}, over.AsArray())
			counts, err := over.Feature(edge.OverlapFeature)
			require.NoError(t, err)
			require.Equal(t, []float64{7}, counts)

			_, err = s.Overlap("Publication", "nope")
			require.ErrorIs(t, err, edge.ErrFeatureNotFound)
		})
	}
}

func TestSimilarity_ShortestPath(t *testing.T) {
	want := []similarity.Score{
		{A: 1, B: 2, Value: 0.5},
		{A: 1, B: 3, Value: 0.5},
		{A: 1, B: 5, Value: 1},
		{A: 2, B: 3, Value: 1},
		{A: 2, B: 5, Value: 1},
		{A: 3, B: 5, Value: 1},
	}

	var results [][]similarity.Score
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s := pubAuthorSet(t, backend)
			got, err := s.Similarity("Publication", []int64{1, 2, 3, 5}, edge.MethodShortestPath)
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				require.Equal(t, want[i].A, got[i].A)
				require.Equal(t, want[i].B, got[i].B)
				require.InDelta(t, want[i].Value, got[i].Value, 1e-12)
			}
			results = append(results, got)
		})
	}
	require.Len(t, results, 2)
	require.Equal(t, results[0], results[1])
}

func TestSimilarity_UnknownMethod(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s := pubAuthorSet(t, backend)
			_, err := s.Similarity("Publication", []int64{1}, "pagerank")
			require.ErrorIs(t, err, edge.ErrMethodNotImplemented)
			require.Contains(t, err.Error(), "pagerank")
			require.Contains(t, err.Error(), string(backend))
		})
	}
}

func TestToBackend(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s, err := edge.FromData(backend,
				[][2]int64{{1, 1}, {1, 2}, {2, 1}},
				"Publication", "Author",
				edge.WithFeature("weight", []float64{1, 0.5, 2}))
			require.NoError(t, err)

			for _, target := range backends {
				c, err := s.ToBackend(target)
				require.NoError(t, err)
				require.Equal(t, target, c.Backend())
				require.True(t, s.IsEqual(c))

				weights, err := c.Feature("weight")
				require.NoError(t, err)
				require.Equal(t, []float64{1, 0.5, 2}, weights)
			}

			// Same-backend conversion is a copy, not an alias.
			c, err := s.ToBackend(backend)
			require.NoError(t, err)
			require.NoError(t, c.SetData([][2]int64{{9, 9}}, nil))
			require.Equal(t, 3, s.Len())

			_, err = s.ToBackend(edge.Backend("igraph"))
			require.ErrorIs(t, err, edge.ErrBadBackend)
		})
	}
}

func TestClone_Independent(t *testing.T) {
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			s := pubAuthorSet(t, backend)
			c := s.Clone()
			require.True(t, s.IsEqual(c))
			require.NoError(t, c.SetData([][2]int64{{1, 1}}, nil))
			require.Equal(t, 12, s.Len())
			require.False(t, s.IsEqual(c))
		})
	}
}
