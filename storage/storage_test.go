package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"

	"github.com/net-synergy/pubnet/edge"
	"github.com/net-synergy/pubnet/network"
	"github.com/net-synergy/pubnet/node"
	"github.com/net-synergy/pubnet/storage"
)

var formats = []storage.Format{storage.FormatTSV, storage.FormatGzip, storage.FormatBinary}

func authorNode(t *testing.T) *node.Node {
	t.Helper()
	n, err := node.New(dataframe.New(
		series.New([]int{1, 2, 3, 4}, series.Int, "AuthorId:ID(Author)"),
		series.New([]string{"Smith", "Kim", "Smith", "Doe"}, series.String, "LastName"),
		series.New([]string{"John", "John", "Jane", "Jane"}, series.String, "ForeName"),
	))
	require.NoError(t, err)

	return n
}

func publicationNode(t *testing.T) *node.Node {
	t.Helper()
	n, err := node.New(dataframe.New(
		series.New([]int{1, 2, 3, 4, 5, 6}, series.Int, "PublicationId:ID(Publication)"),
		series.New([]int{2018, 2019, 2019, 2020, 2021, 2021}, series.Int, "Year"),
	))
	require.NoError(t, err)

	return n
}

func authorEdges(t *testing.T) edge.Set {
	t.Helper()
	s, err := edge.FromData(edge.BackendArray, [][2]int64{
		{1, 1}, {1, 2}, {1, 3},
		{2, 1}, {2, 2},
		{3, 1}, {3, 3},
		{4, 2}, {4, 4},
		{5, 1}, {5, 4},
		{6, 4},
	}, "Publication", "Author")
	require.NoError(t, err)

	return s
}

func chemicalEdges(t *testing.T) edge.Set {
	t.Helper()
	s, err := edge.FromData(edge.BackendArray, [][2]int64{
		{1, 1}, {1, 2},
		{2, 1}, {2, 3},
		{3, 2},
		{4, 3},
		{5, 1}, {5, 2},
		{6, 2}, {6, 3},
	}, "Publication", "Chemical",
		edge.WithFeature("Weight", []float64{
			1, 0.5, 2, 1, 1, 0.25, 3, 1, 1, 0.5,
		}))
	require.NoError(t, err)

	return s
}

func simpleNet(t *testing.T) *network.Network {
	t.Helper()
	net, err := network.New(
		network.WithName("simple"),
		network.WithNodes(authorNode(t), publicationNode(t)),
		network.WithEdges(authorEdges(t), chemicalEdges(t)),
	)
	require.NoError(t, err)

	return net
}

func TestFileNames(t *testing.T) {
	require.Equal(t, filepath.Join("d", "Author_nodes.tsv"),
		storage.NodeFileName("Author", "tsv", "d"))

	path, err := storage.EdgeFileName("Publication-Author", "tsv.gz", "d")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("d", "Author_Publication_edges.tsv.gz"), path)

	_, err = storage.EdgeFileName("Author", "tsv", "d")
	require.ErrorIs(t, err, edge.ErrBadKey)
}

func TestEdgeHeader(t *testing.T) {
	header := storage.GenEdgeHeader("Publication", "Author", []string{"Weight"})
	require.Equal(t, ":START_ID(Publication)\t:END_ID(Author)\tWeight", header)

	start, end, feats, reversed, err := storage.ParseEdgeHeader(header)
	require.NoError(t, err)
	require.Equal(t, "Publication", start)
	require.Equal(t, "Author", end)
	require.Equal(t, []string{"Weight"}, feats)
	require.False(t, reversed)

	start, end, _, reversed, err = storage.ParseEdgeHeader(
		":END_ID(Author)\t:START_ID(Publication)")
	require.NoError(t, err)
	require.Equal(t, "Publication", start)
	require.Equal(t, "Author", end)
	require.True(t, reversed)

	_, _, _, _, err = storage.ParseEdgeHeader("PublicationId\tAuthorId")
	require.ErrorIs(t, err, storage.ErrBadHeader)
}

func TestNodeRoundTrip(t *testing.T) {
	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			orig := authorNode(t)
			require.NoError(t, storage.SaveNode(orig, dir, format))

			files, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, files, 1)

			loaded, err := storage.LoadNode(filepath.Join(dir, files[0].Name()))
			require.NoError(t, err)
			require.Equal(t, "Author", loaded.Name())
			require.Equal(t, "AuthorId", loaded.ID())
			require.True(t, orig.IsEqual(loaded))
		})
	}
}

func TestEdgeRoundTrip(t *testing.T) {
	for _, format := range formats {
		for _, backend := range []edge.Backend{edge.BackendArray, edge.BackendGraph} {
			t.Run(string(format)+"_"+string(backend), func(t *testing.T) {
				dir := t.TempDir()
				orig := chemicalEdges(t)
				require.NoError(t, storage.SaveEdge(orig, dir, format))

				files, err := os.ReadDir(dir)
				require.NoError(t, err)
				require.Len(t, files, 1)

				loaded, err := storage.LoadEdge(filepath.Join(dir, files[0].Name()), backend)
				require.NoError(t, err)
				require.Equal(t, backend, loaded.Backend())
				require.True(t, orig.IsEqual(loaded))
			})
		}
	}
}

func TestLoadEdge_ReversedHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Author_Publication_edges.tsv")
	content := ":END_ID(Author)\t:START_ID(Publication)\n" +
		"1\t1\n" +
		"2\t1\n" +
		"3\t2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := storage.LoadEdge(path, edge.BackendArray)
	require.NoError(t, err)
	require.Equal(t, "Publication", s.StartID())
	require.Equal(t, "Author", s.EndID())

	pubs, err := s.Column("Publication")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 1, 2}, pubs)

	authors, err := s.Column("Author")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, authors)
}

func TestGraphRoundTrip(t *testing.T) {
	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			dataDir := t.TempDir()
			orig := simpleNet(t)
			require.NoError(t, storage.SaveGraph(orig,
				storage.WithDataDir(dataDir),
				storage.WithFormat(format),
			))

			loaded, err := storage.LoadGraph("simple", storage.WithDataDir(dataDir))
			require.NoError(t, err)
			require.True(t, orig.IsEqual(loaded))
		})
	}
}

func TestSaveGraph_RequiresName(t *testing.T) {
	net, err := network.New(network.WithNodes(publicationNode(t)))
	require.NoError(t, err)
	err = storage.SaveGraph(net, storage.WithDataDir(t.TempDir()))
	require.ErrorIs(t, err, storage.ErrNoName)
}

func TestSaveGraph_EdgeSelectorCompletesNodes(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, storage.SaveGraph(simpleNet(t),
		storage.WithDataDir(dataDir),
		storage.WithEdges(storage.Names("Author-Publication")),
	))

	files, err := os.ReadDir(storage.GraphPath("simple", dataDir))
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	require.ElementsMatch(t, []string{
		"Author_nodes.tsv",
		"Publication_nodes.tsv",
		"Author_Publication_edges.tsv",
	}, names)
}

func TestSaveGraph_NodeSelectorCompletesEdges(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, storage.SaveGraph(simpleNet(t),
		storage.WithDataDir(dataDir),
		storage.WithNodes(storage.Names("Author")),
	))

	files, err := os.ReadDir(storage.GraphPath("simple", dataDir))
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	require.ElementsMatch(t, []string{
		"Author_nodes.tsv",
		"Author_Publication_edges.tsv",
	}, names)
}

func TestLoadGraph_Selectors(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, storage.SaveGraph(simpleNet(t), storage.WithDataDir(dataDir)))

	net, err := storage.LoadGraph("simple",
		storage.WithDataDir(dataDir),
		storage.WithEdges(storage.Names("Author-Publication")),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"Author-Publication"}, net.Edges())
	require.ElementsMatch(t, []string{"Author", "Publication"}, net.Nodes())

	// Named nodes restrict edges to pairs within the set.
	net, err = storage.LoadGraph("simple",
		storage.WithDataDir(dataDir),
		storage.WithNodes(storage.Names("Author", "Publication")),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"Author-Publication"}, net.Edges())
}

func TestLoadGraph_MissingGraph(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, storage.SaveGraph(simpleNet(t), storage.WithDataDir(dataDir)))

	_, err := storage.LoadGraph("absent", storage.WithDataDir(dataDir))
	require.ErrorIs(t, err, storage.ErrGraphNotFound)
	require.Contains(t, err.Error(), "simple")
}

func TestLoadGraph_MissingCollection(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, storage.SaveGraph(simpleNet(t), storage.WithDataDir(dataDir)))

	_, err := storage.LoadGraph("simple",
		storage.WithDataDir(dataDir),
		storage.WithEdges(storage.Names("Author-Descriptor")),
	)
	require.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestSaveGraph_Overwrite(t *testing.T) {
	dataDir := t.TempDir()
	net := simpleNet(t)
	require.NoError(t, storage.SaveGraph(net, storage.WithDataDir(dataDir)))
	require.NoError(t, storage.SaveGraph(net,
		storage.WithDataDir(dataDir),
		storage.WithFormat(storage.FormatBinary),
		storage.WithOverwrite(),
	))

	files, err := os.ReadDir(storage.GraphPath("simple", dataDir))
	require.NoError(t, err)
	for _, f := range files {
		require.Equal(t, ".bin", filepath.Ext(f.Name()))
	}

	loaded, err := storage.LoadGraph("simple", storage.WithDataDir(dataDir))
	require.NoError(t, err)
	require.True(t, net.IsEqual(loaded))
}

func TestListAndDeleteGraphs(t *testing.T) {
	dataDir := t.TempDir()
	net := simpleNet(t)
	require.NoError(t, storage.SaveGraph(net, storage.WithDataDir(dataDir)))
	require.NoError(t, storage.SaveGraph(net,
		storage.WithDataDir(dataDir), storage.WithName("second")))

	names, err := storage.ListGraphs(dataDir)
	require.NoError(t, err)
	require.Equal(t, []string{"second", "simple"}, names)

	require.NoError(t, storage.DeleteGraph("second", dataDir))
	names, err = storage.ListGraphs(dataDir)
	require.NoError(t, err)
	require.Equal(t, []string{"simple"}, names)

	err = storage.DeleteGraph("second", dataDir)
	require.ErrorIs(t, err, storage.ErrGraphNotFound)
}

func TestDefaultDataDir(t *testing.T) {
	dataDir := t.TempDir()
	storage.SetDefaultDataDir(dataDir)
	defer storage.SetDefaultDataDir("")

	require.Equal(t, dataDir, storage.DefaultDataDir())
	require.Equal(t, filepath.Join(dataDir, "g"), storage.GraphPath("g", ""))

	net := simpleNet(t)
	require.NoError(t, storage.SaveGraph(net))
	loaded, err := storage.LoadGraph("simple")
	require.NoError(t, err)
	require.True(t, net.IsEqual(loaded))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path,
		[]byte("data_dir: /tmp/pubnet-data\ncache_dir: /tmp/pubnet-cache\n"), 0o644))

	c, err := storage.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/pubnet-data", c.DataDir)
	require.Equal(t, "/tmp/pubnet-cache", c.CacheDir)

	_, err = storage.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSaveNode_RejectsEmpty(t *testing.T) {
	err := storage.SaveNode(node.NewEmpty("Chemical"), t.TempDir(), storage.FormatTSV)
	require.ErrorIs(t, err, storage.ErrEmptyCollection)
	require.Contains(t, err.Error(), "Chemical")
}

func TestBadFormat(t *testing.T) {
	err := storage.SaveNode(authorNode(t), t.TempDir(), storage.Format("feather"))
	require.ErrorIs(t, err, storage.ErrBadFormat)
}
