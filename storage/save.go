package storage

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/net-synergy/pubnet/edge"
	"github.com/net-synergy/pubnet/network"
	"github.com/net-synergy/pubnet/node"
)

// Selector names a subset of node or edge collections. The zero value
// selects nothing.
type Selector struct {
	all   bool
	names []string
}

// All selects every collection.
var All = Selector{all: true}

// Names selects the listed collections: node types for nodes, sorted
// pair keys for edges.
func Names(names ...string) Selector {
	return Selector{names: names}
}

// Option tunes SaveGraph and LoadGraph.
type Option func(*options)

type options struct {
	name      string
	dataDir   string
	format    Format
	overwrite bool
	backend   edge.Backend
	root      string
	nodes     Selector
	edges     Selector
	log       *zap.Logger
}

func defaultOptions() options {
	return options{
		format:  FormatTSV,
		backend: edge.BackendArray,
		root:    network.DefaultRoot,
		nodes:   All,
		edges:   All,
		log:     zap.NewNop(),
	}
}

// WithName overrides the graph name. Save falls back to the network's
// own name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithDataDir overrides the data directory graphs live under. Empty
// means DefaultDataDir.
func WithDataDir(dir string) Option {
	return func(o *options) { o.dataDir = dir }
}

// WithFormat selects the file format for a save.
func WithFormat(format Format) Option {
	return func(o *options) { o.format = format }
}

// WithOverwrite deletes a pre-existing graph of the same name before
// writing. Deletion happens after every selected collection has been
// resolved, so a bad selector cannot erase data it will not replace.
func WithOverwrite() Option {
	return func(o *options) { o.overwrite = true }
}

// WithBackend selects the edge representation for a load.
func WithBackend(backend edge.Backend) Option {
	return func(o *options) { o.backend = backend }
}

// WithRoot sets the root node type of a loaded network.
func WithRoot(root string) Option {
	return func(o *options) { o.root = root }
}

// WithNodes restricts the node collections saved or loaded.
func WithNodes(sel Selector) Option {
	return func(o *options) { o.nodes = sel }
}

// WithEdges restricts the edge collections saved or loaded.
func WithEdges(sel Selector) Option {
	return func(o *options) { o.edges = sel }
}

// WithLogger attaches a logger to load-time network construction.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// SaveGraph writes the network's collections into a graph directory.
//
// When one selector is All and the other names collections, All is
// completed from the named side: nodes become the types appearing in
// the named edges, edges become every key touching a named node type.
// Empty collections are skipped.
func SaveGraph(net *network.Network, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	name := o.name
	if name == "" {
		name = net.Name()
	}
	if name == "" {
		return ErrNoName
	}

	nodeNames, edgeKeys := completeSelectors(net, o.nodes, o.edges)

	// Resolve every collection up front so a bad name fails before
	// anything touches the disk.
	var saveNodes []*node.Node
	for _, n := range nodeNames {
		nd, err := net.Node(n)
		if err != nil {
			return err
		}
		if nd.Len() > 0 {
			saveNodes = append(saveNodes, nd)
		}
	}
	var saveEdges []edge.Set
	for _, k := range edgeKeys {
		e, err := net.Edge(k)
		if err != nil {
			return err
		}
		if e.Len() > 0 {
			saveEdges = append(saveEdges, e)
		}
	}

	saveDir := GraphPath(name, o.dataDir)
	if o.overwrite {
		if _, err := os.Stat(saveDir); err == nil {
			if err := DeleteGraph(name, o.dataDir); err != nil {
				return err
			}
		}
	}
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return fmt.Errorf("storage: create graph dir: %w", err)
	}

	for _, nd := range saveNodes {
		if err := SaveNode(nd, saveDir, o.format); err != nil {
			return err
		}
	}
	for _, e := range saveEdges {
		if err := SaveEdge(e, saveDir, o.format); err != nil {
			return err
		}
	}

	return nil
}

// completeSelectors expands All selectors, filling one side from the
// other when only one is named.
func completeSelectors(net *network.Network, nodes, edges Selector) ([]string, []string) {
	switch {
	case nodes.all && edges.all:
		return net.Nodes(), net.Edges()
	case nodes.all && !edges.all:
		return nodesIn(net, edges.names), edges.names
	case edges.all && !nodes.all:
		return nodes.names, edgesTouching(net, nodes.names)
	default:
		return nodes.names, edges.names
	}
}

// nodesIn lists the network's node types appearing in the given edge
// keys.
func nodesIn(net *network.Network, edgeKeys []string) []string {
	have := make(map[string]struct{})
	for _, n := range net.Nodes() {
		have[n] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, key := range edgeKeys {
		n1, n2, err := edge.KeyParts(key)
		if err != nil {
			continue
		}
		for _, n := range []string{n1, n2} {
			if _, ok := have[n]; !ok {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	return out
}

// edgesTouching lists the network's edge keys with at least one
// endpoint among the given node types.
func edgesTouching(net *network.Network, nodeNames []string) []string {
	want := make(map[string]struct{})
	for _, n := range nodeNames {
		want[n] = struct{}{}
	}

	var out []string
	for _, key := range net.Edges() {
		n1, n2, err := edge.KeyParts(key)
		if err != nil {
			continue
		}
		if _, ok := want[n1]; ok {
			out = append(out, key)
			continue
		}
		if _, ok := want[n2]; ok {
			out = append(out, key)
		}
	}

	return out
}
