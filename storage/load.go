package storage

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/net-synergy/pubnet/edge"
	"github.com/net-synergy/pubnet/network"
	"github.com/net-synergy/pubnet/node"
)

// LoadGraph reads a saved graph back into a network container.
//
// Discovery follows the file naming convention. When the edge selector
// is All and nodes are named, only edges between named node types are
// loaded; when nodes are All and edges are named, the node set is
// taken from the edge keys. A named collection with no file is an
// error; when several formats of the same collection exist the binary
// file wins, then plain text, then compressed text.
func LoadGraph(name string, opts ...Option) (*network.Network, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	saveDir := GraphPath(name, o.dataDir)
	if info, err := os.Stat(saveDir); err != nil || !info.IsDir() {
		available, _ := ListGraphs(o.dataDir)
		return nil, fmt.Errorf("%w: %q; available graphs: %s",
			ErrGraphNotFound, name, strings.Join(available, ", "))
	}

	nodes := o.nodes
	if nodes.all && !o.edges.all {
		nodes = Names(typesOf(o.edges.names)...)
	}

	edgePaths, err := resolveEdgeFiles(saveDir, nodes, o.edges)
	if err != nil {
		return nil, err
	}
	nodePaths, err := resolveNodeFiles(saveDir, nodes)
	if err != nil {
		return nil, err
	}

	netNodes := make([]*node.Node, 0, len(nodePaths))
	for _, path := range nodePaths {
		n, err := LoadNode(path)
		if err != nil {
			return nil, err
		}
		netNodes = append(netNodes, n)
	}
	netEdges := make([]edge.Set, 0, len(edgePaths))
	for _, path := range edgePaths {
		e, err := LoadEdge(path, o.backend)
		if err != nil {
			return nil, err
		}
		netEdges = append(netEdges, e)
	}

	return network.New(
		network.WithName(name),
		network.WithRoot(o.root),
		network.WithNodes(netNodes...),
		network.WithEdges(netEdges...),
		network.WithLogger(o.log),
	)
}

// typesOf collects the node types named by a list of edge keys.
func typesOf(edgeKeys []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, key := range edgeKeys {
		n1, n2, err := edge.KeyParts(key)
		if err != nil {
			continue
		}
		for _, n := range []string{n1, n2} {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	return out
}

func resolveNodeFiles(dir string, nodes Selector) ([]string, error) {
	files, err := listNodeFiles(dir)
	if err != nil {
		return nil, err
	}

	names := nodes.names
	if nodes.all {
		names = names[:0]
		for n := range files {
			names = append(names, n)
		}
		sort.Strings(names)
	}

	var paths []string
	for _, n := range names {
		path, err := findFile(n, files)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// resolveEdgeFiles picks the edge files to read. A named edge selector
// is authoritative; All is limited to pairs of the selected node types
// when those are named.
func resolveEdgeFiles(dir string, nodes, edges Selector) ([]string, error) {
	files, err := listEdgeFiles(dir)
	if err != nil {
		return nil, err
	}

	var keys []string
	switch {
	case !edges.all:
		keys = edges.names
	case nodes.all:
		for k := range files {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	default:
		want := make(map[string]struct{})
		for _, n := range nodes.names {
			want[n] = struct{}{}
		}
		for k := range files {
			n1, n2, err := edge.KeyParts(k)
			if err != nil {
				continue
			}
			if _, ok := want[n1]; !ok {
				continue
			}
			if _, ok := want[n2]; !ok {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	var paths []string
	for _, k := range keys {
		path, err := findFile(k, files)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
