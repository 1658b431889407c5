// Package network container type, construction, keyed lookup, and the
// collection-level operations (add, drop, update, equality, clone).
package network

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/net-synergy/pubnet/edge"
	"github.com/net-synergy/pubnet/node"
)

// DefaultRoot is the node type used as the filtering anchor unless
// overridden with WithRoot.
const DefaultRoot = "Publication"

// Sentinel errors for container operations.
var (
	// ErrNodeNotFound indicates a node type absent from the container.
	ErrNodeNotFound = errors.New("network: node type not found")

	// ErrEdgeNotFound indicates an edge key absent from the container.
	ErrEdgeNotFound = errors.New("network: edge not found")

	// ErrDuplicateNode indicates an AddNode for a type already present.
	ErrDuplicateNode = errors.New("network: node type already in network")

	// ErrDuplicateEdge indicates an AddEdge for a key already present.
	ErrDuplicateEdge = errors.New("network: edge already in network")

	// ErrUnnamedNode indicates a node collection without a type tag.
	ErrUnnamedNode = errors.New("network: node has no name")

	// ErrBadSteps indicates a non-positive step count for Containing.
	ErrBadSteps = errors.New("network: steps must be a positive integer")

	// ErrBadValue indicates a Containing value of an unsupported kind.
	ErrBadValue = errors.New("network: unsupported feature value type")
)

// Network stores a publication network as sibling node and edge
// collections with a shared root type.
type Network struct {
	name string
	root string

	nodeOrder []string
	nodes     map[string]*node.Node
	edgeOrder []string
	edges     map[string]edge.Set

	log *zap.Logger
}

// Option configures Network construction.
type Option func(*config)

type config struct {
	name  string
	root  string
	nodes []*node.Node
	edges []edge.Set
	log   *zap.Logger
}

// WithName names the network (used when saving to a directory).
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithRoot overrides the root node type. Names are case-sensitive.
func WithRoot(root string) Option {
	return func(c *config) { c.root = root }
}

// WithNodes supplies node collections to include at construction.
func WithNodes(nodes ...*node.Node) Option {
	return func(c *config) { c.nodes = append(c.nodes, nodes...) }
}

// WithEdges supplies edge collections to include at construction.
func WithEdges(edges ...edge.Set) Option {
	return func(c *config) { c.edges = append(c.edges, edges...) }
}

// WithLogger injects the logger used for non-fatal warnings. Defaults
// to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// New builds a container from the supplied collections.
//
// Every node type referenced by an edge but lacking a node collection
// gets a zero-row placeholder. A missing root node collection is
// allowed but degrades the filtering operations, so it logs a warning.
func New(opts ...Option) (*Network, error) {
	c := config{root: DefaultRoot, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}

	net := &Network{
		name:  c.name,
		root:  c.root,
		nodes: make(map[string]*node.Node),
		edges: make(map[string]edge.Set),
		log:   c.log,
	}

	for _, n := range c.nodes {
		if err := net.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range c.edges {
		if err := net.AddEdge(e); err != nil {
			return nil, err
		}
	}

	// Edge-referenced types without node data get placeholder entries;
	// a construction-time normalization, not an error-suppression rule.
	for _, key := range net.edgeOrder {
		n1, n2, err := edge.KeyParts(key)
		if err != nil {
			return nil, err
		}
		for _, name := range [2]string{n1, n2} {
			if _, ok := net.nodes[name]; !ok {
				if err := net.AddNode(node.NewEmpty(name)); err != nil {
					return nil, err
				}
			}
		}
	}

	if _, ok := net.nodes[net.root]; !ok {
		net.log.Warn("constructing network without root nodes; filtering is degraded",
			zap.String("root", net.root))
	}

	return net, nil
}

// Name reports the network's name.
func (net *Network) Name() string { return net.name }

// Root reports the root node type.
func (net *Network) Root() string { return net.root }

// SelectRoot switches the filtering anchor to an existing node type.
func (net *Network) SelectRoot(root string) error {
	if _, ok := net.nodes[root]; !ok {
		return fmt.Errorf("%w: %q (node types: %s)",
			ErrNodeNotFound, root, strings.Join(net.nodeOrder, ", "))
	}
	net.root = root

	return nil
}

// Nodes lists the node type names in insertion order.
func (net *Network) Nodes() []string {
	out := make([]string, len(net.nodeOrder))
	copy(out, net.nodeOrder)

	return out
}

// Edges lists the edge keys in insertion order.
func (net *Network) Edges() []string {
	out := make([]string, len(net.edgeOrder))
	copy(out, net.edgeOrder)

	return out
}

// AddNode adds a node collection under its type tag.
func (net *Network) AddNode(n *node.Node) error {
	if n == nil || n.Name() == "" {
		return ErrUnnamedNode
	}
	if _, ok := net.nodes[n.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, n.Name())
	}
	net.nodeOrder = append(net.nodeOrder, n.Name())
	net.nodes[n.Name()] = n

	return nil
}

// AddEdge adds an edge collection under its canonical key.
func (net *Network) AddEdge(e edge.Set) error {
	key := e.Key()
	if _, ok := net.edges[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateEdge, key)
	}
	net.edgeOrder = append(net.edgeOrder, key)
	net.edges[key] = e

	return nil
}

// Node returns the node collection for a type tag.
func (net *Network) Node(name string) (*node.Node, error) {
	n, ok := net.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (node types: %s)",
			ErrNodeNotFound, name, strings.Join(net.nodeOrder, ", "))
	}

	return n, nil
}

// Edge returns the edge collection for either a canonical key
// (Edge("Author-Publication")) or a pair of node types
// (Edge("Publication", "Author")).
func (net *Network) Edge(parts ...string) (edge.Set, error) {
	var key string
	switch len(parts) {
	case 1:
		key = parts[0]
	case 2:
		key = edge.Key(parts[0], parts[1])
	default:
		return nil, fmt.Errorf("%w: accepts one key or two node types, got %d arguments",
			ErrEdgeNotFound, len(parts))
	}

	e, ok := net.edges[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (edges: %s)",
			ErrEdgeNotFound, key, strings.Join(net.edgeOrder, ", "))
	}

	return e, nil
}

// Drop removes the named node types and edge keys. The request is
// validated as a whole before anything is removed: naming an absent
// collection fails fast without partially applying the drop.
func (net *Network) Drop(nodes []string, edges []string) error {
	keys := make([]string, len(edges))
	for i, e := range edges {
		n1, n2, err := edge.KeyParts(e)
		if err != nil {
			return err
		}
		keys[i] = edge.Key(n1, n2)
	}

	for _, name := range nodes {
		if _, ok := net.nodes[name]; !ok {
			return fmt.Errorf("%w: %q (node types: %s)",
				ErrNodeNotFound, name, strings.Join(net.nodeOrder, ", "))
		}
	}
	for _, key := range keys {
		if _, ok := net.edges[key]; !ok {
			return fmt.Errorf("%w: %q (edges: %s)",
				ErrEdgeNotFound, key, strings.Join(net.edgeOrder, ", "))
		}
	}

	for _, name := range nodes {
		delete(net.nodes, name)
	}
	net.nodeOrder = retain(net.nodeOrder, net.nodes)
	for _, key := range keys {
		delete(net.edges, key)
	}
	net.edgeOrder = retainEdges(net.edgeOrder, net.edges)

	return nil
}

func retain(order []string, kept map[string]*node.Node) []string {
	out := order[:0]
	for _, name := range order {
		if _, ok := kept[name]; ok {
			out = append(out, name)
		}
	}

	return out
}

func retainEdges(order []string, kept map[string]edge.Set) []string {
	out := order[:0]
	for _, key := range order {
		if _, ok := kept[key]; ok {
			out = append(out, key)
		}
	}

	return out
}

// Update merges another container's collections into this one with
// last-writer-wins semantics: on a key collision the other container's
// collection replaces this one's. Mutates the receiver.
func (net *Network) Update(other *Network) {
	for _, name := range other.nodeOrder {
		if _, ok := net.nodes[name]; !ok {
			net.nodeOrder = append(net.nodeOrder, name)
		}
		net.nodes[name] = other.nodes[name]
	}
	for _, key := range other.edgeOrder {
		if _, ok := net.edges[key]; !ok {
			net.edgeOrder = append(net.edgeOrder, key)
		}
		net.edges[key] = other.edges[key]
	}
}

// IsEqual reports whether two containers hold the same node type and
// edge key sets with structurally equal collections throughout.
func (net *Network) IsEqual(other *Network) bool {
	if other == nil || len(net.nodes) != len(other.nodes) || len(net.edges) != len(other.edges) {
		return false
	}
	for name, n := range net.nodes {
		o, ok := other.nodes[name]
		if !ok || !n.IsEqual(o) {
			return false
		}
	}
	for key, e := range net.edges {
		o, ok := other.edges[key]
		if !ok || !e.IsEqual(o) {
			return false
		}
	}

	return true
}

// Clone returns an independent deep copy: every node and edge
// collection is copied, so the clone shares no mutable state with the
// receiver. This explicit builder is what mutate=false filtering uses.
func (net *Network) Clone() *Network {
	out := &Network{
		name:      net.name,
		root:      net.root,
		nodeOrder: append([]string(nil), net.nodeOrder...),
		nodes:     make(map[string]*node.Node, len(net.nodes)),
		edgeOrder: append([]string(nil), net.edgeOrder...),
		edges:     make(map[string]edge.Set, len(net.edges)),
		log:       net.log,
	}
	for name, n := range net.nodes {
		out.nodes[name] = n.Clone()
	}
	for key, e := range net.edges {
		out.edges[key] = e.Clone()
	}

	return out
}
