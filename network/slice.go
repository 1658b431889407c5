// Package network root-centered filtering: Slice, Where, Containing and
// the id-resolution helpers beneath them.
package network

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/net-synergy/pubnet/edge"
	"github.com/net-synergy/pubnet/node"
)

// Predicate selects rows of a node collection; it returns one boolean
// per row.
type Predicate func(*node.Node) ([]bool, error)

// Slice filters the container to the data connected to the given root
// identifiers.
//
// With mutate=false (the safe default) the whole container is cloned
// first and the clone is filtered and returned; a failure there leaves
// the receiver untouched. With mutate=true the receiver itself is
// filtered and returned, and a mid-operation failure may leave it
// partially sliced.
//
// Every edge collection is replaced by the subset of its rows whose
// root-type column is a member of rootIDs. Every non-root node
// collection is then cut down to the identifiers surviving in its edge
// to the root, with two exceptions: an already-empty node collection
// is skipped, and
// a node type with no edge to the root is left untouched (a known
// asymmetry; such types can go stale relative to the edges). The root
// collection itself is subset directly from rootIDs.
//
// Slicing is idempotent: re-slicing by the same or a superset id set is
// a no-op relative to the first slice.
func (net *Network) Slice(rootIDs []int64, mutate bool) (*Network, error) {
	if !mutate {
		return net.Clone().Slice(rootIDs, true)
	}

	for _, key := range net.edgeOrder {
		e := net.edges[key]
		mask, err := e.IsIn(net.root, rootIDs)
		if err != nil {
			return nil, fmt.Errorf("slicing edge %q: %w", key, err)
		}
		sub, err := e.Filter(mask)
		if err != nil {
			return nil, fmt.Errorf("slicing edge %q: %w", key, err)
		}
		net.edges[key] = sub
	}

	for _, name := range net.nodeOrder {
		n := net.nodes[name]
		if n.Len() == 0 {
			continue
		}

		var keep []int64
		if name == net.root {
			keep = rootIDs
		} else {
			e, ok := net.edges[edge.Key(name, net.root)]
			if !ok {
				continue
			}
			if e.Len() == 0 {
				continue
			}
			var err error
			if keep, err = e.Column(name); err != nil {
				return nil, fmt.Errorf("slicing node %q: %w", name, err)
			}
		}

		index, err := n.Index()
		if err != nil {
			return nil, fmt.Errorf("slicing node %q: %w", name, err)
		}
		member := make(map[int64]struct{}, len(keep))
		for _, id := range keep {
			member[id] = struct{}{}
		}
		mask := make([]bool, len(index))
		for i, id := range index {
			_, mask[i] = member[id]
		}
		sub, err := n.Mask(mask)
		if err != nil {
			return nil, fmt.Errorf("slicing node %q: %w", name, err)
		}
		if err := n.SetData(sub.Data()); err != nil {
			return nil, fmt.Errorf("slicing node %q: %w", name, err)
		}
	}

	return net, nil
}

// IDsWhere resolves the root identifiers connected to the rows of
// nodeType selected by the predicate. The result is sorted and
// deduplicated.
func (net *Network) IDsWhere(nodeType string, pred Predicate) ([]int64, error) {
	n, err := net.Node(nodeType)
	if err != nil {
		return nil, err
	}
	mask, err := pred(n)
	if err != nil {
		return nil, err
	}
	sub, err := n.Mask(mask)
	if err != nil {
		return nil, err
	}
	nodeIDs, err := sub.Index()
	if err != nil {
		return nil, err
	}

	// Selecting on the root type needs no edge hop.
	if nodeType == net.root {
		sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })
		return nodeIDs, nil
	}

	e, err := net.Edge(net.root, nodeType)
	if err != nil {
		return nil, err
	}
	emask, err := e.IsIn(nodeType, nodeIDs)
	if err != nil {
		return nil, err
	}
	rootCol, err := e.Column(net.root)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	var out []int64
	for i, hit := range emask {
		if !hit {
			continue
		}
		if _, dup := seen[rootCol[i]]; dup {
			continue
		}
		seen[rootCol[i]] = struct{}{}
		out = append(out, rootCol[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

// IDsContaining resolves the root identifiers connected to nodes of
// nodeType whose feature equals value (scalar) or is a member of value
// (slice). steps=1 keeps direct connections only; each additional step
// expands through shared nodeType neighbors ("also published with a
// coauthor of …"), so the result can only grow or hold steady.
func (net *Network) IDsContaining(nodeType, feature string, value interface{}, steps int) ([]int64, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadSteps, steps)
	}
	wanted, err := valueSet(value)
	if err != nil {
		return nil, err
	}

	rootIDs, err := net.IDsWhere(nodeType, func(n *node.Node) ([]bool, error) {
		col, featErr := n.Feature(feature)
		if featErr != nil {
			return nil, featErr
		}
		records := col.Records()
		mask := make([]bool, len(records))
		for i, rec := range records {
			_, mask[i] = wanted[rec]
		}

		return mask, nil
	})
	if err != nil {
		return nil, err
	}

	for step := 1; step < steps; step++ {
		e, stepErr := net.Edge(net.root, nodeType)
		if stepErr != nil {
			return nil, stepErr
		}
		emask, stepErr := e.IsIn(net.root, rootIDs)
		if stepErr != nil {
			return nil, stepErr
		}
		nodeCol, stepErr := e.Column(nodeType)
		if stepErr != nil {
			return nil, stepErr
		}
		linked := make(map[int64]struct{})
		for i, hit := range emask {
			if hit {
				linked[nodeCol[i]] = struct{}{}
			}
		}

		rootIDs, stepErr = net.IDsWhere(nodeType, func(n *node.Node) ([]bool, error) {
			index, idxErr := n.Index()
			if idxErr != nil {
				return nil, idxErr
			}
			mask := make([]bool, len(index))
			for i, id := range index {
				_, mask[i] = linked[id]
			}

			return mask, nil
		})
		if stepErr != nil {
			return nil, stepErr
		}
	}

	return rootIDs, nil
}

// Where filters the container (mutate=false) to the root nodes whose
// nodeType rows satisfy the predicate.
func (net *Network) Where(nodeType string, pred Predicate) (*Network, error) {
	rootIDs, err := net.IDsWhere(nodeType, pred)
	if err != nil {
		return nil, err
	}

	return net.Slice(rootIDs, false)
}

// Containing filters the container (mutate=false) to the root nodes
// connected, within steps hops, to nodeType rows carrying the feature
// value.
func (net *Network) Containing(nodeType, feature string, value interface{}, steps int) (*Network, error) {
	rootIDs, err := net.IDsContaining(nodeType, feature, value, steps)
	if err != nil {
		return nil, err
	}

	return net.Slice(rootIDs, false)
}

// valueSet normalizes a scalar or slice feature value to the string
// record form node features compare in.
func valueSet(value interface{}) (map[string]struct{}, error) {
	add := func(set map[string]struct{}, v interface{}) error {
		switch x := v.(type) {
		case string:
			set[x] = struct{}{}
		case int:
			set[strconv.Itoa(x)] = struct{}{}
		case int64:
			set[strconv.FormatInt(x, 10)] = struct{}{}
		case float64:
			set[strconv.FormatFloat(x, 'f', 6, 64)] = struct{}{}
		case bool:
			set[strconv.FormatBool(x)] = struct{}{}
		default:
			return fmt.Errorf("%w: %T", ErrBadValue, v)
		}

		return nil
	}

	set := make(map[string]struct{})
	switch v := value.(type) {
	case []string:
		for _, x := range v {
			if err := add(set, x); err != nil {
				return nil, err
			}
		}
	case []int:
		for _, x := range v {
			if err := add(set, x); err != nil {
				return nil, err
			}
		}
	case []int64:
		for _, x := range v {
			if err := add(set, x); err != nil {
				return nil, err
			}
		}
	case []float64:
		for _, x := range v {
			if err := add(set, x); err != nil {
				return nil, err
			}
		}
	default:
		if err := add(set, v); err != nil {
			return nil, err
		}
	}

	return set, nil
}
