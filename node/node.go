// Package node core type, construction and identifier handling.
package node

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Sentinel errors for node-collection operations.
var (
	// ErrFeatureNotFound indicates a feature (column) name absent from
	// the table.
	ErrFeatureNotFound = errors.New("node: feature not found")

	// ErrMaskLength indicates a boolean mask whose length differs from
	// the row count.
	ErrMaskLength = errors.New("node: mask length does not match row count")

	// ErrRowRange indicates a row selection outside the table.
	ErrRowRange = errors.New("node: row index out of range")

	// ErrBadSample indicates a non-positive sample size.
	ErrBadSample = errors.New("node: sample size must be positive")

	// ErrBadLabel indicates a column label that does not follow the
	// "name:ID(namespace)" convention.
	ErrBadLabel = errors.New("node: malformed id label")

	// ErrNoID indicates an operation that needs the identifier column
	// was called on an empty placeholder node.
	ErrNoID = errors.New("node: collection has no identifier column")

	// ErrBadData indicates the supplied dataframe is itself in error.
	ErrBadData = errors.New("node: invalid table data")
)

var idLabelRegex = regexp.MustCompile(`^(\w+):ID\((\w+)\)$`)

// IDLabel builds the Neo4j-style column label "id:ID(namespace)" used
// in node file headers.
func IDLabel(id, namespace string) string {
	return fmt.Sprintf("%s:ID(%s)", id, namespace)
}

// ParseIDLabel splits an "id:ID(namespace)" label into its parts.
func ParseIDLabel(label string) (id, namespace string, err error) {
	m := idLabelRegex.FindStringSubmatch(label)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrBadLabel, label)
	}

	return m[1], m[2], nil
}

// Node is one typed node collection: a table of rows with named feature
// columns, one of which is the declared identifier column.
type Node struct {
	name string
	id   string
	data dataframe.DataFrame
}

// Option configures Node construction.
type Option func(*Node)

// WithName sets the node type tag (e.g. "Author"). When the identifier
// column carries an ID label, the label's namespace is the default.
func WithName(name string) Option {
	return func(n *Node) { n.name = name }
}

// WithID declares the identifier column explicitly, bypassing label
// detection.
func WithID(id string) Option {
	return func(n *Node) { n.id = id }
}

// New builds a node collection from a table.
//
// The identifier column is inferred when not given explicitly: a column
// labeled "name:ID(namespace)" is renamed to the bare name and becomes
// the identifier, with the namespace as the default type tag. Without a
// label the first column is the identifier. Identifier values must be
// unique; uniqueness is the caller's contract and is not re-validated
// on every derivation.
func New(data dataframe.DataFrame, opts ...Option) (*Node, error) {
	if data.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadData, data.Err)
	}

	n := &Node{data: data}
	for _, opt := range opts {
		opt(n)
	}

	for _, col := range n.data.Names() {
		id, namespace, err := ParseIDLabel(col)
		if err != nil {
			continue
		}
		n.data = n.data.Rename(id, col)
		if n.data.Err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadData, n.data.Err)
		}
		if n.id == "" {
			n.id = id
		}
		if n.name == "" {
			n.name = namespace
		}

		break
	}
	if n.id == "" && n.data.Ncol() > 0 {
		n.id = n.data.Names()[0]
	}

	return n, nil
}

// NewEmpty returns the zero-row placeholder collection used for node
// types referenced only by edges. It has no identifier column.
func NewEmpty(name string) *Node {
	return &Node{name: name}
}

// Name reports the node type tag.
func (n *Node) Name() string { return n.name }

// ID reports the identifier column name; empty for placeholder nodes.
func (n *Node) ID() string { return n.id }

// IsEmpty reports whether this is a zero-row placeholder.
func (n *Node) IsEmpty() bool { return n.id == "" }

// Len reports the number of rows.
func (n *Node) Len() int {
	if n.IsEmpty() {
		return 0
	}

	return n.data.Nrow()
}

// Shape reports (rows, features).
func (n *Node) Shape() (int, int) {
	if n.IsEmpty() {
		return 0, 0
	}

	return n.data.Nrow(), n.data.Ncol()
}

// Features lists the column names.
func (n *Node) Features() []string {
	if n.IsEmpty() {
		return nil
	}

	return n.data.Names()
}

// Data returns the backing table. The returned frame shares storage
// with the node; use Clone for an independent copy.
func (n *Node) Data() dataframe.DataFrame { return n.data }

// Feature returns the named column as a series.
func (n *Node) Feature(name string) (series.Series, error) {
	if !n.hasFeature(name) {
		return series.Series{}, fmt.Errorf("%w: %q (features: %v)", ErrFeatureNotFound, name, n.Features())
	}

	return n.data.Col(name), nil
}

func (n *Node) hasFeature(name string) bool {
	for _, col := range n.Features() {
		if col == name {
			return true
		}
	}

	return false
}

// Index materializes the identifier column as a vector, one value per
// row. Identifiers are not necessarily contiguous or sorted.
func (n *Node) Index() ([]int64, error) {
	if n.IsEmpty() {
		return nil, nil
	}
	ints, err := n.data.Col(n.id).Int()
	if err != nil {
		return nil, fmt.Errorf("%w: identifier column %q: %v", ErrNoID, n.id, err)
	}
	out := make([]int64, len(ints))
	for i, v := range ints {
		out[i] = int64(v)
	}

	return out, nil
}

// SetData wholesale-replaces the backing table, keeping the declared
// name and identifier column.
func (n *Node) SetData(data dataframe.DataFrame) error {
	if data.Err != nil {
		return fmt.Errorf("%w: %v", ErrBadData, data.Err)
	}
	n.data = data

	return nil
}

// Clone returns a deep copy sharing no mutable state.
func (n *Node) Clone() *Node {
	if n.IsEmpty() {
		return NewEmpty(n.name)
	}

	return &Node{name: n.name, id: n.id, data: n.data.Copy()}
}

// IsEqual reports structural equality: the same feature-name set
// (order-insensitive) and the same values in every feature.
func (n *Node) IsEqual(other *Node) bool {
	if other == nil {
		return false
	}
	if n.IsEmpty() || other.IsEmpty() {
		return n.IsEmpty() && other.IsEmpty()
	}

	mine, theirs := n.Features(), other.Features()
	if len(mine) != len(theirs) {
		return false
	}
	for _, feat := range mine {
		if !other.hasFeature(feat) {
			return false
		}
		a := n.data.Col(feat).Records()
		b := other.data.Col(feat).Records()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}

	return true
}
