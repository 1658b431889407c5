// Package node wraps one typed table of entities (Authors,
// Publications, Chemicals, …) with a declared identifier column.
//
// A Node is a thin layer over a gota dataframe: it knows which column
// holds the identifiers that edge collections reference, infers that
// column from Neo4j-style "name:ID(namespace)" labels on construction,
// and supports the row/column subsetting the network container needs
// for slicing. Tables are replaced wholesale during slicing, never
// edited cell by cell; a Node and the edge sets referencing it are
// siblings owned by the network container.
//
// An empty placeholder Node (created for node types referenced only by
// edges) has zero rows and no identifier column.
package node
