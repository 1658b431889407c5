package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/net-synergy/pubnet/edge"
)

var (
	nodeFileRegex   = regexp.MustCompile(`^(\w+)_nodes\.([\w.]+)$`)
	edgeFileRegex   = regexp.MustCompile(`^(\w+)_(\w+)_edges\.([\w.]+)$`)
	edgeHeaderRegex = regexp.MustCompile(`:((?:START)|(?:END))_ID\((\w+)\)`)
)

// NodeFileName builds the path a node collection of the given type is
// saved to.
func NodeFileName(nodeType, ext, dir string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_nodes.%s", nodeType, ext))
}

// EdgeFileName builds the path an edge collection is saved to. The two
// types appear in lexical order regardless of edge direction.
func EdgeFileName(key, ext, dir string) (string, error) {
	n1, n2, err := edge.KeyParts(key)
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, fmt.Sprintf("%s_%s_edges.%s", n1, n2, ext)), nil
}

// nodeFileParts recovers the node type and extension from a file name.
func nodeFileParts(fileName string) (nodeType, ext string, err error) {
	m := nodeFileRegex.FindStringSubmatch(filepath.Base(fileName))
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrBadFileName, fileName)
	}

	return m[1], m[2], nil
}

// edgeFileParts recovers the edge key and extension from a file name.
func edgeFileParts(fileName string) (key, ext string, err error) {
	m := edgeFileRegex.FindStringSubmatch(filepath.Base(fileName))
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrBadFileName, fileName)
	}

	return edge.Key(m[1], m[2]), m[3], nil
}

// GenEdgeHeader builds the header line of a text edge file. The first
// two columns carry Neo4j-style type markers, feature columns follow
// by name.
func GenEdgeHeader(startID, endID string, features []string) string {
	header := fmt.Sprintf(":START_ID(%s)\t:END_ID(%s)", startID, endID)
	if len(features) > 0 {
		header += "\t" + strings.Join(features, "\t")
	}

	return header
}

// ParseEdgeHeader recovers the start and end types and feature names
// from a header line. reversed reports that the first column is the
// end type, so a loader must swap columns to match start/end order.
func ParseEdgeHeader(header string) (startID, endID string, features []string, reversed bool, err error) {
	ids := edgeHeaderRegex.FindAllStringSubmatch(header, -1)
	if len(ids) != 2 {
		return "", "", nil, false, fmt.Errorf("%w: %q", ErrBadHeader, header)
	}
	for _, m := range ids {
		switch m[1] {
		case "START":
			startID = m[2]
		case "END":
			endID = m[2]
		}
	}
	if startID == "" || endID == "" {
		return "", "", nil, false, fmt.Errorf("%w: %q", ErrBadHeader, header)
	}
	reversed = ids[0][1] == "END"

	for _, col := range strings.Split(header, "\t") {
		if strings.HasPrefix(col, ":START") || strings.HasPrefix(col, ":END") {
			continue
		}
		if col != "" {
			features = append(features, col)
		}
	}

	return startID, endID, features, reversed, nil
}

// listNodeFiles maps node type to extension to file path for every
// node file in dir.
func listNodeFiles(dir string) (map[string]map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: scan graph dir: %w", err)
	}

	out := make(map[string]map[string]string)
	for _, e := range entries {
		nodeType, ext, err := nodeFileParts(e.Name())
		if err != nil {
			continue
		}
		if out[nodeType] == nil {
			out[nodeType] = make(map[string]string)
		}
		out[nodeType][ext] = filepath.Join(dir, e.Name())
	}

	return out, nil
}

// listEdgeFiles maps edge key to extension to file path for every edge
// file in dir. Header files are not edge files and are skipped by the
// name pattern.
func listEdgeFiles(dir string) (map[string]map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: scan graph dir: %w", err)
	}

	out := make(map[string]map[string]string)
	for _, e := range entries {
		key, ext, err := edgeFileParts(e.Name())
		if err != nil {
			continue
		}
		if out[key] == nil {
			out[key] = make(map[string]string)
		}
		out[key][ext] = filepath.Join(dir, e.Name())
	}

	return out, nil
}

// findFile picks the preferred extension for a collection.
func findFile(name string, files map[string]map[string]string) (string, error) {
	available, ok := files[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}
	for _, ext := range extPreference {
		if path, ok := available[ext]; ok {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %q has no supported extension", ErrFileNotFound, name)
}
