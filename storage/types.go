package storage

import (
	"errors"
)

// Format selects the on-disk encoding for saved collections.
type Format string

const (
	// FormatTSV writes plain tab-separated text.
	FormatTSV Format = "tsv"
	// FormatGzip writes gzip-compressed tab-separated text.
	FormatGzip Format = "gzip"
	// FormatBinary writes a gob encoding.
	FormatBinary Format = "binary"
)

// File extensions per format. Discovery prefers binary, then plain
// text, then compressed text.
const (
	extTSV    = "tsv"
	extGzip   = "tsv.gz"
	extBinary = "bin"
)

var extPreference = []string{extBinary, extTSV, extGzip}

var (
	// ErrBadFormat reports a format outside tsv, gzip and binary.
	ErrBadFormat = errors.New("storage: unsupported file format")

	// ErrNoName reports a save of a graph with no name to derive the
	// directory from.
	ErrNoName = errors.New("storage: graph name not set")

	// ErrEmptyCollection reports a save of a zero-row collection, which
	// a loader could not read back.
	ErrEmptyCollection = errors.New("storage: refusing to save empty collection")

	// ErrGraphNotFound reports a graph directory that does not exist.
	ErrGraphNotFound = errors.New("storage: graph not found")

	// ErrFileNotFound reports a requested collection with no matching
	// file in the graph directory.
	ErrFileNotFound = errors.New("storage: no file for collection")

	// ErrBadFileName reports a file that does not follow the
	// "<Type>_nodes.<ext>" / "<Type1>_<Type2>_edges.<ext>" convention.
	ErrBadFileName = errors.New("storage: file name does not match naming conventions")

	// ErrBadHeader reports an edge header line missing the START_ID or
	// END_ID markers.
	ErrBadHeader = errors.New("storage: malformed edge header")
)

func (f Format) ext() (string, error) {
	switch f {
	case FormatTSV:
		return extTSV, nil
	case FormatGzip:
		return extGzip, nil
	case FormatBinary:
		return extBinary, nil
	default:
		return "", ErrBadFormat
	}
}
