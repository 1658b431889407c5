package storage

import (
	"compress/gzip"
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/net-synergy/pubnet/node"
)

// nodeRecord is the gob wire form of a node collection. Values travel
// in record form; column types are re-detected on load the same way
// text files are parsed.
type nodeRecord struct {
	Records [][]string
}

// SaveNode writes one node collection into dir under the naming
// convention for its type. Zero-row collections, placeholders
// included, are rejected: their files would have no rows for LoadNode
// to rebuild a table from.
func SaveNode(n *node.Node, dir string, format Format) error {
	ext, err := format.ext()
	if err != nil {
		return err
	}
	if n.Len() == 0 {
		return fmt.Errorf("%w: node %q", ErrEmptyCollection, n.Name())
	}
	path := NodeFileName(n.Name(), ext, dir)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: save node %q: %w", n.Name(), err)
	}

	records := labeledRecords(n)
	switch format {
	case FormatTSV:
		err = writeTSV(f, records)
	case FormatGzip:
		gz := gzip.NewWriter(f)
		if err = writeTSV(gz, records); err == nil {
			err = gz.Close()
		}
	case FormatBinary:
		err = gob.NewEncoder(f).Encode(nodeRecord{Records: records})
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("storage: save node %q: %w", n.Name(), err)
	}

	return f.Close()
}

// LoadNode reads a node collection from a file following the naming
// convention. The header's id label decides the id column and type
// name, taking precedence over the file name.
func LoadNode(path string) (*node.Node, error) {
	_, ext, err := nodeFileParts(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: load node: %w", err)
	}
	defer f.Close()

	var records [][]string
	switch ext {
	case extTSV:
		records, err = readTSV(f)
	case extGzip:
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(f); err == nil {
			records, err = readTSV(gz)
			gz.Close()
		}
	case extBinary:
		var rec nodeRecord
		if err = gob.NewDecoder(f).Decode(&rec); err == nil {
			records = rec.Records
		}
	default:
		return nil, fmt.Errorf("%w: extension %q", ErrBadFileName, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load node %q: %w", path, err)
	}

	df := dataframe.LoadRecords(records)
	if df.Error() != nil {
		return nil, fmt.Errorf("storage: load node %q: %w", path, df.Error())
	}

	return node.New(df)
}

// labeledRecords renders a node's table with the id column restored to
// its "id:ID(namespace)" header label.
func labeledRecords(n *node.Node) [][]string {
	records := n.Data().Records()
	if len(records) == 0 {
		return records
	}
	for i, name := range records[0] {
		if name == n.ID() {
			records[0][i] = node.IDLabel(n.ID(), n.Name())
		}
	}

	return records
}

func writeTSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.WriteAll(records); err != nil {
		return err
	}

	return cw.Error()
}

func readTSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	return cr.ReadAll()
}
