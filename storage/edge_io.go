package storage

import (
	"bufio"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/net-synergy/pubnet/edge"
)

// edgeRecord is the gob wire form of an edge collection. It is
// self-describing, so binary edge files need no companion header.
type edgeRecord struct {
	StartID   string
	EndID     string
	Pairs     [][2]int64
	FeatOrder []string
	Features  map[string][]float64
}

// SaveEdge writes one edge collection into dir under the naming
// convention for its key. Text formats carry the column orientation in
// a header line.
func SaveEdge(s edge.Set, dir string, format Format) error {
	ext, err := format.ext()
	if err != nil {
		return err
	}
	path, err := EdgeFileName(s.Key(), ext, dir)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: save edge %q: %w", s.Key(), err)
	}

	switch format {
	case FormatTSV:
		err = writeEdgeText(f, s)
	case FormatGzip:
		gz := gzip.NewWriter(f)
		if err = writeEdgeText(gz, s); err == nil {
			err = gz.Close()
		}
	case FormatBinary:
		err = gob.NewEncoder(f).Encode(edgeWire(s))
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("storage: save edge %q: %w", s.Key(), err)
	}

	return f.Close()
}

// LoadEdge reads an edge collection in the requested backend. For text
// files the header decides which column is start and which is end,
// flipping them when the file stores end first.
func LoadEdge(path string, backend edge.Backend) (edge.Set, error) {
	_, ext, err := edgeFileParts(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: load edge: %w", err)
	}
	defer f.Close()

	switch ext {
	case extTSV:
		return readEdgeText(f, backend, path)
	case extGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("storage: load edge %q: %w", path, err)
		}
		defer gz.Close()
		return readEdgeText(gz, backend, path)
	case extBinary:
		var rec edgeRecord
		if err := gob.NewDecoder(f).Decode(&rec); err != nil {
			return nil, fmt.Errorf("storage: load edge %q: %w", path, err)
		}
		opts := make([]edge.Option, 0, len(rec.FeatOrder))
		for _, name := range rec.FeatOrder {
			opts = append(opts, edge.WithFeature(name, rec.Features[name]))
		}
		return edge.FromData(backend, rec.Pairs, rec.StartID, rec.EndID, opts...)
	default:
		return nil, fmt.Errorf("%w: extension %q", ErrBadFileName, ext)
	}
}

func edgeWire(s edge.Set) edgeRecord {
	rec := edgeRecord{
		StartID:   s.StartID(),
		EndID:     s.EndID(),
		Pairs:     s.AsArray(),
		FeatOrder: s.Features(),
		Features:  make(map[string][]float64, len(s.Features())),
	}
	for _, name := range rec.FeatOrder {
		values, err := s.Feature(name)
		if err != nil {
			continue
		}
		rec.Features[name] = values
	}

	return rec
}

func writeEdgeText(w io.Writer, s edge.Set) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(GenEdgeHeader(s.StartID(), s.EndID(), s.Features()) + "\n"); err != nil {
		return err
	}

	feats := make([][]float64, 0, len(s.Features()))
	for _, name := range s.Features() {
		values, err := s.Feature(name)
		if err != nil {
			return err
		}
		feats = append(feats, values)
	}

	for i, pair := range s.AsArray() {
		bw.WriteString(strconv.FormatInt(pair[0], 10))
		bw.WriteByte('\t')
		bw.WriteString(strconv.FormatInt(pair[1], 10))
		for _, values := range feats {
			bw.WriteByte('\t')
			bw.WriteString(strconv.FormatFloat(values[i], 'g', -1, 64))
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func readEdgeText(r io.Reader, backend edge.Backend, path string) (edge.Set, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("storage: load edge %q: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %q is empty", ErrBadHeader, path)
	}
	startID, endID, featNames, reversed, err := ParseEdgeHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	var pairs [][2]int64
	feats := make([][]float64, len(featNames))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2+len(featNames) {
			return nil, fmt.Errorf("storage: load edge %q: row %d has %d columns, want %d",
				path, len(pairs)+1, len(fields), 2+len(featNames))
		}
		a, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("storage: load edge %q: %w", path, err)
		}
		b, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("storage: load edge %q: %w", path, err)
		}
		if reversed {
			a, b = b, a
		}
		pairs = append(pairs, [2]int64{a, b})
		for j := range featNames {
			v, err := strconv.ParseFloat(fields[2+j], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: load edge %q: %w", path, err)
			}
			feats[j] = append(feats[j], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("storage: load edge %q: %w", path, err)
	}

	opts := make([]edge.Option, 0, len(featNames))
	for j, name := range featNames {
		opts = append(opts, edge.WithFeature(name, feats[j]))
	}

	return edge.FromData(backend, pairs, startID, endID, opts...)
}
