// Package psm provides streaming readers for delimited cluster assignment tables
// (one row per spectrum with its cluster label and peptide-spectrum match).
package psm

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/clusterqc/pkg/core"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Columns names the header columns holding each record field.
type Columns struct {
	ID       string // Optional; ignored if empty or absent
	Charge   string
	Cluster  string
	Sequence string
}

// DefaultColumns returns the standard column names.
func DefaultColumns() Columns {
	return Columns{
		ID:       "identifier",
		Charge:   "precursor_charge",
		Cluster:  "cluster",
		Sequence: "sequence",
	}
}

// missingValues are sequence tokens meaning "no identification".
var missingValues = map[string]bool{
	"":     true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
	"None": true,
	"null": true,
}

// Reader provides streaming access to cluster tables
type Reader struct {
	csv     *csv.Reader
	cols    Columns
	idIdx   int // -1 if the table has no identifier column
	charge  int
	cluster int
	seq     int
	header  bool
	current core.Record
	err     error
}

// NewReader creates a new reader splitting fields on comma.
func NewReader(r io.Reader, comma rune, cols Columns) *Reader {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true
	if comma == '\t' {
		cr.LazyQuotes = true
	}

	return &Reader{
		csv:   cr,
		cols:  cols,
		idIdx: -1,
	}
}

// Next advances to the next record. Returns false when no more records or error.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	if !r.header {
		if err := r.readHeader(); err != nil {
			if err != io.EOF {
				r.err = err
			}
			return false
		}
		r.header = true
	}

	fields, err := r.csv.Read()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	rec, err := r.parseRecord(fields)
	if err != nil {
		line, _ := r.csv.FieldPos(0)
		r.err = fmt.Errorf("line %d: %w", line, err)
		return false
	}

	r.current = rec
	return true
}

// Record returns the current record
func (r *Reader) Record() core.Record {
	return r.current
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readHeader locates the configured columns in the header row
func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	lookup := func(name string) (int, error) {
		i, ok := index[name]
		if !ok {
			return 0, fmt.Errorf("%w '%s'", ErrMissingColumn, name)
		}
		return i, nil
	}

	if r.charge, err = lookup(r.cols.Charge); err != nil {
		return err
	}
	if r.cluster, err = lookup(r.cols.Cluster); err != nil {
		return err
	}
	if r.seq, err = lookup(r.cols.Sequence); err != nil {
		return err
	}
	if i, ok := index[r.cols.ID]; ok && r.cols.ID != "" {
		r.idIdx = i
	}

	return nil
}

// parseRecord converts one row into a record
func (r *Reader) parseRecord(fields []string) (core.Record, error) {
	var rec core.Record

	charge, err := parseInt(fields[r.charge])
	if err != nil {
		return rec, fmt.Errorf("invalid %s '%s': %w", r.cols.Charge, fields[r.charge], err)
	}
	rec.PrecursorCharge = charge

	cluster, err := parseInt(fields[r.cluster])
	if err != nil {
		return rec, fmt.Errorf("invalid %s '%s': %w", r.cols.Cluster, fields[r.cluster], err)
	}
	rec.Cluster = cluster

	seq := strings.TrimSpace(fields[r.seq])
	if !missingValues[seq] {
		rec.Sequence = seq
	}

	if r.idIdx >= 0 {
		rec.ID = strings.TrimSpace(fields[r.idIdx])
	}

	return rec, nil
}

// parseInt accepts integers, also when written as integral floats ("2.0")
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}

// ReadAll reads every record from r.
func ReadAll(r io.Reader, comma rune, cols Columns) (core.Table, error) {
	reader := NewReader(r, comma, cols)

	var table core.Table
	for reader.Next() {
		table = append(table, reader.Record())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// DelimiterFor auto-detects the field delimiter from a file extension.
func DelimiterFor(path string) (rune, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ',', nil
	case ".tsv", ".txt", ".tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("cannot auto-detect delimiter from extension '%s'", filepath.Ext(path))
	}
}

// ReadFile reads a whole cluster table from path. A zero comma auto-detects
// the delimiter from the file extension.
func ReadFile(path string, comma rune, cols Columns) (core.Table, error) {
	if comma == 0 {
		var err error
		if comma, err = DelimiterFor(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	table, err := ReadAll(f, comma, cols)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return table, nil
}
