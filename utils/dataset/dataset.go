// Package dataset loads the CSV tables an analysis runs against and tracks
// their identity. A dataset's fingerprint changes whenever its contents do,
// which is the signal hosts use to reset wizard progress.
package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column is one variable of a dataset with its observed values in row order.
type Column struct {
	Name    string
	Numeric bool
	Values  []string
}

// Floats parses the column's non-empty values as float64.
func (c Column) Floats() ([]float64, error) {
	out := make([]float64, 0, len(c.Values))
	for i, v := range c.Values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, FormatError{Reason: fmt.Sprintf("column %q row %d: %q is not numeric", c.Name, i+1, v)}
		}
		out = append(out, f)
	}
	return out, nil
}

// Dataset is an immutable in-memory table plus its identity fingerprint.
type Dataset struct {
	Name        string
	Fingerprint string
	Columns     []Column
	rows        int
}

// Load reads and parses the CSV file at path.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, raw)
}

// Parse builds a Dataset from raw CSV bytes. The first record is the header.
func Parse(name string, raw []byte) (*Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, FormatError{Reason: "dataset is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if len(header) == 0 {
		return nil, FormatError{Reason: "dataset has no columns"}
	}

	columns := make([]Column, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, FormatError{Reason: fmt.Sprintf("column %d has an empty name", i+1)}
		}
		columns[i] = Column{Name: h}
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", rows+2, err)
		}
		if len(record) != len(header) {
			return nil, FormatError{Reason: fmt.Sprintf("row %d has %d fields, want %d", rows+2, len(record), len(header))}
		}
		for i, v := range record {
			columns[i].Values = append(columns[i].Values, strings.TrimSpace(v))
		}
		rows++
	}

	for i := range columns {
		columns[i].Numeric = isNumeric(columns[i].Values)
	}

	sum := sha256.Sum256(append([]byte(name+"\n"), raw...))
	return &Dataset{
		Name:        name,
		Fingerprint: hex.EncodeToString(sum[:]),
		Columns:     columns,
		rows:        rows,
	}, nil
}

// Rows returns the number of observations.
func (d *Dataset) Rows() int {
	return d.rows
}

// Column returns the named column and whether it exists.
func (d *Dataset) Column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns all column names in file order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns the names of columns whose values all parse as numbers.
func (d *Dataset) NumericColumns() []string {
	var names []string
	for _, c := range d.Columns {
		if c.Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoricalColumns returns the names of non-numeric columns.
func (d *Dataset) CategoricalColumns() []string {
	var names []string
	for _, c := range d.Columns {
		if !c.Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// isNumeric reports whether every non-empty value parses as float64 and at
// least one value is present. Columns of only empty cells stay categorical.
func isNumeric(values []string) bool {
	seen := false
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
