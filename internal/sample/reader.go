// Package sample reads whitespace-delimited simulation tables into numeric
// rows, keeping only the rows of one selected quantity.
package sample

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultSelector is the selector value of the axial field rows in the
// cylindrical field tables.
const DefaultSelector = 6.0

// DefaultMinFields is the narrowest row the reference tables produce.
const DefaultMinFields = 6

const maxLineBytes = 1 << 20

// Columns are 0-based field positions within a row.
type Columns struct {
	Selector int
	Z        int
	R        int
	Value    int
}

// DefaultColumns matches the cylindrical field tables: column 0 is R,
// column 1 the selector, column 2 is Z and column 5 the field value.
func DefaultColumns() Columns {
	return Columns{Selector: 1, Z: 2, R: 0, Value: 5}
}

// Width is the number of fields a row needs to cover every column.
func (c Columns) Width() int {
	return max(c.Selector, c.Z, c.R, c.Value) + 1
}

func (c Columns) Validate() error {
	if min(c.Selector, c.Z, c.R, c.Value) < 0 {
		return fmt.Errorf("sample: negative column in %+v", c)
	}
	return nil
}

// Row is one kept data line.
type Row struct {
	Line   int
	Values []float64
}

// Split picks the coordinates and field value out of a kept row.
func (c Columns) Split(r Row) (z, radius, value float64) {
	return r.Values[c.Z], r.Values[c.R], r.Values[c.Value]
}

// Reader parses tables. It holds only configuration and is safe to reuse.
type Reader struct {
	cols      Columns
	selector  float64
	minFields int
}

// NewReader returns a reader keeping rows whose selector column equals
// selector. Kept rows need at least max(minFields, cols.Width()) fields.
func NewReader(cols Columns, selector float64, minFields int) *Reader {
	return &Reader{
		cols:      cols,
		selector:  selector,
		minFields: max(minFields, cols.Width()),
	}
}

// ReadFile opens path and reads it. The file is closed before returning.
func (r *Reader) ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	defer f.Close()

	return r.Read(f)
}

// Read discards the header line, parses every following line and returns
// the kept rows in source order. Blank lines are ignored. Any token that is
// not a number aborts the read.
func (r *Reader) Read(src io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	rows := make([]Row, 0)
	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		values := make([]float64, len(fields))
		for i, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Column: i + 1, Token: tok, Err: err}
			}
			values[i] = v
		}

		if len(values) <= r.cols.Selector {
			return nil, &ShapeError{Line: line, Fields: len(values), Want: r.minFields}
		}
		if values[r.cols.Selector] != r.selector {
			continue
		}
		if len(values) < r.minFields {
			return nil, &ShapeError{Line: line, Fields: len(values), Want: r.minFields}
		}

		rows = append(rows, Row{Line: line, Values: values})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sample: read line %d: %w", line+1, err)
	}

	return rows, nil
}
