// Package dataset loads labelled feature tables from CSV into gonum
// matrices.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// Frame is a numeric table with named feature columns and an optional label.
type Frame struct {
	Names []string
	X     *mat.Dense
	Y     *mat.VecDense // nil when no label column was requested
}

// ReadCSV parses a CSV with a header row. The column named labelColumn
// becomes Y; every other column becomes a feature. An empty labelColumn
// reads all columns as features.
func ReadCSV(r io.Reader, labelColumn string) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "dataset: read csv")
	}
	if len(records) < 2 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset: need a header and at least one row")
	}

	header := records[0]
	labelIdx := -1
	names := make([]string, 0, len(header))
	seen := make(map[string]bool, len(header))
	for j, h := range header {
		h = strings.TrimSpace(h)
		if seen[h] {
			return nil, errors.NewValidationError("header", "duplicate column", h)
		}
		seen[h] = true
		if labelColumn != "" && h == labelColumn {
			labelIdx = j
			continue
		}
		names = append(names, h)
	}
	if labelColumn != "" && labelIdx < 0 {
		return nil, errors.NewValidationError("label", "column not found in header", labelColumn)
	}
	if len(names) == 0 {
		return nil, errors.NewValidationError("header", "no feature columns", header)
	}

	rows := len(records) - 1
	x := mat.NewDense(rows, len(names), nil)
	var y *mat.VecDense
	if labelIdx >= 0 {
		y = mat.NewVecDense(rows, nil)
	}

	for i, rec := range records[1:] {
		col := 0
		for j, cell := range rec {
			val, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				// Line numbers are 1-indexed and include the header.
				return nil, errors.NewValueError("dataset.ReadCSV",
					fmt.Sprintf("line %d, column %q: %q is not a number", i+2, strings.TrimSpace(header[j]), cell))
			}
			if j == labelIdx {
				y.SetVec(i, val)
				continue
			}
			x.Set(i, col, val)
			col++
		}
	}

	return &Frame{Names: names, X: x, Y: y}, nil
}

// ReadCSVFile opens path and calls ReadCSV.
func ReadCSVFile(path, labelColumn string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	frame, err := ReadCSV(f, labelColumn)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: %s", path)
	}
	return frame, nil
}

// Rows returns the number of rows.
func (f *Frame) Rows() int {
	r, _ := f.X.Dims()
	return r
}

// Select returns a frame whose feature columns follow names, so a test table
// can be aligned to the training schema. Extra columns are dropped; a
// missing column is an error. Y is shared, not copied.
func (f *Frame) Select(names []string) (*Frame, error) {
	pos := make(map[string]int, len(f.Names))
	for j, n := range f.Names {
		pos[n] = j
	}

	rows := f.Rows()
	x := mat.NewDense(rows, len(names), nil)
	col := make([]float64, rows)
	for k, n := range names {
		j, ok := pos[n]
		if !ok {
			return nil, errors.NewValidationError("columns", "missing column", n)
		}
		x.SetCol(k, mat.Col(col, j, f.X))
	}
	return &Frame{Names: append([]string(nil), names...), X: x, Y: f.Y}, nil
}
