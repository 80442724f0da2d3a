package fe

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
)

/*
ConstraintSet collects constraint lines, each a constrained row with weights on a set of columns,
over a fixed index space. The same line may be added any number of times as long as the weights are
identical.
*/
type ConstraintSet struct {
	nRows, nCols int
	weights      *sparse.DOK
	lines        map[int][]int
}

func NewConstraintSet(nRows, nCols int) *ConstraintSet {
	return &ConstraintSet{
		nRows:   nRows,
		nCols:   nCols,
		weights: sparse.NewDOK(max(nRows, 1), max(nCols, 1)),
		lines:   make(map[int][]int),
	}
}

// AddConstraint adds row = sum(weights[k] * cols[k]). Zero weights are not stored, but still have
// to agree with an existing line.
func (cs *ConstraintSet) AddConstraint(row int, cols []int, weights []float64) (err error) {
	if row < 0 || row >= cs.nRows {
		return indexRangeError("constrained row", row, cs.nRows)
	}
	if len(cols) != len(weights) {
		return fmt.Errorf("%w: %d columns and %d weights", ErrDimensionMismatch, len(cols), len(weights))
	}
	given := make(map[int]float64, len(cols))
	for k, col := range cols {
		if col < 0 || col >= cs.nCols {
			return indexRangeError("constraining column", col, cs.nCols)
		}
		given[col] += weights[k]
	}
	if existing, ok := cs.lines[row]; ok {
		for _, col := range existing {
			if w := cs.weights.At(row, col); given[col] != w {
				return fmt.Errorf("%w: row %d column %d has weight %g, adding %g",
					ErrInconsistentConstraint, row, col, w, given[col])
			}
		}
		for col, w := range given {
			if w != 0 && cs.weights.At(row, col) == 0 {
				return fmt.Errorf("%w: row %d column %d has no weight, adding %g",
					ErrInconsistentConstraint, row, col, w)
			}
		}
		return
	}
	line := make([]int, 0, len(given))
	for col, w := range given {
		if w != 0 {
			cs.weights.Set(row, col, w)
			line = append(line, col)
		}
	}
	sort.Ints(line)
	cs.lines[row] = line
	return
}

func (cs *ConstraintSet) IsConstrained(row int) bool {
	_, ok := cs.lines[row]
	return ok
}

func (cs *ConstraintSet) NConstraints() int { return len(cs.lines) }

func (cs *ConstraintSet) Dims() (r, c int) { return cs.nRows, cs.nCols }

func (cs *ConstraintSet) Weight(row, col int) float64 {
	checkIndex("constrained row", row, cs.nRows)
	checkIndex("constraining column", col, cs.nCols)
	return cs.weights.At(row, col)
}

// Line returns the columns a row is constrained to, in increasing order, with their weights.
func (cs *ConstraintSet) Line(row int) (cols []int, weights []float64) {
	line, ok := cs.lines[row]
	if !ok {
		return
	}
	cols = append([]int{}, line...)
	weights = make([]float64, len(cols))
	for k, col := range cols {
		weights[k] = cs.weights.At(row, col)
	}
	return
}

// Matrix exports the weights as a compressed sparse row matrix.
func (cs *ConstraintSet) Matrix() *sparse.CSR {
	return cs.weights.ToCSR()
}
