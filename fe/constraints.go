package fe

import (
	"fmt"

	"github.com/notargets/gofe/utils"
)

// Entity kinds used by the constraint row and column layouts.
const (
	VertexGroup = 0
	LineGroup   = 1
	QuadGroup   = 2
)

// InterfaceConstraintsSize is the shape of the matrix expressing the dofs on a refined face in
// terms of the dofs on the coarse face.
func InterfaceConstraintsSize(fd ElementData) (m, n int) {
	var (
		dv, dl, dq = fd.DofsPerVertex, fd.DofsPerLine, fd.DofsPerQuad
	)
	switch fd.Dim {
	case 2:
		return dv + 2*dl, 2*dv + dl
	case 3:
		return 5*dv + 12*dl + 4*dq, 4*dv + 4*dl + dq
	}
	return 0, 0
}

/*
ConstraintRowGroups lists the entities whose dofs make up the rows of the constraint matrix, in
order. Each group holds the per-entity dof count of its kind.

	2D: refined face midpoint, the two half-lines
	3D: center vertex, mid vertices of face lines 0..3, the four interior lines (below, above, left,
	    right of the center), the eight half-lines (two per face line, start side first), the four
	    child faces in lexicographic order
*/
func ConstraintRowGroups(dim int) (groups []int) {
	switch dim {
	case 2:
		return []int{VertexGroup, LineGroup, LineGroup}
	case 3:
		groups = make([]int, 0, 21)
		for i := 0; i < 5; i++ {
			groups = append(groups, VertexGroup)
		}
		for i := 0; i < 12; i++ {
			groups = append(groups, LineGroup)
		}
		for i := 0; i < 4; i++ {
			groups = append(groups, QuadGroup)
		}
	}
	return
}

// ConstraintColumnGroups lists the coarse face entities making up the columns: face vertices, face
// lines and the face interior.
func ConstraintColumnGroups(dim int) []int {
	switch dim {
	case 2:
		return []int{VertexGroup, VertexGroup, LineGroup}
	case 3:
		return []int{VertexGroup, VertexGroup, VertexGroup, VertexGroup,
			LineGroup, LineGroup, LineGroup, LineGroup, QuadGroup}
	}
	return nil
}

// groupOffsets returns the first row (or column) of every group for the given per-kind counts.
func groupOffsets(groups []int, counts []int) (offsets []int) {
	offsets = make([]int, len(groups)+1)
	for g, kind := range groups {
		offsets[g+1] = offsets[g] + counts[kind]
	}
	return
}

func storeConstraints(C utils.Matrix, fd ElementData) (stored utils.Matrix, err error) {
	if C.IsEmpty() {
		return
	}
	m, n := InterfaceConstraintsSize(fd)
	if nr, nc := C.Dims(); nr != m || nc != n {
		err = fmt.Errorf("%w: have %dx%d, need %dx%d", ErrWrongInterfaceMatrixSize, nr, nc, m, n)
		return
	}
	if err = CheckConstraintConsistency(fd, C); err != nil {
		return
	}
	stored = C.Copy()
	return
}

// Constraints returns the interface constraint matrix, see InterfaceConstraintsSize.
func (fe *FiniteElement) Constraints() (C utils.Matrix, err error) {
	if m, n := InterfaceConstraintsSize(fe.data); m*n != 0 && fe.interfaceConstraints.IsEmpty() {
		err = fmt.Errorf("%w: %s", ErrConstraintsVoid, fe.name)
		return
	}
	C = readOnlyCopy(fe.interfaceConstraints)
	return
}

func (fe *FiniteElement) ConstraintsAreImplemented() bool {
	return fe.data.Dim == 1 || fe.data.DofsPerFace == 0 || !fe.interfaceConstraints.IsEmpty()
}

var faceLineVertices = [4][2]int{{0, 2}, {1, 3}, {0, 1}, {2, 3}}

/*
CheckConstraintConsistency verifies that the constraints of the dofs on each line of a 3D face
depend only on the coarse dofs of that line, with the same weights on every line. A neighbor sharing
only the line then computes the same constraints from its own face.
*/
func CheckConstraintConsistency(fd ElementData, C utils.Matrix) (err error) {
	if fd.Dim != 3 || C.IsEmpty() {
		return
	}
	var (
		dv, dl = fd.DofsPerVertex, fd.DofsPerLine
		_, nc  = C.Dims()
		// line-local numbering: rows are mid vertex then the two half-lines, columns are start
		// vertex, end vertex, line interior
		lineRows = dv + 2*dl
		lineCols = 2*dv + dl
		cs       = NewConstraintSet(lineRows, lineCols)
	)
	for l := 0; l < 4; l++ {
		var (
			rows = make([]int, 0, lineRows)
			cols = make([]int, 0, lineCols)
		)
		for d := 0; d < dv; d++ {
			rows = append(rows, dv+l*dv+d)
		}
		for h := 0; h < 2; h++ {
			for d := 0; d < dl; d++ {
				rows = append(rows, 5*dv+4*dl+(2*l+h)*dl+d)
			}
		}
		for _, fv := range faceLineVertices[l] {
			for d := 0; d < dv; d++ {
				cols = append(cols, fv*dv+d)
			}
		}
		for d := 0; d < dl; d++ {
			cols = append(cols, 4*dv+l*dl+d)
		}
		onLine := make(map[int]int, len(cols))
		for lc, col := range cols {
			onLine[col] = lc
		}
		for lr, row := range rows {
			var (
				lineColIdx = make([]int, lineCols)
				weights    = make([]float64, lineCols)
			)
			for col := 0; col < nc; col++ {
				w := C.At(row, col)
				lc, ok := onLine[col]
				if !ok {
					if w != 0 {
						return fmt.Errorf("%w: row %d of face line %d has weight %g on column %d off the line",
							ErrInconsistentConstraint, row, l, w, col)
					}
					continue
				}
				lineColIdx[lc], weights[lc] = lc, w
			}
			if err = cs.AddConstraint(lr, lineColIdx, weights); err != nil {
				return fmt.Errorf("face line %d row %d: %w", l, row, err)
			}
		}
	}
	return
}
