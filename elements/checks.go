package elements

import (
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/notargets/gofe/fe"
	"github.com/notargets/gofe/utils"
)

// ErrTransferLaw reports transfer matrices that break one of the laws checked by CheckTransferLaws.
var ErrTransferLaw = errors.New("elements: transfer law violated")

/*
CheckTransferLaws verifies the transfer matrices of an element:

	concatenation: a fine dof shared by several children gets bit-identical prolongation rows
	additive restriction rows: sum over children of R_c P_c is the identity row
	non-additive restriction rows: exactly one child contributes, and R_c P_c is the identity row

Elements without support points skip the concatenation check.
*/
func CheckTransferLaws(el fe.Element, tol float64) (err error) {
	if el.ProlongationIsImplemented() {
		if err = checkConcatenation(el); err != nil && !errors.Is(err, ErrNoSupportPoints) {
			return
		}
		err = nil
	}
	if el.RestrictionIsImplemented() {
		err = checkRestriction(el, tol)
	}
	return
}

func checkConcatenation(el fe.Element) (err error) {
	var (
		pts  [][]float64
		gi   = el.Data().Geometry()
		rows = make(map[string][]float64)
	)
	if pts, err = SupportPoints(el); err != nil {
		return
	}
	for c := 0; c < gi.ChildrenPerCell; c++ {
		var P utils.Matrix
		if P, err = el.ProlongationMatrix(c); err != nil {
			return
		}
		for f := range pts {
			key := fmt.Sprintf("%s@%.12f", dofTag(el, f), gi.ChildToParentPoint(c, pts[f]))
			row := P.Row(f)
			prev, ok := rows[key]
			if !ok {
				rows[key] = row
				continue
			}
			for j := range row {
				if row[j] != prev[j] {
					return fmt.Errorf("%w: %s child %d dof %d at %v, coarse dof %d: %v != %v",
						ErrTransferLaw, el.Name(), c, f, gi.ChildToParentPoint(c, pts[f]), j, row[j], prev[j])
				}
			}
		}
	}
	return
}

// dofTag separates dofs of different composite blocks that share a support point.
func dofTag(el fe.Element, i int) string {
	sys, ok := el.(*fe.FESystem)
	if !ok {
		return ""
	}
	bi := sys.SystemToBaseIndex(i)
	return fmt.Sprintf("%d.%d/", bi.Base, bi.Instance) + dofTag(sys.BaseElement(bi.Base), bi.Index)
}

func checkRestriction(el fe.Element, tol float64) (err error) {
	var (
		n     = el.DofsPerCell()
		nc    = el.Data().Geometry().ChildrenPerCell
		R     = make([]utils.Matrix, nc)
		P     = make([]utils.Matrix, nc)
		withP = el.ProlongationIsImplemented()
	)
	for c := 0; c < nc; c++ {
		if R[c], err = el.RestrictionMatrix(c); err != nil {
			return
		}
		if withP {
			if P[c], err = el.ProlongationMatrix(c); err != nil {
				return
			}
		}
	}
	for i := 0; i < n; i++ {
		sum := make([]float64, n)
		var contributing int
		for c := 0; c < nc; c++ {
			row := R[c].Row(i)
			if maxAbs(row) == 0 {
				continue
			}
			contributing++
			if !withP {
				continue
			}
			rp := utils.NewMatrix(1, n, row).Mul(P[c]).Row(0)
			if el.RestrictionIsAdditive(i) {
				for j := range sum {
					sum[j] += rp[j]
				}
			} else if err = identityRow(rp, i, tol); err != nil {
				return fmt.Errorf("%w: %s non-additive row %d child %d: %v", ErrTransferLaw, el.Name(), i, c, err)
			}
		}
		if !el.RestrictionIsAdditive(i) {
			if contributing != 1 {
				return fmt.Errorf("%w: %s non-additive row %d has %d contributing children",
					ErrTransferLaw, el.Name(), i, contributing)
			}
			continue
		}
		if withP {
			if err = identityRow(sum, i, tol); err != nil {
				return fmt.Errorf("%w: %s additive row %d: %v", ErrTransferLaw, el.Name(), i, err)
			}
		}
	}
	return
}

func identityRow(row []float64, i int, tol float64) error {
	for j, v := range row {
		want := 0.0
		if j == i {
			want = 1
		}
		if math.Abs(v-want) > tol {
			return fmt.Errorf("entry %d is %g, want %g", j, v, want)
		}
	}
	return nil
}

func maxAbs(row []float64) (m float64) {
	for _, v := range row {
		m = math.Max(m, math.Abs(v))
	}
	return
}

/*
CheckSharedLineConstraints verifies, in cell numbering, that the two faces of a 3D cell sharing a line
constrain the refined dofs on that line (its mid vertex and both half-lines) with bit-identical
weights on the same coarse dofs. Only entity ordered elements number their constraint columns like
their face dofs; other elements are skipped.
*/
func CheckSharedLineConstraints(el fe.Element) (err error) {
	fd := el.Data()
	if fd.Dim != 3 || fd.DofsPerFace == 0 || !el.EntityOrdered() || !el.ConstraintsAreImplemented() {
		return
	}
	var C utils.Matrix
	if C, err = el.Constraints(); err != nil {
		return
	}
	gi := fd.Geometry()
	for l := 0; l < gi.LinesPerCell; l++ {
		var (
			faces   = gi.FacesSharingLine(l)
			weights [2][]map[int]float64
		)
		for s, f := range faces {
			fl := 0
			for gi.FaceLine(f, fl) != l {
				fl++
			}
			for _, r := range lineConstraintRows(fd, fl) {
				w := make(map[int]float64)
				for j, v := range C.Row(r) {
					if v != 0 {
						w[el.FaceToCellIndex(j, f)] = v
					}
				}
				weights[s] = append(weights[s], w)
			}
		}
		for k := range weights[0] {
			if !maps.Equal(weights[0][k], weights[1][k]) {
				return fmt.Errorf("%w: %s line %d dof %d: face %d weights %v, face %d weights %v",
					fe.ErrInconsistentConstraint, el.Name(), l, k, faces[0], weights[0][k], faces[1], weights[1][k])
			}
		}
	}
	return
}

// lineConstraintRows lists the constraint rows of the refined dofs on face line fl: mid vertex, then
// the half-line at the start of the line, then the one at its end.
func lineConstraintRows(fd fe.ElementData, fl int) (rows []int) {
	var (
		dv, dl    = fd.DofsPerVertex, fd.DofsPerLine
		halfLines = 5*dv + 4*dl
	)
	for d := 0; d < dv; d++ {
		rows = append(rows, dv+fl*dv+d)
	}
	for h := 0; h < 2; h++ {
		for d := 0; d < dl; d++ {
			rows = append(rows, halfLines+(2*fl+h)*dl+d)
		}
	}
	return
}
