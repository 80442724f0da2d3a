package elements

import (
	"errors"
	"fmt"

	"github.com/notargets/gofe/fe"
)

// ErrNoSupportPoints is returned for elements that do not place their dofs at points.
var ErrNoSupportPoints = errors.New("elements: element has no support points")

type supportPointer interface {
	UnitSupportPoint(i int) []float64
}

/*
SupportPoints returns the location on the unit cell of every dof. A composite element reports, for
each dof, the point of the base dof it was built from.
*/
func SupportPoints(el fe.Element) (pts [][]float64, err error) {
	if sp, ok := el.(supportPointer); ok {
		pts = make([][]float64, el.DofsPerCell())
		for i := range pts {
			pts[i] = sp.UnitSupportPoint(i)
		}
		return
	}
	sys, ok := el.(*fe.FESystem)
	if !ok {
		err = fmt.Errorf("%w: %s", ErrNoSupportPoints, el.Name())
		return
	}
	basePts := make([][][]float64, sys.NBaseElements())
	for b := range basePts {
		if basePts[b], err = SupportPoints(sys.BaseElement(b)); err != nil {
			return
		}
	}
	pts = make([][]float64, sys.DofsPerCell())
	for i := range pts {
		bi := sys.SystemToBaseIndex(i)
		pts[i] = basePts[bi.Base][bi.Index]
	}
	return
}

/*
FaceSupportPoints returns, for every face dof, its location in the (u,v) frame of face 0. Every face
of the reference cell numbers its dofs the same way, so the points hold for all faces once mapped
with geometry.Info.FaceToCellPoint. An element without face dofs has no face support points.
*/
func FaceSupportPoints(el fe.Element) (pts [][]float64, err error) {
	var (
		cellPts [][]float64
		fd      = el.Data()
	)
	if fd.DofsPerFace == 0 {
		return
	}
	if cellPts, err = SupportPoints(el); err != nil {
		return
	}
	_, tangent := fd.Geometry().FaceAxes(0)
	pts = make([][]float64, fd.DofsPerFace)
	for j := range pts {
		x := cellPts[el.FaceToCellIndex(j, 0)]
		pts[j] = make([]float64, fd.Dim-1)
		for k := range pts[j] {
			pts[j][k] = x[tangent[k]]
		}
	}
	return
}
