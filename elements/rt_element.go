package elements

import (
	"fmt"

	"github.com/notargets/gofe/fe"
	"github.com/notargets/gofe/geometry"
	"github.com/notargets/gofe/utils"
)

/*
RTElement is the lowest order Raviart-Thomas element on the hypercube. Dof f is the flux through
face f, taken in the positive direction of the face's normal axis. Every shape function is nonzero
in all dim components, so the element is not primitive.

Only degree zero is provided. Prolongation and interface constraints are available, restriction is
not.
*/
type RTElement struct {
	*fe.FiniteElement
	N  int
	gi geometry.Info
}

func NewRTElement(dim, N int) (el *RTElement, err error) {
	if N != 0 {
		err = fmt.Errorf("%w: FE_RaviartThomas is only available for degree 0, have %d",
			fe.ErrInvalidElementData, N)
		return
	}
	if dim < 2 || dim > 3 {
		err = fmt.Errorf("%w: FE_RaviartThomas needs dim 2 or 3, have %d", fe.ErrInvalidElementData, dim)
		return
	}
	gi := geometry.MustInfo(dim)
	counts := make([]int, dim+1)
	counts[dim-1] = 1
	var fd fe.ElementData
	if fd, err = fe.NewElementData(dim, counts, dim, N+1); err != nil {
		return
	}
	el = &RTElement{N: N, gi: gi}
	masks := make([]fe.ComponentMask, fd.DofsPerCell)
	for i := range masks {
		masks[i] = make(fe.ComponentMask, dim)
		for c := range masks[i] {
			masks[i][c] = true
		}
	}
	def := fe.Definition{
		Name:                  fmt.Sprintf("FE_RaviartThomas<%d>(%d)", dim, N),
		Data:                  fd,
		RestrictionIsAdditive: make([]bool, fd.DofsPerCell),
		NonzeroComponents:     masks,
		Prolongation:          el.prolongation(),
		InterfaceConstraints:  el.interfaceConstraints(),
	}
	if el.FiniteElement, err = fe.NewFiniteElement(def); err != nil {
		return nil, err
	}
	return
}

/*
prolongation: the normal component along axis a varies linearly between the coarse faces 2a and
2a+1, and a child face carries 2^(1-dim) of the coarse face area.
*/
func (el *RTElement) prolongation() (P []utils.Matrix) {
	var (
		n     = el.gi.FacesPerCell
		scale = 1 / float64(el.gi.ChildrenPerFace)
	)
	P = make([]utils.Matrix, el.gi.ChildrenPerCell)
	for c := range P {
		bits := el.gi.ChildBits(c)
		P[c] = utils.NewMatrix(n, n)
		for f := 0; f < n; f++ {
			a, side := f/2, f%2
			x := 0.5 * float64(side+bits[a])
			P[c].Set(f, 2*a, 1-x)
			P[c].Set(f, 2*a+1, x)
		}
		P[c].Scale(scale)
	}
	return
}

func (el *RTElement) interfaceConstraints() (C utils.Matrix) {
	n := el.gi.ChildrenPerFace
	C = utils.NewMatrix(n, 1)
	for i := 0; i < n; i++ {
		C.Set(i, 0, 1)
	}
	C.Scale(1 / float64(n))
	return
}

// UnitSupportPoint is the center of the dof's face.
func (el *RTElement) UnitSupportPoint(i int) (x []float64) {
	center := make([]float64, el.gi.Dim-1)
	for k := range center {
		center[k] = 0.5
	}
	return el.gi.FaceToCellPoint(i, center)
}
