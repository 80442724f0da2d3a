package elements

import (
	"fmt"
	"math"

	"github.com/notargets/gofe/basis"
	"github.com/notargets/gofe/fe"
	"github.com/notargets/gofe/geometry"
	"github.com/notargets/gofe/utils"
)

/*
DGQElement is the discontinuous tensor product Lagrange element of degree N. All dofs belong to the
cell interior and are numbered lexicographically, x fastest. Degree zero is the piecewise constant
element with its node at the cell center.
*/
type DGQElement struct {
	*fe.FiniteElement
	N  int
	lb *basis.Lagrange1D
	gi geometry.Info
}

func NewDGQElement(dim, N int) (el *DGQElement, err error) {
	if N < 0 {
		err = fmt.Errorf("%w: FE_DGQ needs degree >= 0, have %d", fe.ErrInvalidElementData, N)
		return
	}
	var gi geometry.Info
	if gi, err = geometry.NewInfo(dim); err != nil {
		err = fmt.Errorf("%w: %v", fe.ErrInvalidElementData, err)
		return
	}
	counts := make([]int, dim+1)
	counts[dim] = ipow(N+1, dim)
	var fd fe.ElementData
	if fd, err = fe.NewElementData(dim, counts, 1, N); err != nil {
		return
	}
	el = &DGQElement{
		N:  N,
		lb: basis.NewLagrange1D(N),
		gi: gi,
	}
	var (
		P1D = [2]utils.Matrix{el.prolongation1D(0), el.prolongation1D(1)}
		R1D [2]utils.Matrix
	)
	for c := range R1D {
		if R1D[c], err = el.restriction1D(c); err != nil {
			return nil, err
		}
	}
	additive := make([]bool, fd.DofsPerCell)
	for i := range additive {
		additive[i] = true
	}
	def := fe.Definition{
		Name:                  fmt.Sprintf("FE_DGQ<%d>(%d)", dim, N),
		Data:                  fd,
		RestrictionIsAdditive: additive,
		NonzeroComponents:     scalarMasks(fd.DofsPerCell),
		Prolongation:          el.tensorize(P1D),
		Restriction:           el.tensorize(R1D),
	}
	if el.FiniteElement, err = fe.NewFiniteElement(def); err != nil {
		return nil, err
	}
	return
}

// prolongation1D interpolates the coarse 1D basis at the nodes of child c.
func (el *DGQElement) prolongation1D(c int) (P utils.Matrix) {
	n := el.N + 1
	P = utils.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		x := 0.5 * (el.lb.Nodes[i] + float64(c))
		if el.N > 0 {
			x = basis.Rational(i+el.N*c, 2*el.N)
		}
		for j := 0; j < n; j++ {
			P.Set(i, j, el.lb.Eval(j, x))
		}
	}
	return
}

/*
restriction1D is the L2 projection of the fine basis on child c onto the coarse space, M^-1 C_c with
M the coarse mass matrix and C_c[i][j] the integral over the child of coarse function i times fine
function j. Summed over children, R_c P_c is the identity.
*/
func (el *DGQElement) restriction1D(c int) (R utils.Matrix, err error) {
	var (
		n     = el.N + 1
		M     = utils.NewMatrix(n, n)
		C     = utils.NewMatrix(n, n)
		X, W  = basis.GaussLegendre(n, 0, 1)
		lo    = 0.5 * float64(c)
		Xc, _ = basis.GaussLegendre(n, lo, lo+0.5)
	)
	for q := range X {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				M.Set(i, j, M.At(i, j)+W[q]*el.lb.Eval(i, X[q])*el.lb.Eval(j, X[q]))
				// same weights scaled by the child's length
				C.Set(i, j, C.At(i, j)+0.5*W[q]*el.lb.Eval(i, Xc[q])*el.lb.Eval(j, 2*Xc[q]-float64(c)))
			}
		}
	}
	var Minv utils.Matrix
	if Minv, err = M.Inverse(); err != nil {
		return
	}
	R = Minv.Mul(C)
	data := R.RawMatrix().Data
	for k, v := range data {
		if math.Abs(v) < utils.NODETOL {
			data[k] = 0
		}
	}
	return
}

// tensorize builds the child matrices as Kronecker products of the 1D child matrices, z outermost.
func (el *DGQElement) tensorize(m1D [2]utils.Matrix) (mats []utils.Matrix) {
	mats = make([]utils.Matrix, el.gi.ChildrenPerCell)
	for c := range mats {
		bits := el.gi.ChildBits(c)
		M := m1D[bits[0]]
		for k := 1; k < el.gi.Dim; k++ {
			M = m1D[bits[k]].Kronecker(M)
		}
		mats[c] = M.Copy()
	}
	return
}

func (el *DGQElement) UnitSupportPoint(i int) (x []float64) {
	n := el.N + 1
	x = make([]float64, el.gi.Dim)
	for k := range x {
		x[k] = el.lb.Nodes[i%n]
		i /= n
	}
	return
}
