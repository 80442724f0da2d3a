package elements

import (
	"fmt"

	"github.com/notargets/gofe/basis"
	"github.com/notargets/gofe/fe"
	"github.com/notargets/gofe/geometry"
	"github.com/notargets/gofe/utils"
)

/*
QElement is the continuous tensor product Lagrange element of degree N with equidistant nodes.

Each dof is identified by its multi-index: node coordinates in units of 1/N. Dofs are entity
ordered; line dofs run in the direction of the line, quad interior dofs are lexicographic in the
face frame and hex interior dofs lexicographic in (x,y,z).
*/
type QElement struct {
	*fe.FiniteElement
	N     int
	Nodes [][]int
	lb    *basis.Lagrange1D
	gi    geometry.Info
}

func NewQElement(dim, N int) (el *QElement, err error) {
	if N < 1 {
		err = fmt.Errorf("%w: FE_Q needs degree >= 1, have %d", fe.ErrInvalidElementData, N)
		return
	}
	var gi geometry.Info
	if gi, err = geometry.NewInfo(dim); err != nil {
		err = fmt.Errorf("%w: %v", fe.ErrInvalidElementData, err)
		return
	}
	counts := make([]int, dim+1)
	for k := range counts {
		counts[k] = ipow(N-1, k)
	}
	var fd fe.ElementData
	if fd, err = fe.NewElementData(dim, counts, 1, N); err != nil {
		return
	}
	el = &QElement{
		N:     N,
		Nodes: qNodes(gi, N),
		lb:    basis.NewLagrange1D(N),
		gi:    gi,
	}
	def := fe.Definition{
		Name:                  fmt.Sprintf("FE_Q<%d>(%d)", dim, N),
		Data:                  fd,
		RestrictionIsAdditive: make([]bool, fd.DofsPerCell),
		NonzeroComponents:     scalarMasks(fd.DofsPerCell),
		Prolongation:          el.prolongation(),
		Restriction:           el.restriction(),
		InterfaceConstraints:  el.interfaceConstraints(fd),
	}
	if el.FiniteElement, err = fe.NewFiniteElement(def); err != nil {
		return nil, err
	}
	return
}

// qNodes enumerates the multi-indices of the nodes in dof order.
func qNodes(gi geometry.Info, N int) (nodes [][]int) {
	vertexNode := func(v int) (idx []int) {
		idx = make([]int, gi.Dim)
		for k := range idx {
			idx[k] = ((v >> k) & 1) * N
		}
		return
	}
	for v := 0; v < gi.VerticesPerCell; v++ {
		nodes = append(nodes, vertexNode(v))
	}
	for l := 0; l < gi.LinesPerCell; l++ {
		axis := gi.LineAxis(l)
		for j := 1; j < N; j++ {
			idx := vertexNode(gi.LineVertices(l)[0])
			idx[axis] = j
			nodes = append(nodes, idx)
		}
	}
	switch gi.Dim {
	case 2:
		for j := 1; j < N; j++ {
			for i := 1; i < N; i++ {
				nodes = append(nodes, []int{i, j})
			}
		}
	case 3:
		for f := 0; f < gi.FacesPerCell; f++ {
			normal, tangent := gi.FaceAxes(f)
			for j := 1; j < N; j++ {
				for i := 1; i < N; i++ {
					idx := make([]int, 3)
					idx[normal] = (f % 2) * N
					idx[tangent[0]], idx[tangent[1]] = i, j
					nodes = append(nodes, idx)
				}
			}
		}
		for k := 1; k < N; k++ {
			for j := 1; j < N; j++ {
				for i := 1; i < N; i++ {
					nodes = append(nodes, []int{i, j, k})
				}
			}
		}
	}
	return
}

// prolongation interpolates the coarse basis at the child nodes, P_c[fine][coarse].
func (el *QElement) prolongation() (P []utils.Matrix) {
	var (
		n = len(el.Nodes)
		x = make([]float64, el.gi.Dim)
	)
	P = make([]utils.Matrix, el.gi.ChildrenPerCell)
	for c := range P {
		bits := el.gi.ChildBits(c)
		P[c] = utils.NewMatrix(n, n)
		for f, idx := range el.Nodes {
			for k := range x {
				x[k] = basis.Rational(idx[k]+el.N*bits[k], 2*el.N)
			}
			for j, cIdx := range el.Nodes {
				P[c].Set(f, j, el.lb.TensorEval(cIdx, x))
			}
		}
	}
	return
}

// restriction injects the value of the fine dof sitting on each coarse node, taken from the first
// child that contains the node.
func (el *QElement) restriction() (R []utils.Matrix) {
	var (
		n     = len(el.Nodes)
		index = el.nodeIndex()
	)
	R = make([]utils.Matrix, el.gi.ChildrenPerCell)
	for c := range R {
		R[c] = utils.NewMatrix(n, n)
	}
	for i, idx := range el.Nodes {
		for c := range R {
			bits := el.gi.ChildBits(c)
			fine := make([]int, el.gi.Dim)
			inside := true
			for k := range fine {
				fine[k] = 2*idx[k] - el.N*bits[k]
				if fine[k] < 0 || fine[k] > el.N {
					inside = false
					break
				}
			}
			if inside {
				R[c].Set(i, index[nodeKey(fine)], 1)
				break
			}
		}
	}
	return
}

func (el *QElement) nodeIndex() (index map[string]int) {
	index = make(map[string]int, len(el.Nodes))
	for i, idx := range el.Nodes {
		index[nodeKey(idx)] = i
	}
	return
}

func nodeKey(idx []int) string { return fmt.Sprint(idx) }

/*
interfaceConstraints evaluates the coarse face basis at the nodes of the refined face. Positions are
numerators over 2N in the face frame.
*/
func (el *QElement) interfaceConstraints(fd fe.ElementData) (C utils.Matrix) {
	var (
		N    = el.N
		rows [][2]int
		cols [][2]int
	)
	switch el.gi.Dim {
	case 1:
		return
	case 2:
		rows = append(rows, [2]int{N, 0})
		for h := 0; h < 2; h++ {
			for k := 1; k < N; k++ {
				rows = append(rows, [2]int{h*N + k, 0})
			}
		}
		cols = append(cols, [2]int{0, 0}, [2]int{N, 0})
		for j := 1; j < N; j++ {
			cols = append(cols, [2]int{j, 0})
		}
	case 3:
		rows = append(rows, [2]int{N, N},
			[2]int{0, N}, [2]int{2 * N, N}, [2]int{N, 0}, [2]int{N, 2 * N})
		// interior lines: below, above, left, right of the center
		for k := 1; k < N; k++ {
			rows = append(rows, [2]int{N, k})
		}
		for k := 1; k < N; k++ {
			rows = append(rows, [2]int{N, N + k})
		}
		for k := 1; k < N; k++ {
			rows = append(rows, [2]int{k, N})
		}
		for k := 1; k < N; k++ {
			rows = append(rows, [2]int{N + k, N})
		}
		// half-lines of the four face lines, start side first
		for l := 0; l < 4; l++ {
			for h := 0; h < 2; h++ {
				for k := 1; k < N; k++ {
					t := h*N + k
					switch l {
					case 0:
						rows = append(rows, [2]int{0, t})
					case 1:
						rows = append(rows, [2]int{2 * N, t})
					case 2:
						rows = append(rows, [2]int{t, 0})
					case 3:
						rows = append(rows, [2]int{t, 2 * N})
					}
				}
			}
		}
		for c := 0; c < 4; c++ {
			cu, cv := c&1, c>>1
			for j := 1; j < N; j++ {
				for i := 1; i < N; i++ {
					rows = append(rows, [2]int{cu*N + i, cv*N + j})
				}
			}
		}
		// coarse columns in units of 1/N
		for fv := 0; fv < 4; fv++ {
			cols = append(cols, [2]int{(fv & 1) * N, (fv >> 1) * N})
		}
		for l := 0; l < 4; l++ {
			for j := 1; j < N; j++ {
				switch l {
				case 0:
					cols = append(cols, [2]int{0, j})
				case 1:
					cols = append(cols, [2]int{N, j})
				case 2:
					cols = append(cols, [2]int{j, 0})
				case 3:
					cols = append(cols, [2]int{j, N})
				}
			}
		}
		for j := 1; j < N; j++ {
			for i := 1; i < N; i++ {
				cols = append(cols, [2]int{i, j})
			}
		}
	}
	var (
		m, n  = fe.InterfaceConstraintsSize(fd)
		faceD = el.gi.Dim - 1
		x     = make([]float64, faceD)
	)
	if len(rows) != m || len(cols) != n {
		panic(fmt.Errorf("FE_Q constraint layout is %dx%d, need %dx%d", len(rows), len(cols), m, n))
	}
	C = utils.NewMatrix(m, n)
	for i, row := range rows {
		for k := range x {
			x[k] = basis.Rational(row[k], 2*N)
		}
		for j, col := range cols {
			C.Set(i, j, el.lb.TensorEval(col[:faceD], x))
		}
	}
	return
}

func (el *QElement) UnitSupportPoint(i int) (x []float64) {
	x = make([]float64, el.gi.Dim)
	for k, m := range el.Nodes[i] {
		x[k] = basis.Rational(m, el.N)
	}
	return
}

/*
HPVertexDofIdentities pairs up the vertex dofs of two Lagrange elements that may be unified when
they meet. Only other QElements share dofs with a QElement.
*/
func (el *QElement) HPVertexDofIdentities(other fe.Element) (pairs [][2]int) {
	if _, ok := other.(*QElement); ok {
		pairs = [][2]int{{0, 0}}
	}
	return
}

// HPLineDofIdentities pairs line interior dofs that sit on the same point of a shared line.
func (el *QElement) HPLineDofIdentities(other fe.Element) (pairs [][2]int) {
	q, ok := other.(*QElement)
	if !ok {
		return
	}
	for i := 1; i < el.N; i++ {
		for j := 1; j < q.N; j++ {
			if i*q.N == j*el.N {
				pairs = append(pairs, [2]int{i - 1, j - 1})
			}
		}
	}
	return
}

// HPQuadDofIdentities pairs face interior dofs that sit on the same point of a shared quad.
func (el *QElement) HPQuadDofIdentities(other fe.Element) (pairs [][2]int) {
	q, ok := other.(*QElement)
	if !ok || el.gi.Dim != 3 {
		return
	}
	lines := el.HPLineDofIdentities(q)
	for _, pj := range lines {
		for _, pi := range lines {
			pairs = append(pairs, [2]int{pj[0]*(el.N-1) + pi[0], pj[1]*(q.N-1) + pi[1]})
		}
	}
	return
}

func scalarMasks(n int) (masks []fe.ComponentMask) {
	masks = make([]fe.ComponentMask, n)
	for i := range masks {
		masks[i] = fe.ComponentMask{true}
	}
	return
}

func ipow(base, exp int) (r int) {
	r = 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return
}
