package basis

import "fmt"

/*
Lagrange1D is the nodal Lagrange basis of degree N on [0,1] with equidistant nodes x_k = k/N.
Degree zero has the single node 1/2.

Node coordinates are formed as a single rounded quotient of integers (see Rational), so a point
computed from a child cell and the same point computed on the parent compare bit-identical.
*/
type Lagrange1D struct {
	N     int
	Nodes []float64
}

func NewLagrange1D(N int) (lb *Lagrange1D) {
	if N < 0 {
		panic(fmt.Errorf("polynomial degree must be non-negative, have %d", N))
	}
	lb = &Lagrange1D{
		N:     N,
		Nodes: make([]float64, N+1),
	}
	if N == 0 {
		lb.Nodes[0] = 0.5
		return
	}
	for k := 0; k <= N; k++ {
		lb.Nodes[k] = Rational(k, N)
	}
	return
}

// Rational returns num/den rounded once.
func Rational(num, den int) float64 {
	return float64(num) / float64(den)
}

// Eval evaluates the j-th Lagrange polynomial at x.
func (lb *Lagrange1D) Eval(j int, x float64) (val float64) {
	if j < 0 || j > lb.N {
		panic(fmt.Errorf("basis index %d out of range [0,%d]", j, lb.N))
	}
	val = 1
	for m, xm := range lb.Nodes {
		if m == j {
			continue
		}
		val *= (x - xm) / (lb.Nodes[j] - xm)
	}
	return
}

// EvalAll returns every basis polynomial evaluated at x.
func (lb *Lagrange1D) EvalAll(x float64) (vals []float64) {
	vals = make([]float64, lb.N+1)
	for j := range vals {
		vals[j] = lb.Eval(j, x)
	}
	return
}

// TensorEval evaluates the tensor product basis function with 1D indices idx at the point x.
func (lb *Lagrange1D) TensorEval(idx []int, x []float64) (val float64) {
	val = 1
	for k := range idx {
		val *= lb.Eval(idx[k], x[k])
	}
	return
}
