package basis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

/*
GaussLegendre returns the Np point Gauss-Legendre rule mapped onto [a,b]. The nodes are the
eigenvalues of the symmetric Jacobi matrix of the Legendre recurrence (Golub-Welsch), the weights
are the squared first components of its eigenvectors.
*/
func GaussLegendre(Np int, a, b float64) (X, W []float64) {
	if Np < 1 {
		panic(fmt.Errorf("quadrature needs at least one point, have %d", Np))
	}
	var (
		JJ   = mat.NewSymDense(Np, nil)
		half = 0.5 * (b - a)
		mid  = 0.5 * (b + a)
	)
	// Off diagonal of the Legendre Jacobi matrix: i / sqrt(4i^2-1)
	for i := 1; i < Np; i++ {
		ip := float64(i)
		JJ.SetSym(i-1, i, ip/math.Sqrt(4*ip*ip-1))
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	var (
		x   = eig.Values(nil)
		VVr = mat.NewDense(Np, Np, nil)
	)
	eig.VectorsTo(VVr)
	order := make([]int, Np)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return x[order[i]] < x[order[j]] })
	X, W = make([]float64, Np), make([]float64, Np)
	for i, o := range order {
		v := VVr.At(0, o)
		X[i] = mid + half*x[o]
		W[i] = 2 * v * v * half
	}
	return
}
