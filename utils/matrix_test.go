package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	// Empty matrices
	{
		var E Matrix
		nr, nc := E.Dims()
		assert.Equal(t, 0, nr)
		assert.Equal(t, 0, nc)
		assert.True(t, E.IsEmpty())
		assert.True(t, E.Copy().IsEmpty())
		assert.True(t, E.Equal(Matrix{}))
		assert.False(t, E.Equal(NewIdentity(1)))
		assert.Equal(t, "[]", E.String())
	}
	// Read only
	{
		M := NewIdentity(2)
		M.SetReadOnly("M")
		assert.True(t, M.IsReadOnly())
		assert.Equal(t, "M", M.Name())
		assert.Panics(t, func() { M.Set(0, 1, 2) })
		assert.Panics(t, func() { M.Scale(2) })
		C := M.Copy()
		assert.False(t, C.IsReadOnly())
		C.Set(0, 1, 2)
		assert.Equal(t, 0., M.At(0, 1))
	}
	// Kronecker, Mul, Scale
	{
		A := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		I := NewIdentity(2)
		K := I.Kronecker(A)
		r, c := K.Dims()
		assert.Equal(t, 4, r)
		assert.Equal(t, 4, c)
		assert.Equal(t, 4., K.At(3, 3))
		assert.Equal(t, 0., K.At(0, 2))
		assert.Equal(t, 3., K.At(1, 0))
		assert.True(t, A.Mul(I).Equal(A))
		assert.Equal(t, []float64{3, 4}, A.Row(1))
		A.Scale(0.5)
		assert.Equal(t, []float64{0.5, 1, 1.5, 2}, A.RawMatrix().Data)
	}
	// Inverse
	{
		A := NewMatrix(2, 2, []float64{
			4, 7,
			2, 6,
		})
		Ainv, err := A.Inverse()
		require.NoError(t, err)
		assert.True(t, A.Mul(Ainv).EqualApprox(NewIdentity(2), 1.e-12))
		_, err = NewMatrix(2, 2, []float64{1, 2, 2, 4}).Inverse()
		assert.Error(t, err)
		_, err = NewMatrix(2, 3).Inverse()
		assert.Error(t, err)
	}
	assert.Panics(t, func() { NewMatrix(2, 2, []float64{1}) })
}

func TestPartitionMap(t *testing.T) {
	getTotal := func(pm *PartitionMap) (total int) {
		for np := 0; np < pm.ParallelDegree; np++ {
			total += pm.GetBucketDimension(np)
		}
		return
	}
	assert.Equal(t, 287, getTotal(NewPartitionMap(32, 287)))
	assert.Equal(t, 3, getTotal(NewPartitionMap(8, 3)))
	assert.Equal(t, 7, NewPartitionMap(3, 7).GetBucketDimension(-1))
	for maxIndex := 10; maxIndex < 200; maxIndex++ {
		pm := NewPartitionMap(5, maxIndex)
		var next int
		for np := 0; np < pm.ParallelDegree; np++ {
			kMin, kMax := pm.GetBucketRange(np)
			assert.Equal(t, next, kMin)
			assert.LessOrEqual(t, kMax-kMin, maxIndex/5+1)
			assert.GreaterOrEqual(t, kMax-kMin, maxIndex/5)
			next = kMax
		}
		assert.Equal(t, maxIndex, next)
	}
	assert.Equal(t, 1, NewPartitionMap(0, 4).ParallelDegree)
}
