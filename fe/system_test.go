package fe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofe/utils"
)

func TestFESystemComposition(t *testing.T) {
	q := scalarQ1(t, 2)
	flux := fluxElement(t)
	sys, err := NewFESystem(PackInterleaved, BaseSpec{q, 2}, BaseSpec{flux, 1})
	require.NoError(t, err)
	assert.Equal(t, "FESystem<2>[Q1^2-Flux]", sys.Name())
	assert.Equal(t, PackInterleaved, sys.Packing())
	{ // Sums
		assert.Equal(t, 2*q.DofsPerCell()+flux.DofsPerCell(), sys.DofsPerCell())
		assert.Equal(t, 4, sys.NComponents())
		assert.Equal(t, []int{2, 1, 0}, sys.Data().DofsPerObject())
		assert.Equal(t, 2*q.Data().DofsPerFace+flux.Data().DofsPerFace, sys.Data().DofsPerFace)
		assert.Equal(t, 2, sys.NBaseElements())
		assert.Equal(t, 2, sys.ElementMultiplicity(0))
		assert.Equal(t, flux, sys.BaseElement(1))
	}
	{ // Vertex dofs of the two scalar instances come first, then one flux dof per line
		assert.Equal(t, BaseIndex{Base: 0, Instance: 1, Index: 2}, sys.SystemToBaseIndex(5))
		assert.Equal(t, BaseIndex{Base: 1, Instance: 0, Index: 3}, sys.SystemToBaseIndex(11))
		assert.False(t, sys.IsPrimitive())
		for i := 0; i < sys.DofsPerCell(); i++ {
			bi := sys.SystemToBaseIndex(i)
			base := sys.BaseElement(bi.Base)
			assert.Equal(t, base.IsPrimitiveShape(bi.Index), sys.IsPrimitiveShape(i))
			if !sys.IsPrimitiveShape(i) {
				assert.True(t, sys.NonzeroComponents(i).Equal(ComponentMask{false, false, true, true}))
				_, err = sys.SystemToComponentIndex(i)
				assert.ErrorIs(t, err, ErrShapeFunctionNotPrimitive)
				continue
			}
			ci, err := sys.SystemToComponentIndex(i)
			require.NoError(t, err)
			assert.Equal(t, ComponentIndex{Component: bi.Instance, Index: bi.Index}, ci)
			j, err := sys.ComponentToSystemIndex(ci.Component, ci.Index)
			require.NoError(t, err)
			assert.Equal(t, i, j)
		}
	}
	{ // Components
		assert.Equal(t, utils.Index{1, 3, 5, 7}, sys.ComponentDofs(1))
		assert.Equal(t, utils.Index{8, 9, 10, 11}, sys.ComponentDofs(3))
		assert.Equal(t, BaseComponent{Base: 0, Component: 0}, sys.ComponentToBase(1))
		assert.Equal(t, BaseComponent{Base: 1, Component: 1}, sys.ComponentToBase(3))
	}
	{ // Face dofs
		ci, err := sys.FaceSystemToComponentIndex(1)
		require.NoError(t, err)
		assert.Equal(t, ComponentIndex{Component: 1, Index: 0}, ci)
		_, err = sys.FaceSystemToComponentIndex(4)
		assert.ErrorIs(t, err, ErrShapeFunctionNotPrimitive)
		assert.Equal(t, BaseIndex{Base: 1, Instance: 0, Index: 0}, sys.FaceSystemToBaseIndex(4))
		// Face 1 is x=1 with vertices 1 and 3
		assert.Equal(t, 2*3+1, sys.FaceToCellIndex(3, 1))
		assert.Equal(t, 8+1, sys.FaceToCellIndex(4, 1))
	}
	{ // Flux has no prolongation, so neither does the composite
		assert.False(t, sys.ProlongationIsImplemented())
		_, err = sys.ProlongationMatrix(0)
		assert.ErrorIs(t, err, ErrEmbeddingVoid)
		_, err = sys.RestrictionMatrix(0)
		assert.ErrorIs(t, err, ErrProjectionVoid)
	}
	{ // Restriction additivity is inherited
		for i := 0; i < sys.DofsPerCell(); i++ {
			bi := sys.SystemToBaseIndex(i)
			assert.Equal(t, sys.BaseElement(bi.Base).RestrictionIsAdditive(bi.Index), sys.RestrictionIsAdditive(i))
		}
	}
}

func TestFESystemTwoScalars(t *testing.T) {
	q := scalarQ1(t, 2)
	sys, err := NewFESystem(PackInterleaved, BaseSpec{q, 1}, BaseSpec{q, 1})
	require.NoError(t, err)
	assert.Equal(t, BaseComponent{Base: 0, Component: 0}, sys.ComponentToBase(0))
	assert.Equal(t, BaseComponent{Base: 1, Component: 0}, sys.ComponentToBase(1))
	assert.Equal(t, "FESystem<2>[Q1-Q1]", sys.Name())
}

func TestFESystemPacking(t *testing.T) {
	q := scalarQ1(t, 2)
	inter, err := NewFESystem(PackInterleaved, BaseSpec{q, 2})
	require.NoError(t, err)
	blocked, err := NewFESystem(PackBlocked, BaseSpec{q, 2})
	require.NoError(t, err)
	assert.True(t, inter.EntityOrdered())
	assert.False(t, blocked.EntityOrdered())
	for i := 0; i < 8; i++ {
		assert.Equal(t, BaseIndex{Instance: i % 2, Index: i / 2}, inter.SystemToBaseIndex(i))
		assert.Equal(t, BaseIndex{Instance: i / 4, Index: i % 4}, blocked.SystemToBaseIndex(i))
		ci, err := blocked.SystemToComponentIndex(i)
		require.NoError(t, err)
		assert.Equal(t, ComponentIndex{Component: i / 4, Index: i % 4}, ci)
	}
	{ // Blocked faces go through the explicit face table
		assert.Equal(t, BaseIndex{Instance: 1, Index: 0}, blocked.FaceSystemToBaseIndex(2))
		ci, err := blocked.FaceSystemToComponentIndex(2)
		require.NoError(t, err)
		assert.Equal(t, ComponentIndex{Component: 1, Index: 0}, ci)
		assert.Equal(t, 4+3, blocked.FaceToCellIndex(3, 3))
		for f := 0; f < 4; f++ {
			for i := 0; i < 4; i++ {
				cell := blocked.FaceToCellIndex(i, f)
				assert.Equal(t, blocked.FaceSystemToBaseIndex(i).Instance, blocked.SystemToBaseIndex(cell).Instance)
			}
		}
	}
	{ // Transfer matrices are block diagonal
		for _, sys := range []*FESystem{inter, blocked} {
			P, err := sys.ProlongationMatrix(2)
			require.NoError(t, err)
			for i := 0; i < 8; i++ {
				for j := 0; j < 8; j++ {
					bi, bj := sys.SystemToBaseIndex(i), sys.SystemToBaseIndex(j)
					want := 0.0
					if bi.Instance == bj.Instance && bi.Index == bj.Index {
						want = 3
					}
					assert.Equal(t, want, P.At(i, j))
				}
			}
		}
	}
	{ // Constraints follow the entity layout in both packings
		want := utils.NewMatrix(2, 4, []float64{
			0.5, 0, 0.5, 0,
			0, 0.5, 0, 0.5,
		})
		for _, sys := range []*FESystem{inter, blocked} {
			assert.True(t, sys.ConstraintsAreImplemented())
			C, err := sys.Constraints()
			require.NoError(t, err)
			assert.True(t, C.Equal(want), "%s\n%v", sys.Packing(), C)
		}
	}
}

func TestFESystem3DConstraints(t *testing.T) {
	q := scalarQ1(t, 3)
	sys, err := NewFESystem(PackInterleaved, BaseSpec{q, 2})
	require.NoError(t, err)
	C, err := sys.Constraints()
	require.NoError(t, err)
	nr, nc := C.Dims()
	assert.Equal(t, 10, nr)
	assert.Equal(t, 8, nc)
	assert.Equal(t, []float64{0.25, 0, 0.25, 0, 0.25, 0, 0.25, 0}, C.Row(0))
	assert.Equal(t, []float64{0, 0.5, 0, 0, 0, 0.5, 0, 0}, C.Row(3))
	fd := sys.Data()
	assert.NoError(t, CheckConstraintConsistency(fd, C))
}

func TestFESystemNested(t *testing.T) {
	q := scalarQ1(t, 2)
	inner, err := NewFESystem(PackBlocked, BaseSpec{q, 2})
	require.NoError(t, err)
	outer, err := NewFESystem(PackBlocked, BaseSpec{inner, 1}, BaseSpec{q, 1})
	require.NoError(t, err)
	assert.Equal(t, "FESystem<2>[FESystem<2>[Q1^2]-Q1]", outer.Name())
	assert.Equal(t, 3, outer.NComponents())
	assert.Equal(t, BaseComponent{Base: 0, Component: 1}, outer.ComponentToBase(1))
	assert.Equal(t, BaseComponent{Base: 1, Component: 0}, outer.ComponentToBase(2))
	ci, err := outer.SystemToComponentIndex(5)
	require.NoError(t, err)
	assert.Equal(t, ComponentIndex{Component: 1, Index: 1}, ci)
	assert.True(t, outer.ProlongationIsImplemented())

	// A blocked composite cannot be interleaved into another one
	_, err = NewFESystem(PackInterleaved, BaseSpec{inner, 1})
	assert.ErrorIs(t, err, ErrInvalidElementData)
}

func TestFESystemConstraintsAllOrNothing(t *testing.T) {
	q := scalarQ1(t, 2)
	{ // A base with face dofs but no constraints leaves the composite without them
		fd, err := NewElementData(2, []int{1, 0, 0}, 1, 1)
		require.NoError(t, err)
		bare, err := NewFiniteElement(Definition{
			Name: "Bare", Data: fd,
			RestrictionIsAdditive: make([]bool, 4),
			NonzeroComponents:     []ComponentMask{{true}, {true}, {true}, {true}},
		})
		require.NoError(t, err)
		for _, packing := range []Packing{PackInterleaved, PackBlocked} {
			sys, err := NewFESystem(packing, BaseSpec{q, 1}, BaseSpec{bare, 1})
			require.NoError(t, err)
			assert.False(t, sys.ConstraintsAreImplemented())
			_, err = sys.Constraints()
			assert.ErrorIs(t, err, ErrConstraintsVoid)
		}
	}
	{ // A base without face dofs needs no constraints
		fd, err := NewElementData(2, []int{0, 0, 1}, 1, 0)
		require.NoError(t, err)
		dg, err := NewFiniteElement(Definition{
			Name: "DG0", Data: fd,
			RestrictionIsAdditive: []bool{true},
			NonzeroComponents:     []ComponentMask{{true}},
		})
		require.NoError(t, err)
		assert.True(t, dg.ConstraintsAreImplemented())
		sys, err := NewFESystem(PackInterleaved, BaseSpec{q, 1}, BaseSpec{dg, 1})
		require.NoError(t, err)
		assert.True(t, sys.ConstraintsAreImplemented())
		C, err := sys.Constraints()
		require.NoError(t, err)
		assert.True(t, C.Equal(utils.NewMatrix(1, 2, []float64{0.5, 0.5})))
	}
}

func TestFESystemErrors(t *testing.T) {
	q2, q3 := scalarQ1(t, 2), scalarQ1(t, 3)
	_, err := NewFESystem(PackInterleaved)
	assert.ErrorIs(t, err, ErrInvalidElementData)
	_, err = NewFESystem(PackInterleaved, BaseSpec{q2, 1}, BaseSpec{q3, 1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = NewFESystem(PackInterleaved, BaseSpec{q2, 0})
	assert.ErrorIs(t, err, ErrInvalidElementData)
	_, err = NewFESystem(PackInterleaved, BaseSpec{nil, 1})
	assert.ErrorIs(t, err, ErrInvalidElementData)
	_, err = NewFESystem(Packing(7), BaseSpec{q2, 1})
	assert.ErrorIs(t, err, ErrInvalidElementData)

	// The composite keeps its own list of bases
	bases := []BaseSpec{{q2, 1}, {fluxElement(t), 1}}
	sys, err := NewFESystem(PackBlocked, bases...)
	require.NoError(t, err)
	bases[0] = BaseSpec{fluxElement(t), 3}
	assert.Same(t, q2, sys.BaseElement(0))
	assert.Equal(t, 1, sys.ElementMultiplicity(0))

	p, err := ParsePacking("Blocked")
	require.NoError(t, err)
	assert.Equal(t, PackBlocked, p)
	p, err = ParsePacking("")
	require.NoError(t, err)
	assert.Equal(t, PackInterleaved, p)
	_, err = ParsePacking("striped")
	assert.ErrorIs(t, err, ErrInvalidElementData)
	assert.Equal(t, "blocked", PackBlocked.String())
}
