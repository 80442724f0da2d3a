package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	{ // Counts
		_, err := NewInfo(0)
		assert.Error(t, err)
		_, err = NewInfo(4)
		assert.Error(t, err)
		for dim := 1; dim <= 3; dim++ {
			gi, err := NewInfo(dim)
			require.NoError(t, err)
			assert.Equal(t, 1<<dim, gi.VerticesPerCell)
			assert.Equal(t, 1<<dim, gi.ChildrenPerCell)
			assert.Equal(t, 2*dim, gi.FacesPerCell)
			assert.Equal(t, 1<<(dim-1), gi.VerticesPerFace)
			assert.Equal(t, 1<<(dim-1), gi.ChildrenPerFace)
		}
		assert.Equal(t, 12, MustInfo(3).LinesPerCell)
		assert.Equal(t, [4]int{8, 12, 6, 1}, MustInfo(3).ObjectsPerCell())
		assert.Equal(t, [4]int{4, 4, 1, 0}, MustInfo(3).ObjectsPerFace())
	}
	{ // Lines point along +axis between vertices differing in one bit
		for dim := 2; dim <= 3; dim++ {
			gi := MustInfo(dim)
			for l := 0; l < gi.LinesPerCell; l++ {
				verts := gi.LineVertices(l)
				axis := gi.LineAxis(l)
				assert.Equal(t, 1<<axis, verts[1]-verts[0])
			}
		}
		assert.Equal(t, 2, MustInfo(3).LineAxis(8))
		assert.Equal(t, 1, MustInfo(2).LineAxis(0))
	}
	{ // Face lines agree with face vertices
		gi := MustInfo(3)
		keys := gi.LineKeys()
		for f := 0; f < gi.FacesPerCell; f++ {
			for fl, key := range gi.FaceLineKeys(f) {
				assert.Equal(t, keys[gi.FaceLine(f, fl)], key, "face %d line %d", f, fl)
			}
		}
		want := [6][4]int{
			{8, 10, 0, 4}, {9, 11, 1, 5},
			{8, 9, 2, 6}, {10, 11, 3, 7},
			{0, 1, 2, 3}, {4, 5, 6, 7},
		}
		for f := range want {
			for fl := range want[f] {
				assert.Equal(t, want[f][fl], gi.FaceLine(f, fl))
			}
		}
		gi2 := MustInfo(2)
		keys2 := gi2.LineKeys()
		for f := 0; f < gi2.FacesPerCell; f++ {
			assert.Equal(t, keys2[f], gi2.FaceLineKeys(f)[0])
		}
	}
	{ // Face frames
		gi := MustInfo(3)
		normal, tangent := gi.FaceAxes(2)
		assert.Equal(t, 1, normal)
		assert.Equal(t, [2]int{0, 2}, tangent)
		assert.Equal(t, []float64{0.25, 1, 0.75}, gi.FaceToCellPoint(3, []float64{0.25, 0.75}))
		for f := 0; f < gi.FacesPerCell; f++ {
			for fv := 0; fv < gi.VerticesPerFace; fv++ {
				xi := []float64{float64(fv & 1), float64((fv >> 1) & 1)}
				v := gi.FaceVertex(f, fv)
				assert.Equal(t, []float64{float64(v & 1), float64((v >> 1) & 1), float64((v >> 2) & 1)},
					gi.FaceToCellPoint(f, xi))
			}
		}
	}
	{ // Children
		gi := MustInfo(2)
		assert.Equal(t, []int{1, 0}, gi.ChildBits(1))
		assert.Equal(t, []float64{0.75, 0.5}, gi.ChildToParentPoint(1, []float64{0.5, 1}))
		assert.Panics(t, func() { gi.ChildBits(4) })
	}
	{ // Shared lines
		gi := MustInfo(3)
		assert.Equal(t, [2]int{0, 2}, gi.FacesSharingLine(8))
		assert.Equal(t, [2]int{3, 5}, gi.FacesSharingLine(7))
		assert.Panics(t, func() { MustInfo(2).FacesSharingLine(0) })
	}
}

func TestEdgeKey(t *testing.T) {
	ek := NewEdgeKey([2]int{4, 0})
	assert.Equal(t, NewEdgeKey([2]int{0, 4}), ek)
	assert.Equal(t, [2]int{0, 4}, ek.GetVertices())
	assert.NotEqual(t, NewEdgeKey([2]int{0, 5}), ek)
	assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
}
