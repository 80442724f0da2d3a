package fe

import (
	"fmt"

	"github.com/notargets/gofe/geometry"
)

/*
ElementData is the element descriptor: how many degrees of freedom live on each geometric object of
the reference cell, and the offsets that follow from numbering them vertex-first, then lines, quads
and the hex interior.
*/
type ElementData struct {
	Dim           int
	DofsPerVertex int
	DofsPerLine   int
	DofsPerQuad   int
	DofsPerHex    int

	FirstLineIndex     int
	FirstQuadIndex     int
	FirstHexIndex      int
	FirstFaceLineIndex int
	FirstFaceQuadIndex int

	DofsPerFace int
	DofsPerCell int
	Components  int
	Degree      int
}

// NewElementData builds the descriptor from the per-object counts [vertex, line, quad, hex], which
// must have exactly dim+1 entries.
func NewElementData(dim int, dofsPerObject []int, components, degree int) (fd ElementData, err error) {
	var (
		gi geometry.Info
	)
	if gi, err = geometry.NewInfo(dim); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidElementData, err)
		return
	}
	if len(dofsPerObject) != dim+1 {
		err = fmt.Errorf("%w: need %d per-object dof counts in %d dimensions, have %d",
			ErrInvalidElementData, dim+1, dim, len(dofsPerObject))
		return
	}
	for k, n := range dofsPerObject {
		if n < 0 {
			err = fmt.Errorf("%w: negative dof count %d for objects of dimension %d",
				ErrInvalidElementData, n, k)
			return
		}
	}
	if components < 1 {
		err = fmt.Errorf("%w: need at least one vector component, have %d", ErrInvalidElementData, components)
		return
	}
	var counts [4]int
	copy(counts[:], dofsPerObject)
	fd = ElementData{
		Dim:           dim,
		DofsPerVertex: counts[0],
		DofsPerLine:   counts[1],
		DofsPerQuad:   counts[2],
		DofsPerHex:    counts[3],
		Components:    components,
		Degree:        degree,
	}
	fd.FirstLineIndex = gi.VerticesPerCell * fd.DofsPerVertex
	fd.FirstQuadIndex = fd.FirstLineIndex + gi.LinesPerCell*fd.DofsPerLine
	fd.FirstHexIndex = fd.FirstQuadIndex + gi.QuadsPerCell*fd.DofsPerQuad
	fd.DofsPerCell = fd.FirstHexIndex + gi.HexesPerCell*fd.DofsPerHex
	fd.FirstFaceLineIndex = gi.VerticesPerFace * fd.DofsPerVertex
	fd.FirstFaceQuadIndex = fd.FirstFaceLineIndex + gi.LinesPerFace*fd.DofsPerLine
	fd.DofsPerFace = fd.FirstFaceQuadIndex + gi.QuadsPerFace*fd.DofsPerQuad
	if fd.DofsPerCell < 1 {
		err = fmt.Errorf("%w: element has no degrees of freedom", ErrInvalidElementData)
		return
	}
	return
}

// DofsPerObject returns the counts [vertex, line, ...] up to the cell dimension.
func (fd ElementData) DofsPerObject() (counts []int) {
	all := [4]int{fd.DofsPerVertex, fd.DofsPerLine, fd.DofsPerQuad, fd.DofsPerHex}
	counts = make([]int, fd.Dim+1)
	copy(counts, all[:fd.Dim+1])
	return
}

// FirstObjectIndex is the first cell dof on objects of dimension k.
func (fd ElementData) FirstObjectIndex(k int) int {
	switch k {
	case 0:
		return 0
	case 1:
		return fd.FirstLineIndex
	case 2:
		return fd.FirstQuadIndex
	case 3:
		return fd.FirstHexIndex
	}
	panic(indexRangeError("object dimension", k, 4))
}

// FirstFaceObjectIndex is the first face dof on face objects of dimension k.
func (fd ElementData) FirstFaceObjectIndex(k int) int {
	switch k {
	case 0:
		return 0
	case 1:
		return fd.FirstFaceLineIndex
	case 2:
		return fd.FirstFaceQuadIndex
	}
	panic(indexRangeError("face object dimension", k, 3))
}

func (fd ElementData) Geometry() geometry.Info {
	return geometry.MustInfo(fd.Dim)
}

func (fd ElementData) String() string {
	return fmt.Sprintf("dim=%d dofs/object=%v dofs/face=%d dofs/cell=%d components=%d degree=%d",
		fd.Dim, fd.DofsPerObject(), fd.DofsPerFace, fd.DofsPerCell, fd.Components, fd.Degree)
}
