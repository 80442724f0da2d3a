package geometry

import (
	"fmt"
)

/*
Info describes the reference hypercube [0,1]^dim and its refinement into 2^dim children.

Numbering conventions (all lexicographic, x fastest):

	vertices: bit k of the vertex number is the k-th coordinate
	2D lines: 0: x=0 (v0->v2), 1: x=1 (v1->v3), 2: y=0 (v0->v1), 3: y=1 (v2->v3)
	3D lines: 0-3 on z=0 as in 2D, 4-7 on z=1, 8-11 parallel to z starting at v0..v3
	3D faces: 0: x=0, 1: x=1, 2: y=0, 3: y=1, 4: z=0, 5: z=1
	children: bit k of the child number selects the upper half in coordinate k

Every line points in the positive direction of its coordinate axis. A face uses the two remaining
axes in increasing order as its (u,v) frame, so its vertices and lines are numbered like a 2D cell.
*/
type Info struct {
	Dim             int
	VerticesPerCell int
	LinesPerCell    int
	QuadsPerCell    int
	HexesPerCell    int
	FacesPerCell    int
	VerticesPerFace int
	LinesPerFace    int
	QuadsPerFace    int
	ChildrenPerCell int
	ChildrenPerFace int
}

var infos = [4]Info{
	{},
	{
		Dim: 1, VerticesPerCell: 2, LinesPerCell: 1, FacesPerCell: 2,
		VerticesPerFace: 1, ChildrenPerCell: 2, ChildrenPerFace: 1,
	},
	{
		Dim: 2, VerticesPerCell: 4, LinesPerCell: 4, QuadsPerCell: 1, FacesPerCell: 4,
		VerticesPerFace: 2, LinesPerFace: 1, ChildrenPerCell: 4, ChildrenPerFace: 2,
	},
	{
		Dim: 3, VerticesPerCell: 8, LinesPerCell: 12, QuadsPerCell: 6, HexesPerCell: 1, FacesPerCell: 6,
		VerticesPerFace: 4, LinesPerFace: 4, QuadsPerFace: 1, ChildrenPerCell: 8, ChildrenPerFace: 4,
	},
}

func NewInfo(dim int) (gi Info, err error) {
	if dim < 1 || dim > 3 {
		err = fmt.Errorf("unsupported dimension %d, must be 1, 2 or 3", dim)
		return
	}
	gi = infos[dim]
	return
}

// MustInfo is NewInfo for dimensions already validated by the caller.
func MustInfo(dim int) Info {
	gi, err := NewInfo(dim)
	if err != nil {
		panic(err)
	}
	return gi
}

// ObjectsPerCell returns the number of vertices, lines, quads and hexes in the cell, indexed by
// object dimension.
func (gi Info) ObjectsPerCell() (n [4]int) {
	return [4]int{gi.VerticesPerCell, gi.LinesPerCell, gi.QuadsPerCell, gi.HexesPerCell}
}

// ObjectsPerFace is ObjectsPerCell for the (dim-1) dimensional face.
func (gi Info) ObjectsPerFace() (n [4]int) {
	return [4]int{gi.VerticesPerFace, gi.LinesPerFace, gi.QuadsPerFace, 0}
}

var (
	lineVertices2D = [4][2]int{{0, 2}, {1, 3}, {0, 1}, {2, 3}}
	lineVertices3D = [12][2]int{
		{0, 2}, {1, 3}, {0, 1}, {2, 3},
		{4, 6}, {5, 7}, {4, 5}, {6, 7},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	faceVertices3D = [6][4]int{
		{0, 2, 4, 6}, {1, 3, 5, 7},
		{0, 1, 4, 5}, {2, 3, 6, 7},
		{0, 1, 2, 3}, {4, 5, 6, 7},
	}
	// faceLines3D is filled in by matching edge keys, see edges.go
	faceLines3D [6][4]int
)

// LineVertices returns the start and end vertex of a line.
func (gi Info) LineVertices(l int) (verts [2]int) {
	gi.checkRange("line", l, gi.LinesPerCell)
	switch gi.Dim {
	case 1:
		verts = [2]int{0, 1}
	case 2:
		verts = lineVertices2D[l]
	case 3:
		verts = lineVertices3D[l]
	}
	return
}

// LineAxis is the coordinate direction a line points along.
func (gi Info) LineAxis(l int) (axis int) {
	verts := gi.LineVertices(l)
	diff := verts[0] ^ verts[1]
	for diff > 1 {
		diff >>= 1
		axis++
	}
	return
}

// FaceVertex maps a face-local vertex to the cell vertex.
func (gi Info) FaceVertex(face, fv int) int {
	gi.checkRange("face", face, gi.FacesPerCell)
	gi.checkRange("face vertex", fv, gi.VerticesPerFace)
	switch gi.Dim {
	case 1:
		return face
	case 2:
		return lineVertices2D[face][fv]
	default:
		return faceVertices3D[face][fv]
	}
}

// FaceLine maps a face-local line to the cell line. Only meaningful in 3D; in 2D the face is the
// line itself.
func (gi Info) FaceLine(face, fl int) int {
	gi.checkRange("face", face, gi.FacesPerCell)
	switch gi.Dim {
	case 2:
		gi.checkRange("face line", fl, 1)
		return face
	case 3:
		gi.checkRange("face line", fl, gi.LinesPerFace)
		return faceLines3D[face][fl]
	}
	panic(fmt.Errorf("faces have no lines in %d dimensions", gi.Dim))
}

// FaceAxes returns the normal axis of a face and its in-face (u,v) axes. Unused axes are -1.
func (gi Info) FaceAxes(face int) (normal int, tangent [2]int) {
	gi.checkRange("face", face, gi.FacesPerCell)
	normal = face / 2
	tangent = [2]int{-1, -1}
	var n int
	for k := 0; k < gi.Dim; k++ {
		if k != normal {
			tangent[n] = k
			n++
		}
	}
	return
}

// FaceToCellPoint maps a point in the face frame onto the cell.
func (gi Info) FaceToCellPoint(face int, xi []float64) (x []float64) {
	normal, tangent := gi.FaceAxes(face)
	x = make([]float64, gi.Dim)
	x[normal] = float64(face % 2)
	for k := 0; k < gi.Dim-1; k++ {
		x[tangent[k]] = xi[k]
	}
	return
}

// ChildBits returns which half of the parent the child occupies in each coordinate.
func (gi Info) ChildBits(child int) (bits []int) {
	gi.checkRange("child", child, gi.ChildrenPerCell)
	bits = make([]int, gi.Dim)
	for k := range bits {
		bits[k] = (child >> k) & 1
	}
	return
}

// ChildToParentPoint maps a point of the child's unit cell into the parent's unit cell.
func (gi Info) ChildToParentPoint(child int, xi []float64) (x []float64) {
	bits := gi.ChildBits(child)
	x = make([]float64, gi.Dim)
	for k := range x {
		x[k] = 0.5 * (xi[k] + float64(bits[k]))
	}
	return
}

// FacesSharingLine returns the two faces of a 3D cell that contain the line.
func (gi Info) FacesSharingLine(l int) (faces [2]int) {
	if gi.Dim != 3 {
		panic(fmt.Errorf("lines are shared by two faces only in 3D, have dim = %d", gi.Dim))
	}
	gi.checkRange("line", l, gi.LinesPerCell)
	var n int
	for f := 0; f < gi.FacesPerCell; f++ {
		for fl := 0; fl < gi.LinesPerFace; fl++ {
			if faceLines3D[f][fl] == l {
				faces[n] = f
				n++
			}
		}
	}
	return
}

func (gi Info) checkRange(name string, i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Errorf("%s index %d out of range [0,%d) in %d dimensions", name, i, n, gi.Dim))
	}
}
