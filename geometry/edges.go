package geometry

import (
	"fmt"
	"math"
)

// EdgeKey identifies a line by its two vertices regardless of their order, low vertex in the low
// 32 bits.
type EdgeKey uint64

func NewEdgeKey(verts [2]int) EdgeKey {
	lo, hi := min(verts[0], verts[1]), max(verts[0], verts[1])
	if lo < 0 || hi > math.MaxUint32 {
		panic(fmt.Errorf("vertices %v do not fit an edge key", verts))
	}
	return EdgeKey(uint64(hi)<<32 | uint64(lo))
}

// GetVertices returns the vertices, lowest first.
func (ek EdgeKey) GetVertices() [2]int {
	return [2]int{int(ek & math.MaxUint32), int(ek >> 32)}
}

// LineKeys returns the edge key of every line of the cell, indexed by line number.
func (gi Info) LineKeys() (keys []EdgeKey) {
	keys = make([]EdgeKey, gi.LinesPerCell)
	for l := range keys {
		keys[l] = NewEdgeKey(gi.LineVertices(l))
	}
	return
}

// FaceLineKeys returns the edge keys of the face's lines in face-local order, taken from the face's
// vertices numbered like a 2D cell.
func (gi Info) FaceLineKeys(face int) (keys []EdgeKey) {
	switch gi.Dim {
	case 2:
		return []EdgeKey{NewEdgeKey([2]int{gi.FaceVertex(face, 0), gi.FaceVertex(face, 1)})}
	case 3:
		keys = make([]EdgeKey, gi.LinesPerFace)
		for fl, fv := range lineVertices2D {
			keys[fl] = NewEdgeKey([2]int{gi.FaceVertex(face, fv[0]), gi.FaceVertex(face, fv[1])})
		}
	}
	return
}

// The cell line of every face line is the one with the same vertices.
func init() {
	var (
		gi   = infos[3]
		keys = gi.LineKeys()
	)
	for f := range faceLines3D {
		for fl, key := range gi.FaceLineKeys(f) {
			l := 0
			for l < len(keys) && keys[l] != key {
				l++
			}
			if l == len(keys) {
				panic(fmt.Errorf("face %d line %d with vertices %v is not a cell line", f, fl, key.GetVertices()))
			}
			faceLines3D[f][fl] = l
		}
	}
}
