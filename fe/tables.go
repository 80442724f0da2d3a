package fe

import (
	"fmt"
)

// ComponentIndex places a primitive shape function: its vector component and its index among the
// shape functions of that component.
type ComponentIndex struct {
	Component int
	Index     int
}

// invalidComponentIndex marks a non-primitive shape function.
var invalidComponentIndex = ComponentIndex{Component: -1, Index: -1}

func (ci ComponentIndex) Valid() bool { return ci.Component >= 0 && ci.Index >= 0 }

// BaseIndex places a shape function of a composite in one instance of one of its base elements.
type BaseIndex struct {
	Base     int
	Instance int
	Index    int
}

// BaseComponent names the base element a composite component comes from and the component within
// that base.
type BaseComponent struct {
	Base      int
	Component int
}

type indexTables struct {
	systemToComponent     []ComponentIndex
	faceSystemToComponent []ComponentIndex
	systemToBase          []BaseIndex
	faceSystemToBase      []BaseIndex
	componentToBase       []BaseComponent
	// face dof -> cell dof for the primitivity check, nil selects the per-dimension strategy
	faceToCell []int
	// replaces the geometric face -> cell map for elements that are not entity ordered
	faceToCellMap func(faceDof, face int) int
}

func defaultTables(def Definition) (t indexTables) {
	var (
		fd      = def.Data
		counter = make([]int, fd.Components)
	)
	t.systemToComponent = make([]ComponentIndex, fd.DofsPerCell)
	t.systemToBase = make([]BaseIndex, fd.DofsPerCell)
	for i, cm := range def.NonzeroComponents {
		t.systemToBase[i] = BaseIndex{Index: i}
		if cm.Count() != 1 {
			t.systemToComponent[i] = invalidComponentIndex
			continue
		}
		c := cm.FirstSelected()
		t.systemToComponent[i] = ComponentIndex{Component: c, Index: counter[c]}
		counter[c]++
	}
	toCell := faceIndexStrategy[fd.Dim]
	for c := range counter {
		counter[c] = 0
	}
	t.faceSystemToComponent = make([]ComponentIndex, fd.DofsPerFace)
	t.faceSystemToBase = make([]BaseIndex, fd.DofsPerFace)
	for i := range t.faceSystemToComponent {
		t.faceSystemToBase[i] = BaseIndex{Index: i}
		cm := def.NonzeroComponents[toCell(fd, i)]
		if cm.Count() != 1 {
			t.faceSystemToComponent[i] = invalidComponentIndex
			continue
		}
		c := cm.FirstSelected()
		t.faceSystemToComponent[i] = ComponentIndex{Component: c, Index: counter[c]}
		counter[c]++
	}
	t.componentToBase = make([]BaseComponent, fd.Components)
	return
}

/*
faceIndexStrategy maps a face dof to a cell dof of the same entity kind, which is all the face
primitivity check needs. Selected once by dimension.
*/
var faceIndexStrategy = [4]func(fd ElementData, i int) int{
	nil,
	func(fd ElementData, i int) int { return i },
	func(fd ElementData, i int) int {
		gi := fd.Geometry()
		if i < gi.VerticesPerFace*fd.DofsPerVertex {
			return i
		}
		return gi.VerticesPerCell*fd.DofsPerVertex + (i - gi.VerticesPerFace*fd.DofsPerVertex)
	},
	func(fd ElementData, i int) int {
		var (
			gi        = fd.Geometry()
			faceVerts = gi.VerticesPerFace * fd.DofsPerVertex
			faceLines = gi.LinesPerFace * fd.DofsPerLine
			cellVerts = gi.VerticesPerCell * fd.DofsPerVertex
		)
		switch {
		case i < faceVerts:
			return i
		case i < faceVerts+faceLines:
			return cellVerts + (i - faceVerts)
		default:
			return cellVerts + gi.LinesPerCell*fd.DofsPerLine + (i - faceVerts - faceLines)
		}
	},
}

func (fe *FiniteElement) faceToCellForCheck(i int) int {
	if fe.tables.faceToCell != nil {
		return fe.tables.faceToCell[i]
	}
	return faceIndexStrategy[fe.data.Dim](fe.data, i)
}

func (fe *FiniteElement) SystemToComponentIndex(i int) (ci ComponentIndex, err error) {
	if i < 0 || i >= fe.data.DofsPerCell {
		err = indexRangeError("shape function", i, fe.data.DofsPerCell)
		return
	}
	if !fe.IsPrimitiveShape(i) {
		err = fmt.Errorf("%w: %s shape function %d is nonzero in components %v",
			ErrShapeFunctionNotPrimitive, fe.name, i, fe.nonzeroComponents[i])
		return
	}
	ci = fe.tables.systemToComponent[i]
	return
}

// ComponentToSystemIndex is the inverse of SystemToComponentIndex.
func (fe *FiniteElement) ComponentToSystemIndex(component, index int) (i int, err error) {
	want := ComponentIndex{Component: component, Index: index}
	if component >= 0 && component < fe.data.Components && index >= 0 {
		for i = range fe.tables.systemToComponent {
			if fe.tables.systemToComponent[i] == want {
				return
			}
		}
	}
	err = fmt.Errorf("%w: %s has no shape function with component %d and index %d",
		ErrComponentIndexInvalid, fe.name, component, index)
	return -1, err
}

func (fe *FiniteElement) FaceSystemToComponentIndex(i int) (ci ComponentIndex, err error) {
	if i < 0 || i >= fe.data.DofsPerFace {
		err = indexRangeError("face shape function", i, fe.data.DofsPerFace)
		return
	}
	if cell := fe.faceToCellForCheck(i); !fe.IsPrimitiveShape(cell) {
		err = fmt.Errorf("%w: %s face shape function %d (cell shape function %d) is not primitive",
			ErrShapeFunctionNotPrimitive, fe.name, i, cell)
		return
	}
	ci = fe.tables.faceSystemToComponent[i]
	return
}

func (fe *FiniteElement) SystemToBaseIndex(i int) BaseIndex {
	checkIndex("shape function", i, fe.data.DofsPerCell)
	return fe.tables.systemToBase[i]
}

func (fe *FiniteElement) FaceSystemToBaseIndex(i int) BaseIndex {
	checkIndex("face shape function", i, fe.data.DofsPerFace)
	return fe.tables.faceSystemToBase[i]
}

func (fe *FiniteElement) ComponentToBase(component int) BaseComponent {
	checkIndex("component", component, fe.data.Components)
	return fe.tables.componentToBase[component]
}

/*
FaceToCellIndex maps dof faceDof of face number face to the cell dof it is, in standard face
orientation.
*/
func (fe *FiniteElement) FaceToCellIndex(faceDof, face int) int {
	checkIndex("face shape function", faceDof, fe.data.DofsPerFace)
	checkIndex("face", face, fe.geom.FacesPerCell)
	if fe.tables.faceToCellMap != nil {
		return fe.tables.faceToCellMap(faceDof, face)
	}
	var (
		fd = fe.data
		gi = fe.geom
	)
	if faceDof < fd.FirstFaceLineIndex {
		fv, d := faceDof/fd.DofsPerVertex, faceDof%fd.DofsPerVertex
		return gi.FaceVertex(face, fv)*fd.DofsPerVertex + d
	}
	if faceDof < fd.FirstFaceQuadIndex {
		off := faceDof - fd.FirstFaceLineIndex
		fl, d := off/fd.DofsPerLine, off%fd.DofsPerLine
		return fd.FirstLineIndex + gi.FaceLine(face, fl)*fd.DofsPerLine + d
	}
	return fd.FirstQuadIndex + face*fd.DofsPerQuad + (faceDof - fd.FirstFaceQuadIndex)
}

// HasSupportOnFace is true when shape function i is one of the dofs of the face.
func (fe *FiniteElement) HasSupportOnFace(i, face int) bool {
	checkIndex("shape function", i, fe.data.DofsPerCell)
	checkIndex("face", face, fe.geom.FacesPerCell)
	return fe.supportOnFace[face][i]
}
