package fe

import (
	"fmt"
	"strings"

	"github.com/notargets/gofe/geometry"
	"github.com/notargets/gofe/utils"
)

// Packing selects how the dofs of the bases are numbered inside a composite element.
type Packing int

const (
	// PackInterleaved numbers entity-major: per vertex, line, quad and hex, the dofs of every base
	// instance on that entity.
	PackInterleaved Packing = iota
	// PackBlocked numbers base-major: all dofs of base 0 instance 0, then instance 1, then base 1.
	PackBlocked
)

func (p Packing) String() string {
	switch p {
	case PackInterleaved:
		return "interleaved"
	case PackBlocked:
		return "blocked"
	}
	return fmt.Sprintf("Packing(%d)", int(p))
}

func ParsePacking(label string) (p Packing, err error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "interleaved":
		return PackInterleaved, nil
	case "blocked":
		return PackBlocked, nil
	}
	err = fmt.Errorf("%w: unknown packing %q, use interleaved or blocked", ErrInvalidElementData, label)
	return
}

// BaseSpec is one base element of a composite and how many copies of it the composite holds.
type BaseSpec struct {
	Element      Element
	Multiplicity int
}

// FESystem is a vector-valued element composed of copies of base elements.
type FESystem struct {
	*FiniteElement
	packing Packing
}

func (fs *FESystem) Packing() Packing { return fs.packing }

// block is one instance of one base element.
type block struct {
	el         Element
	base       int
	instance   int
	compOffset int
	cellOffset int
}

// blockDof is a composite dof expressed in its block.
type blockDof struct {
	block int
	index int
}

/*
NewFESystem builds the composite of the given bases. Every table, transfer matrix and the interface
constraints are derived from the bases, which must be fully constructed and of the same dimension.
*/
func NewFESystem(packing Packing, bases ...BaseSpec) (fs *FESystem, err error) {
	if len(bases) == 0 {
		err = fmt.Errorf("%w: a composite needs at least one base element", ErrInvalidElementData)
		return
	}
	if packing != PackInterleaved && packing != PackBlocked {
		err = fmt.Errorf("%w: unknown packing %v", ErrInvalidElementData, packing)
		return
	}
	var (
		dim       int
		blocks    []block
		names     = make([]string, len(bases))
		nComp     int
		degree    int
		cellCount int
	)
	for b, spec := range bases {
		if spec.Element == nil {
			err = fmt.Errorf("%w: base element %d is nil", ErrInvalidElementData, b)
			return
		}
		if spec.Multiplicity < 1 {
			err = fmt.Errorf("%w: base element %d (%s) has multiplicity %d",
				ErrInvalidElementData, b, spec.Element.Name(), spec.Multiplicity)
			return
		}
		bd := spec.Element.Data()
		if b == 0 {
			dim = bd.Dim
		} else if bd.Dim != dim {
			err = fmt.Errorf("%w: base element %d (%s) is %dD, base element 0 is %dD",
				ErrDimensionMismatch, b, spec.Element.Name(), bd.Dim, dim)
			return
		}
		if packing == PackInterleaved && !spec.Element.EntityOrdered() {
			err = fmt.Errorf("%w: base element %d (%s) is not entity ordered and cannot be interleaved",
				ErrInvalidElementData, b, spec.Element.Name())
			return
		}
		for inst := 0; inst < spec.Multiplicity; inst++ {
			blocks = append(blocks, block{
				el:         spec.Element,
				base:       b,
				instance:   inst,
				compOffset: nComp,
				cellOffset: cellCount,
			})
			nComp += bd.Components
			cellCount += bd.DofsPerCell
		}
		degree = max(degree, bd.Degree)
		names[b] = spec.Element.Name()
		if spec.Multiplicity > 1 {
			names[b] += fmt.Sprintf("^%d", spec.Multiplicity)
		}
	}
	counts := make([]int, dim+1)
	for _, blk := range blocks {
		for k, n := range blk.el.Data().DofsPerObject() {
			counts[k] += n
		}
	}
	var fd ElementData
	if fd, err = NewElementData(dim, counts, nComp, degree); err != nil {
		return
	}
	var (
		gi   = fd.Geometry()
		cell = cellLayout(gi, packing, blocks)
		face = faceLayout(gi, packing, blocks)
		def  = Definition{
			Name:                  fmt.Sprintf("FESystem<%d>[%s]", dim, strings.Join(names, "-")),
			Data:                  fd,
			RestrictionIsAdditive: make([]bool, fd.DofsPerCell),
			NonzeroComponents:     make([]ComponentMask, fd.DofsPerCell),
		}
	)
	for i, bd := range cell {
		blk := blocks[bd.block]
		def.RestrictionIsAdditive[i] = blk.el.RestrictionIsAdditive(bd.index)
		cm := make(ComponentMask, nComp)
		for c, sel := range blk.el.NonzeroComponents(bd.index) {
			cm[blk.compOffset+c] = sel
		}
		def.NonzeroComponents[i] = cm
	}
	if err = checkDefinition(def); err != nil {
		return
	}
	def.Restriction, err = composeTransfer(gi, cell, blocks,
		func(el Element) bool { return el.RestrictionIsImplemented() }, Element.RestrictionMatrix)
	if err != nil {
		return
	}
	def.Prolongation, err = composeTransfer(gi, cell, blocks,
		func(el Element) bool { return el.ProlongationIsImplemented() }, Element.ProlongationMatrix)
	if err != nil {
		return
	}
	if def.InterfaceConstraints, err = composeConstraints(fd, blocks); err != nil {
		return
	}
	var fe *FiniteElement
	if fe, err = newFiniteElement(def, systemTables(fd, packing, blocks, cell, face),
		append([]BaseSpec(nil), bases...)); err != nil {
		return
	}
	fs = &FESystem{FiniteElement: fe, packing: packing}
	return
}

func cellLayout(gi geometry.Info, packing Packing, blocks []block) (layout []blockDof) {
	if packing == PackBlocked {
		for b, blk := range blocks {
			for i := 0; i < blk.el.DofsPerCell(); i++ {
				layout = append(layout, blockDof{block: b, index: i})
			}
		}
		return
	}
	objects := gi.ObjectsPerCell()
	for k := 0; k <= gi.Dim; k++ {
		for o := 0; o < objects[k]; o++ {
			for b, blk := range blocks {
				bd := blk.el.Data()
				n := bd.DofsPerObject()[k]
				for d := 0; d < n; d++ {
					layout = append(layout, blockDof{block: b, index: bd.FirstObjectIndex(k) + o*n + d})
				}
			}
		}
	}
	return
}

func faceLayout(gi geometry.Info, packing Packing, blocks []block) (layout []blockDof) {
	if packing == PackBlocked {
		for b, blk := range blocks {
			for i := 0; i < blk.el.Data().DofsPerFace; i++ {
				layout = append(layout, blockDof{block: b, index: i})
			}
		}
		return
	}
	objects := gi.ObjectsPerFace()
	for k := 0; k < gi.Dim; k++ {
		for o := 0; o < objects[k]; o++ {
			for b, blk := range blocks {
				bd := blk.el.Data()
				n := bd.DofsPerObject()[k]
				for d := 0; d < n; d++ {
					layout = append(layout, blockDof{block: b, index: bd.FirstFaceObjectIndex(k) + o*n + d})
				}
			}
		}
	}
	return
}

func systemTables(fd ElementData, packing Packing, blocks []block, cell, face []blockDof) (t indexTables) {
	shift := func(blk block, ci ComponentIndex) ComponentIndex {
		return ComponentIndex{Component: blk.compOffset + ci.Component, Index: ci.Index}
	}
	t.systemToComponent = make([]ComponentIndex, len(cell))
	t.systemToBase = make([]BaseIndex, len(cell))
	for i, bd := range cell {
		blk := blocks[bd.block]
		t.systemToBase[i] = BaseIndex{Base: blk.base, Instance: blk.instance, Index: bd.index}
		if ci, err := blk.el.SystemToComponentIndex(bd.index); err == nil {
			t.systemToComponent[i] = shift(blk, ci)
		} else {
			t.systemToComponent[i] = invalidComponentIndex
		}
	}
	t.faceSystemToComponent = make([]ComponentIndex, len(face))
	t.faceSystemToBase = make([]BaseIndex, len(face))
	for i, bd := range face {
		blk := blocks[bd.block]
		t.faceSystemToBase[i] = BaseIndex{Base: blk.base, Instance: blk.instance, Index: bd.index}
		if ci, err := blk.el.FaceSystemToComponentIndex(bd.index); err == nil {
			t.faceSystemToComponent[i] = shift(blk, ci)
		} else {
			t.faceSystemToComponent[i] = invalidComponentIndex
		}
	}
	t.componentToBase = make([]BaseComponent, 0, fd.Components)
	for _, blk := range blocks {
		for c := 0; c < blk.el.NComponents(); c++ {
			t.componentToBase = append(t.componentToBase, BaseComponent{Base: blk.base, Component: c})
		}
	}
	if packing == PackBlocked {
		t.faceToCell = make([]int, len(face))
		for i, bd := range face {
			blk := blocks[bd.block]
			t.faceToCell[i] = blk.cellOffset + blk.el.FaceToCellIndex(bd.index, 0)
		}
		t.faceToCellMap = func(faceDof, f int) int {
			bd := face[faceDof]
			blk := blocks[bd.block]
			return blk.cellOffset + blk.el.FaceToCellIndex(bd.index, f)
		}
	}
	return
}

// composeTransfer builds block diagonal child matrices, or none if any base lacks them.
func composeTransfer(gi geometry.Info, cell []blockDof, blocks []block,
	implemented func(Element) bool, get func(Element, int) (utils.Matrix, error)) (mats []utils.Matrix, err error) {
	for _, blk := range blocks {
		if !implemented(blk.el) {
			return
		}
	}
	var (
		n       = len(cell)
		inBlock = make([][]int, len(blocks))
	)
	for i, bd := range cell {
		inBlock[bd.block] = append(inBlock[bd.block], i)
	}
	mats = make([]utils.Matrix, gi.ChildrenPerCell)
	for c := range mats {
		M := utils.NewMatrix(n, n)
		for b, blk := range blocks {
			var B utils.Matrix
			if B, err = get(blk.el, c); err != nil {
				return nil, err
			}
			for _, i := range inBlock[b] {
				for _, j := range inBlock[b] {
					M.Set(i, j, B.At(cell[i].index, cell[j].index))
				}
			}
		}
		mats[c] = M
	}
	return
}

// decodeGroups expresses every row (or column) of a composite constraint layout in its block.
func decodeGroups(groups []int, blocks []block) (layout []blockDof) {
	offsets := make([][]int, len(blocks))
	for b, blk := range blocks {
		offsets[b] = groupOffsets(groups, blk.el.Data().DofsPerObject())
	}
	for g, kind := range groups {
		for b, blk := range blocks {
			n := blk.el.Data().DofsPerObject()[kind]
			for d := 0; d < n; d++ {
				layout = append(layout, blockDof{block: b, index: offsets[b][g] + d})
			}
		}
	}
	return
}

func composeConstraints(fd ElementData, blocks []block) (C utils.Matrix, err error) {
	m, n := InterfaceConstraintsSize(fd)
	if m*n == 0 {
		return
	}
	baseC := make([]utils.Matrix, len(blocks))
	for b, blk := range blocks {
		if blk.el.Data().DofsPerFace == 0 {
			continue
		}
		if !blk.el.ConstraintsAreImplemented() {
			return
		}
		if baseC[b], err = blk.el.Constraints(); err != nil {
			return
		}
	}
	var (
		rows = decodeGroups(ConstraintRowGroups(fd.Dim), blocks)
		cols = decodeGroups(ConstraintColumnGroups(fd.Dim), blocks)
	)
	C = utils.NewMatrix(m, n)
	for i, rd := range rows {
		for j, cd := range cols {
			if rd.block == cd.block {
				C.Set(i, j, baseC[rd.block].At(rd.index, cd.index))
			}
		}
	}
	return
}
