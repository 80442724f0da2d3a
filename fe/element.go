package fe

import (
	"fmt"

	"github.com/notargets/gofe/geometry"
	"github.com/notargets/gofe/utils"
)

// Element is the read-only query surface shared by every finite element, simple or composite.
type Element interface {
	Name() string
	Data() ElementData
	DofsPerCell() int
	NComponents() int
	// EntityOrdered is true when cell dofs are numbered vertex-first, then lines, quads and the hex
	EntityOrdered() bool

	NBaseElements() int
	BaseElement(b int) Element
	ElementMultiplicity(b int) int

	NonzeroComponents(i int) ComponentMask
	NNonzeroComponents(i int) int
	IsPrimitiveShape(i int) bool
	IsPrimitive() bool

	SystemToComponentIndex(i int) (ComponentIndex, error)
	ComponentToSystemIndex(component, index int) (int, error)
	FaceSystemToComponentIndex(i int) (ComponentIndex, error)
	SystemToBaseIndex(i int) BaseIndex
	FaceSystemToBaseIndex(i int) BaseIndex
	ComponentToBase(component int) BaseComponent
	FaceToCellIndex(faceDof, face int) int
	HasSupportOnFace(i, face int) bool

	RestrictionMatrix(child int) (utils.Matrix, error)
	ProlongationMatrix(child int) (utils.Matrix, error)
	RestrictionIsImplemented() bool
	ProlongationIsImplemented() bool
	RestrictionIsAdditive(i int) bool

	Constraints() (utils.Matrix, error)
	ConstraintsAreImplemented() bool
}

/*
Definition carries everything a concrete element family computes about itself. An empty Restriction
or Prolongation slice, or an empty InterfaceConstraints matrix, means the family does not provide it.
*/
type Definition struct {
	Name                  string
	Data                  ElementData
	RestrictionIsAdditive []bool
	NonzeroComponents     []ComponentMask
	Restriction           []utils.Matrix
	Prolongation          []utils.Matrix
	InterfaceConstraints  utils.Matrix
}

// FiniteElement is the immutable store behind every element. Families embed it.
type FiniteElement struct {
	name string
	data ElementData
	geom geometry.Info

	restrictionIsAdditive []bool
	nonzeroComponents     []ComponentMask
	nNonzeroComponents    []int
	primitive             bool

	restriction          []utils.Matrix
	prolongation         []utils.Matrix
	interfaceConstraints utils.Matrix

	tables        indexTables
	entityOrdered bool
	supportOnFace [][]bool
	// composites only
	bases []BaseSpec
}

// NewFiniteElement validates a definition and builds the index tables of a non-composite element.
func NewFiniteElement(def Definition) (fe *FiniteElement, err error) {
	if err = checkDefinition(def); err != nil {
		return
	}
	fe, err = newFiniteElement(def, defaultTables(def), nil)
	return
}

func newFiniteElement(def Definition, tables indexTables, bases []BaseSpec) (fe *FiniteElement, err error) {
	fd := def.Data
	fe = &FiniteElement{
		name:                  def.Name,
		data:                  fd,
		geom:                  fd.Geometry(),
		restrictionIsAdditive: append([]bool{}, def.RestrictionIsAdditive...),
		nonzeroComponents:     make([]ComponentMask, fd.DofsPerCell),
		nNonzeroComponents:    make([]int, fd.DofsPerCell),
		primitive:             true,
		tables:                tables,
		entityOrdered:         tables.faceToCellMap == nil,
		bases:                 bases,
	}
	for i, cm := range def.NonzeroComponents {
		fe.nonzeroComponents[i] = cm.Clone()
		fe.nNonzeroComponents[i] = cm.Count()
		if fe.nNonzeroComponents[i] != 1 {
			fe.primitive = false
		}
	}
	if fe.restriction, err = storeTransfer(def.Restriction, fd, fe.geom, "restriction"); err != nil {
		return nil, fmt.Errorf("element %s: %w", def.Name, err)
	}
	if fe.prolongation, err = storeTransfer(def.Prolongation, fd, fe.geom, "prolongation"); err != nil {
		return nil, fmt.Errorf("element %s: %w", def.Name, err)
	}
	if fe.interfaceConstraints, err = storeConstraints(def.InterfaceConstraints, fd); err != nil {
		return nil, fmt.Errorf("element %s: %w", def.Name, err)
	}
	if !fe.interfaceConstraints.IsEmpty() {
		fe.interfaceConstraints.SetReadOnly(def.Name + " interface constraints")
	}
	fe.supportOnFace = make([][]bool, fe.geom.FacesPerCell)
	for f := range fe.supportOnFace {
		fe.supportOnFace[f] = make([]bool, fd.DofsPerCell)
		for j := 0; j < fd.DofsPerFace; j++ {
			fe.supportOnFace[f][fe.FaceToCellIndex(j, f)] = true
		}
	}
	return
}

func checkDefinition(def Definition) (err error) {
	fd := def.Data
	if _, err = geometry.NewInfo(fd.Dim); err != nil {
		return fmt.Errorf("%w: element %s: %v", ErrInvalidElementData, def.Name, err)
	}
	if def.Name == "" {
		return fmt.Errorf("%w: element has no name", ErrInvalidElementData)
	}
	if fd.DofsPerCell < 1 || fd.Components < 1 {
		return fmt.Errorf("%w: element %s has %d dofs and %d components",
			ErrInvalidElementData, def.Name, fd.DofsPerCell, fd.Components)
	}
	if len(def.RestrictionIsAdditive) != fd.DofsPerCell {
		return fmt.Errorf("%w: element %s has %d restriction additivity flags for %d dofs",
			ErrInvalidElementData, def.Name, len(def.RestrictionIsAdditive), fd.DofsPerCell)
	}
	if len(def.NonzeroComponents) != fd.DofsPerCell {
		return fmt.Errorf("%w: element %s has %d nonzero component masks for %d dofs",
			ErrInvalidElementData, def.Name, len(def.NonzeroComponents), fd.DofsPerCell)
	}
	for i, cm := range def.NonzeroComponents {
		if cm.Size() != fd.Components {
			return fmt.Errorf("%w: element %s: mask of shape function %d has size %d, need %d",
				ErrDimensionMismatch, def.Name, i, cm.Size(), fd.Components)
		}
		if cm.Count() == 0 {
			return fmt.Errorf("%w: element %s: shape function %d is zero in every component",
				ErrInvalidElementData, def.Name, i)
		}
	}
	return
}

func (fe *FiniteElement) Name() string        { return fe.name }
func (fe *FiniteElement) Data() ElementData   { return fe.data }
func (fe *FiniteElement) DofsPerCell() int    { return fe.data.DofsPerCell }
func (fe *FiniteElement) NComponents() int    { return fe.data.Components }
func (fe *FiniteElement) EntityOrdered() bool { return fe.entityOrdered }
func (fe *FiniteElement) IsPrimitive() bool   { return fe.primitive }

func (fe *FiniteElement) String() string {
	return fmt.Sprintf("%s: %s", fe.name, fe.data)
}

func (fe *FiniteElement) NBaseElements() int {
	if fe.bases == nil {
		return 1
	}
	return len(fe.bases)
}

// BaseElement returns the b-th base of a composite, or the element itself when it is not composite.
func (fe *FiniteElement) BaseElement(b int) Element {
	checkIndex("base element", b, fe.NBaseElements())
	if fe.bases == nil {
		return fe
	}
	return fe.bases[b].Element
}

func (fe *FiniteElement) ElementMultiplicity(b int) int {
	checkIndex("base element", b, fe.NBaseElements())
	if fe.bases == nil {
		return 1
	}
	return fe.bases[b].Multiplicity
}

func (fe *FiniteElement) NonzeroComponents(i int) ComponentMask {
	checkIndex("shape function", i, fe.data.DofsPerCell)
	return fe.nonzeroComponents[i].Clone()
}

func (fe *FiniteElement) NNonzeroComponents(i int) int {
	checkIndex("shape function", i, fe.data.DofsPerCell)
	return fe.nNonzeroComponents[i]
}

func (fe *FiniteElement) IsPrimitiveShape(i int) bool {
	checkIndex("shape function", i, fe.data.DofsPerCell)
	return fe.nNonzeroComponents[i] == 1
}

func (fe *FiniteElement) RestrictionIsAdditive(i int) bool {
	checkIndex("shape function", i, fe.data.DofsPerCell)
	return fe.restrictionIsAdditive[i]
}

// ComponentDofs lists the shape functions that are nonzero in the component.
func (fe *FiniteElement) ComponentDofs(component int) (I utils.Index) {
	checkIndex("component", component, fe.data.Components)
	I = utils.NewIndex(0)
	for i, cm := range fe.nonzeroComponents {
		if cm[component] {
			I = append(I, i)
		}
	}
	return
}

// ComponentMaskFor selects a single vector component of the element.
func (fe *FiniteElement) ComponentMaskFor(component int) ComponentMask {
	return NewComponentMask(fe.data.Components, component)
}

/*
BlockMaskFromComponentMask converts a component mask into a mask over blocks, one block per base
element instance. Every block must be either fully selected or not selected at all.
*/
func (fe *FiniteElement) BlockMaskFromComponentMask(cm ComponentMask) (bm BlockMask, err error) {
	if cm.Size() != fe.data.Components {
		err = fmt.Errorf("%w: component mask has size %d, element %s has %d components",
			ErrDimensionMismatch, cm.Size(), fe.name, fe.data.Components)
		return
	}
	var (
		nBlocks int
		blockOf = make([]int, 0, fe.data.Components)
	)
	for b := 0; b < fe.NBaseElements(); b++ {
		nComp := fe.data.Components
		if fe.bases != nil {
			nComp = fe.bases[b].Element.NComponents()
		}
		for inst := 0; inst < fe.ElementMultiplicity(b); inst++ {
			for k := 0; k < nComp; k++ {
				blockOf = append(blockOf, nBlocks)
			}
			nBlocks++
		}
	}
	bm = make(BlockMask, nBlocks)
	seen := make([]bool, nBlocks)
	for c, sel := range cm {
		b := blockOf[c]
		if seen[b] && bm[b] != sel {
			err = fmt.Errorf("%w: component mask %v selects only part of block %d",
				ErrComponentIndexInvalid, cm, b)
			return nil, err
		}
		seen[b], bm[b] = true, sel
	}
	return
}
