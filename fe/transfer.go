package fe

import (
	"fmt"

	"github.com/notargets/gofe/geometry"
	"github.com/notargets/gofe/utils"
)

// storeTransfer accepts either no matrices at all or one dofs x dofs matrix per child, and returns
// read-only copies.
func storeTransfer(mats []utils.Matrix, fd ElementData, gi geometry.Info, kind string) (stored []utils.Matrix, err error) {
	var populated int
	for _, m := range mats {
		if !m.IsEmpty() {
			populated++
		}
	}
	if populated == 0 {
		return
	}
	if len(mats) != gi.ChildrenPerCell || populated != len(mats) {
		err = fmt.Errorf("%w: %d of %d %s matrices populated, need all %d or none",
			ErrWrongTransferMatrixSize, populated, len(mats), kind, gi.ChildrenPerCell)
		return
	}
	stored = make([]utils.Matrix, len(mats))
	for c, m := range mats {
		nr, nc := m.Dims()
		if nr != fd.DofsPerCell || nc != fd.DofsPerCell {
			err = fmt.Errorf("%w: %s matrix of child %d is %dx%d, need %dx%d",
				ErrWrongTransferMatrixSize, kind, c, nr, nc, fd.DofsPerCell, fd.DofsPerCell)
			return nil, err
		}
		stored[c] = m.Copy()
		stored[c].SetReadOnly(fmt.Sprintf("%s[%d]", kind, c))
	}
	return
}

// RestrictionMatrix maps fine dofs on the child to coarse dofs (rows coarse, columns fine).
func (fe *FiniteElement) RestrictionMatrix(child int) (R utils.Matrix, err error) {
	if child < 0 || child >= fe.geom.ChildrenPerCell {
		err = indexRangeError("child", child, fe.geom.ChildrenPerCell)
		return
	}
	if fe.restriction == nil {
		err = fmt.Errorf("%w: %s", ErrProjectionVoid, fe.name)
		return
	}
	R = readOnlyCopy(fe.restriction[child])
	return
}

// ProlongationMatrix maps coarse dofs to fine dofs on the child (rows fine, columns coarse).
func (fe *FiniteElement) ProlongationMatrix(child int) (P utils.Matrix, err error) {
	if child < 0 || child >= fe.geom.ChildrenPerCell {
		err = indexRangeError("child", child, fe.geom.ChildrenPerCell)
		return
	}
	if fe.prolongation == nil {
		err = fmt.Errorf("%w: %s", ErrEmbeddingVoid, fe.name)
		return
	}
	P = readOnlyCopy(fe.prolongation[child])
	return
}

func (fe *FiniteElement) RestrictionIsImplemented() bool  { return fe.restriction != nil }
func (fe *FiniteElement) ProlongationIsImplemented() bool { return fe.prolongation != nil }

// readOnlyCopy hands out a stored matrix without sharing its storage.
func readOnlyCopy(m utils.Matrix) utils.Matrix {
	if m.IsEmpty() {
		return m
	}
	c := m.Copy()
	return c.SetReadOnly(m.Name())
}
