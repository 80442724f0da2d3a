package fe

import (
	"errors"
	"fmt"
)

// Contract violations. Every error returned or panicked by this package wraps one of these, so
// callers can classify with errors.Is.
var (
	ErrIndexRange                = errors.New("fe: index out of range")
	ErrShapeFunctionNotPrimitive = errors.New("fe: shape function is not primitive")
	ErrProjectionVoid            = errors.New("fe: restriction matrices are not implemented")
	ErrEmbeddingVoid             = errors.New("fe: prolongation matrices are not implemented")
	ErrConstraintsVoid           = errors.New("fe: interface constraints are not implemented")
	ErrComponentIndexInvalid     = errors.New("fe: component-index pair does not exist")
	ErrWrongInterfaceMatrixSize  = errors.New("fe: interface constraint matrix has the wrong size")
	ErrWrongTransferMatrixSize   = errors.New("fe: transfer matrices have the wrong size")
	ErrInconsistentConstraint    = errors.New("fe: constraint weights are inconsistent")
	ErrDimensionMismatch         = errors.New("fe: dimension mismatch")
	ErrInvalidElementData        = errors.New("fe: invalid element data")
)

func indexRangeError(name string, i, n int) error {
	return fmt.Errorf("%w: %s = %d, valid range is [0,%d)", ErrIndexRange, name, i, n)
}

// checkIndex panics on an out of range index, like a slice access would.
func checkIndex(name string, i, n int) {
	if i < 0 || i >= n {
		panic(indexRangeError(name, i, n))
	}
}
