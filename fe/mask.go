package fe

import (
	"fmt"
	"strings"
)

// ComponentMask selects vector components of an element.
type ComponentMask []bool

// BlockMask selects blocks of a composite element, one block per base element instance.
type BlockMask []bool

func NewComponentMask(n int, selected ...int) (cm ComponentMask) {
	cm = make(ComponentMask, n)
	for _, c := range selected {
		checkIndex("component", c, n)
		cm[c] = true
	}
	return
}

func (cm ComponentMask) Size() int                             { return len(cm) }
func (cm ComponentMask) Count() int                            { return countSelected(cm) }
func (cm ComponentMask) FirstSelected() int                    { return firstSelected(cm) }
func (cm ComponentMask) Equal(other ComponentMask) bool        { return equalMasks(cm, other) }
func (cm ComponentMask) Or(other ComponentMask) ComponentMask  { return combine(cm, other, or) }
func (cm ComponentMask) And(other ComponentMask) ComponentMask { return combine(cm, other, and) }
func (cm ComponentMask) String() string                        { return maskString(cm) }
func (cm ComponentMask) Clone() ComponentMask                  { return append(ComponentMask{}, cm...) }
func (cm ComponentMask) Selected(c int) bool                   { checkIndex("component", c, len(cm)); return cm[c] }
func (bm BlockMask) Size() int                                 { return len(bm) }
func (bm BlockMask) Count() int                                { return countSelected(bm) }
func (bm BlockMask) FirstSelected() int                        { return firstSelected(bm) }
func (bm BlockMask) Equal(other BlockMask) bool                { return equalMasks(bm, other) }
func (bm BlockMask) Or(other BlockMask) BlockMask              { return combine(bm, other, or) }
func (bm BlockMask) And(other BlockMask) BlockMask             { return combine(bm, other, and) }
func (bm BlockMask) String() string                            { return maskString(bm) }
func (bm BlockMask) Selected(b int) bool                       { checkIndex("block", b, len(bm)); return bm[b] }

func or(a, b bool) bool  { return a || b }
func and(a, b bool) bool { return a && b }

func countSelected[M ~[]bool](m M) (n int) {
	for _, sel := range m {
		if sel {
			n++
		}
	}
	return
}

func firstSelected[M ~[]bool](m M) int {
	for i, sel := range m {
		if sel {
			return i
		}
	}
	return -1
}

func equalMasks[M ~[]bool](a, b M) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func combine[M ~[]bool](a, b M, op func(x, y bool) bool) (r M) {
	if len(a) != len(b) {
		panic(fmt.Errorf("%w: cannot combine masks of size %d and %d", ErrDimensionMismatch, len(a), len(b)))
	}
	r = make(M, len(a))
	for i := range a {
		r[i] = op(a[i], b[i])
	}
	return
}

func maskString[M ~[]bool](m M) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, sel := range m {
		if i != 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%t", sel)
	}
	sb.WriteString("]")
	return sb.String()
}
