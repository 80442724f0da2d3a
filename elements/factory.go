package elements

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/notargets/gofe/fe"
)

// Allocator builds an element family member for a dimension and degree.
type Allocator func(dim, degree int) (fe.Element, error)

// allocators holds all available element families; family name => allocator
var allocators = make(map[string]Allocator)

// SetAllocator registers a family. Registering a name twice is a programming error and panics.
func SetAllocator(name string, alloc Allocator) {
	if _, ok := allocators[name]; ok {
		panic(fmt.Errorf("element allocator %q is already registered", name))
	}
	allocators[name] = alloc
}

// Families lists the registered family names.
func Families() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func init() {
	SetAllocator("FE_Q", func(dim, degree int) (fe.Element, error) { return allocated(NewQElement(dim, degree)) })
	SetAllocator("FE_DGQ", func(dim, degree int) (fe.Element, error) { return allocated(NewDGQElement(dim, degree)) })
	SetAllocator("FE_RaviartThomas", func(dim, degree int) (fe.Element, error) { return allocated(NewRTElement(dim, degree)) })
}

// allocated keeps a nil element pointer from turning into a non-nil interface.
func allocated[E fe.Element](el E, err error) (fe.Element, error) {
	if err != nil {
		return nil, err
	}
	return el, nil
}

var nameRegex = regexp.MustCompile(`^\s*(\w+)\s*(?:<\s*(\d)\s*>)?\s*\(\s*(\d+)\s*\)\s*$`)

/*
New builds an element from its name, e.g. "FE_Q(2)" or "FE_Q<3>(2)". A dimension in the name must
agree with dim; dim may be 0 when the name carries it.
*/
func New(name string, dim int) (el fe.Element, err error) {
	match := nameRegex.FindStringSubmatch(name)
	if match == nil {
		err = fmt.Errorf("%w: cannot parse element name %q", fe.ErrInvalidElementData, name)
		return
	}
	alloc, ok := allocators[match[1]]
	if !ok {
		err = fmt.Errorf("%w: unknown element family %q, have %v", fe.ErrInvalidElementData, match[1], Families())
		return
	}
	if match[2] != "" {
		nameDim, _ := strconv.Atoi(match[2])
		if dim != 0 && dim != nameDim {
			err = fmt.Errorf("%w: element %q is %dD, requested %dD", fe.ErrDimensionMismatch, name, nameDim, dim)
			return
		}
		dim = nameDim
	}
	var degree int
	if degree, err = strconv.Atoi(match[3]); err != nil {
		err = fmt.Errorf("%w: bad degree in %q: %v", fe.ErrInvalidElementData, name, err)
		return
	}
	return alloc(dim, degree)
}
