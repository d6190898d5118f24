package dlib

import (
	"fmt"
	"github.com/ZenLiuCN/fn"
	"slices"
)

type (
	// Strategy acquires libraries for a Loader. The strategy of a build is chosen once,
	// call sites of bound symbols do not depend on it.
	Strategy interface {
		Acquire(name string) (Module, error) //acquire the library, errors are reported as NotFound
		String() string
	}
	// Module is an acquired library.
	Module interface {
		// Lookup a symbol. The value is an address (uintptr or unsafe.Pointer) for loaded
		// libraries, or a Go value assignable to the declaration for a Linked table.
		Lookup(symbol string) (any, error)
		Close() error //release the library, called exactly once by the owner
	}
	// Linked is the direct link strategy: the platform linker already resolved the symbols
	// (usually through cgo) and the table only hands them to the declarations.
	//
	// Values are Go values assignable to the declared destination, or addresses which pass
	// through the trusted cast. The library name is ignored.
	Linked map[string]any
	linked map[string]any
)

// Acquire never fails and runs no loader.
func (l Linked) Acquire(string) (Module, error) {
	return linked(l), nil
}

func (l Linked) String() string { return "linked" }

// Symbols inside the table, sorted.
func (l Linked) Symbols() []string {
	k := fn.MapKeys(l)
	slices.Sort(k)
	return k
}

func (l linked) Lookup(symbol string) (any, error) {
	v, ok := l[symbol]
	if !ok || v == nil {
		return nil, fmt.Errorf("not in linked table")
	}
	return v, nil
}
func (l linked) Close() error { return nil }
