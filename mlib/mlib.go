// Package mlib binds the cosine of the C math library.
//
// Default cgo builds link libm and bind the linked function; builds with the dlopen tag
// (or without cgo) load libm.so.6 at runtime. Callers write m.Cos(x) either way.
package mlib

import (
	"github.com/ZenLiuCN/dlib"
	"sync"
)

// Name of the math library for the dynamic strategy.
const Name = "libm.so.6"

// M holds the bound symbols.
type M struct {
	Cos func(float64) float64 `dlib:"cos"`
	lib *dlib.Library
}

// Open bind the math library with the strategy of this build.
func Open(name string) (*M, error) {
	m := new(M)
	lib, err := dlib.Loader{Strategy: strategy}.Open(name, dlib.Fields(m)...)
	if err != nil {
		return nil, err
	}
	m.lib = lib
	return m, nil
}

// Library of the bound symbols.
func (m *M) Library() *dlib.Library { return m.lib }

// Close release the library, Cos must not be used after.
func (m *M) Close() error { return m.lib.Close() }

// Shared is the process wide handle, opened at first use and never closed.
var Shared = sync.OnceValues(func() (*M, error) {
	return Open(Name)
})
