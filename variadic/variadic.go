// Package variadic calls C variadic functions resolved by dlib, through libffi.
//
// A resolved variadic function can not be bound to a fixed Go signature: the call interface
// depends on the actual arguments of each call, so it is prepared per call with ffi.PrepCifVar.
// The guarantee is narrower than a static variadic call, it holds where libffi supports the
// platform ABI.
package variadic

import (
	"errors"
	"fmt"
	"github.com/ZenLiuCN/dlib"
	"github.com/jupiterrider/ffi"
	"runtime"
	"unsafe"
)

// ErrArguments occurs when the fixed arguments of a call do not match the declaration.
var ErrArguments = errors.New("variadic arguments mismatch")

// Func is a resolved C variadic function.
type Func struct {
	name  string
	addr  uintptr
	ret   *ffi.Type
	fixed []*ffi.Type
}

// Declare a variadic function symbol with its return type and fixed parameter types.
func Declare(name string, dst **Func, ret *ffi.Type, fixed ...*ffi.Type) dlib.Symbol {
	if dst == nil || ret == nil {
		panic(fmt.Sprintf("variadic: Declare %q requires a destination and a return type", name))
	}
	return dlib.Bind(name, dlib.Variadic, func(addr uintptr) {
		*dst = &Func{name: name, addr: addr, ret: ret, fixed: fixed}
	})
}

// Name of the function.
func (f *Func) Name() string { return f.name }

// Call the function, ret receives the result and must hold at least 8 bytes for integral
// results (libffi widens them). The first arguments must match the fixed parameters.
func (f *Func) Call(ret unsafe.Pointer, args ...Arg) error {
	if len(args) < len(f.fixed) {
		return fmt.Errorf("%w: %s requires %d fixed arguments, got %d", ErrArguments, f.name, len(f.fixed), len(args))
	}
	types := make([]*ffi.Type, len(args))
	values := make([]unsafe.Pointer, len(args))
	for i, a := range args {
		if i < len(f.fixed) && a.typ != f.fixed[i] {
			return fmt.Errorf("%w: %s argument %d", ErrArguments, f.name, i)
		}
		types[i] = a.typ
		values[i] = a.val
	}
	var cif ffi.Cif
	if s := ffi.PrepCifVar(&cif, ffi.DefaultAbi, uint32(len(f.fixed)), uint32(len(args)), f.ret, types...); s != ffi.OK {
		return fmt.Errorf("variadic: prepare %s: status %v", f.name, s)
	}
	ffi.Call(&cif, f.addr, ret, values...)
	runtime.KeepAlive(args)
	return nil
}

// CallInt calls a function returning a C int.
func (f *Func) CallInt(args ...Arg) (int32, error) {
	var r uint64
	if err := f.Call(unsafe.Pointer(&r), args...); err != nil {
		return 0, err
	}
	return int32(r), nil
}

// CallLong calls a function returning a 64 bit integer.
func (f *Func) CallLong(args ...Arg) (int64, error) {
	var r int64
	err := f.Call(unsafe.Pointer(&r), args...)
	return r, err
}

// CallDouble calls a function returning a C double.
func (f *Func) CallDouble(args ...Arg) (float64, error) {
	var r float64
	err := f.Call(unsafe.Pointer(&r), args...)
	return r, err
}

// CallPointer calls a function returning a pointer.
func (f *Func) CallPointer(args ...Arg) (unsafe.Pointer, error) {
	var r unsafe.Pointer
	err := f.Call(unsafe.Pointer(&r), args...)
	return r, err
}
