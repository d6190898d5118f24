package dlib

import (
	"fmt"
	"github.com/ebitengine/purego"
	"reflect"
	"unsafe"
)

// This file is the trusted cast boundary: the loader can not verify that a native
// symbol matches its declaration, a mismatch here is undefined behavior at the call site.

// As convert a resolved address to a typed pointer.
func As[T any](addr uintptr) *T {
	return (*T)(*(*unsafe.Pointer)(unsafe.Pointer(&addr)))
}

// asValue convert a resolved address to a reflected pointer of type *t.
func asValue(t reflect.Type, addr uintptr) reflect.Value {
	return reflect.NewAt(t, *(*unsafe.Pointer)(unsafe.Pointer(&addr)))
}

// castFunc create a func of type t calling the native function at addr.
func castFunc(t reflect.Type, addr uintptr) reflect.Value {
	f := reflect.New(t)
	purego.RegisterFunc(f.Interface(), addr)
	return f.Elem()
}

// maxArgs is the argument limit of purego calls.
const maxArgs = 15

// checkFunc rejects the signatures purego can not call.
func checkFunc(t reflect.Type) error {
	switch {
	case t.IsVariadic():
		return fmt.Errorf("go variadic func %s, use package variadic", t)
	case t.NumIn() > maxArgs:
		return fmt.Errorf("%s has more than %d arguments", t, maxArgs)
	case t.NumOut() > 1:
		return fmt.Errorf("%s has more than one result", t)
	}
	for i := 0; i < t.NumIn(); i++ {
		if k := t.In(i).Kind(); !callable(k) {
			return fmt.Errorf("%s: unsupported argument kind %s", t, k)
		}
	}
	if t.NumOut() == 1 {
		if k := t.Out(0).Kind(); !callable(k) || k == reflect.Slice || k == reflect.Func {
			return fmt.Errorf("%s: unsupported result kind %s", t, k)
		}
	}
	return nil
}

func callable(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String, reflect.Uintptr, reflect.Pointer, reflect.UnsafePointer,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Slice, reflect.Func, reflect.Struct:
		return true
	default:
		return false
	}
}

// address extract an address from values produced by a Module.
func address(v any) (uintptr, bool) {
	switch x := v.(type) {
	case uintptr:
		return x, true
	case unsafe.Pointer:
		return uintptr(x), true
	default:
		return 0, false
	}
}
