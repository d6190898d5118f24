package variadic

import (
	"github.com/jupiterrider/ffi"
	"unsafe"
)

// Arg is one argument of a variadic call. Variadic tails follow the C default promotions,
// so there is no float or short constructor: use Double and Int.
type Arg struct {
	typ *ffi.Type
	val unsafe.Pointer
}

// Int is a C int.
func Int(v int32) Arg { return Arg{&ffi.TypeSint32, unsafe.Pointer(&v)} }

// Uint is a C unsigned int.
func Uint(v uint32) Arg { return Arg{&ffi.TypeUint32, unsafe.Pointer(&v)} }

// Long is a 64 bit integer.
func Long(v int64) Arg { return Arg{&ffi.TypeSint64, unsafe.Pointer(&v)} }

// Size is a size_t on 64 bit platforms.
func Size(v uint64) Arg { return Arg{&ffi.TypeUint64, unsafe.Pointer(&v)} }

// Double is a C double.
func Double(v float64) Arg { return Arg{&ffi.TypeDouble, unsafe.Pointer(&v)} }

// Pointer is any C pointer.
func Pointer(p unsafe.Pointer) Arg { return Arg{&ffi.TypePointer, unsafe.Pointer(&p)} }

// String is a NUL terminated copy of s, alive for the call.
func String(s string) Arg {
	b := append([]byte(s), 0)
	p := unsafe.Pointer(&b[0])
	return Arg{&ffi.TypePointer, unsafe.Pointer(&p)}
}
