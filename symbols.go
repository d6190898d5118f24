package dlib

import (
	"errors"
	"fmt"
	"reflect"
)

// Kind of declared symbol.
type Kind int

const (
	// Function is a C function bound to a Go func variable.
	Function Kind = iota + 1
	// Data is a data symbol bound to a typed pointer.
	Data
	// Variadic is a C function with a variadic tail.
	Variadic
	// Address is a symbol kept as its raw address.
	Address
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case Data:
		return "static"
	case Variadic:
		return "variadic"
	case Address:
		return "address"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Symbol is one entry of the registration table consumed by [Loader.Open].
//
// A Symbol writes its destination only after every symbol of the same Open resolved.
type Symbol struct {
	name   string
	kind   Kind
	target reflect.Value //pointer to the destination, invalid for Bind
	stage  func(addr uintptr) (commit func())
}

// Name of the symbol inside the library.
func (s Symbol) Name() string { return s.name }

// Kind of the symbol.
func (s Symbol) Kind() Kind { return s.kind }

func (s Symbol) String() string { return s.kind.String() + " " + s.name }

// Func declares a function symbol. fptr must be a non-nil pointer to a func variable,
// the variable is set by purego with a trampoline calling the native function.
func Func(name string, fptr any) Symbol {
	v := reflect.ValueOf(fptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Func {
		panic(fmt.Sprintf("dlib: Func %q requires a non-nil pointer to a func, got %T", name, fptr))
	}
	if err := checkFunc(v.Elem().Type()); err != nil {
		panic(fmt.Sprintf("dlib: Func %q: %s", name, err))
	}
	return Symbol{
		name:   name,
		kind:   Function,
		target: v,
		stage: func(addr uintptr) func() {
			f := castFunc(v.Elem().Type(), addr)
			return func() { v.Elem().Set(f) }
		},
	}
}

// Static declares a data symbol, dst receives the address of the static as *T.
func Static[T any](name string, dst **T) Symbol {
	if dst == nil {
		panic(fmt.Sprintf("dlib: Static %q requires a non-nil destination", name))
	}
	return Symbol{
		name:   name,
		kind:   Data,
		target: reflect.ValueOf(dst),
		stage: func(addr uintptr) func() {
			p := As[T](addr)
			return func() { *dst = p }
		},
	}
}

// Addr declares a symbol kept as raw address.
func Addr(name string, dst *uintptr) Symbol {
	if dst == nil {
		panic(fmt.Sprintf("dlib: Addr %q requires a non-nil destination", name))
	}
	return Symbol{
		name:   name,
		kind:   Address,
		target: reflect.ValueOf(dst),
		stage:  func(addr uintptr) func() { return func() { *dst = addr } },
	}
}

// Bind declares a symbol with a custom binder, which receives the resolved address.
//
// Values of a [Linked] table are only accepted for such symbols when they are addresses.
func Bind(name string, kind Kind, bind func(addr uintptr)) Symbol {
	if bind == nil {
		panic(fmt.Sprintf("dlib: Bind %q requires a binder", name))
	}
	return Symbol{name: name, kind: kind, stage: func(addr uintptr) func() {
		return func() { bind(addr) }
	}}
}

// assignable reports whether a non-address value from a Linked table can be set to the destination.
func (s Symbol) assignable(v any) bool {
	if !s.target.IsValid() || v == nil {
		return false
	}
	return reflect.TypeOf(v).AssignableTo(s.target.Elem().Type())
}

// prepare converts a resolved value and returns the write of the destination,
// so every conversion of an Open happens before any destination is written.
func (s Symbol) prepare(v any) func() {
	if addr, ok := address(v); ok {
		return s.stage(addr)
	}
	rv := reflect.ValueOf(v)
	return func() { s.target.Elem().Set(rv) }
}

var (
	// ErrNotFound matches errors of a library the platform loader could not open.
	ErrNotFound = errors.New("library not found")
	// ErrMissingSymbol matches errors of a symbol absent from an opened library.
	ErrMissingSymbol = errors.New("missing symbol")
	// ErrClosed occurs when use a Library after Close.
	ErrClosed = errors.New("library closed")
)

// NotFoundError reports a library the loader could not open.
type NotFoundError struct {
	Library string
	Cause   error //loader message, may be nil
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %q: %s", ErrNotFound, e.Library, e.Cause)
	}
	return fmt.Sprintf("%s: %q", ErrNotFound, e.Library)
}
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
func (e *NotFoundError) Unwrap() error        { return e.Cause }

// MissingSymbolError reports the first declared symbol absent from an opened library.
type MissingSymbolError struct {
	Library string
	Symbol  string
	Cause   error //loader message, may be nil
}

func (e *MissingSymbolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %q in %q: %s", ErrMissingSymbol, e.Symbol, e.Library, e.Cause)
	}
	return fmt.Sprintf("%s %q in %q", ErrMissingSymbol, e.Symbol, e.Library)
}
func (e *MissingSymbolError) Is(target error) bool { return target == ErrMissingSymbol }
func (e *MissingSymbolError) Unwrap() error        { return e.Cause }
