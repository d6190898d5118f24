package dlib

import (
	"fmt"
	"reflect"
)

// Tag is the struct tag naming the symbol of a field.
const Tag = "dlib"

// Fields declares the tagged exported fields of the struct pointed by v, in field order.
//
//	type M struct {
//		Cos  func(float64) float64 `dlib:"cos"`
//		Errno *int32               `dlib:"errno"`
//		Main uintptr               `dlib:"main"`
//	}
//
// Func fields become Func symbols, pointer fields Static symbols and uintptr fields Addr symbols.
// Untagged fields and fields tagged "-" are skipped.
func Fields(v any) (symbols []Symbol) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("dlib: Fields requires a non-nil pointer to a struct, got %T", v))
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name, ok := f.Tag.Lookup(Tag)
		if !ok || name == "-" || !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fv := rv.Field(i)
		switch f.Type.Kind() {
		case reflect.Func:
			symbols = append(symbols, Func(name, fv.Addr().Interface()))
		case reflect.Pointer:
			symbols = append(symbols, staticField(name, fv))
		case reflect.Uintptr:
			if f.Type != reflect.TypeOf(uintptr(0)) {
				panic(fmt.Sprintf("dlib: field %s of %s must be uintptr, got %s", f.Name, rt, f.Type))
			}
			symbols = append(symbols, Addr(name, fv.Addr().Interface().(*uintptr)))
		default:
			panic(fmt.Sprintf("dlib: field %s of %s has unsupported type %s", f.Name, rt, f.Type))
		}
	}
	return
}

// staticField declares a pointer field, the generic Static needs the element type statically.
func staticField(name string, fv reflect.Value) Symbol {
	return Symbol{
		name:   name,
		kind:   Data,
		target: fv.Addr(),
		stage: func(addr uintptr) func() {
			p := asValue(fv.Type().Elem(), addr)
			return func() { fv.Set(p) }
		},
	}
}
