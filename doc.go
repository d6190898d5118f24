/*
Package dlib resolves a declared set of native library symbols, either from a library
loaded at runtime or from symbols the platform linker already linked in.

# License

Source codes are under Apache License Version 2.0.

# Underwater

 1. A declaration table ([Func], [Static], [Addr], [Bind] or [Fields]) lists the symbols and their Go types.
 2. [Loader.Open] acquires the library with a [Strategy], resolves every symbol in declaration order and stops at the first missing one.
 3. Only when every symbol resolved, the declarations are written through the trusted cast (see cast.go) and a [Library] is returned.
 4. Open is all or nothing: on error the acquired library is released and no declaration is written.

# Strategies

  - [Dynamic]: dlopen (purego) or LoadLibrary on windows, a fresh handle for each Open.
  - [Linked]: direct link, a table of cgo wrappers or addresses. No loader runs.
  - [Process]: symbols already inside the process image.

The strategy is chosen once per build, for example by a build tag, so call sites are the same:

	type M struct {
		Cos func(float64) float64 `dlib:"cos"`
	}
	var m M
	lib, err := dlib.Loader{Strategy: strategy}.Open("libm.so.6", dlib.Fields(&m)...)
	if err != nil {
		return err
	}
	defer lib.Close()
	m.Cos(1.8)

# Notes

 1. The loader can not verify a declared type matches the native symbol, a mismatch is undefined behavior.
 2. Bound functions and statics must not be used after [Library.Close].
 3. Variadic C functions are called through libffi, see package variadic. The guarantee depends on the platform ABI.

# Samples

See package mlib and the dlcheck command.
*/
package dlib
