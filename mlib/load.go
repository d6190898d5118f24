//go:build dlopen || !cgo

package mlib

import "github.com/ZenLiuCN/dlib"

// Linked reports whether the symbols come from the platform linker.
const Linked = false

var strategy dlib.Strategy = dlib.Dynamic{}
