//go:build !dlopen && cgo

package mlib

// #cgo LDFLAGS: -lm
// #include <math.h>
import "C"

import "github.com/ZenLiuCN/dlib"

// Linked reports whether the symbols come from the platform linker.
const Linked = true

func cos(x float64) float64 {
	return float64(C.cos(C.double(x)))
}

var strategy dlib.Strategy = dlib.Linked{"cos": cos}
