package main

import (
	"github.com/ZenLiuCN/dlib"
	"github.com/ZenLiuCN/fn"
	"math"
	"testing"
)

func TestDoubles(t *testing.T) {
	table := dlib.Linked{
		"pi":  func() float64 { return math.Pi },
		"cos": math.Cos,
		"pow": math.Pow,
		"fma": math.FMA,
	}
	for arity, c := range []struct {
		name string
		in   []float64
		want float64
	}{
		{"pi", nil, math.Pi},
		{"cos", []float64{0}, 1},
		{"pow", []float64{2, 3}, 8},
		{"fma", []float64{2, 3, 1}, 7},
	} {
		sym, invoke, err := doubles(c.name, arity)
		fn.Panic(err)
		lib := fn.Panic1(dlib.Loader{Strategy: table}.Open("m", sym))
		if got := invoke(c.in); got != c.want {
			t.Errorf("%s%v = %v, want %v", c.name, c.in, got, c.want)
		}
		fn.Panic(lib.Close())
	}
	if _, _, err := doubles("x", 4); err == nil {
		t.Error("arity 4 accepted")
	}
}
