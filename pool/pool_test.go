package pool

import (
	"errors"
	"fmt"
	"github.com/ZenLiuCN/dlib"
	"github.com/ZenLiuCN/fn"
	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
	"math"
	"testing"
)

// names is a strategy knowing only some library names, every library links cos.
type names struct {
	known  map[string]bool
	opened []string
}

func (n *names) String() string { return "names" }

func (n *names) Acquire(name string) (dlib.Module, error) {
	if !n.known[name] {
		return nil, fmt.Errorf("%s: cannot open shared object file", name)
	}
	n.opened = append(n.opened, name)
	return dlib.Linked{"cos": math.Cos}.Acquire(name)
}

func newPool() (*Pool, *names) {
	n := &names{known: map[string]bool{"libm.so.6": true, "libm.so": true}}
	return NewPool(dlib.Loader{Strategy: n}), n
}

func TestNewPool(t *testing.T) {
	p, _ := newPool()
	var cos func(float64) float64
	lib := fn.Panic1(p.Load("m", "libm.so.6", dlib.Func("cos", &cos)))
	if cos(0) != 1 {
		t.Fatal("cos not bound")
	}
	if p.Require("m") != lib {
		t.Fatal("require returned another library")
	}
	if _, err := p.Load("m", "libm.so.6"); !errors.Is(err, ErrAlreadyLoad) {
		t.Errorf("load twice: %v", err)
	}
	sp := spew.NewDefaultConfig()
	sp.MaxDepth = 3
	t.Log(sp.Sdump(p.Keys(), p.Loaded))
}

func TestLoadFirst(t *testing.T) {
	p, n := newPool()
	var cos func(float64) float64
	lib := fn.Panic1(p.LoadFirst("m", []string{"libm.so.7", "libm.so.6", "libm.so"}, dlib.Func("cos", &cos)))
	if lib.Name() != "libm.so.6" {
		t.Errorf("opened %q", lib.Name())
	}
	if diff := cmp.Diff([]string{"libm.so.6"}, n.opened); diff != "" {
		t.Errorf("opened mismatch (-want +got):\n%s", diff)
	}
	_, err := p.LoadFirst("x", []string{"liba.so", "libb.so"})
	if errs := multierr.Errors(err); len(errs) != 2 || !errors.Is(errs[1], dlib.ErrNotFound) {
		t.Errorf("unexpected error %v", err)
	}
	if _, err = p.LoadFirst("y", nil); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("no candidate: %v", err)
	}
	var sin func(float64) float64
	_, err = p.LoadFirst("z", []string{"libm.so"}, dlib.Func("sin", &sin))
	if !errors.Is(err, dlib.ErrMissingSymbol) {
		t.Errorf("missing: %v", err)
	}
	if diff := cmp.Diff([]string{"m"}, p.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestReloadUnload(t *testing.T) {
	p, _ := newPool()
	old := fn.Panic1(p.Load("m", "libm.so"))
	lib := fn.Panic1(p.Reload("m", "libm.so.6"))
	if !old.Closed() || lib.Closed() || p.Require("m") != lib {
		t.Fatal("reload did not replace the library")
	}
	if _, err := p.Reload("x", "libm.so"); !errors.Is(err, ErrNotLoad) {
		t.Errorf("reload absent: %v", err)
	}
	fn.Panic(p.Unload("m"))
	if !lib.Closed() {
		t.Error("unload did not close")
	}
	if err := p.Unload("m"); !errors.Is(err, ErrNotLoad) {
		t.Errorf("unload twice: %v", err)
	}
	defer func() {
		if recover() != ErrNotLoad {
			t.Error("require absent must panic")
		}
	}()
	p.Require("m")
}

func TestClose(t *testing.T) {
	p, _ := newPool()
	a := fn.Panic1(p.Load("a", "libm.so"))
	b := fn.Panic1(p.Load("b", "libm.so.6"))
	fn.Panic(p.Close())
	if !a.Closed() || !b.Closed() || len(p.Keys()) != 0 || len(p.Loaded) != 0 {
		t.Error("close left libraries")
	}
}

func TestZeroPool(t *testing.T) {
	var p Pool
	p.Loader = dlib.Loader{Strategy: &names{known: map[string]bool{"libm.so": true}}}
	lib := fn.Panic1(p.Load("m", "libm.so"))
	if got, ok := p.Get("m"); !ok || got != lib {
		t.Fatal("zero pool lost the library")
	}
	if diff := cmp.Diff([]string{"m"}, p.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	fn.Panic(p.Close())
	if !lib.Closed() {
		t.Error("close did not release")
	}
	var q Pool
	if _, err := q.LoadFirst("m", []string{"libnone.so"}); !errors.Is(err, dlib.ErrNotFound) {
		t.Errorf("zero loader: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("close empty: %v", err)
	}
}
