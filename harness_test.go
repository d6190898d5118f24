package dlib

import (
	"errors"
	"fmt"
	"sync"
)

// fakeStrategy is a loader over a fixed symbol table which tracks every acquire, lookup and release.
type fakeStrategy struct {
	symbols map[string]any
	fail    error
	sync.Mutex
	opened  int
	closed  int
	lookups []string
	modules []*fakeModule
}

type fakeModule struct {
	f      *fakeStrategy
	closed bool
}

func (f *fakeStrategy) String() string { return "fake" }

func (f *fakeStrategy) Acquire(name string) (Module, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.Lock()
	defer f.Unlock()
	f.opened++
	m := &fakeModule{f: f}
	f.modules = append(f.modules, m)
	return m, nil
}

func (m *fakeModule) Lookup(symbol string) (any, error) {
	m.f.Lock()
	defer m.f.Unlock()
	if m.closed {
		panic(fmt.Sprintf("lookup %q on a released module", symbol))
	}
	m.f.lookups = append(m.f.lookups, symbol)
	v, ok := m.f.symbols[symbol]
	if !ok {
		return nil, errors.New("undefined symbol: " + symbol)
	}
	return v, nil
}

func (m *fakeModule) Close() error {
	m.f.Lock()
	defer m.f.Unlock()
	if m.closed {
		panic("module released twice")
	}
	m.closed = true
	m.f.closed++
	return nil
}

// leaked counts acquired modules which were never released.
func (f *fakeStrategy) leaked() int {
	f.Lock()
	defer f.Unlock()
	return f.opened - f.closed
}
