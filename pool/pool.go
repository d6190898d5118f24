package pool

import (
	"errors"
	. "github.com/ZenLiuCN/dlib"
	"github.com/ZenLiuCN/fn"
	"go.uber.org/multierr"
	"slices"
	"sync"
)

// Pool keeps opened libraries under caller chosen keys.
//
// It never deduplicates opens by library name: two keys of the same library hold two handles.
// The zero Pool is ready to use and opens with the zero Loader.
type Pool struct {
	Loader
	Libraries map[string]*Library
	Loaded    []string //keys in load order
	sync.RWMutex
}

var (
	ErrAlreadyLoad = errors.New("library already loaded")
	ErrNotLoad     = errors.New("library not loaded")
	ErrNoCandidate = errors.New("no library candidate")
)

// NewPool create new pool opening libraries with the loader
func NewPool(loader Loader) *Pool {
	return &Pool{
		Loader:    loader,
		Libraries: make(map[string]*Library),
	}
}

// Load open a library under key
func (p *Pool) Load(key, name string, symbols ...Symbol) (lib *Library, err error) {
	p.Lock()
	defer p.Unlock()
	if _, ok := p.Libraries[key]; ok {
		return nil, ErrAlreadyLoad
	}
	if lib, err = p.Open(name, symbols...); err != nil {
		return
	}
	p.register(key, lib)
	return
}

// LoadFirst try the names in order, the first library opened with every symbol is kept under key.
//
// Each name is a separate Open, the error combines the failure of every candidate.
func (p *Pool) LoadFirst(key string, names []string, symbols ...Symbol) (lib *Library, err error) {
	p.Lock()
	defer p.Unlock()
	if _, ok := p.Libraries[key]; ok {
		return nil, ErrAlreadyLoad
	}
	if len(names) == 0 {
		return nil, ErrNoCandidate
	}
	for _, name := range names {
		var e error
		if lib, e = p.Open(name, symbols...); e == nil {
			p.register(key, lib)
			return lib, nil
		}
		err = multierr.Append(err, e)
	}
	return nil, err
}

// Reload close the library under key, then open name in its place.
func (p *Pool) Reload(key, name string, symbols ...Symbol) (lib *Library, err error) {
	p.Lock()
	defer p.Unlock()
	old, ok := p.Libraries[key]
	if !ok {
		return nil, ErrNotLoad
	}
	if lib, err = p.Open(name, symbols...); err != nil {
		return
	}
	p.unregister(key)
	p.register(key, lib)
	return lib, old.Close()
}

// Unload close and remove the library under key
func (p *Pool) Unload(key string) error {
	p.Lock()
	defer p.Unlock()
	lib, ok := p.Libraries[key]
	if !ok {
		return ErrNotLoad
	}
	p.unregister(key)
	return lib.Close()
}

// Get fetch the library under key
func (p *Pool) Get(key string) (lib *Library, ok bool) {
	p.RLock()
	defer p.RUnlock()
	lib, ok = p.Libraries[key]
	return
}

// Require fetch the library under key, panics with ErrNotLoad
func (p *Pool) Require(key string) *Library {
	if lib, ok := p.Get(key); ok {
		return lib
	}
	panic(ErrNotLoad)
}

// Keys of loaded libraries, sorted
func (p *Pool) Keys() []string {
	p.RLock()
	defer p.RUnlock()
	k := fn.MapKeys(p.Libraries)
	slices.Sort(k)
	return k
}

// Close every library in reverse load order
func (p *Pool) Close() (err error) {
	p.Lock()
	defer p.Unlock()
	for i := len(p.Loaded) - 1; i >= 0; i-- {
		key := p.Loaded[i]
		err = multierr.Append(err, p.Libraries[key].Close())
		delete(p.Libraries, key)
	}
	p.Loaded = p.Loaded[:0]
	return
}

func (p *Pool) register(key string, lib *Library) {
	if p.Libraries == nil {
		p.Libraries = make(map[string]*Library)
	}
	p.Libraries[key] = lib
	p.Loaded = append(p.Loaded, key)
}

func (p *Pool) unregister(key string) {
	delete(p.Libraries, key)
	if i := slices.Index(p.Loaded, key); i >= 0 {
		p.Loaded = slices.Delete(p.Loaded, i, i+1)
	}
}
