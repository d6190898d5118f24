package dlib

import (
	"fmt"
	"github.com/apex/log"
	"slices"
	"strings"
	"sync/atomic"
)

type (
	// Loader opens libraries with a Strategy.
	//
	// The zero Loader uses the Dynamic strategy with DefaultFlags and logs nothing.
	Loader struct {
		Strategy Strategy
		Logger   log.Interface //optional debug logging
	}
	// Library is a handle of one opened library with every declared symbol resolved.
	//
	// Note:
	//
	//	1. A Library is immutable after Open, it can be shared between goroutines.
	//	2. Bound functions and statics are views into the loaded module, they must not be used after Close.
	Library struct {
		name     string
		strategy string
		module   Module
		order    []string
		values   map[string]any
		closed   atomic.Bool
		logger   log.Interface
	}
)

// Open a library with the Dynamic strategy and resolve symbols, see [Loader.Open].
func Open(name string, symbols ...Symbol) (*Library, error) {
	return Loader{}.Open(name, symbols...)
}

// Open acquire the named library and resolve every symbol in declaration order.
//
// The result is either a Library with every symbol bound, or an error matching
// ErrNotFound or ErrMissingSymbol; on error the acquired library is already released
// and no declaration has been written.
func (l Loader) Open(name string, symbols ...Symbol) (lib *Library, err error) {
	s := l.Strategy
	if s == nil {
		s = Dynamic{}
	}
	logger := l.logger().WithFields(log.Fields{"library": name, "strategy": s.String()})
	if strings.IndexByte(name, 0) >= 0 {
		return nil, &NotFoundError{Library: name, Cause: fmt.Errorf("name contains NUL")}
	}
	var m Module
	if m, err = s.Acquire(name); err != nil {
		logger.WithError(err).Debug("acquire")
		return nil, &NotFoundError{Library: name, Cause: err}
	}
	values := make(map[string]any, len(symbols))
	for _, sym := range symbols {
		v, e := lookup(m, sym.name)
		if e != nil {
			logger.WithField("symbol", sym.name).WithError(e).Debug("missing")
			if ce := m.Close(); ce != nil {
				logger.WithError(ce).Debug("release")
			}
			return nil, &MissingSymbolError{Library: name, Symbol: sym.name, Cause: e}
		}
		if _, ok := address(v); !ok && !sym.assignable(v) {
			if ce := m.Close(); ce != nil {
				logger.WithError(ce).Debug("release")
			}
			panic(fmt.Sprintf("dlib: %s value %T can not be assigned to %s", s, v, sym))
		}
		values[sym.name] = v
		logger.WithField("symbol", sym.name).Debug("resolved")
	}
	commits := stage(m, logger, symbols, values)
	for _, commit := range commits {
		commit()
	}
	lib = &Library{
		name:     name,
		strategy: s.String(),
		module:   m,
		order:    make([]string, 0, len(symbols)),
		values:   values,
		logger:   logger,
	}
	for _, sym := range symbols {
		lib.order = append(lib.order, sym.name)
	}
	logger.WithField("symbols", len(symbols)).Debug("opened")
	return
}

func (l Loader) logger() log.Interface {
	if l.Logger == nil {
		return silent
	}
	return l.Logger
}

// stage converts every resolved value before any destination is written. A conversion
// panic releases the module before it propagates.
func stage(m Module, logger log.Interface, symbols []Symbol, values map[string]any) (commits []func()) {
	defer func() {
		if r := recover(); r != nil {
			if ce := m.Close(); ce != nil {
				logger.WithError(ce).Debug("release")
			}
			panic(r)
		}
	}()
	commits = make([]func(), 0, len(symbols))
	for _, sym := range symbols {
		commits = append(commits, sym.prepare(values[sym.name]))
	}
	return
}

func lookup(m Module, symbol string) (any, error) {
	if symbol == "" || strings.IndexByte(symbol, 0) >= 0 {
		return nil, fmt.Errorf("invalid symbol name")
	}
	return m.Lookup(symbol)
}

// Name the library was opened with.
func (l *Library) Name() string { return l.name }

// Strategy name the library was opened with.
func (l *Library) Strategy() string { return l.strategy }

// Symbols declared at open, in declaration order.
func (l *Library) Symbols() []string { return slices.Clone(l.order) }

// Closed reports whether Close was called.
func (l *Library) Closed() bool { return l.closed.Load() }

// Value fetch the resolved value of a declared symbol: an address for loaded libraries
// or the Go value of a Linked table.
func (l *Library) Value(symbol string) (any, error) {
	if l.closed.Load() {
		return nil, ErrClosed
	}
	v, ok := l.values[symbol]
	if !ok {
		return nil, &MissingSymbolError{Library: l.name, Symbol: symbol, Cause: fmt.Errorf("not declared")}
	}
	return v, nil
}

// Addr fetch the resolved address of a declared symbol.
func (l *Library) Addr(symbol string) (uintptr, error) {
	v, err := l.Value(symbol)
	if err != nil {
		return 0, err
	}
	if a, ok := address(v); ok {
		return a, nil
	}
	return 0, fmt.Errorf("dlib: symbol %q of %q is linked as %T, not an address", symbol, l.name, v)
}

// Close release the library. Only the first call releases, later calls return ErrClosed.
func (l *Library) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	err := l.module.Close()
	l.logger.WithError(err).Debug("closed")
	return err
}

func (l *Library) String() string {
	return fmt.Sprintf("%s library %q %v", l.strategy, l.name, l.order)
}
