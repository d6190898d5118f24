package dlib

import (
	"fmt"
	"go.uber.org/multierr"
	"strings"
)

// Entry is the lookup result of one symbol inside a Report.
type Entry struct {
	Symbol string
	Value  any   //resolved value, nil when missing
	Err    error //*MissingSymbolError when missing
}

func (e Entry) String() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("\t%s\tmissing: %s\n", e.Symbol, e.Err)
	default:
		if a, ok := address(e.Value); ok {
			return fmt.Sprintf("\t%s\t%#x\n", e.Symbol, a)
		}
		return fmt.Sprintf("\t%s\t%T\n", e.Symbol, e.Value)
	}
}

// Report contains the lookup results of a Check, in the order of the requested symbols.
type Report struct {
	Library  string
	Strategy string
	Entries  []Entry
}

func (r *Report) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s library %q\n", r.Strategy, r.Library))
	for _, e := range r.Entries {
		s.WriteString(e.String())
	}
	return s.String()
}

// Missing symbols names.
func (r *Report) Missing() (v []string) {
	for _, e := range r.Entries {
		if e.Err != nil {
			v = append(v, e.Symbol)
		}
	}
	return
}

// Err combines the errors of every missing symbol, nil when all found.
func (r *Report) Err() (err error) {
	for _, e := range r.Entries {
		err = multierr.Append(err, e.Err)
	}
	return
}

// Check looks up every symbol of the named library without fail fast, then release the library.
//
// Unlike Open, it never binds anything: it is a diagnostic of which declarations a library can satisfy.
// The returned error is a NotFound error only, missing symbols are reported by [Report.Err].
func Check(s Strategy, name string, symbols ...string) (r *Report, err error) {
	if s == nil {
		s = Dynamic{}
	}
	if strings.IndexByte(name, 0) >= 0 {
		return nil, &NotFoundError{Library: name, Cause: fmt.Errorf("name contains NUL")}
	}
	var m Module
	if m, err = s.Acquire(name); err != nil {
		return nil, &NotFoundError{Library: name, Cause: err}
	}
	defer func() {
		err = m.Close()
	}()
	r = &Report{Library: name, Strategy: s.String(), Entries: make([]Entry, 0, len(symbols))}
	for _, sym := range symbols {
		v, e := lookup(m, sym)
		if e != nil {
			r.Entries = append(r.Entries, Entry{Symbol: sym, Err: &MissingSymbolError{Library: name, Symbol: sym, Cause: e}})
			continue
		}
		r.Entries = append(r.Entries, Entry{Symbol: sym, Value: v})
	}
	return
}
