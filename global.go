package dlib

type (
	// Process resolves symbols already present in the process image, which the platform
	// linker linked in (or an other library opened with global visibility).
	//
	// The library name is only kept for diagnostics; Close releases nothing.
	Process struct{}
	process struct{}
)

// Acquire never fails.
func (Process) Acquire(string) (Module, error) { return process{}, nil }

func (Process) String() string { return "process" }

func (process) Lookup(symbol string) (any, error) {
	addr, err := lookupGlobal(symbol)
	if err != nil {
		return nil, err
	}
	return addr, nil
}
func (process) Close() error { return nil }

// Dynamic is the runtime loading strategy: every Acquire opens a fresh handle of the
// platform loader, no deduplication of the same name.
type Dynamic struct {
	Flags int //loader flags, zero means DefaultFlags; ignored on windows
}

func (d Dynamic) String() string { return "dynamic" }

func (d Dynamic) Acquire(name string) (Module, error) {
	flags := d.Flags
	if flags == 0 {
		flags = DefaultFlags
	}
	so, err := openShared(name, flags)
	if err != nil {
		return nil, err
	}
	return so, nil
}
