//go:build windows

package dlib

import (
	"golang.org/x/sys/windows"
)

const (
	DefaultFlags = 1
	FlagNow      = 0
	FlagGlobal   = 0
)

type shared struct {
	handle windows.Handle
}

func openShared(name string, _ int) (*shared, error) {
	h, err := windows.LoadLibrary(name)
	if err != nil {
		return nil, err
	}
	return &shared{h}, nil
}

func (so *shared) Lookup(symbol string) (any, error) {
	addr, err := windows.GetProcAddress(so.handle, symbol)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (so *shared) Close() error {
	return windows.FreeLibrary(so.handle)
}

// lookupGlobal searches the executable image only.
func lookupGlobal(symbol string) (uintptr, error) {
	var h windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &h); err != nil {
		return 0, err
	}
	return windows.GetProcAddress(h, symbol)
}
