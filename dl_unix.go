//go:build darwin || linux

package dlib

import (
	"github.com/ebitengine/purego"
)

const (
	// DefaultFlags opens lazily with local visibility.
	DefaultFlags = purego.RTLD_LAZY | purego.RTLD_LOCAL
	// FlagNow resolves every relocation at open.
	FlagNow = purego.RTLD_NOW
	// FlagGlobal makes the symbols of a library available to later loaded ones and to Process.
	FlagGlobal = purego.RTLD_GLOBAL
)

type shared struct {
	handle uintptr
}

func openShared(name string, flags int) (*shared, error) {
	h, err := purego.Dlopen(name, flags)
	if err != nil {
		return nil, err
	}
	return &shared{h}, nil
}

func (so *shared) Lookup(symbol string) (any, error) {
	addr, err := purego.Dlsym(so.handle, symbol)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (so *shared) Close() error {
	return purego.Dlclose(so.handle)
}

func lookupGlobal(symbol string) (uintptr, error) {
	return purego.Dlsym(purego.RTLD_DEFAULT, symbol)
}
