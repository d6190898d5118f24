//go:build !darwin && !linux && !windows

package dlib

import (
	"errors"
	"runtime"
)

const (
	DefaultFlags = 1
	FlagNow      = 0
	FlagGlobal   = 0
)

var errUnsupported = errors.New("dynamic loading unsupported on " + runtime.GOOS)

type shared struct{}

func openShared(string, int) (*shared, error) { return nil, errUnsupported }

func (*shared) Lookup(string) (any, error) { return nil, errUnsupported }
func (*shared) Close() error               { return nil }

func lookupGlobal(string) (uintptr, error) { return 0, errUnsupported }
