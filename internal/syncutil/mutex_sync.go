//go:build !deadlock

// Package syncutil supplies the mutex types guarding the library's few
// pieces of shared state (debug log writer, lazily built PSP index).
// Default builds use the standard sync primitives with zero overhead;
// build with -tags=deadlock to swap in github.com/sasha-s/go-deadlock
// for lock-order checking during development.
package syncutil

import "sync"

// Mutex is a drop-in sync.Mutex unless built with -tags=deadlock.
//
//nolint:gocritic // Embedding sync.Mutex on purpose to expose its interface
type Mutex struct {
	sync.Mutex
}

// RWMutex is a drop-in sync.RWMutex unless built with -tags=deadlock.
//
//nolint:gocritic // Embedding sync.RWMutex on purpose to expose its interface
type RWMutex struct {
	sync.RWMutex
}
