//go:build deadlock

// Package syncutil supplies the mutex types guarding the library's few
// pieces of shared state. This variant is selected by -tags=deadlock.
package syncutil

import deadlock "github.com/sasha-s/go-deadlock"

// Mutex wraps deadlock.Mutex for lock-order checking.
type Mutex struct {
	deadlock.Mutex
}

// RWMutex wraps deadlock.RWMutex for lock-order checking.
type RWMutex struct {
	deadlock.RWMutex
}
