// Package memzero clears password bytes once they are no longer needed.
package memzero

import "runtime"

// Zero overwrites b with zeros.
//
//go:noinline
func Zero(b []byte) {
	clear(b)
	runtime.KeepAlive(&b)
}

// String copies s into a fresh buffer, calls fn with it and zeroes the
// buffer afterwards. The string itself is immutable and is not touched.
func String(s string, fn func([]byte) error) error {
	buf := []byte(s)
	defer Zero(buf)
	return fn(buf)
}
