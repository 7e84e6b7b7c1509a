//go:build !darwin && !linux && !freebsd

package bind

import "errors"

// Load is unavailable on platforms without a supported dynamic loader. The
// emulation core in package emul still works everywhere.
func Load(path string) (*ABI, error) {
	return nil, errors.New("bind: native library loading not supported on this platform")
}
