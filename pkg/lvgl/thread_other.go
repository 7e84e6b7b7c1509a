//go:build !linux

package lvgl

// No cheap thread identity on this platform; the ownership check is disabled
// and the single-thread contract is enforced by documentation only.
func threadID() int {
	return 0
}
