// Package ioutil contains small I/O helpers shared across the module.
package ioutil

import "io"

// CloseQuietly closes c and swallows any error. Use it only on cleanup paths
// where a close failure must not mask the error that triggered the cleanup.
func CloseQuietly(c io.Closer) {
	if c == nil {
		return
	}
	_ = c.Close()
}
