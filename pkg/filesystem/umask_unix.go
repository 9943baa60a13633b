//go:build unix

package filesystem

import (
	"sync"

	"golang.org/x/sys/unix"
)

var umaskMu sync.Mutex

// WithUmask runs fn with the process file-creation mask set to mask and
// restores the previous mask when fn returns, including when it panics.
// The mask is process-wide, so concurrent callers are serialised.
func WithUmask(mask int, fn func() error) error {
	umaskMu.Lock()
	defer umaskMu.Unlock()

	old := unix.Umask(mask)
	defer unix.Umask(old)

	return fn()
}

// CurrentUmask returns the process file-creation mask
func CurrentUmask() int {
	umaskMu.Lock()
	defer umaskMu.Unlock()

	old := unix.Umask(0)
	unix.Umask(old)
	return old
}
