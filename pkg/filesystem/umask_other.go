//go:build !unix

package filesystem

// WithUmask runs fn directly; there is no file-creation mask to override
// on this platform.
func WithUmask(_ int, fn func() error) error {
	return fn()
}

// CurrentUmask always reports 0 on platforms without a umask
func CurrentUmask() int {
	return 0
}
