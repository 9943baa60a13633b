package paths

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/pkgactions/pkg/errors"
)

var (
	urlSchemePattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*://`)
	packageNamePattern = regexp.MustCompile(`^[a-z0-9]([_.\-]?[a-z0-9]+)*/[a-z0-9](([_.]|-{1,2})?[a-z0-9]+)*$`)
)

// IsAbsolute reports whether a manifest path is absolute on any platform.
// It accepts:
// - POSIX and UNC style paths (leading / or \)
// - Windows drive paths (C:\ or C:/)
// - URL style paths (scheme://)
//
// Unlike filepath.IsAbs the answer does not depend on the host OS, so a
// manifest written on Windows is rejected the same way on Linux.
func IsAbsolute(path string) bool {
	if path == "" {
		return false
	}
	if path[0] == '/' || path[0] == '\\' {
		return true
	}
	if len(path) >= 3 && isASCIILetter(path[0]) && path[1] == ':' && (path[2] == '/' || path[2] == '\\') {
		return true
	}
	return urlSchemePattern.MatchString(path)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ValidateRelative returns ErrConfigInvalid when a manifest path is empty,
// contains null bytes or is absolute. kind names the role of the path in
// the message ("target", "link", "symlink origin").
func ValidateRelative(kind, path, packageName string) error {
	if path == "" {
		return errors.Newf(errors.ErrConfigInvalid,
			"Empty %s path for package '%s'.", kind, packageName).
			WithDetail("package", packageName)
	}

	if strings.Contains(path, "\x00") {
		return errors.Newf(errors.ErrConfigInvalid,
			"Invalid %s path for package '%s': path contains null bytes.", kind, packageName).
			WithDetail("package", packageName)
	}

	if IsAbsolute(path) {
		return errors.Newf(errors.ErrConfigInvalid,
			"Invalid %s path '%s' for package '%s'. It must be relative.", kind, path, packageName).
			WithDetail("package", packageName).
			WithDetail("path", path)
	}

	return nil
}

// ValidatePackageName ensures a package name has the vendor/project form
// Composer uses. Names are lower case; separators are single '.', '_' or
// '-' characters.
func ValidatePackageName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "package name cannot be empty")
	}

	if !packageNamePattern.MatchString(name) {
		return errors.Newf(errors.ErrInvalidInput,
			"invalid package name %q: expected vendor/project", name)
	}

	return nil
}
