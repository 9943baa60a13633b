package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgactions/pkg/errors"
)

const (
	parentDir  = ".."
	currentDir = "."
)

// Relative computes the path that, resolved from the directory containing
// from, locates to. Both arguments must be absolute; either separator style
// is accepted. A trailing separator marks a directory.
//
// Segments are compared case-sensitively from the root. When from sits
// directly inside the common ancestor the result starts with "./";
// otherwise it climbs with ".." once per remaining source directory.
//
// Identical paths yield ".". Paths without a common first segment (two
// different drive letters) fail with ErrNoCommonRoot.
func Relative(from, to string) (string, error) {
	if from == "" || to == "" {
		return "", errors.New(errors.ErrInvalidInput, "relative path needs two non-empty paths")
	}

	fromSegs := strings.Split(normalize(from), "/")
	toSegs := strings.Split(normalize(to), "/")

	if fromSegs[0] != toSegs[0] {
		return "", errors.Newf(errors.ErrNoCommonRoot,
			"paths %q and %q share no common root", from, to).
			WithDetail("from", from).
			WithDetail("to", to)
	}

	if strings.Join(fromSegs, "/") == strings.Join(toSegs, "/") {
		return currentDir, nil
	}

	rel := append([]string(nil), toSegs...)
	diverged := false

	for depth, seg := range fromSegs {
		if depth < len(toSegs) && seg == toSegs[depth] {
			rel = rel[1:]
			continue
		}

		diverged = true
		remaining := len(fromSegs) - depth
		if remaining > 1 {
			rel = padParents(rel, remaining-1)
			break
		}

		// from is a direct child of the common ancestor
		if len(rel) == 0 {
			rel = []string{currentDir}
		} else {
			rel[0] = currentDir + string(filepath.Separator) + rel[0]
		}
	}

	// from is itself an ancestor of to; resolution starts from its parent
	if !diverged {
		last := fromSegs[len(fromSegs)-1]
		rel = append([]string{currentDir + string(filepath.Separator) + last}, rel...)
	}

	return joinSegments(rel), nil
}

// DirPath marks path as a directory for Relative by appending a separator.
func DirPath(path string) string {
	if path == "" || strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`) {
		return path
	}
	return path + string(filepath.Separator)
}

func normalize(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

func padParents(rel []string, n int) []string {
	out := make([]string, 0, len(rel)+n)
	for i := 0; i < n; i++ {
		out = append(out, parentDir)
	}
	return append(out, rel...)
}

// joinSegments joins with the platform separator and drops the empty
// segment a directory target leaves at the end.
func joinSegments(rel []string) string {
	if len(rel) > 1 && rel[len(rel)-1] == "" {
		rel = rel[:len(rel)-1]
	}
	out := strings.Join(rel, string(filepath.Separator))
	if out == "" {
		return currentDir
	}
	if len(out) > 1 {
		out = strings.TrimSuffix(out, string(filepath.Separator))
	}
	return out
}
