package actions

import (
	"context"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
	"github.com/arthur-debert/pkgactions/pkg/paths"
)

type createHandler struct{}

func (createHandler) Type() ActionType { return ActionCreate }

func (createHandler) Apply(ctx context.Context, env *Env, entry manifest.Entry) error {
	pairs, err := entry.Pairs()
	if err != nil {
		return err
	}

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := paths.ValidateRelative("target", pair.Key, env.Package); err != nil {
			return err
		}

		mode, err := parseMode(pair.Value, env.Options.DefaultMode)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigInvalid, "Invalid permissions for '%s'", pair.Key).
				WithDetail("path", pair.Key)
		}

		path := env.ProjectPath(pair.Key)
		if filesystem.Exists(env.FS, path) {
			continue
		}

		if env.DryRun {
			env.IO.Info(fmt.Sprintf("  - Would create directory <comment>%s</comment> (%04o).", env.Display(path), mode))
			continue
		}

		env.IO.Info(fmt.Sprintf("  - Creating directory <comment>%s</comment>.", env.Display(path)))

		err = filesystem.WithUmask(env.Options.Umask, func() error {
			return env.FS.MkdirAll(path, mode)
		})
		if err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "Could not create %s", env.Display(path)).
				WithDetail("path", path)
		}
	}

	return nil
}

// parseMode reads a permission value as octal digits. A JSON number 755
// and the string "0755" mean the same thing; null or "" selects def.
func parseMode(v interface{}, def uint32) (fs.FileMode, error) {
	if v == nil {
		return fs.FileMode(def), nil
	}

	s, err := manifest.DecodeString(v)
	if err != nil {
		return 0, err
	}
	s = strings.TrimPrefix(strings.TrimSpace(s), "0o")
	if s == "" {
		return fs.FileMode(def), nil
	}

	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not an octal mode", s)
	}
	if mode > 07777 {
		return 0, fmt.Errorf("mode %q out of range", s)
	}
	return permBits(uint32(mode)), nil
}

// permBits maps the setuid, setgid and sticky octal bits onto FileMode
func permBits(mode uint32) fs.FileMode {
	m := fs.FileMode(mode & 0777)
	if mode&04000 != 0 {
		m |= fs.ModeSetuid
	}
	if mode&02000 != 0 {
		m |= fs.ModeSetgid
	}
	if mode&01000 != 0 {
		m |= fs.ModeSticky
	}
	return m
}
