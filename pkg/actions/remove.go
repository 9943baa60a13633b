package actions

import (
	"context"
	"fmt"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
	"github.com/arthur-debert/pkgactions/pkg/paths"
)

type removeHandler struct{}

func (removeHandler) Type() ActionType { return ActionRemove }

func (removeHandler) Apply(ctx context.Context, env *Env, entry manifest.Entry) error {
	targets, err := entry.Strings()
	if err != nil {
		return err
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := paths.ValidateRelative("target", target, env.Package); err != nil {
			return err
		}

		path := env.ProjectPath(target)

		// Lstat so a link to a directory is removed as a file
		info, err := env.FS.Lstat(path)
		if err != nil {
			continue
		}

		kind := "file"
		if info.IsDir() {
			kind = "directory"
		}

		if env.DryRun {
			env.IO.Info(fmt.Sprintf("  - Would remove %s <comment>%s</comment>.", kind, env.Display(path)))
			continue
		}

		if err := env.FS.RemoveAll(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileRemove, "Could not remove %s", env.Display(path)).
				WithDetail("path", path)
		}

		env.IO.Info(fmt.Sprintf("  - Removing %s <comment>%s</comment>.", kind, env.Display(path)))
	}

	return nil
}
