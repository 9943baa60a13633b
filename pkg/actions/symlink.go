package actions

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/arthur-debert/pkgactions/pkg/logging"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
	"github.com/arthur-debert/pkgactions/pkg/paths"
)

type symlinkHandler struct{}

func (symlinkHandler) Type() ActionType { return ActionSymlink }

func (symlinkHandler) Apply(ctx context.Context, env *Env, entry manifest.Entry) error {
	logger := logging.GetLogger("actions.symlink")

	pairs, err := entry.Pairs()
	if err != nil {
		return err
	}

	for _, pair := range pairs {
		if err := paths.ValidateRelative("symlink origin", pair.Key, env.Package); err != nil {
			return err
		}

		links, err := manifest.DecodeStrings(pair.Value)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigInvalid, "invalid symlink targets for '%s'", pair.Key)
		}

		origin := env.PackagePath(pair.Key)

		for _, link := range links {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := paths.ValidateRelative("symlink target", link, env.Package); err != nil {
				return err
			}

			if !filesystem.Exists(env.FS, origin) {
				return errors.Newf(errors.ErrMissingTarget,
					"The origin path '%s' for package '%s' does not exist.", env.Display(origin), env.Package).
					WithDetail("origin", origin).
					WithDetail("package", env.Package)
			}

			linkPath := env.ProjectPath(link)
			linkText, err := linkTarget(env, origin, linkPath)
			if err != nil {
				return err
			}

			logger.Debug().
				Str("origin", origin).
				Str("link", linkPath).
				Str("target", linkText).
				Msg("Resolved symlink")

			if env.DryRun {
				env.IO.Info(fmt.Sprintf("  - Would symlink <comment>%s</comment> to <comment>%s</comment>",
					env.Display(origin), env.Display(linkPath)))
				continue
			}

			if filesystem.Exists(env.FS, linkPath) {
				if err := env.FS.RemoveAll(linkPath); err != nil {
					return errors.Wrapf(err, errors.ErrFileRemove, "Could not remove %s", env.Display(linkPath)).
						WithDetail("path", linkPath)
				}
			}

			if err := env.FS.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "Could not create %s", env.Display(filepath.Dir(linkPath)))
			}

			env.IO.Info(fmt.Sprintf("  - Symlinking <comment>%s</comment> to <comment>%s</comment>",
				env.Display(origin), env.Display(linkPath)))

			if err := env.FS.Symlink(linkText, linkPath); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "Could not create symlink %s", env.Display(linkPath)).
					WithDetail("link", linkPath).
					WithDetail("target", linkText)
			}
		}
	}

	return nil
}

// linkTarget is the text stored in the link: origin relative to the link's
// directory, or origin itself when relative links are off.
func linkTarget(env *Env, origin, linkPath string) (string, error) {
	if !env.Options.RelativeSymlinks {
		return origin, nil
	}

	to := origin
	if filesystem.IsDir(env.FS, origin) {
		to = paths.DirPath(origin)
	}
	return paths.Relative(linkPath, to)
}
