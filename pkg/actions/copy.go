package actions

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/arthur-debert/pkgactions/pkg/logging"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
	"github.com/arthur-debert/pkgactions/pkg/paths"
	ignore "github.com/sabhiram/go-gitignore"
)

type copyHandler struct{}

func (copyHandler) Type() ActionType { return ActionCopy }

func (copyHandler) Apply(ctx context.Context, env *Env, entry manifest.Entry) error {
	logger := logging.GetLogger("actions.copy")

	pairs, err := entry.Pairs()
	if err != nil {
		return err
	}

	skip := excludeFunc(env.Options.CopyExclude)

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := paths.ValidateRelative("source", pair.Key, env.Package); err != nil {
			return err
		}
		dest, err := manifest.DecodeString(pair.Value)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigInvalid, "invalid copy destination for '%s'", pair.Key)
		}
		if err := paths.ValidateRelative("destination", dest, env.Package); err != nil {
			return err
		}

		source := env.PackagePath(pair.Key)
		destination := env.ProjectPath(dest)

		if filesystem.Exists(env.FS, destination) && !env.Options.Overwrite {
			logger.Debug().Str("destination", destination).Msg("Destination exists, skipping")
			continue
		}

		if _, err := env.FS.Stat(source); err != nil {
			return errors.Wrapf(err, errors.ErrFileCopy, "Could not copy %s", env.Display(source)).
				WithDetail("source", source)
		}

		if env.DryRun {
			env.IO.Info(fmt.Sprintf("  - Would copy <comment>%s</comment> to <comment>%s</comment>.",
				env.Display(source), env.Display(destination)))
			continue
		}

		if filesystem.Exists(env.FS, destination) {
			if err := env.FS.RemoveAll(destination); err != nil {
				return errors.Wrapf(err, errors.ErrFileCopy, "Could not replace %s", env.Display(destination))
			}
		}

		if err := filesystem.CopyFiltered(env.FS, source, destination, skip); err != nil {
			return errors.Wrapf(err, errors.ErrFileCopy, "Could not copy %s", env.Display(source)).
				WithDetail("source", source).
				WithDetail("destination", destination)
		}

		env.IO.Info(fmt.Sprintf("  - Copying <comment>%s</comment> to <comment>%s</comment>.",
			env.Display(source), env.Display(destination)))
	}

	return nil
}

func excludeFunc(patterns []string) filesystem.SkipFunc {
	if len(patterns) == 0 {
		return nil
	}
	matcher := ignore.CompileIgnoreLines(patterns...)
	return func(rel string, info fs.FileInfo) bool {
		if info.IsDir() && matcher.MatchesPath(rel+"/") {
			return true
		}
		return matcher.MatchesPath(rel)
	}
}
