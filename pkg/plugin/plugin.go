package plugin

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/arthur-debert/pkgactions/pkg/actions"
	"github.com/arthur-debert/pkgactions/pkg/composer"
	"github.com/arthur-debert/pkgactions/pkg/config"
	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/arthur-debert/pkgactions/pkg/logging"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
	"github.com/arthur-debert/pkgactions/pkg/output"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SubscribedEvents lists the lifecycle events the plugin handles
func SubscribedEvents() []string {
	return []string{
		config.EventPreInstall,
		config.EventPostPackageInstall,
		config.EventPostPackageUpdate,
	}
}

// Options configure a Plugin
type Options struct {
	Project *composer.Project
	Config  *config.Config
	FS      filesystem.FS
	IO      output.IO
	DryRun  bool
}

// Plugin applies manifest actions for lifecycle events
type Plugin struct {
	project    *composer.Project
	fs         filesystem.FS
	io         output.IO
	dryRun     bool
	builder    *manifest.Builder
	dispatcher *actions.Dispatcher
	actionOpts actions.Options
}

// New creates a plugin. A nil Config uses the built-in defaults and a nil
// IO discards messages.
func New(opts Options) (*Plugin, error) {
	if opts.Project == nil {
		return nil, errors.New(errors.ErrInvalidInput, "plugin needs a project")
	}
	if opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "plugin needs a filesystem")
	}

	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Default(); err != nil {
			return nil, err
		}
	}
	io := opts.IO
	if io == nil {
		io = output.Discard
	}

	mode, err := cfg.DefaultMode()
	if err != nil {
		return nil, err
	}

	return &Plugin{
		project:    opts.Project,
		fs:         opts.FS,
		io:         io,
		dryRun:     opts.DryRun,
		builder:    manifest.NewBuilder(cfg.Manifest.Events),
		dispatcher: actions.NewDispatcher(),
		actionOpts: actions.Options{
			RelativeSymlinks: cfg.Symlink.Relative,
			Overwrite:        cfg.Copy.Overwrite,
			DefaultMode:      mode,
			Umask:            cfg.Create.Umask,
			CopyExclude:      cfg.Copy.Exclude,
		},
	}, nil
}

// Handle runs event for the named packages, or for every package the event
// applies to when none are named. Action failures end up in the report;
// the returned error is reserved for failures that stop the whole event,
// such as cancellation or an unreadable installed.json.
func (p *Plugin) Handle(ctx context.Context, event string, pkgNames ...string) (*Report, error) {
	report := &Report{Event: event, RunID: uuid.NewString()}
	logger := logging.GetLogger("plugin").With().
		Str("run_id", report.RunID).
		Str("event", event).
		Bool("dry_run", p.dryRun).
		Logger()

	done := logging.LogOperationStart(logger, "event "+event)
	defer done()

	manifests, err := p.manifests(event, pkgNames, report)
	if err != nil {
		return report, err
	}

	for _, m := range manifests {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := p.runPackage(ctx, logger, m, report); err != nil {
			return report, err
		}
	}

	logger.Info().
		Int("ok", report.Count(StatusOK)).
		Int("failed", report.Count(StatusFailed)).
		Int("skipped", report.Count(StatusSkipped)).
		Msg("Event finished")

	return report, nil
}

// manifests builds the per-package manifests of event. Packages that
// cannot be read are reported and left out.
func (p *Plugin) manifests(event string, pkgNames []string, report *Report) ([]*manifest.Manifest, error) {
	if event == config.EventPreInstall {
		all, err := p.builder.ForRoot(event, p.project.Extra)
		if err != nil {
			return nil, err
		}
		return filterManifests(all, pkgNames), nil
	}

	if err := p.builder.CheckEvent(event); err != nil {
		return nil, err
	}

	if len(pkgNames) == 0 {
		names, err := p.project.PackageNames()
		if err != nil {
			return nil, err
		}
		pkgNames = names
	}

	var out []*manifest.Manifest
	for _, name := range pkgNames {
		pkg, err := p.project.Package(name)
		if err != nil {
			p.reportPackageError(name, err, report)
			continue
		}
		m, err := p.builder.ForPackage(event, name, pkg.Extra, p.project.Extra)
		if err != nil {
			p.reportPackageError(name, err, report)
			continue
		}
		if !m.Empty() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (p *Plugin) runPackage(ctx context.Context, logger zerolog.Logger, m *manifest.Manifest, report *Report) error {
	env := &actions.Env{
		FS:          p.fs,
		IO:          p.io,
		ProjectRoot: p.project.Root,
		Package:     m.Package,
		InstallPath: p.installPath(m.Package),
		DryRun:      p.dryRun,
		Options:     p.actionOpts,
	}

	for _, entry := range m.Entries {
		err := p.dispatcher.Dispatch(ctx, env, entry)
		switch {
		case err == nil:
			report.add(Outcome{Package: m.Package, Action: entry.Action, Status: StatusOK})

		case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
			return err

		case errors.IsErrorCode(err, errors.ErrUnknownAction):
			p.io.Warning(fmt.Sprintf(" Skipping extra folder action : %s, method does not exist.", entry.Action))
			report.add(Outcome{Package: m.Package, Action: entry.Action, Status: StatusSkipped, Err: err})

		case errors.IsErrorCode(err, errors.ErrMissingTarget):
			p.reportActionError(entry, err)
			report.add(Outcome{Package: m.Package, Action: entry.Action, Status: StatusFailed, Err: err})
			report.Aborted = append(report.Aborted, m.Package)
			logger.Warn().Str("package", m.Package).Msg("Missing target, skipping remaining actions")
			return nil

		default:
			p.reportActionError(entry, err)
			report.add(Outcome{Package: m.Package, Action: entry.Action, Status: StatusFailed, Err: err})
		}
	}
	return nil
}

func (p *Plugin) installPath(name string) string {
	if pkg, err := p.project.Package(name); err == nil && pkg.InstallPath != "" {
		return pkg.InstallPath
	}
	return p.project.DefaultInstallPath(name)
}

func (p *Plugin) reportActionError(entry manifest.Entry, err error) {
	p.io.Error(fmt.Sprintf("Error: %s action on %s : \n%s", entry.Action, entry.Package, message(err)))
}

func (p *Plugin) reportPackageError(name string, err error, report *Report) {
	p.io.Error(fmt.Sprintf("Error: reading actions of %s : \n%s", name, message(err)))
	report.add(Outcome{Package: name, Status: StatusFailed, Err: err})
}

// message is the human part of err, without the error code
func message(err error) string {
	var pkgErr *errors.PkgError
	if !stderrors.As(err, &pkgErr) {
		return err.Error()
	}
	if pkgErr.Wrapped != nil {
		return fmt.Sprintf("%s: %v", pkgErr.Message, pkgErr.Wrapped)
	}
	return pkgErr.Message
}

func filterManifests(all []*manifest.Manifest, names []string) []*manifest.Manifest {
	if len(names) == 0 {
		return all
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []*manifest.Manifest
	for _, m := range all {
		if wanted[m.Package] {
			out = append(out, m)
		}
	}
	return out
}
