package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/pkgactions/internal/version"
	"github.com/arthur-debert/pkgactions/pkg/composer"
	"github.com/arthur-debert/pkgactions/pkg/config"
	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/arthur-debert/pkgactions/pkg/logging"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
	"github.com/arthur-debert/pkgactions/pkg/output"
	"github.com/arthur-debert/pkgactions/pkg/paths"
	"github.com/arthur-debert/pkgactions/pkg/plugin"
	"github.com/arthur-debert/pkgactions/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags of the root command
type globalFlags struct {
	verbosity   int
	dryRun      bool
	projectRoot string
	noColor     bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "pkgactions",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&flags.projectRoot, "project-root", "", MsgFlagProjectRoot)
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd(flags))
	rootCmd.AddCommand(newEventCmd(flags, "install", config.EventPostPackageInstall, MsgInstallShort))
	rootCmd.AddCommand(newEventCmd(flags, "update", config.EventPostPackageUpdate, MsgUpdateShort))
	rootCmd.AddCommand(newManifestCmd(flags))
	rootCmd.AddCommand(newRelpathCmd())
	rootCmd.AddCommand(newGenconfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	installTopics(rootCmd)

	return rootCmd
}

// session is what a command needs once the project has been located
type session struct {
	paths   paths.Paths
	config  *config.Config
	project *composer.Project
	fs      filesystem.FS
	io      *output.Console
}

// openSession resolves the project root, loads configuration and reads
// composer.json. overrides are applied on top of every config layer.
func openSession(cmd *cobra.Command, flags *globalFlags, overrides map[string]interface{}) (*session, error) {
	p, err := paths.New(flags.projectRoot, "")
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.ProjectRoot())
	} else if os.Getenv("PKGACTIONS_DEBUG") != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgDebugProjectRoot, p.ProjectRoot(), p.UsedFallback())
	}

	if flags.noColor {
		if overrides == nil {
			overrides = map[string]interface{}{}
		}
		overrides["output.format"] = ui.FormatText.String()
	}

	cfg, err := config.Load(config.Options{ProjectRoot: p.ProjectRoot(), Overrides: overrides})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	fsys := filesystem.NewOS()
	project, err := composer.LoadProject(fsys, p.ProjectRoot(), cfg.Project.VendorDir)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadProject, err)
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	console := output.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)

	log.Info().
		Str("project_root", p.ProjectRoot()).
		Str("vendor_dir", project.VendorDir).
		Msg("Session opened")

	return &session{paths: p, config: cfg, project: project, fs: fsys, io: console}, nil
}

// runEvent handles event for pkgNames and prints the summary
func runEvent(cmd *cobra.Command, flags *globalFlags, event string, pkgNames []string, strict bool) error {
	var overrides map[string]interface{}
	if strict {
		overrides = map[string]interface{}{"run.strict": true}
	}

	s, err := openSession(cmd, flags, overrides)
	if err != nil {
		return err
	}

	pl, err := plugin.New(plugin.Options{
		Project: s.project,
		Config:  s.config,
		FS:      s.fs,
		IO:      s.io,
		DryRun:  flags.dryRun,
	})
	if err != nil {
		return err
	}

	report, err := pl.Handle(cmd.Context(), event, pkgNames...)
	if err != nil {
		return fmt.Errorf(MsgErrRunEvent, event, err)
	}

	log.Info().
		Str("run_id", report.RunID).
		Msgf(MsgSummaryFormat,
			report.Count(plugin.StatusOK),
			report.Count(plugin.StatusFailed),
			report.Count(plugin.StatusSkipped))

	if flags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
	}

	if s.config.Run.Strict && report.Failed() {
		return fmt.Errorf(MsgErrStrictFailed, len(report.Failures()))
	}
	return nil
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:               "run <event> [packages...]",
		Short:             MsgRunShort,
		Long:              MsgRunLong,
		Example:           MsgRunExample,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: eventAndPackageCompletion(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvent(cmd, flags, args[0], args[1:], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	return cmd
}

// newEventCmd builds a shorthand for "run <event>"
func newEventCmd(flags *globalFlags, name, event, short string) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:               name + " [packages...]",
		Short:             short,
		Long:              short + ".\n\nSame as: pkgactions run " + event,
		GroupID:           "core",
		ValidArgsFunction: packageCompletion(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvent(cmd, flags, event, args, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	return cmd
}

func newManifestCmd(flags *globalFlags) *cobra.Command {
	var (
		event  string
		format string
	)

	cmd := &cobra.Command{
		Use:               "manifest <package>",
		Short:             MsgManifestShort,
		Long:              MsgManifestLong,
		Example:           MsgManifestExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: packageCompletion(flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags, nil)
			if err != nil {
				return err
			}

			m, err := packageManifest(s, event, args[0])
			if err != nil {
				return err
			}
			if m.Empty() {
				s.io.Info(fmt.Sprintf(MsgNoActionsFound, args[0], event))
				return nil
			}

			data, err := m.Render(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&event, "event", config.EventPostPackageInstall, MsgFlagEvent)
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", MsgFlagOutput)
	_ = cmd.RegisterFlagCompletionFunc("event", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return plugin.SubscribedEvents(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json", "toml"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// packageManifest returns the merged manifest of pkgName for event
func packageManifest(s *session, event, pkgName string) (*manifest.Manifest, error) {
	builder := manifest.NewBuilder(s.config.Manifest.Events)

	if event == config.EventPreInstall {
		all, err := builder.ForRoot(event, s.project.Extra)
		if err != nil {
			return nil, err
		}
		for _, m := range all {
			if m.Package == pkgName {
				return m, nil
			}
		}
		return &manifest.Manifest{Event: event, Package: pkgName}, nil
	}

	pkg, err := s.project.Package(pkgName)
	if err != nil {
		return nil, err
	}
	return builder.ForPackage(event, pkgName, pkg.Extra, s.project.Extra)
}

func newRelpathCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "relpath <from> <to>",
		Short:   MsgRelpathShort,
		Long:    MsgRelpathLong,
		Example: MsgRelpathExample,
		GroupID: "misc",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := paths.Relative(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rel)
			return nil
		},
	}
}

func newGenconfigCmd(flags *globalFlags) *cobra.Command {
	var commented bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenconfigShort,
		Long:    MsgGenconfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if commented {
				fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return nil
			}

			s, err := openSession(cmd, flags, nil)
			if err != nil {
				return err
			}
			content, err := config.Render(s.config)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&commented, "commented", false, MsgFlagCommented)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// packageCompletion completes installed package names not already given
func packageCompletion(flags *globalFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names, err := installedPackages(flags)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		given := make(map[string]bool, len(args))
		for _, a := range args {
			given[a] = true
		}

		var available []string
		for _, name := range names {
			if !given[name] {
				available = append(available, name)
			}
		}
		return available, cobra.ShellCompDirectiveNoFileComp
	}
}

// eventAndPackageCompletion completes the event first, then packages
func eventAndPackageCompletion(flags *globalFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	packages := packageCompletion(flags)
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return plugin.SubscribedEvents(), cobra.ShellCompDirectiveNoFileComp
		}
		return packages(cmd, args[1:], toComplete)
	}
}

func installedPackages(flags *globalFlags) ([]string, error) {
	p, err := paths.New(flags.projectRoot, "")
	if err != nil {
		return nil, err
	}
	project, err := composer.LoadProject(filesystem.NewOS(), p.ProjectRoot(), "")
	if err != nil {
		return nil, err
	}
	return project.PackageNames()
}

// Execute runs the root command with a background context
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}
