package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Apply file actions declared by Composer packages"
	MsgRunShort        = "Apply the actions declared for an event"
	MsgInstallShort    = "Apply post-package-install actions"
	MsgUpdateShort     = "Apply post-package-update actions"
	MsgManifestShort   = "Show the merged actions of a package"
	MsgRelpathShort    = "Print the relative path between two absolute paths"
	MsgGenconfigShort  = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgSummaryFormat  = "%d action(s) applied, %d failed, %d skipped"
	MsgVersionFormat  = "pkgactions version %s\n"
	MsgCommitFormat   = "Commit: %s\n"
	MsgBuiltFormat    = "Built:  %s\n"
	MsgNoActionsFound = "Package '%s' declares no actions for %s."

	// Error messages
	MsgErrInitPaths    = "failed to initialize paths: %w"
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrLoadProject  = "failed to load project: %w"
	MsgErrRunEvent     = "failed to run %s: %w"
	MsgErrStrictFailed = "%d action(s) failed"
	MsgErrNoCommand    = "no command specified"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Preview changes without executing them"
	MsgFlagProjectRoot = "Project root containing composer.json (default: search upwards)"
	MsgFlagNoColor     = "Disable colored output"
	MsgFlagStrict      = "Exit non-zero when any action fails"
	MsgFlagEvent       = "Event whose actions are shown"
	MsgFlagOutput      = "Output format: yaml, json or toml"
	MsgFlagCommented   = "Print the built-in defaults commented out"

	// Debug messages
	MsgDebugProjectRoot = "Debug: Using project root: %s (fallback=%v)\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/manifest-long.txt
	msgManifestLongRaw string
	MsgManifestLong    = strings.TrimSpace(msgManifestLongRaw)

	//go:embed msgs/manifest-example.txt
	msgManifestExampleRaw string
	MsgManifestExample    = strings.TrimRight(msgManifestExampleRaw, "\n")

	//go:embed msgs/relpath-long.txt
	msgRelpathLongRaw string
	MsgRelpathLong    = strings.TrimSpace(msgRelpathLongRaw)

	//go:embed msgs/relpath-example.txt
	msgRelpathExampleRaw string
	MsgRelpathExample    = strings.TrimRight(msgRelpathExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenconfigLongRaw string
	MsgGenconfigLong    = strings.TrimSpace(msgGenconfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
