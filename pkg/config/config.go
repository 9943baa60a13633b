// Package config loads pkgactions' own settings.
//
// Configuration is layered with koanf: embedded defaults, the user config
// file, the project config file, PKGACTIONS_* environment variables and
// finally explicit overrides from the command line.
package config

import (
	"strconv"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/ui"
)

// Event names
const (
	EventPreInstall         = "pre-install"
	EventPostPackageInstall = "post-package-install"
	EventPostPackageUpdate  = "post-package-update"
)

// Config is the complete tool configuration
type Config struct {
	Manifest Manifest `koanf:"manifest" toml:"manifest" yaml:"manifest"`
	Project  Project  `koanf:"project" toml:"project" yaml:"project"`
	Symlink  Symlink  `koanf:"symlink" toml:"symlink" yaml:"symlink"`
	Copy     Copy     `koanf:"copy" toml:"copy" yaml:"copy"`
	Create   Create   `koanf:"create" toml:"create" yaml:"create"`
	Run      Run      `koanf:"run" toml:"run" yaml:"run"`
	Output   Output   `koanf:"output" toml:"output" yaml:"output"`
}

// Manifest maps each event to the extra keys holding its actions
type Manifest struct {
	Events map[string][]string `koanf:"events" toml:"events" yaml:"events"`
}

type Project struct {
	VendorDir string `koanf:"vendor_dir" toml:"vendor_dir" yaml:"vendor_dir"`
}

type Symlink struct {
	Relative bool `koanf:"relative" toml:"relative" yaml:"relative"`
}

type Copy struct {
	Overwrite bool `koanf:"overwrite" toml:"overwrite" yaml:"overwrite"`
	// Exclude holds gitignore patterns skipped when a directory is copied
	Exclude []string `koanf:"exclude" toml:"exclude" yaml:"exclude"`
}

type Create struct {
	DefaultMode string `koanf:"default_mode" toml:"default_mode" yaml:"default_mode"`
	Umask       int    `koanf:"umask" toml:"umask" yaml:"umask"`
}

type Run struct {
	Strict bool `koanf:"strict" toml:"strict" yaml:"strict"`
}

type Output struct {
	Format string `koanf:"format" toml:"format" yaml:"format"`
}

// EventKeys returns the extra keys for an event in priority order
func (c *Config) EventKeys(event string) ([]string, bool) {
	keys, ok := c.Manifest.Events[event]
	return keys, ok && len(keys) > 0
}

// Events returns the configured event names
func (c *Config) Events() []string {
	// pre-install runs first in a Composer install, then the package events
	order := []string{EventPreInstall, EventPostPackageInstall, EventPostPackageUpdate}
	out := make([]string, 0, len(c.Manifest.Events))
	seen := make(map[string]bool)
	for _, event := range order {
		if _, ok := c.Manifest.Events[event]; ok {
			out = append(out, event)
			seen[event] = true
		}
	}
	for event := range c.Manifest.Events {
		if !seen[event] {
			out = append(out, event)
		}
	}
	return out
}

// DefaultMode parses Create.DefaultMode as octal
func (c *Config) DefaultMode() (uint32, error) {
	mode, err := strconv.ParseUint(c.Create.DefaultMode, 8, 32)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrConfigParse, "invalid create.default_mode %q", c.Create.DefaultMode)
	}
	return uint32(mode), nil
}

// OutputFormat parses Output.Format
func (c *Config) OutputFormat() (ui.Format, error) {
	format, err := ui.ParseFormat(c.Output.Format)
	if err != nil {
		return ui.FormatAuto, errors.Wrap(err, errors.ErrConfigParse, "invalid output.format")
	}
	return format, nil
}

// Validate checks values that cannot be expressed by the types alone
func (c *Config) Validate() error {
	if _, err := c.DefaultMode(); err != nil {
		return err
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if c.Create.Umask < 0 || c.Create.Umask > 0777 {
		return errors.Newf(errors.ErrConfigParse, "create.umask out of range: %o", c.Create.Umask)
	}
	for _, event := range []string{EventPreInstall, EventPostPackageInstall, EventPostPackageUpdate} {
		if _, ok := c.EventKeys(event); !ok {
			return errors.Newf(errors.ErrConfigParse, "manifest.events has no keys for %s", event)
		}
	}
	return nil
}
