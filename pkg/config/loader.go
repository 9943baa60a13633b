package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of configuration environment variables
	EnvPrefix = "PKGACTIONS_"

	appName        = "pkgactions"
	userConfigName = "config.toml"
)

// ProjectConfigFiles are looked up in the project root, first match wins
var ProjectConfigFiles = []string{".pkgactions.toml", ".pkgactions.yaml", ".pkgactions.yml"}

var log = logging.GetLogger("config")

// rawBytesProvider feeds embedded bytes to koanf
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Options controls which layers Load reads
type Options struct {
	// ProjectRoot is searched for a project config file; empty skips it
	ProjectRoot string
	// UserConfigPath overrides the XDG location of the user config file
	UserConfigPath string
	// Overrides are applied last, keyed by dotted path ("symlink.relative")
	Overrides map[string]interface{}
}

// Default returns the embedded defaults without reading any file
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, err
	}
	return unmarshal(k)
}

// Load builds the configuration from every layer
func Load(opts Options) (*Config, error) {
	k, err := LoadKoanf(opts)
	if err != nil {
		return nil, err
	}
	return unmarshal(k)
}

// LoadKoanf returns the merged koanf instance before decoding
func LoadKoanf(opts Options) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	// 2. User config
	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = UserConfigPath()
	}
	if err := loadFileIfExists(k, userPath); err != nil {
		return nil, err
	}

	// 3. Project config
	if opts.ProjectRoot != "" {
		for _, name := range ProjectConfigFiles {
			path := filepath.Join(opts.ProjectRoot, name)
			if _, err := os.Stat(path); err == nil {
				if err := loadFileIfExists(k, path); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 5. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return k, nil
}

// UserConfigPath returns where the user config file is read from.
// XDG_CONFIG_HOME is read at call time so it can change after start-up.
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, appName, userConfigName)
}

// envKey maps PKGACTIONS_SYMLINK_RELATIVE to symlink.relative. Only the
// first underscore separates the section, so CREATE_DEFAULT_MODE becomes
// create.default_mode.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func loadDefaults(k *koanf.Koanf) error {
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}
	return nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", path)
	}

	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
			WithDetail("path", path)
	}

	log.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
