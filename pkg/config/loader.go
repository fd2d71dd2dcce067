package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

const (
	// EnvPrefix prefixes the environment variables read as configuration
	EnvPrefix = "MODEL_EXTRACT_"
	// ProjectConfigName is looked up in the invocation directory
	ProjectConfigName = ".model-extract"
	// UserConfigName is looked up in $XDG_CONFIG_HOME/model-extract
	UserConfigName = "config"
)

var configExtensions = []string{".toml", ".yaml", ".yml"}

// LoadOptions locates the configuration sources of a run
type LoadOptions struct {
	// WorkDir is searched for the project configuration file
	WorkDir string
	// ConfigHome overrides $XDG_CONFIG_HOME
	ConfigHome string
	// ConfigFile is an explicit configuration file, it must exist
	ConfigFile string
	// Overrides are dotted keys set from command-line flags
	Overrides map[string]interface{}
}

// Load merges every configuration source and validates the result
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User configuration
	if path := findConfig(filepath.Join(configHome(opts.ConfigHome), logging.AppName), UserConfigName); path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("Loaded user configuration")
	}

	// 3. Project configuration
	if opts.WorkDir != "" {
		if path := findConfig(opts.WorkDir, ProjectConfigName); path != "" {
			if err := loadFile(k, path); err != nil {
				return nil, err
			}
			logger.Debug().Str("path", path).Msg("Loaded project configuration")
		}
	}

	// 4. Explicit configuration file
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "configuration file %s not found", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("Loaded configuration file")
	}

	// 5. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 6. Command-line flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	logger.Trace().Interface("config", cfg).Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the embedded defaults
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return cfg
}

// DefaultsContent returns the embedded defaults file
func DefaultsContent() string {
	return string(defaultConfig)
}

// envKey maps MODEL_EXTRACT_GRAPHVIZ_NODE_SHAPE to graphviz.node_shape
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func configHome(override string) string {
	if override != "" {
		return override
	}
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return home
	}
	return xdg.ConfigHome
}

func findConfig(dir, name string) string {
	for _, ext := range configExtensions {
		path := filepath.Join(dir, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return errors.Newf(errors.ErrConfigLoad, "unsupported configuration file %s", path).
			WithDetail("path", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load configuration from %s", path).
			WithDetail("path", path)
	}
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
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their configuration key
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("koanf"), ",", 2)[0]
	})
	return v
}

// Validate checks the constraints of every configuration key
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}

	problems := make([]string, 0, len(invalid))
	for _, fe := range invalid {
		problems = append(problems, describe(fe))
	}
	return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s", strings.Join(problems, "; ")).
		WithDetail("fields", problems)
}

func describe(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s fails %s", key, fe.Tag())
	}
}
