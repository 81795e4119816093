// Package config loads the contact form service configuration from defaults,
// an optional YAML file and CONTACTFORM_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "contactform"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CONTACTFORM"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "contactform"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Form   FormConfig   `mapstructure:"form"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Addr          string        `mapstructure:"addr" validate:"required"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace" validate:"gte=0"`
	CORS          CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

type FormConfig struct {
	// DefinitionDir holds YAML/JSON form definitions; empty uses the embedded
	// contact form.
	DefinitionDir string        `mapstructure:"definition_dir"`
	FormID        string        `mapstructure:"form_id" validate:"required"`
	ResetDelay    time.Duration `mapstructure:"reset_delay" validate:"gt=0"`
	FocusDelay    time.Duration `mapstructure:"focus_delay" validate:"gte=0"`
	BannerTimeout time.Duration `mapstructure:"banner_timeout" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=text json logfmt"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:          ":8080",
			ShutdownGrace: 10 * time.Second,
			CORS:          CORSConfig{AllowedOrigins: []string{"*"}},
		},
		Form: FormConfig{
			FormID:        "contact",
			ResetDelay:    2 * time.Second,
			FocusDelay:    500 * time.Millisecond,
			BannerTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadOptions selects where configuration comes from.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set and must exist.
	ConfigFilePath string
	// SearchPaths are scanned for contactform.yaml when no explicit file is
	// given. Defaults to the working directory.
	SearchPaths []string
}

// Load resolves the configuration. It returns the config file used, if any.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("config: load canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		if _, err := os.Stat(opts.ConfigFilePath); err != nil {
			return nil, "", fmt.Errorf("config: file not found: %s: %w", opts.ConfigFilePath, err)
		}
		v.SetConfigFile(opts.ConfigFilePath)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	resolved := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFilePath != "" || !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("config: read: %w", err)
		}
	} else {
		resolved = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// Validate rejects values the service cannot run with. Problems are reported
// by their config key.
func (c Config) Validate() error {
	c.Log.Format = strings.ToLower(c.Log.Format)
	err := configValidator().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: invalid: %w", err)
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, describe(fe))
	}
	return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
}

// configValidator names fields by their mapstructure key so messages match
// what users write in contactform.yaml.
func configValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		structValidator = v
	})
	return structValidator
}

func describe(fe validator.FieldError) error {
	_, key, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", key)
	case "gt":
		return fmt.Errorf("%s must be positive", key)
	case "gte":
		return fmt.Errorf("%s must not be negative", key)
	case "oneof":
		return fmt.Errorf("%s %q is not one of %s", key, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Errorf("%s fails %s", key, fe.Tag())
	}
}

func setDefaults(v *viper.Viper, defaults Config) {
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.shutdown_grace", defaults.Server.ShutdownGrace)
	v.SetDefault("server.cors.allowed_origins", defaults.Server.CORS.AllowedOrigins)
	v.SetDefault("form.definition_dir", defaults.Form.DefinitionDir)
	v.SetDefault("form.form_id", defaults.Form.FormID)
	v.SetDefault("form.reset_delay", defaults.Form.ResetDelay)
	v.SetDefault("form.focus_delay", defaults.Form.FocusDelay)
	v.SetDefault("form.banner_timeout", defaults.Form.BannerTimeout)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}
