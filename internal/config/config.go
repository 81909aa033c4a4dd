package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "CREATE_AI_PROJECT"

// Config holds the resolved run settings
type Config struct {
	ProjectRoot  string `mapstructure:"project"`
	TemplateRoot string `mapstructure:"template"`
	AssumeYes    bool   `mapstructure:"yes"`
	Verbosity    int    `mapstructure:"verbose"`
	ConfigFile   string `mapstructure:"config"`
}

// NewViper creates a viper instance reading CREATE_AI_PROJECT_* variables
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag in flags that names a config key
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{"project", "template", "yes", "verbose", "config"} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the optional config file and unmarshals the merged settings
func Load(v *viper.Viper) (*Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", file)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal config")
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills unset roots and makes them absolute
func applyDefaults(cfg *Config) error {
	if cfg.ProjectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg.ProjectRoot = cwd
	}

	if cfg.TemplateRoot == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		cfg.TemplateRoot = filepath.Dir(filepath.Dir(exe))
	}

	var err error
	if cfg.ProjectRoot, err = filepath.Abs(cfg.ProjectRoot); err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}
	if cfg.TemplateRoot, err = filepath.Abs(cfg.TemplateRoot); err != nil {
		return fmt.Errorf("failed to resolve template root: %w", err)
	}

	return nil
}
