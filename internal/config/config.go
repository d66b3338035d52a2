// Package config resolves runtime settings from defaults, an optional
// cookbook.yaml, a .env file, COOKBOOK_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// EnvPrefix is prepended to every environment key: store.path is read from
// COOKBOOK_STORE_PATH.
const EnvPrefix = "COOKBOOK"

// Keys.
const (
	KeyStoreDriver     = "store.driver"
	KeyStorePath       = "store.path"
	KeyMediaDir        = "media.dir"
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
	KeyDefaultCategory = "recipe.default_category"
)

var defaults = map[string]string{
	KeyStoreDriver:     "sqlite",
	KeyStorePath:       "cookbook.db",
	KeyMediaDir:        ".cookbook-media",
	KeyLogLevel:        "normal",
	KeyLogFile:         filepath.Join(".cookbook-logs", "cookbook.log"),
	KeyDefaultCategory: domain.DefaultCategory,
}

// Config is the resolved configuration.
type Config struct {
	Store struct {
		Driver string
		Path   string
	}
	MediaDir        string
	LogLevel        logger.Level
	LogFile         string
	DefaultCategory string

	// File is the config file that was read, empty when none was found.
	File string
}

// Options says where to look.
type Options struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string
	// EnvFile defaults to ".env". A missing env file is not an error.
	EnvFile string
}

// New returns a viper instance with defaults and environment binding, ready
// for flags to be bound before Load.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the env file and the config file into v and resolves a Config.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("cookbook")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "cookbook"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return resolve(v)
}

func resolve(v *viper.Viper) (*Config, error) {
	c := &Config{
		MediaDir:        v.GetString(KeyMediaDir),
		LogLevel:        logger.ParseLevel(v.GetString(KeyLogLevel)),
		LogFile:         v.GetString(KeyLogFile),
		DefaultCategory: strings.TrimSpace(v.GetString(KeyDefaultCategory)),
		File:            v.ConfigFileUsed(),
	}
	c.Store.Driver = strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreDriver)))
	c.Store.Path = v.GetString(KeyStorePath)

	switch c.Store.Driver {
	case "memory", "file", "sqlite":
	default:
		return nil, fmt.Errorf("%s: %w: %q", KeyStoreDriver, domain.ErrUnknownDriver, c.Store.Driver)
	}
	if c.Store.Driver != "memory" && strings.TrimSpace(c.Store.Path) == "" {
		return nil, fmt.Errorf("%s must be set for the %s driver", KeyStorePath, c.Store.Driver)
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = domain.DefaultCategory
	}
	return c, nil
}
