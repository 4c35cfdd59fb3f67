package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cube2222/octomap/codec"
	"github.com/cube2222/octomap/outputs/formats"
)

var OctomapHomeDir = func() string {
	dir, err := homedir.Dir()
	if err != nil {
		log.Fatalf("couldn't get user home directory: %s", err)
	}
	return filepath.Join(dir, ".octomap")
}()

type Config struct {
	// DuplicateKeys is either "allow" or "reject".
	DuplicateKeys string        `yaml:"duplicate_keys"`
	Output        string        `yaml:"output"`
	TypeCacheSize int64         `yaml:"type_cache_size"`
	Logging       LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Enabled bool `yaml:"enabled"`
	// Path defaults to logs.txt in the octomap home directory.
	Path string `yaml:"path"`
}

func (logging LoggingConfig) LogPath() string {
	if logging.Path == "" {
		return filepath.Join(OctomapHomeDir, "logs.txt")
	}
	path, err := homedir.Expand(logging.Path)
	if err != nil {
		return logging.Path
	}
	return path
}

func Default() *Config {
	return &Config{
		DuplicateKeys: codec.DuplicateKeysAllow.String(),
		Output:        "table",
		TypeCacheSize: 1024,
	}
}

// Read reads the configuration from the octomap home directory, falling back to defaults if there is none.
func Read() (*Config, error) {
	path := filepath.Join(OctomapHomeDir, "octomap.yml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return ReadConfig(path)
}

// ReadConfig reads the file at path. Unset fields keep their default values.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	config := Default()
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration in %s", path)
	}
	return config, nil
}

func (config *Config) Validate() error {
	if _, err := config.DuplicateKeysPolicy(); err != nil {
		return err
	}
	if _, ok := formats.Formats[config.Output]; !ok {
		return errors.Errorf("unknown output format '%s'", config.Output)
	}
	if config.TypeCacheSize <= 0 {
		return errors.Errorf("type_cache_size must be positive, got %d", config.TypeCacheSize)
	}
	return nil
}

func (config *Config) DuplicateKeysPolicy() (codec.DuplicateKeys, error) {
	switch config.DuplicateKeys {
	case "", codec.DuplicateKeysAllow.String():
		return codec.DuplicateKeysAllow, nil
	case codec.DuplicateKeysReject.String():
		return codec.DuplicateKeysReject, nil
	}
	return 0, errors.Errorf("invalid duplicate_keys value '%s', must be one of 'allow', 'reject'", config.DuplicateKeys)
}
