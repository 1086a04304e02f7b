package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
	baseProfile      = "base"
)

// Option customizes Load.
type Option func(*loader)

// WithConfigDir points Load at a directory other than ./configs.
func WithConfigDir(dir string) Option {
	return func(l *loader) { l.dir = dir }
}

type loader struct {
	dir string
	k   *koanf.Koanf
}

// Load assembles the configuration for profile and validates it. Later
// layers win:
//
//  1. built-in defaults
//  2. {dir}/base.yaml
//  3. {dir}/{profile}.yaml
//  4. APP_-prefixed environment variables
//
// An environment variable is matched against the keys the earlier layers
// produced, so APP_CLIENT_RETRY_MAX_ATTEMPTS lands on
// client.retry.max_attempts rather than client.retry.max.attempts.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}

	l := &loader{dir: defaultConfigDir, k: koanf.New(".")}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	for _, name := range []string{baseProfile, profile} {
		if err := l.loadYAML(name); err != nil {
			return nil, err
		}
	}
	if err := l.loadEnv(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", profile, err)
	}
	return &cfg, nil
}

func (l *loader) loadYAML(name string) error {
	path := filepath.Join(l.dir, name+".yaml")
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (l *loader) loadEnv() error {
	known := make(map[string]string, len(l.k.Keys()))
	for _, key := range l.k.Keys() {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}

	provider := env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(name, value string) (string, any) {
			name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
			if key, ok := known[name]; ok {
				return key, value
			}
			return strings.ReplaceAll(name, "_", "."), value
		},
	})
	if err := l.k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	return nil
}

// checkProfile keeps the profile name from escaping the config directory.
func checkProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("profile %q must be a bare file name", profile)
	}
	return nil
}
