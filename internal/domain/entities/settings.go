package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the configuration of a check run. Every field has a default matching
// the runner-images fork layout, so the config file is optional.
type Settings struct {
	Upstream        UpstreamConfig     `yaml:"upstream"`
	Tags            TagsConfig         `yaml:"tags"`
	Templates       []string           `yaml:"templates"`
	Toolsets        []string           `yaml:"toolsets"`
	HelpersDir      string             `yaml:"helpers_dir"`
	TemplateRoot    TemplateRootConfig `yaml:"template_root"`
	LookupFunction  string             `yaml:"lookup_function"`
	StrictMergeBase bool               `yaml:"strict_merge_base"`
}

// UpstreamConfig describes the remote the fork tracks.
type UpstreamConfig struct {
	Remote string `yaml:"remote"` // remote name in the local checkout
	URL    string `yaml:"url"`    // inline or ${ENV_VAR}
	Token  string `yaml:"token"`  // optional; inline, ${ENV_VAR}, or file path
}

// TagsConfig holds the naming prefixes of both tag families.
type TagsConfig struct {
	BasePrefix    string `yaml:"base_prefix"`    // fork releases
	ReleasePrefix string `yaml:"release_prefix"` // upstream releases
}

// TemplateRootConfig maps the template-relative placeholder to a repository path.
type TemplateRootConfig struct {
	Token  string `yaml:"token"`
	Prefix string `yaml:"prefix"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no config file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Upstream: UpstreamConfig{
			Remote: "upstream",
			URL:    "https://github.com/actions/runner-images.git",
		},
		Tags: TagsConfig{
			BasePrefix:    "bugswarm/",
			ReleasePrefix: "ubuntu22/",
		},
		Templates: []string{
			"images/ubuntu/templates/ubuntu-22.04.pkr.hcl",
			"images/ubuntu/templates/ubuntu-20.04.pkr.hcl",
		},
		Toolsets: []string{
			"images/ubuntu/toolsets/toolset-2204.json",
			"images/ubuntu/toolsets/toolset-2004.json",
		},
		HelpersDir: "images/ubuntu/scripts/helpers",
		TemplateRoot: TemplateRootConfig{
			Token:  "${path.root}/..",
			Prefix: "images/ubuntu",
		},
		LookupFunction: "get_toolset_value",
	}
}

// NewSettings loads the settings from the given YAML file on top of the defaults.
// An empty path yields the defaults.
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Upstream.URL = expandEnv(settings.Upstream.URL)
	settings.Upstream.Token = resolveToken(settings.Upstream.Token)

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".check-upstream.yaml",
		".check-upstream.yml",
		"check-upstream.yaml",
		"check-upstream.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv replaces ${ENV_VAR} references with their values.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// resolveToken expands environment variable references and, if the result is
// a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := expandEnv(raw)

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read upstream token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func (s *Settings) validate() error {
	if s.Upstream.Remote == "" || s.Upstream.URL == "" {
		return errors.New("upstream.remote and upstream.url are required")
	}
	if s.Tags.BasePrefix == "" || s.Tags.ReleasePrefix == "" {
		return errors.New("tags.base_prefix and tags.release_prefix are required")
	}
	if len(s.Templates) == 0 {
		return errors.New("at least one template must be configured")
	}
	if s.LookupFunction == "" {
		return errors.New("lookup_function is required")
	}
	for i, t := range s.Templates {
		if t == "" {
			return fmt.Errorf("templates[%d] is empty", i)
		}
	}
	return nil
}
