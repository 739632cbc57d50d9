// Package config loads the optional viceversion configuration file.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/extract"
	"github.com/mattn/go-shellwords"
	"github.com/pelletier/go-toml/v2"
)

// FileNames are the configuration files looked up in the project directory,
// in priority order.
var FileNames = []string{".viceversion.yaml", ".viceversion.yml", ".viceversion.toml"}

// DiscoveryConfig tunes the descriptor search.
type DiscoveryConfig struct {
	MaxDepth *int     `yaml:"max_depth,omitempty" toml:"max_depth,omitempty"`
	Tiebreak string   `yaml:"tiebreak,omitempty" toml:"tiebreak,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`
}

// ToolsConfig overrides the global build-tool commands. Each value is a
// shell-style command line such as "mvn -s settings.xml".
type ToolsConfig struct {
	Maven  string `yaml:"maven,omitempty" toml:"maven,omitempty"`
	Python string `yaml:"python,omitempty" toml:"python,omitempty"`
	Gradle string `yaml:"gradle,omitempty" toml:"gradle,omitempty"`
}

// Config is the main configuration structure for viceversion.
type Config struct {
	Discovery *DiscoveryConfig `yaml:"discovery,omitempty" toml:"discovery,omitempty"`
	Timeout   string           `yaml:"timeout,omitempty" toml:"timeout,omitempty"`
	Offline   bool             `yaml:"offline,omitempty" toml:"offline,omitempty"`
	Tools     *ToolsConfig     `yaml:"tools,omitempty" toml:"tools,omitempty"`

	// Path is the file the configuration was read from.
	Path string `yaml:"-" toml:"-"`
}

// LoadConfigFn is the loader used by the CLI; tests may replace it.
var LoadConfigFn = Load

// Load reads the configuration for dir. An explicit path must exist;
// otherwise the first of FileNames present in dir is used. It returns nil
// and no error when there is nothing to load.
func Load(ctx context.Context, fsys core.FileSystem, dir, explicit string) (*Config, error) {
	if explicit != "" {
		data, err := fsys.ReadFile(ctx, explicit)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", explicit, err)
		}
		return decode(explicit, data)
	}

	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := fsys.ReadFile(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		return decode(path, data)
	}

	return nil, nil
}

func decode(path string, data []byte) (*Config, error) {
	var cfg Config
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	} else {
		err = yaml.NewDecoder(bytes.NewReader(data), yaml.Strict()).Decode(&cfg)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	cfg.Path = path
	return &cfg, nil
}

// MaxDepth returns the configured discovery depth and whether one was set.
func (c *Config) MaxDepth() (int, bool) {
	if c == nil || c.Discovery == nil || c.Discovery.MaxDepth == nil {
		return core.DefaultDiscoveryDepth, false
	}
	return *c.Discovery.MaxDepth, true
}

// Tiebreak returns the configured tie-break policy name, or "".
func (c *Config) Tiebreak() string {
	if c == nil || c.Discovery == nil {
		return ""
	}
	return c.Discovery.Tiebreak
}

// Excludes returns the configured directory exclude patterns.
func (c *Config) Excludes() []string {
	if c == nil || c.Discovery == nil {
		return nil
	}
	return c.Discovery.Exclude
}

// IsOffline reports whether static extraction is requested.
func (c *Config) IsOffline() bool {
	return c != nil && c.Offline
}

// TimeoutDuration parses the configured timeout. An empty value yields
// core.TimeoutDefault; zero disables the timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c == nil || c.Timeout == "" {
		return core.TimeoutDefault, nil
	}
	return ParseTimeout(c.Timeout)
}

// ParseTimeout parses a timeout value. A bare "0" is accepted.
func ParseTimeout(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", s)
	}
	return d, nil
}

// Commands returns the build-tool commands with configured overrides
// applied over extract.DefaultCommands.
func (c *Config) Commands() (extract.Commands, error) {
	cmds := extract.DefaultCommands()
	if c == nil || c.Tools == nil {
		return cmds, nil
	}

	overrides := []struct {
		key   string
		value string
		dst   *[]string
	}{
		{"maven", c.Tools.Maven, &cmds.Maven},
		{"python", c.Tools.Python, &cmds.Python},
		{"gradle", c.Tools.Gradle, &cmds.Gradle},
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		args, err := shellwords.Parse(o.value)
		if err != nil {
			return extract.Commands{}, fmt.Errorf("invalid tools.%s command %q: %w", o.key, o.value, err)
		}
		if len(args) == 0 {
			continue
		}
		*o.dst = args
	}
	return cmds, nil
}
