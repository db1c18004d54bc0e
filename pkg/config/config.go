package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable paths and policy for a provisioning run. All fields
// are optional in the YAML file; zero values are filled by SetDefaults.
type Config struct {
	// OhMyZshDir is the oh-my-zsh installation root.
	OhMyZshDir string `yaml:"oh_my_zsh_dir,omitempty"`

	// ZshCustomDir is the plugin/theme root (the ZSH_CUSTOM analogue).
	ZshCustomDir string `yaml:"zsh_custom_dir,omitempty"`

	// FontDir is where downloaded font files are placed.
	FontDir string `yaml:"font_dir,omitempty"`

	// PyenvRoot is the pyenv installation root.
	PyenvRoot string `yaml:"pyenv_root,omitempty"`

	// MinicondaDir is the Miniconda installation root.
	MinicondaDir string `yaml:"miniconda_dir,omitempty"`

	// NerdFontArchives are extra Nerd Font families fetched from the
	// latest ryanoasis/nerd-fonts release, by archive name.
	NerdFontArchives []string `yaml:"nerd_font_archives,omitempty"`

	// FontChecksums pins digests for individual font files, keyed by file
	// name. Entries accept an optional "algo:" prefix (sha256 default).
	FontChecksums map[string]string `yaml:"font_checksums,omitempty"`

	// ProfileFiles are the shell startup files that receive configuration
	// blocks. Relative entries are resolved against the home directory.
	ProfileFiles []string `yaml:"profile_files,omitempty"`

	// DisabledTargets lists target IDs excluded from the registry.
	DisabledTargets []string `yaml:"disabled_targets,omitempty"`

	// Strict promotes per-target warnings to target failures.
	Strict bool `yaml:"strict,omitempty"`
}

// SetDefaults fills zero values with defaults, honoring the documented
// environment overrides.
func (c *Config) SetDefaults() {
	home, _ := os.UserHomeDir()
	if c.OhMyZshDir == "" {
		c.OhMyZshDir = filepath.Join(home, ".oh-my-zsh")
	}
	if c.ZshCustomDir == "" {
		if env := os.Getenv("WORKBENCH_ZSH_CUSTOM"); env != "" {
			c.ZshCustomDir = env
		} else {
			c.ZshCustomDir = filepath.Join(c.OhMyZshDir, "custom")
		}
	}
	if c.FontDir == "" {
		if env := os.Getenv("WORKBENCH_FONT_DIR"); env != "" {
			c.FontDir = env
		} else {
			c.FontDir = filepath.Join(home, ".local", "share", "fonts")
		}
	}
	if c.PyenvRoot == "" {
		c.PyenvRoot = filepath.Join(home, ".pyenv")
	}
	if c.MinicondaDir == "" {
		c.MinicondaDir = filepath.Join(home, "miniconda3")
	}
	if len(c.ProfileFiles) == 0 {
		c.ProfileFiles = []string{".zshrc", ".bashrc"}
	}
	for i, p := range c.ProfileFiles {
		c.ProfileFiles[i] = ExpandPath(p)
	}
}

// Zshrc returns the primary shell startup file, the first profile entry.
func (c *Config) Zshrc() string {
	return c.ProfileFiles[0]
}

// Disabled reports whether the given target ID is excluded by configuration.
func (c *Config) Disabled(id string) bool {
	for _, d := range c.DisabledTargets {
		if d == id {
			return true
		}
	}
	return false
}

// ExpandPath expands ~ and environment variables, and resolves bare file
// names against the home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	path = os.ExpandEnv(path)
	if !filepath.IsAbs(path) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path)
		}
	}
	return path
}

// Default config file paths, relative to the home directory.
const (
	DefaultConfigPathYML  = ".config/workbench.yml"
	DefaultConfigPathYAML = ".config/workbench.yaml"
)

// Load reads and parses a workbench config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file: %s", path)
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// Discover looks for a config file at the default per-user locations.
func Discover() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine home directory")
	}

	candidates := []string{DefaultConfigPathYML, DefaultConfigPathYAML}
	for _, candidate := range candidates {
		path := filepath.Join(home, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no workbench config found (%s or %s)", DefaultConfigPathYML, DefaultConfigPathYAML)
}

// LoadOrDefault loads the config at path, discovers one if path is empty, and
// falls back to pure defaults when no file exists. A missing config file is
// not an error; a malformed one is.
func LoadOrDefault(configPath string) (*Config, error) {
	path := configPath
	if path == "" {
		discovered, err := Discover()
		if err != nil {
			cfg := &Config{}
			cfg.SetDefaults()
			return cfg, nil
		}
		path = discovered
	}
	return Load(path)
}
