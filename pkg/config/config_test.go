package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		setupEnv map[string]string
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name: "all defaults",
			cfg:  Config{},
			setupEnv: map[string]string{
				"HOME": "/home/user",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/home/user/.oh-my-zsh", cfg.OhMyZshDir)
				assert.Equal(t, "/home/user/.oh-my-zsh/custom", cfg.ZshCustomDir)
				assert.Equal(t, "/home/user/.local/share/fonts", cfg.FontDir)
				assert.Equal(t, "/home/user/.pyenv", cfg.PyenvRoot)
				assert.Equal(t, "/home/user/miniconda3", cfg.MinicondaDir)
				assert.Equal(t, []string{"/home/user/.zshrc", "/home/user/.bashrc"}, cfg.ProfileFiles)
			},
		},
		{
			name: "env overrides",
			cfg:  Config{},
			setupEnv: map[string]string{
				"HOME":                 "/home/user",
				"WORKBENCH_ZSH_CUSTOM": "/data/zsh-custom",
				"WORKBENCH_FONT_DIR":   "/data/fonts",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/zsh-custom", cfg.ZshCustomDir)
				assert.Equal(t, "/data/fonts", cfg.FontDir)
			},
		},
		{
			name: "explicit values win over env",
			cfg: Config{
				ZshCustomDir: "/custom/root",
				ProfileFiles: []string{"~/.profile"},
			},
			setupEnv: map[string]string{
				"HOME":                 "/home/user",
				"WORKBENCH_ZSH_CUSTOM": "/data/zsh-custom",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/custom/root", cfg.ZshCustomDir)
				assert.Equal(t, []string{"/home/user/.profile"}, cfg.ProfileFiles)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.setupEnv {
				t.Setenv(k, v)
			}
			cfg := tt.cfg
			cfg.SetDefaults()
			tt.check(t, &cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "workbench.yml")
	content := `
zsh_custom_dir: /opt/zsh-custom
profile_files:
  - /etc/skel/.zshrc
disabled_targets:
  - nvidia-driver
strict: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/zsh-custom", cfg.ZshCustomDir)
	assert.Equal(t, []string{"/etc/skel/.zshrc"}, cfg.ProfileFiles)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Disabled("nvidia-driver"))
	assert.False(t, cfg.Disabled("pyenv"))

	// Defaults are still applied for everything the file omits.
	assert.NotEmpty(t, cfg.FontDir)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workbench.yml")
	require.NoError(t, os.WriteFile(path, []byte("profile_files: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.OhMyZshDir)
	})

	t.Run("discovers per-user config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		require.NoError(t, os.MkdirAll(filepath.Join(home, ".config"), 0755))
		require.NoError(t, os.WriteFile(
			filepath.Join(home, DefaultConfigPathYML),
			[]byte("strict: true\n"), 0644))

		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.True(t, cfg.Strict)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	t.Setenv("WB_TEST_DIR", "/opt/data")

	tests := []struct {
		in   string
		want string
	}{
		{"~/bin", "/home/user/bin"},
		{"${WB_TEST_DIR}/fonts", "/opt/data/fonts"},
		{".zshrc", "/home/user/.zshrc"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), "input %q", tt.in)
	}
}
