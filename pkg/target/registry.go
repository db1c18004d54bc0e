package target

import (
	"path/filepath"

	"github.com/workbench-install/workbench/pkg/config"
)

// Nerd Font files fetched for the terminal theme. Names follow the upstream
// release asset layout of ryanoasis/nerd-fonts.
var nerdFontAssets = []string{
	"MesloLGS%20NF%20Regular.ttf",
	"MesloLGS%20NF%20Bold.ttf",
	"MesloLGS%20NF%20Italic.ttf",
	"MesloLGS%20NF%20Bold%20Italic.ttf",
}

// Builtin returns the full target registry in declared execution order,
// with destination paths resolved against the given configuration.
// Targets disabled by configuration are filtered out.
func Builtin(cfg *config.Config) []Target {
	zshrc := cfg.Zshrc()
	pluginsLine := `plugins=(git zsh-autosuggestions zsh-syntax-highlighting)`

	all := []Target{
		{
			ID:        "oh-my-zsh",
			Label:     "Zsh + oh-my-zsh framework",
			Category:  CategoryExternal,
			Probe:     Probe{Dir: cfg.OhMyZshDir},
			Installer: "oh-my-zsh",
		},
		{
			ID:       "zsh-autosuggestions",
			Label:    "zsh-autosuggestions plugin",
			Category: CategoryGit,
			Probe:    Probe{Dir: filepath.Join(cfg.ZshCustomDir, "plugins", "zsh-autosuggestions")},
			Git: GitSpec{
				URL:  "https://github.com/zsh-users/zsh-autosuggestions.git",
				Dest: filepath.Join(cfg.ZshCustomDir, "plugins", "zsh-autosuggestions"),
			},
			Patches: []Patch{
				{File: zshrc, Mode: ReplaceLine, Key: "plugins=", Text: pluginsLine},
			},
		},
		{
			ID:       "zsh-syntax-highlighting",
			Label:    "zsh-syntax-highlighting plugin",
			Category: CategoryGit,
			Probe:    Probe{Dir: filepath.Join(cfg.ZshCustomDir, "plugins", "zsh-syntax-highlighting")},
			Git: GitSpec{
				URL:  "https://github.com/zsh-users/zsh-syntax-highlighting.git",
				Dest: filepath.Join(cfg.ZshCustomDir, "plugins", "zsh-syntax-highlighting"),
			},
			Patches: []Patch{
				{File: zshrc, Mode: ReplaceLine, Key: "plugins=", Text: pluginsLine},
			},
		},
		{
			ID:       "powerlevel10k",
			Label:    "powerlevel10k terminal theme",
			Category: CategoryGit,
			Probe:    Probe{Dir: filepath.Join(cfg.ZshCustomDir, "themes", "powerlevel10k")},
			Git: GitSpec{
				URL:  "https://github.com/romkatv/powerlevel10k.git",
				Dest: filepath.Join(cfg.ZshCustomDir, "themes", "powerlevel10k"),
			},
			Patches: []Patch{
				{File: zshrc, Mode: ReplaceLine, Key: "ZSH_THEME=", Text: `ZSH_THEME="powerlevel10k/powerlevel10k"`},
			},
		},
		{
			ID:       "nerd-fonts",
			Label:    "MesloLGS Nerd Fonts",
			Category: CategoryDownload,
			Probe:    Probe{File: filepath.Join(cfg.FontDir, "MesloLGS NF Regular.ttf")},
			Assets:   nerdFontAssets,
		},
		{
			ID:        "pyenv",
			Label:     "pyenv Python environment manager",
			Category:  CategoryExternal,
			Probe:     Probe{Dir: cfg.PyenvRoot},
			Installer: "pyenv",
			Patches:   pyenvPatches(cfg),
		},
		{
			ID:        "google-chrome",
			Label:     "Google Chrome browser",
			Category:  CategoryExternal,
			Probe:     Probe{Command: "google-chrome"},
			Installer: "google-chrome",
		},
		{
			ID:        "vscode",
			Label:     "Visual Studio Code editor",
			Category:  CategoryExternal,
			Probe:     Probe{Command: "code"},
			Installer: "vscode",
		},
		{
			ID:        "miniconda",
			Label:     "Miniconda Python distribution",
			Category:  CategoryExternal,
			Probe:     Probe{Dir: cfg.MinicondaDir},
			Installer: "miniconda",
			Patches: []Patch{
				{
					File:   zshrc,
					Mode:   AppendOnce,
					Marker: "# workbench: conda",
					Text: "# workbench: conda\n" +
						`[ -f "` + cfg.MinicondaDir + `/etc/profile.d/conda.sh" ] && . "` + cfg.MinicondaDir + `/etc/profile.d/conda.sh"`,
				},
			},
		},
		{
			ID:          "doublecmd",
			Label:       "Double Commander",
			Category:    CategoryApt,
			Probe:       Probe{Command: "doublecmd"},
			Packages:    []string{"doublecmd-gtk"},
			FileManager: true,
		},
		{
			ID:       "nvidia-driver",
			Label:    "NVIDIA GPU driver",
			Category: CategoryExternal,
			// A present nvidia-smi binary with an unloaded driver must
			// still count as absent, so probe by exit status.
			Probe:     Probe{Check: []string{"nvidia-smi", "-L"}},
			Installer: "nvidia-driver",
		},
	}

	targets := make([]Target, 0, len(all))
	for _, t := range all {
		if cfg.Disabled(t.ID) {
			continue
		}
		targets = append(targets, t)
	}
	return targets
}

// pyenvPatches builds the pyenv init block for every configured profile file.
func pyenvPatches(cfg *config.Config) []Patch {
	block := "# workbench: pyenv\n" +
		`export PYENV_ROOT="` + cfg.PyenvRoot + `"` + "\n" +
		`[ -d "$PYENV_ROOT/bin" ] && export PATH="$PYENV_ROOT/bin:$PATH"` + "\n" +
		`eval "$(pyenv init -)"`

	patches := make([]Patch, 0, len(cfg.ProfileFiles))
	for _, file := range cfg.ProfileFiles {
		patches = append(patches, Patch{
			File:   file,
			Mode:   AppendOnce,
			Marker: "# workbench: pyenv",
			Text:   block,
		})
	}
	return patches
}

// ByID returns the target with the given ID from the list, if present.
func ByID(targets []Target, id string) (Target, bool) {
	for _, t := range targets {
		if t.ID == id {
			return t, true
		}
	}
	return Target{}, false
}
