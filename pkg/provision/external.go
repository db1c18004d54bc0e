package provision

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/workbench-install/workbench/pkg/detect"
	"github.com/workbench-install/workbench/pkg/fetch"
	"github.com/workbench-install/workbench/pkg/gitrepo"
)

// Download endpoints for the external installers (overridable for testing).
var (
	ohMyZshRepoURL  = "https://github.com/ohmyzsh/ohmyzsh.git"
	pyenvInstallURL = "https://pyenv.run"
	chromeDebURL    = "https://dl.google.com/linux/direct/google-chrome-stable_current_amd64.deb"
	vscodeDebURL    = "https://go.microsoft.com/fwlink/?LinkID=760868"
	minicondaURL    = "https://repo.anaconda.com/miniconda/Miniconda3-latest-Linux-x86_64.sh"
)

// externalInstallers maps Target.Installer keys to their procedures. Each
// procedure owns its own prerequisite handling; a returned error fails only
// the calling target.
var externalInstallers = map[string]func(ctx context.Context, p *Provisioner) error{
	"oh-my-zsh":     installOhMyZsh,
	"pyenv":         installPyenv,
	"google-chrome": installChrome,
	"vscode":        installVSCode,
	"miniconda":     installMiniconda,
	"nvidia-driver": installNvidiaDriver,
}

// installOhMyZsh installs zsh, clones the framework, and switches the login
// shell. The shell change is the one strictly dependent follow-up: a missing
// chsh is fatal for this target because the framework is useless without it.
func installOhMyZsh(ctx context.Context, p *Provisioner) error {
	if err := p.Apt.Install(ctx, "zsh", "git", "curl"); err != nil {
		return err
	}

	status, err := p.Git.Ensure(ctx, ohMyZshRepoURL, p.Config.OhMyZshDir)
	if err != nil {
		return err
	}
	if status == gitrepo.StatusSkippedNonRepo {
		return errors.Errorf("%s exists but is not an oh-my-zsh checkout", p.Config.OhMyZshDir)
	}

	if err := detect.RequireCommand("chsh"); err != nil {
		return err
	}
	if err := p.Runner.Run(ctx, "chsh", "-s", "/usr/bin/zsh"); err != nil {
		// Some setups (LDAP accounts, containers) refuse chsh; zsh still
		// works when started manually.
		log.WithError(err).Warn("could not change the login shell to zsh")
	}
	return nil
}

// installPyenv runs the upstream pyenv installer script.
func installPyenv(ctx context.Context, p *Provisioner) error {
	return runRemoteScript(ctx, p, pyenvInstallURL, "pyenv-installer.sh")
}

// installChrome fetches the stable .deb and hands it to apt so dependencies
// resolve.
func installChrome(ctx context.Context, p *Provisioner) error {
	return installDebFromURL(ctx, p, chromeDebURL, "google-chrome.deb")
}

// installVSCode fetches the upstream .deb; the bundled repo definition keeps
// it updated through apt afterwards.
func installVSCode(ctx context.Context, p *Provisioner) error {
	return installDebFromURL(ctx, p, vscodeDebURL, "vscode.deb")
}

// installMiniconda runs the Miniconda batch installer into the configured
// prefix.
func installMiniconda(ctx context.Context, p *Provisioner) error {
	tmpDir, err := os.MkdirTemp("", "workbench-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary directory")
	}
	defer os.RemoveAll(tmpDir)

	script := filepath.Join(tmpDir, "miniconda.sh")
	if err := fetch.Download(ctx, minicondaURL, script); err != nil {
		return err
	}
	return p.Runner.Run(ctx, "bash", script, "-b", "-p", p.Config.MinicondaDir)
}

// installNvidiaDriver lets ubuntu-drivers pick the right proprietary driver
// for the detected GPU.
func installNvidiaDriver(ctx context.Context, p *Provisioner) error {
	if err := p.Apt.Install(ctx, "ubuntu-drivers-common"); err != nil {
		return err
	}
	if p.Apt.AssumeRoot {
		return p.Runner.Run(ctx, "ubuntu-drivers", "autoinstall")
	}
	return p.Runner.Run(ctx, "sudo", "ubuntu-drivers", "autoinstall")
}

// runRemoteScript downloads an installer script and executes it with bash.
func runRemoteScript(ctx context.Context, p *Provisioner, url, name string) error {
	tmpDir, err := os.MkdirTemp("", "workbench-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary directory")
	}
	defer os.RemoveAll(tmpDir)

	script := filepath.Join(tmpDir, name)
	if err := fetch.Download(ctx, url, script); err != nil {
		return err
	}
	return p.Runner.Run(ctx, "bash", script)
}

// installDebFromURL downloads a .deb and installs it via apt.
func installDebFromURL(ctx context.Context, p *Provisioner, url, name string) error {
	tmpDir, err := os.MkdirTemp("", "workbench-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary directory")
	}
	defer os.RemoveAll(tmpDir)

	debPath := filepath.Join(tmpDir, name)
	if err := fetch.Download(ctx, url, debPath); err != nil {
		return err
	}
	return p.Apt.InstallDeb(ctx, debPath)
}
