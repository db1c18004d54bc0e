// Package provision runs the detect → install-or-skip → patch workflow for a
// set of targets. Targets are independent: a failure in one never blocks the
// others, and the whole run is safe to repeat because every step converges.
package provision

import (
	"context"
	"sync"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/workbench-install/workbench/internal/desktop"
	"github.com/workbench-install/workbench/internal/run"
	"github.com/workbench-install/workbench/pkg/aptget"
	"github.com/workbench-install/workbench/pkg/config"
	"github.com/workbench-install/workbench/pkg/detect"
	"github.com/workbench-install/workbench/pkg/fonts"
	"github.com/workbench-install/workbench/pkg/gitrepo"
	"github.com/workbench-install/workbench/pkg/shellpatch"
	"github.com/workbench-install/workbench/pkg/target"
)

// Status is the per-target outcome of a run.
type Status string

const (
	// StatusSkipped means the target was detected as already present.
	StatusSkipped Status = "skipped"
	// StatusInstalled means the target was installed fresh.
	StatusInstalled Status = "installed"
	// StatusUpdated means an existing git checkout was brought up to date.
	StatusUpdated Status = "updated"
	// StatusFailed means the install step failed; later targets still ran.
	StatusFailed Status = "failed"
	// StatusPlanned is reported in dry-run mode instead of acting.
	StatusPlanned Status = "planned"
)

// Result is the outcome for one target.
type Result struct {
	Target target.Target
	Status Status
	Err    error
}

// Provisioner wires the category installers together.
type Provisioner struct {
	Config  *config.Config
	Apt     *aptget.Client
	Git     *gitrepo.Client
	Fonts   *fonts.Installer
	Desktop *desktop.Installer
	Runner  run.Runner

	// DryRun reports planned work without side effects.
	DryRun bool
	// Strict promotes non-fatal warnings (update conflicts, partial font
	// fetches, patch errors on a present target) to target failures.
	Strict bool
}

// New builds a Provisioner backed by the live system.
func New(cfg *config.Config) *Provisioner {
	return &Provisioner{
		Config:  cfg,
		Apt:     aptget.New(),
		Git:     gitrepo.New(),
		Fonts:   fonts.New(cfg.FontDir, cfg.NerdFontArchives, cfg.FontChecksums),
		Desktop: desktop.New(),
		Runner:  run.Exec{},
		Strict:  cfg.Strict,
	}
}

// Run processes the targets in the given (declared) order. With parallel > 1
// targets run concurrently on a bounded worker pool; results keep the
// declared order either way. Config-file writes stay safe under parallelism
// because shellpatch serializes writers per file.
func (p *Provisioner) Run(ctx context.Context, targets []target.Target, parallel int) []Result {
	results := make([]Result, len(targets))

	if parallel <= 1 {
		for i, t := range targets {
			results[i] = p.EnsureInstalled(ctx, t)
		}
		return results
	}

	sem := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, t target.Target) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = p.EnsureInstalled(ctx, t)
		}(i, t)
	}
	wg.Wait()
	return results
}

// EnsureInstalled runs the full workflow for one target: detect, install by
// category, then apply its configuration patches. Calling it twice yields
// the same end state as calling it once.
func (p *Provisioner) EnsureInstalled(ctx context.Context, t target.Target) Result {
	ctxLog := log.WithField("target", t.ID)

	present := detect.Detect(t)

	if p.DryRun {
		if present {
			ctxLog.Info("already present, nothing to do")
			return Result{Target: t, Status: StatusSkipped}
		}
		ctxLog.Infof("would install (%s)", t.Category)
		return Result{Target: t, Status: StatusPlanned}
	}

	status := StatusSkipped
	if present {
		ctxLog.Info("already present, skipping install")
	} else {
		var err error
		status, err = p.install(ctx, t)
		if err != nil {
			ctxLog.WithError(err).Warn("install failed")
			return Result{Target: t, Status: StatusFailed, Err: err}
		}
	}

	if err := p.applyPatches(t); err != nil {
		ctxLog.WithError(err).Warn("configuration patching failed")
		return Result{Target: t, Status: StatusFailed, Err: err}
	}

	if t.FileManager {
		if _, err := p.Desktop.Ensure(desktop.Entry{Command: t.Probe.Command, Label: t.Label}); err != nil {
			ctxLog.WithError(err).Warn("file-manager integration failed")
			if p.Strict {
				return Result{Target: t, Status: StatusFailed, Err: err}
			}
		}
	}

	return Result{Target: t, Status: status}
}

// install dispatches on the target category and normalizes the outcome.
func (p *Provisioner) install(ctx context.Context, t target.Target) (Status, error) {
	switch t.Category {
	case target.CategoryApt:
		if err := p.Apt.Install(ctx, t.Packages...); err != nil {
			return StatusFailed, err
		}
		return StatusInstalled, nil

	case target.CategoryGit:
		gitStatus, err := p.Git.Ensure(ctx, t.Git.URL, t.Git.Dest)
		if err != nil {
			return StatusFailed, err
		}
		switch gitStatus {
		case gitrepo.StatusCloned:
			return StatusInstalled, nil
		case gitrepo.StatusUpdateConflict:
			if p.Strict {
				return StatusFailed, errors.Errorf("fast-forward update of %s conflicted", t.Git.Dest)
			}
			return StatusUpdated, nil
		default:
			return StatusUpdated, nil
		}

	case target.CategoryDownload:
		installed, failed, err := p.Fonts.Install(ctx, t.Assets)
		if err != nil {
			return StatusFailed, err
		}
		if failed > 0 && p.Strict {
			return StatusFailed, errors.Errorf("%d font files failed to download", failed)
		}
		if installed == 0 && failed == 0 {
			return StatusSkipped, nil
		}
		return StatusInstalled, nil

	case target.CategoryExternal:
		installer, ok := externalInstallers[t.Installer]
		if !ok {
			return StatusFailed, errors.Errorf("unknown external installer: %q", t.Installer)
		}
		if err := installer(ctx, p); err != nil {
			return StatusFailed, err
		}
		return StatusInstalled, nil
	}

	return StatusFailed, errors.Errorf("unknown target category: %q", t.Category)
}

// applyPatches applies the target's configuration blocks. Patches run even
// when the install was skipped so that a re-run converges configuration that
// was edited or lost since the tool was installed.
func (p *Provisioner) applyPatches(t target.Target) error {
	for _, patch := range t.Patches {
		changed, err := shellpatch.Apply(patch)
		if err != nil {
			return errors.Wrapf(err, "failed to patch %s", patch.File)
		}
		if changed {
			log.WithField("target", t.ID).Infof("patched %s", patch.File)
		}
	}
	return nil
}
