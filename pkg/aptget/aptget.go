// Package aptget wraps the system package manager for Ubuntu/Debian-like
// systems. Privilege escalation via sudo is added automatically for
// non-root operators.
package aptget

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/workbench-install/workbench/internal/run"
)

// Client wraps apt-get and dpkg.
type Client struct {
	Runner run.Runner

	// AssumeRoot skips the sudo prefix; set by tests and root sessions.
	AssumeRoot bool
}

// New returns a Client backed by the live apt-get binary.
func New() *Client {
	return &Client{Runner: run.Exec{}, AssumeRoot: os.Geteuid() == 0}
}

func (c *Client) command(args ...string) (string, []string) {
	if c.AssumeRoot {
		return args[0], args[1:]
	}
	return "sudo", args
}

// Install installs the named packages non-interactively. A package-manager
// failure is fatal for the calling target only.
func (c *Client) Install(ctx context.Context, packages ...string) error {
	if len(packages) == 0 {
		return nil
	}
	log.Infof("installing packages: %v", packages)
	name, args := c.command(append([]string{"apt-get", "install", "-y"}, packages...)...)
	if err := c.Runner.Run(ctx, name, args...); err != nil {
		return errors.Wrapf(err, "failed to install %v", packages)
	}
	return nil
}

// InstallDeb installs a downloaded .deb file, letting apt resolve its
// dependencies.
func (c *Client) InstallDeb(ctx context.Context, debPath string) error {
	log.Infof("installing package file: %s", debPath)
	name, args := c.command("apt-get", "install", "-y", debPath)
	if err := c.Runner.Run(ctx, name, args...); err != nil {
		return errors.Wrapf(err, "failed to install %s", debPath)
	}
	return nil
}

// Update refreshes the package index. Failure is a warning at call sites:
// a stale index still lets most installs through.
func (c *Client) Update(ctx context.Context) error {
	name, args := c.command("apt-get", "update")
	if err := c.Runner.Run(ctx, name, args...); err != nil {
		return errors.Wrap(err, "failed to update package index")
	}
	return nil
}
