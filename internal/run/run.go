// Package run is the process boundary for every external collaborator the
// provisioner invokes (apt-get, git, fc-cache, dpkg, installer scripts).
// Callers only care about pass/fail; stdout is surfaced where a caller needs
// it and streamed to the operator otherwise.
package run

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// Runner executes external commands. The interface exists so installer logic
// can be tested with a recording fake instead of a live system.
type Runner interface {
	// Run executes the command, streaming its output to the operator.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the command and returns its trimmed stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// Exec is the live Runner backed by os/exec.
type Exec struct{}

func (Exec) Run(ctx context.Context, name string, args ...string) error {
	log.Debugf("running: %s %s", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s failed", name)
	}
	return nil
}

func (Exec) Output(ctx context.Context, name string, args ...string) (string, error) {
	log.Debugf("running: %s %s", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "%s failed: %s", name, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Call records one command executed through a Fake.
type Call struct {
	Name string
	Args []string
}

func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Fake is a Runner for tests. Commands are recorded; results are looked up
// by command prefix in Fail and Outputs. Safe for concurrent use so parallel
// provisioning paths can share one instance.
type Fake struct {
	mu      sync.Mutex
	Calls   []Call
	Fail    map[string]error  // command-line prefix -> error to return
	Outputs map[string]string // command-line prefix -> stdout
}

func (f *Fake) record(name string, args []string) Call {
	call := Call{Name: name, Args: args}
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	f.mu.Unlock()
	return call
}

func (f *Fake) lookupErr(call Call) error {
	for prefix, err := range f.Fail {
		if strings.HasPrefix(call.String(), prefix) {
			return err
		}
	}
	return nil
}

func (f *Fake) Run(_ context.Context, name string, args ...string) error {
	return f.lookupErr(f.record(name, args))
}

func (f *Fake) Output(_ context.Context, name string, args ...string) (string, error) {
	call := f.record(name, args)
	if err := f.lookupErr(call); err != nil {
		return "", err
	}
	for prefix, out := range f.Outputs {
		if strings.HasPrefix(call.String(), prefix) {
			return out, nil
		}
	}
	return "", nil
}

// CommandLines renders the recorded calls for assertions.
func (f *Fake) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return nil
	}
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.String())
	}
	return lines
}
