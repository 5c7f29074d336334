// Package format builds the argument lists for the external tools
// that act on classified devices: mkfs variants, zpool/zfs, mount,
// sgdisk. Everything funnels through a Runner so callers (and tests)
// decide whether commands actually execute.
package format

import (
	"fmt"
	"os/exec"
	"strings"
)

// Command is one external invocation, exposed so callers can inspect
// or log exactly what would run.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands. The process-backed implementation
// is ExecRunner; tests substitute a recorder.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) ([]byte, error) {
	var stderr strings.Builder
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %s", name, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func run(r Runner, commands []Command) error {
	for _, c := range commands {
		if _, err := r.Run(c.Name, c.Args...); err != nil {
			return err
		}
	}
	return nil
}
