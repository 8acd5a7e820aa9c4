package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mobilectl/core/internal/infrastructure/logger"
)

// Command is one external program invocation.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes external commands and blocks until they finish.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner that executes real commands
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts the command and waits for it. A missing binary is returned
// unwrapped so callers can match exec.ErrNotFound.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	var stderr bytes.Buffer

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return err
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", cmd.Name, err, msg)
		}
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}

	return nil
}

// DryRunRunner logs commands instead of running them.
type DryRunRunner struct {
	logger *logger.Logger
}

// NewDryRunRunner creates a runner that only logs
func NewDryRunRunner(log *logger.Logger) *DryRunRunner {
	return &DryRunRunner{logger: log.WithComponent("dry_run")}
}

func (r *DryRunRunner) Run(ctx context.Context, cmd Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.logger.Infow("Skipping command", "command", cmd.Name, "args", cmd.Args)
	return nil
}
