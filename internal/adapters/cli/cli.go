// Package cli adapts command-line key=value arguments to actions.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/ports"
)

// ParseArgs turns key=value arguments into action parameters. The value is
// everything after the first '='. Later keys override earlier ones.
func ParseArgs(args []string) (ports.ActionParams, error) {
	params := make(ports.ActionParams, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}

// Runner executes one action per invocation and prints the envelope.
type Runner struct {
	actions ports.ActionService
	out     io.Writer
}

// NewRunner creates a CLI runner writing results to out
func NewRunner(actions ports.ActionService, out io.Writer) *Runner {
	return &Runner{actions: actions, out: out}
}

// Run parses args, executes action and writes the result as indented JSON.
// The error is only for argument or output problems; a failed action is
// reported through the returned Result.
func (r *Runner) Run(ctx context.Context, action string, args []string) (entities.Result, error) {
	params, err := ParseArgs(args)
	if err != nil {
		return entities.Result{}, err
	}

	result := r.actions.Execute(ctx, action, params)

	enc := json.NewEncoder(r.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return result, fmt.Errorf("write result: %w", err)
	}

	return result, nil
}
