// Package action dispatches recognized gesture events to user-configured
// external commands. OS-level input injection is deliberately out of scope;
// a binding's command is the integration point for whatever the user wants a
// gesture to do.
package action

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/ranjeetds/gestify/internal/gesture"
	"github.com/ranjeetds/gestify/internal/store"
)

// Executor runs binding commands with a timeout. The gesture context travels
// in GESTIFY_* environment variables so bindings stay plain shell commands.
type Executor struct {
	timeout time.Duration
}

// NewExecutor creates an Executor with the given per-command timeout.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{timeout: timeout}
}

// Execute runs the binding's command for the given event. The command output
// is returned for logging; a non-zero exit or timeout is an error.
func (e *Executor) Execute(binding *store.Binding, ev gesture.Event) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binding.Command, binding.Args...)
	cmd.Env = append(os.Environ(),
		"GESTIFY_GESTURE="+ev.Gesture.String(),
		"GESTIFY_HAND="+ev.Hand,
		"GESTIFY_X="+strconv.Itoa(ev.Position.X),
		"GESTIFY_Y="+strconv.Itoa(ev.Position.Y),
		"GESTIFY_VX="+strconv.FormatFloat(ev.Velocity.X, 'f', 2, 64),
		"GESTIFY_VY="+strconv.FormatFloat(ev.Velocity.Y, 'f', 2, 64),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("command timeout after %s", e.timeout)
	}
	if err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("command failed: %w, stderr: %s", err, stderr.String())
		}
		return "", fmt.Errorf("command failed: %w", err)
	}

	return stdout.String(), nil
}
