package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

type Executor interface {
	Execute(ctx context.Context, cmd Command) (bool, error)
}

type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type DefaultExecutor struct {
	io     IOBindings
	logger *slog.Logger
}

func NewDefaultExecutor(bindings IOBindings, logger *slog.Logger) *DefaultExecutor {
	return &DefaultExecutor{io: bindings, logger: logger}
}

// Execute performs the effect of cmd and reports whether the read loop
// should continue.
func (e *DefaultExecutor) Execute(ctx context.Context, cmd Command) (bool, error) {
	switch c := cmd.(type) {
	case Empty:
		return true, nil

	case NotFound:
		fmt.Fprintln(e.io.Stdout, c.Name+": command not found")
		return true, nil

	case BuiltIn:
		return e.executeBuiltin(c.Cmd)

	case External:
		return true, e.executeExternal(ctx, c)
	}

	return false, fmt.Errorf("unknown command %T", cmd)
}

func (e *DefaultExecutor) executeBuiltin(cmd BuiltInCommand) (bool, error) {
	switch c := cmd.(type) {
	case Exit:
		return false, nil

	case Echo:
		fmt.Fprintln(e.io.Stdout, c.Content)
		return true, nil

	case Type:
		switch k := c.Kind.(type) {
		case TypeBuiltIn:
			fmt.Fprintln(e.io.Stdout, c.Name, "is a shell builtin")
		case TypeOther:
			fmt.Fprintln(e.io.Stdout, c.Name, "is", k.Path)
		default:
			fmt.Fprintln(e.io.Stdout, c.Name+": not found")
		}
		return true, nil
	}

	return false, fmt.Errorf("unknown builtin %T", cmd)
}

func (e *DefaultExecutor) executeExternal(ctx context.Context, c External) error {
	externalCmd := exec.CommandContext(ctx, c.Path, c.Args...)
	externalCmd.Args = append([]string{c.Name}, c.Args...)
	externalCmd.Stdin = e.io.Stdin
	externalCmd.Stdout = e.io.Stdout
	externalCmd.Stderr = e.io.Stderr

	if err := externalCmd.Run(); err != nil {
		// the child's own status is not the shell's concern
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			e.logger.Debug("external command exited", "name", c.Name, "code", exitErr.ExitCode())
			return nil
		}

		return &Error{Op: "run", Kind: KindSpawn, Path: c.Path, Err: err}
	}

	e.logger.Debug("external command exited", "name", c.Name, "code", 0)
	return nil
}
