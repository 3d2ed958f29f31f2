package process

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
)

// Child is a live supervised bot process. It is created by Start and owned by
// the supervisor loop until its exit status has been observed.
type Child struct {
	Name string
	Path string

	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

// Start launches the program at path as an isolated child process. The target
// must exist before spawning; a missing program is a fatal precondition and
// reported as an error wrapping fs.ErrNotExist. The child inherits the
// supervisor's stdio, runs with the provided environment snapshot in dir, and
// is placed in a new process group where the platform supports one. Start
// does not block: the child's exit is collected asynchronously and published
// through Done.
func Start(name, path string, environ []string, dir string) (*Child, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("bot %s: missing program %s: %w", name, path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("bot %s: stat program %s: %w", name, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("bot %s: program %s is a directory: %w", name, path, fs.ErrNotExist)
	}

	cmd := exec.Command(path)
	cmd.Dir = dir
	cmd.Env = environ
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	configureCmdSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start bot %s: %w", name, err)
	}

	c := &Child{Name: name, Path: path, cmd: cmd, done: make(chan struct{})}
	go func() {
		c.waitErr = cmd.Wait()
		close(c.done)
	}()
	return c, nil
}

// Pid returns the child's process identifier.
func (c *Child) Pid() int {
	return c.cmd.Process.Pid
}

// Done is closed once the child has exited and its status been collected.
func (c *Child) Done() <-chan struct{} {
	return c.done
}

// ExitCode reports how the child exited. It is only meaningful after Done has
// been closed: before that it returns -1. A child killed by a signal maps to
// the conventional 128+signal code on platforms that report signals.
func (c *Child) ExitCode() int {
	select {
	case <-c.done:
	default:
		return -1
	}
	if c.waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(c.waitErr, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		return signalExitCode(exitErr)
	}
	return -1
}
