//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Terminate asks the child's entire process group to shut down. Signalling is
// best-effort: a group that is already gone is not an error, and the
// supervisor is on its own shutdown path when this runs, so every failure is
// swallowed.
func (c *Child) Terminate() {
	select {
	case <-c.done:
		return
	default:
	}
	if c.cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-c.cmd.Process.Pid, syscall.SIGTERM)
}

// Kill forcibly terminates the child's process group, best-effort.
func (c *Child) Kill() {
	if c.cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-c.cmd.Process.Pid, syscall.SIGKILL)
}

func signalExitCode(exitErr *exec.ExitError) int {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return -1
}
