//go:build windows

package process

import (
	"os"
	"os/exec"
)

// Terminate asks the child to shut down. Windows has no process groups to
// target, so only the direct child is signalled; failures are swallowed.
func (c *Child) Terminate() {
	select {
	case <-c.done:
		return
	default:
	}
	if c.cmd.Process == nil {
		return
	}
	_ = c.cmd.Process.Signal(os.Interrupt)
}

// Kill forcibly terminates the direct child, best-effort.
func (c *Child) Kill() {
	if c.cmd.Process == nil {
		return
	}
	_ = c.cmd.Process.Kill()
}

func signalExitCode(exitErr *exec.ExitError) int {
	return -1
}
