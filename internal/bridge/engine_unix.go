//go:build !windows

package bridge

import (
	"os/exec"
	"syscall"
)

// setupEngineProcess puts the engine in its own process group so terminal signals aimed at nplay do not reach it
func setupEngineProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
