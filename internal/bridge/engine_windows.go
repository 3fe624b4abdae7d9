//go:build windows

package bridge

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// setupEngineProcess configures the process for detached execution
func setupEngineProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}
}
