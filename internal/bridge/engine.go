package bridge

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/PizzaHomicide/nplay/internal/log"
)

// EngineConfig describes how to launch the engine binary
type EngineConfig struct {
	Path       string
	Args       string // Extra arguments, split with ParseArgs
	SocketPath string
}

// Engine is a running engine process started by nplay
type Engine struct {
	cmd        *exec.Cmd
	socketPath string
	exited     chan int
}

// StartEngine launches the engine in its own process group.  The socket it should listen on is passed as
// --ipc-socket=<path> after any configured arguments.
func StartEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Path == "" {
		return nil, errors.New("no engine path configured")
	}

	var args []string
	if cfg.Args != "" {
		args = append(args, ParseArgs(cfg.Args)...)
	}
	args = append(args, "--ipc-socket="+cfg.SocketPath)

	cmd := exec.Command(cfg.Path, args...)
	setupEngineProcess(cmd)

	log.Info("Starting playback engine", "path", cfg.Path, "args", args)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}

	e := &Engine{
		cmd:        cmd,
		socketPath: cfg.SocketPath,
		exited:     make(chan int, 1),
	}
	go e.wait()
	return e, nil
}

func (e *Engine) wait() {
	err := e.cmd.Wait()
	status := e.cmd.ProcessState.ExitCode()
	if err != nil {
		log.Warn("Playback engine exited with error", "status", status, "error", err)
	} else {
		log.Info("Playback engine exited", "status", status)
	}
	e.exited <- status
	close(e.exited)
}

// Exited delivers the exit status once the process ends.  -1 means it was killed by a signal.
func (e *Engine) Exited() <-chan int {
	return e.exited
}

// Stop kills the engine if it is still running
func (e *Engine) Stop() error {
	if e.cmd.Process == nil {
		return nil
	}
	log.Info("Stopping playback engine")
	if err := e.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Cleanup stops the engine and removes a stale socket file
func (e *Engine) Cleanup() {
	if err := e.Stop(); err != nil {
		log.Warn("Failed to stop playback engine", "error", err)
	}

	// Remove socket file if it exists (Unix only)
	if _, err := os.Stat(e.socketPath); err == nil {
		if err := os.Remove(e.socketPath); err != nil {
			log.Warn("Failed to remove engine socket file", "path", e.socketPath, "error", err)
		}
	}
}
