//go:build windows

package bridge

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/PizzaHomicide/nplay/internal/log"
	"gopkg.in/natefinch/npipe.v2"
)

// dial connects to the engine's named pipe
func dial(ctx context.Context, path string) (net.Conn, error) {
	log.Debug("Connecting to Windows named pipe", "path", path)

	timeout := 5 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	conn, err := npipe.DialTimeout(path, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to engine pipe: %w", err)
	}
	return conn, nil
}

// Named pipes have no file to look for, the dial itself is the check
func socketExists(string) bool {
	return true
}
