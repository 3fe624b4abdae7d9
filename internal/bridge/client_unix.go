//go:build !windows

package bridge

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/PizzaHomicide/nplay/internal/log"
)

// dial connects to the engine's unix domain socket
func dial(ctx context.Context, path string) (net.Conn, error) {
	log.Debug("Connecting to Unix socket", "path", path)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to engine socket: %w", err)
	}
	return conn, nil
}

func socketExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
