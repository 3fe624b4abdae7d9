// Package bridge connects to the native playback engine.
//
// The engine listens on a unix socket (a named pipe on Windows) and speaks newline-delimited JSON.  Commands and
// events share the connection with the engine's log lines; the client separates them again into an event channel and
// a log channel.
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/PizzaHomicide/nplay/internal/log"
	"github.com/PizzaHomicide/nplay/internal/protocol"
)

// ErrNotConnected is returned when sending without a live connection
var ErrNotConnected = errors.New("not connected to engine")

// maxLineSize bounds a single inbound line.  Subtitle payloads can exceed bufio's default.
const maxLineSize = 1024 * 1024

// Client is a connection to a running engine
type Client struct {
	socketPath string

	mu      sync.Mutex
	conn    net.Conn
	closing chan struct{}
	once    sync.Once

	events chan protocol.Event
	logs   chan protocol.LogLine
	done   chan struct{}
}

// NewClient creates a client for the engine listening on socketPath
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		closing:    make(chan struct{}),
		events:     make(chan protocol.Event, 100),
		logs:       make(chan protocol.LogLine, 100),
		done:       make(chan struct{}),
	}
}

// DefaultSocketPath returns the socket path for engine communication
func DefaultSocketPath() string {
	// Use environment variable if set
	if path := os.Getenv("NPLAY_IPC_SOCKET"); path != "" {
		return path
	}

	// Otherwise use default location based on OS
	switch runtime.GOOS {
	case "windows":
		// Windows uses named pipes instead of unix sockets
		return `\\.\pipe\nplay-engine`
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("Failed to get user home directory", "error", err)
			return "/tmp/nplay-engine.sock"
		}
		return filepath.Join(homeDir, ".config", "nplay", "engine.sock")
	default:
		// Linux and others
		if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
			return filepath.Join(runtimeDir, "nplay-engine.sock")
		}
		return "/tmp/nplay-engine.sock"
	}
}

// SocketPath returns the path the client connects to
func (c *Client) SocketPath() string {
	return c.socketPath
}

// Connect establishes a connection with the engine and starts reading from it
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return nil
	}
	select {
	case <-c.closing:
		return ErrNotConnected
	default:
	}

	conn, err := dial(ctx, c.socketPath)
	if err != nil {
		return err
	}

	c.conn = conn
	go c.readLoop(conn)
	return nil
}

// WaitForConnection attempts to connect to the engine with retries
func (c *Client) WaitForConnection(ctx context.Context, maxAttempts int, retryDelay time.Duration) error {
	log.Debug("Waiting for engine socket", "socket_path", c.socketPath, "max_attempts", maxAttempts)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if socketExists(c.socketPath) {
			err := c.Connect(ctx)
			if err == nil {
				log.Info("Connected to engine", "attempt", attempt)
				return nil
			}
			log.Debug("Failed to connect to engine", "attempt", attempt, "error", err)
		} else {
			log.Debug("Engine socket does not exist yet", "attempt", attempt, "path", c.socketPath)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
			// Continue and retry
		}
	}

	return fmt.Errorf("failed to connect to engine after %d attempts", maxAttempts)
}

// Send writes a single command to the engine
func (c *Client) Send(cmd protocol.Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}
	data = append(data, '\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}

	log.Trace("Sending command to engine", "command", cmd.Kind.String(), "data", string(data))
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("failed to send %s: %w", cmd.Kind, err)
	}
	return nil
}

// Events returns the channel of structured messages from the engine.  It is closed when the connection ends.
func (c *Client) Events() <-chan protocol.Event {
	return c.events
}

// Logs returns the channel of engine log lines.  It is closed when the connection ends.
func (c *Client) Logs() <-chan protocol.LogLine {
	return c.logs
}

// Done is closed once the reader has stopped
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close closes the connection to the engine
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		close(c.closing)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.conn != nil {
			err = c.conn.Close()
			c.conn = nil
		} else {
			// Nothing will ever close these
			close(c.events)
			close(c.logs)
			close(c.done)
		}
	})
	return err
}

// readLoop splits the engine's output into events and log lines until the connection ends
func (c *Client) readLoop(conn net.Conn) {
	defer func() {
		close(c.events)
		close(c.logs)
		close(c.done)
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		log.Trace("Raw engine message", "data", string(line))

		in := protocol.Classify(line)
		switch in.Kind {
		case protocol.InboundEvent:
			select {
			case c.events <- in.Event:
			case <-c.closing:
				return
			}
		case protocol.InboundLog:
			select {
			case c.logs <- in.Log:
			case <-c.closing:
				return
			}
		default:
			log.Debug("Ignoring unrecognised engine message", "data", string(line))
		}
	}

	select {
	case <-c.closing:
	default:
		if err := scanner.Err(); err != nil {
			log.Error("Error reading from engine socket", "error", err)
		}
	}
	log.Debug("Engine reader stopped")
}
