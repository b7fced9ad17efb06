// Package remote drives the GVRf debug console over TCP.
//
// The console is a plain line protocol: the client writes one statement per
// line and the device answers with free-form output followed by a prompt.
// A statement is complete once its prompt has been read back. Only one
// statement is ever in flight on a Session.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gearvrf/gvrf-exporter/internal/commands"
)

const (
	// DefaultPort is the port the GVRf DebugServer listens on.
	DefaultPort = 1645

	// MarkerConsole is the prompt of the top level console.
	MarkerConsole = "gvrf>"

	// MarkerScript is the prompt of the js interpreter.
	MarkerScript = "js>"

	// ScriptModeCommand switches the console into the js interpreter.
	ScriptModeCommand = "js"

	DefaultDialTimeout = 5 * time.Second
	DefaultReadTimeout = 30 * time.Second

	readChunkSize = 4096
)

var (
	ErrConnection   = errors.New("connection error")
	ErrTimeout      = errors.New("timed out waiting for console")
	ErrNotConnected = fmt.Errorf("%w: session is not connected", ErrConnection)
)

// Dialer opens the stream to the console. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Options configures a Session.
type Options struct {
	// Timeout for establishing the TCP connection.
	DialTimeout time.Duration

	// Timeout for each read while waiting for a prompt. Zero waits forever.
	ReadTimeout time.Duration

	// Log console output read while waiting for prompts.
	Debug bool

	// Dialer overrides the default TCP dialer.
	Dialer Dialer

	// Builder provides the variable names bound during bootstrap.
	Builder *commands.Builder
}

// DefaultOptions returns the dial and read timeouts used by the CLI.
func DefaultOptions() Options {
	return Options{
		DialTimeout: DefaultDialTimeout,
		ReadTimeout: DefaultReadTimeout,
	}
}

// Session owns one connection to a GVRf debug console.
//
// mu serialises statements and is held for a whole prompt wait. live is
// the same connection behind its own lock so Disconnect can close it while
// a wait is in progress.
type Session struct {
	mu sync.Mutex

	liveMu sync.Mutex
	live   net.Conn

	address string
	port    int

	conn      net.Conn
	connected bool
	mode      string

	scanner MarkerScanner
	opts    Options
	builder commands.Builder
}

// NewSession returns an unconnected session.
func NewSession(opts Options) *Session {
	builder := commands.NewBuilder()
	if opts.Builder != nil {
		builder = *opts.Builder
	}

	if opts.Dialer == nil {
		opts.Dialer = &net.Dialer{}
	}

	return &Session{
		opts:    opts,
		builder: builder,
	}
}

// Builder returns the statement builder matching the variables this
// session binds on the device.
func (s *Session) Builder() commands.Builder {
	return s.builder
}

func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return net.JoinHostPort(s.address, strconv.Itoa(s.port))
}

func (s *Session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Mode returns the prompt the console currently answers with, or an empty
// string when disconnected.
func (s *Session) Mode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) logger() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"address": s.address,
		"port":    s.port,
	})
}

// Connect dials the console, switches it into the js interpreter and binds
// the scene and camera variables. An existing connection is closed first.
func (s *Session) Connect(ctx context.Context, address string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(address) == 0 {
		return fmt.Errorf("%w: no console address configured", ErrConnection)
	}
	if port <= 0 {
		port = DefaultPort
	}

	s.closeLocked()
	s.address = address
	s.port = port

	return s.connectLocked(ctx)
}

// Reconnect dials the last address used by Connect.
func (s *Session) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.address) == 0 {
		return fmt.Errorf("%w: session was never connected", ErrConnection)
	}

	s.closeLocked()
	return s.connectLocked(ctx)
}

func (s *Session) connectLocked(ctx context.Context) error {
	target := net.JoinHostPort(s.address, strconv.Itoa(s.port))

	dialCtx := ctx
	if s.opts.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, s.opts.DialTimeout)
		defer cancel()
	}

	s.logger().Debugln("Connecting to GVRf console")

	conn, err := s.opts.Dialer.DialContext(dialCtx, "tcp", target)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrConnection, target, err)
	}

	s.conn = conn
	s.connected = true
	s.scanner.Reset()

	s.liveMu.Lock()
	s.live = conn
	s.liveMu.Unlock()

	if err := s.handshakeLocked(ctx); err != nil {
		s.closeLocked()
		return err
	}

	s.logger().Infoln("Connected to GVRf console")
	return nil
}

func (s *Session) handshakeLocked(ctx context.Context) error {
	if _, err := s.awaitLocked(ctx, MarkerConsole); err != nil {
		return fmt.Errorf("waiting for console prompt: %w", err)
	}
	s.mode = MarkerConsole

	if err := s.sendLocked(ScriptModeCommand); err != nil {
		return err
	}
	if _, err := s.awaitLocked(ctx, MarkerScript); err != nil {
		return fmt.Errorf("switching to js mode: %w", err)
	}
	s.mode = MarkerScript

	for _, statement := range s.builder.Bootstrap() {
		if err := s.execLocked(ctx, statement, MarkerScript); err != nil {
			return fmt.Errorf("preparing scene: %w", err)
		}
	}

	return nil
}

// Send writes one statement, adding the line break if it is missing.
func (s *Session) Send(command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendLocked(command)
}

func (s *Session) sendLocked(command string) error {
	if !s.connected {
		return ErrNotConnected
	}

	line := []byte(command)
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	logrus.WithField("statement", command).Traceln("Sending console statement")

	if _, err := s.conn.Write(line); err != nil {
		s.closeLocked()
		return fmt.Errorf("%w: write: %v", ErrConnection, err)
	}

	return nil
}

// AwaitMarker blocks until marker has been read and returns the output
// that preceded it. A timeout or a cancelled ctx closes the connection:
// the prompt may still arrive later and would be taken for the next
// statement's.
func (s *Session) AwaitMarker(ctx context.Context, marker string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaitLocked(ctx, marker)
}

func (s *Session) awaitLocked(ctx context.Context, marker string) ([]byte, error) {
	if !s.connected {
		return nil, ErrNotConnected
	}

	m := []byte(marker)
	if before, found := s.scanner.Scan(m); found {
		return before, nil
	}

	conn := s.conn
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	chunk := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, s.abortLocked(marker, err)
		}

		if err := conn.SetReadDeadline(s.readDeadline(ctx)); err != nil {
			s.closeLocked()
			return nil, fmt.Errorf("%w: set deadline: %v", ErrConnection, err)
		}

		// ctx may have been cancelled before the deadline above replaced
		// the one set by AfterFunc.
		if err := ctx.Err(); err != nil {
			return nil, s.abortLocked(marker, err)
		}

		n, err := conn.Read(chunk)
		if n > 0 {
			if s.opts.Debug {
				s.logger().WithField("output", string(chunk[:n])).Debugln("Console output")
			}
			if before, found := s.scanner.Feed(chunk[:n], m); found {
				return before, nil
			}
		}

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, s.abortLocked(marker, ctxErr)
			}

			var netErr net.Error
			if errors.Is(err, os.ErrDeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
				buffered := s.scanner.Buffered()
				s.closeLocked()
				return nil, fmt.Errorf("%w: %q not seen after %d bytes", ErrTimeout, marker, buffered)
			}

			s.closeLocked()
			switch {
			case errors.Is(err, io.EOF):
				return nil, fmt.Errorf("%w: console closed the connection", ErrConnection)
			case errors.Is(err, net.ErrClosed), errors.Is(err, io.ErrClosedPipe):
				return nil, fmt.Errorf("%w: session disconnected", ErrConnection)
			}
			return nil, fmt.Errorf("%w: read: %v", ErrConnection, err)
		}
	}
}

// abortLocked drops the connection after a wait ended by ctx.
func (s *Session) abortLocked(marker string, err error) error {
	s.closeLocked()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %q: %v", ErrTimeout, marker, err)
	}
	return fmt.Errorf("waiting for %q: %w", marker, err)
}

func (s *Session) readDeadline(ctx context.Context) time.Time {
	var deadline time.Time
	if s.opts.ReadTimeout > 0 {
		deadline = time.Now().Add(s.opts.ReadTimeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	return deadline
}

// Exec sends one statement and waits for the js prompt.
func (s *Session) Exec(ctx context.Context, command string) error {
	return s.ExecUntil(ctx, command, MarkerScript)
}

// ExecUntil sends one statement and waits for marker.
func (s *Session) ExecUntil(ctx context.Context, command, marker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.execLocked(ctx, command, marker)
}

// ExecAll runs statements in order and stops at the first failure. The
// statements already run are not undone.
func (s *Session) ExecAll(ctx context.Context, statements []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, statement := range statements {
		if err := s.execLocked(ctx, statement, MarkerScript); err != nil {
			return err
		}
	}
	return nil
}

// Eval runs one statement and returns the console output it produced.
func (s *Session) Eval(ctx context.Context, command string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sendLocked(command); err != nil {
		return "", err
	}
	out, err := s.awaitLocked(ctx, MarkerScript)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Session) execLocked(ctx context.Context, command, marker string) error {
	if err := s.sendLocked(command); err != nil {
		return err
	}
	_, err := s.awaitLocked(ctx, marker)
	return err
}

// Disconnect closes the connection. It is safe to call on a session that
// is not connected, and from another goroutine while a statement is in
// flight: the pending wait fails with ErrConnection.
func (s *Session) Disconnect() error {
	closed, err := s.closeLive()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()

	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: close: %v", ErrConnection, err)
	}

	if closed {
		s.logger().Debugln("Disconnected from GVRf console")
	}
	return nil
}

// closeLive closes the current connection without waiting for mu.
func (s *Session) closeLive() (bool, error) {
	s.liveMu.Lock()
	conn := s.live
	s.live = nil
	s.liveMu.Unlock()

	if conn == nil {
		return false, nil
	}
	return true, conn.Close()
}

func (s *Session) closeLocked() {
	s.closeLive()
	s.conn = nil
	s.connected = false
	s.mode = ""
	s.scanner.Reset()
}
