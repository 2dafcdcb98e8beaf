package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

type TelnetListener struct {
	host string
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(host string, port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		host: host,
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	addr := net.JoinHostPort(l.host, strconv.Itoa(int(l.port)))
	ln, err := net.Listen("tcp", addr)
	if errors.Is(err, syscall.EADDRINUSE) {
		return fmt.Errorf("telnet port %d is taken by another process", l.port)
	}
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return l.serve(ctx, ln)
}

// serve accepts telnet clients on ln until ctx ends, then hangs up every
// open session and waits for them to return.
func (l *TelnetListener) serve(ctx context.Context, ln net.Listener) error {
	connCtx, hangup := context.WithCancel(context.WithoutCancel(ctx))
	sessions := &telnetSessions{
		accept: l.cm.AcceptConnection,
		ctx:    connCtx,
		hangup: hangup,
	}
	srv := telnet.NewServer(ln.Addr().String(), sessions)

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	slog.InfoContext(ctx, "listening for telnet", "addr", ln.Addr())
	err := srv.Serve(ln)
	sessions.close()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("accepting telnet clients: %w", err)
	}
	return nil
}

type telnetSessions struct {
	accept func(context.Context, io.ReadWriter)
	ctx    context.Context
	hangup context.CancelFunc

	mu     sync.Mutex
	closed bool
	active sync.WaitGroup
}

func (s *telnetSessions) HandleTelnet(conn *telnet.Connection) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.active.Add(1)
	s.mu.Unlock()
	defer s.active.Done()

	// A blocked read only returns once the socket is closed.
	release := context.AfterFunc(s.ctx, func() { _ = conn.Close() })
	defer release()

	remote := conn.RemoteAddr()
	slog.DebugContext(s.ctx, "telnet client connected", "remote", remote)
	s.accept(s.ctx, newCRLFReadWriter(conn))

	if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		slog.WarnContext(s.ctx, "closing telnet client", "remote", remote, "error", err)
	}
}

func (s *telnetSessions) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.hangup()
	s.active.Wait()
}
