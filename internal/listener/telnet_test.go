package listener

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type greeter struct{}

func (greeter) RunSession(ctx context.Context, conn io.ReadWriter) error {
	name, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(conn, "hello %s", name)
	if err != nil {
		return err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestTelnetListener_Serve(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}

	l := NewTelnetListener("127.0.0.1", 0, NewConnectionManager(greeter{}))
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- l.serve(ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer func() { _ = conn.Close() }()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	if _, err := io.WriteString(conn, "alice\r\n"); err != nil {
		t.Fatalf("writing: %v", err)
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	testutil.AssertEqual(t, "greeting", line, "hello alice\r\n")

	// Shutting down hangs up the session still waiting on ctx.
	cancel()
	select {
	case err := <-served:
		testutil.AssertEqual(t, "serve error", err == nil, true)
	case <-time.After(5 * time.Second):
		t.Fatalf("listener did not stop")
	}
}
