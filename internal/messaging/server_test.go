package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestNatsServer_PublishSubscribe(t *testing.T) {
	s, err := NewNatsServer(WithStartTimeout(5 * time.Second))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	select {
	case <-s.Ready():
	case err := <-done:
		t.Fatalf("server stopped: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server not ready")
	}

	got := make(chan string, 1)
	unsub, err := s.Subscribe(StorySubject("s1"), func(data []byte) { got <- string(data) })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	if err := s.Publish(StorySubject("s1"), []byte("hello")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-got:
		testutil.AssertEqual(t, "message", msg, "hello")
	case <-time.After(2 * time.Second):
		t.Fatalf("message not received")
	}
}

func TestNatsServer_NotStarted(t *testing.T) {
	s, err := NewNatsServer()
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	testutil.AssertErrorContains(t, s.Publish("x", nil), "nats server not started")
}
