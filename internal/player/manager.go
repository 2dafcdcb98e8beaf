package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-quest/internal/commands"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/mailbox"
	"github.com/pixil98/go-quest/internal/messaging"
	"github.com/pixil98/go-quest/internal/storage"
)

// Subscriber delivers messages published on a subject.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// PlayerManager runs interactive sessions. A player may only be connected
// once per story; a new connection takes over the old one.
type PlayerManager struct {
	handler   *commands.Handler
	loginFlow *loginFlow
	subs      Subscriber

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewPlayerManager(h *commands.Handler, stories storage.Storer[*game.Story], subs Subscriber) *PlayerManager {
	return &PlayerManager{
		handler:   h,
		loginFlow: &loginFlow{stories: storage.NewSelectableStorer(stories)},
		subs:      subs,
		sessions:  map[string]*Session{},
	}
}

// Start blocks until ctx is canceled. Sessions end with their connections.
func (m *PlayerManager) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// RunSession logs the connection in and plays until it quits or drops.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	r := bufio.NewReader(conn)

	userId, storyId, err := m.loginFlow.Run(r, conn)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s := newSession(uuid.NewString(), userId, storyId, r, conn, m.handler)
	m.register(s)
	defer m.unregister(s)

	// Live notifications are best effort; the mailbox still holds messages.
	if m.subs != nil {
		unsubscribe, err := m.subscribe(s)
		if err != nil {
			slog.WarnContext(ctx, "session without live notifications", "session", s.id, "error", err)
		} else {
			defer unsubscribe()
		}
	}

	slog.InfoContext(ctx, "session started", "session", s.id, "user", userId, "story", storyId)
	defer slog.InfoContext(ctx, "session ended", "session", s.id, "user", userId, "story", storyId)

	return s.Play(ctx)
}

func (m *PlayerManager) register(s *Session) {
	key := game.PlayerKey(s.storyId, s.userId)

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[key]; ok {
		old.takeOver()
	}
	m.sessions[key] = s
}

func (m *PlayerManager) unregister(s *Session) {
	key := game.PlayerKey(s.storyId, s.userId)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[key] == s {
		delete(m.sessions, key)
	}
}

// Connected reports whether userId has a live session in storyId.
func (m *PlayerManager) Connected(storyId, userId string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[game.PlayerKey(storyId, userId)]
	return ok
}

func (m *PlayerManager) subscribe(s *Session) (func(), error) {
	unsubMail, err := m.subs.Subscribe(messaging.PlayerSubject(s.storyId, s.userId), func(data []byte) {
		var e mailbox.Entry
		if err := json.Unmarshal(data, &e); err != nil {
			slog.Warn("decoding mailbox notification", "session", s.id, "error", err)
			return
		}
		s.push(fmt.Sprintf("You have a new message from %s. Type 'mail' to read it.", e.UserId))
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to mailbox: %w", err)
	}

	unsubStory, err := m.subs.Subscribe(messaging.StorySubject(s.storyId), func(data []byte) {
		var ev game.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			slog.Warn("decoding story event", "session", s.id, "error", err)
			return
		}
		if ev.Actor == s.userId || ev.Type == game.EventMessage {
			return
		}
		s.push(ev.Message)
	})
	if err != nil {
		unsubMail()
		return nil, fmt.Errorf("subscribing to story events: %w", err)
	}

	return func() {
		unsubMail()
		unsubStory()
	}, nil
}
