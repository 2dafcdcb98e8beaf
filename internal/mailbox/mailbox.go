// Package mailbox holds the per-story message queues players use to talk to
// each other asynchronously.
package mailbox

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one delivered message.
type Entry struct {
	Id        string    `json:"id"`
	UserId    string    `json:"user_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier is told about every entry queued for a recipient.
type Notifier interface {
	Notify(storyId, userId string, e Entry) error
}

type queue struct {
	entries  []Entry
	lastSeen time.Time
}

// Mailbox is the registry of queues keyed by story then user. A user is
// registered the first time they send, poll or peek.
type Mailbox struct {
	mu       sync.Mutex
	stories  map[string]map[string]*queue
	notifier Notifier
	idleTTL  time.Duration
	now      func() time.Time
}

type MailboxOpt func(*Mailbox)

func WithNotifier(n Notifier) MailboxOpt {
	return func(m *Mailbox) {
		m.notifier = n
	}
}

// WithIdleTTL enables pruning of empty queues unused for ttl.
func WithIdleTTL(ttl time.Duration) MailboxOpt {
	return func(m *Mailbox) {
		m.idleTTL = ttl
	}
}

func WithClock(now func() time.Time) MailboxOpt {
	return func(m *Mailbox) {
		m.now = now
	}
}

func New(opts ...MailboxOpt) *Mailbox {
	m := &Mailbox{
		stories: make(map[string]map[string]*queue),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// register returns userId's queue, creating it if needed. Caller holds mu.
func (m *Mailbox) register(storyId, userId string) *queue {
	users, ok := m.stories[storyId]
	if !ok {
		users = make(map[string]*queue)
		m.stories[storyId] = users
	}
	q, ok := users[userId]
	if !ok {
		q = &queue{}
		users[userId] = q
	}
	q.lastSeen = m.now()
	return q
}

// Send queues message for every other registered user of the story and
// returns the number of recipients.
func (m *Mailbox) Send(ctx context.Context, senderId, storyId, message string) int {
	e := Entry{
		Id:        uuid.New().String(),
		UserId:    senderId,
		Message:   message,
		Timestamp: m.now(),
	}

	m.mu.Lock()
	m.register(storyId, senderId)
	var recipients []string
	for uid, q := range m.stories[storyId] {
		if uid == senderId {
			continue
		}
		q.entries = append(q.entries, e)
		recipients = append(recipients, uid)
	}
	m.mu.Unlock()

	if m.notifier != nil {
		for _, uid := range recipients {
			if err := m.notifier.Notify(storyId, uid, e); err != nil {
				slog.WarnContext(ctx, "notifying recipient", "story", storyId, "user", uid, "error", err)
			}
		}
	}

	return len(recipients)
}

// Peek returns the user's pending entries without consuming them.
func (m *Mailbox) Peek(userId, storyId string) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := m.register(storyId, userId)
	return slices.Clone(q.entries)
}

// Poll returns the user's pending entries and empties the queue.
func (m *Mailbox) Poll(userId, storyId string) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := m.register(storyId, userId)
	entries := q.entries
	q.entries = nil
	return entries
}

// HasUnread reports whether the user has pending entries. It does not
// register the user.
func (m *Mailbox) HasUnread(userId, storyId string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.stories[storyId][userId]
	return ok && len(q.entries) > 0
}

// Registered reports whether the user has a queue in the story.
func (m *Mailbox) Registered(userId, storyId string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.stories[storyId][userId]
	return ok
}

// Prune drops empty queues idle since before now minus the TTL and returns
// how many were removed. It does nothing when no TTL is set.
func (m *Mailbox) Prune(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}

	cutoff := now.Add(-m.idleTTL)
	removed := 0

	m.mu.Lock()
	defer m.mu.Unlock()
	for storyId, users := range m.stories {
		for uid, q := range users {
			if len(q.entries) == 0 && q.lastSeen.Before(cutoff) {
				delete(users, uid)
				removed++
			}
		}
		if len(users) == 0 {
			delete(m.stories, storyId)
		}
	}
	return removed
}

// Tick satisfies driver.Manager.
func (m *Mailbox) Tick(ctx context.Context) error {
	if n := m.Prune(m.now()); n > 0 {
		slog.DebugContext(ctx, "pruned idle mailboxes", "count", n)
	}
	return nil
}
