package eventlog

import (
	"context"
	"sync"
	"time"

	"github.com/pixil98/go-quest/internal/game"
)

var _ game.EventSink = (*MemoryLog)(nil)

// MemoryLog keeps events in memory. Nothing is ever evicted.
type MemoryLog struct {
	mu     sync.RWMutex
	events []game.Event
	window time.Duration
}

func NewMemoryLog(opts ...LogOpt) *MemoryLog {
	o := buildOpts(opts)
	return &MemoryLog{window: o.window}
}

func (l *MemoryLog) Append(_ context.Context, ev game.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

func (l *MemoryLog) Recent(_ context.Context, storyId string, now time.Time) ([]game.Event, error) {
	since := now.Add(-l.window)

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []game.Event
	for _, ev := range l.events {
		if ev.StoryId == storyId && ev.Timestamp.After(since) {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Close is a no-op; it lets MemoryLog stand in for SQLiteLog.
func (l *MemoryLog) Close() error {
	return nil
}
