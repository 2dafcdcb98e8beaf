package game

import (
	"context"
	"sync"
	"time"

	"github.com/pixil98/go-quest/internal/storage"
)

var testNow = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Append(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) Recent(_ context.Context, storyId string, now time.Time) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, ev := range s.events {
		if ev.StoryId == storyId && ev.Timestamp.After(now.Add(-DefaultEventWindow)) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *recordingSink) types() []EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []EventType
	for _, ev := range s.events {
		out = append(out, ev.Type)
	}
	return out
}

func newTestWorld(story *Story, locs ...*Location) (*WorldState, *recordingSink) {
	stories := storage.NewMemoryStore[*Story]()
	locations := storage.NewMemoryStore[*Location]()
	players := storage.NewMemoryStore[*PlayerState]()
	sink := &recordingSink{}

	_ = stories.Save("s1", story)
	for _, l := range locs {
		_ = locations.Save(LocationKey(l.StoryId, l.Id), l)
	}

	w := NewWorldState(stories, locations, players, sink, WithClock(func() time.Time { return testNow }))
	return w, sink
}
