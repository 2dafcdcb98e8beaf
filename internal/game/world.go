package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-quest/internal/storage"
)

// WorldState is the entry point to every persisted record. It owns one lock
// per story; all mutating actions on a story run while holding it, so the
// multi-record writes of a single action are never interleaved with another
// action on the same story.
type WorldState struct {
	stories   storage.Storer[*Story]
	locations storage.Storer[*Location]
	players   storage.Storer[*PlayerState]
	events    EventSink
	publisher EventPublisher
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type WorldOpt func(*WorldState)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) WorldOpt {
	return func(w *WorldState) {
		w.now = now
	}
}

// WithEventPublisher announces every recorded event through pub.
func WithEventPublisher(pub EventPublisher) WorldOpt {
	return func(w *WorldState) {
		w.publisher = pub
	}
}

func NewWorldState(
	stories storage.Storer[*Story],
	locations storage.Storer[*Location],
	players storage.Storer[*PlayerState],
	events EventSink,
	opts ...WorldOpt,
) *WorldState {
	w := &WorldState{
		stories:   stories,
		locations: locations,
		players:   players,
		events:    events,
		now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *WorldState) Now() time.Time {
	return w.now()
}

// Stories exposes the story store, e.g. for a selection menu.
func (w *WorldState) Stories() storage.Storer[*Story] {
	return w.stories
}

// WithStory runs fn while holding storyId's lock.
func (w *WorldState) WithStory(storyId string, fn func() error) error {
	w.mu.Lock()
	l, ok := w.locks[storyId]
	if !ok {
		l = &sync.Mutex{}
		w.locks[storyId] = l
	}
	w.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn()
}

// Story returns the story or ErrStoryNotFound.
func (w *WorldState) Story(storyId string) (*Story, error) {
	s := w.stories.Get(storyId)
	if s == nil {
		return nil, ErrStoryNotFound
	}
	return s, nil
}

// Location returns the location or ErrLocationNotFound.
func (w *WorldState) Location(storyId, locationId string) (*Location, error) {
	l := w.locations.Get(LocationKey(storyId, locationId))
	if l == nil {
		return nil, ErrLocationNotFound
	}
	return l, nil
}

// CurrentLocation loads the room a player stands in. A player pointing at a
// missing room is inconsistent data, not a caller mistake.
func (w *WorldState) CurrentLocation(p *PlayerState) (*Location, error) {
	l := w.locations.Get(LocationKey(p.StoryId, p.CurrentLocation))
	if l == nil {
		return nil, Internal("player %s references missing location %s/%s", p.UserId, p.StoryId, p.CurrentLocation)
	}
	return l, nil
}

// Player returns the player's state or ErrPlayerNotFound.
func (w *WorldState) Player(storyId, userId string) (*PlayerState, error) {
	p := w.players.Get(PlayerKey(storyId, userId))
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// PlayersAt lists the players of storyId currently in locationId.
func (w *WorldState) PlayersAt(storyId, locationId string) []*PlayerState {
	var out []*PlayerState
	for _, p := range w.players.GetAll() {
		if p.StoryId == storyId && p.CurrentLocation == locationId {
			out = append(out, p)
		}
	}
	return out
}

// GetOrCreatePlayer is the only place a PlayerState comes into existence.
// Must be called while holding the story lock.
func (w *WorldState) GetOrCreatePlayer(ctx context.Context, storyId string, story *Story, userId string) (*PlayerState, bool, error) {
	if p := w.players.Get(PlayerKey(storyId, userId)); p != nil {
		return p, false, nil
	}

	if w.locations.Get(LocationKey(storyId, story.StartingLocationId)) == nil {
		return nil, false, Internal("story %s starts in missing location %s", storyId, story.StartingLocationId)
	}

	p := NewPlayerState(storyId, story, userId, w.now())
	if err := w.SavePlayer(p); err != nil {
		return nil, false, err
	}

	slog.InfoContext(ctx, "player joined story", "story", storyId, "user", userId)
	err := w.Record(ctx, storyId, EventJoin, userId, "", userId+" entered the story.")
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (w *WorldState) SavePlayer(p *PlayerState) error {
	p.UpdatedAt = w.now()
	if err := w.players.Save(PlayerKey(p.StoryId, p.UserId), p); err != nil {
		return Internal("saving player %s/%s: %w", p.StoryId, p.UserId, err)
	}
	return nil
}

func (w *WorldState) SaveLocation(l *Location) error {
	if err := w.locations.Save(LocationKey(l.StoryId, l.Id), l); err != nil {
		return Internal("saving location %s/%s: %w", l.StoryId, l.Id, err)
	}
	return nil
}

func (w *WorldState) SaveStory(storyId string, s *Story) error {
	if err := w.stories.Save(storyId, s); err != nil {
		return Internal("saving story %s: %w", storyId, err)
	}
	return nil
}

// Record appends an event to the log and announces it.
func (w *WorldState) Record(ctx context.Context, storyId string, typ EventType, actor, target, msg string) error {
	ev := NewEvent(storyId, typ, actor, target, msg, w.now())
	if err := w.events.Append(ctx, ev); err != nil {
		return Internal("appending %s event: %w", typ, err)
	}

	if w.publisher != nil {
		if err := w.publisher.PublishEvent(ev); err != nil {
			slog.WarnContext(ctx, "publishing event", "story", storyId, "type", typ, "error", err)
		}
	}
	return nil
}

// RecentEvents returns the story's events inside the visibility window.
func (w *WorldState) RecentEvents(ctx context.Context, storyId string) ([]Event, error) {
	evs, err := w.events.Recent(ctx, storyId, w.now())
	if err != nil {
		return nil, Internal("reading events of %s: %w", storyId, err)
	}
	return evs, nil
}
