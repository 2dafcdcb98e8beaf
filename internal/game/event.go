package game

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type EventType string

const (
	EventJoin      EventType = "join"
	EventMove      EventType = "move"
	EventTake      EventType = "take"
	EventArtifact  EventType = "artifact"
	EventKill      EventType = "kill"
	EventKillFail  EventType = "kill-fail"
	EventCounter   EventType = "counter"
	EventLoot      EventType = "loot"
	EventHelp      EventType = "help"
	EventSolve     EventType = "solve"
	EventWin       EventType = "win"
	EventMessage   EventType = "message"
	EventChallenge EventType = "challenge"
)

// DefaultEventWindow is how far back Recent looks.
const DefaultEventWindow = 10 * time.Minute

// Event is one entry of a story's audit trail. Events are never modified.
type Event struct {
	Id        string    `json:"id"`
	StoryId   string    `json:"story_id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Actor     string    `json:"actor"`
	Target    string    `json:"target,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps a new event with a time-ordered id.
func NewEvent(storyId string, typ EventType, actor, target, msg string, at time.Time) Event {
	return Event{
		Id:        ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String(),
		StoryId:   storyId,
		Type:      typ,
		Message:   msg,
		Actor:     actor,
		Target:    target,
		Timestamp: at,
	}
}

// EventSink is the append-only event log.
type EventSink interface {
	Append(ctx context.Context, ev Event) error
	// Recent returns the story's events newer than now minus the visibility
	// window, oldest first.
	Recent(ctx context.Context, storyId string, now time.Time) ([]Event, error)
}

// EventPublisher announces appended events to live listeners. Failures are
// logged and never fail the action.
type EventPublisher interface {
	PublishEvent(ev Event) error
}
