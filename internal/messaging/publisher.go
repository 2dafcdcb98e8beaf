package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/mailbox"
)

var (
	_ mailbox.Notifier    = (*NatsPublisher)(nil)
	_ game.EventPublisher = (*NatsPublisher)(nil)
)

// PlayerSubject carries mailbox notifications for one player of a story.
func PlayerSubject(storyId, userId string) string {
	return fmt.Sprintf("player-%s-%s", storyId, userId)
}

// StorySubject carries event announcements for a story.
func StorySubject(storyId string) string {
	return fmt.Sprintf("story-%s", storyId)
}

type Publisher interface {
	Publish(subject string, data []byte) error
}

// NatsPublisher fans mailbox entries and story events out over NATS.
type NatsPublisher struct {
	pub Publisher
}

func NewNatsPublisher(pub Publisher) *NatsPublisher {
	return &NatsPublisher{pub: pub}
}

func (p *NatsPublisher) Notify(storyId, userId string, e mailbox.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling mailbox entry: %w", err)
	}
	return p.pub.Publish(PlayerSubject(storyId, userId), data)
}

func (p *NatsPublisher) PublishEvent(ev game.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	return p.pub.Publish(StorySubject(ev.StoryId), data)
}
