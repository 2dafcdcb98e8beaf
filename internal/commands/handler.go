// Package commands implements the player actions of the game engine. Every
// action validates its request, then runs under the story's lock so that the
// records it touches are read and written as one unit.
package commands

import (
	"github.com/pixil98/go-quest/internal/combat"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/mailbox"
)

// Attacker decides kill attempts.
type Attacker interface {
	Attack() combat.Outcome
}

type Handler struct {
	world    *game.WorldState
	mail     *mailbox.Mailbox
	attacker Attacker
}

type HandlerOpt func(*Handler)

// WithAttacker replaces the default random combat resolver.
func WithAttacker(a Attacker) HandlerOpt {
	return func(h *Handler) {
		h.attacker = a
	}
}

func NewHandler(world *game.WorldState, mail *mailbox.Mailbox, opts ...HandlerOpt) *Handler {
	h := &Handler{
		world:    world,
		mail:     mail,
		attacker: combat.NewResolver(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// pending drains the player's mailbox when something is waiting.
func (h *Handler) pending(userId, storyId string) []mailbox.Entry {
	if !h.mail.HasUnread(userId, storyId) {
		return nil
	}
	return h.mail.Poll(userId, storyId)
}

// loadPair loads private copies of two existing players of the same story.
func (h *Handler) loadPair(storyId, actorId, targetId string) (*game.PlayerState, *game.PlayerState, error) {
	actor, err := h.world.Player(storyId, actorId)
	if err != nil {
		return nil, nil, err
	}
	target, err := h.world.Player(storyId, targetId)
	if err != nil {
		return nil, nil, err
	}
	return actor.Clone(), target.Clone(), nil
}
