package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/mailbox"
)

// SendMessage delivers a message to every other known player of the story.
func (h *Handler) SendMessage(ctx context.Context, req SendRequest) (*MailboxResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "send", err)
	}
	if _, err := h.world.Story(req.StoryId); err != nil {
		return nil, fail(ctx, "send", err)
	}

	n := h.mail.Send(ctx, req.UserId, req.StoryId, req.Message)
	err := h.world.Record(ctx, req.StoryId, game.EventMessage, req.UserId, "", fmt.Sprintf("%s sent a message.", req.UserId))
	if err != nil {
		return nil, fail(ctx, "send", err)
	}

	return &MailboxResult{Messages: []mailbox.Entry{}, Delivered: n}, nil
}

// Poll returns and clears the player's pending messages.
func (h *Handler) Poll(ctx context.Context, req MailboxRequest) (*MailboxResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "poll", err)
	}
	if _, err := h.world.Story(req.StoryId); err != nil {
		return nil, fail(ctx, "poll", err)
	}
	return &MailboxResult{Messages: nonNil(h.mail.Poll(req.UserId, req.StoryId))}, nil
}

// Peek returns the player's pending messages without clearing them.
func (h *Handler) Peek(ctx context.Context, req MailboxRequest) (*MailboxResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "peek", err)
	}
	if _, err := h.world.Story(req.StoryId); err != nil {
		return nil, fail(ctx, "peek", err)
	}
	return &MailboxResult{Messages: nonNil(h.mail.Peek(req.UserId, req.StoryId))}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
