package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/pixil98/go-quest/internal/game"
)

// Take moves an item from the player's current location into their
// inventory. The player is created on first use.
func (h *Handler) Take(ctx context.Context, req TakeRequest) (*TakeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "take", err)
	}

	var res *TakeResult
	err := h.world.WithStory(req.StoryId, func() error {
		var err error
		res, err = h.take(ctx, req)
		return err
	})
	if err != nil {
		return nil, fail(ctx, "take", err)
	}

	res.Messages = h.pending(req.UserId, req.StoryId)
	return res, nil
}

func (h *Handler) take(ctx context.Context, req TakeRequest) (*TakeResult, error) {
	story, err := h.world.Story(req.StoryId)
	if err != nil {
		return nil, err
	}
	p, _, err := h.world.GetOrCreatePlayer(ctx, req.StoryId, story, req.UserId)
	if err != nil {
		return nil, err
	}

	if p.IsKilled() {
		rejected(ctx, "take", req.UserId, "killed")
		return &TakeResult{Message: "You are dead and cannot pick anything up.", Inventory: slices.Clone(p.Inventory)}, nil
	}

	loc, err := h.world.CurrentLocation(p)
	if err != nil {
		return nil, err
	}
	if !loc.HasItem(req.Target) {
		rejected(ctx, "take", req.UserId, "not here")
		return &TakeResult{Message: "You don't see that here.", Inventory: slices.Clone(p.Inventory)}, nil
	}

	p, loc = p.Clone(), loc.Clone()
	artifact := story.IsArtifact(req.Target)
	loc.RemoveItem(req.Target)
	p.AddItem(req.Target)
	if artifact {
		p.RecordArtifact(story, req.Target)
	}

	// The player is written first: a failure between the two writes leaves
	// the item in both places rather than in neither.
	if err := h.world.SavePlayer(p); err != nil {
		return nil, err
	}
	if err := h.world.SaveLocation(loc); err != nil {
		return nil, err
	}

	err = h.world.Record(ctx, req.StoryId, game.EventTake, req.UserId, "", fmt.Sprintf("%s took the %s.", req.UserId, req.Target))
	if err != nil {
		return nil, err
	}

	res := &TakeResult{
		Success:   true,
		Message:   fmt.Sprintf("You take the %s.", req.Target),
		Inventory: slices.Clone(p.Inventory),
	}

	if artifact {
		res.Artifact = true
		res.Message = fmt.Sprintf("You take the %s. It is one of the artifacts you seek!", req.Target)
		err = h.world.Record(ctx, req.StoryId, game.EventArtifact, req.UserId, "", fmt.Sprintf("%s found the artifact %s.", req.UserId, req.Target))
		if err != nil {
			return nil, err
		}
	}

	won, msg, err := h.world.CheckWin(ctx, story, p)
	if err != nil {
		return nil, err
	}
	if won {
		res.Win = true
		res.Message = msg
	}
	return res, nil
}
