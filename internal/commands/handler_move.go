package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-quest/internal/game"
)

// Move walks the player along an exit of their current location. The
// player must already exist.
func (h *Handler) Move(ctx context.Context, req MoveRequest) (*MoveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "move", err)
	}

	var res *MoveResult
	err := h.world.WithStory(req.StoryId, func() error {
		var err error
		res, err = h.move(ctx, req)
		return err
	})
	if err != nil {
		return nil, fail(ctx, "move", err)
	}

	res.Messages = h.pending(req.UserId, req.StoryId)
	return res, nil
}

func (h *Handler) move(ctx context.Context, req MoveRequest) (*MoveResult, error) {
	story, err := h.world.Story(req.StoryId)
	if err != nil {
		return nil, err
	}
	p, err := h.world.Player(req.StoryId, req.UserId)
	if err != nil {
		return nil, err
	}

	if p.IsKilled() {
		rejected(ctx, "move", req.UserId, "killed")
		return &MoveResult{Message: "You are dead. Someone must help you before you can move."}, nil
	}

	from, err := h.world.CurrentLocation(p)
	if err != nil {
		return nil, err
	}

	exit := from.Exit(req.Target)
	if exit == nil {
		rejected(ctx, "move", req.UserId, "no exit")
		return &MoveResult{
			Message: fmt.Sprintf("You cannot go to %s from here.", req.Target),
			Hint:    "Use look to see where the exits lead.",
		}, nil
	}

	to, err := h.world.Location(req.StoryId, req.Target)
	if err != nil {
		return nil, game.Internal("exit from %s leads to missing location %s", from.Id, req.Target)
	}

	for _, r := range []game.Requirements{exit.Requirements, to.Requirements} {
		if ok, hint := p.Meets(r); !ok {
			rejected(ctx, "move", req.UserId, hint)
			return &MoveResult{
				Message: fmt.Sprintf("You cannot enter %s yet.", to.Name),
				Hint:    hint,
			}, nil
		}
	}

	p = p.Clone()
	p.CurrentLocation = to.Id
	p.Discover(to.Id)
	if err := h.world.SavePlayer(p); err != nil {
		return nil, err
	}

	err = h.world.Record(ctx, req.StoryId, game.EventMove, req.UserId, "", fmt.Sprintf("%s moved to %s.", req.UserId, to.Name))
	if err != nil {
		return nil, err
	}

	res := &MoveResult{
		Success:  true,
		Location: newLocationView(to),
		Message:  fmt.Sprintf("You are in %s.", to.Name),
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
