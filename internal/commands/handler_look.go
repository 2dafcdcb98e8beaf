package commands

import (
	"context"
	"slices"
	"strings"
)

// Look describes the player's location, creating the player on first use.
func (h *Handler) Look(ctx context.Context, req LookRequest) (*LookResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "look", err)
	}

	var res *LookResult
	err := h.world.WithStory(req.StoryId, func() error {
		story, err := h.world.Story(req.StoryId)
		if err != nil {
			return err
		}
		p, _, err := h.world.GetOrCreatePlayer(ctx, req.StoryId, story, req.UserId)
		if err != nil {
			return err
		}
		loc, err := h.world.CurrentLocation(p)
		if err != nil {
			return err
		}

		res = &LookResult{
			Location: newLocationView(loc),
			Status:   p.Status,
		}
		for _, other := range h.world.PlayersAt(req.StoryId, loc.Id) {
			if other.UserId == req.UserId {
				continue
			}
			res.Players = append(res.Players, PlayerView{UserId: other.UserId, Status: other.Status})
		}
		slices.SortFunc(res.Players, func(a, b PlayerView) int {
			return strings.Compare(a.UserId, b.UserId)
		})
		for _, ch := range story.ChallengesAt(loc.Id) {
			res.Challenges = append(res.Challenges, newChallengeView(ch, req.UserId))
		}
		return nil
	})
	if err != nil {
		return nil, fail(ctx, "look", err)
	}

	res.Messages = h.pending(req.UserId, req.StoryId)
	return res, nil
}

// Status returns a snapshot of an existing player.
func (h *Handler) Status(ctx context.Context, req LookRequest) (*StatusResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "status", err)
	}

	var res *StatusResult
	err := h.world.WithStory(req.StoryId, func() error {
		story, err := h.world.Story(req.StoryId)
		if err != nil {
			return err
		}
		p, err := h.world.Player(req.StoryId, req.UserId)
		if err != nil {
			return err
		}

		res = &StatusResult{
			Player:    *p.Clone(),
			Story:     story.Title,
			Mode:      story.Mode(),
			Artifacts: slices.Clone(story.Artifacts()),
		}
		return nil
	})
	if err != nil {
		return nil, fail(ctx, "status", err)
	}
	return res, nil
}

// RecentEvents lists the story's events inside the visibility window.
func (h *Handler) RecentEvents(ctx context.Context, req EventsRequest) (*EventsResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "events", err)
	}
	if _, err := h.world.Story(req.StoryId); err != nil {
		return nil, fail(ctx, "events", err)
	}

	evs, err := h.world.RecentEvents(ctx, req.StoryId)
	if err != nil {
		return nil, fail(ctx, "events", err)
	}
	return &EventsResult{Events: nonNil(evs)}, nil
}
