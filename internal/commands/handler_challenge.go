package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-quest/internal/challenge"
	"github.com/pixil98/go-quest/internal/game"
)

// SolveChallenge checks a free-text answer against a challenge in the
// player's location and awards its artifact on the first success.
func (h *Handler) SolveChallenge(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "solve", err)
	}

	var res *SolveResult
	err := h.world.WithStory(req.StoryId, func() error {
		var err error
		res, err = h.solve(ctx, req)
		return err
	})
	if err != nil {
		return nil, fail(ctx, "solve", err)
	}

	res.Messages = h.pending(req.UserId, req.StoryId)
	return res, nil
}

func (h *Handler) solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	story, err := h.world.Story(req.StoryId)
	if err != nil {
		return nil, err
	}
	ch := story.Challenge(req.ChallengeId)
	if ch == nil {
		return nil, game.ErrChallengeNotFound
	}
	p, _, err := h.world.GetOrCreatePlayer(ctx, req.StoryId, story, req.UserId)
	if err != nil {
		return nil, err
	}

	view := newChallengeView(ch, req.UserId)
	reject := func(msg string) *SolveResult {
		rejected(ctx, "solve", req.UserId, msg)
		return &SolveResult{Message: msg, Challenge: view}
	}

	if p.IsKilled() {
		return reject("You are dead and cannot attempt challenges."), nil
	}
	if p.CurrentLocation != ch.LocationId {
		return reject("That challenge is not here."), nil
	}
	for _, it := range ch.Requirements.All() {
		if !p.HasItem(it) {
			return reject(fmt.Sprintf("You need the %s to attempt this challenge.", it)), nil
		}
	}

	if _, ok := challenge.MatchAny(req.Solution, ch.Answers()); !ok {
		return reject("That doesn't seem to work. Try again."), nil
	}

	if ch.HasSolved(req.UserId) {
		return &SolveResult{
			Success:  true,
			Solved:   true,
			Message:  "You have already solved this challenge.",
			Artifact: ch.ArtifactId,
		}, nil
	}

	story, p = story.Clone(), p.Clone()
	ch = story.Challenge(ch.Id)
	p.AddItem(ch.ArtifactId)
	if story.IsArtifact(ch.ArtifactId) {
		p.RecordArtifact(story, ch.ArtifactId)
	}
	p.RecordPuzzle(ch.Id)
	if ch.Unlocks != "" {
		p.RecordPuzzle(game.PuzzleFlag(ch.Unlocks))
	}
	ch.MarkSolved(req.UserId)

	if err := h.world.SavePlayer(p); err != nil {
		return nil, err
	}
	if err := h.world.SaveStory(req.StoryId, story); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "challenge solved", "story", req.StoryId, "user", req.UserId, "challenge", ch.Id)
	err = h.world.Record(ctx, req.StoryId, game.EventSolve, req.UserId, "", fmt.Sprintf("%s solved %s and received the %s.", req.UserId, ch.Id, ch.ArtifactId))
	if err != nil {
		return nil, err
	}

	res := &SolveResult{
		Success:  true,
		Solved:   true,
		Message:  fmt.Sprintf("Success! You receive the %s.", ch.ArtifactId),
		Artifact: ch.ArtifactId,
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

// AddChallenge appends a challenge definition to a story.
func (h *Handler) AddChallenge(ctx context.Context, req AddChallengeRequest) (*ChallengeView, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "add challenge", err)
	}

	var view *ChallengeView
	err := h.world.WithStory(req.StoryId, func() error {
		story, err := h.world.Story(req.StoryId)
		if err != nil {
			return err
		}
		if story.Challenge(req.Challenge.Id) != nil {
			return invalid(fmt.Errorf("challenge %q already exists", req.Challenge.Id))
		}
		if _, err := h.world.Location(req.StoryId, req.Challenge.LocationId); err != nil {
			return err
		}

		ch := req.Challenge
		story = story.Clone()
		story.Challenges = append(story.Challenges, &ch)
		if err := h.world.SaveStory(req.StoryId, story); err != nil {
			return err
		}

		view = newChallengeView(&ch, "")
		return h.world.Record(ctx, req.StoryId, game.EventChallenge, "", "", fmt.Sprintf("A new challenge appeared: %s.", ch.Id))
	})
	if err != nil {
		return nil, fail(ctx, "add challenge", err)
	}
	return view, nil
}
