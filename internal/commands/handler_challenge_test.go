package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestHandler_SolveChallenge(t *testing.T) {
	tests := map[string]struct {
		location    string
		inventory   []string
		challengeId string
		solution    string
		expSuccess  bool
		expArtifact string
		expMessage  string
		expHints    int
		expErr      error
	}{
		"exact answer": {
			location:    "hall",
			challengeId: "riddle",
			solution:    "lockpick",
			expSuccess:  true,
			expArtifact: "amulet",
			expMessage:  "Success! You receive the amulet.",
		},
		"answer in a sentence": {
			location:    "hall",
			challengeId: "riddle",
			solution:    "use the lockpick to open",
			expSuccess:  true,
			expArtifact: "amulet",
			expMessage:  "Success! You receive the amulet.",
		},
		"wrong answer shows hints": {
			location:    "hall",
			challengeId: "riddle",
			solution:    "banana",
			expMessage:  "That doesn't seem to work. Try again.",
			expHints:    1,
		},
		"wrong room": {
			location:    "armory",
			challengeId: "riddle",
			solution:    "lockpick",
			expMessage:  "That challenge is not here.",
			expHints:    1,
		},
		"missing required item": {
			location:    "armory",
			challengeId: "forge",
			solution:    "strike the anvil",
			expMessage:  "You need the hammer to attempt this challenge.",
		},
		"required item held": {
			location:    "armory",
			inventory:   []string{"hammer"},
			challengeId: "forge",
			solution:    "strike anvil",
			expSuccess:  true,
			expArtifact: "blade",
			expMessage:  "Success! You receive the blade.",
		},
		"unknown challenge": {
			location:    "hall",
			challengeId: "nope",
			solution:    "lockpick",
			expErr:      game.ErrChallengeNotFound,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, keepStory(), keepLocations())
			f.place(t, "alice", tt.location, game.StatusPlaying, tt.inventory...)

			res, err := f.h.SolveChallenge(context.Background(), SolveRequest{
				UserId: "alice", StoryId: "s1", ChallengeId: tt.challengeId, Solution: tt.solution,
			})
			if tt.expErr != nil {
				testutil.AssertEqual(t, "error kind", errors.Is(err, tt.expErr), true)
				testutil.AssertEqual(t, "not found", errors.Is(err, game.ErrNotFound), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "success", res.Success, tt.expSuccess)
			testutil.AssertEqual(t, "solved", res.Solved, tt.expSuccess)
			testutil.AssertEqual(t, "artifact", res.Artifact, tt.expArtifact)
			testutil.AssertEqual(t, "message", res.Message, tt.expMessage)

			p := f.player(t, "alice")
			if tt.expSuccess {
				testutil.AssertEqual(t, "awarded", p.HasItem(tt.expArtifact), true)
				testutil.AssertEqual(t, "puzzle recorded", p.HasSolved(tt.challengeId), true)
				story := f.stories.Get("s1")
				testutil.AssertEqual(t, "solved by", story.Challenge(tt.challengeId).HasSolved("alice"), true)
				testutil.AssertEqual(t, "solve events", countType(f.eventTypes(t), game.EventSolve), 1)
				return
			}

			if res.Challenge == nil {
				t.Fatalf("expected challenge to be exposed on rejection")
			}
			testutil.AssertEqual(t, "hints", len(res.Challenge.Hints), tt.expHints)
			testutil.AssertEqual(t, "solve events", countType(f.eventTypes(t), game.EventSolve), 0)
		})
	}
}

func TestHandler_SolveTwiceDoesNotReaward(t *testing.T) {
	f := newFixture(t, keepStory(), keepLocations())
	f.place(t, "alice", "hall", game.StatusPlaying)
	ctx := context.Background()
	req := SolveRequest{UserId: "alice", StoryId: "s1", ChallengeId: "riddle", Solution: "lockpick"}

	if _, err := f.h.SolveChallenge(ctx, req); err != nil {
		t.Fatalf("first solve: %v", err)
	}
	// Lose the reward, then solve again.
	f.player(t, "alice").RemoveItem("amulet")

	res, err := f.h.SolveChallenge(ctx, req)
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}
	testutil.AssertEqual(t, "success", res.Success, true)
	testutil.AssertEqual(t, "message", res.Message, "You have already solved this challenge.")
	testutil.AssertEqual(t, "reawarded", f.player(t, "alice").HasItem("amulet"), false)
	testutil.AssertEqual(t, "solve events", countType(f.eventTypes(t), game.EventSolve), 1)
	testutil.AssertEqual(t, "solved by", len(f.stories.Get("s1").Challenge("riddle").SolvedBy), 1)
}

func TestHandler_SolveUnlocksCondition(t *testing.T) {
	f := newFixture(t, keepStory(), keepLocations())
	f.place(t, "alice", "hall", game.StatusPlaying)
	ctx := context.Background()

	res, err := f.h.Move(ctx, MoveRequest{UserId: "alice", StoryId: "s1", Target: "garden"})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	testutil.AssertEqual(t, "barred", res.Success, false)

	if _, err := f.h.SolveChallenge(ctx, SolveRequest{UserId: "alice", StoryId: "s1", ChallengeId: "riddle", Solution: "lockpick"}); err != nil {
		t.Fatalf("solve: %v", err)
	}

	res, err = f.h.Move(ctx, MoveRequest{UserId: "alice", StoryId: "s1", Target: "garden"})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	testutil.AssertEqual(t, "open", res.Success, true)
}

func TestHandler_FinalTaskWin(t *testing.T) {
	story := keepStory()
	story.GoalRoomId = ""
	story.RequiredArtifacts = nil
	story.FinalTask = &game.FinalTask{LocationId: "hall", RequiredArtifacts: []string{"amulet", "key"}}

	f := newFixture(t, story, keepLocations())
	f.place(t, "alice", "hall", game.StatusPlaying, "key")

	res, err := f.h.SolveChallenge(context.Background(), SolveRequest{UserId: "alice", StoryId: "s1", ChallengeId: "riddle", Solution: "Lockpick"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "win", res.Win, true)
	testutil.AssertEqual(t, "message", res.Message, "With every artifact in hand you complete the final task. You have won!")
	testutil.AssertEqual(t, "status", f.player(t, "alice").Status, game.StatusWinner)
	testutil.AssertEqual(t, "win events", countType(f.eventTypes(t), game.EventWin), 1)
}

func TestHandler_AddChallenge(t *testing.T) {
	tests := map[string]struct {
		challenge game.Challenge
		expErr    error
	}{
		"added": {
			challenge: game.Challenge{Id: "well", LocationId: "garden", ArtifactId: "coin", Solution: "lower the bucket"},
		},
		"duplicate id": {
			challenge: game.Challenge{Id: "riddle", LocationId: "hall", ArtifactId: "coin", Solution: "x"},
			expErr:    game.ErrValidation,
		},
		"unknown location": {
			challenge: game.Challenge{Id: "well", LocationId: "moon", ArtifactId: "coin", Solution: "x"},
			expErr:    game.ErrLocationNotFound,
		},
		"no answer": {
			challenge: game.Challenge{Id: "well", LocationId: "garden", ArtifactId: "coin"},
			expErr:    game.ErrValidation,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, keepStory(), keepLocations())

			view, err := f.h.AddChallenge(context.Background(), AddChallengeRequest{StoryId: "s1", Challenge: tt.challenge})
			if tt.expErr != nil {
				testutil.AssertEqual(t, "error kind", errors.Is(err, tt.expErr), true)
				testutil.AssertEqual(t, "challenges", len(f.stories.Get("s1").Challenges), 2)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "id", view.Id, tt.challenge.Id)
			testutil.AssertEqual(t, "challenges", len(f.stories.Get("s1").Challenges), 3)
		})
	}
}
