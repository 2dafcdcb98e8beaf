package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-quest/internal/game"
)

type validator interface {
	Validate() error
}

func TestRequests_Validate(t *testing.T) {
	tests := map[string]struct {
		req     validator
		expErrs []string
	}{
		"move ok": {
			req: MoveRequest{UserId: "alice", StoryId: "keep", Target: "hall"},
		},
		"move missing everything": {
			req:     MoveRequest{},
			expErrs: []string{"userId is required", "storyId is required", "target is required"},
		},
		"take bad id": {
			req:     TakeRequest{UserId: "al ice", StoryId: "keep", Target: "key"},
			expErrs: []string{`userId "al ice" is invalid`},
		},
		"kill ok": {
			req: KillRequest{PlayerId: "alice", TargetId: "bob", StoryId: "keep"},
		},
		"loot no items": {
			req:     LootRequest{PlayerId: "alice", TargetId: "bob", StoryId: "keep"},
			expErrs: []string{"items must not be empty"},
		},
		"loot duplicate and bad item": {
			req:     LootRequest{PlayerId: "alice", TargetId: "bob", StoryId: "keep", Items: []string{"key", "key", "a/b"}},
			expErrs: []string{`item "key" listed twice`, `items[2] "a/b" is invalid`},
		},
		"help missing target": {
			req:     HelpRequest{PlayerId: "alice", StoryId: "keep"},
			expErrs: []string{"targetId is required"},
		},
		"solve blank answer": {
			req:     SolveRequest{UserId: "alice", StoryId: "keep", ChallengeId: "riddle", Solution: "   "},
			expErrs: []string{"solution is required"},
		},
		"send too long": {
			req:     SendRequest{UserId: "alice", StoryId: "keep", Message: strings.Repeat("x", maxMessageLen+1)},
			expErrs: []string{"message must be at most"},
		},
		"mailbox ok": {
			req: MailboxRequest{UserId: "alice", StoryId: "keep"},
		},
		"events missing story": {
			req:     EventsRequest{},
			expErrs: []string{"storyId is required"},
		},
		"add challenge already solved": {
			req: AddChallengeRequest{StoryId: "keep", Challenge: game.Challenge{
				Id: "riddle", LocationId: "hall", ArtifactId: "crown", Solution: "echo", SolvedBy: []string{"alice"},
			}},
			expErrs: []string{"cannot be solved already"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertEqual(t, "validation error", errors.Is(err, game.ErrValidation), true)
			for _, e := range tt.expErrs {
				testutil.AssertErrorContains(t, err, e)
			}
		})
	}
}
