package commands

import (
	"context"
	"sync"
	"testing"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestHandler_Take(t *testing.T) {
	tests := map[string]struct {
		target      string
		status      game.Status
		expSuccess  bool
		expArtifact bool
		expEvents   map[game.EventType]int
	}{
		"plain item": {
			target:     "torch",
			status:     game.StatusPlaying,
			expSuccess: true,
			expEvents:  map[game.EventType]int{game.EventTake: 1, game.EventArtifact: 0},
		},
		"artifact writes both events": {
			target:      "crown",
			status:      game.StatusPlaying,
			expSuccess:  true,
			expArtifact: true,
			expEvents:   map[game.EventType]int{game.EventTake: 1, game.EventArtifact: 1},
		},
		"not here": {
			target:    "sword",
			status:    game.StatusPlaying,
			expEvents: map[game.EventType]int{game.EventTake: 0, game.EventArtifact: 0},
		},
		"dead": {
			target:    "torch",
			status:    game.StatusKilled,
			expEvents: map[game.EventType]int{game.EventTake: 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, keepStory(), keepLocations())
			start := "hall"
			if tt.target == "crown" {
				start = "armory"
			}
			f.place(t, "alice", start, tt.status)

			res, err := f.h.Take(context.Background(), TakeRequest{UserId: "alice", StoryId: "s1", Target: tt.target})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "success", res.Success, tt.expSuccess)
			testutil.AssertEqual(t, "artifact", res.Artifact, tt.expArtifact)

			p := f.player(t, "alice")
			loc := f.locations.Get(game.LocationKey("s1", start))
			testutil.AssertEqual(t, "in inventory", p.HasItem(tt.target), tt.expSuccess)
			if tt.expSuccess {
				testutil.AssertEqual(t, "left in room", loc.HasItem(tt.target), false)
			}
			if tt.expArtifact {
				testutil.AssertEqual(t, "items found", len(p.GameProgress.ItemsFound), 1)
				testutil.AssertEqual(t, "progress", p.GameProgress.StoryProgress, 50)
			}

			types := f.eventTypes(t)
			for typ, n := range tt.expEvents {
				testutil.AssertEqual(t, string(typ)+" events", countType(types, typ), n)
			}
		})
	}
}

func TestHandler_TakeCreatesPlayer(t *testing.T) {
	f := newFixture(t, keepStory(), keepLocations())

	res, err := f.h.Take(context.Background(), TakeRequest{UserId: "bob", StoryId: "s1", Target: "key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "success", res.Success, true)
	testutil.AssertEqual(t, "join events", countType(f.eventTypes(t), game.EventJoin), 1)
	testutil.AssertEqual(t, "location", f.player(t, "bob").CurrentLocation, "hall")
}

func TestHandler_ConcurrentTakeAwardsOnce(t *testing.T) {
	f := newFixture(t, keepStory(), keepLocations())
	ctx := context.Background()

	users := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"}
	for _, u := range users {
		f.place(t, u, "hall", game.StatusPlaying)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for _, u := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.h.Take(ctx, TakeRequest{UserId: u, StoryId: "s1", Target: "key"})
			if err != nil {
				t.Errorf("take: %v", err)
				return
			}
			if res.Success {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, "successes", successes, 1)
	holders := 0
	for _, u := range users {
		if f.player(t, u).HasItem("key") {
			holders++
		}
	}
	testutil.AssertEqual(t, "holders", holders, 1)
	testutil.AssertEqual(t, "still in room", f.locations.Get(game.LocationKey("s1", "hall")).HasItem("key"), false)
}
