package commands

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/go-quest/internal/combat"
	"github.com/pixil98/go-quest/internal/eventlog"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/mailbox"
	"github.com/pixil98/go-quest/internal/storage"
)

var testNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type fixedAttacker struct {
	outcome combat.Outcome
}

func (a fixedAttacker) Attack() combat.Outcome {
	return a.outcome
}

type fixture struct {
	h         *Handler
	world     *game.WorldState
	log       *eventlog.MemoryLog
	mail      *mailbox.Mailbox
	stories   *storage.MemoryStore[*game.Story]
	locations *storage.MemoryStore[*game.Location]
	players   *storage.MemoryStore[*game.PlayerState]
}

// keepStory: hall is the start. The vault needs the key, the garden opens
// once the riddle is solved and the throne is the goal.
func keepStory() *game.Story {
	return &game.Story{
		Title:              "Keep",
		StartingLocationId: "hall",
		GoalRoomId:         "throne",
		RequiredArtifacts:  []string{"crown", "sword"},
		Challenges: []*game.Challenge{
			{
				Id:             "riddle",
				LocationId:     "hall",
				ArtifactId:     "amulet",
				ExpectedAction: "lockpick",
				Hints:          []string{"Something small opens big doors."},
				Unlocks:        "gate",
			},
			{
				Id:           "forge",
				LocationId:   "armory",
				ArtifactId:   "blade",
				Requirements: game.ChallengeRequirements{Item: "hammer"},
				Solution:     "strike the anvil",
			},
		},
	}
}

func keepLocations() []*game.Location {
	return []*game.Location{
		{Id: "hall", StoryId: "s1", Name: "Great Hall", Items: []string{"key", "torch"}, Exits: []game.Exit{
			{LocationId: "armory"},
			{LocationId: "vault", Requirements: game.Requirements{Item: "key"}},
			{LocationId: "garden"},
			{LocationId: "throne"},
		}},
		{Id: "armory", StoryId: "s1", Name: "Armory", Items: []string{"crown"}, Exits: []game.Exit{{LocationId: "hall"}}},
		{Id: "vault", StoryId: "s1", Name: "Vault", Items: []string{"sword"}, Exits: []game.Exit{{LocationId: "hall"}}},
		{Id: "garden", StoryId: "s1", Name: "Garden", Requirements: game.Requirements{Condition: "gate"}, Exits: []game.Exit{{LocationId: "hall"}}},
		{Id: "throne", StoryId: "s1", Name: "Throne Room", Exits: []game.Exit{{LocationId: "hall"}}},
	}
}

func newFixture(t *testing.T, story *game.Story, locs []*game.Location, opts ...HandlerOpt) *fixture {
	t.Helper()

	f := &fixture{
		log:       eventlog.NewMemoryLog(),
		mail:      mailbox.New(),
		stories:   storage.NewMemoryStore[*game.Story](),
		locations: storage.NewMemoryStore[*game.Location](),
		players:   storage.NewMemoryStore[*game.PlayerState](),
	}
	if err := f.stories.Save("s1", story); err != nil {
		t.Fatalf("saving story: %v", err)
	}
	for _, l := range locs {
		if err := f.locations.Save(game.LocationKey(l.StoryId, l.Id), l); err != nil {
			t.Fatalf("saving location: %v", err)
		}
	}

	f.world = game.NewWorldState(f.stories, f.locations, f.players, f.log, game.WithClock(func() time.Time { return testNow }))
	f.h = NewHandler(f.world, f.mail, opts...)
	return f
}

// place puts a player directly into the store.
func (f *fixture) place(t *testing.T, userId, loc string, status game.Status, inv ...string) *game.PlayerState {
	t.Helper()
	p := &game.PlayerState{
		StoryId:             "s1",
		UserId:              userId,
		CurrentLocation:     loc,
		DiscoveredLocations: []string{loc},
		Inventory:           inv,
		Status:              status,
	}
	if err := f.players.Save(game.PlayerKey("s1", userId), p); err != nil {
		t.Fatalf("saving player: %v", err)
	}
	return p
}

func (f *fixture) player(t *testing.T, userId string) *game.PlayerState {
	t.Helper()
	p := f.players.Get(game.PlayerKey("s1", userId))
	if p == nil {
		t.Fatalf("player %s not found", userId)
	}
	return p
}

func (f *fixture) eventTypes(t *testing.T) []game.EventType {
	t.Helper()
	evs, err := f.log.Recent(context.Background(), "s1", testNow)
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	var out []game.EventType
	for _, ev := range evs {
		out = append(out, ev.Type)
	}
	return out
}

func countType(types []game.EventType, typ game.EventType) int {
	n := 0
	for _, t := range types {
		if t == typ {
			n++
		}
	}
	return n
}
