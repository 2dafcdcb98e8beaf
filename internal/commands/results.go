package commands

import (
	"github.com/pixil98/go-quest/internal/combat"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/mailbox"
)

type ExitView struct {
	LocationId  string `json:"locationId"`
	Description string `json:"description,omitempty"`
}

// LocationView is what a player sees of a location.
type LocationView struct {
	Id          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Exits       []ExitView `json:"exits"`
	Items       []string   `json:"items"`
}

func newLocationView(l *game.Location) *LocationView {
	v := &LocationView{
		Id:          l.Id,
		Name:        l.Name,
		Description: l.Description,
		Items:       append([]string{}, l.Items...),
	}
	for _, e := range l.Exits {
		v.Exits = append(v.Exits, ExitView{LocationId: e.LocationId, Description: e.Description})
	}
	return v
}

// ChallengeView exposes a challenge without its answers.
type ChallengeView struct {
	Id           string   `json:"id"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Hints        []string `json:"hints,omitempty"`
	Solved       bool     `json:"solved"`
}

func newChallengeView(c *game.Challenge, userId string) *ChallengeView {
	return &ChallengeView{
		Id:           c.Id,
		Title:        c.Title,
		Description:  c.Description,
		Requirements: c.Requirements.All(),
		Hints:        c.Hints,
		Solved:       c.HasSolved(userId),
	}
}

// PlayerView is another player as seen from the same room.
type PlayerView struct {
	UserId string      `json:"userId"`
	Status game.Status `json:"status"`
}

type MoveResult struct {
	Success  bool            `json:"success"`
	Location *LocationView   `json:"location,omitempty"`
	Message  string          `json:"message"`
	Win      bool            `json:"win,omitempty"`
	Hint     string          `json:"hint,omitempty"`
	Messages []mailbox.Entry `json:"messages,omitempty"`
}

type TakeResult struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Inventory []string        `json:"inventory"`
	Artifact  bool            `json:"artifact,omitempty"`
	Win       bool            `json:"win,omitempty"`
	Messages  []mailbox.Entry `json:"messages,omitempty"`
}

type KillResult struct {
	Success       bool           `json:"success"`
	Outcome       combat.Outcome `json:"outcome,omitempty"`
	Message       string         `json:"message"`
	LootableItems []string       `json:"lootableItems,omitempty"`
}

type LootResult struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	ActorInventory  []string `json:"actorInventory"`
	TargetInventory []string `json:"targetInventory"`
}

type HelpResult struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	TargetStatus game.Status `json:"targetStatus"`
}

type SolveResult struct {
	Success   bool            `json:"success"`
	Solved    bool            `json:"solved"`
	Message   string          `json:"message"`
	Artifact  string          `json:"artifact,omitempty"`
	Win       bool            `json:"win,omitempty"`
	Challenge *ChallengeView  `json:"challenge,omitempty"`
	Messages  []mailbox.Entry `json:"messages,omitempty"`
}

type MailboxResult struct {
	Messages  []mailbox.Entry `json:"messages"`
	Delivered int             `json:"delivered,omitempty"`
}

type LookResult struct {
	Location   *LocationView    `json:"location"`
	Players    []PlayerView     `json:"players,omitempty"`
	Challenges []*ChallengeView `json:"challenges,omitempty"`
	Status     game.Status      `json:"status"`
	Messages   []mailbox.Entry  `json:"messages,omitempty"`
}

type StatusResult struct {
	Player    game.PlayerState `json:"player"`
	Story     string           `json:"story"`
	Mode      game.WinMode     `json:"mode"`
	Artifacts []string         `json:"artifacts"`
}

type EventsResult struct {
	Events []game.Event `json:"events"`
}
