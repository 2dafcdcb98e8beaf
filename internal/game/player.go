package game

import (
	"fmt"
	"slices"
	"time"

	"github.com/pixil98/go-errors"
)

type Status string

const (
	StatusPlaying Status = "playing"
	StatusKilled  Status = "killed"
	StatusWinner  Status = "winner"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlaying, StatusKilled, StatusWinner:
		return true
	}
	return false
}

// GameProgress tracks what a player has achieved so far.
type GameProgress struct {
	ItemsFound    []string `json:"items_found,omitempty"`
	PuzzlesSolved []string `json:"puzzles_solved,omitempty"`
	// StoryProgress is the percentage of the story's artifacts found.
	StoryProgress int `json:"story_progress"`
}

// PlayerState is one user's state within one story.
type PlayerState struct {
	StoryId             string       `json:"story_id"`
	UserId              string       `json:"user_id"`
	CurrentLocation     string       `json:"current_location"`
	Inventory           []string     `json:"inventory,omitempty"`
	DiscoveredLocations []string     `json:"discovered_locations,omitempty"`
	GameProgress        GameProgress `json:"game_progress"`
	Status              Status       `json:"status"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// NewPlayerState builds the initial state of userId in story.
func NewPlayerState(storyId string, story *Story, userId string, now time.Time) *PlayerState {
	return &PlayerState{
		StoryId:             storyId,
		UserId:              userId,
		CurrentLocation:     story.StartingLocationId,
		DiscoveredLocations: []string{story.StartingLocationId},
		Status:              StatusPlaying,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Clone returns a copy of p that shares no slices with it. Actions mutate a
// clone and save it, so a failed save leaves the stored state untouched.
func (p *PlayerState) Clone() *PlayerState {
	c := *p
	c.Inventory = slices.Clone(p.Inventory)
	c.DiscoveredLocations = slices.Clone(p.DiscoveredLocations)
	c.GameProgress.ItemsFound = slices.Clone(p.GameProgress.ItemsFound)
	c.GameProgress.PuzzlesSolved = slices.Clone(p.GameProgress.PuzzlesSolved)
	return &c
}

// Validate satisfies storage.ValidatingSpec.
func (p *PlayerState) Validate() error {
	el := errors.NewErrorList()

	if p.StoryId == "" {
		el.Add(fmt.Errorf("story_id is required"))
	}
	if p.UserId == "" {
		el.Add(fmt.Errorf("user_id is required"))
	}
	if p.CurrentLocation == "" {
		el.Add(fmt.Errorf("current_location is required"))
	}
	if !p.Status.Valid() {
		el.Add(fmt.Errorf("invalid status %q", p.Status))
	}

	return el.Err()
}

func (p *PlayerState) HasItem(item string) bool {
	return slices.Contains(p.Inventory, item)
}

// HasItems reports whether every item is carried.
func (p *PlayerState) HasItems(items []string) bool {
	return containsAll(p.Inventory, items)
}

// AddItem puts item in the inventory; duplicates are ignored.
func (p *PlayerState) AddItem(item string) bool {
	var added bool
	p.Inventory, added = addUnique(p.Inventory, item)
	return added
}

func (p *PlayerState) RemoveItem(item string) bool {
	var ok bool
	p.Inventory, ok = remove(p.Inventory, item)
	return ok
}

// Discover records locationId as visited.
func (p *PlayerState) Discover(locationId string) bool {
	var added bool
	p.DiscoveredLocations, added = addUnique(p.DiscoveredLocations, locationId)
	return added
}

func (p *PlayerState) HasSolved(puzzle string) bool {
	return slices.Contains(p.GameProgress.PuzzlesSolved, puzzle)
}

func (p *PlayerState) RecordPuzzle(puzzle string) bool {
	var added bool
	p.GameProgress.PuzzlesSolved, added = addUnique(p.GameProgress.PuzzlesSolved, puzzle)
	return added
}

// RecordArtifact notes item as found and recomputes StoryProgress.
func (p *PlayerState) RecordArtifact(story *Story, item string) {
	p.GameProgress.ItemsFound, _ = addUnique(p.GameProgress.ItemsFound, item)

	artifacts := story.Artifacts()
	if len(artifacts) == 0 {
		return
	}
	found := 0
	for _, a := range artifacts {
		if slices.Contains(p.GameProgress.ItemsFound, a) {
			found++
		}
	}
	p.GameProgress.StoryProgress = found * 100 / len(artifacts)
}

// Meets reports whether the player satisfies req. The second result is a
// hint describing what is missing.
func (p *PlayerState) Meets(req Requirements) (bool, string) {
	if req.Item != "" && !p.HasItem(req.Item) {
		return false, fmt.Sprintf("You need the %s to go there.", req.Item)
	}
	if req.HasCondition() && !p.HasSolved(PuzzleFlag(req.Condition)) {
		return false, fmt.Sprintf("The way is barred until you deal with %s.", req.Condition)
	}
	return true, ""
}

func (p *PlayerState) IsKilled() bool { return p.Status == StatusKilled }
func (p *PlayerState) IsWinner() bool { return p.Status == StatusWinner }
