package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

// ConditionNone is the explicit "no condition" marker used by generated worlds.
const ConditionNone = "none"

// Requirements gate entry into a location or passage through an exit.
type Requirements struct {
	Item      string `json:"item,omitempty" yaml:"item,omitempty"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// PuzzleFlag is the progress flag that satisfies a condition.
func PuzzleFlag(condition string) string {
	return "puzzle_for_" + condition
}

// HasCondition reports whether a real condition is declared.
func (r Requirements) HasCondition() bool {
	return r.Condition != "" && r.Condition != ConditionNone
}

// Exit is a directed edge to another location of the same story.
type Exit struct {
	LocationId   string       `json:"location_id" yaml:"location_id"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
	Requirements Requirements `json:"requirements,omitempty" yaml:"requirements,omitempty"`
}

func (l *Location) Clone() *Location {
	c := *l
	c.Exits = slices.Clone(l.Exits)
	c.Items = slices.Clone(l.Items)
	return &c
}

// Location is a room of a story.
type Location struct {
	Id           string       `json:"id" yaml:"id"`
	StoryId      string       `json:"story_id" yaml:"story_id"`
	Name         string       `json:"name" yaml:"name"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
	Exits        []Exit       `json:"exits,omitempty" yaml:"exits,omitempty"`
	Items        []string     `json:"items,omitempty" yaml:"items,omitempty"`
	Requirements Requirements `json:"requirements,omitempty" yaml:"requirements,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (l *Location) Validate() error {
	el := errors.NewErrorList()

	if !ValidId(l.Id) {
		el.Add(fmt.Errorf("location id %q is invalid", l.Id))
	}
	if !ValidId(l.StoryId) {
		el.Add(fmt.Errorf("location %s: story_id %q is invalid", l.Id, l.StoryId))
	}
	if l.Name == "" {
		el.Add(fmt.Errorf("location %s: name is required", l.Id))
	}

	for i, e := range l.Exits {
		if e.LocationId == "" {
			el.Add(fmt.Errorf("location %s: exit %d: location_id is required", l.Id, i))
		}
	}

	return el.Err()
}

// Exit returns the exit leading to locationId, or nil when there is none.
func (l *Location) Exit(locationId string) *Exit {
	for i := range l.Exits {
		if l.Exits[i].LocationId == locationId {
			return &l.Exits[i]
		}
	}
	return nil
}

func (l *Location) HasItem(item string) bool {
	return slices.Contains(l.Items, item)
}

// RemoveItem takes item out of the room, reporting whether it was there.
func (l *Location) RemoveItem(item string) bool {
	var ok bool
	l.Items, ok = remove(l.Items, item)
	return ok
}
