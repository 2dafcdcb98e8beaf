package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

// FinalTask is the alternate win condition: hold every required artifact
// while standing in LocationId.
type FinalTask struct {
	RequiredArtifacts []string `json:"required_artifacts" yaml:"required_artifacts"`
	LocationId        string   `json:"location_id" yaml:"location_id"`
	Hints             []string `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// ChallengeRequirements lists what a player must carry to attempt a challenge.
type ChallengeRequirements struct {
	Item  string   `json:"item,omitempty" yaml:"item,omitempty"`
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
}

// All returns every required item, Item first.
func (r ChallengeRequirements) All() []string {
	var all []string
	if r.Item != "" {
		all = append(all, r.Item)
	}
	for _, it := range r.Items {
		all, _ = addUnique(all, it)
	}
	return all
}

// Challenge gates an artifact behind a free-text answer.
type Challenge struct {
	Id                 string                `json:"id" yaml:"id"`
	Title              string                `json:"title,omitempty" yaml:"title,omitempty"`
	Description        string                `json:"description,omitempty" yaml:"description,omitempty"`
	LocationId         string                `json:"location_id" yaml:"location_id"`
	ArtifactId         string                `json:"artifact_id" yaml:"artifact_id"`
	Requirements       ChallengeRequirements `json:"requirements" yaml:"requirements"`
	ExpectedAction     string                `json:"expected_action,omitempty" yaml:"expected_action,omitempty"`
	Solution           string                `json:"solution,omitempty" yaml:"solution,omitempty"`
	CompletionCriteria string                `json:"completion_criteria,omitempty" yaml:"completion_criteria,omitempty"`
	Hints              []string              `json:"hints,omitempty" yaml:"hints,omitempty"`

	// Unlocks names a condition flag granted on success; exits and
	// locations requiring that condition open for the solver.
	Unlocks string `json:"unlocks,omitempty" yaml:"unlocks,omitempty"`

	// SolvedBy holds the users who already collected ArtifactId.
	SolvedBy []string `json:"solved_by,omitempty" yaml:"solved_by,omitempty"`
}

func (c *Challenge) Clone() *Challenge {
	cc := *c
	cc.Requirements.Items = slices.Clone(c.Requirements.Items)
	cc.Hints = slices.Clone(c.Hints)
	cc.SolvedBy = slices.Clone(c.SolvedBy)
	return &cc
}

// Answers returns the non-empty reference answers in matching priority order.
func (c *Challenge) Answers() []string {
	var answers []string
	for _, a := range []string{c.ExpectedAction, c.Solution, c.CompletionCriteria} {
		if a != "" {
			answers = append(answers, a)
		}
	}
	return answers
}

func (c *Challenge) HasSolved(userId string) bool {
	return slices.Contains(c.SolvedBy, userId)
}

// MarkSolved records userId as having claimed the reward. It reports false
// when the user was already recorded.
func (c *Challenge) MarkSolved(userId string) bool {
	var added bool
	c.SolvedBy, added = addUnique(c.SolvedBy, userId)
	return added
}

func (c *Challenge) Validate() error {
	el := errors.NewErrorList()

	if !ValidId(c.Id) {
		el.Add(fmt.Errorf("challenge id %q is invalid", c.Id))
	}
	if c.LocationId == "" {
		el.Add(fmt.Errorf("challenge %s: location_id is required", c.Id))
	}
	if c.ArtifactId == "" {
		el.Add(fmt.Errorf("challenge %s: artifact_id is required", c.Id))
	}
	if len(c.Answers()) == 0 {
		el.Add(fmt.Errorf("challenge %s: one of expected_action, solution or completion_criteria is required", c.Id))
	}

	return el.Err()
}

// Story is a world definition shared by every player in it.
type Story struct {
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	StartingLocationId string   `json:"starting_location_id" yaml:"starting_location_id"`
	RequiredArtifacts  []string `json:"required_artifacts,omitempty" yaml:"required_artifacts,omitempty"`
	GoalRoomId         string   `json:"goal_room_id,omitempty" yaml:"goal_room_id,omitempty"`

	FinalTask  *FinalTask   `json:"final_task,omitempty" yaml:"final_task,omitempty"`
	Challenges []*Challenge `json:"challenges,omitempty" yaml:"challenges,omitempty"`
}

// Clone copies the story and each of its challenges.
func (s *Story) Clone() *Story {
	c := *s
	c.RequiredArtifacts = slices.Clone(s.RequiredArtifacts)
	if s.FinalTask != nil {
		ft := *s.FinalTask
		ft.RequiredArtifacts = slices.Clone(s.FinalTask.RequiredArtifacts)
		ft.Hints = slices.Clone(s.FinalTask.Hints)
		c.FinalTask = &ft
	}
	if s.Challenges != nil {
		c.Challenges = make([]*Challenge, len(s.Challenges))
		for i, ch := range s.Challenges {
			c.Challenges[i] = ch.Clone()
		}
	}
	return &c
}

// Validate satisfies storage.ValidatingSpec. A story uses exactly one win
// mode: either a final task or a goal room.
func (s *Story) Validate() error {
	el := errors.NewErrorList()

	if s.Title == "" {
		el.Add(fmt.Errorf("title is required"))
	}
	if s.StartingLocationId == "" {
		el.Add(fmt.Errorf("starting_location_id is required"))
	}

	switch {
	case s.FinalTask != nil && s.GoalRoomId != "":
		el.Add(fmt.Errorf("final_task and goal_room_id are mutually exclusive"))
	case s.FinalTask == nil && s.GoalRoomId == "":
		el.Add(fmt.Errorf("one of final_task or goal_room_id is required"))
	case s.FinalTask != nil:
		if s.FinalTask.LocationId == "" {
			el.Add(fmt.Errorf("final_task: location_id is required"))
		}
		if len(s.FinalTask.RequiredArtifacts) == 0 {
			el.Add(fmt.Errorf("final_task: required_artifacts must not be empty"))
		}
		if len(s.RequiredArtifacts) > 0 {
			el.Add(fmt.Errorf("required_artifacts belong in final_task when it is set"))
		}
	}

	seen := map[string]bool{}
	for _, c := range s.Challenges {
		if c == nil {
			el.Add(fmt.Errorf("challenge must not be null"))
			continue
		}
		el.Add(c.Validate())
		if seen[c.Id] {
			el.Add(fmt.Errorf("duplicate challenge id %q", c.Id))
		}
		seen[c.Id] = true
	}

	return el.Err()
}

// Selector satisfies the storage selectable interface.
func (s *Story) Selector() string {
	return s.Title
}

// Artifacts returns the artifact set gating the story's active win mode.
func (s *Story) Artifacts() []string {
	if s.FinalTask != nil {
		return s.FinalTask.RequiredArtifacts
	}
	return s.RequiredArtifacts
}

func (s *Story) IsArtifact(item string) bool {
	return slices.Contains(s.Artifacts(), item)
}

// Challenge returns the challenge with the given id, or nil.
func (s *Story) Challenge(id string) *Challenge {
	for _, c := range s.Challenges {
		if c.Id == id {
			return c
		}
	}
	return nil
}

// ChallengesAt returns the challenges located in locationId.
func (s *Story) ChallengesAt(locationId string) []*Challenge {
	var out []*Challenge
	for _, c := range s.Challenges {
		if c.LocationId == locationId {
			out = append(out, c)
		}
	}
	return out
}
