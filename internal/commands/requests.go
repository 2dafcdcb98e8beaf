package commands

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-quest/internal/game"
)

// maxMessageLen bounds chat messages and challenge answers.
const maxMessageLen = 1000

func requireId(field, value string) error {
	switch {
	case value == "":
		return fmt.Errorf("%s is required", field)
	case !game.ValidId(value):
		return fmt.Errorf("%s %q is invalid", field, value)
	}
	return nil
}

func requireText(field, value string) error {
	switch {
	case strings.TrimSpace(value) == "":
		return fmt.Errorf("%s is required", field)
	case len(value) > maxMessageLen:
		return fmt.Errorf("%s must be at most %d bytes", field, maxMessageLen)
	}
	return nil
}

// invalid marks err as a validation failure.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", game.ErrValidation, err)
}

type MoveRequest struct {
	UserId  string `json:"userId"`
	StoryId string `json:"storyId"`
	Target  string `json:"target"`
}

func (r MoveRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("userId", r.UserId))
	el.Add(requireId("storyId", r.StoryId))
	el.Add(requireId("target", r.Target))
	return invalid(el.Err())
}

type TakeRequest struct {
	UserId  string `json:"userId"`
	StoryId string `json:"storyId"`
	Target  string `json:"target"`
}

func (r TakeRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("userId", r.UserId))
	el.Add(requireId("storyId", r.StoryId))
	el.Add(requireId("target", r.Target))
	return invalid(el.Err())
}

type KillRequest struct {
	PlayerId string `json:"playerId"`
	TargetId string `json:"targetId"`
	StoryId  string `json:"storyId"`
}

func (r KillRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("playerId", r.PlayerId))
	el.Add(requireId("targetId", r.TargetId))
	el.Add(requireId("storyId", r.StoryId))
	return invalid(el.Err())
}

type LootRequest struct {
	PlayerId string   `json:"playerId"`
	TargetId string   `json:"targetId"`
	StoryId  string   `json:"storyId"`
	Items    []string `json:"items"`
}

func (r LootRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("playerId", r.PlayerId))
	el.Add(requireId("targetId", r.TargetId))
	el.Add(requireId("storyId", r.StoryId))
	if len(r.Items) == 0 {
		el.Add(fmt.Errorf("items must not be empty"))
	}
	seen := map[string]bool{}
	for i, it := range r.Items {
		el.Add(requireId(fmt.Sprintf("items[%d]", i), it))
		if seen[it] {
			el.Add(fmt.Errorf("item %q listed twice", it))
		}
		seen[it] = true
	}
	return invalid(el.Err())
}

type HelpRequest struct {
	PlayerId string `json:"playerId"`
	TargetId string `json:"targetId"`
	StoryId  string `json:"storyId"`
}

func (r HelpRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("playerId", r.PlayerId))
	el.Add(requireId("targetId", r.TargetId))
	el.Add(requireId("storyId", r.StoryId))
	return invalid(el.Err())
}

type SolveRequest struct {
	UserId      string `json:"userId"`
	StoryId     string `json:"storyId"`
	ChallengeId string `json:"challengeId"`
	Solution    string `json:"solution"`
}

func (r SolveRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("userId", r.UserId))
	el.Add(requireId("storyId", r.StoryId))
	el.Add(requireId("challengeId", r.ChallengeId))
	el.Add(requireText("solution", r.Solution))
	return invalid(el.Err())
}

type SendRequest struct {
	UserId  string `json:"userId"`
	StoryId string `json:"storyId"`
	Message string `json:"message"`
}

func (r SendRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("userId", r.UserId))
	el.Add(requireId("storyId", r.StoryId))
	el.Add(requireText("message", r.Message))
	return invalid(el.Err())
}

// MailboxRequest addresses one player's queue for poll and peek.
type MailboxRequest struct {
	UserId  string `json:"userId"`
	StoryId string `json:"storyId"`
}

func (r MailboxRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("userId", r.UserId))
	el.Add(requireId("storyId", r.StoryId))
	return invalid(el.Err())
}

// LookRequest addresses one player in a story; it serves Look and Status.
type LookRequest struct {
	UserId  string `json:"userId"`
	StoryId string `json:"storyId"`
}

func (r LookRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("userId", r.UserId))
	el.Add(requireId("storyId", r.StoryId))
	return invalid(el.Err())
}

type EventsRequest struct {
	StoryId string `json:"storyId"`
}

func (r EventsRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("storyId", r.StoryId))
	return invalid(el.Err())
}

type AddChallengeRequest struct {
	StoryId   string         `json:"storyId"`
	Challenge game.Challenge `json:"challenge"`
}

func (r AddChallengeRequest) Validate() error {
	el := errors.NewErrorList()
	el.Add(requireId("storyId", r.StoryId))
	el.Add(r.Challenge.Validate())
	if len(r.Challenge.SolvedBy) > 0 {
		el.Add(fmt.Errorf("a new challenge cannot be solved already"))
	}
	return invalid(el.Err())
}
