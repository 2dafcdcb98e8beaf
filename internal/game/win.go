package game

import (
	"context"
	"fmt"
	"log/slog"
)

type WinMode string

const (
	WinModeStandard  WinMode = "standard"
	WinModeFinalTask WinMode = "final_task"
)

// Mode returns the story's win mode. Validation guarantees exactly one.
func (s *Story) Mode() WinMode {
	if s.FinalTask != nil {
		return WinModeFinalTask
	}
	return WinModeStandard
}

// MeetsWinCondition evaluates the story's single win mode against p.
func MeetsWinCondition(s *Story, p *PlayerState) bool {
	switch s.Mode() {
	case WinModeFinalTask:
		return p.CurrentLocation == s.FinalTask.LocationId && p.HasItems(s.FinalTask.RequiredArtifacts)
	default:
		return s.GoalRoomId != "" && p.CurrentLocation == s.GoalRoomId && p.HasItems(s.RequiredArtifacts)
	}
}

func winMessage(s *Story) string {
	if s.Mode() == WinModeFinalTask {
		return "With every artifact in hand you complete the final task. You have won!"
	}
	return fmt.Sprintf("You have reached the goal with every artifact of %s. You have won!", s.Title)
}

// CheckWin flips p to winner when the win condition holds. It fires at most
// once per player: a winner is never re-evaluated. The player is saved and a
// win event recorded when it fires. Must be called holding the story lock.
func (w *WorldState) CheckWin(ctx context.Context, s *Story, p *PlayerState) (bool, string, error) {
	if p.IsWinner() || p.IsKilled() || !MeetsWinCondition(s, p) {
		return false, "", nil
	}

	won := p.Clone()
	won.Status = StatusWinner
	if err := w.SavePlayer(won); err != nil {
		return false, "", err
	}
	p.Status, p.UpdatedAt = won.Status, won.UpdatedAt

	msg := winMessage(s)
	slog.InfoContext(ctx, "player won", "story", p.StoryId, "user", p.UserId, "mode", s.Mode())
	if err := w.Record(ctx, p.StoryId, EventWin, p.UserId, "", fmt.Sprintf("%s won %s (%s).", p.UserId, s.Title, s.Mode())); err != nil {
		return false, "", err
	}
	return true, msg, nil
}
