package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pixil98/go-quest/internal/combat"
	"github.com/pixil98/go-quest/internal/game"
)

// Kill attacks another player in the same location.
func (h *Handler) Kill(ctx context.Context, req KillRequest) (*KillResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "kill", err)
	}

	var res *KillResult
	err := h.world.WithStory(req.StoryId, func() error {
		var err error
		res, err = h.kill(ctx, req)
		return err
	})
	if err != nil {
		return nil, fail(ctx, "kill", err)
	}
	return res, nil
}

func (h *Handler) kill(ctx context.Context, req KillRequest) (*KillResult, error) {
	if _, err := h.world.Story(req.StoryId); err != nil {
		return nil, err
	}
	actor, target, err := h.loadPair(req.StoryId, req.PlayerId, req.TargetId)
	if err != nil {
		return nil, err
	}

	if reason := combat.CheckKill(actor, target); reason != "" {
		rejected(ctx, "kill", req.PlayerId, reason)
		return &KillResult{Message: reason}, nil
	}

	outcome := h.attacker.Attack()
	lootable := combat.ApplyKill(outcome, actor, target)

	switch outcome {
	case combat.OutcomeSuccess:
		err = h.world.SavePlayer(target)
	case combat.OutcomeCounter:
		err = h.world.SavePlayer(actor)
	}
	if err != nil {
		return nil, err
	}

	msg := combat.Describe(outcome, req.PlayerId, req.TargetId)
	slog.InfoContext(ctx, "kill attempt", "story", req.StoryId, "actor", req.PlayerId, "target", req.TargetId, "outcome", outcome)
	if err := h.world.Record(ctx, req.StoryId, outcome.EventType(), req.PlayerId, req.TargetId, msg); err != nil {
		return nil, err
	}

	return &KillResult{
		Success:       true,
		Outcome:       outcome,
		Message:       msg,
		LootableItems: lootable,
	}, nil
}

// Loot takes items from a killed player. Either every requested item moves
// or none does.
func (h *Handler) Loot(ctx context.Context, req LootRequest) (*LootResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "loot", err)
	}

	var res *LootResult
	err := h.world.WithStory(req.StoryId, func() error {
		var err error
		res, err = h.loot(ctx, req)
		return err
	})
	if err != nil {
		return nil, fail(ctx, "loot", err)
	}
	return res, nil
}

func (h *Handler) loot(ctx context.Context, req LootRequest) (*LootResult, error) {
	if _, err := h.world.Story(req.StoryId); err != nil {
		return nil, err
	}
	actor, target, err := h.loadPair(req.StoryId, req.PlayerId, req.TargetId)
	if err != nil {
		return nil, err
	}

	if reason := combat.CheckLoot(actor, target, req.Items); reason != "" {
		rejected(ctx, "loot", req.PlayerId, reason)
		return &LootResult{
			Message:         reason,
			ActorInventory:  slices.Clone(actor.Inventory),
			TargetInventory: slices.Clone(target.Inventory),
		}, nil
	}

	combat.Loot(actor, target, req.Items)

	// Receiver first, as with take.
	if err := h.world.SavePlayer(actor); err != nil {
		return nil, err
	}
	if err := h.world.SavePlayer(target); err != nil {
		return nil, err
	}

	items := strings.Join(req.Items, ", ")
	err = h.world.Record(ctx, req.StoryId, game.EventLoot, req.PlayerId, req.TargetId, fmt.Sprintf("%s looted %s from %s.", req.PlayerId, items, req.TargetId))
	if err != nil {
		return nil, err
	}

	return &LootResult{
		Success:         true,
		Message:         fmt.Sprintf("You take %s from %s.", items, req.TargetId),
		ActorInventory:  slices.Clone(actor.Inventory),
		TargetInventory: slices.Clone(target.Inventory),
	}, nil
}

// Help revives a killed player in the same location.
func (h *Handler) Help(ctx context.Context, req HelpRequest) (*HelpResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fail(ctx, "help", err)
	}

	var res *HelpResult
	err := h.world.WithStory(req.StoryId, func() error {
		var err error
		res, err = h.help(ctx, req)
		return err
	})
	if err != nil {
		return nil, fail(ctx, "help", err)
	}
	return res, nil
}

func (h *Handler) help(ctx context.Context, req HelpRequest) (*HelpResult, error) {
	if _, err := h.world.Story(req.StoryId); err != nil {
		return nil, err
	}
	actor, target, err := h.loadPair(req.StoryId, req.PlayerId, req.TargetId)
	if err != nil {
		return nil, err
	}

	if reason := combat.CheckHelp(actor, target); reason != "" {
		rejected(ctx, "help", req.PlayerId, reason)
		return &HelpResult{Message: reason, TargetStatus: target.Status}, nil
	}

	if !combat.Help(target) {
		return &HelpResult{
			Message:      fmt.Sprintf("%s does not need help.", req.TargetId),
			TargetStatus: target.Status,
		}, nil
	}

	if err := h.world.SavePlayer(target); err != nil {
		return nil, err
	}
	err = h.world.Record(ctx, req.StoryId, game.EventHelp, req.PlayerId, req.TargetId, fmt.Sprintf("%s helped %s back to their feet.", req.PlayerId, req.TargetId))
	if err != nil {
		return nil, err
	}

	return &HelpResult{
		Success:      true,
		Message:      fmt.Sprintf("You help %s back to their feet.", req.TargetId),
		TargetStatus: target.Status,
	}, nil
}
