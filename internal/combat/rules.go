package combat

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-quest/internal/game"
)

func coLocated(actor, target *game.PlayerState) bool {
	return actor.CurrentLocation == target.CurrentLocation
}

// CheckKill returns a rejection message when actor may not attack target,
// or "" when the attack may proceed.
func CheckKill(actor, target *game.PlayerState) string {
	switch {
	case actor.UserId == target.UserId:
		return "You cannot attack yourself."
	case actor.IsKilled():
		return "You are dead and cannot fight."
	case actor.IsWinner():
		return "You have already won; your fighting days are over."
	case !coLocated(actor, target):
		return fmt.Sprintf("%s is not here.", target.UserId)
	case target.IsKilled():
		return fmt.Sprintf("%s is already dead.", target.UserId)
	case target.IsWinner():
		return fmt.Sprintf("%s has already won and cannot be harmed.", target.UserId)
	}
	return ""
}

// ApplyKill applies outcome to the two players and returns the inventory
// that became lootable, if any. Only the loser's status changes.
func ApplyKill(outcome Outcome, actor, target *game.PlayerState) []string {
	switch outcome {
	case OutcomeSuccess:
		target.Status = game.StatusKilled
		return slices.Clone(target.Inventory)
	case OutcomeCounter:
		actor.Status = game.StatusKilled
		return slices.Clone(actor.Inventory)
	}
	return nil
}

// Describe is the human readable result of a kill attempt.
func Describe(outcome Outcome, actorId, targetId string) string {
	switch outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("%s slays %s!", actorId, targetId)
	case OutcomeCounter:
		return fmt.Sprintf("%s turns the attack around and slays %s!", targetId, actorId)
	default:
		return fmt.Sprintf("%s attacks %s but misses.", actorId, targetId)
	}
}

// CheckLoot returns a rejection message when actor may not take items from
// target, or "" when every item may be transferred.
func CheckLoot(actor, target *game.PlayerState, items []string) string {
	switch {
	case actor.UserId == target.UserId:
		return "You cannot loot yourself."
	case actor.IsKilled():
		return "You are dead and cannot loot."
	case !coLocated(actor, target):
		return fmt.Sprintf("%s is not here.", target.UserId)
	case !target.IsKilled():
		return fmt.Sprintf("%s is still alive.", target.UserId)
	}
	for _, it := range items {
		if !target.HasItem(it) {
			return fmt.Sprintf("%s does not carry %s.", target.UserId, it)
		}
	}
	return ""
}

// Loot moves items from target to actor. Callers must check CheckLoot first.
func Loot(actor, target *game.PlayerState, items []string) {
	for _, it := range items {
		target.RemoveItem(it)
		actor.AddItem(it)
	}
}

// CheckHelp returns a rejection message when actor may not help target.
// A target that is not dead is reported separately by Help.
func CheckHelp(actor, target *game.PlayerState) string {
	switch {
	case actor.UserId == target.UserId:
		return "You cannot help yourself."
	case actor.IsKilled():
		return "You are dead and cannot help anyone."
	case !coLocated(actor, target):
		return fmt.Sprintf("%s is not here.", target.UserId)
	}
	return ""
}

// Help revives target. It reports false when the target did not need it.
func Help(target *game.PlayerState) bool {
	if !target.IsKilled() {
		return false
	}
	target.Status = game.StatusPlaying
	return true
}
