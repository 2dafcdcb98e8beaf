package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pixil98/go-quest/internal/game"
)

// fail logs internal errors and passes every error through unchanged.
// Validation and not-found errors are the caller's problem and are not
// logged above debug.
func fail(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, game.ErrInternal) {
		slog.ErrorContext(ctx, "action failed", "op", op, "error", err)
	} else {
		slog.DebugContext(ctx, "action rejected", "op", op, "error", err)
	}
	return err
}

// rejected logs a gameplay rejection.
func rejected(ctx context.Context, op, userId, reason string) {
	slog.DebugContext(ctx, "gameplay rejection", "op", op, "user", userId, "reason", reason)
}
