package listener

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/pixil98/go-quest/internal"
	"github.com/pixil98/go-quest/internal/player"
)

// SessionRunner plays one connection to completion.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

var _ SessionRunner = (*player.PlayerManager)(nil)

type ConnectionManager struct {
	sessions SessionRunner
}

func NewConnectionManager(sessions SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	err := m.sessions.RunSession(ctx, conn)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
	case errors.Is(err, player.ErrTakenOver), errors.Is(err, internal.ErrTooManyTries):
		slog.InfoContext(ctx, "player session closed", "reason", err)
	default:
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
