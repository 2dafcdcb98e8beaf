package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
)

const (
	DefaultTickLength = time.Minute
)

// Manager is periodic upkeep such as pruning idle mailboxes.
type Manager interface {
	Tick(context.Context) error
}

// Driver runs every registered manager once per tick.
type Driver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks until ctx is cancelled. A failing tick is logged and the
// driver keeps going; game state is never left half-updated by a manager.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				slog.WarnContext(ctx, "driver tick", "error", err)
			}
		}
	}
}

// Tick runs every manager, even when an earlier one fails.
func (d *Driver) Tick(ctx context.Context) error {
	el := errors.NewErrorList()
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			el.Add(fmt.Errorf("manager %d (%T): %w", i, m, err))
		}
	}
	return el.Err()
}
