package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-quest/internal/eventlog"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

type StorageConfig struct {
	Stories   AssetConfig[*game.Story]       `json:"stories" envPrefix:"STORIES_"`
	Locations AssetConfig[*game.Location]    `json:"locations" envPrefix:"LOCATIONS_"`
	Players   AssetConfig[*game.PlayerState] `json:"players" envPrefix:"PLAYERS_"`

	// Worlds is a directory of YAML world files imported at startup.
	Worlds string       `json:"worlds,omitempty" env:"WORLDS_PATH"`
	Events EventsConfig `json:"events" envPrefix:"EVENTS_"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Stories.validate("stories"))
	el.Add(c.Locations.validate("locations"))
	el.Add(c.Players.validate("players"))
	el.Add(c.Events.validate())

	if c.Worlds != "" {
		if _, err := os.Stat(c.Worlds); err != nil {
			el.Add(fmt.Errorf("worlds: invalid path %q: %w", c.Worlds, err))
		}
	}

	return el.Err()
}

type stores struct {
	stories   *storage.FileStore[*game.Story]
	locations *storage.FileStore[*game.Location]
	players   *storage.FileStore[*game.PlayerState]
}

func (c *StorageConfig) buildStores() (*stores, error) {
	stories, err := c.Stories.buildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating story store: %w", err)
	}
	locations, err := c.Locations.buildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating location store: %w", err)
	}
	players, err := c.Players.buildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating player store: %w", err)
	}

	return &stores{
		stories:   stories,
		locations: locations,
		players:   players,
	}, nil
}

// AssetConfig points at the directory of one record store. The directory is
// created when missing.
type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path" env:"PATH"`
}

func (c *AssetConfig[T]) validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	return nil
}

func (c *AssetConfig[T]) buildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

// EventsConfig selects the event log. Without a path events are kept in
// memory only.
type EventsConfig struct {
	Path   string `json:"path,omitempty" env:"PATH"`
	Window string `json:"window,omitempty" env:"WINDOW"`
}

func (c *EventsConfig) validate() error {
	if c.Window == "" {
		return nil
	}
	d, err := time.ParseDuration(c.Window)
	if err != nil {
		return fmt.Errorf("events: parsing window: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("events: window must be positive")
	}
	return nil
}

type eventLog interface {
	game.EventSink
	Close() error
}

func (c *EventsConfig) buildEventLog(ctx context.Context) (eventLog, error) {
	var opts []eventlog.LogOpt
	if c.Window != "" {
		d, _ := time.ParseDuration(c.Window)
		opts = append(opts, eventlog.WithWindow(d))
	}

	if c.Path == "" {
		return eventlog.NewMemoryLog(opts...), nil
	}
	return eventlog.OpenSQLite(ctx, c.Path, opts...)
}
