// Package worldfile seeds stories and their locations from YAML files.
package worldfile

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

// World is one story together with every location it uses.
type World struct {
	Id        string           `yaml:"id"`
	Story     game.Story       `yaml:"story"`
	Locations []*game.Location `yaml:"locations"`
}

// Decode reads a single world document. Unknown keys are rejected.
func Decode(r io.Reader) (*World, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var w World
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("decoding world: %w", err)
	}

	for _, l := range w.Locations {
		if l != nil && l.StoryId == "" {
			l.StoryId = w.Id
		}
	}

	return &w, nil
}

func DecodeFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return w, nil
}

// Validate checks the story, every location and the references between them.
func (w *World) Validate() error {
	el := errors.NewErrorList()

	if !game.ValidId(w.Id) {
		el.Add(fmt.Errorf("world id %q is invalid", w.Id))
	}
	if err := w.Story.Validate(); err != nil {
		el.Add(fmt.Errorf("story: %w", err))
	}
	if len(w.Locations) == 0 {
		el.Add(fmt.Errorf("at least one location is required"))
	}

	known := map[string]bool{}
	for _, l := range w.Locations {
		if l == nil {
			el.Add(fmt.Errorf("location must not be null"))
			continue
		}
		el.Add(l.Validate())
		if l.StoryId != w.Id {
			el.Add(fmt.Errorf("location %s belongs to story %q", l.Id, l.StoryId))
		}
		if known[l.Id] {
			el.Add(fmt.Errorf("duplicate location id %q", l.Id))
		}
		known[l.Id] = true
	}

	ref := func(what, id string) {
		if id != "" && !known[id] {
			el.Add(fmt.Errorf("%s references unknown location %q", what, id))
		}
	}

	ref("starting_location_id", w.Story.StartingLocationId)
	ref("goal_room_id", w.Story.GoalRoomId)
	if w.Story.FinalTask != nil {
		ref("final_task", w.Story.FinalTask.LocationId)
	}
	for _, c := range w.Story.Challenges {
		if c != nil {
			ref("challenge "+c.Id, c.LocationId)
		}
	}
	for _, l := range w.Locations {
		if l == nil {
			continue
		}
		for _, e := range l.Exits {
			ref("exit from "+l.Id, e.LocationId)
		}
	}

	return el.Err()
}

// Import validates w and writes it to the stores. Locations are written
// before the story so a story is never visible without its rooms. A story
// that already exists is left untouched and Import reports false.
func Import(w *World, stories storage.Storer[*game.Story], locations storage.Storer[*game.Location]) (bool, error) {
	if err := w.Validate(); err != nil {
		return false, fmt.Errorf("world %s: %w", w.Id, err)
	}

	if stories.Get(w.Id) != nil {
		return false, nil
	}

	for _, l := range w.Locations {
		if err := locations.Save(game.LocationKey(w.Id, l.Id), l); err != nil {
			return false, fmt.Errorf("saving location %s: %w", l.Id, err)
		}
	}

	story := w.Story
	if err := stories.Save(w.Id, &story); err != nil {
		return false, fmt.Errorf("saving story %s: %w", w.Id, err)
	}

	return true, nil
}

// ImportDir imports every .yaml or .yml file in dir in name order.
func ImportDir(dir string, stories storage.Storer[*game.Story], locations storage.Storer[*game.Location]) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading world directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)

	el := errors.NewErrorList()
	for _, f := range files {
		w, err := DecodeFile(f)
		if err != nil {
			el.Add(err)
			continue
		}

		created, err := Import(w, stories, locations)
		if err != nil {
			el.Add(err)
			continue
		}
		if created {
			slog.Info("imported world", "story", w.Id, "locations", len(w.Locations), "file", filepath.Base(f))
		} else {
			slog.Debug("world already present", "story", w.Id)
		}
	}

	return el.Err()
}
