package command

import (
	"context"
	"fmt"
	"io"

	"github.com/pixil98/go-service"

	"github.com/pixil98/go-quest/internal/commands"
	"github.com/pixil98/go-quest/internal/driver"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/listener"
	"github.com/pixil98/go-quest/internal/messaging"
	"github.com/pixil98/go-quest/internal/player"
	"github.com/pixil98/go-quest/internal/worldfile"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	publisher := messaging.NewNatsPublisher(natsServer)

	st, err := cfg.Storage.buildStores()
	if err != nil {
		return nil, err
	}

	if cfg.Storage.Worlds != "" {
		if err := worldfile.ImportDir(cfg.Storage.Worlds, st.stories, st.locations); err != nil {
			return nil, fmt.Errorf("importing worlds: %w", err)
		}
	}

	events, err := cfg.Storage.Events.buildEventLog(context.Background())
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}

	world := game.NewWorldState(st.stories, st.locations, st.players, events, game.WithEventPublisher(publisher))
	mail := cfg.Mailbox.buildMailbox(publisher)
	handler := commands.NewHandler(world, mail)
	players := player.NewPlayerManager(handler, st.stories, natsServer)
	cm := listener.NewConnectionManager(players)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.buildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}

	drv := driver.NewDriver([]driver.Manager{
		mail,
	}, driver.WithTickLength(cfg.tickInterval()))

	return service.WorkerList{
		"nats":      natsServer,
		"events":    &closeOnStop{c: events},
		"players":   players,
		"driver":    drv,
		"listeners": &listeners,
	}, nil
}

// closeOnStop releases a resource when the app shuts down.
type closeOnStop struct {
	c io.Closer
}

func (w *closeOnStop) Start(ctx context.Context) error {
	<-ctx.Done()
	return w.c.Close()
}
