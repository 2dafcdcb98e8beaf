package command

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-quest/internal/mailbox"
)

// Config is read from the JSON config file. Environment variables prefixed
// with QUEST_ override individual settings.
type Config struct {
	TickInterval string           `json:"tick_interval" env:"QUEST_TICK_INTERVAL"`
	Listeners    []ListenerConfig `json:"listeners"`
	Storage      StorageConfig    `json:"storage" envPrefix:"QUEST_"`
	Nats         NatsConfig       `json:"nats" envPrefix:"QUEST_NATS_"`
	Mailbox      MailboxConfig    `json:"mailbox" envPrefix:"QUEST_MAILBOX_"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < time.Second {
		el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Mailbox.validate())

	return el.Err()
}

// applyEnv overlays environment variables on the file config. Unset
// variables leave the file values alone.
func (c *Config) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

func (c *Config) tickInterval() time.Duration {
	d, _ := time.ParseDuration(c.TickInterval)
	return d
}

type MailboxConfig struct {
	IdleTTL string `json:"idle_ttl" env:"IDLE_TTL"`
}

func (c *MailboxConfig) validate() error {
	if c.IdleTTL == "" {
		return nil
	}
	d, err := time.ParseDuration(c.IdleTTL)
	if err != nil {
		return fmt.Errorf("mailbox: parsing idle_ttl: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("mailbox: idle_ttl must not be negative")
	}
	return nil
}

func (c *MailboxConfig) buildMailbox(n mailbox.Notifier) *mailbox.Mailbox {
	opts := []mailbox.MailboxOpt{mailbox.WithNotifier(n)}
	if c.IdleTTL != "" {
		d, _ := time.ParseDuration(c.IdleTTL)
		opts = append(opts, mailbox.WithIdleTTL(d))
	}
	return mailbox.New(opts...)
}
