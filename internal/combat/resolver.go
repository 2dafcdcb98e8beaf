package combat

import (
	"math/rand/v2"

	"github.com/pixil98/go-quest/internal/game"
)

// Outcome is the result of a kill attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFail    Outcome = "fail"
	OutcomeCounter Outcome = "counter"
)

// Outcome thresholds over a uniform roll in [0,1).
const (
	successBelow = 0.60
	failBelow    = 0.90
)

// OutcomeFor maps a roll in [0,1) onto an outcome.
func OutcomeFor(roll float64) Outcome {
	switch {
	case roll < successBelow:
		return OutcomeSuccess
	case roll < failBelow:
		return OutcomeFail
	default:
		return OutcomeCounter
	}
}

// EventType is the event recorded for the outcome.
func (o Outcome) EventType() game.EventType {
	switch o {
	case OutcomeSuccess:
		return game.EventKill
	case OutcomeCounter:
		return game.EventCounter
	default:
		return game.EventKillFail
	}
}

// Resolver rolls kill attempts.
type Resolver struct {
	roll func() float64
}

type ResolverOpt func(*Resolver)

// WithRoll replaces the random source. roll must return values in [0,1).
func WithRoll(roll func() float64) ResolverOpt {
	return func(r *Resolver) {
		r.roll = roll
	}
}

func NewResolver(opts ...ResolverOpt) *Resolver {
	r := &Resolver{roll: rand.Float64}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attack draws one roll and returns its outcome.
func (r *Resolver) Attack() Outcome {
	return OutcomeFor(r.roll())
}
