package engine

import "github.com/solquant/solstice/pkg/bus"

type Option func(*Engine)

// WithRouter publishes order, position and account events to the given
// router as the simulation runs.
func WithRouter(router *bus.Router) Option {
	return func(e *Engine) {
		e.router = router
	}
}

// WithTriggerSequence overrides the default assumption that the high
// limit is checked before the low limit.
func WithTriggerSequence(sequence TriggerSequence) Option {
	return func(e *Engine) {
		e.sequence = sequence
	}
}
