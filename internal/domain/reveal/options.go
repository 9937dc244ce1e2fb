package reveal

import (
	"github.com/okian/simreveal/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithObserver registers a callback that receives every decision, e.g. for
// metrics. It must not block.
func WithObserver(fn func(Decision)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// WithLogger sets the logger used to report precondition violations.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPolicy replaces the policy registered for p.Family().
func WithPolicy(p RevealPolicy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policies[p.Family()] = p
		}
	}
}
