package notify

import (
	"context"

	"shopfront/internal/model"
)

// Notifier delivers best-effort order notifications. Implementations
// must not be load-bearing: callers log and continue on failure.
type Notifier interface {
	OrderCreated(ctx context.Context, order *model.Order)
}

// Nop is a Notifier that does nothing.
type Nop struct{}

func (Nop) OrderCreated(context.Context, *model.Order) {}
