// Package changefeed delivers row-insert notifications for named tables.
// Publishers emit the full new row after a successful insert; subscribers
// receive events in publish order on a cancellable subscription.
package changefeed

import (
	"context"
	"encoding/json"
)

// Event is one row-insert notification. Row holds the full new row as JSON.
type Event struct {
	Table string
	Row   json.RawMessage
}

// Subscription is an event stream owned by exactly one consumer. Cancel is
// idempotent; after it returns, Events is closed once in-flight delivery
// drains.
type Subscription interface {
	Events() <-chan Event
	Cancel()
}

type Feed interface {
	Publish(ctx context.Context, table string, row any) error
	Subscribe(ctx context.Context, table string) (Subscription, error)
}
