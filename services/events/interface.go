// File: services/events/interface.go
package events

import (
	"context"

	"runway/models"
)

// DefaultChannel is the Redis pub/sub channel runway events go to.
const DefaultChannel = "runway:events"

// Publisher fans runway events out to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event models.RunwayEvent) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.RunwayEvent) error { return nil }
