package pubsub

import (
	"context"
	"errors"

	pubsub "cloud.google.com/go/pubsub/v2"
)

// EventPublisher wraps a topic publisher with a synchronous publish call.
type EventPublisher struct {
	publisher *pubsub.Publisher
}

// NewMediaEventsPublisher returns a synchronous publisher bound to the
// stored-media events topic.
func (c *Client) NewMediaEventsPublisher() *EventPublisher {
	return &EventPublisher{publisher: c.MediaEventsPublisher()}
}

// Publish sends one message and waits for the server-assigned ID.
func (p *EventPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	if p == nil || p.publisher == nil {
		return "", errors.New("publisher not initialized")
	}
	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})
	return result.Get(ctx)
}
