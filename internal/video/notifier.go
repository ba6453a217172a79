package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type eventPublisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error)
}

// PubSubNotifier dispatches stored-media events to the media events topic.
type PubSubNotifier struct {
	publisher eventPublisher
}

// NewPubSubNotifier wires the notifier to a topic publisher.
func NewPubSubNotifier(publisher eventPublisher) (*PubSubNotifier, error) {
	if publisher == nil {
		return nil, errors.New("event publisher is required")
	}
	return &PubSubNotifier{publisher: publisher}, nil
}

// Dispatch publishes the event and waits for the broker acknowledgement, so a
// failed publish fails the surrounding transaction.
func (n *PubSubNotifier) Dispatch(ctx context.Context, event MediaStoredEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding stored-media event: %w", err)
	}
	attributes := map[string]string{
		"event_type": EventTypeMediaStored,
		"video_id":   event.VideoID.String(),
		"kind":       event.Kind,
	}
	if _, err := n.publisher.Publish(ctx, data, attributes); err != nil {
		return fmt.Errorf("publishing stored-media event: %w", err)
	}
	return nil
}
