package video

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type stubPublisher struct {
	data       []byte
	attributes map[string]string
	err        error
}

func (s *stubPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.data = data
	s.attributes = attributes
	return "msg-1", nil
}

func TestPubSubNotifierDispatch(t *testing.T) {
	publisher := &stubPublisher{}
	notifier, err := NewPubSubNotifier(publisher)
	if err != nil {
		t.Fatalf("NewPubSubNotifier: %v", err)
	}

	event := MediaStoredEvent{VideoID: uuid.New(), Kind: "trailer", FilePath: "videos/x/trailer/clip.mp4"}
	if err := notifier.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	var decoded MediaStoredEvent
	if err := json.Unmarshal(publisher.data, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.VideoID != event.VideoID || decoded.FilePath != event.FilePath {
		t.Fatalf("unexpected payload %+v", decoded)
	}
	if publisher.attributes["event_type"] != EventTypeMediaStored {
		t.Fatalf("unexpected attributes %v", publisher.attributes)
	}
	if publisher.attributes["video_id"] != event.VideoID.String() {
		t.Fatalf("expected video_id attribute, got %v", publisher.attributes)
	}
}

func TestPubSubNotifierDispatchFailure(t *testing.T) {
	publisher := &stubPublisher{err: errors.New("broker down")}
	notifier, err := NewPubSubNotifier(publisher)
	if err != nil {
		t.Fatalf("NewPubSubNotifier: %v", err)
	}
	if err := notifier.Dispatch(context.Background(), MediaStoredEvent{VideoID: uuid.New()}); err == nil {
		t.Fatal("expected publish failure to propagate")
	}
}
